package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	approveRescheduleHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/approve_reschedule"
	createBookingHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/create_booking"
	generateSlotsHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/generate_slots"
	getAvailableSlotsHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/get_booking"
	getScheduleHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/get_schedule"
	getSlotBookingsHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/get_slot_bookings"
	rejectRescheduleHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/reject_reschedule"
	requestRescheduleHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/request_reschedule"
	setSlotBlockHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/set_slot_block"
	updateBookingStatusHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/update_booking_status"
	updateScheduleDayHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/update_schedule_day"
	"github.com/m04kA/SMC-DetailingBooking/internal/config"
	bookingRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/customer"
	rescheduleRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/reschedule"
	scheduleRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/schedule"
	slotRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/slot"
	"github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/storagetest"
	vehicleRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/vehicle"
	"github.com/m04kA/SMC-DetailingBooking/internal/integrations/notifications"
	bookingsService "github.com/m04kA/SMC-DetailingBooking/internal/service/bookings"
	capacityService "github.com/m04kA/SMC-DetailingBooking/internal/service/capacity"
	eventsService "github.com/m04kA/SMC-DetailingBooking/internal/service/events"
	scheduleService "github.com/m04kA/SMC-DetailingBooking/internal/service/schedule"
	approveRescheduleUC "github.com/m04kA/SMC-DetailingBooking/internal/usecase/approve_reschedule"
	createBookingUC "github.com/m04kA/SMC-DetailingBooking/internal/usecase/create_booking"
	generateSlotsUC "github.com/m04kA/SMC-DetailingBooking/internal/usecase/generate_slots"
	listSlotsUC "github.com/m04kA/SMC-DetailingBooking/internal/usecase/list_available_slots"
	rejectRescheduleUC "github.com/m04kA/SMC-DetailingBooking/internal/usecase/reject_reschedule"
	requestRescheduleUC "github.com/m04kA/SMC-DetailingBooking/internal/usecase/request_reschedule"
	setSlotBlockUC "github.com/m04kA/SMC-DetailingBooking/internal/usecase/set_slot_block"
	updateStatusUC "github.com/m04kA/SMC-DetailingBooking/internal/usecase/update_booking_status"
	"github.com/m04kA/SMC-DetailingBooking/pkg/logger"
	"github.com/m04kA/SMC-DetailingBooking/pkg/metrics"
	"github.com/m04kA/SMC-DetailingBooking/pkg/txmanager"
)

// Слоты далеко в будущем, чтобы проверки "слот уже начался" не зависели от даты запуска
const slotDate = "2099-03-02"

type testServer struct {
	t      *testing.T
	db     *sql.DB
	server *httptest.Server
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := storagetest.NewDB(t)
	sb := storagetest.Builder()
	log := logger.NewNop()

	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry("detailing-booking-test", reg)

	bookings := bookingRepo.NewRepository(db, sb)
	slots := slotRepo.NewRepository(db, sb)
	customers := customerRepo.NewRepository(db, sb)
	vehicles := vehicleRepo.NewRepository(db, sb)
	reschedules := rescheduleRepo.NewRepository(db, sb)
	tx := txmanager.NewTransactionManager(txmanager.FromSQL(db))

	defaults, err := scheduleService.DefaultTemplate(config.ScheduleConfig{
		WorkingDays:         []string{"monday"},
		StartTimes:          []string{"10:00"},
		SlotDurationMinutes: 120,
		CapacityPerSlot:     1,
	})
	require.NoError(t, err)

	capacitySvc := capacityService.NewService(slots, m, log)
	eventsSvc := eventsService.NewService(notifications.NewLogPublisher(log), nil, m, time.Second, log)
	scheduleSvc := scheduleService.NewService(scheduleRepo.NewRepository(db, sb), defaults, log)
	bookingSvc := bookingsService.NewService(bookings, slots, customers, vehicles, reschedules, log)

	h := &Handlers{
		ListSlots: getAvailableSlotsHandler.NewHandler(listSlotsUC.NewUseCase(slots, time.UTC, log), log),
		CreateBooking: createBookingHandler.NewHandler(
			createBookingUC.NewUseCase(bookings, customers, vehicles, capacitySvc, tx, eventsSvc, m, log), log),
		GetBooking: getBookingHandler.NewHandler(bookingSvc, log),
		UpdateStatus: updateBookingStatusHandler.NewHandler(
			updateStatusUC.NewUseCase(bookings, capacitySvc, tx, eventsSvc, m, log), log),
		RequestReschedule: requestRescheduleHandler.NewHandler(
			requestRescheduleUC.NewUseCase(bookings, slots, reschedules, tx, m, 48*time.Hour, time.UTC, log), log),
		ApproveReschedule: approveRescheduleHandler.NewHandler(
			approveRescheduleUC.NewUseCase(bookings, reschedules, capacitySvc, tx, eventsSvc, m, log), log),
		RejectReschedule: rejectRescheduleHandler.NewHandler(rejectRescheduleUC.NewUseCase(reschedules, m, log), log),
		GenerateSlots: generateSlotsHandler.NewHandler(
			generateSlotsUC.NewUseCase(slots, scheduleSvc, m, 14, time.UTC, log), log),
		SetSlotBlock:      setSlotBlockHandler.NewHandler(setSlotBlockUC.NewUseCase(slots, log), log),
		GetSlotBookings:   getSlotBookingsHandler.NewHandler(bookingSvc, log),
		GetSchedule:       getScheduleHandler.NewHandler(scheduleSvc, log),
		UpdateScheduleDay: updateScheduleDayHandler.NewHandler(scheduleSvc, log),
	}

	r := NewRouter(h, Options{
		Metrics:        m,
		MetricsPath:    "/metrics",
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Logger:         log,
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testServer{t: t, db: db, server: srv}
}

type caller struct {
	userID string
	role   string
}

var (
	guest    = caller{}
	customer = caller{userID: "7", role: "customer"}
	admin    = caller{userID: "1", role: "admin"}
)

func (s *testServer) do(c caller, method, path string, body interface{}, out interface{}) int {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, s.server.URL+path, reader)
	require.NoError(s.t, err)
	if c.userID != "" {
		req.Header.Set("X-User-ID", c.userID)
	}
	if c.role != "" {
		req.Header.Set("X-User-Role", c.role)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	assert.NotEmpty(s.t, resp.Header.Get("X-Request-ID"))

	if out != nil && resp.StatusCode < 300 {
		require.NoError(s.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type bookingBody struct {
	ID            int64  `json:"id"`
	Reference     string `json:"reference"`
	SlotID        int64  `json:"slotId"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
	TotalPrice    string `json:"totalPrice"`
}

func createBody(slotID int64) map[string]interface{} {
	return map[string]interface{}{
		"slotId": slotID,
		"customer": map[string]string{
			"name": "Ann Smith", "email": "Ann@Example.com", "phone": "+447700900123",
		},
		"vehicle": map[string]string{
			"registration": "ab12 cde", "make": "Ford", "model": "Focus", "size": "medium",
		},
		"serviceName": "Full valet",
		"basePrice":   "80.00",
		"extrasPrice": "15.00",
		"discount":    "5.00",
	}
}

func TestRouter_BookingLifecycle(t *testing.T) {
	s := newTestServer(t)
	first := storagetest.SeedSlot(t, s.db, slotDate, "10:00", "12:00", 1, 0)
	second := storagetest.SeedSlot(t, s.db, slotDate, "14:00", "16:00", 1, 0)

	// Гость бронирует
	var created bookingBody
	require.Equal(t, http.StatusCreated, s.do(guest, http.MethodPost, "/api/v1/bookings", createBody(first), &created))
	assert.True(t, strings.HasPrefix(created.Reference, "DT-"))
	assert.Equal(t, "90.00", created.TotalPrice)
	assert.Equal(t, 1, storagetest.SlotCounter(t, s.db, first))

	// Второе бронирование в полный слот
	assert.Equal(t, http.StatusConflict, s.do(guest, http.MethodPost, "/api/v1/bookings", createBody(first), nil))

	// Просмотр по номеру без авторизации
	var details struct {
		Reference string `json:"reference"`
		Status    string `json:"status"`
	}
	require.Equal(t, http.StatusOK, s.do(guest, http.MethodGet, "/api/v1/bookings/"+strings.ToLower(created.Reference), nil, &details))
	assert.Equal(t, created.Reference, details.Reference)
	assert.Equal(t, "pending", details.Status)
	assert.Equal(t, http.StatusNotFound, s.do(guest, http.MethodGet, "/api/v1/bookings/DT-FFFFFFFF", nil, nil))
	assert.Equal(t, http.StatusBadRequest, s.do(guest, http.MethodGet, "/api/v1/bookings/nope", nil, nil))

	// Доступные слоты: первый заполнен
	var listed struct {
		Slots []struct {
			ID    int64  `json:"id"`
			State string `json:"state"`
		} `json:"slots"`
	}
	require.Equal(t, http.StatusOK, s.do(guest, http.MethodGet,
		fmt.Sprintf("/api/v1/slots?dateFrom=%s&dateTo=%s&onlyAvailable=true", slotDate, slotDate), nil, &listed))
	require.Len(t, listed.Slots, 1)
	assert.Equal(t, second, listed.Slots[0].ID)

	// Перенос во второй слот
	var request struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	require.Equal(t, http.StatusCreated, s.do(guest, http.MethodPost,
		fmt.Sprintf("/api/v1/bookings/%d/reschedule-requests", created.ID),
		map[string]interface{}{"newSlotId": second}, &request))
	assert.Equal(t, "pending", request.Status)

	approvePath := fmt.Sprintf("/api/v1/reschedule-requests/%d/approve", request.ID)
	assert.Equal(t, http.StatusUnauthorized, s.do(guest, http.MethodPost, approvePath, nil, nil))
	assert.Equal(t, http.StatusForbidden, s.do(customer, http.MethodPost, approvePath, nil, nil))

	var approved struct {
		Request struct {
			Status string `json:"status"`
		} `json:"request"`
		Booking bookingBody `json:"booking"`
	}
	require.Equal(t, http.StatusOK, s.do(admin, http.MethodPost, approvePath, map[string]string{"adminNotes": "ok"}, &approved))
	assert.Equal(t, "approved", approved.Request.Status)
	assert.Equal(t, second, approved.Booking.SlotID)
	assert.Equal(t, 0, storagetest.SlotCounter(t, s.db, first))
	assert.Equal(t, 1, storagetest.SlotCounter(t, s.db, second))

	// Повторное одобрение
	assert.Equal(t, http.StatusConflict, s.do(admin, http.MethodPost, approvePath, nil, nil))

	// Отмена администратором освобождает место
	statusPath := fmt.Sprintf("/api/v1/bookings/%d/status", created.ID)
	cancel := map[string]string{"status": "cancelled", "cancellationReason": "customer request"}
	assert.Equal(t, http.StatusForbidden, s.do(customer, http.MethodPatch, statusPath, cancel, nil))

	var cancelled struct {
		Booking        bookingBody `json:"booking"`
		PreviousStatus string      `json:"previousStatus"`
		Changed        bool        `json:"changed"`
	}
	require.Equal(t, http.StatusOK, s.do(admin, http.MethodPatch, statusPath, cancel, &cancelled))
	assert.Equal(t, "cancelled", cancelled.Booking.Status)
	assert.Equal(t, "pending", cancelled.PreviousStatus)
	assert.True(t, cancelled.Changed)
	assert.Equal(t, 0, storagetest.SlotCounter(t, s.db, second))

	// Терминальный статус не меняется
	assert.Equal(t, http.StatusConflict, s.do(admin, http.MethodPatch, statusPath, map[string]string{"status": "confirmed"}, nil))

	// Список бронирований слота для администратора
	var slotBookings struct {
		BookedSpots int `json:"bookedSpots"`
		Bookings    []struct {
			Reference string `json:"reference"`
		} `json:"bookings"`
	}
	require.Equal(t, http.StatusOK, s.do(admin, http.MethodGet, fmt.Sprintf("/api/v1/admin/slots/%d/bookings", second), nil, &slotBookings))
	assert.Equal(t, 0, slotBookings.BookedSpots)
	require.Len(t, slotBookings.Bookings, 1)
	assert.Equal(t, created.Reference, slotBookings.Bookings[0].Reference)
}

func TestRouter_AdminSlots(t *testing.T) {
	s := newTestServer(t)
	slotID := storagetest.SeedSlot(t, s.db, slotDate, "10:00", "12:00", 2, 0)

	blockPath := fmt.Sprintf("/api/v1/admin/slots/%d/block", slotID)
	assert.Equal(t, http.StatusUnauthorized, s.do(guest, http.MethodPatch, blockPath, map[string]bool{"blocked": true}, nil))

	var blocked struct {
		State       string  `json:"state"`
		BlockReason *string `json:"blockReason"`
	}
	require.Equal(t, http.StatusOK, s.do(admin, http.MethodPatch, blockPath,
		map[string]interface{}{"blocked": true, "reason": "van in service"}, &blocked))
	assert.Equal(t, "blocked", blocked.State)
	require.NotNil(t, blocked.BlockReason)

	// Заблокированный слот нельзя забронировать
	assert.Equal(t, http.StatusConflict, s.do(guest, http.MethodPost, "/api/v1/bookings", createBody(slotID), nil))

	// includeBlocked работает только для администратора
	var listed struct {
		Slots []json.RawMessage `json:"slots"`
	}
	query := fmt.Sprintf("/api/v1/slots?dateFrom=%s&dateTo=%s&includeBlocked=true", slotDate, slotDate)
	require.Equal(t, http.StatusOK, s.do(guest, http.MethodGet, query, nil, &listed))
	assert.Empty(t, listed.Slots)
	require.Equal(t, http.StatusOK, s.do(admin, http.MethodGet, query, nil, &listed))
	assert.Len(t, listed.Slots, 1)

	assert.Equal(t, http.StatusNotFound, s.do(admin, http.MethodPatch, "/api/v1/admin/slots/999/block", map[string]bool{"blocked": false}, nil))
	assert.Equal(t, http.StatusBadRequest, s.do(guest, http.MethodGet, "/api/v1/slots?dateFrom=tomorrow", nil, nil))
}

func TestRouter_ScheduleAndGeneration(t *testing.T) {
	s := newTestServer(t)

	var schedule struct {
		Days []struct {
			Weekday   string `json:"weekday"`
			IsWorking bool   `json:"isWorking"`
		} `json:"days"`
	}
	require.Equal(t, http.StatusOK, s.do(admin, http.MethodGet, "/api/v1/admin/schedule", nil, &schedule))
	require.Len(t, schedule.Days, 7)
	assert.Equal(t, "monday", schedule.Days[0].Weekday)
	assert.True(t, schedule.Days[0].IsWorking)

	// Включаем все дни, чтобы горизонт гарантированно содержал рабочие дни
	for _, day := range []string{"tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"} {
		require.Equal(t, http.StatusOK, s.do(admin, http.MethodPut, "/api/v1/admin/schedule/"+day,
			map[string]interface{}{"isWorking": true, "startTimes": []string{"09:00", "13:00"}}, nil))
	}
	assert.Equal(t, http.StatusBadRequest, s.do(admin, http.MethodPut, "/api/v1/admin/schedule/someday",
		map[string]interface{}{"isWorking": true, "startTimes": []string{"09:00"}}, nil))

	var generated struct {
		Requested int `json:"requested"`
		Inserted  int `json:"inserted"`
	}
	require.Equal(t, http.StatusOK, s.do(admin, http.MethodPost, "/api/v1/admin/slots/generate", nil, &generated))
	assert.Positive(t, generated.Inserted)
	assert.Equal(t, generated.Requested, generated.Inserted)
	assert.Equal(t, generated.Inserted, storagetest.CountRows(t, s.db, "slots"))

	// Повторная генерация идемпотентна
	require.Equal(t, http.StatusOK, s.do(admin, http.MethodPost, "/api/v1/admin/slots/generate", nil, &generated))
	assert.Zero(t, generated.Inserted)
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	storagetest.SeedSlot(t, s.db, slotDate, "10:00", "12:00", 1, 0)

	require.Equal(t, http.StatusOK, s.do(guest, http.MethodGet,
		fmt.Sprintf("/api/v1/slots?dateFrom=%s&dateTo=%s", slotDate, slotDate), nil, nil))

	resp, err := http.Get(s.server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), `route="/api/v1/slots"`)
}
