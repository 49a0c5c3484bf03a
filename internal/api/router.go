package api

import (
	"net/http"

	"github.com/gorilla/mux"

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
	"github.com/m04kA/SMC-DetailingBooking/internal/api/middleware"
)

// Handlers обработчики всех маршрутов API
type Handlers struct {
	ListSlots         *getAvailableSlotsHandler.Handler
	CreateBooking     *createBookingHandler.Handler
	GetBooking        *getBookingHandler.Handler
	UpdateStatus      *updateBookingStatusHandler.Handler
	RequestReschedule *requestRescheduleHandler.Handler
	ApproveReschedule *approveRescheduleHandler.Handler
	RejectReschedule  *rejectRescheduleHandler.Handler
	GenerateSlots     *generateSlotsHandler.Handler
	SetSlotBlock      *setSlotBlockHandler.Handler
	GetSlotBookings   *getSlotBookingsHandler.Handler
	GetSchedule       *getScheduleHandler.Handler
	UpdateScheduleDay *updateScheduleDayHandler.Handler
}

// Options сквозные middleware. Nil поля отключают соответствующую функцию.
type Options struct {
	Metrics        middleware.HTTPMetrics
	MetricsPath    string
	MetricsHandler http.Handler
	RateLimiter    *middleware.RateLimiter
	Logger         middleware.Logger
}

// NewRouter собирает маршруты /api/v1
func NewRouter(h *Handlers, opts Options) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.RequestID)
	if opts.Logger != nil {
		r.Use(middleware.Logging(opts.Logger))
	}
	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
	}

	// Metrics endpoint (публичный, без аутентификации)
	if opts.MetricsHandler != nil {
		r.Handle(opts.MetricsPath, opts.MetricsHandler).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	if opts.RateLimiter != nil {
		api.Use(opts.RateLimiter.Middleware)
	}
	// Пользователь необязателен: гость бронирует и смотрит бронирование по номеру
	api.Use(middleware.Auth)

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/slots", h.ListSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings", h.CreateBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{reference}", h.GetBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId:[0-9]+}/reschedule-requests", h.RequestReschedule.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (X-User-ID + X-User-Role: admin)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireAdmin)

	// --- Бронирования ---
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}/status", h.UpdateStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/admin/bookings/{bookingId:[0-9]+}", h.GetBooking.HandleByID).Methods(http.MethodGet)

	// --- Заявки на перенос ---
	admin.HandleFunc("/reschedule-requests/{requestId:[0-9]+}/approve", h.ApproveReschedule.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/reschedule-requests/{requestId:[0-9]+}/reject", h.RejectReschedule.Handle).Methods(http.MethodPost)

	// --- Слоты ---
	admin.HandleFunc("/admin/slots/generate", h.GenerateSlots.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/admin/slots/{slotId:[0-9]+}/block", h.SetSlotBlock.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/admin/slots/{slotId:[0-9]+}/bookings", h.GetSlotBookings.Handle).Methods(http.MethodGet)

	// --- Расписание ---
	admin.HandleFunc("/admin/schedule", h.GetSchedule.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/admin/schedule/{weekday}", h.UpdateScheduleDay.Handle).Methods(http.MethodPut)

	return r
}
