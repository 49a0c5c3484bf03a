package approve_reschedule

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/booking"
	rescheduleRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/reschedule"
	slotRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/slot"
	"github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-DetailingBooking/internal/integrations/notifications"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/capacity"
	"github.com/m04kA/SMC-DetailingBooking/pkg/logger"
	"github.com/m04kA/SMC-DetailingBooking/pkg/ptr"
	"github.com/m04kA/SMC-DetailingBooking/pkg/txmanager"
	"github.com/m04kA/SMC-DetailingBooking/pkg/types"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var now = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

type recordingEvents struct {
	mu     sync.Mutex
	events []notifications.BookingEvent
}

func (r *recordingEvents) Publish(_ context.Context, event notifications.BookingEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

type fixture struct {
	uc        *UseCase
	db        *sql.DB
	events    *recordingEvents
	requests  *rescheduleRepo.Repository
	bookings  *bookingRepo.Repository
	oldSlot   int64
	newSlot   int64
	bookingID int64
	requestID int64
}

// newFixture бронирование в oldSlot (max=2, занято 1) и заявка на перенос в newSlot
func newFixture(t *testing.T, newSlotMax, newSlotCurrent int) *fixture {
	t.Helper()

	db := storagetest.NewDB(t)
	sb := storagetest.Builder()
	log := logger.NewNop()

	f := &fixture{
		db:       db,
		events:   &recordingEvents{},
		requests: rescheduleRepo.NewRepository(db, sb),
		bookings: bookingRepo.NewRepository(db, sb),
	}

	f.uc = NewUseCase(
		f.bookings,
		f.requests,
		capacity.NewService(slotRepo.NewRepository(db, sb), nil, log),
		txmanager.NewTransactionManager(txmanager.FromSQL(db)),
		f.events,
		nil,
		log,
	)
	f.uc.timeProvider = fixedTime{now}

	f.oldSlot = storagetest.SeedSlot(t, db, "2026-06-03", "10:00", "12:00", 2, 1)
	f.newSlot = storagetest.SeedSlot(t, db, "2026-06-04", "14:00", "16:00", newSlotMax, newSlotCurrent)
	f.bookingID = storagetest.SeedBooking(t, db, f.oldSlot, "DT-APPR0001", "confirmed", "paid")

	created, err := f.requests.Create(context.Background(), &domain.RescheduleRequest{
		BookingID:          f.bookingID,
		OriginalSlotID:     f.oldSlot,
		OriginalDate:       types.MustDate("2026-06-03"),
		OriginalStartTime:  types.MustTimeString("10:00"),
		RequestedSlotID:    f.newSlot,
		RequestedDate:      types.MustDate("2026-06-04"),
		RequestedStartTime: types.MustTimeString("14:00"),
		Status:             domain.ReschedulePending,
		RequestedAt:        now.Add(-time.Hour),
		ExpiresAt:          now.Add(47 * time.Hour),
	})
	require.NoError(t, err)
	f.requestID = created.ID

	return f
}

// unchanged проверяет, что отказ ничего не изменил
func (f *fixture) unchanged(t *testing.T, newSlotCurrent int) {
	t.Helper()

	assert.Equal(t, 1, storagetest.SlotCounter(t, f.db, f.oldSlot))
	assert.Equal(t, newSlotCurrent, storagetest.SlotCounter(t, f.db, f.newSlot))

	b, err := f.bookings.GetByID(context.Background(), f.bookingID)
	require.NoError(t, err)
	assert.Equal(t, f.oldSlot, b.SlotID)

	r, err := f.requests.GetByID(context.Background(), f.requestID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReschedulePending, r.Status)

	assert.Empty(t, f.events.events)
}

func TestUseCase_Execute_Success(t *testing.T) {
	f := newFixture(t, 1, 0)

	resp, err := f.uc.Execute(context.Background(), &Request{RequestID: f.requestID, AdminNotes: ptr.Ptr("ok")})
	require.NoError(t, err)

	assert.Equal(t, f.newSlot, resp.Booking.SlotID)
	assert.Equal(t, domain.RescheduleApproved, resp.Request.Status)
	require.NotNil(t, resp.Request.RespondedAt)
	require.NotNil(t, resp.Request.AdminNotes)
	assert.Equal(t, "ok", *resp.Request.AdminNotes)

	assert.Equal(t, 0, storagetest.SlotCounter(t, f.db, f.oldSlot))
	assert.Equal(t, 1, storagetest.SlotCounter(t, f.db, f.newSlot))

	require.Len(t, f.events.events, 1)
	e := f.events.events[0]
	assert.Equal(t, notifications.EventBookingRescheduled, e.Type)
	assert.Equal(t, f.newSlot, e.SlotID)
	require.NotNil(t, e.PreviousSlotID)
	assert.Equal(t, f.oldSlot, *e.PreviousSlotID)

	// Повторное одобрение
	_, err = f.uc.Execute(context.Background(), &Request{RequestID: f.requestID})
	assert.ErrorIs(t, err, ErrRequestNotPending)
	assert.Equal(t, 1, storagetest.SlotCounter(t, f.db, f.newSlot))
}

func TestUseCase_Execute_TargetFull(t *testing.T) {
	f := newFixture(t, 1, 1)

	_, err := f.uc.Execute(context.Background(), &Request{RequestID: f.requestID})
	require.ErrorIs(t, err, ErrSlotUnavailable)
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)

	f.unchanged(t, 1)
}

func TestUseCase_Execute_Expired(t *testing.T) {
	f := newFixture(t, 1, 0)
	f.uc.timeProvider = fixedTime{now.Add(48 * time.Hour)}

	_, err := f.uc.Execute(context.Background(), &Request{RequestID: f.requestID})
	require.ErrorIs(t, err, ErrRequestExpired)

	f.unchanged(t, 0)
}

func TestUseCase_Execute_BookingCancelledMeanwhile(t *testing.T) {
	f := newFixture(t, 1, 0)
	_, err := f.db.Exec(`UPDATE bookings SET status = 'cancelled' WHERE id = ?`, f.bookingID)
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), &Request{RequestID: f.requestID})
	require.ErrorIs(t, err, ErrStaleRequest)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	assert.Equal(t, 0, storagetest.SlotCounter(t, f.db, f.newSlot))
}

// Ошибка на последнем шаге откатывает резерв нового слота и перенос
func TestUseCase_Execute_ReleaseFailureRollsBack(t *testing.T) {
	f := newFixture(t, 1, 0)
	_, err := f.db.Exec(`UPDATE slots SET current_bookings = 0 WHERE id = ?`, f.oldSlot)
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), &Request{RequestID: f.requestID})
	require.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, domain.ErrCapacityInvariantViolation)

	assert.Equal(t, 0, storagetest.SlotCounter(t, f.db, f.oldSlot))
	assert.Equal(t, 0, storagetest.SlotCounter(t, f.db, f.newSlot))

	b, err := f.bookings.GetByID(context.Background(), f.bookingID)
	require.NoError(t, err)
	assert.Equal(t, f.oldSlot, b.SlotID)

	r, err := f.requests.GetByID(context.Background(), f.requestID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReschedulePending, r.Status)
	assert.Empty(t, f.events.events)
}

func TestUseCase_Execute_NotFound(t *testing.T) {
	f := newFixture(t, 1, 0)

	_, err := f.uc.Execute(context.Background(), &Request{RequestID: 999})
	assert.ErrorIs(t, err, ErrRequestNotFound)

	_, err = f.uc.Execute(context.Background(), &Request{RequestID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// staleReads отдаёт снимок бронирования, прочитанный до фиксации параллельной транзакции
type staleReads struct {
	*bookingRepo.Repository

	mu    sync.Mutex
	stale *domain.Booking
}

func (s *staleReads) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	s.mu.Lock()
	stale := s.stale
	s.stale = nil
	s.mu.Unlock()

	if stale != nil && stale.ID == id {
		snapshot := *stale
		return &snapshot, nil
	}
	return s.Repository.GetByID(ctx, id)
}

// Одобрение прочитало подтверждённое бронирование, а отмена успела зафиксироваться:
// отменённое бронирование не переносится, новый слот не занимается
func TestUseCase_Execute_ApproveAfterConcurrentCancel(t *testing.T) {
	f := newFixture(t, 1, 0)
	ctx := context.Background()
	slots := capacity.NewService(slotRepo.NewRepository(f.db, storagetest.Builder()), nil, logger.NewNop())

	snapshot, err := f.bookings.GetByID(ctx, f.bookingID)
	require.NoError(t, err)

	// Отмена с возвратом места в исходный слот
	require.NoError(t, f.bookings.UpdateStatus(ctx, domain.StatusChange{
		BookingID: f.bookingID,
		SlotID:    f.oldSlot,
		From:      domain.StatusConfirmed,
		To:        domain.StatusCancelled,
		At:        now,
	}))
	require.NoError(t, slots.Release(ctx, f.oldSlot, now))

	f.uc.bookingRepo = &staleReads{Repository: f.bookings, stale: snapshot}

	_, err = f.uc.Execute(ctx, &Request{RequestID: f.requestID})
	require.ErrorIs(t, err, ErrStaleRequest)

	assert.Equal(t, 0, storagetest.SlotCounter(t, f.db, f.oldSlot))
	assert.Equal(t, 0, storagetest.SlotCounter(t, f.db, f.newSlot))

	b, err := f.bookings.GetByID(ctx, f.bookingID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, b.Status)
	assert.Equal(t, f.oldSlot, b.SlotID)

	r, err := f.requests.GetByID(ctx, f.requestID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReschedulePending, r.Status)
	assert.Empty(t, f.events.events)
}
