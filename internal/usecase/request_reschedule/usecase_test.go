package request_reschedule

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/booking"
	rescheduleRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/reschedule"
	slotRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/slot"
	"github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-DetailingBooking/pkg/logger"
	"github.com/m04kA/SMC-DetailingBooking/pkg/ptr"
	"github.com/m04kA/SMC-DetailingBooking/pkg/txmanager"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var now = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

func newUseCase(t *testing.T, ttl time.Duration) (*UseCase, *sql.DB) {
	t.Helper()

	db := storagetest.NewDB(t)
	sb := storagetest.Builder()

	uc := NewUseCase(
		bookingRepo.NewRepository(db, sb),
		slotRepo.NewRepository(db, sb),
		rescheduleRepo.NewRepository(db, sb),
		txmanager.NewTransactionManager(txmanager.FromSQL(db)),
		nil,
		ttl,
		time.UTC,
		logger.NewNop(),
	)
	uc.timeProvider = fixedTime{now}

	return uc, db
}

func TestUseCase_Execute_Success(t *testing.T) {
	uc, db := newUseCase(t, 48*time.Hour)

	current := storagetest.SeedSlot(t, db, "2026-06-03", "10:00", "12:00", 2, 1)
	target := storagetest.SeedSlot(t, db, "2026-06-02", "14:00", "16:00", 2, 0)
	far := storagetest.SeedSlot(t, db, "2026-06-10", "14:00", "16:00", 2, 0)
	bookingID := storagetest.SeedBooking(t, db, current, "DT-RESC0001", "confirmed", "paid")

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: bookingID,
		NewSlotID: target,
		Reason:    ptr.Ptr("working from home that day"),
	})
	require.NoError(t, err)

	r := resp.Request
	assert.Equal(t, domain.ReschedulePending, r.Status)
	assert.Equal(t, current, r.OriginalSlotID)
	assert.Equal(t, "2026-06-03", r.OriginalDate.String())
	assert.Equal(t, "10:00", r.OriginalStartTime.String())
	assert.Equal(t, target, r.RequestedSlotID)
	assert.Equal(t, "14:00", r.RequestedStartTime.String())

	// Слот начинается раньше, чем истекает TTL: срок заявки = начало слота
	assert.True(t, r.ExpiresAt.Equal(time.Date(2026, 6, 2, 14, 0, 0, 0, time.UTC)), r.ExpiresAt)

	// Слоты не меняются до одобрения
	assert.Equal(t, 1, storagetest.SlotCounter(t, db, current))
	assert.Equal(t, 0, storagetest.SlotCounter(t, db, target))

	// Вторая заявка при ожидающей первой
	_, err = uc.Execute(context.Background(), &Request{BookingID: bookingID, NewSlotID: far})
	assert.ErrorIs(t, err, ErrReschedulePending)
	assert.ErrorIs(t, err, domain.ErrReschedulePending)
}

func TestUseCase_Execute_TTLBeforeSlotStart(t *testing.T) {
	uc, db := newUseCase(t, 48*time.Hour)

	current := storagetest.SeedSlot(t, db, "2026-06-03", "10:00", "12:00", 2, 1)
	target := storagetest.SeedSlot(t, db, "2026-06-10", "14:00", "16:00", 2, 0)
	bookingID := storagetest.SeedBooking(t, db, current, "DT-RESC0002", "pending", "unpaid")

	resp, err := uc.Execute(context.Background(), &Request{BookingID: bookingID, NewSlotID: target})
	require.NoError(t, err)
	assert.True(t, resp.Request.ExpiresAt.Equal(now.Add(48*time.Hour)))
}

// Просроченная заявка не блокирует новую и получает статус expired
func TestUseCase_Execute_ExpiredRequestReplaced(t *testing.T) {
	uc, db := newUseCase(t, time.Hour)
	ctx := context.Background()

	current := storagetest.SeedSlot(t, db, "2026-06-03", "10:00", "12:00", 2, 1)
	target := storagetest.SeedSlot(t, db, "2026-06-04", "14:00", "16:00", 2, 0)
	bookingID := storagetest.SeedBooking(t, db, current, "DT-RESC0003", "confirmed", "unpaid")

	first, err := uc.Execute(ctx, &Request{BookingID: bookingID, NewSlotID: target})
	require.NoError(t, err)

	uc.timeProvider = fixedTime{now.Add(2 * time.Hour)}
	second, err := uc.Execute(ctx, &Request{BookingID: bookingID, NewSlotID: target})
	require.NoError(t, err)
	assert.NotEqual(t, first.Request.ID, second.Request.ID)

	old, err := rescheduleRepo.NewRepository(db, storagetest.Builder()).GetByID(ctx, first.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RescheduleExpired, old.Status)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	uc, db := newUseCase(t, 48*time.Hour)

	current := storagetest.SeedSlot(t, db, "2026-06-03", "10:00", "12:00", 2, 1)
	full := storagetest.SeedSlot(t, db, "2026-06-04", "10:00", "12:00", 1, 1)
	blocked := storagetest.SeedSlot(t, db, "2026-06-05", "10:00", "12:00", 2, 0)
	started := storagetest.SeedSlot(t, db, "2026-06-01", "08:00", "10:00", 2, 0)
	free := storagetest.SeedSlot(t, db, "2026-06-06", "10:00", "12:00", 2, 0)
	_, err := db.Exec(`UPDATE slots SET is_blocked = 1 WHERE id = ?`, blocked)
	require.NoError(t, err)

	bookingID := storagetest.SeedBooking(t, db, current, "DT-RESC0004", "confirmed", "unpaid")
	inProgress := storagetest.SeedBooking(t, db, current, "DT-RESC0005", "in_progress", "unpaid")

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"same slot", &Request{BookingID: bookingID, NewSlotID: current}, ErrInvalidInput},
		{"full", &Request{BookingID: bookingID, NewSlotID: full}, ErrSlotUnavailable},
		{"blocked", &Request{BookingID: bookingID, NewSlotID: blocked}, ErrSlotUnavailable},
		{"already started", &Request{BookingID: bookingID, NewSlotID: started}, ErrSlotUnavailable},
		{"missing slot", &Request{BookingID: bookingID, NewSlotID: 999}, ErrSlotNotFound},
		{"missing booking", &Request{BookingID: 999, NewSlotID: free}, ErrBookingNotFound},
		{"in progress", &Request{BookingID: inProgress, NewSlotID: free}, ErrNotReschedulable},
		{"bad id", &Request{BookingID: 0, NewSlotID: free}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Equal(t, 0, storagetest.CountRows(t, db, "reschedule_requests"))
}
