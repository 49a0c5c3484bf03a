package reject_reschedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	rescheduleRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/reschedule"
	"github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-DetailingBooking/pkg/logger"
	"github.com/m04kA/SMC-DetailingBooking/pkg/ptr"
	"github.com/m04kA/SMC-DetailingBooking/pkg/types"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var now = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

func TestUseCase_Execute(t *testing.T) {
	db := storagetest.NewDB(t)
	repo := rescheduleRepo.NewRepository(db, storagetest.Builder())
	ctx := context.Background()

	oldSlot := storagetest.SeedSlot(t, db, "2026-06-03", "10:00", "12:00", 2, 1)
	newSlot := storagetest.SeedSlot(t, db, "2026-06-04", "10:00", "12:00", 2, 0)
	bookingID := storagetest.SeedBooking(t, db, oldSlot, "DT-REJE0001", "pending", "unpaid")

	created, err := repo.Create(ctx, &domain.RescheduleRequest{
		BookingID:          bookingID,
		OriginalSlotID:     oldSlot,
		OriginalDate:       types.MustDate("2026-06-03"),
		OriginalStartTime:  types.MustTimeString("10:00"),
		RequestedSlotID:    newSlot,
		RequestedDate:      types.MustDate("2026-06-04"),
		RequestedStartTime: types.MustTimeString("10:00"),
		Status:             domain.ReschedulePending,
		RequestedAt:        now,
		ExpiresAt:          now.Add(24 * time.Hour),
	})
	require.NoError(t, err)

	uc := NewUseCase(repo, nil, logger.NewNop())
	uc.timeProvider = fixedTime{now.Add(time.Hour)}

	resp, err := uc.Execute(ctx, &Request{RequestID: created.ID, AdminNotes: ptr.Ptr("no crew available")})
	require.NoError(t, err)
	assert.Equal(t, domain.RescheduleRejected, resp.Request.Status)
	require.NotNil(t, resp.Request.RespondedAt)

	// Слоты не меняются
	assert.Equal(t, 1, storagetest.SlotCounter(t, db, oldSlot))
	assert.Equal(t, 0, storagetest.SlotCounter(t, db, newSlot))

	_, err = uc.Execute(ctx, &Request{RequestID: created.ID})
	assert.ErrorIs(t, err, ErrRequestNotPending)

	_, err = uc.Execute(ctx, &Request{RequestID: 999})
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestUseCase_Execute_Expired(t *testing.T) {
	db := storagetest.NewDB(t)
	repo := rescheduleRepo.NewRepository(db, storagetest.Builder())
	ctx := context.Background()

	oldSlot := storagetest.SeedSlot(t, db, "2026-06-03", "10:00", "12:00", 2, 1)
	newSlot := storagetest.SeedSlot(t, db, "2026-06-04", "10:00", "12:00", 2, 0)
	bookingID := storagetest.SeedBooking(t, db, oldSlot, "DT-REJE0002", "pending", "unpaid")

	created, err := repo.Create(ctx, &domain.RescheduleRequest{
		BookingID:          bookingID,
		OriginalSlotID:     oldSlot,
		OriginalDate:       types.MustDate("2026-06-03"),
		OriginalStartTime:  types.MustTimeString("10:00"),
		RequestedSlotID:    newSlot,
		RequestedDate:      types.MustDate("2026-06-04"),
		RequestedStartTime: types.MustTimeString("10:00"),
		Status:             domain.ReschedulePending,
		RequestedAt:        now,
		ExpiresAt:          now.Add(time.Hour),
	})
	require.NoError(t, err)

	uc := NewUseCase(repo, nil, logger.NewNop())
	uc.timeProvider = fixedTime{now.Add(2 * time.Hour)}

	_, err = uc.Execute(ctx, &Request{RequestID: created.ID})
	assert.ErrorIs(t, err, ErrRequestExpired)
	assert.ErrorIs(t, err, domain.ErrRequestExpired)
}
