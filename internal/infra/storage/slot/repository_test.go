package slot

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-DetailingBooking/pkg/ptr"
	"github.com/m04kA/SMC-DetailingBooking/pkg/types"
)

var now = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

func newSlot(date, start, end string, capacity int) domain.Slot {
	return domain.Slot{
		Date:        types.MustDate(date),
		StartTime:   types.MustTimeString(start),
		EndTime:     types.MustTimeString(end),
		MaxCapacity: capacity,
	}
}

func TestRepository_InsertIfAbsent(t *testing.T) {
	db := storagetest.NewDB(t)
	repo := NewRepository(db, storagetest.Builder())
	ctx := context.Background()

	slots := []domain.Slot{
		newSlot("2026-06-02", "08:00", "10:00", 2),
		newSlot("2026-06-02", "10:00", "12:00", 2),
	}

	inserted, err := repo.InsertIfAbsent(ctx, slots, now)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	// Повторный запуск ничего не вставляет и не трогает существующие счётчики
	list, err := repo.ListByRange(ctx, domain.SlotFilter{From: types.MustDate("2026-06-02"), To: types.MustDate("2026-06-02")})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.NoError(t, repo.Reserve(ctx, list[0].ID, now))

	slots[0].MaxCapacity = 5
	inserted, err = repo.InsertIfAbsent(ctx, append(slots, newSlot("2026-06-03", "08:00", "10:00", 1)), now)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	got, err := repo.GetByID(ctx, list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CurrentBookings)
	assert.Equal(t, 2, got.MaxCapacity)
	assert.Equal(t, "2026-06-02", got.Date.String())
	assert.Equal(t, "08:00", got.StartTime.String())
	assert.Equal(t, "10:00", got.EndTime.String())
}

func TestRepository_ListByRange_Filters(t *testing.T) {
	db := storagetest.NewDB(t)
	repo := NewRepository(db, storagetest.Builder())
	ctx := context.Background()

	free := storagetest.SeedSlot(t, db, "2026-06-02", "08:00", "10:00", 2, 0)
	full := storagetest.SeedSlot(t, db, "2026-06-02", "10:00", "12:00", 1, 1)
	blocked := storagetest.SeedSlot(t, db, "2026-06-02", "12:00", "14:00", 2, 0)
	storagetest.SeedSlot(t, db, "2026-06-05", "08:00", "10:00", 2, 0)

	_, err := repo.SetBlock(ctx, blocked, true, ptr.Ptr("van service"), now)
	require.NoError(t, err)

	rng := domain.SlotFilter{From: types.MustDate("2026-06-01"), To: types.MustDate("2026-06-03")}

	list, err := repo.ListByRange(ctx, rng)
	require.NoError(t, err)
	assert.Equal(t, []int64{free, full}, ids(list))

	withBlocked := rng
	withBlocked.IncludeBlocked = true
	list, err = repo.ListByRange(ctx, withBlocked)
	require.NoError(t, err)
	assert.Equal(t, []int64{free, full, blocked}, ids(list))
	assert.Equal(t, domain.SlotBlocked, list[2].State())
	assert.Equal(t, "van service", *list[2].BlockReason)

	onlyAvailable := rng
	onlyAvailable.OnlyAvailable = true
	onlyAvailable.IncludeBlocked = true
	list, err = repo.ListByRange(ctx, onlyAvailable)
	require.NoError(t, err)
	assert.Equal(t, []int64{free}, ids(list))
}

func TestRepository_ReserveRelease(t *testing.T) {
	db := storagetest.NewDB(t)
	repo := NewRepository(db, storagetest.Builder())
	ctx := context.Background()

	id := storagetest.SeedSlot(t, db, "2026-06-02", "08:00", "10:00", 2, 1)

	require.NoError(t, repo.Reserve(ctx, id, now))
	assert.Equal(t, 2, storagetest.SlotCounter(t, db, id))

	assert.ErrorIs(t, repo.Reserve(ctx, id, now), ErrSlotUnavailable)
	assert.Equal(t, 2, storagetest.SlotCounter(t, db, id))

	require.NoError(t, repo.Release(ctx, id, now))
	require.NoError(t, repo.Release(ctx, id, now))
	assert.Equal(t, 0, storagetest.SlotCounter(t, db, id))

	assert.ErrorIs(t, repo.Release(ctx, id, now), ErrCounterUnderflow)
	assert.Equal(t, 0, storagetest.SlotCounter(t, db, id))

	assert.ErrorIs(t, repo.Reserve(ctx, 9999, now), ErrSlotNotFound)
	assert.ErrorIs(t, repo.Release(ctx, 9999, now), ErrSlotNotFound)
}

func TestRepository_ReserveBlocked(t *testing.T) {
	db := storagetest.NewDB(t)
	repo := NewRepository(db, storagetest.Builder())
	ctx := context.Background()

	id := storagetest.SeedSlot(t, db, "2026-06-02", "08:00", "10:00", 3, 1)

	_, err := repo.SetBlock(ctx, id, true, nil, now)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Reserve(ctx, id, now), ErrSlotUnavailable)

	// Освобождение работает и для заблокированного слота
	require.NoError(t, repo.Release(ctx, id, now))

	unblocked, err := repo.SetBlock(ctx, id, false, ptr.Ptr("ignored"), now)
	require.NoError(t, err)
	assert.False(t, unblocked.IsBlocked)
	assert.Nil(t, unblocked.BlockReason)
	require.NoError(t, repo.Reserve(ctx, id, now))

	_, err = repo.SetBlock(ctx, 9999, true, nil, now)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestRepository_ConcurrentReserveNeverOversells(t *testing.T) {
	db := storagetest.NewDB(t)
	repo := NewRepository(db, storagetest.Builder())
	ctx := context.Background()

	const capacity = 3
	id := storagetest.SeedSlot(t, db, "2026-06-02", "08:00", "10:00", capacity, 0)

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		refused   atomic.Int32
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Reserve(ctx, id, now)
			switch {
			case err == nil:
				succeeded.Add(1)
			case assert.ErrorIs(t, err, ErrSlotUnavailable):
				refused.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(capacity), succeeded.Load())
	assert.Equal(t, int32(20-capacity), refused.Load())
	assert.Equal(t, capacity, storagetest.SlotCounter(t, db, id))
}

func ids(slots []domain.Slot) []int64 {
	out := make([]int64, len(slots))
	for i, s := range slots {
		out[i] = s.ID
	}
	return out
}
