package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-DetailingBooking/pkg/sqlnull"
	"github.com/m04kA/SMC-DetailingBooking/pkg/types"
)

const insertBatchSize = 100

var slotColumns = []string{
	"id",
	"slot_date",
	"start_time",
	"end_time",
	"max_capacity",
	"current_bookings",
	"is_blocked",
	"block_reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий слотов.
// Счётчик current_bookings меняют только Reserve и Release.
type Repository struct {
	db DBExecutor
	sb squirrel.StatementBuilderType
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor, sb squirrel.StatementBuilderType) *Repository {
	return &Repository{db: db, sb: sb}
}

// InsertIfAbsent вставляет слоты, пропуская уже существующие (slot_date, start_time).
// Существующие строки не меняются. Возвращает количество вставленных.
func (r *Repository) InsertIfAbsent(ctx context.Context, slots []domain.Slot, now time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	ts := types.DBTime(now)

	inserted := 0
	for start := 0; start < len(slots); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(slots) {
			end = len(slots)
		}

		builder := r.sb.Insert("slots").
			Columns("slot_date", "start_time", "end_time", "max_capacity", "current_bookings", "is_blocked", "created_at", "updated_at")
		for _, s := range slots[start:end] {
			builder = builder.Values(s.Date, s.StartTime, s.EndTime, s.MaxCapacity, 0, false, ts, ts)
		}

		query, args, err := builder.Suffix("ON CONFLICT (slot_date, start_time) DO NOTHING").ToSql()
		if err != nil {
			return inserted, fmt.Errorf("%w: InsertIfAbsent - build insert query: %v", ErrBuildQuery, err)
		}

		res, err := executor.ExecContext(ctx, query, args...)
		if err != nil {
			return inserted, fmt.Errorf("%w: InsertIfAbsent - execute insert: %v", ErrExecQuery, err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("%w: InsertIfAbsent - rows affected: %v", ErrExecQuery, err)
		}
		inserted += int(n)
	}

	return inserted, nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// ListByRange возвращает слоты в диапазоне дат, упорядоченные по дате и времени начала.
// Чтение без блокировок: результат может устареть к моменту бронирования.
func (r *Repository) ListByRange(ctx context.Context, filter domain.SlotFilter) ([]domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := r.sb.Select(slotColumns...).
		From("slots").
		Where(squirrel.GtOrEq{"slot_date": filter.From}).
		Where(squirrel.LtOrEq{"slot_date": filter.To}).
		OrderBy("slot_date ASC", "start_time ASC")

	switch {
	case filter.OnlyAvailable:
		builder = builder.
			Where(squirrel.Eq{"is_blocked": false}).
			Where("current_bookings < max_capacity")
	case !filter.IncludeBlocked:
		builder = builder.Where(squirrel.Eq{"is_blocked": false})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.Slot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByRange - scan slot: %v", ErrScanRow, err)
		}
		slots = append(slots, *slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByRange - rows iteration: %v", ErrScanRow, err)
	}

	return slots, nil
}

// Reserve атомарно занимает одно место в слоте.
// Проверка и инкремент выполняются одним условным UPDATE, поэтому два параллельных
// вызова не могут занять последнее место одновременно.
func (r *Repository) Reserve(ctx context.Context, id int64, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Update("slots").
		Set("current_bookings", squirrel.Expr("current_bookings + 1")).
		Set("updated_at", types.DBTime(now)).
		Where(squirrel.Eq{"id": id, "is_blocked": false}).
		Where("current_bookings < max_capacity").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Reserve - build update query: %v", ErrBuildQuery, err)
	}

	affected, err := execAffected(ctx, executor, query, args)
	if err != nil {
		return fmt.Errorf("%w: Reserve - execute update: %v", ErrExecQuery, err)
	}
	if affected > 0 {
		return nil
	}

	exists, err := r.exists(ctx, executor, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrSlotNotFound
	}
	return ErrSlotUnavailable
}

// Release атомарно освобождает одно место. Блокировка слота не мешает освобождению.
func (r *Repository) Release(ctx context.Context, id int64, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Update("slots").
		Set("current_bookings", squirrel.Expr("current_bookings - 1")).
		Set("updated_at", types.DBTime(now)).
		Where(squirrel.Eq{"id": id}).
		Where("current_bookings > 0").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	affected, err := execAffected(ctx, executor, query, args)
	if err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}
	if affected > 0 {
		return nil
	}

	exists, err := r.exists(ctx, executor, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrSlotNotFound
	}
	return ErrCounterUnderflow
}

// SetBlock блокирует или разблокирует слот. Счётчик не меняется:
// существующие бронирования заблокированного слота остаются в силе.
func (r *Repository) SetBlock(ctx context.Context, id int64, blocked bool, reason *string, now time.Time) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if !blocked {
		reason = nil
	}

	query, args, err := r.sb.Update("slots").
		Set("is_blocked", blocked).
		Set("block_reason", sqlnull.FromString(reason)).
		Set("updated_at", types.DBTime(now)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: SetBlock - build update query: %v", ErrBuildQuery, err)
	}

	affected, err := execAffected(ctx, executor, query, args)
	if err != nil {
		return nil, fmt.Errorf("%w: SetBlock - execute update: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return nil, ErrSlotNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *Repository) exists(ctx context.Context, executor DBExecutor, id int64) (bool, error) {
	query, args, err := r.sb.Select("1").
		From("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: exists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: exists - scan: %v", ErrScanRow, err)
	}
	return true, nil
}

func execAffected(ctx context.Context, executor DBExecutor, query string, args []interface{}) (int64, error) {
	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var (
		slot        domain.Slot
		blockReason sql.NullString
	)

	err := row.Scan(
		&slot.ID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.MaxCapacity,
		&slot.CurrentBookings,
		&slot.IsBlocked,
		&blockReason,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.BlockReason = sqlnull.String(blockReason)

	return &slot, nil
}
