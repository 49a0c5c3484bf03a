package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-DetailingBooking/pkg/types"
)

var dayColumns = []string{"weekday", "is_working", "start_times", "slot_duration_minutes", "capacity_per_slot", "updated_at"}

// Repository репозиторий переопределений шаблона недели.
// Дни без записи берутся из шаблона по умолчанию в конфигурации.
type Repository struct {
	db DBExecutor
	sb squirrel.StatementBuilderType
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor, sb squirrel.StatementBuilderType) *Repository {
	return &Repository{db: db, sb: sb}
}

// List все сохранённые дни, по возрастанию дня недели (воскресенье = 0)
func (r *Repository) List(ctx context.Context) ([]domain.DayTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select(dayColumns...).
		From("schedule_days").
		OrderBy("weekday ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]domain.DayTemplate, 0, 7)
	for rows.Next() {
		day, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan day: %v", ErrScanRow, err)
		}
		days = append(days, *day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %v", ErrScanRow, err)
	}

	return days, nil
}

// Get день недели
func (r *Repository) Get(ctx context.Context, weekday time.Weekday) (*domain.DayTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select(dayColumns...).
		From("schedule_days").
		Where(squirrel.Eq{"weekday": int(weekday)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	day, err := scanDay(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan day: %v", ErrScanRow, err)
	}

	return day, nil
}

// Upsert создает или заменяет настройку дня недели
func (r *Repository) Upsert(ctx context.Context, day domain.DayTemplate) (*domain.DayTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	day.UpdatedAt = types.DBTime(day.UpdatedAt)

	query, args, err := r.sb.Insert("schedule_days").
		Columns(dayColumns...).
		Values(
			int(day.Weekday),
			day.IsWorking,
			domain.JoinStartTimes(day.SortedStartTimes()),
			day.SlotDurationMinutes,
			day.CapacityPerSlot,
			day.UpdatedAt,
		).
		Suffix(`ON CONFLICT (weekday) DO UPDATE SET
			is_working = excluded.is_working,
			start_times = excluded.start_times,
			slot_duration_minutes = excluded.slot_duration_minutes,
			capacity_per_slot = excluded.capacity_per_slot,
			updated_at = excluded.updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	day.StartTimes = day.SortedStartTimes()
	return &day, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDay(row rowScanner) (*domain.DayTemplate, error) {
	var (
		day        domain.DayTemplate
		weekday    int
		startTimes string
	)

	err := row.Scan(&weekday, &day.IsWorking, &startTimes, &day.SlotDurationMinutes, &day.CapacityPerSlot, &day.UpdatedAt)
	if err != nil {
		return nil, err
	}

	day.Weekday = time.Weekday(weekday)
	day.StartTimes, err = domain.SplitStartTimes(startTimes)
	if err != nil {
		return nil, err
	}

	return &day, nil
}
