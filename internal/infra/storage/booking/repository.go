package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/pkg/dberrors"
	"github.com/m04kA/SMC-DetailingBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-DetailingBooking/pkg/sqlnull"
	"github.com/m04kA/SMC-DetailingBooking/pkg/types"
)

var bookingColumns = []string{
	"id",
	"reference",
	"customer_id",
	"vehicle_id",
	"slot_id",
	"service_name",
	"total_price",
	"status",
	"payment_status",
	"confirmed_at",
	"started_at",
	"completed_at",
	"cancelled_at",
	"no_show_at",
	"cancellation_reason",
	"notes",
	"created_at",
	"updated_at",
}

// timestampColumns колонка, в которой фиксируется момент перехода в статус
var timestampColumns = map[domain.BookingStatus]string{
	domain.StatusConfirmed:  "confirmed_at",
	domain.StatusInProgress: "started_at",
	domain.StatusCompleted:  "completed_at",
	domain.StatusCancelled:  "cancelled_at",
	domain.StatusNoShow:     "no_show_at",
}

// reschedulableStatuses статусы, в которых бронирование можно перенести
var reschedulableStatuses = []string{
	string(domain.StatusPending),
	string(domain.StatusConfirmed),
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
	sb squirrel.StatementBuilderType
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, sb squirrel.StatementBuilderType) *Repository {
	return &Repository{db: db, sb: sb}
}

// Create создает новое бронирование.
// Вызывается внутри транзакции создания, вместе с резервированием места в слоте.
// Занятый номер возвращает ErrDuplicateReference без ошибки на стороне БД,
// поэтому транзакция остаётся рабочей и номер можно сгенерировать заново.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	booking.CreatedAt = types.DBTime(booking.CreatedAt)
	booking.UpdatedAt = booking.CreatedAt
	booking.ConfirmedAt = types.DBTimePtr(booking.ConfirmedAt)

	query, args, err := r.sb.Insert("bookings").
		Columns(
			"reference",
			"customer_id",
			"vehicle_id",
			"slot_id",
			"service_name",
			"total_price",
			"status",
			"payment_status",
			"confirmed_at",
			"notes",
			"created_at",
			"updated_at",
		).
		Values(
			booking.Reference,
			booking.CustomerID,
			booking.VehicleID,
			booking.SlotID,
			booking.ServiceName,
			booking.TotalPrice.StringFixed(2),
			string(booking.Status),
			string(booking.PaymentStatus),
			sqlnull.FromTime(booking.ConfirmedAt),
			sqlnull.FromString(booking.Notes),
			booking.CreatedAt,
			booking.UpdatedAt,
		).
		Suffix("ON CONFLICT (reference) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID)
	if errors.Is(err, sql.ErrNoRows) || dberrors.IsUniqueViolation(err) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateReference, booking.Reference)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByReference получает бронирование по номеру DT-XXXXXXXX
func (r *Repository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByReference", squirrel.Eq{"reference": reference})
}

// ListBySlot бронирования слота, упорядоченные по времени создания
func (r *Repository) ListBySlot(ctx context.Context, slotID int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"slot_id": slotID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySlot - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBySlot - scan booking: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBySlot - rows iteration: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// UpdateStatus меняет статус, только если текущий статус равен change.From
// и бронирование всё ещё в слоте change.SlotID.
// Фиксирует время перехода в колонке нового статуса.
func (r *Repository) UpdateStatus(ctx context.Context, change domain.StatusChange) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	column, ok := timestampColumns[change.To]
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, change.To)
	}

	at := types.DBTime(change.At)
	builder := r.sb.Update("bookings").
		Set("status", string(change.To)).
		Set(column, at).
		Set("updated_at", at).
		Where(squirrel.Eq{
			"id":      change.BookingID,
			"slot_id": change.SlotID,
			"status":  string(change.From),
		})

	if change.CancellationReason != nil {
		builder = builder.Set("cancellation_reason", *change.CancellationReason)
	}
	if change.PaymentStatus != nil {
		builder = builder.Set("payment_status", string(*change.PaymentStatus))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - rows affected: %v", ErrExecQuery, err)
	}
	if affected > 0 {
		return nil
	}

	if _, err := r.GetByID(ctx, change.BookingID); err != nil {
		return err
	}
	return ErrStatusConflict
}

// UpdateSlot переносит бронирование в другой слот, только если текущий слот равен fromSlotID
// и работы по бронированию ещё не начаты
func (r *Repository) UpdateSlot(ctx context.Context, id, fromSlotID, toSlotID int64, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Update("bookings").
		Set("slot_id", toSlotID).
		Set("updated_at", types.DBTime(now)).
		Where(squirrel.Eq{
			"id":      id,
			"slot_id": fromSlotID,
			"status":  reschedulableStatuses,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSlot - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSlot - execute update: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSlot - rows affected: %v", ErrExecQuery, err)
	}
	if affected > 0 {
		return nil
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrSlotConflict
}

func (r *Repository) getOne(ctx context.Context, method string, where squirrel.Eq) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select(bookingColumns...).
		From("bookings").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, method, err)
	}

	return booking, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b                                                          domain.Booking
		confirmedAt, startedAt, completedAt, cancelledAt, noShowAt sql.NullTime
		cancellationReason, notes                                  sql.NullString
	)

	err := row.Scan(
		&b.ID,
		&b.Reference,
		&b.CustomerID,
		&b.VehicleID,
		&b.SlotID,
		&b.ServiceName,
		&b.TotalPrice,
		&b.Status,
		&b.PaymentStatus,
		&confirmedAt,
		&startedAt,
		&completedAt,
		&cancelledAt,
		&noShowAt,
		&cancellationReason,
		&notes,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.ConfirmedAt = sqlnull.Time(confirmedAt)
	b.StartedAt = sqlnull.Time(startedAt)
	b.CompletedAt = sqlnull.Time(completedAt)
	b.CancelledAt = sqlnull.Time(cancelledAt)
	b.NoShowAt = sqlnull.Time(noShowAt)
	b.CancellationReason = sqlnull.String(cancellationReason)
	b.Notes = sqlnull.String(notes)

	return &b, nil
}
