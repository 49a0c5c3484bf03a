package reschedule

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

var requestColumns = []string{
	"id",
	"booking_id",
	"original_slot_id",
	"original_date",
	"original_start_time",
	"requested_slot_id",
	"requested_date",
	"requested_start_time",
	"status",
	"reason",
	"admin_notes",
	"requested_at",
	"responded_at",
	"expires_at",
}

// Repository репозиторий заявок на перенос
type Repository struct {
	db DBExecutor
	sb squirrel.StatementBuilderType
}

func NewRepository(db DBExecutor, sb squirrel.StatementBuilderType) *Repository {
	return &Repository{db: db, sb: sb}
}

// Create сохраняет новую pending заявку.
// Уникальный частичный индекс не даёт завести вторую pending заявку на то же бронирование.
func (r *Repository) Create(ctx context.Context, req *domain.RescheduleRequest) (*domain.RescheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	req.RequestedAt = types.DBTime(req.RequestedAt)
	req.ExpiresAt = types.DBTime(req.ExpiresAt)

	query, args, err := r.sb.Insert("reschedule_requests").
		Columns(
			"booking_id",
			"original_slot_id",
			"original_date",
			"original_start_time",
			"requested_slot_id",
			"requested_date",
			"requested_start_time",
			"status",
			"reason",
			"requested_at",
			"expires_at",
		).
		Values(
			req.BookingID,
			req.OriginalSlotID,
			req.OriginalDate,
			req.OriginalStartTime,
			req.RequestedSlotID,
			req.RequestedDate,
			req.RequestedStartTime,
			string(req.Status),
			sqlnull.FromString(req.Reason),
			req.RequestedAt,
			req.ExpiresAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&req.ID)
	if dberrors.IsUniqueViolation(err) {
		return nil, ErrPendingExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return req, nil
}

// GetByID получает заявку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.RescheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select(requestColumns...).
		From("reschedule_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	req, err := scanRequest(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %v", ErrScanRow, err)
	}

	return req, nil
}

// ListByBooking заявки бронирования, новые первыми
func (r *Repository) ListByBooking(ctx context.Context, bookingID int64) ([]*domain.RescheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select(requestColumns...).
		From("reschedule_requests").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("requested_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	requests := make([]*domain.RescheduleRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBooking - scan request: %v", ErrScanRow, err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - rows iteration: %v", ErrScanRow, err)
	}

	return requests, nil
}

// Resolve переводит pending заявку в итоговый статус.
// Условие status = 'pending' защищает от двойного рассмотрения.
func (r *Repository) Resolve(ctx context.Context, id int64, status domain.RescheduleStatus, adminNotes *string, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Update("reschedule_requests").
		Set("status", string(status)).
		Set("admin_notes", sqlnull.FromString(adminNotes)).
		Set("responded_at", types.DBTime(at)).
		Where(squirrel.Eq{"id": id, "status": string(domain.ReschedulePending)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Resolve - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Resolve - execute update: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Resolve - rows affected: %v", ErrExecQuery, err)
	}
	if affected > 0 {
		return nil
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrNotPending
}

// ExpireStale сохраняет статус expired для pending заявок с истёкшим сроком
func (r *Repository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	ts := types.DBTime(now)
	query, args, err := r.sb.Update("reschedule_requests").
		Set("status", string(domain.RescheduleExpired)).
		Set("responded_at", ts).
		Where(squirrel.Eq{"status": string(domain.ReschedulePending)}).
		Where(squirrel.LtOrEq{"expires_at": ts}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStale - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStale - execute update: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStale - rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(row rowScanner) (*domain.RescheduleRequest, error) {
	var (
		req                domain.RescheduleRequest
		reason, adminNotes sql.NullString
		respondedAt        sql.NullTime
	)

	err := row.Scan(
		&req.ID,
		&req.BookingID,
		&req.OriginalSlotID,
		&req.OriginalDate,
		&req.OriginalStartTime,
		&req.RequestedSlotID,
		&req.RequestedDate,
		&req.RequestedStartTime,
		&req.Status,
		&reason,
		&adminNotes,
		&req.RequestedAt,
		&respondedAt,
		&req.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}

	req.Reason = sqlnull.String(reason)
	req.AdminNotes = sqlnull.String(adminNotes)
	req.RespondedAt = sqlnull.Time(respondedAt)

	return &req, nil
}
