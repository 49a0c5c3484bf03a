package vehicle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/pkg/dberrors"
	"github.com/m04kA/SMC-DetailingBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-DetailingBooking/pkg/sqlnull"
	"github.com/m04kA/SMC-DetailingBooking/pkg/types"
)

var vehicleColumns = []string{"id", "customer_id", "registration", "make", "model", "colour", "size", "created_at"}

// Repository репозиторий автомобилей клиентов
type Repository struct {
	db DBExecutor
	sb squirrel.StatementBuilderType
}

func NewRepository(db DBExecutor, sb squirrel.StatementBuilderType) *Repository {
	return &Repository{db: db, sb: sb}
}

// CreateIfAbsent сохраняет автомобиль или возвращает уже записанный за клиентом с тем же номером
func (r *Repository) CreateIfAbsent(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	v.CreatedAt = types.DBTime(v.CreatedAt)

	query, args, err := r.sb.Insert("vehicles").
		Columns("customer_id", "registration", "make", "model", "colour", "size", "created_at").
		Values(v.CustomerID, v.Registration, v.Make, v.Model, sqlnull.FromString(v.Colour), string(v.Size), v.CreatedAt).
		Suffix("ON CONFLICT (customer_id, registration) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateIfAbsent - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&v.ID)
	if err == nil {
		return v, nil
	}
	if dberrors.IsUniqueViolation(err) {
		return nil, ErrDuplicateVehicle
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: CreateIfAbsent - execute insert: %v", ErrExecQuery, err)
	}

	return r.GetByRegistration(ctx, v.CustomerID, v.Registration)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByRegistration автомобиль клиента по нормализованному номеру
func (r *Repository) GetByRegistration(ctx context.Context, customerID int64, registration string) (*domain.Vehicle, error) {
	return r.getOne(ctx, "GetByRegistration", squirrel.Eq{"customer_id": customerID, "registration": registration})
}

func (r *Repository) getOne(ctx context.Context, method string, where squirrel.Eq) (*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select(vehicleColumns...).
		From("vehicles").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	var (
		v      domain.Vehicle
		colour sql.NullString
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&v.ID, &v.CustomerID, &v.Registration, &v.Make, &v.Model, &colour, &v.Size, &v.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan vehicle: %v", ErrScanRow, method, err)
	}

	v.Colour = sqlnull.String(colour)
	return &v, nil
}
