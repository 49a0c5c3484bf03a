package customer

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

var customerColumns = []string{"id", "user_id", "name", "email", "phone", "created_at"}

// Repository репозиторий клиентов
type Repository struct {
	db DBExecutor
	sb squirrel.StatementBuilderType
}

func NewRepository(db DBExecutor, sb squirrel.StatementBuilderType) *Repository {
	return &Repository{db: db, sb: sb}
}

// CreateIfAbsent сохраняет клиента или возвращает уже существующего:
// зарегистрированного по user_id, гостя по нормализованному e-mail.
// ON CONFLICT DO NOTHING не прерывает транзакцию при гонке двух вставок.
func (r *Repository) CreateIfAbsent(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	c.CreatedAt = types.DBTime(c.CreatedAt)

	conflict := "ON CONFLICT (email) WHERE user_id IS NULL DO NOTHING RETURNING id"
	if c.UserID != nil {
		conflict = "ON CONFLICT (user_id) WHERE user_id IS NOT NULL DO NOTHING RETURNING id"
	}

	query, args, err := r.sb.Insert("customers").
		Columns("user_id", "name", "email", "phone", "created_at").
		Values(sqlnull.FromInt64(c.UserID), c.Name, c.Email, c.Phone, c.CreatedAt).
		Suffix(conflict).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateIfAbsent - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID)
	if err == nil {
		return c, nil
	}
	if dberrors.IsUniqueViolation(err) {
		return nil, ErrDuplicateCustomer
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: CreateIfAbsent - execute insert: %v", ErrExecQuery, err)
	}

	if c.UserID != nil {
		return r.GetByUserID(ctx, *c.UserID)
	}
	return r.GetGuestByEmail(ctx, c.Email)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByUserID клиент, связанный с учётной записью пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.Customer, error) {
	return r.getOne(ctx, "GetByUserID", squirrel.Eq{"user_id": userID})
}

// GetGuestByEmail гость по нормализованному e-mail
func (r *Repository) GetGuestByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return r.getOne(ctx, "GetGuestByEmail", squirrel.And{
		squirrel.Eq{"email": email},
		squirrel.Eq{"user_id": nil},
	})
}

func (r *Repository) getOne(ctx context.Context, method string, where squirrel.Sqlizer) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select(customerColumns...).
		From("customers").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	var (
		c      domain.Customer
		userID sql.NullInt64
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &userID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan customer: %v", ErrScanRow, method, err)
	}

	c.UserID = sqlnull.Int64(userID)
	return &c, nil
}
