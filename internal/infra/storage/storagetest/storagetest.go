// Package storagetest поднимает SQLite с применёнными миграциями для тестов репозиториев и use case'ов.
package storagetest

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-DetailingBooking/internal/config"
	"github.com/m04kA/SMC-DetailingBooking/migrations"
	"github.com/m04kA/SMC-DetailingBooking/pkg/sqlbuilder"
	"github.com/m04kA/SMC-DetailingBooking/pkg/types"
)

// NewDB открывает файл SQLite во временной директории теста и применяет миграции.
// Используется файл, а не :memory:, чтобы все соединения пула видели одну базу.
func NewDB(t testing.TB) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "booking.db")
	db, err := sql.Open("sqlite", config.SQLiteDSN(path))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	db.SetMaxOpenConns(16)

	_, err = migrations.Up(context.Background(), db, sqlbuilder.SQLite)
	require.NoError(t, err)

	return db
}

// Builder squirrel builder для SQLite
func Builder() squirrel.StatementBuilderType {
	return sqlbuilder.New(sqlbuilder.SQLite)
}

// SeedSlot вставляет слот напрямую и возвращает его ID
func SeedSlot(t testing.TB, db *sql.DB, date, start, end string, maxCapacity, current int) int64 {
	t.Helper()

	now := types.DBTime(time.Now())
	res, err := db.Exec(
		`INSERT INTO slots (slot_date, start_time, end_time, max_capacity, current_bookings, is_blocked, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, 0, ?, ?)`,
		date, start, end, maxCapacity, current, now, now,
	)
	require.NoError(t, err)

	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

// SlotCounter текущее значение счётчика слота
func SlotCounter(t testing.TB, db *sql.DB, slotID int64) int {
	t.Helper()

	var current int
	require.NoError(t, db.QueryRow(`SELECT current_bookings FROM slots WHERE id = ?`, slotID).Scan(&current))
	return current
}

// CountRows количество строк в таблице
func CountRows(t testing.TB, db *sql.DB, table string) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

// SeedCustomerVehicle вставляет гостя с автомобилем и возвращает их ID
func SeedCustomerVehicle(t testing.TB, db *sql.DB, email, registration string) (customerID, vehicleID int64) {
	t.Helper()

	now := types.DBTime(time.Now())
	res, err := db.Exec(
		`INSERT INTO customers (name, email, phone, created_at) VALUES (?, ?, ?, ?)`,
		"Test Customer", email, "+447700900000", now,
	)
	require.NoError(t, err)
	customerID, err = res.LastInsertId()
	require.NoError(t, err)

	res, err = db.Exec(
		`INSERT INTO vehicles (customer_id, registration, make, model, size, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		customerID, registration, "Ford", "Focus", "medium", now,
	)
	require.NoError(t, err)
	vehicleID, err = res.LastInsertId()
	require.NoError(t, err)

	return customerID, vehicleID
}

// SeedBooking вставляет бронирование напрямую. Счётчик слота не меняется:
// тест сам засевает слот с нужным current_bookings.
func SeedBooking(t testing.TB, db *sql.DB, slotID int64, reference, status, paymentStatus string) int64 {
	t.Helper()

	customerID, vehicleID := SeedCustomerVehicle(t, db, strings.ToLower(reference)+"@example.com", strings.ReplaceAll(reference, "-", ""))

	now := types.DBTime(time.Now())
	res, err := db.Exec(
		`INSERT INTO bookings (reference, customer_id, vehicle_id, slot_id, service_name, total_price, status, payment_status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		reference, customerID, vehicleID, slotID, "Full valet", "90.00", status, paymentStatus, now, now,
	)
	require.NoError(t, err)

	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}
