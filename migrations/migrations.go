package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"github.com/m04kA/SMC-DetailingBooking/pkg/sqlbuilder"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedded embed.FS

// Up применяет все миграции для диалекта и возвращает количество применённых
func Up(ctx context.Context, db *sql.DB, dialect sqlbuilder.Dialect) (int, error) {
	gooseDialect := goose.DialectPostgres
	dir := "postgres"
	if dialect == sqlbuilder.SQLite {
		gooseDialect = goose.DialectSQLite3
		dir = "sqlite"
	}

	fsys, err := fs.Sub(embedded, dir)
	if err != nil {
		return 0, fmt.Errorf("migrations: sub fs %s: %w", dir, err)
	}

	provider, err := goose.NewProvider(gooseDialect, db, fsys)
	if err != nil {
		return 0, fmt.Errorf("migrations: new provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("migrations: up: %w", err)
	}

	return len(results), nil
}
