package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(`
[database]
driver = "sqlite"
path = "/tmp/booking.db"
`)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 14, cfg.Booking.HorizonDays)
	assert.Equal(t, 48*time.Hour, cfg.Booking.RescheduleTTL())
	assert.Equal(t, time.UTC, cfg.Booking.Location())
	assert.Equal(t, 1, cfg.Schedule.CapacityPerSlot)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "info", cfg.Logs.Level)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "unknown driver",
			data: "[database]\ndriver = \"mysql\"",
		},
		{
			name: "postgres without host",
			data: "[database]\ndriver = \"postgres\"\ndbname = \"x\"",
		},
		{
			name: "sqlite without path",
			data: "[database]\ndriver = \"sqlite\"",
		},
		{
			name: "horizon too large",
			data: "[database]\ndriver = \"sqlite\"\npath = \"a.db\"\n[booking]\nhorizon_days = 1000",
		},
		{
			name: "unknown timezone",
			data: "[database]\ndriver = \"sqlite\"\npath = \"a.db\"\n[booking]\ntimezone = \"Mars/Olympus\"",
		},
		{
			name: "loyalty enabled without url",
			data: "[database]\ndriver = \"sqlite\"\npath = \"a.db\"\n[loyalty_service]\nenabled = true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[database]
driver = "postgres"
host = "db"
port = 5432
user = "u"
password = "p@ss"
dbname = "booking"

[booking]
horizon_days = 7
timezone = "Europe/London"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Booking.HorizonDays)
	assert.Equal(t, "Europe/London", cfg.Booking.Location().String())

	dsn := cfg.Database.DSN()
	assert.True(t, strings.HasPrefix(dsn, "postgres://u:p%40ss@db:5432/booking"))
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestSQLiteDSN(t *testing.T) {
	dsn := DatabaseConfig{Driver: "sqlite", Path: "/data/b.db"}.DSN()
	assert.True(t, strings.HasPrefix(dsn, "file:/data/b.db?"))
	assert.Contains(t, dsn, "_txlock=immediate")
	assert.Contains(t, dsn, "busy_timeout(10000)")
}
