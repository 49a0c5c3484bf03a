package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_ParseAndFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  bool
	}{
		{in: "09:00", want: "09:00"},
		{in: "17:30:00", want: "17:30"},
		{in: "9am", err: true},
		{in: "25:00", err: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.in)
			if tt.err {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ts.String())
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	start := MustTimeString("22:30")

	end, err := start.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, 24*60, end.Minutes())

	_, err = start.AddMinutes(91)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("10:15:00")))
	assert.Equal(t, "10:15", ts.String())

	require.NoError(t, ts.Scan("08:05"))
	assert.Equal(t, "08:05", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())
}

func TestDate_ScanAndCompare(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2026-10-15", d.String())

	require.NoError(t, d.Scan("2026-10-16T00:00:00Z"))
	assert.Equal(t, "2026-10-16", d.String())

	assert.True(t, MustDate("2026-10-15").Before(MustDate("2026-10-16")))
	assert.Equal(t, 14, MustDate("2026-10-15").DaysUntil(MustDate("2026-10-29")))
	assert.Equal(t, "2026-11-01", MustDate("2026-10-31").AddDays(1).String())
}
