package generate_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/pkg/types"
)

func times(ss ...string) []types.TimeString {
	out := make([]types.TimeString, len(ss))
	for i, s := range ss {
		out[i] = types.MustTimeString(s)
	}
	return out
}

func TestGenerate(t *testing.T) {
	template := domain.WeeklyTemplate{
		time.Monday: {
			Weekday:             time.Monday,
			IsWorking:           true,
			StartTimes:          times("12:00", "08:00"),
			SlotDurationMinutes: 120,
			CapacityPerSlot:     2,
		},
		// Рабочий день без времён начала пропускается
		time.Tuesday: {
			Weekday:             time.Tuesday,
			IsWorking:           true,
			SlotDurationMinutes: 120,
			CapacityPerSlot:     1,
		},
		// Пересекающиеся окна
		time.Wednesday: {
			Weekday:             time.Wednesday,
			IsWorking:           true,
			StartTimes:          times("08:00", "09:00"),
			SlotDurationMinutes: 120,
			CapacityPerSlot:     1,
		},
		time.Thursday: {Weekday: time.Thursday},
	}

	// 2026-06-01 понедельник
	slots, skipped := Generate(template, types.MustDate("2026-06-01"), types.MustDate("2026-06-08"))

	require.Len(t, slots, 4)
	assert.Equal(t, "2026-06-01", slots[0].Date.String())
	assert.Equal(t, "08:00", slots[0].StartTime.String())
	assert.Equal(t, "10:00", slots[0].EndTime.String())
	assert.Equal(t, 2, slots[0].MaxCapacity)
	assert.Equal(t, "12:00", slots[1].StartTime.String())
	assert.Equal(t, "2026-06-08", slots[2].Date.String())

	require.Len(t, skipped, 2)
	assert.Equal(t, "2026-06-02", skipped[0].Date.String())
	assert.Equal(t, "2026-06-03", skipped[1].Date.String())
}

func TestGenerate_Deterministic(t *testing.T) {
	template := domain.WeeklyTemplate{
		time.Saturday: {
			Weekday:             time.Saturday,
			IsWorking:           true,
			StartTimes:          times("09:00", "14:00"),
			SlotDurationMinutes: 180,
			CapacityPerSlot:     3,
		},
	}

	from, to := types.MustDate("2026-06-01"), types.MustDate("2026-06-30")
	a, _ := Generate(template, from, to)
	b, _ := Generate(template, from, to)

	assert.Equal(t, a, b)
	assert.Len(t, a, 8)
}

func TestValidateRange(t *testing.T) {
	today := types.MustDate("2026-06-01")

	tests := []struct {
		name    string
		from    string
		to      string
		wantErr error
	}{
		{"ok", "2026-06-01", "2026-06-15", nil},
		{"single day", "2026-06-10", "2026-06-10", nil},
		{"reversed", "2026-06-05", "2026-06-04", ErrInvalidRange},
		{"past", "2026-05-31", "2026-06-02", ErrInvalidRange},
		{"beyond horizon", "2026-06-01", "2026-06-16", ErrRangeTooWide},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRange(&Request{From: types.MustDate(tt.from), To: types.MustDate(tt.to)}, today, 14)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
