package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingBooking/internal/config"
	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/schedule/models"
	"github.com/m04kA/SMC-DetailingBooking/pkg/logger"
	"github.com/m04kA/SMC-DetailingBooking/pkg/ptr"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

func testDefaults(t *testing.T) domain.WeeklyTemplate {
	t.Helper()
	template, err := DefaultTemplate(config.ScheduleConfig{
		WorkingDays:         []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
		StartTimes:          []string{"08:00", "10:00", "12:00"},
		SlotDurationMinutes: 120,
		CapacityPerSlot:     2,
	})
	require.NoError(t, err)
	return template
}

func newService(t *testing.T) *Service {
	db := storagetest.NewDB(t)
	svc := NewService(scheduleRepo.NewRepository(db, storagetest.Builder()), testDefaults(t), logger.NewNop())
	svc.timeProvider = fixedTime{time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)}
	return svc
}

func TestDefaultTemplate(t *testing.T) {
	template := testDefaults(t)

	assert.Len(t, template, 7)
	assert.True(t, template[time.Monday].IsWorking)
	assert.Len(t, template[time.Monday].StartTimes, 3)
	assert.False(t, template[time.Saturday].IsWorking)
	assert.Equal(t, 2, template[time.Sunday].CapacityPerSlot)

	_, err := DefaultTemplate(config.ScheduleConfig{
		WorkingDays:         []string{"monday"},
		StartTimes:          []string{"08:00", "09:00"},
		SlotDurationMinutes: 120,
		CapacityPerSlot:     1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTemplateDay)

	_, err = DefaultTemplate(config.ScheduleConfig{WorkingDays: []string{"someday"}, CapacityPerSlot: 1, SlotDurationMinutes: 60})
	assert.Error(t, err)
}

func TestService_UpdateDayAndList(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	day, err := svc.UpdateDay(ctx, &models.UpdateDayRequest{
		Weekday:         "saturday",
		IsWorking:       true,
		StartTimes:      []string{"11:00", "09:00"},
		CapacityPerSlot: ptr.Ptr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, "saturday", day.Weekday)
	assert.Equal(t, []string{"09:00", "11:00"}, day.StartTimes)
	assert.Equal(t, 120, day.SlotDurationMinutes)
	assert.Equal(t, "override", day.Source)

	resp, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, resp.Days, 7)
	assert.Equal(t, "monday", resp.Days[0].Weekday)
	assert.Equal(t, "default", resp.Days[0].Source)
	assert.Equal(t, "saturday", resp.Days[5].Weekday)
	assert.True(t, resp.Days[5].IsWorking)
	assert.Equal(t, 1, resp.Days[5].CapacityPerSlot)

	template, err := svc.Template(ctx)
	require.NoError(t, err)
	assert.True(t, template[time.Saturday].IsWorking)
	assert.True(t, template[time.Monday].IsWorking)
}

func TestService_UpdateDay_Invalid(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.UpdateDayRequest
	}{
		{"unknown weekday", models.UpdateDayRequest{Weekday: "funday"}},
		{"bad start time", models.UpdateDayRequest{Weekday: "monday", IsWorking: true, StartTimes: []string{"25:00"}}},
		{"working without starts", models.UpdateDayRequest{Weekday: "monday", IsWorking: true}},
		{"overlap", models.UpdateDayRequest{Weekday: "monday", IsWorking: true, StartTimes: []string{"08:00", "09:00"}}},
		{"crosses midnight", models.UpdateDayRequest{Weekday: "monday", IsWorking: true, StartTimes: []string{"23:00"}}},
		{"zero capacity", models.UpdateDayRequest{Weekday: "monday", IsWorking: true, StartTimes: []string{"08:00"}, CapacityPerSlot: ptr.Ptr(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateDay(ctx, &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
