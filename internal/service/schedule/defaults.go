package schedule

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-DetailingBooking/internal/config"
	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/pkg/types"
)

// DefaultTemplate строит шаблон недели из секции [schedule] конфигурации.
// Дни, не перечисленные в working_days, нерабочие.
func DefaultTemplate(cfg config.ScheduleConfig) (domain.WeeklyTemplate, error) {
	starts := make([]types.TimeString, 0, len(cfg.StartTimes))
	for _, s := range cfg.StartTimes {
		t, err := types.NewTimeStringFromString(s)
		if err != nil {
			return nil, fmt.Errorf("schedule.start_times: %w", err)
		}
		starts = append(starts, t)
	}

	template := make(domain.WeeklyTemplate, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		template[wd] = domain.DayTemplate{
			Weekday:             wd,
			SlotDurationMinutes: cfg.SlotDurationMinutes,
			CapacityPerSlot:     cfg.CapacityPerSlot,
		}
	}

	for _, name := range cfg.WorkingDays {
		wd, err := domain.ParseWeekday(name)
		if err != nil {
			return nil, fmt.Errorf("schedule.working_days: %w", err)
		}
		day := template[wd]
		day.IsWorking = true
		day.StartTimes = starts
		if err := day.Validate(); err != nil {
			return nil, err
		}
		template[wd] = day
	}

	return template, nil
}
