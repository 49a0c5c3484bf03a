package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-DetailingBooking/pkg/types"
)

// ErrInvalidTemplateDay некорректная настройка дня в шаблоне расписания
var ErrInvalidTemplateDay = errors.New("domain: invalid schedule template day")

// DayTemplate настройка одного дня недели: в какое время начинаются слоты и сколько бригад доступно
type DayTemplate struct {
	Weekday             time.Weekday
	IsWorking           bool
	StartTimes          []types.TimeString
	SlotDurationMinutes int
	CapacityPerSlot     int
	UpdatedAt           time.Time
}

// Validate проверяет, что из дня можно сгенерировать слоты.
// Нерабочий день всегда корректен.
func (d DayTemplate) Validate() error {
	if d.Weekday < time.Sunday || d.Weekday > time.Saturday {
		return fmt.Errorf("%w: unknown weekday %d", ErrInvalidTemplateDay, d.Weekday)
	}
	if !d.IsWorking {
		return nil
	}
	if len(d.StartTimes) == 0 {
		return fmt.Errorf("%w: %s is a working day without start times", ErrInvalidTemplateDay, d.Weekday)
	}
	if d.SlotDurationMinutes < MinSlotDurationMinutes || d.SlotDurationMinutes > MaxSlotDurationMinutes {
		return fmt.Errorf("%w: %s slot duration %d out of range", ErrInvalidTemplateDay, d.Weekday, d.SlotDurationMinutes)
	}
	if d.CapacityPerSlot < 1 || d.CapacityPerSlot > MaxCapacityPerSlot {
		return fmt.Errorf("%w: %s capacity %d out of range", ErrInvalidTemplateDay, d.Weekday, d.CapacityPerSlot)
	}

	starts := d.SortedStartTimes()
	for i, start := range starts {
		if err := start.Validate(); err != nil {
			return fmt.Errorf("%w: %s start time: %v", ErrInvalidTemplateDay, d.Weekday, err)
		}
		end, err := start.AddMinutes(d.SlotDurationMinutes)
		// Слот должен закончиться до полуночи
		if err != nil || end.Minutes() >= 24*60 {
			return fmt.Errorf("%w: %s slot %s crosses midnight", ErrInvalidTemplateDay, d.Weekday, start)
		}
		if i+1 < len(starts) && starts[i+1].IsBefore(end) {
			return fmt.Errorf("%w: %s slots %s and %s overlap", ErrInvalidTemplateDay, d.Weekday, start, starts[i+1])
		}
	}

	return nil
}

// SortedStartTimes копия времён начала по возрастанию
func (d DayTemplate) SortedStartTimes() []types.TimeString {
	starts := make([]types.TimeString, len(d.StartTimes))
	copy(starts, d.StartTimes)
	sort.Slice(starts, func(i, j int) bool { return starts[i].IsBefore(starts[j]) })
	return starts
}

// WeeklyTemplate шаблон недели. Отсутствующий день считается нерабочим.
type WeeklyTemplate map[time.Weekday]DayTemplate

// ForDate настройка для дня недели даты
func (w WeeklyTemplate) ForDate(date types.Date) (DayTemplate, bool) {
	day, ok := w[date.Weekday()]
	return day, ok
}

// Merge накладывает переопределения поверх шаблона (дни из override заменяют дни из w)
func (w WeeklyTemplate) Merge(override []DayTemplate) WeeklyTemplate {
	merged := make(WeeklyTemplate, 7)
	for wd, day := range w {
		merged[wd] = day
	}
	for _, day := range override {
		merged[day.Weekday] = day
	}
	return merged
}

// ParseWeekday разбирает название дня недели: "monday", "Mon"
func ParseWeekday(name string) (time.Weekday, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		full := strings.ToLower(wd.String())
		if n == full || n == full[:3] {
			return wd, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown weekday %q", ErrInvalidInput, name)
}

// JoinStartTimes сериализует времена начала в строку "08:00,10:00"
func JoinStartTimes(times []types.TimeString) string {
	parts := make([]string, len(times))
	for i, t := range times {
		parts[i] = t.String()
	}
	return strings.Join(parts, ",")
}

// SplitStartTimes разбирает строку, записанную JoinStartTimes
func SplitStartTimes(s string) ([]types.TimeString, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	times := make([]types.TimeString, 0, len(parts))
	for _, p := range parts {
		t, err := types.NewTimeStringFromString(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, nil
}
