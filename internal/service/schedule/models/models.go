package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/pkg/types"
)

// WeekOrder порядок дней в ответе
var WeekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// Request модели

// UpdateDayRequest запрос на изменение дня недели.
// Незаданные длительность и вместимость берутся из шаблона по умолчанию.
type UpdateDayRequest struct {
	Weekday             string   `json:"-"`
	IsWorking           bool     `json:"isWorking"`
	StartTimes          []string `json:"startTimes"`
	SlotDurationMinutes *int     `json:"slotDurationMinutes,omitempty"`
	CapacityPerSlot     *int     `json:"capacityPerSlot,omitempty"`
}

// Response модели

// DayResponse настройка дня недели
type DayResponse struct {
	Weekday             string     `json:"weekday"`
	IsWorking           bool       `json:"isWorking"`
	StartTimes          []string   `json:"startTimes"`
	SlotDurationMinutes int        `json:"slotDurationMinutes"`
	CapacityPerSlot     int        `json:"capacityPerSlot"`
	Source              string     `json:"source"` // default | override
	UpdatedAt           *time.Time `json:"updatedAt,omitempty"`
}

// ScheduleResponse шаблон недели
type ScheduleResponse struct {
	Days []DayResponse `json:"days"`
}

// Методы конвертации

// FromDomainDay конвертирует domain модель в DTO
func FromDomainDay(day domain.DayTemplate, overridden bool) DayResponse {
	resp := DayResponse{
		Weekday:             strings.ToLower(day.Weekday.String()),
		IsWorking:           day.IsWorking,
		StartTimes:          make([]string, 0, len(day.StartTimes)),
		SlotDurationMinutes: day.SlotDurationMinutes,
		CapacityPerSlot:     day.CapacityPerSlot,
		Source:              "default",
	}
	for _, t := range day.SortedStartTimes() {
		resp.StartTimes = append(resp.StartTimes, t.String())
	}
	if overridden {
		resp.Source = "override"
		updatedAt := day.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

// ToDomainDay конвертирует запрос в domain модель
func (r *UpdateDayRequest) ToDomainDay(defaults domain.WeeklyTemplate) (domain.DayTemplate, error) {
	wd, err := domain.ParseWeekday(r.Weekday)
	if err != nil {
		return domain.DayTemplate{}, err
	}

	base := defaults[wd]
	day := domain.DayTemplate{
		Weekday:             wd,
		IsWorking:           r.IsWorking,
		SlotDurationMinutes: base.SlotDurationMinutes,
		CapacityPerSlot:     base.CapacityPerSlot,
	}
	if r.SlotDurationMinutes != nil {
		day.SlotDurationMinutes = *r.SlotDurationMinutes
	}
	if r.CapacityPerSlot != nil {
		day.CapacityPerSlot = *r.CapacityPerSlot
	}

	for _, s := range r.StartTimes {
		t, err := types.NewTimeStringFromString(s)
		if err != nil {
			return domain.DayTemplate{}, fmt.Errorf("start time %q: %v", s, err)
		}
		day.StartTimes = append(day.StartTimes, t)
	}

	return day, nil
}
