package domain

import (
	"time"

	"github.com/m04kA/SMC-DetailingBooking/pkg/types"
)

// SlotState производное состояние слота, в БД не хранится
type SlotState string

const (
	SlotAvailable SlotState = "available"
	SlotFull      SlotState = "full"
	SlotBlocked   SlotState = "blocked"
)

// Slot окно времени фиксированной длительности, которое бронирует мобильная бригада.
// CurrentBookings меняется только через резервирование и освобождение.
type Slot struct {
	ID              int64
	Date            types.Date
	StartTime       types.TimeString
	EndTime         types.TimeString
	MaxCapacity     int
	CurrentBookings int
	IsBlocked       bool
	BlockReason     *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// State вычисляет состояние слота. Блокировка важнее заполненности.
func (s *Slot) State() SlotState {
	switch {
	case s.IsBlocked:
		return SlotBlocked
	case s.CurrentBookings >= s.MaxCapacity:
		return SlotFull
	default:
		return SlotAvailable
	}
}

// IsAvailable возвращает true, если слот можно забронировать
func (s *Slot) IsAvailable() bool {
	return s.State() == SlotAvailable
}

// RemainingCapacity количество свободных мест
func (s *Slot) RemainingCapacity() int {
	if s.IsBlocked || s.CurrentBookings >= s.MaxCapacity {
		return 0
	}
	return s.MaxCapacity - s.CurrentBookings
}

// StartsAt момент начала слота в часовом поясе расписания
func (s *Slot) StartsAt(loc *time.Location) time.Time {
	return s.StartTime.On(s.Date.Time(loc))
}

// SlotFilter фильтр выборки слотов по диапазону дат (включительно)
type SlotFilter struct {
	From           types.Date
	To             types.Date
	OnlyAvailable  bool // только незаблокированные и незаполненные
	IncludeBlocked bool // по умолчанию заблокированные слоты скрыты
}
