package list_available_slots

import (
	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/pkg/types"
)

// MaxRangeDays максимальная длина запрашиваемого диапазона
const MaxRangeDays = 62

// Request модель запроса на получение слотов
type Request struct {
	From           types.Date
	To             types.Date
	OnlyAvailable  bool // только слоты, которые можно забронировать сейчас
	IncludeBlocked bool // показать заблокированные (для администратора)
}

// Response модель ответа со списком слотов
type Response struct {
	From  types.Date
	To    types.Date
	Slots []Slot
}

// Slot слот с вычисленной доступностью
type Slot struct {
	ID             int64
	Date           types.Date
	StartTime      types.TimeString
	EndTime        types.TimeString
	State          domain.SlotState
	TotalSpots     int
	BookedSpots    int
	AvailableSpots int
	BlockReason    *string
}
