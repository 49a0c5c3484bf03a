package get_available_slots

import (
	"fmt"
	"net/url"
	"strconv"

	listSlots "github.com/m04kA/SMC-DetailingBooking/internal/usecase/list_available_slots"
	"github.com/m04kA/SMC-DetailingBooking/pkg/types"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`
	Slots    []Slot `json:"slots"`
}

// Slot модель временного слота
type Slot struct {
	ID             int64   `json:"id"`
	Date           string  `json:"date"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	State          string  `json:"state"`
	TotalSpots     int     `json:"totalSpots"`
	BookedSpots    int     `json:"bookedSpots"`
	AvailableSpots int     `json:"availableSpots"`
	BlockReason    *string `json:"blockReason,omitempty"`
}

// ToUseCaseRequest создает запрос use case из query параметров.
// includeBlocked учитывается только для администратора.
func ToUseCaseRequest(q url.Values, isAdmin bool) (*listSlots.Request, error) {
	from, err := types.ParseDate(q.Get("dateFrom"))
	if err != nil {
		return nil, fmt.Errorf("dateFrom: %w", err)
	}
	to, err := types.ParseDate(q.Get("dateTo"))
	if err != nil {
		return nil, fmt.Errorf("dateTo: %w", err)
	}

	onlyAvailable, err := parseBool(q.Get("onlyAvailable"))
	if err != nil {
		return nil, fmt.Errorf("onlyAvailable: %w", err)
	}
	includeBlocked, err := parseBool(q.Get("includeBlocked"))
	if err != nil {
		return nil, fmt.Errorf("includeBlocked: %w", err)
	}

	return &listSlots.Request{
		From:           from,
		To:             to,
		OnlyAvailable:  onlyAvailable,
		IncludeBlocked: includeBlocked && isAdmin,
	}, nil
}

func parseBool(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *listSlots.Response) *SlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = Slot{
			ID:             s.ID,
			Date:           s.Date.String(),
			StartTime:      s.StartTime.String(),
			EndTime:        s.EndTime.String(),
			State:          string(s.State),
			TotalSpots:     s.TotalSpots,
			BookedSpots:    s.BookedSpots,
			AvailableSpots: s.AvailableSpots,
			BlockReason:    s.BlockReason,
		}
	}

	return &SlotsResponse{
		DateFrom: resp.From.String(),
		DateTo:   resp.To.String(),
		Slots:    slots,
	}
}
