package generate_slots

import (
	"fmt"

	"github.com/m04kA/SMC-DetailingBooking/pkg/types"
)

// validateRange проверяет диапазон относительно сегодняшней даты и горизонта
func validateRange(req *Request, today types.Date, horizonDays int) error {
	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: dateFrom and dateTo are required", ErrInvalidRange)
	}

	if req.From.After(req.To) {
		return fmt.Errorf("%w: dateFrom %s is after dateTo %s", ErrInvalidRange, req.From, req.To)
	}

	if req.From.Before(today) {
		return fmt.Errorf("%w: dateFrom %s is in the past", ErrInvalidRange, req.From)
	}

	limit := today.AddDays(horizonDays)
	if req.To.After(limit) {
		return fmt.Errorf("%w: dateTo %s is after %s (%d days)", ErrRangeTooWide, req.To, limit, horizonDays)
	}

	return nil
}
