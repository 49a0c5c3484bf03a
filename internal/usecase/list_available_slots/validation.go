package list_available_slots

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: dateFrom and dateTo are required", ErrInvalidInput)
	}

	if req.From.After(req.To) {
		return fmt.Errorf("%w: dateFrom must not be after dateTo", ErrInvalidInput)
	}

	if req.From.DaysUntil(req.To) > MaxRangeDays {
		return fmt.Errorf("%w: range must not exceed %d days", ErrInvalidInput, MaxRangeDays)
	}

	if req.OnlyAvailable && req.IncludeBlocked {
		return fmt.Errorf("%w: onlyAvailable and includeBlocked are mutually exclusive", ErrInvalidInput)
	}

	return nil
}
