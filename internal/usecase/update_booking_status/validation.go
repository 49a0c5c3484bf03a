package update_booking_status

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	req.Status = domain.BookingStatus(strings.ToLower(strings.TrimSpace(string(req.Status))))
	if !req.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	if req.CancellationReason != nil {
		if req.Status != domain.StatusCancelled {
			return fmt.Errorf("%w: cancellationReason is allowed only for cancelled", ErrInvalidInput)
		}
		if len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
			return fmt.Errorf("%w: cancellationReason must not exceed %d chars", ErrInvalidInput, domain.MaxCancellationReasonLength)
		}
	}

	return nil
}
