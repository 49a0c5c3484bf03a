package request_reschedule

import (
	"fmt"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}
	if req.NewSlotID <= 0 {
		return fmt.Errorf("%w: newSlotId must be positive", ErrInvalidInput)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxRescheduleReasonLength {
		return fmt.Errorf("%w: reason must not exceed %d chars", ErrInvalidInput, domain.MaxRescheduleReasonLength)
	}
	return nil
}
