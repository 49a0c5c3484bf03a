package reject_reschedule

import (
	"fmt"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

func validateRequest(req *Request) error {
	if req.RequestID <= 0 {
		return fmt.Errorf("%w: requestId must be positive", ErrInvalidInput)
	}
	if req.AdminNotes != nil && len(*req.AdminNotes) > domain.MaxAdminNotesLength {
		return fmt.Errorf("%w: adminNotes must not exceed %d chars", ErrInvalidInput, domain.MaxAdminNotesLength)
	}
	return nil
}
