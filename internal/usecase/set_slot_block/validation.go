package set_slot_block

import (
	"fmt"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

func validateRequest(req *Request) error {
	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotId must be positive", ErrInvalidInput)
	}
	if req.Reason != nil {
		if !req.Blocked {
			return fmt.Errorf("%w: reason is allowed only when blocking", ErrInvalidInput)
		}
		if len(*req.Reason) > domain.MaxBlockReasonLength {
			return fmt.Errorf("%w: reason must not exceed %d chars", ErrInvalidInput, domain.MaxBlockReasonLength)
		}
	}
	return nil
}
