package set_slot_block

import (
	"context"
	"errors"
	"fmt"

	slotRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/slot"
)

// UseCase use case для блокировки слота
type UseCase struct {
	slotRepo     SlotRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, logger Logger) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case блокировки слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SetSlotBlock: slot=%d, blocked=%t", req.SlotID, req.Blocked)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SetSlotBlock: validation failed: %v", err)
		return nil, err
	}

	slot, err := uc.slotRepo.SetBlock(ctx, req.SlotID, req.Blocked, req.Reason, uc.timeProvider.Now())
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Warn("SetSlotBlock: slot %d not found", req.SlotID)
			return nil, fmt.Errorf("%w: id=%d", ErrSlotNotFound, req.SlotID)
		}
		uc.logger.Error("SetSlotBlock: failed to update slot: %v", err)
		return nil, fmt.Errorf("%w: failed to update slot: %v", ErrInternal, err)
	}

	if slot.IsBlocked && slot.CurrentBookings > 0 {
		uc.logger.Warn("SetSlotBlock: slot %d blocked with %d active bookings", slot.ID, slot.CurrentBookings)
	}

	return &Response{Slot: slot}, nil
}
