package list_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

// UseCase use case для получения слотов с доступностью.
// Чтение без блокировок: результат может устареть к моменту бронирования,
// окончательную проверку делает резервирование.
type UseCase struct {
	slotRepo     SlotRepository
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, location *time.Location, logger Logger) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ListAvailableSlots: from=%s, to=%s, onlyAvailable=%t, includeBlocked=%t",
		req.From, req.To, req.OnlyAvailable, req.IncludeBlocked)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ListAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Слоты из хранилища
	slots, err := uc.slotRepo.ListByRange(ctx, domain.SlotFilter{
		From:           req.From,
		To:             req.To,
		OnlyAvailable:  req.OnlyAvailable,
		IncludeBlocked: req.IncludeBlocked,
	})
	if err != nil {
		uc.logger.Error("ListAvailableSlots: failed to list slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	// 3. Уже начавшиеся слоты забронировать нельзя
	now := uc.timeProvider.Now()
	result := make([]Slot, 0, len(slots))
	for i := range slots {
		s := &slots[i]
		if req.OnlyAvailable && !s.StartsAt(uc.location).After(now) {
			continue
		}
		result = append(result, Slot{
			ID:             s.ID,
			Date:           s.Date,
			StartTime:      s.StartTime,
			EndTime:        s.EndTime,
			State:          s.State(),
			TotalSpots:     s.MaxCapacity,
			BookedSpots:    s.CurrentBookings,
			AvailableSpots: s.RemainingCapacity(),
			BlockReason:    s.BlockReason,
		})
	}

	uc.logger.Info("ListAvailableSlots: returning %d slots", len(result))

	return &Response{
		From:  req.From,
		To:    req.To,
		Slots: result,
	}, nil
}
