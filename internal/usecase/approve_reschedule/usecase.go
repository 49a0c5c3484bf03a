package approve_reschedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/booking"
	rescheduleRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/reschedule"
	"github.com/m04kA/SMC-DetailingBooking/internal/integrations/notifications"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/capacity"
)

// UseCase use case для одобрения переноса.
// Резерв нового слота, смена слота бронирования, освобождение старого и отметка заявки
// выполняются в одной транзакции: либо всё, либо ничего.
type UseCase struct {
	bookingRepo    BookingRepository
	rescheduleRepo RescheduleRepository
	capacity       CapacityService
	txManager      TransactionManager
	events         EventPublisher
	metrics        Metrics
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	rescheduleRepo RescheduleRepository,
	capacity CapacityService,
	txManager TransactionManager,
	events EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		rescheduleRepo: rescheduleRepo,
		capacity:       capacity,
		txManager:      txManager,
		events:         events,
		metrics:        metrics,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case одобрения переноса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApproveReschedule: request=%d", req.RequestID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ApproveReschedule: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	resp := &Response{}

	// 3. Выполняем операции с БД в транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Заявка
		request, err := uc.rescheduleRepo.GetByID(txCtx, req.RequestID)
		if err != nil {
			if errors.Is(err, rescheduleRepo.ErrRequestNotFound) {
				return fmt.Errorf("%w: id=%d", ErrRequestNotFound, req.RequestID)
			}
			return fmt.Errorf("%w: failed to get request: %v", ErrInternal, err)
		}
		if request.IsExpired(now) {
			return fmt.Errorf("%w: request %d expired at %s", ErrRequestExpired, request.ID, request.ExpiresAt)
		}
		if request.Status != domain.ReschedulePending {
			return fmt.Errorf("%w: request %d is %s", ErrRequestNotPending, request.ID, request.Status)
		}

		// 3.2. Бронирование всё ещё в исходном слоте и не начато
		booking, err := uc.bookingRepo.GetByID(txCtx, request.BookingID)
		if err != nil {
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		if !booking.CanBeRescheduled() {
			return fmt.Errorf("%w: booking %s is %s", ErrStaleRequest, booking.Reference, booking.Status)
		}
		if booking.SlotID != request.OriginalSlotID {
			return fmt.Errorf("%w: booking %s moved to slot %d", ErrStaleRequest, booking.Reference, booking.SlotID)
		}

		// 3.3. Резерв нового слота
		if err := uc.capacity.Reserve(txCtx, request.RequestedSlotID, now); err != nil {
			switch {
			case errors.Is(err, capacity.ErrSlotUnavailable):
				return fmt.Errorf("%w: slot id=%d", ErrSlotUnavailable, request.RequestedSlotID)
			case errors.Is(err, capacity.ErrSlotNotFound):
				return fmt.Errorf("%w: slot id=%d", ErrSlotNotFound, request.RequestedSlotID)
			default:
				return fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
			}
		}

		// 3.4. Перенос бронирования (compare-and-set по старому слоту и активному статусу)
		if err := uc.bookingRepo.UpdateSlot(txCtx, booking.ID, request.OriginalSlotID, request.RequestedSlotID, now); err != nil {
			if errors.Is(err, bookingRepo.ErrSlotConflict) {
				return fmt.Errorf("%w: booking %s", ErrStaleRequest, booking.Reference)
			}
			return fmt.Errorf("%w: failed to move booking: %v", ErrInternal, err)
		}

		// 3.5. Освобождение старого слота
		if err := uc.capacity.Release(txCtx, request.OriginalSlotID, now); err != nil {
			return fmt.Errorf("%w: failed to release slot %d: %w", ErrInternal, request.OriginalSlotID, err)
		}

		// 3.6. Отметка заявки
		if err := uc.rescheduleRepo.Resolve(txCtx, request.ID, domain.RescheduleApproved, req.AdminNotes, now); err != nil {
			if errors.Is(err, rescheduleRepo.ErrNotPending) {
				return fmt.Errorf("%w: request %d", ErrRequestNotPending, request.ID)
			}
			return fmt.Errorf("%w: failed to resolve request: %v", ErrInternal, err)
		}

		resp.Request, err = uc.rescheduleRepo.GetByID(txCtx, request.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to reload request: %v", ErrInternal, err)
		}
		resp.Booking, err = uc.bookingRepo.GetByID(txCtx, booking.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("ApproveReschedule: transaction rolled back: %v", err)
		} else {
			uc.logger.Warn("ApproveReschedule: %v", err)
		}
		if uc.metrics != nil && errors.Is(err, domain.ErrRequestExpired) {
			uc.metrics.ObserveReschedule("expired")
		}
		return nil, err
	}

	uc.logger.Info("ApproveReschedule: booking %s moved from slot %d to slot %d",
		resp.Booking.Reference, resp.Request.OriginalSlotID, resp.Request.RequestedSlotID)

	// 4. Побочные эффекты только после фиксации
	if uc.metrics != nil {
		uc.metrics.ObserveReschedule("approved")
	}
	event := notifications.NewBookingEvent(notifications.EventBookingRescheduled, resp.Booking, now)
	previous := resp.Request.OriginalSlotID
	event.PreviousSlotID = &previous
	uc.events.Publish(ctx, event)

	return resp, nil
}
