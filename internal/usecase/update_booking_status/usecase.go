package update_booking_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-DetailingBooking/internal/integrations/notifications"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/capacity"
)

// UseCase use case для смены статуса бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	capacity     CapacityService
	txManager    TransactionManager
	events       EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	capacity CapacityService,
	txManager TransactionManager,
	events EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		capacity:     capacity,
		txManager:    txManager,
		events:       events,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case смены статуса.
// Статус меняется compare-and-set по прочитанным статусу и слоту, поэтому освобождается
// именно тот слот, который учитывает бронирование. При отмене место возвращается
// в той же транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBookingStatus: booking=%d, status=%s", req.BookingID, req.Status)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBookingStatus: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	resp := &Response{}

	// 3. Выполняем операции с БД в транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Текущее состояние
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return fmt.Errorf("%w: id=%d", ErrBookingNotFound, req.BookingID)
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		resp.PreviousStatus = booking.Status

		// 3.2. Проверка перехода
		noop, err := domain.CheckTransition(booking.Status, req.Status)
		if err != nil {
			return transitionError(err, booking.Status, req.Status)
		}
		if noop {
			resp.Booking = booking
			resp.AlreadyFinalized = booking.IsFinalized()
			return nil
		}

		// 3.3. Смена статуса
		change := domain.StatusChange{
			BookingID: booking.ID,
			SlotID:    booking.SlotID,
			From:      booking.Status,
			To:        req.Status,
			At:        now,
		}
		if req.Status == domain.StatusCancelled {
			change.CancellationReason = req.CancellationReason
			if booking.PaymentStatus == domain.PaymentPaid {
				refunded := domain.PaymentRefunded
				change.PaymentStatus = &refunded
			}
		}

		if err := uc.bookingRepo.UpdateStatus(txCtx, change); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				return fmt.Errorf("%w: booking id=%d", ErrConcurrentUpdate, booking.ID)
			}
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		// 3.4. Отмена возвращает место в слот. no_show место не возвращает.
		if !req.Status.ConsumesSlot() && booking.Status.ConsumesSlot() {
			if err := uc.capacity.Release(txCtx, booking.SlotID, now); err != nil {
				if errors.Is(err, capacity.ErrInvariantViolation) {
					return fmt.Errorf("%w: %w", ErrInternal, err)
				}
				return fmt.Errorf("%w: failed to release slot %d: %v", ErrInternal, booking.SlotID, err)
			}
		}

		// 3.5. Сохранённое состояние
		updated, err := uc.bookingRepo.GetByID(txCtx, booking.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
		}

		resp.Booking = updated
		resp.Changed = true
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrInternal):
			uc.logger.Error("UpdateBookingStatus: transaction rolled back: %v", err)
		default:
			uc.logger.Warn("UpdateBookingStatus: %v", err)
		}
		return nil, err
	}

	if !resp.Changed {
		if resp.AlreadyFinalized {
			uc.logger.Warn("UpdateBookingStatus: booking %s is already %s", resp.Booking.Reference, resp.Booking.Status)
		}
		return resp, nil
	}

	uc.logger.Info("UpdateBookingStatus: booking %s %s -> %s", resp.Booking.Reference, resp.PreviousStatus, resp.Booking.Status)

	// 4. Побочные эффекты только после фиксации
	if uc.metrics != nil {
		uc.metrics.ObserveBookingTransition(string(resp.PreviousStatus), string(resp.Booking.Status))
	}
	if resp.Booking.Status == domain.StatusCompleted {
		uc.events.BookingCompleted(ctx, resp.Booking)
	}
	if eventType, ok := notifications.TerminalEvent(resp.Booking.Status); ok {
		uc.events.Publish(ctx, notifications.NewBookingEvent(eventType, resp.Booking, now))
	}

	return resp, nil
}

func transitionError(err error, from, to domain.BookingStatus) error {
	switch {
	case errors.Is(err, domain.ErrAlreadyFinalized):
		return fmt.Errorf("%w: %w: %s -> %s", ErrAlreadyFinalized, ErrInvalidTransition, from, to)
	case errors.Is(err, domain.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
}
