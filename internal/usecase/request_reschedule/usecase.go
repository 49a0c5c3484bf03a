package request_reschedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/booking"
	rescheduleRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/reschedule"
	slotRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/slot"
)

// UseCase use case для подачи заявки на перенос.
// Слоты не меняются: место резервируется только при одобрении.
type UseCase struct {
	bookingRepo    BookingRepository
	slotRepo       SlotRepository
	rescheduleRepo RescheduleRepository
	txManager      TransactionManager
	metrics        Metrics
	ttl            time.Duration
	location       *time.Location
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	rescheduleRepo RescheduleRepository,
	txManager TransactionManager,
	metrics Metrics,
	ttl time.Duration,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:    bookingRepo,
		slotRepo:       slotRepo,
		rescheduleRepo: rescheduleRepo,
		txManager:      txManager,
		metrics:        metrics,
		ttl:            ttl,
		location:       location,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case подачи заявки на перенос
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RequestReschedule: booking=%d, newSlot=%d", req.BookingID, req.NewSlotID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RequestReschedule: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var created *domain.RescheduleRequest

	// 3. Проверки и вставка в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Бронирование
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return fmt.Errorf("%w: id=%d", ErrBookingNotFound, req.BookingID)
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		if !booking.CanBeRescheduled() {
			return fmt.Errorf("%w: booking %s is %s", ErrNotReschedulable, booking.Reference, booking.Status)
		}
		if booking.SlotID == req.NewSlotID {
			return fmt.Errorf("%w: booking is already in slot %d", ErrInvalidInput, req.NewSlotID)
		}

		// 3.2. Текущий и желаемый слоты
		current, err := uc.slotRepo.GetByID(txCtx, booking.SlotID)
		if err != nil {
			return fmt.Errorf("%w: failed to get current slot: %v", ErrInternal, err)
		}

		target, err := uc.slotRepo.GetByID(txCtx, req.NewSlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return fmt.Errorf("%w: id=%d", ErrSlotNotFound, req.NewSlotID)
			}
			return fmt.Errorf("%w: failed to get target slot: %v", ErrInternal, err)
		}

		targetStart := target.StartsAt(uc.location)
		if !target.IsAvailable() {
			return fmt.Errorf("%w: slot %d is %s", ErrSlotUnavailable, target.ID, target.State())
		}
		if !targetStart.After(now) {
			return fmt.Errorf("%w: slot %d has already started", ErrSlotUnavailable, target.ID)
		}

		// 3.3. Просроченная заявка не мешает подать новую
		if err := uc.expirePending(txCtx, booking.ID, now); err != nil {
			return err
		}

		// 3.4. Заявка со снимками слотов
		created, err = uc.rescheduleRepo.Create(txCtx, &domain.RescheduleRequest{
			BookingID:          booking.ID,
			OriginalSlotID:     current.ID,
			OriginalDate:       current.Date,
			OriginalStartTime:  current.StartTime,
			RequestedSlotID:    target.ID,
			RequestedDate:      target.Date,
			RequestedStartTime: target.StartTime,
			Status:             domain.ReschedulePending,
			Reason:             req.Reason,
			RequestedAt:        now,
			ExpiresAt:          domain.RescheduleExpiry(now, uc.ttl, targetStart),
		})
		if err != nil {
			if errors.Is(err, rescheduleRepo.ErrPendingExists) {
				return fmt.Errorf("%w: booking %s", ErrReschedulePending, booking.Reference)
			}
			return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("RequestReschedule: %v", err)
		} else {
			uc.logger.Warn("RequestReschedule: %v", err)
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ObserveReschedule("requested")
	}

	uc.logger.Info("RequestReschedule: created request id=%d, expires at %s", created.ID, created.ExpiresAt.Format(time.RFC3339))

	return &Response{Request: created}, nil
}

func (uc *UseCase) expirePending(ctx context.Context, bookingID int64, now time.Time) error {
	requests, err := uc.rescheduleRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("%w: failed to list requests: %v", ErrInternal, err)
	}

	for _, r := range requests {
		if !r.IsExpired(now) {
			continue
		}
		err := uc.rescheduleRepo.Resolve(ctx, r.ID, domain.RescheduleExpired, nil, now)
		if err != nil && !errors.Is(err, rescheduleRepo.ErrNotPending) {
			return fmt.Errorf("%w: failed to expire request %d: %v", ErrInternal, r.ID, err)
		}
	}

	return nil
}
