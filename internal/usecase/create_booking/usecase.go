package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-DetailingBooking/internal/integrations/notifications"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/capacity"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	customerRepo CustomerRepository
	vehicleRepo  VehicleRepository
	capacity     CapacityService
	txManager    TransactionManager
	events       EventPublisher
	references   ReferenceGenerator
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	vehicleRepo VehicleRepository,
	capacity CapacityService,
	txManager TransactionManager,
	events EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		vehicleRepo:  vehicleRepo,
		capacity:     capacity,
		txManager:    txManager,
		events:       events,
		references:   UUIDReferenceGenerator{},
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Резервирование места, клиент, автомобиль и бронирование пишутся в одной транзакции:
// при любой ошибке откат возвращает счётчик слота к прежнему значению.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: slot=%d, service=%q, registration=%s",
		req.SlotID, req.Pricing.ServiceName, req.Vehicle.Registration)

	// 1. Валидация входных данных
	normalizeRequest(req)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var result *domain.Booking

	// 3. Выполняем операции с БД в транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Занимаем место в слоте
		if err := uc.capacity.Reserve(txCtx, req.SlotID, now); err != nil {
			switch {
			case errors.Is(err, capacity.ErrSlotUnavailable):
				return fmt.Errorf("%w: slot id=%d", ErrSlotUnavailable, req.SlotID)
			case errors.Is(err, capacity.ErrSlotNotFound):
				return fmt.Errorf("%w: slot id=%d", ErrSlotNotFound, req.SlotID)
			default:
				return fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
			}
		}

		// 3.2. Клиент
		customer, err := uc.customerRepo.CreateIfAbsent(txCtx, &domain.Customer{
			UserID:    req.Customer.UserID,
			Name:      req.Customer.Name,
			Email:     req.Customer.Email,
			Phone:     req.Customer.Phone,
			CreatedAt: now,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to resolve customer: %v", err)
			return fmt.Errorf("%w: failed to resolve customer: %v", ErrInternal, err)
		}

		// 3.3. Автомобиль
		vehicle, err := uc.vehicleRepo.CreateIfAbsent(txCtx, &domain.Vehicle{
			CustomerID:   customer.ID,
			Registration: req.Vehicle.Registration,
			Make:         req.Vehicle.Make,
			Model:        req.Vehicle.Model,
			Colour:       req.Vehicle.Colour,
			Size:         domain.VehicleSize(req.Vehicle.Size),
			CreatedAt:    now,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to resolve vehicle: %v", err)
			return fmt.Errorf("%w: failed to resolve vehicle: %v", ErrInternal, err)
		}

		// 3.4. Бронирование
		booking := newBooking(req, customer.ID, vehicle.ID, now)

		// 3.5. Номер бронирования с повтором при совпадении
		created, err := uc.insertWithReference(txCtx, booking)
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrSlotUnavailable) || errors.Is(err, domain.ErrSlotNotFound) {
			uc.logger.Warn("CreateBooking: %v", err)
		} else {
			uc.logger.Error("CreateBooking: transaction rolled back: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d reference=%s status=%s", result.ID, result.Reference, result.Status)

	// 4. Побочные эффекты только после фиксации
	if uc.metrics != nil {
		uc.metrics.ObserveBookingCreated(string(result.Status))
	}
	uc.events.Publish(ctx, notifications.NewBookingEvent(notifications.EventBookingCreated, result, now))

	return &Response{
		ID:            result.ID,
		Reference:     result.Reference,
		CustomerID:    result.CustomerID,
		VehicleID:     result.VehicleID,
		SlotID:        result.SlotID,
		ServiceName:   result.ServiceName,
		TotalPrice:    result.TotalPrice,
		Status:        result.Status,
		PaymentStatus: result.PaymentStatus,
		Notes:         result.Notes,
		ConfirmedAt:   result.ConfirmedAt,
		CreatedAt:     result.CreatedAt,
	}, nil
}

// insertWithReference подбирает свободный номер за ограниченное число попыток
func (uc *UseCase) insertWithReference(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	for attempt := 1; attempt <= domain.MaxReferenceAttempts; attempt++ {
		booking.Reference = uc.references.Generate()

		created, err := uc.bookingRepo.Create(ctx, booking)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, bookingRepo.ErrDuplicateReference) {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		uc.logger.Warn("CreateBooking: reference %s is taken (attempt %d/%d)",
			booking.Reference, attempt, domain.MaxReferenceAttempts)
	}

	return nil, fmt.Errorf("%w: %w after %d attempts", ErrInternal, ErrReferenceExhausted, domain.MaxReferenceAttempts)
}

// newBooking при оплате заранее бронирование сразу подтверждено
func newBooking(req *Request, customerID, vehicleID int64, now time.Time) *domain.Booking {
	booking := &domain.Booking{
		CustomerID:    customerID,
		VehicleID:     vehicleID,
		SlotID:        req.SlotID,
		ServiceName:   req.Pricing.ServiceName,
		TotalPrice:    req.Pricing.Total(),
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentUnpaid,
		Notes:         req.Notes,
		CreatedAt:     now,
	}

	if req.Pricing.PaidUpfront {
		confirmedAt := now
		booking.Status = domain.StatusConfirmed
		booking.PaymentStatus = domain.PaymentPaid
		booking.ConfirmedAt = &confirmedAt
	}

	return booking
}
