package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/slot"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/bookings/models"
)

// Service чтение бронирований вместе со слотом, клиентом, автомобилем и заявками на перенос
type Service struct {
	bookingRepo    BookingRepository
	slotRepo       SlotRepository
	customerRepo   CustomerRepository
	vehicleRepo    VehicleRepository
	rescheduleRepo RescheduleRepository
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	customerRepo CustomerRepository,
	vehicleRepo VehicleRepository,
	rescheduleRepo RescheduleRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		slotRepo:       slotRepo,
		customerRepo:   customerRepo,
		vehicleRepo:    vehicleRepo,
		rescheduleRepo: rescheduleRepo,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// GetByReference получает бронирование по номеру DT-XXXXXXXX
func (s *Service) GetByReference(ctx context.Context, reference string) (*models.BookingResponse, error) {
	reference = strings.ToUpper(strings.TrimSpace(reference))
	s.logger.Info("GetByReference: fetching booking reference=%s", reference)

	if !strings.HasPrefix(reference, domain.ReferencePrefix) ||
		len(reference) != len(domain.ReferencePrefix)+domain.ReferenceLength {
		s.logger.Warn("GetByReference: malformed reference=%s", reference)
		return nil, fmt.Errorf("%w: malformed reference", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByReference: booking reference=%s not found", reference)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByReference: repository error for reference=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: GetByReference - repository error: %v", ErrInternal, err)
	}

	return s.details(ctx, booking)
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return s.details(ctx, booking)
}

// ListBySlot бронирования слота для администратора, включая отменённые
func (s *Service) ListBySlot(ctx context.Context, slotID int64) (*models.SlotBookingsResponse, error) {
	s.logger.Info("ListBySlot: fetching bookings for slot id=%d", slotID)

	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("ListBySlot: slot id=%d not found", slotID)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("ListBySlot: failed to get slot id=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: ListBySlot - failed to get slot: %v", ErrInternal, err)
	}

	bookings, err := s.bookingRepo.ListBySlot(ctx, slotID)
	if err != nil {
		s.logger.Error("ListBySlot: repository error for slot id=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: ListBySlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBySlot: found %d bookings for slot id=%d", len(bookings), slotID)
	return models.FromDomainSlotBookings(slot, bookings), nil
}

// details дочитывает связанные сущности
func (s *Service) details(ctx context.Context, booking *domain.Booking) (*models.BookingResponse, error) {
	slot, err := s.slotRepo.GetByID(ctx, booking.SlotID)
	if err != nil {
		s.logger.Error("details: failed to get slot id=%d for booking id=%d: %v", booking.SlotID, booking.ID, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	customer, err := s.customerRepo.GetByID(ctx, booking.CustomerID)
	if err != nil {
		s.logger.Error("details: failed to get customer id=%d for booking id=%d: %v", booking.CustomerID, booking.ID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, booking.VehicleID)
	if err != nil {
		s.logger.Error("details: failed to get vehicle id=%d for booking id=%d: %v", booking.VehicleID, booking.ID, err)
		return nil, fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}

	requests, err := s.rescheduleRepo.ListByBooking(ctx, booking.ID)
	if err != nil {
		s.logger.Error("details: failed to list reschedule requests for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to list reschedule requests: %v", ErrInternal, err)
	}

	details := &domain.BookingDetails{
		Booking:  *booking,
		Slot:     *slot,
		Customer: *customer,
		Vehicle:  *vehicle,
	}

	s.logger.Info("details: fetched booking id=%d with %d reschedule requests", booking.ID, len(requests))
	return models.FromDomainDetails(details, requests, s.timeProvider.Now()), nil
}
