package capacity

import (
	"context"
	"errors"
	"fmt"
	"time"

	slotRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/slot"
)

const (
	resultOK          = "ok"
	resultUnavailable = "unavailable"
	resultNotFound    = "not_found"
	resultViolation   = "invariant_violation"
	resultError       = "error"
)

// Service единственная точка изменения счётчика занятых мест слота.
// Вызывается внутри транзакции вызывающего use case.
type Service struct {
	slotRepo SlotRepository
	metrics  Metrics
	logger   Logger
}

// NewService создает сервис ёмкости слотов. metrics может быть nil.
func NewService(slotRepo SlotRepository, metrics Metrics, logger Logger) *Service {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Service{
		slotRepo: slotRepo,
		metrics:  metrics,
		logger:   logger,
	}
}

// Reserve занимает одно место в слоте
func (s *Service) Reserve(ctx context.Context, slotID int64, now time.Time) error {
	err := s.slotRepo.Reserve(ctx, slotID, now)
	switch {
	case err == nil:
		s.metrics.ObserveReservation(resultOK)
		return nil
	case errors.Is(err, slotRepo.ErrSlotNotFound):
		s.metrics.ObserveReservation(resultNotFound)
		s.logger.Warn("Reserve: slot id=%d not found", slotID)
		return fmt.Errorf("%w: id=%d", ErrSlotNotFound, slotID)
	case errors.Is(err, slotRepo.ErrSlotUnavailable):
		s.metrics.ObserveReservation(resultUnavailable)
		s.logger.Warn("Reserve: slot id=%d is full or blocked", slotID)
		return fmt.Errorf("%w: id=%d", ErrSlotUnavailable, slotID)
	default:
		s.metrics.ObserveReservation(resultError)
		s.logger.Error("Reserve: failed to reserve slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: Reserve - repository error: %v", ErrInternal, err)
	}
}

// Release возвращает одно место в слот.
// Попытка освободить место в пустом слоте означает рассинхронизацию счётчика и не скрывается.
func (s *Service) Release(ctx context.Context, slotID int64, now time.Time) error {
	err := s.slotRepo.Release(ctx, slotID, now)
	switch {
	case err == nil:
		s.metrics.ObserveRelease(resultOK)
		return nil
	case errors.Is(err, slotRepo.ErrSlotNotFound):
		s.metrics.ObserveRelease(resultNotFound)
		s.logger.Warn("Release: slot id=%d not found", slotID)
		return fmt.Errorf("%w: id=%d", ErrSlotNotFound, slotID)
	case errors.Is(err, slotRepo.ErrCounterUnderflow):
		s.metrics.ObserveRelease(resultViolation)
		s.metrics.IncCapacityViolation()
		s.logger.Error("Release: CAPACITY INVARIANT VIOLATION slot id=%d: counter is already zero", slotID)
		return fmt.Errorf("%w: release on empty slot id=%d", ErrInvariantViolation, slotID)
	default:
		s.metrics.ObserveRelease(resultError)
		s.logger.Error("Release: failed to release slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: Release - repository error: %v", ErrInternal, err)
	}
}

type nopMetrics struct{}

func (nopMetrics) ObserveReservation(string) {}
func (nopMetrics) ObserveRelease(string)     {}
func (nopMetrics) IncCapacityViolation()     {}
