package reject_reschedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	rescheduleRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/reschedule"
)

// UseCase use case для отклонения переноса. Слоты не меняются.
type UseCase struct {
	rescheduleRepo RescheduleRepository
	metrics        Metrics
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(rescheduleRepo RescheduleRepository, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		rescheduleRepo: rescheduleRepo,
		metrics:        metrics,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case отклонения переноса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RejectReschedule: request=%d", req.RequestID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RejectReschedule: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	request, err := uc.rescheduleRepo.GetByID(ctx, req.RequestID)
	if err != nil {
		if errors.Is(err, rescheduleRepo.ErrRequestNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrRequestNotFound, req.RequestID)
		}
		uc.logger.Error("RejectReschedule: failed to get request: %v", err)
		return nil, fmt.Errorf("%w: failed to get request: %v", ErrInternal, err)
	}
	if request.IsExpired(now) {
		return nil, fmt.Errorf("%w: request %d", ErrRequestExpired, request.ID)
	}

	// Отметка с проверкой статуса pending в том же UPDATE
	err = uc.rescheduleRepo.Resolve(ctx, request.ID, domain.RescheduleRejected, req.AdminNotes, now)
	if err != nil {
		if errors.Is(err, rescheduleRepo.ErrNotPending) {
			uc.logger.Warn("RejectReschedule: request %d is %s", request.ID, request.Status)
			return nil, fmt.Errorf("%w: request %d", ErrRequestNotPending, request.ID)
		}
		uc.logger.Error("RejectReschedule: failed to resolve request: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve request: %v", ErrInternal, err)
	}

	rejected, err := uc.rescheduleRepo.GetByID(ctx, request.ID)
	if err != nil {
		uc.logger.Error("RejectReschedule: failed to reload request: %v", err)
		return nil, fmt.Errorf("%w: failed to reload request: %v", ErrInternal, err)
	}

	if uc.metrics != nil {
		uc.metrics.ObserveReschedule("rejected")
	}

	uc.logger.Info("RejectReschedule: request %d rejected", request.ID)

	return &Response{Request: rejected}, nil
}
