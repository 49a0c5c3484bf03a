package events

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/internal/integrations/loyaltyservice"
	"github.com/m04kA/SMC-DetailingBooking/internal/integrations/notifications"
)

const (
	collaboratorNotifications = "notifications"
	collaboratorLoyalty       = "loyalty"
)

// Service доставляет побочные эффекты после фиксации транзакции.
// Ошибки получателей логируются и считаются, но не возвращаются вызывающему:
// бронирование к этому моменту уже сохранено.
type Service struct {
	notifier Notifier
	loyalty  LoyaltyClient
	metrics  Metrics
	timeout  time.Duration
	logger   Logger
}

// NewService создает сервис событий. loyalty и metrics могут быть nil.
func NewService(notifier Notifier, loyalty LoyaltyClient, metrics Metrics, timeout time.Duration, logger Logger) *Service {
	return &Service{
		notifier: notifier,
		loyalty:  loyalty,
		metrics:  metrics,
		timeout:  timeout,
		logger:   logger,
	}
}

// Publish отправляет событие в сервис уведомлений
func (s *Service) Publish(ctx context.Context, event notifications.BookingEvent) {
	ctx, cancel := s.detach(ctx)
	defer cancel()

	if err := s.notifier.Publish(ctx, event); err != nil {
		s.fail(collaboratorNotifications)
		s.logger.Warn("Publish: %s for booking %s failed: %v", event.Type, event.Reference, err)
	}
}

// BookingCompleted сообщает сервису лояльности о завершённой работе
func (s *Service) BookingCompleted(ctx context.Context, b *domain.Booking) {
	if s.loyalty == nil {
		return
	}

	ctx, cancel := s.detach(ctx)
	defer cancel()

	completedAt := b.UpdatedAt
	if b.CompletedAt != nil {
		completedAt = *b.CompletedAt
	}

	err := s.loyalty.BookingCompleted(ctx, loyaltyservice.CompletedBooking{
		BookingID:   b.ID,
		Reference:   b.Reference,
		CustomerID:  b.CustomerID,
		TotalPrice:  b.TotalPrice.StringFixed(2),
		ServiceName: b.ServiceName,
		CompletedAt: completedAt,
	})
	if err != nil {
		s.fail(collaboratorLoyalty)
		s.logger.Warn("BookingCompleted: loyalty for booking %s failed: %v", b.Reference, err)
	}
}

// detach отвязывает вызов от отмены HTTP запроса: клиент мог уже отключиться
func (s *Service) detach(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = context.WithoutCancel(ctx)
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *Service) fail(collaborator string) {
	if s.metrics != nil {
		s.metrics.IncCollaboratorFailure(collaborator)
	}
}
