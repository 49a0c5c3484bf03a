package events

import (
	"context"

	"github.com/m04kA/SMC-DetailingBooking/internal/integrations/loyaltyservice"
	"github.com/m04kA/SMC-DetailingBooking/internal/integrations/notifications"
)

// Notifier публикатор событий бронирований
type Notifier interface {
	Publish(ctx context.Context, event notifications.BookingEvent) error
}

// LoyaltyClient клиент сервиса лояльности
type LoyaltyClient interface {
	BookingCompleted(ctx context.Context, booking loyaltyservice.CompletedBooking) error
}

// Metrics счётчик ошибок внешних получателей
type Metrics interface {
	IncCollaboratorFailure(collaborator string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
