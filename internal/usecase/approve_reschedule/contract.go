package approve_reschedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/internal/integrations/notifications"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateSlot(ctx context.Context, id, fromSlotID, toSlotID int64, now time.Time) error
}

// RescheduleRepository интерфейс репозитория заявок на перенос
type RescheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.RescheduleRequest, error)
	Resolve(ctx context.Context, id int64, status domain.RescheduleStatus, adminNotes *string, at time.Time) error
}

// CapacityService резервирование и освобождение мест
type CapacityService interface {
	Reserve(ctx context.Context, slotID int64, now time.Time) error
	Release(ctx context.Context, slotID int64, now time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher доставка событий после фиксации транзакции
type EventPublisher interface {
	Publish(ctx context.Context, event notifications.BookingEvent)
}

// Metrics счётчик заявок на перенос
type Metrics interface {
	ObserveReschedule(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
