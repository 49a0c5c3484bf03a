package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/internal/integrations/notifications"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	CreateIfAbsent(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
}

// VehicleRepository интерфейс репозитория автомобилей
type VehicleRepository interface {
	CreateIfAbsent(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
}

// CapacityService резервирование мест в слотах
type CapacityService interface {
	Reserve(ctx context.Context, slotID int64, now time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher доставка событий после фиксации транзакции
type EventPublisher interface {
	Publish(ctx context.Context, event notifications.BookingEvent)
}

// ReferenceGenerator генератор номеров бронирований
type ReferenceGenerator interface {
	Generate() string
}

// Metrics счётчик созданных бронирований
type Metrics interface {
	ObserveBookingCreated(status string)
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
