package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

// Customer контакт клиента. UserID задан для зарегистрированного пользователя.
type Customer struct {
	UserID *int64
	Name   string
	Email  string
	Phone  string
}

// Vehicle автомобиль, который обслуживает бригада
type Vehicle struct {
	Registration string
	Make         string
	Model        string
	Colour       *string
	Size         string
}

// Request модель запроса на создание бронирования
type Request struct {
	Customer Customer
	Vehicle  Vehicle
	SlotID   int64
	Pricing  domain.Pricing
	Notes    *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64
	Reference     string
	CustomerID    int64
	VehicleID     int64
	SlotID        int64
	ServiceName   string
	TotalPrice    decimal.Decimal
	Status        domain.BookingStatus
	PaymentStatus domain.PaymentStatus
	Notes         *string
	ConfirmedAt   *time.Time
	CreatedAt     time.Time
}
