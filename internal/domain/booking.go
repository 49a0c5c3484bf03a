package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
)

// PaymentStatus статус оплаты бронирования
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Pricing цена бронирования. Итог считается как base + extras - discount.
type Pricing struct {
	ServiceName string
	BasePrice   decimal.Decimal
	ExtrasPrice decimal.Decimal
	Discount    decimal.Decimal
	PaidUpfront bool
}

// Total итоговая цена с точностью до копеек
func (p Pricing) Total() decimal.Decimal {
	return p.BasePrice.Add(p.ExtrasPrice).Sub(p.Discount).Round(2)
}

// Booking бронирование. Никогда не удаляется, только меняет статус.
// SlotID указывает на текущий слот (после переноса меняется).
type Booking struct {
	ID            int64
	Reference     string
	CustomerID    int64
	VehicleID     int64
	SlotID        int64
	ServiceName   string
	TotalPrice    decimal.Decimal
	Status        BookingStatus
	PaymentStatus PaymentStatus

	ConfirmedAt *time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
	NoShowAt    *time.Time

	CancellationReason *string
	Notes              *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFinalized возвращает true для терминальных статусов
func (b *Booking) IsFinalized() bool {
	return b.Status.IsTerminal()
}

// CanBeRescheduled перенос возможен только до начала работ
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// BookingDetails бронирование вместе со слотом, клиентом и автомобилем
type BookingDetails struct {
	Booking  Booking
	Slot     Slot
	Customer Customer
	Vehicle  Vehicle
}

// StatusChange изменение статуса с проверкой предыдущего состояния (compare-and-set).
// SlotID слот, в котором бронирование было прочитано: параллельный перенос
// делает изменение недействительным.
type StatusChange struct {
	BookingID          int64
	SlotID             int64
	From               BookingStatus
	To                 BookingStatus
	At                 time.Time
	CancellationReason *string
	PaymentStatus      *PaymentStatus
}
