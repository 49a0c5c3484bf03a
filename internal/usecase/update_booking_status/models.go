package update_booking_status

import (
	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

// Request модель запроса на смену статуса
type Request struct {
	BookingID          int64
	Status             domain.BookingStatus
	CancellationReason *string
}

// Response бронирование после смены статуса.
// AlreadyFinalized = true, когда терминальный статус запрошен повторно: это не ошибка, но изменений не было.
type Response struct {
	Booking          *domain.Booking
	PreviousStatus   domain.BookingStatus
	Changed          bool
	AlreadyFinalized bool
}
