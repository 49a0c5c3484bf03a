package approve_reschedule

import (
	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

// Request модель одобрения заявки администратором
type Request struct {
	RequestID  int64
	AdminNotes *string
}

// Response одобренная заявка и бронирование в новом слоте
type Response struct {
	Request *domain.RescheduleRequest
	Booking *domain.Booking
}
