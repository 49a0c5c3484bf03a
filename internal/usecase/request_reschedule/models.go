package request_reschedule

import (
	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

// Request модель заявки клиента на перенос
type Request struct {
	BookingID int64
	NewSlotID int64
	Reason    *string
}

// Response созданная заявка
type Response struct {
	Request *domain.RescheduleRequest
}
