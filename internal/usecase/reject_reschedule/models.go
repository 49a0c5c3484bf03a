package reject_reschedule

import (
	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

// Request модель отклонения заявки администратором
type Request struct {
	RequestID  int64
	AdminNotes *string
}

// Response отклонённая заявка
type Response struct {
	Request *domain.RescheduleRequest
}
