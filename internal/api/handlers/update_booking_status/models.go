package update_booking_status

import (
	"github.com/m04kA/SMC-DetailingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	updateStatus "github.com/m04kA/SMC-DetailingBooking/internal/usecase/update_booking_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// UpdateStatusResponse HTTP response model
type UpdateStatusResponse struct {
	Booking          *handlers.BookingResponse `json:"booking"`
	PreviousStatus   string                    `json:"previousStatus"`
	Changed          bool                      `json:"changed"`
	AlreadyFinalized bool                      `json:"alreadyFinalized"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateStatusRequest) ToUseCaseRequest(bookingID int64) *updateStatus.Request {
	return &updateStatus.Request{
		BookingID:          bookingID,
		Status:             domain.BookingStatus(r.Status),
		CancellationReason: r.CancellationReason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateStatus.Response) *UpdateStatusResponse {
	return &UpdateStatusResponse{
		Booking:          handlers.FromDomainBooking(resp.Booking),
		PreviousStatus:   string(resp.PreviousStatus),
		Changed:          resp.Changed,
		AlreadyFinalized: resp.AlreadyFinalized,
	}
}
