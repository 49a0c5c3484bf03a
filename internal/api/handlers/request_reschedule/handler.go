package request_reschedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingBooking/internal/api/handlers"
	requestReschedule "github.com/m04kA/SMC-DetailingBooking/internal/usecase/request_reschedule"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBookingNotFound    = "бронирование не найдено"
	msgSlotNotFound       = "слот не найден"
	msgSlotUnavailable    = "выбранный слот недоступен"
	msgNotReschedulable   = "бронирование нельзя перенести в текущем статусе"
	msgPending            = "по бронированию уже есть заявка на перенос"
	msgInvalidData        = "некорректные данные заявки"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	NewSlotID int64   `json:"newSlotId"`
	Reason    *string `json:"reason,omitempty"`
}

type Handler struct {
	useCase UseCase
	logger  Logger
}

func NewHandler(useCase UseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/reschedule-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule-requests - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule-requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &requestReschedule.Request{
		BookingID: bookingID,
		NewSlotID: req.NewSlotID,
		Reason:    req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, requestReschedule.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/reschedule-requests - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, requestReschedule.ErrSlotNotFound):
			h.logger.Warn("POST /bookings/{id}/reschedule-requests - Slot not found: slot_id=%d", req.NewSlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, requestReschedule.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings/{id}/reschedule-requests - Slot unavailable: slot_id=%d", req.NewSlotID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, requestReschedule.ErrNotReschedulable):
			h.logger.Warn("POST /bookings/{id}/reschedule-requests - Not reschedulable: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotReschedulable)

		case errors.Is(err, requestReschedule.ErrReschedulePending):
			h.logger.Warn("POST /bookings/{id}/reschedule-requests - Pending request exists: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgPending)

		case errors.Is(err, requestReschedule.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/reschedule-requests - Invalid data: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /bookings/{id}/reschedule-requests - Failed to create request: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/reschedule-requests - Request created: booking_id=%d, request_id=%d, slot %d -> %d",
		bookingID, result.Request.ID, result.Request.OriginalSlotID, result.Request.RequestedSlotID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromDomainReschedule(result.Request))
}
