package approve_reschedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingBooking/internal/api/handlers"
	approveReschedule "github.com/m04kA/SMC-DetailingBooking/internal/usecase/approve_reschedule"
)

const (
	msgInvalidRequestID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "заявка не найдена"
	msgExpired            = "срок заявки истёк"
	msgNotPending         = "заявка уже рассмотрена"
	msgStale              = "бронирование изменилось после подачи заявки"
	msgSlotNotFound       = "слот не найден"
	msgSlotUnavailable    = "в выбранном слоте нет мест"
	msgInvalidData        = "некорректные данные"
)

// DecisionRequest HTTP request model. Тело необязательно.
type DecisionRequest struct {
	AdminNotes *string `json:"adminNotes,omitempty"`
}

// ApproveResponse HTTP response model
type ApproveResponse struct {
	Request *handlers.RescheduleResponse `json:"request"`
	Booking *handlers.BookingResponse    `json:"booking"`
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

// Handle POST /api/v1/reschedule-requests/{requestId}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID, err := handlers.PathInt64(r, "requestId")
	if err != nil {
		h.logger.Warn("POST /reschedule-requests/{id}/approve - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	var req DecisionRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /reschedule-requests/{id}/approve - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &approveReschedule.Request{
		RequestID:  requestID,
		AdminNotes: req.AdminNotes,
	})
	if err != nil {
		switch {
		case errors.Is(err, approveReschedule.ErrRequestNotFound):
			h.logger.Warn("POST /reschedule-requests/{id}/approve - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, approveReschedule.ErrRequestExpired):
			h.logger.Warn("POST /reschedule-requests/{id}/approve - Request expired: request_id=%d", requestID)
			handlers.RespondConflict(w, msgExpired)

		case errors.Is(err, approveReschedule.ErrRequestNotPending):
			h.logger.Warn("POST /reschedule-requests/{id}/approve - Request not pending: request_id=%d", requestID)
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, approveReschedule.ErrStaleRequest):
			h.logger.Warn("POST /reschedule-requests/{id}/approve - Stale request: request_id=%d", requestID)
			handlers.RespondConflict(w, msgStale)

		case errors.Is(err, approveReschedule.ErrSlotNotFound):
			h.logger.Warn("POST /reschedule-requests/{id}/approve - Slot not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, approveReschedule.ErrSlotUnavailable):
			h.logger.Warn("POST /reschedule-requests/{id}/approve - Slot unavailable: request_id=%d", requestID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, approveReschedule.ErrInvalidInput):
			h.logger.Warn("POST /reschedule-requests/{id}/approve - Invalid data: request_id=%d, error=%v", requestID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /reschedule-requests/{id}/approve - Failed to approve: request_id=%d, error=%v", requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reschedule-requests/{id}/approve - Request approved: request_id=%d, booking_id=%d, slot_id=%d",
		requestID, result.Booking.ID, result.Booking.SlotID)
	handlers.RespondJSON(w, http.StatusOK, &ApproveResponse{
		Request: handlers.FromDomainReschedule(result.Request),
		Booking: handlers.FromDomainBooking(result.Booking),
	})
}
