package reject_reschedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingBooking/internal/api/handlers"
	rejectReschedule "github.com/m04kA/SMC-DetailingBooking/internal/usecase/reject_reschedule"
)

const (
	msgInvalidRequestID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "заявка не найдена"
	msgExpired            = "срок заявки истёк"
	msgNotPending         = "заявка уже рассмотрена"
	msgInvalidData        = "некорректные данные"
)

// DecisionRequest HTTP request model. Тело необязательно.
type DecisionRequest struct {
	AdminNotes *string `json:"adminNotes,omitempty"`
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

// Handle POST /api/v1/reschedule-requests/{requestId}/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID, err := handlers.PathInt64(r, "requestId")
	if err != nil {
		h.logger.Warn("POST /reschedule-requests/{id}/reject - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	var req DecisionRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /reschedule-requests/{id}/reject - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &rejectReschedule.Request{
		RequestID:  requestID,
		AdminNotes: req.AdminNotes,
	})
	if err != nil {
		switch {
		case errors.Is(err, rejectReschedule.ErrRequestNotFound):
			h.logger.Warn("POST /reschedule-requests/{id}/reject - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rejectReschedule.ErrRequestExpired):
			h.logger.Warn("POST /reschedule-requests/{id}/reject - Request expired: request_id=%d", requestID)
			handlers.RespondConflict(w, msgExpired)

		case errors.Is(err, rejectReschedule.ErrRequestNotPending):
			h.logger.Warn("POST /reschedule-requests/{id}/reject - Request not pending: request_id=%d", requestID)
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, rejectReschedule.ErrInvalidInput):
			h.logger.Warn("POST /reschedule-requests/{id}/reject - Invalid data: request_id=%d, error=%v", requestID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /reschedule-requests/{id}/reject - Failed to reject: request_id=%d, error=%v", requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reschedule-requests/{id}/reject - Request rejected: request_id=%d", requestID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainReschedule(result.Request))
}
