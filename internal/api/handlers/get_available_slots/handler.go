package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingBooking/internal/api/middleware"
	listSlots "github.com/m04kA/SMC-DetailingBooking/internal/usecase/list_available_slots"
)

const (
	msgInvalidQuery = "некорректные параметры: dateFrom и dateTo в формате YYYY-MM-DD обязательны"
	msgInvalidRange = "некорректный диапазон дат"
)

type Handler struct {
	useCase ListSlotsUseCase
	logger  Logger
}

func NewHandler(useCase ListSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots
// Query params: dateFrom, dateTo (required, YYYY-MM-DD), onlyAvailable, includeBlocked (admin)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query(), middleware.IsAdmin(r.Context()))
	if err != nil {
		h.logger.Warn("GET /slots - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, listSlots.ErrInvalidInput):
			h.logger.Warn("GET /slots - Invalid range: from=%s, to=%s, error=%v", useCaseReq.From, useCaseReq.To, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /slots - Failed to list slots: from=%s, to=%s, error=%v", useCaseReq.From, useCaseReq.To, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots - Slots retrieved: from=%s, to=%s, count=%d", useCaseReq.From, useCaseReq.To, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
