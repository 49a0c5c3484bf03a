package generate_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingBooking/internal/api/handlers"
	generateSlots "github.com/m04kA/SMC-DetailingBooking/internal/usecase/generate_slots"
	"github.com/m04kA/SMC-DetailingBooking/pkg/types"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса, даты ожидаются в формате YYYY-MM-DD"
	msgInvalidRange       = "некорректный диапазон дат"
	msgRangeTooWide       = "диапазон выходит за горизонт генерации"
)

// GenerateRequest HTTP request model. Без тела генерируется весь горизонт от сегодняшнего дня.
type GenerateRequest struct {
	DateFrom *types.Date `json:"dateFrom,omitempty"`
	DateTo   *types.Date `json:"dateTo,omitempty"`
}

// SkippedDay HTTP response model
type SkippedDay struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// GenerateResponse HTTP response model
type GenerateResponse struct {
	DateFrom    string       `json:"dateFrom"`
	DateTo      string       `json:"dateTo"`
	Requested   int          `json:"requested"`
	Inserted    int          `json:"inserted"`
	SkippedDays []SkippedDay `json:"skippedDays"`
}

// Generator use case с горизонтом по умолчанию
type Generator interface {
	UseCase
	Horizon() *generateSlots.Request
}

type Handler struct {
	useCase Generator
	logger  Logger
}

func NewHandler(useCase Generator, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/slots/generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /admin/slots/generate - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	useCaseReq := h.useCase.Horizon()
	if req.DateFrom != nil {
		useCaseReq.From = *req.DateFrom
	}
	if req.DateTo != nil {
		useCaseReq.To = *req.DateTo
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrRangeTooWide):
			h.logger.Warn("POST /admin/slots/generate - Range too wide: from=%s, to=%s", useCaseReq.From, useCaseReq.To)
			handlers.RespondBadRequest(w, msgRangeTooWide)

		case errors.Is(err, generateSlots.ErrInvalidRange):
			h.logger.Warn("POST /admin/slots/generate - Invalid range: from=%s, to=%s", useCaseReq.From, useCaseReq.To)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("POST /admin/slots/generate - Failed to generate slots: from=%s, to=%s, error=%v",
				useCaseReq.From, useCaseReq.To, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	resp := &GenerateResponse{
		DateFrom:    result.From.String(),
		DateTo:      result.To.String(),
		Requested:   result.Requested,
		Inserted:    result.Inserted,
		SkippedDays: make([]SkippedDay, 0, len(result.SkippedDays)),
	}
	for _, d := range result.SkippedDays {
		resp.SkippedDays = append(resp.SkippedDays, SkippedDay{Date: d.Date.String(), Reason: d.Reason})
	}

	h.logger.Info("POST /admin/slots/generate - Slots generated: from=%s, to=%s, inserted=%d of %d",
		result.From, result.To, result.Inserted, result.Requested)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
