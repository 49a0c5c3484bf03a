package set_slot_block

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingBooking/internal/api/handlers"
	setSlotBlock "github.com/m04kA/SMC-DetailingBooking/internal/usecase/set_slot_block"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "слот не найден"
	msgInvalidData        = "некорректная причина блокировки"
)

// BlockRequest HTTP request model
type BlockRequest struct {
	Blocked bool    `json:"blocked"`
	Reason  *string `json:"reason,omitempty"`
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

// Handle PATCH /api/v1/admin/slots/{slotId}/block
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := handlers.PathInt64(r, "slotId")
	if err != nil {
		h.logger.Warn("PATCH /admin/slots/{id}/block - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req BlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/slots/{id}/block - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &setSlotBlock.Request{
		SlotID:  slotID,
		Blocked: req.Blocked,
		Reason:  req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, setSlotBlock.ErrSlotNotFound):
			h.logger.Warn("PATCH /admin/slots/{id}/block - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, setSlotBlock.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/slots/{id}/block - Invalid data: slot_id=%d, error=%v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PATCH /admin/slots/{id}/block - Failed to update slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/slots/{id}/block - Slot updated: slot_id=%d, blocked=%t", slotID, result.Slot.IsBlocked)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainSlot(result.Slot))
}
