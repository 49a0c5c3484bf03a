package update_schedule_day

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DetailingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/schedule"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные расписания"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/schedule/{weekday}
// Уже сгенерированные слоты не меняются, новый шаблон действует для следующей генерации.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	weekday := mux.Vars(r)["weekday"]

	var req models.UpdateDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/schedule/{weekday} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.Weekday = weekday

	result, err := h.service.UpdateDay(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /admin/schedule/{weekday} - Invalid data: weekday=%s, error=%v", weekday, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /admin/schedule/{weekday} - Failed to update: weekday=%s, error=%v", weekday, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/schedule/{weekday} - Schedule updated: weekday=%s, working=%t", result.Weekday, result.IsWorking)
	handlers.RespondJSON(w, http.StatusOK, result)
}
