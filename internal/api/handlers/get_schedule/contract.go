package get_schedule

import (
	"context"

	"github.com/m04kA/SMC-DetailingBooking/internal/service/schedule/models"
)

type ScheduleService interface {
	List(ctx context.Context) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
