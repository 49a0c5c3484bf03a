package reject_reschedule

import (
	"context"

	rejectReschedule "github.com/m04kA/SMC-DetailingBooking/internal/usecase/reject_reschedule"
)

type UseCase interface {
	Execute(ctx context.Context, req *rejectReschedule.Request) (*rejectReschedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
