package generate_slots

import (
	"context"

	generateSlots "github.com/m04kA/SMC-DetailingBooking/internal/usecase/generate_slots"
)

type UseCase interface {
	Execute(ctx context.Context, req *generateSlots.Request) (*generateSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
