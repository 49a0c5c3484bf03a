package set_slot_block

import (
	"context"

	setSlotBlock "github.com/m04kA/SMC-DetailingBooking/internal/usecase/set_slot_block"
)

type UseCase interface {
	Execute(ctx context.Context, req *setSlotBlock.Request) (*setSlotBlock.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
