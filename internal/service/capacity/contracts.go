package capacity

import (
	"context"
	"time"
)

// SlotRepository атомарные операции над счётчиком слота
type SlotRepository interface {
	Reserve(ctx context.Context, id int64, now time.Time) error
	Release(ctx context.Context, id int64, now time.Time) error
}

// Metrics счётчики резервирований
type Metrics interface {
	ObserveReservation(result string)
	ObserveRelease(result string)
	IncCapacityViolation()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
