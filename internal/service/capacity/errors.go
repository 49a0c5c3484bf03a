package capacity

import (
	"errors"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

var (
	// ErrSlotNotFound слот не существует
	ErrSlotNotFound = domain.ErrSlotNotFound

	// ErrSlotUnavailable слот заблокирован или заполнен
	ErrSlotUnavailable = domain.ErrSlotUnavailable

	// ErrInvariantViolation освобождение места в пустом слоте
	ErrInvariantViolation = domain.ErrCapacityInvariantViolation

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("capacity: internal error")
)
