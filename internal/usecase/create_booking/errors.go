package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

var (
	// ErrSlotNotFound возвращается, когда слот не существует
	ErrSlotNotFound = fmt.Errorf("create_booking: %w", domain.ErrSlotNotFound)

	// ErrSlotUnavailable возвращается, когда слот заполнен или заблокирован
	ErrSlotUnavailable = fmt.Errorf("create_booking: %w", domain.ErrSlotUnavailable)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_booking: %w", domain.ErrInvalidInput)

	// ErrReferenceExhausted возвращается, когда не удалось подобрать свободный номер
	ErrReferenceExhausted = errors.New("create_booking: failed to generate unique reference")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
