package approve_reschedule

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = fmt.Errorf("approve_reschedule: %w", domain.ErrRequestNotFound)

	// ErrRequestExpired возвращается, когда срок заявки истёк
	ErrRequestExpired = fmt.Errorf("approve_reschedule: %w", domain.ErrRequestExpired)

	// ErrRequestNotPending возвращается, когда заявка уже рассмотрена
	ErrRequestNotPending = fmt.Errorf("approve_reschedule: request is not pending: %w", domain.ErrInvalidTransition)

	// ErrStaleRequest возвращается, когда бронирование изменилось после подачи заявки
	ErrStaleRequest = fmt.Errorf("approve_reschedule: booking changed since request: %w", domain.ErrInvalidTransition)

	// ErrSlotNotFound возвращается, когда желаемый слот не существует
	ErrSlotNotFound = fmt.Errorf("approve_reschedule: %w", domain.ErrSlotNotFound)

	// ErrSlotUnavailable возвращается, когда в желаемом слоте нет мест
	ErrSlotUnavailable = fmt.Errorf("approve_reschedule: %w", domain.ErrSlotUnavailable)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("approve_reschedule: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("approve_reschedule: internal error")
)
