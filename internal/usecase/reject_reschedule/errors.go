package reject_reschedule

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = fmt.Errorf("reject_reschedule: %w", domain.ErrRequestNotFound)

	// ErrRequestExpired возвращается, когда срок заявки истёк
	ErrRequestExpired = fmt.Errorf("reject_reschedule: %w", domain.ErrRequestExpired)

	// ErrRequestNotPending возвращается, когда заявка уже рассмотрена
	ErrRequestNotPending = fmt.Errorf("reject_reschedule: request is not pending: %w", domain.ErrInvalidTransition)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("reject_reschedule: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reject_reschedule: internal error")
)
