package request_reschedule

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("request_reschedule: %w", domain.ErrBookingNotFound)

	// ErrSlotNotFound возвращается, когда желаемый слот не существует
	ErrSlotNotFound = fmt.Errorf("request_reschedule: %w", domain.ErrSlotNotFound)

	// ErrSlotUnavailable возвращается, когда желаемый слот заполнен, заблокирован или уже начался
	ErrSlotUnavailable = fmt.Errorf("request_reschedule: %w", domain.ErrSlotUnavailable)

	// ErrNotReschedulable возвращается, когда бронирование нельзя перенести в текущем статусе
	ErrNotReschedulable = fmt.Errorf("request_reschedule: %w", domain.ErrInvalidTransition)

	// ErrReschedulePending возвращается, когда у бронирования уже есть ожидающая заявка
	ErrReschedulePending = fmt.Errorf("request_reschedule: %w", domain.ErrReschedulePending)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("request_reschedule: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("request_reschedule: internal error")
)
