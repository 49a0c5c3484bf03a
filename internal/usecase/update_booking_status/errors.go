package update_booking_status

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("update_booking_status: %w", domain.ErrBookingNotFound)

	// ErrInvalidTransition возвращается, когда переход не разрешён
	ErrInvalidTransition = fmt.Errorf("update_booking_status: %w", domain.ErrInvalidTransition)

	// ErrAlreadyFinalized возвращается при попытке сменить терминальный статус
	ErrAlreadyFinalized = fmt.Errorf("update_booking_status: %w", domain.ErrAlreadyFinalized)

	// ErrConcurrentUpdate возвращается, когда статус или слот бронирования изменили параллельно
	ErrConcurrentUpdate = fmt.Errorf("update_booking_status: status changed concurrently: %w", domain.ErrInvalidTransition)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("update_booking_status: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking_status: internal error")
)
