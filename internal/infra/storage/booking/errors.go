package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDuplicateReference возвращается при совпадении номера бронирования
	ErrDuplicateReference = errors.New("booking.repository: duplicate booking reference")

	// ErrStatusConflict возвращается, когда статус или слот бронирования изменились параллельно
	ErrStatusConflict = errors.New("booking.repository: booking status changed concurrently")

	// ErrSlotConflict возвращается, когда слот или статус бронирования изменились параллельно
	ErrSlotConflict = errors.New("booking.repository: booking slot changed concurrently")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("booking.repository: invalid booking status")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
