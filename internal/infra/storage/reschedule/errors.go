package reschedule

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка на перенос не найдена
	ErrRequestNotFound = errors.New("reschedule.repository: request not found")

	// ErrPendingExists возвращается, когда у бронирования уже есть ожидающая заявка
	ErrPendingExists = errors.New("reschedule.repository: pending request already exists")

	// ErrNotPending возвращается, когда заявка уже рассмотрена
	ErrNotPending = errors.New("reschedule.repository: request is not pending")

	ErrBuildQuery = errors.New("reschedule.repository: failed to build query")
	ErrExecQuery  = errors.New("reschedule.repository: failed to execute query")
	ErrScanRow    = errors.New("reschedule.repository: failed to scan row")
)
