package domain

import "errors"

// Ошибки предметной области. Слои выше оборачивают их своими sentinel-ошибками,
// поэтому errors.Is работает на любой из них.
var (
	ErrSlotUnavailable            = errors.New("domain: slot unavailable")
	ErrSlotNotFound               = errors.New("domain: slot not found")
	ErrBookingNotFound            = errors.New("domain: booking not found")
	ErrRequestNotFound            = errors.New("domain: reschedule request not found")
	ErrInvalidTransition          = errors.New("domain: invalid status transition")
	ErrAlreadyFinalized           = errors.New("domain: booking already finalized")
	ErrCapacityInvariantViolation = errors.New("domain: slot capacity invariant violation")
	ErrRequestExpired             = errors.New("domain: reschedule request expired")
	ErrReschedulePending          = errors.New("domain: booking already has a pending reschedule request")
	ErrInvalidInput               = errors.New("domain: invalid input")
)
