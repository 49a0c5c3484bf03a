package domain

import "fmt"

// allowedTransitions таблица допустимых переходов статуса
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusCancelled, StatusNoShow},
}

// AllStatuses все статусы бронирования
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// IsValid возвращает true для известного статуса
func (s BookingStatus) IsValid() bool {
	for _, st := range AllStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// IsTerminal completed, cancelled и no_show не меняются
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// ConsumesSlot возвращает true, если бронирование в этом статусе занимает место в слоте.
// no_show место не возвращает.
func (s BookingStatus) ConsumesSlot() bool {
	return s != StatusCancelled
}

// CanTransition возвращает true, если переход from -> to есть в таблице
func CanTransition(from, to BookingStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition проверяет запрошенный переход.
// Повтор текущего статуса не ошибка: noop = true.
// Любой переход из терминального статуса возвращает ошибку,
// которая является и ErrAlreadyFinalized, и ErrInvalidTransition.
func CheckTransition(from, to BookingStatus) (noop bool, err error) {
	if !to.IsValid() {
		return false, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, to)
	}

	if from == to {
		return true, nil
	}

	if from.IsTerminal() {
		return false, fmt.Errorf("%w: %w: %s -> %s", ErrAlreadyFinalized, ErrInvalidTransition, from, to)
	}

	if !CanTransition(from, to) {
		return false, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	return false, nil
}
