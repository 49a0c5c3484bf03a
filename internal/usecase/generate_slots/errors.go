package generate_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

var (
	// ErrInvalidRange возвращается, когда dateFrom позже dateTo или диапазон начинается в прошлом
	ErrInvalidRange = fmt.Errorf("generate_slots: invalid date range: %w", domain.ErrInvalidInput)

	// ErrRangeTooWide возвращается, когда диапазон выходит за горизонт генерации
	ErrRangeTooWide = fmt.Errorf("generate_slots: date range exceeds horizon: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_slots: internal error")
)
