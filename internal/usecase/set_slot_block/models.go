package set_slot_block

import (
	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

// Request блокировка или разблокировка слота администратором.
// Блокировка не трогает существующие бронирования, только закрывает новые.
type Request struct {
	SlotID  int64
	Blocked bool
	Reason  *string
}

// Response слот после изменения
type Response struct {
	Slot *domain.Slot
}
