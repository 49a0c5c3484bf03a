package domain

import (
	"time"

	"github.com/m04kA/SMC-DetailingBooking/pkg/types"
)

// RescheduleStatus статус заявки на перенос
type RescheduleStatus string

const (
	ReschedulePending  RescheduleStatus = "pending"
	RescheduleApproved RescheduleStatus = "approved"
	RescheduleRejected RescheduleStatus = "rejected"
	RescheduleExpired  RescheduleStatus = "expired"
)

// RescheduleRequest заявка клиента на перенос бронирования в другой слот.
// Снимки исходного и желаемого слота фиксируются при создании и не меняются.
type RescheduleRequest struct {
	ID        int64
	BookingID int64

	OriginalSlotID    int64
	OriginalDate      types.Date
	OriginalStartTime types.TimeString

	RequestedSlotID    int64
	RequestedDate      types.Date
	RequestedStartTime types.TimeString

	Status     RescheduleStatus
	Reason     *string
	AdminNotes *string

	RequestedAt time.Time
	RespondedAt *time.Time
	ExpiresAt   time.Time
}

// IsExpired pending заявка, срок которой истёк к моменту now
func (r *RescheduleRequest) IsExpired(now time.Time) bool {
	return r.Status == ReschedulePending && !now.Before(r.ExpiresAt)
}

// EffectiveStatus статус с учётом истечения срока.
// Просроченная pending заявка отображается как expired до того, как фоновая задача сохранит статус.
func (r *RescheduleRequest) EffectiveStatus(now time.Time) RescheduleStatus {
	if r.IsExpired(now) {
		return RescheduleExpired
	}
	return r.Status
}

// RescheduleExpiry срок жизни заявки: ttl, но не позже начала желаемого слота
func RescheduleExpiry(now time.Time, ttl time.Duration, slotStart time.Time) time.Time {
	expires := now.Add(ttl)
	if slotStart.Before(expires) {
		return slotStart
	}
	return expires
}
