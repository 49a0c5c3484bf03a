package notifications

import (
	"time"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

// EventType ключ маршрутизации события в topic exchange
type EventType string

const (
	EventBookingCreated     EventType = "booking.created"
	EventBookingCancelled   EventType = "booking.cancelled"
	EventBookingCompleted   EventType = "booking.completed"
	EventBookingNoShow      EventType = "booking.no_show"
	EventBookingRescheduled EventType = "booking.rescheduled"
)

// BookingEvent сообщение для сервиса уведомлений
type BookingEvent struct {
	Type           EventType `json:"type"`
	BookingID      int64     `json:"bookingId"`
	Reference      string    `json:"reference"`
	Status         string    `json:"status"`
	PaymentStatus  string    `json:"paymentStatus"`
	ServiceName    string    `json:"serviceName"`
	TotalPrice     string    `json:"totalPrice"`
	SlotID         int64     `json:"slotId"`
	PreviousSlotID *int64    `json:"previousSlotId,omitempty"`
	Reason         *string   `json:"reason,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// TerminalEvent тип события для терминального статуса. ok = false для нетерминальных.
func TerminalEvent(status domain.BookingStatus) (EventType, bool) {
	switch status {
	case domain.StatusCancelled:
		return EventBookingCancelled, true
	case domain.StatusCompleted:
		return EventBookingCompleted, true
	case domain.StatusNoShow:
		return EventBookingNoShow, true
	default:
		return "", false
	}
}

// NewBookingEvent событие по состоянию бронирования
func NewBookingEvent(eventType EventType, b *domain.Booking, at time.Time) BookingEvent {
	return BookingEvent{
		Type:          eventType,
		BookingID:     b.ID,
		Reference:     b.Reference,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		ServiceName:   b.ServiceName,
		TotalPrice:    b.TotalPrice.StringFixed(2),
		SlotID:        b.SlotID,
		Reason:        b.CancellationReason,
		OccurredAt:    at.UTC(),
	}
}
