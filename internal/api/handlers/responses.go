package handlers

import (
	"time"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

// BookingResponse бронирование в ответах на команды.
// Полная карточка со связанными данными отдаётся сервисом bookings.
type BookingResponse struct {
	ID                 int64      `json:"id"`
	Reference          string     `json:"reference"`
	SlotID             int64      `json:"slotId"`
	CustomerID         int64      `json:"customerId"`
	VehicleID          int64      `json:"vehicleId"`
	ServiceName        string     `json:"serviceName"`
	TotalPrice         string     `json:"totalPrice"`
	Status             string     `json:"status"`
	PaymentStatus      string     `json:"paymentStatus"`
	Notes              *string    `json:"notes,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	ConfirmedAt        *time.Time `json:"confirmedAt,omitempty"`
	StartedAt          *time.Time `json:"startedAt,omitempty"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	NoShowAt           *time.Time `json:"noShowAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// RescheduleResponse заявка на перенос
type RescheduleResponse struct {
	ID                 int64      `json:"id"`
	BookingID          int64      `json:"bookingId"`
	Status             string     `json:"status"`
	OriginalSlotID     int64      `json:"originalSlotId"`
	OriginalDate       string     `json:"originalDate"`
	OriginalStartTime  string     `json:"originalStartTime"`
	RequestedSlotID    int64      `json:"requestedSlotId"`
	RequestedDate      string     `json:"requestedDate"`
	RequestedStartTime string     `json:"requestedStartTime"`
	Reason             *string    `json:"reason,omitempty"`
	AdminNotes         *string    `json:"adminNotes,omitempty"`
	RequestedAt        time.Time  `json:"requestedAt"`
	RespondedAt        *time.Time `json:"respondedAt,omitempty"`
	ExpiresAt          time.Time  `json:"expiresAt"`
}

// SlotResponse слот с вычисленным состоянием
type SlotResponse struct {
	ID             int64   `json:"id"`
	Date           string  `json:"date"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	State          string  `json:"state"`
	TotalSpots     int     `json:"totalSpots"`
	BookedSpots    int     `json:"bookedSpots"`
	AvailableSpots int     `json:"availableSpots"`
	BlockReason    *string `json:"blockReason,omitempty"`
}

func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:                 b.ID,
		Reference:          b.Reference,
		SlotID:             b.SlotID,
		CustomerID:         b.CustomerID,
		VehicleID:          b.VehicleID,
		ServiceName:        b.ServiceName,
		TotalPrice:         b.TotalPrice.StringFixed(2),
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		ConfirmedAt:        b.ConfirmedAt,
		StartedAt:          b.StartedAt,
		CompletedAt:        b.CompletedAt,
		CancelledAt:        b.CancelledAt,
		NoShowAt:           b.NoShowAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

func FromDomainReschedule(r *domain.RescheduleRequest) *RescheduleResponse {
	return &RescheduleResponse{
		ID:                 r.ID,
		BookingID:          r.BookingID,
		Status:             string(r.Status),
		OriginalSlotID:     r.OriginalSlotID,
		OriginalDate:       r.OriginalDate.String(),
		OriginalStartTime:  r.OriginalStartTime.String(),
		RequestedSlotID:    r.RequestedSlotID,
		RequestedDate:      r.RequestedDate.String(),
		RequestedStartTime: r.RequestedStartTime.String(),
		Reason:             r.Reason,
		AdminNotes:         r.AdminNotes,
		RequestedAt:        r.RequestedAt,
		RespondedAt:        r.RespondedAt,
		ExpiresAt:          r.ExpiresAt,
	}
}

func FromDomainSlot(s *domain.Slot) *SlotResponse {
	return &SlotResponse{
		ID:             s.ID,
		Date:           s.Date.String(),
		StartTime:      s.StartTime.String(),
		EndTime:        s.EndTime.String(),
		State:          string(s.State()),
		TotalSpots:     s.MaxCapacity,
		BookedSpots:    s.CurrentBookings,
		AvailableSpots: s.RemainingCapacity(),
		BlockReason:    s.BlockReason,
	}
}
