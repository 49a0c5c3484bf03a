package models

import (
	"time"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

// Response модели

// SlotResponse слот бронирования
type SlotResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// CustomerResponse контакт клиента
type CustomerResponse struct {
	ID     int64  `json:"id"`
	UserID *int64 `json:"userId,omitempty"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
}

// VehicleResponse автомобиль клиента
type VehicleResponse struct {
	ID           int64   `json:"id"`
	Registration string  `json:"registration"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Colour       *string `json:"colour,omitempty"`
	Size         string  `json:"size"`
}

// RescheduleRequestResponse заявка на перенос
type RescheduleRequestResponse struct {
	ID                 int64      `json:"id"`
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

// BookingResponse бронирование со связанными данными
type BookingResponse struct {
	ID                 int64                       `json:"id"`
	Reference          string                      `json:"reference"`
	Status             string                      `json:"status"`
	PaymentStatus      string                      `json:"paymentStatus"`
	ServiceName        string                      `json:"serviceName"`
	TotalPrice         string                      `json:"totalPrice"`
	Notes              *string                     `json:"notes,omitempty"`
	CancellationReason *string                     `json:"cancellationReason,omitempty"`
	Slot               SlotResponse                `json:"slot"`
	Customer           CustomerResponse            `json:"customer"`
	Vehicle            VehicleResponse             `json:"vehicle"`
	RescheduleRequests []RescheduleRequestResponse `json:"rescheduleRequests"`
	ConfirmedAt        *time.Time                  `json:"confirmedAt,omitempty"`
	StartedAt          *time.Time                  `json:"startedAt,omitempty"`
	CompletedAt        *time.Time                  `json:"completedAt,omitempty"`
	CancelledAt        *time.Time                  `json:"cancelledAt,omitempty"`
	NoShowAt           *time.Time                  `json:"noShowAt,omitempty"`
	CreatedAt          time.Time                   `json:"createdAt"`
	UpdatedAt          time.Time                   `json:"updatedAt"`
}

// Методы конвертации

// FromDomainDetails конвертирует domain модели в DTO.
// Статус заявки вычисляется на момент now: просроченная pending отдаётся как expired.
func FromDomainDetails(d *domain.BookingDetails, requests []*domain.RescheduleRequest, now time.Time) *BookingResponse {
	b := d.Booking
	resp := &BookingResponse{
		ID:                 b.ID,
		Reference:          b.Reference,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		ServiceName:        b.ServiceName,
		TotalPrice:         b.TotalPrice.StringFixed(2),
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		Slot: SlotResponse{
			ID:        d.Slot.ID,
			Date:      d.Slot.Date.String(),
			StartTime: d.Slot.StartTime.String(),
			EndTime:   d.Slot.EndTime.String(),
		},
		Customer: CustomerResponse{
			ID:     d.Customer.ID,
			UserID: d.Customer.UserID,
			Name:   d.Customer.Name,
			Email:  d.Customer.Email,
			Phone:  d.Customer.Phone,
		},
		Vehicle: VehicleResponse{
			ID:           d.Vehicle.ID,
			Registration: d.Vehicle.Registration,
			Make:         d.Vehicle.Make,
			Model:        d.Vehicle.Model,
			Colour:       d.Vehicle.Colour,
			Size:         string(d.Vehicle.Size),
		},
		RescheduleRequests: make([]RescheduleRequestResponse, 0, len(requests)),
		ConfirmedAt:        b.ConfirmedAt,
		StartedAt:          b.StartedAt,
		CompletedAt:        b.CompletedAt,
		CancelledAt:        b.CancelledAt,
		NoShowAt:           b.NoShowAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	for _, r := range requests {
		resp.RescheduleRequests = append(resp.RescheduleRequests, FromDomainRequest(r, now))
	}

	return resp
}

// FromDomainRequest конвертирует заявку на перенос
func FromDomainRequest(r *domain.RescheduleRequest, now time.Time) RescheduleRequestResponse {
	return RescheduleRequestResponse{
		ID:                 r.ID,
		Status:             string(r.EffectiveStatus(now)),
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

// BookingSummary краткая запись бронирования в списке слота
type BookingSummary struct {
	ID            int64     `json:"id"`
	Reference     string    `json:"reference"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	ServiceName   string    `json:"serviceName"`
	TotalPrice    string    `json:"totalPrice"`
	CustomerID    int64     `json:"customerId"`
	VehicleID     int64     `json:"vehicleId"`
	CreatedAt     time.Time `json:"createdAt"`
}

// SlotBookingsResponse слот и его бронирования.
// BookedSpots берётся из счётчика слота: отменённые в нём не учитываются.
type SlotBookingsResponse struct {
	Slot        SlotResponse     `json:"slot"`
	TotalSpots  int              `json:"totalSpots"`
	BookedSpots int              `json:"bookedSpots"`
	IsBlocked   bool             `json:"isBlocked"`
	Bookings    []BookingSummary `json:"bookings"`
}

// FromDomainSlotBookings конвертирует слот с бронированиями
func FromDomainSlotBookings(slot *domain.Slot, bookings []*domain.Booking) *SlotBookingsResponse {
	resp := &SlotBookingsResponse{
		Slot: SlotResponse{
			ID:        slot.ID,
			Date:      slot.Date.String(),
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
		},
		TotalSpots:  slot.MaxCapacity,
		BookedSpots: slot.CurrentBookings,
		IsBlocked:   slot.IsBlocked,
		Bookings:    make([]BookingSummary, 0, len(bookings)),
	}

	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, BookingSummary{
			ID:            b.ID,
			Reference:     b.Reference,
			Status:        string(b.Status),
			PaymentStatus: string(b.PaymentStatus),
			ServiceName:   b.ServiceName,
			TotalPrice:    b.TotalPrice.StringFixed(2),
			CustomerID:    b.CustomerID,
			VehicleID:     b.VehicleID,
			CreatedAt:     b.CreatedAt,
		})
	}

	return resp
}
