package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

const maxPhoneLength = 32

// normalizeRequest приводит контакты и номер автомобиля к каноническому виду
func normalizeRequest(req *Request) {
	req.Customer.Name = strings.TrimSpace(req.Customer.Name)
	req.Customer.Email = domain.NormalizeEmail(req.Customer.Email)
	req.Customer.Phone = strings.TrimSpace(req.Customer.Phone)
	req.Vehicle.Registration = domain.NormalizeRegistration(req.Vehicle.Registration)
	req.Vehicle.Make = strings.TrimSpace(req.Vehicle.Make)
	req.Vehicle.Model = strings.TrimSpace(req.Vehicle.Model)
	req.Vehicle.Size = strings.ToLower(strings.TrimSpace(req.Vehicle.Size))
	req.Pricing.ServiceName = strings.TrimSpace(req.Pricing.ServiceName)
}

// validateRequest валидирует входные данные запроса (после normalizeRequest)
func validateRequest(req *Request) error {
	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotId must be positive", ErrInvalidInput)
	}

	// Контакты
	if req.Customer.UserID != nil && *req.Customer.UserID <= 0 {
		return fmt.Errorf("%w: userId must be positive", ErrInvalidInput)
	}
	if req.Customer.Name == "" || len(req.Customer.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: customer name is required (max %d chars)", ErrInvalidInput, domain.MaxNameLength)
	}
	if !domain.ValidEmail(req.Customer.Email) {
		return fmt.Errorf("%w: customer email is invalid", ErrInvalidInput)
	}
	if len(req.Customer.Phone) > maxPhoneLength {
		return fmt.Errorf("%w: phone is too long", ErrInvalidInput)
	}

	// Автомобиль
	if !domain.ValidRegistration(req.Vehicle.Registration) {
		return fmt.Errorf("%w: vehicle registration is invalid", ErrInvalidInput)
	}
	if req.Vehicle.Make == "" || req.Vehicle.Model == "" {
		return fmt.Errorf("%w: vehicle make and model are required", ErrInvalidInput)
	}
	if !domain.VehicleSize(req.Vehicle.Size).IsValid() {
		return fmt.Errorf("%w: unknown vehicle size %q", ErrInvalidInput, req.Vehicle.Size)
	}

	// Цена
	p := req.Pricing
	if p.ServiceName == "" || len(p.ServiceName) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: service name is required (max %d chars)", ErrInvalidInput, domain.MaxServiceNameLength)
	}
	if p.BasePrice.IsNegative() || p.ExtrasPrice.IsNegative() || p.Discount.IsNegative() {
		return fmt.Errorf("%w: prices must not be negative", ErrInvalidInput)
	}
	if p.Total().IsNegative() {
		return fmt.Errorf("%w: discount exceeds price", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d chars", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
