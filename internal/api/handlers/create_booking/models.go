package create_booking

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-DetailingBooking/internal/usecase/create_booking"
)

// CustomerRequest контакт клиента
type CustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// VehicleRequest автомобиль клиента
type VehicleRequest struct {
	Registration string  `json:"registration"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Colour       *string `json:"colour,omitempty"`
	Size         string  `json:"size"`
}

// CreateBookingRequest HTTP request model. Цены передаются строками: "49.99".
type CreateBookingRequest struct {
	SlotID      int64           `json:"slotId"`
	Customer    CustomerRequest `json:"customer"`
	Vehicle     VehicleRequest  `json:"vehicle"`
	ServiceName string          `json:"serviceName"`
	BasePrice   string          `json:"basePrice"`
	ExtrasPrice *string         `json:"extrasPrice,omitempty"`
	Discount    *string         `json:"discount,omitempty"`
	PaidUpfront bool            `json:"paidUpfront"`
	Notes       *string         `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64      `json:"id"`
	Reference     string     `json:"reference"`
	SlotID        int64      `json:"slotId"`
	CustomerID    int64      `json:"customerId"`
	VehicleID     int64      `json:"vehicleId"`
	ServiceName   string     `json:"serviceName"`
	TotalPrice    string     `json:"totalPrice"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"paymentStatus"`
	Notes         *string    `json:"notes,omitempty"`
	ConfirmedAt   *time.Time `json:"confirmedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом цен).
// userID задан, если бронирует зарегистрированный пользователь.
func (r *CreateBookingRequest) ToUseCaseRequest(userID *int64) (*createBooking.Request, error) {
	base, err := decimal.NewFromString(r.BasePrice)
	if err != nil {
		return nil, fmt.Errorf("basePrice: %w", err)
	}
	extras, err := optionalDecimal(r.ExtrasPrice)
	if err != nil {
		return nil, fmt.Errorf("extrasPrice: %w", err)
	}
	discount, err := optionalDecimal(r.Discount)
	if err != nil {
		return nil, fmt.Errorf("discount: %w", err)
	}

	return &createBooking.Request{
		Customer: createBooking.Customer{
			UserID: userID,
			Name:   r.Customer.Name,
			Email:  r.Customer.Email,
			Phone:  r.Customer.Phone,
		},
		Vehicle: createBooking.Vehicle{
			Registration: r.Vehicle.Registration,
			Make:         r.Vehicle.Make,
			Model:        r.Vehicle.Model,
			Colour:       r.Vehicle.Colour,
			Size:         r.Vehicle.Size,
		},
		SlotID: r.SlotID,
		Pricing: domain.Pricing{
			ServiceName: r.ServiceName,
			BasePrice:   base,
			ExtrasPrice: extras,
			Discount:    discount,
			PaidUpfront: r.PaidUpfront,
		},
		Notes: r.Notes,
	}, nil
}

func optionalDecimal(s *string) (decimal.Decimal, error) {
	if s == nil || *s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(*s)
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		Reference:     resp.Reference,
		SlotID:        resp.SlotID,
		CustomerID:    resp.CustomerID,
		VehicleID:     resp.VehicleID,
		ServiceName:   resp.ServiceName,
		TotalPrice:    resp.TotalPrice.StringFixed(2),
		Status:        string(resp.Status),
		PaymentStatus: string(resp.PaymentStatus),
		Notes:         resp.Notes,
		ConfirmedAt:   resp.ConfirmedAt,
		CreatedAt:     resp.CreatedAt,
	}
}
