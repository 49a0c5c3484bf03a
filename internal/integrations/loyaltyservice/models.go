package loyaltyservice

import "time"

// CompletedBooking тело запроса о завершённом бронировании
type CompletedBooking struct {
	BookingID   int64     `json:"bookingId"`
	Reference   string    `json:"reference"`
	CustomerID  int64     `json:"customerId"`
	TotalPrice  string    `json:"totalPrice"`
	ServiceName string    `json:"serviceName"`
	CompletedAt time.Time `json:"completedAt"`
}

// ErrorResponse модель ошибки от LoyaltyService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
