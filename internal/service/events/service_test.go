package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	"github.com/m04kA/SMC-DetailingBooking/internal/integrations/loyaltyservice"
	"github.com/m04kA/SMC-DetailingBooking/internal/integrations/notifications"
	"github.com/m04kA/SMC-DetailingBooking/pkg/logger"
)

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Publish(ctx context.Context, event notifications.BookingEvent) error {
	return m.Called(ctx, event).Error(0)
}

type mockLoyalty struct{ mock.Mock }

func (m *mockLoyalty) BookingCompleted(ctx context.Context, b loyaltyservice.CompletedBooking) error {
	return m.Called(ctx, b).Error(0)
}

type countingMetrics struct{ failures map[string]int }

func (c *countingMetrics) IncCollaboratorFailure(name string) { c.failures[name]++ }

func TestService_FailuresAreSwallowed(t *testing.T) {
	notifier := &mockNotifier{}
	loyalty := &mockLoyalty{}
	m := &countingMetrics{failures: map[string]int{}}
	svc := NewService(notifier, loyalty, m, time.Second, logger.NewNop())

	completedAt := time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC)
	booking := &domain.Booking{
		ID:          1,
		Reference:   "DT-ABCD2345",
		CustomerID:  4,
		TotalPrice:  decimal.RequireFromString("12.5"),
		Status:      domain.StatusCompleted,
		CompletedAt: &completedAt,
	}

	notifier.On("Publish", mock.Anything, mock.MatchedBy(func(e notifications.BookingEvent) bool {
		return e.Type == notifications.EventBookingCompleted
	})).Return(errors.New("broker down"))
	loyalty.On("BookingCompleted", mock.Anything, loyaltyservice.CompletedBooking{
		BookingID:   1,
		Reference:   "DT-ABCD2345",
		CustomerID:  4,
		TotalPrice:  "12.50",
		CompletedAt: completedAt,
	}).Return(errors.New("timeout"))

	// Отменённый контекст запроса не мешает доставке
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc.Publish(ctx, notifications.NewBookingEvent(notifications.EventBookingCompleted, booking, completedAt))
	svc.BookingCompleted(ctx, booking)

	notifier.AssertExpectations(t)
	loyalty.AssertExpectations(t)
	assert.Equal(t, 1, m.failures["notifications"])
	assert.Equal(t, 1, m.failures["loyalty"])
}

func TestService_DetachedContext(t *testing.T) {
	notifier := &mockNotifier{}
	notifier.On("Publish", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	}), mock.Anything).Return(nil)

	svc := NewService(notifier, nil, nil, time.Second, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.Publish(ctx, notifications.BookingEvent{Type: notifications.EventBookingCreated})
	svc.BookingCompleted(ctx, &domain.Booking{})

	notifier.AssertExpectations(t)
}
