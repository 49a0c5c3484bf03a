package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTransition(t *testing.T) {
	tests := []struct {
		name          string
		from, to      BookingStatus
		wantNoop      bool
		wantErr       error
		wantFinalized bool
	}{
		{name: "pending to confirmed", from: StatusPending, to: StatusConfirmed},
		{name: "confirmed to in_progress", from: StatusConfirmed, to: StatusInProgress},
		{name: "in_progress to completed", from: StatusInProgress, to: StatusCompleted},
		{name: "pending to cancelled", from: StatusPending, to: StatusCancelled},
		{name: "confirmed to no_show", from: StatusConfirmed, to: StatusNoShow},
		{name: "in_progress to cancelled", from: StatusInProgress, to: StatusCancelled},
		{name: "same status", from: StatusConfirmed, to: StatusConfirmed, wantNoop: true},
		{name: "same terminal status", from: StatusCancelled, to: StatusCancelled, wantNoop: true},
		{name: "skip confirmation", from: StatusPending, to: StatusInProgress, wantErr: ErrInvalidTransition},
		{name: "pending to completed", from: StatusPending, to: StatusCompleted, wantErr: ErrInvalidTransition},
		{name: "backwards", from: StatusInProgress, to: StatusConfirmed, wantErr: ErrInvalidTransition},
		{name: "cancel completed", from: StatusCompleted, to: StatusCancelled, wantErr: ErrInvalidTransition, wantFinalized: true},
		{name: "revive cancelled", from: StatusCancelled, to: StatusConfirmed, wantErr: ErrInvalidTransition, wantFinalized: true},
		{name: "no_show to completed", from: StatusNoShow, to: StatusCompleted, wantErr: ErrInvalidTransition, wantFinalized: true},
		{name: "unknown target", from: StatusPending, to: "archived", wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			noop, err := CheckTransition(tt.from, tt.to)
			assert.Equal(t, tt.wantNoop, noop)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantFinalized, errors.Is(err, ErrAlreadyFinalized))
		})
	}
}

func TestBookingStatus_Properties(t *testing.T) {
	for _, s := range AllStatuses {
		assert.True(t, s.IsValid())
	}
	assert.False(t, BookingStatus("unknown").IsValid())

	assert.True(t, StatusNoShow.IsTerminal())
	assert.True(t, StatusNoShow.ConsumesSlot())
	assert.False(t, StatusCancelled.ConsumesSlot())
	assert.False(t, StatusInProgress.IsTerminal())
}
