package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

func date(s string) types.Date {
	d, err := types.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestReservationStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    ReservationStatus
		to      ReservationStatus
		allowed bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to completed skips confirmation", StatusPending, StatusCompleted, false},
		{"confirmed to completed", StatusConfirmed, StatusCompleted, true},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"confirmed back to pending", StatusConfirmed, StatusPending, false},
		{"completed is terminal", StatusCompleted, StatusCancelled, false},
		{"completed back to confirmed", StatusCompleted, StatusConfirmed, false},
		{"cancelled is terminal", StatusCancelled, StatusPending, false},
		{"cancelled to confirmed", StatusCancelled, StatusConfirmed, false},
		{"no self transition", StatusConfirmed, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestReservationStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestReservationStatus_IsValid(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusCancelled.IsValid())
	assert.False(t, ReservationStatus("archived").IsValid())
	assert.False(t, ReservationStatus("").IsValid())
}

func TestReservation_CanBeDeleted(t *testing.T) {
	// Pending cannot be deleted so an unresolved booking is never silently dropped
	res := &Reservation{Status: StatusPending}
	assert.False(t, res.CanBeDeleted())

	for _, status := range []ReservationStatus{StatusConfirmed, StatusCompleted, StatusCancelled} {
		res.Status = status
		assert.True(t, res.CanBeDeleted(), "status %s", status)
	}
}

func TestReservation_CanBeUpdated(t *testing.T) {
	res := &Reservation{Status: StatusPending}
	assert.True(t, res.CanBeUpdated())

	res.Status = StatusConfirmed
	assert.True(t, res.CanBeUpdated())

	res.Status = StatusCompleted
	assert.False(t, res.CanBeUpdated())

	res.Status = StatusCancelled
	assert.False(t, res.CanBeUpdated())
}

func TestReservation_TotalPrice(t *testing.T) {
	res := &Reservation{
		Checkin:      date("2026-07-01"),
		Checkout:     date("2026-07-05"),
		NightlyPrice: 120.50,
	}

	require.Equal(t, 4, res.Nights())
	assert.InDelta(t, 482.0, res.TotalPrice(), 0.001)
}

func TestReservation_PriceSnapshotIndependentOfClock(t *testing.T) {
	// The captured price never depends on when the total is computed
	res := &Reservation{
		Checkin:      date("2026-07-01"),
		Checkout:     date("2026-07-03"),
		NightlyPrice: 99.99,
		CreatedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	first := res.TotalPrice()
	second := res.TotalPrice()
	assert.Equal(t, first, second)
}
