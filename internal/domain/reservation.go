package domain

import (
	"time"

	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

// legalTransitions is the single source of truth for the reservation
// lifecycle. No component writes the status field without consulting it.
var legalTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransitionTo reports whether the lifecycle allows moving from s to target
func (s ReservationStatus) CanTransitionTo(target ReservationStatus) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsValid reports whether s is one of the known lifecycle states
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether s has no outgoing transitions
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ActiveStatuses are the states that count against room availability
var ActiveStatuses = []ReservationStatus{StatusPending, StatusConfirmed}

// Reservation represents a stay of one guest in one room
type Reservation struct {
	ID            int64
	ReferenceCode string
	GuestID       int64
	RoomID        int64
	Checkin       types.Date
	Checkout      types.Date
	GuestCount    int
	// NightlyPrice is captured from the room at booking time and never
	// recalculated, so later price changes do not affect existing stays.
	NightlyPrice float64
	Channel      string
	Notes        *string
	Status       ReservationStatus

	ConfirmedBy        *int64
	ConfirmedAt        *time.Time
	CompletedBy        *int64
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the half-open [checkin, checkout) interval of the stay
func (r *Reservation) Interval() DateInterval {
	return DateInterval{Checkin: r.Checkin, Checkout: r.Checkout}
}

// IsActive returns true if the reservation counts against room availability
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeUpdated returns true if dates, guest count and notes may still change
func (r *Reservation) CanBeUpdated() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeDeleted returns true if the reservation may be removed.
// Pending reservations are never deleted so an unresolved booking
// cannot be silently discarded.
func (r *Reservation) CanBeDeleted() bool {
	return r.Status != StatusPending
}

// Nights returns the number of nights of the stay
func (r *Reservation) Nights() int {
	return r.Checkin.DaysUntil(r.Checkout)
}

// TotalPrice returns the captured nightly price multiplied by the nights
func (r *Reservation) TotalPrice() float64 {
	return r.NightlyPrice * float64(r.Nights())
}

// ReservationDetails is a reservation joined with guest and room labels
// for display purposes
type ReservationDetails struct {
	Reservation

	GuestName    string
	RoomNumber   string
	RoomTypeName string
	RoomState    RoomState
}

// GuestReservationsFilter filters a guest's reservation history
type GuestReservationsFilter struct {
	GuestID         int64
	Status          *ReservationStatus
	IncludeInactive bool
}
