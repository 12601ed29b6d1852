package domain

import "time"

// Reservation lifecycle event types
const (
	EventReservationCreated      = "reservation.created"
	EventReservationTransitioned = "reservation.transitioned"
)

// ReservationEvent describes a committed lifecycle change. Events are
// handed to an external dispatcher after the change is durable; delivery
// failure never rolls the change back.
type ReservationEvent struct {
	Type          string            `json:"type"`
	ReservationID int64             `json:"reservationId"`
	ReferenceCode string            `json:"referenceCode"`
	RoomID        int64             `json:"roomId"`
	GuestID       int64             `json:"guestId"`
	FromStatus    ReservationStatus `json:"fromStatus,omitempty"`
	ToStatus      ReservationStatus `json:"toStatus"`
	ActorID       *int64            `json:"actorId,omitempty"`
	OccurredAt    time.Time         `json:"occurredAt"`
}
