package domain

import "time"

// RoomState represents the operational (housekeeping) state of a room.
// It is a projection derived from the reservation lifecycle: the
// authoritative occupancy signal is the set of active reservations.
type RoomState string

const (
	RoomAvailable   RoomState = "available"
	RoomOccupied    RoomState = "occupied"
	RoomCleaning    RoomState = "cleaning"
	RoomMaintenance RoomState = "maintenance"
)

// IsValid reports whether s is a known operational state
func (s RoomState) IsValid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomCleaning, RoomMaintenance:
		return true
	}
	return false
}

// AssignableManually reports whether staff may set this state by hand.
// Occupied is derived from a confirmed reservation and is never assigned
// directly.
func (s RoomState) AssignableManually() bool {
	return s == RoomAvailable || s == RoomCleaning || s == RoomMaintenance
}

// RoomType groups rooms sharing capacity and a baseline nightly rate
type RoomType struct {
	ID       int64
	Name     string
	Capacity int
	BaseRate float64
}

// Room represents a physical unit that can be reserved
type Room struct {
	ID            int64
	RoomNumber    string
	RoomTypeID    int64
	TypeName      string
	Capacity      int
	BaseRate      float64
	PriceOverride *float64
	State         RoomState
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NightlyPrice returns the override price when set, otherwise the
// room type's baseline rate
func (r *Room) NightlyPrice() float64 {
	if r.PriceOverride != nil {
		return *r.PriceOverride
	}
	return r.BaseRate
}
