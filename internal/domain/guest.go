package domain

import "time"

// Guest represents a person staying at the property. Guests are owned
// independently of reservations and accumulate many stays over time.
type Guest struct {
	ID         int64
	FullName   string
	DocumentID string
	Email      string
	Phone      string
	Country    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewGuestAttributes carries the fields required to create a guest on
// first booking
type NewGuestAttributes struct {
	FullName   string
	DocumentID string
	Email      string
	Phone      string
	Country    string
}
