package domain

import "github.com/m04kA/HMS-ReservationService/pkg/types"

// DateInterval is a half-open [checkin, checkout) date range.
// A guest leaving on a given day and another arriving the same day
// do not conflict.
type DateInterval struct {
	Checkin  types.Date
	Checkout types.Date
}

// IsValid reports whether checkout is strictly after checkin
func (i DateInterval) IsValid() bool {
	return !i.Checkin.IsZero() && !i.Checkout.IsZero() && i.Checkout.After(i.Checkin)
}

// Overlaps reports whether two half-open intervals intersect:
// [a1,a2) and [b1,b2) overlap iff a1 < b2 and b1 < a2.
func (i DateInterval) Overlaps(other DateInterval) bool {
	return i.Checkin.Before(other.Checkout) && other.Checkin.Before(i.Checkout)
}

// Nights returns the length of the interval in nights
func (i DateInterval) Nights() int {
	return i.Checkin.DaysUntil(i.Checkout)
}
