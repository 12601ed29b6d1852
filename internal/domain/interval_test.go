package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func interval(checkin, checkout string) DateInterval {
	return DateInterval{Checkin: date(checkin), Checkout: date(checkout)}
}

func TestDateInterval_IsValid(t *testing.T) {
	assert.True(t, interval("2026-03-10", "2026-03-12").IsValid())
	assert.False(t, interval("2026-03-12", "2026-03-10").IsValid())
	// A zero-length interval is not a stay
	assert.False(t, interval("2026-03-10", "2026-03-10").IsValid())
}

func TestDateInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name     string
		a        DateInterval
		b        DateInterval
		overlaps bool
	}{
		{
			name:     "identical intervals",
			a:        interval("2026-03-10", "2026-03-14"),
			b:        interval("2026-03-10", "2026-03-14"),
			overlaps: true,
		},
		{
			name:     "partial overlap",
			a:        interval("2026-03-10", "2026-03-14"),
			b:        interval("2026-03-12", "2026-03-16"),
			overlaps: true,
		},
		{
			name:     "contained interval",
			a:        interval("2026-03-10", "2026-03-20"),
			b:        interval("2026-03-12", "2026-03-14"),
			overlaps: true,
		},
		{
			name: "back to back stays do not conflict",
			// checkout and checkin on the same day, intervals are half-open
			a:        interval("2026-03-10", "2026-03-12"),
			b:        interval("2026-03-12", "2026-03-14"),
			overlaps: false,
		},
		{
			name:     "back to back reversed",
			a:        interval("2026-03-12", "2026-03-14"),
			b:        interval("2026-03-10", "2026-03-12"),
			overlaps: false,
		},
		{
			name:     "disjoint intervals",
			a:        interval("2026-03-10", "2026-03-12"),
			b:        interval("2026-03-20", "2026-03-22"),
			overlaps: false,
		},
		{
			name:     "one night inside longer stay",
			a:        interval("2026-03-11", "2026-03-12"),
			b:        interval("2026-03-10", "2026-03-14"),
			overlaps: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, tt.a.Overlaps(tt.b))
			// overlap is symmetric
			assert.Equal(t, tt.overlaps, tt.b.Overlaps(tt.a))
		})
	}
}

func TestDateInterval_Nights(t *testing.T) {
	assert.Equal(t, 2, interval("2026-03-10", "2026-03-12").Nights())
	assert.Equal(t, 1, interval("2026-03-10", "2026-03-11").Nights())
}
