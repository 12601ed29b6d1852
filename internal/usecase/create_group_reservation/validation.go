package create_group_reservation

import (
	"fmt"
	"strings"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if len(req.RoomIDs) < domain.MinGroupRooms {
		return fmt.Errorf("%w: group booking requires at least %d rooms", ErrInvalidInput, domain.MinGroupRooms)
	}

	seen := make(map[int64]struct{}, len(req.RoomIDs))
	for _, id := range req.RoomIDs {
		if id <= 0 {
			return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate room id %d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	if req.GuestID == nil && req.Guest == nil {
		return fmt.Errorf("%w: either guestID or guest attributes are required", ErrInvalidInput)
	}
	if req.GuestID != nil && req.Guest != nil {
		return fmt.Errorf("%w: guestID and guest attributes are mutually exclusive", ErrInvalidInput)
	}
	if req.GuestID != nil && *req.GuestID <= 0 {
		return fmt.Errorf("%w: guestID must be positive", ErrInvalidInput)
	}
	if req.Guest != nil {
		if strings.TrimSpace(req.Guest.FullName) == "" {
			return fmt.Errorf("%w: guest fullName is required", ErrInvalidInput)
		}
		if strings.TrimSpace(req.Guest.DocumentID) == "" {
			return fmt.Errorf("%w: guest documentID is required", ErrInvalidInput)
		}
	}

	if req.Checkin.IsZero() || req.Checkout.IsZero() {
		return fmt.Errorf("%w: checkin and checkout are required", ErrInvalidInput)
	}
	interval := req.Interval()
	if !interval.IsValid() {
		return ErrInvalidDateRange
	}
	if interval.Nights() > domain.MaxStayNights {
		return fmt.Errorf("%w: stay exceeds %d nights", ErrInvalidInput, domain.MaxStayNights)
	}

	if req.GuestCount <= 0 {
		return fmt.Errorf("%w: guestCount must be positive", ErrInvalidInput)
	}

	if !domain.IsValidChannel(req.Channel) {
		return fmt.Errorf("%w: unknown channel %q", ErrInvalidInput, req.Channel)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
