package create_reservation

import (
	"fmt"
	"strings"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
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
		if err := validateGuestInput(req.Guest); err != nil {
			return err
		}
	}

	if req.Checkin.IsZero() || req.Checkout.IsZero() {
		return fmt.Errorf("%w: checkin and checkout are required", ErrInvalidInput)
	}
	if err := validateInterval(req.Interval()); err != nil {
		return err
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

// validateGuestInput проверяет обязательные поля нового гостя
func validateGuestInput(guest *GuestInput) error {
	if strings.TrimSpace(guest.FullName) == "" {
		return fmt.Errorf("%w: guest fullName is required", ErrInvalidInput)
	}
	if strings.TrimSpace(guest.DocumentID) == "" {
		return fmt.Errorf("%w: guest documentID is required", ErrInvalidInput)
	}
	return nil
}

// validateInterval проверяет даты проживания
func validateInterval(interval domain.DateInterval) error {
	if !interval.IsValid() {
		return ErrInvalidDateRange
	}
	if interval.Nights() > domain.MaxStayNights {
		return fmt.Errorf("%w: stay exceeds %d nights", ErrInvalidInput, domain.MaxStayNights)
	}
	return nil
}
