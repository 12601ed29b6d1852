package reservations

import (
	"fmt"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/internal/service/reservations/models"
)

// validateUpdateRequest проверяет поля запроса на изменение брони.
// Согласованность дат проверяется позже, после наложения patch на
// текущие значения.
func validateUpdateRequest(req models.UpdateRequest) error {
	if req.Checkin != nil && req.Checkin.IsZero() {
		return fmt.Errorf("%w: checkin date is required", ErrInvalidInput)
	}
	if req.Checkout != nil && req.Checkout.IsZero() {
		return fmt.Errorf("%w: checkout date is required", ErrInvalidInput)
	}
	if req.GuestCount != nil && *req.GuestCount <= 0 {
		return fmt.Errorf("%w: guest count must be positive", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes cannot exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}
