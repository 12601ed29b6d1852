package check_availability

import (
	"fmt"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// validateRequest валидирует параметры запроса доступности
func validateRequest(req *Request) error {
	if req.Checkin.IsZero() || req.Checkout.IsZero() {
		return fmt.Errorf("%w: checkin and checkout are required", ErrInvalidInput)
	}

	interval := domain.DateInterval{Checkin: req.Checkin, Checkout: req.Checkout}
	if !interval.IsValid() {
		return ErrInvalidDateRange
	}

	if req.RoomTypeID != nil && *req.RoomTypeID <= 0 {
		return fmt.Errorf("%w: roomTypeId must be positive", ErrInvalidInput)
	}

	return nil
}
