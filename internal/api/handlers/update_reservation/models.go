package update_reservation

import (
	"github.com/m04kA/HMS-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

// UpdateReservationRequest HTTP модель частичного изменения брони.
// Отсутствующее поле остается без изменений.
type UpdateReservationRequest struct {
	Checkin    *string `json:"checkin,omitempty"`
	Checkout   *string `json:"checkout,omitempty"`
	GuestCount *int    `json:"guestCount,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateReservationRequest) ToServiceRequest() (models.UpdateRequest, error) {
	req := models.UpdateRequest{
		GuestCount: r.GuestCount,
		Notes:      r.Notes,
	}

	if r.Checkin != nil {
		checkin, err := types.ParseDate(*r.Checkin)
		if err != nil {
			return models.UpdateRequest{}, err
		}
		req.Checkin = &checkin
	}

	if r.Checkout != nil {
		checkout, err := types.ParseDate(*r.Checkout)
		if err != nil {
			return models.UpdateRequest{}, err
		}
		req.Checkout = &checkout
	}

	return req, nil
}
