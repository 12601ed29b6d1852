package transition_reservation

import (
	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/internal/service/reservations/models"
)

// TransitionRequest HTTP модель запроса перехода статуса
type TransitionRequest struct {
	Status string  `json:"status" validate:"required"` // "confirmed" | "completed" | "cancelled"
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *TransitionRequest) ToServiceRequest(staffID int64) models.TransitionRequest {
	return models.TransitionRequest{
		Target: domain.ReservationStatus(r.Status),
		Actor:  models.Actor{ID: staffID},
		Reason: r.Reason,
	}
}
