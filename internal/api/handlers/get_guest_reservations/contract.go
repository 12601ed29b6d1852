package get_guest_reservations

import (
	"context"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

type ReservationService interface {
	GetByGuest(ctx context.Context, filter domain.GuestReservationsFilter) ([]*domain.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
