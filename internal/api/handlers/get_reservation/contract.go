package get_reservation

import (
	"context"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

type ReservationService interface {
	Get(ctx context.Context, id int64) (*domain.ReservationDetails, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
