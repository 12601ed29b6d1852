package create_group_reservation

import (
	"context"

	createGroupReservation "github.com/m04kA/HMS-ReservationService/internal/usecase/create_group_reservation"
)

type CreateGroupReservationUseCase interface {
	Execute(ctx context.Context, req *createGroupReservation.Request) (*createGroupReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
