package set_room_state

import (
	"context"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

type RoomService interface {
	SetState(ctx context.Context, id int64, state domain.RoomState) (*domain.Room, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
