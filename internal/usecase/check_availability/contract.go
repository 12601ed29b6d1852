package check_availability

import (
	"context"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	FindAvailable(ctx context.Context, interval domain.DateInterval, roomTypeID *int64) ([]*domain.Room, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
