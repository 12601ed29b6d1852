package create_group_reservation

import (
	"context"
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// GuestRepository интерфейс репозитория гостей
type GuestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Guest, error)
	GetByDocument(ctx context.Context, documentID string) (*domain.Guest, error)
	Create(ctx context.Context, attrs domain.NewGuestAttributes) (*domain.Guest, error)
}

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	FindOverlapping(ctx context.Context, roomID int64, interval domain.DateInterval, excludeID *int64) ([]*domain.Reservation, error)
	GetDetails(ctx context.Context, id int64) (*domain.ReservationDetails, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventEmitter интерфейс публикации событий жизненного цикла
type EventEmitter interface {
	Emit(ctx context.Context, event domain.ReservationEvent) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
