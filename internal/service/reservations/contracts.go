package reservations

import (
	"context"
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	reservationStorage "github.com/m04kA/HMS-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetDetails(ctx context.Context, id int64) (*domain.ReservationDetails, error)
	FindOverlapping(ctx context.Context, roomID int64, interval domain.DateInterval, excludeID *int64) ([]*domain.Reservation, error)
	UpdateFields(ctx context.Context, id int64, patch reservationStorage.ReservationPatch) error
	UpdateStatusFrom(ctx context.Context, id int64, from, to domain.ReservationStatus, stamps reservationStorage.StatusStamps) error
	ListPendingBefore(ctx context.Context, cutoff types.Date) ([]*domain.Reservation, error)
	GetByGuestWithFilter(ctx context.Context, filter domain.GuestReservationsFilter) ([]*domain.Reservation, error)
	Delete(ctx context.Context, id int64) error
}

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	UpdateState(ctx context.Context, id int64, state domain.RoomState) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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
