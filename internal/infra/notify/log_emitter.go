package notify

import (
	"context"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// LogEmitter пишет события в лог вместо брокера.
// Используется, когда публикация уведомлений выключена в конфигурации.
type LogEmitter struct {
	logger Logger
}

// NewLogEmitter создает эмиттер, пишущий события в лог
func NewLogEmitter(logger Logger) *LogEmitter {
	return &LogEmitter{logger: logger}
}

// Emit логирует событие жизненного цикла
func (e *LogEmitter) Emit(_ context.Context, event domain.ReservationEvent) error {
	e.logger.Info("reservation event: type=%s, reservation=%s, room=%d, from=%s, to=%s",
		event.Type, event.ReferenceCode, event.RoomID, event.FromStatus, event.ToStatus)
	return nil
}
