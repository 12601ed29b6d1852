package models

import (
	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

// Actor аутентифицированный сотрудник, выполняющий операцию.
// Аутентификацию выполняет транспортный слой; сервис только
// фиксирует актора в штампах переходов.
type Actor struct {
	ID   int64
	Role string
}

// UpdateRequest изменяемые до терминального статуса поля бронирования.
// Nil-поле означает "оставить как есть".
type UpdateRequest struct {
	Checkin    *types.Date
	Checkout   *types.Date
	GuestCount *int
	Notes      *string
}

// IsEmpty сообщает, что запрос не меняет ни одного поля
func (r UpdateRequest) IsEmpty() bool {
	return r.Checkin == nil && r.Checkout == nil && r.GuestCount == nil && r.Notes == nil
}

// TransitionRequest запрос перехода статуса
type TransitionRequest struct {
	Target domain.ReservationStatus
	Actor  Actor
	// Reason причина отмены; обязательна только для информативности,
	// для системных отмен заполняется sweeper'ом
	Reason *string
}

// SweepResult итог одного прохода очистки просроченных броней
type SweepResult struct {
	// Cancelled бронирования, переведенные этим проходом в cancelled
	Cancelled []*domain.Reservation
	// Failed число броней, которые не удалось перевести (залогированы)
	Failed int
}

// Count возвращает число отмененных этим проходом броней
func (r SweepResult) Count() int {
	return len(r.Cancelled)
}
