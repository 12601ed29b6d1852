package check_availability

import (
	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

// Request параметры запроса доступности
type Request struct {
	Checkin    types.Date
	Checkout   types.Date
	RoomTypeID *int64
}

// Interval возвращает запрошенный интервал
func (r *Request) Interval() domain.DateInterval {
	return domain.DateInterval{Checkin: r.Checkin, Checkout: r.Checkout}
}

// AvailableRoom комната, свободная на весь запрошенный интервал
type AvailableRoom struct {
	ID           int64
	RoomNumber   string
	RoomTypeID   int64
	RoomTypeName string
	Capacity     int
	NightlyPrice float64
	State        string
}

// Response список свободных комнат на интервал
type Response struct {
	Checkin  types.Date
	Checkout types.Date
	Nights   int
	Rooms    []AvailableRoom
}
