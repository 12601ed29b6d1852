package create_group_reservation

import (
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

// GuestInput атрибуты нового гостя при первом бронировании
type GuestInput struct {
	FullName   string
	DocumentID string
	Email      string
	Phone      string
	Country    string
}

// Request модель запроса на групповое бронирование: один гость,
// один диапазон дат, несколько комнат
type Request struct {
	GuestID    *int64
	Guest      *GuestInput
	RoomIDs    []int64
	Checkin    types.Date
	Checkout   types.Date
	GuestCount int
	Channel    string
	Notes      *string
}

// Interval возвращает запрошенный интервал проживания
func (r *Request) Interval() domain.DateInterval {
	return domain.DateInterval{Checkin: r.Checkin, Checkout: r.Checkout}
}

// ReservationResult одно бронирование из группы
type ReservationResult struct {
	ID            int64
	ReferenceCode string
	RoomID        int64
	RoomNumber    string
	RoomTypeName  string
	NightlyPrice  float64
	TotalPrice    float64
	Status        string
}

// Response модель ответа группового бронирования
type Response struct {
	GuestID      int64
	GuestName    string
	Checkin      types.Date
	Checkout     types.Date
	Nights       int
	Channel      string
	Reservations []ReservationResult
	CreatedAt    time.Time
}
