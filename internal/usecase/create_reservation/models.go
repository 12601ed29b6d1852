package create_reservation

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

// Request модель запроса на создание бронирования.
// Гость задается либо существующим GuestID, либо атрибутами Guest.
type Request struct {
	GuestID    *int64
	Guest      *GuestInput
	RoomID     int64
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

// Response модель ответа с созданным бронированием,
// дополненная подписями гостя и комнаты для отображения
type Response struct {
	ID            int64
	ReferenceCode string
	GuestID       int64
	GuestName     string
	RoomID        int64
	RoomNumber    string
	RoomTypeName  string
	RoomState     string
	Checkin       types.Date
	Checkout      types.Date
	Nights        int
	GuestCount    int
	NightlyPrice  float64
	TotalPrice    float64
	Channel       string
	Notes         *string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// responseFromDetails конвертирует доменную модель в ответ use case
func responseFromDetails(d *domain.ReservationDetails) *Response {
	return &Response{
		ID:            d.ID,
		ReferenceCode: d.ReferenceCode,
		GuestID:       d.GuestID,
		GuestName:     d.GuestName,
		RoomID:        d.RoomID,
		RoomNumber:    d.RoomNumber,
		RoomTypeName:  d.RoomTypeName,
		RoomState:     string(d.RoomState),
		Checkin:       d.Checkin,
		Checkout:      d.Checkout,
		Nights:        d.Nights(),
		GuestCount:    d.GuestCount,
		NightlyPrice:  d.NightlyPrice,
		TotalPrice:    d.TotalPrice(),
		Channel:       d.Channel,
		Notes:         d.Notes,
		Status:        string(d.Status),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
