package handlers

import (
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// ReservationResponse HTTP модель бронирования с подписями гостя и комнаты.
// Используется всеми операциями, возвращающими одно бронирование.
type ReservationResponse struct {
	ID                 int64      `json:"id"`
	ReferenceCode      string     `json:"referenceCode"`
	GuestID            int64      `json:"guestId"`
	GuestName          string     `json:"guestName"`
	RoomID             int64      `json:"roomId"`
	RoomNumber         string     `json:"roomNumber"`
	RoomTypeName       string     `json:"roomTypeName"`
	RoomState          string     `json:"roomState"`
	Checkin            string     `json:"checkin"`
	Checkout           string     `json:"checkout"`
	Nights             int        `json:"nights"`
	GuestCount         int        `json:"guestCount"`
	NightlyPrice       float64    `json:"nightlyPrice"`
	TotalPrice         float64    `json:"totalPrice"`
	Channel            string     `json:"channel"`
	Notes              *string    `json:"notes,omitempty"`
	Status             string     `json:"status"`
	ConfirmedBy        *int64     `json:"confirmedBy,omitempty"`
	ConfirmedAt        *time.Time `json:"confirmedAt,omitempty"`
	CompletedBy        *int64     `json:"completedBy,omitempty"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// ReservationFromDetails конвертирует доменную модель в HTTP ответ
func ReservationFromDetails(d *domain.ReservationDetails) *ReservationResponse {
	return &ReservationResponse{
		ID:                 d.ID,
		ReferenceCode:      d.ReferenceCode,
		GuestID:            d.GuestID,
		GuestName:          d.GuestName,
		RoomID:             d.RoomID,
		RoomNumber:         d.RoomNumber,
		RoomTypeName:       d.RoomTypeName,
		RoomState:          string(d.RoomState),
		Checkin:            d.Checkin.String(),
		Checkout:           d.Checkout.String(),
		Nights:             d.Nights(),
		GuestCount:         d.GuestCount,
		NightlyPrice:       d.NightlyPrice,
		TotalPrice:         d.TotalPrice(),
		Channel:            d.Channel,
		Notes:              d.Notes,
		Status:             string(d.Status),
		ConfirmedBy:        d.ConfirmedBy,
		ConfirmedAt:        d.ConfirmedAt,
		CompletedBy:        d.CompletedBy,
		CompletedAt:        d.CompletedAt,
		CancelledAt:        d.CancelledAt,
		CancellationReason: d.CancellationReason,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

// ReservationItemResponse краткая HTTP модель бронирования для списков
type ReservationItemResponse struct {
	ID            int64     `json:"id"`
	ReferenceCode string    `json:"referenceCode"`
	GuestID       int64     `json:"guestId"`
	RoomID        int64     `json:"roomId"`
	Checkin       string    `json:"checkin"`
	Checkout      string    `json:"checkout"`
	Nights        int       `json:"nights"`
	GuestCount    int       `json:"guestCount"`
	NightlyPrice  float64   `json:"nightlyPrice"`
	TotalPrice    float64   `json:"totalPrice"`
	Channel       string    `json:"channel"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ReservationItem конвертирует бронирование в элемент списка
func ReservationItem(res *domain.Reservation) ReservationItemResponse {
	return ReservationItemResponse{
		ID:            res.ID,
		ReferenceCode: res.ReferenceCode,
		GuestID:       res.GuestID,
		RoomID:        res.RoomID,
		Checkin:       res.Checkin.String(),
		Checkout:      res.Checkout.String(),
		Nights:        res.Nights(),
		GuestCount:    res.GuestCount,
		NightlyPrice:  res.NightlyPrice,
		TotalPrice:    res.TotalPrice(),
		Channel:       res.Channel,
		Status:        string(res.Status),
		CreatedAt:     res.CreatedAt,
	}
}
