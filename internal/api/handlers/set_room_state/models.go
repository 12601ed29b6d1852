package set_room_state

import "github.com/m04kA/HMS-ReservationService/internal/domain"

// SetRoomStateRequest HTTP модель запроса смены состояния комнаты
type SetRoomStateRequest struct {
	State string `json:"state" validate:"required"` // "available" | "cleaning" | "maintenance"
}

// RoomResponse HTTP модель комнаты
type RoomResponse struct {
	ID           int64   `json:"id"`
	RoomNumber   string  `json:"roomNumber"`
	RoomTypeID   int64   `json:"roomTypeId"`
	RoomTypeName string  `json:"roomTypeName"`
	Capacity     int     `json:"capacity"`
	NightlyPrice float64 `json:"nightlyPrice"`
	State        string  `json:"state"`
	Active       bool    `json:"active"`
}

// FromDomain конвертирует доменную модель комнаты в HTTP ответ
func FromDomain(room *domain.Room) *RoomResponse {
	return &RoomResponse{
		ID:           room.ID,
		RoomNumber:   room.RoomNumber,
		RoomTypeID:   room.RoomTypeID,
		RoomTypeName: room.TypeName,
		Capacity:     room.Capacity,
		NightlyPrice: room.NightlyPrice(),
		State:        string(room.State),
		Active:       room.Active,
	}
}
