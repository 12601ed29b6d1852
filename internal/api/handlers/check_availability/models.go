package check_availability

import (
	checkAvailability "github.com/m04kA/HMS-ReservationService/internal/usecase/check_availability"
)

// AvailableRoomResponse HTTP модель свободной комнаты
type AvailableRoomResponse struct {
	ID           int64   `json:"id"`
	RoomNumber   string  `json:"roomNumber"`
	RoomTypeID   int64   `json:"roomTypeId"`
	RoomTypeName string  `json:"roomTypeName"`
	Capacity     int     `json:"capacity"`
	NightlyPrice float64 `json:"nightlyPrice"`
	State        string  `json:"state"`
}

// AvailabilityResponse HTTP модель ответа на запрос доступности
type AvailabilityResponse struct {
	Checkin  string                  `json:"checkin"`
	Checkout string                  `json:"checkout"`
	Nights   int                     `json:"nights"`
	Rooms    []AvailableRoomResponse `json:"rooms"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(result *checkAvailability.Response) *AvailabilityResponse {
	rooms := make([]AvailableRoomResponse, 0, len(result.Rooms))
	for _, room := range result.Rooms {
		rooms = append(rooms, AvailableRoomResponse{
			ID:           room.ID,
			RoomNumber:   room.RoomNumber,
			RoomTypeID:   room.RoomTypeID,
			RoomTypeName: room.RoomTypeName,
			Capacity:     room.Capacity,
			NightlyPrice: room.NightlyPrice,
			State:        room.State,
		})
	}

	return &AvailabilityResponse{
		Checkin:  result.Checkin.String(),
		Checkout: result.Checkout.String(),
		Nights:   result.Nights,
		Rooms:    rooms,
	}
}
