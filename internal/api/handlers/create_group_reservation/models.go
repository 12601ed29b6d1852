package create_group_reservation

import (
	createGroupReservation "github.com/m04kA/HMS-ReservationService/internal/usecase/create_group_reservation"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

// GuestInputRequest атрибуты нового гостя
type GuestInputRequest struct {
	FullName   string `json:"fullName" validate:"required"`
	DocumentID string `json:"documentId" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone"`
	Country    string `json:"country"`
}

// CreateGroupReservationRequest HTTP модель группового бронирования:
// один гость, один диапазон дат, несколько комнат
type CreateGroupReservationRequest struct {
	GuestID    *int64             `json:"guestId,omitempty"`
	Guest      *GuestInputRequest `json:"guest,omitempty"`
	RoomIDs    []int64            `json:"roomIds" validate:"required,min=2"`
	Checkin    string             `json:"checkin" validate:"required"`
	Checkout   string             `json:"checkout" validate:"required"`
	GuestCount int                `json:"guestCount" validate:"required,gt=0"`
	Channel    string             `json:"channel" validate:"required"`
	Notes      *string            `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateGroupReservationRequest) ToUseCaseRequest() (*createGroupReservation.Request, error) {
	checkin, err := types.ParseDate(r.Checkin)
	if err != nil {
		return nil, err
	}

	checkout, err := types.ParseDate(r.Checkout)
	if err != nil {
		return nil, err
	}

	req := &createGroupReservation.Request{
		GuestID:    r.GuestID,
		RoomIDs:    r.RoomIDs,
		Checkin:    checkin,
		Checkout:   checkout,
		GuestCount: r.GuestCount,
		Channel:    r.Channel,
		Notes:      r.Notes,
	}

	if r.Guest != nil {
		req.Guest = &createGroupReservation.GuestInput{
			FullName:   r.Guest.FullName,
			DocumentID: r.Guest.DocumentID,
			Email:      r.Guest.Email,
			Phone:      r.Guest.Phone,
			Country:    r.Guest.Country,
		}
	}

	return req, nil
}

// GroupReservationItem одно бронирование из группы
type GroupReservationItem struct {
	ID            int64   `json:"id"`
	ReferenceCode string  `json:"referenceCode"`
	RoomID        int64   `json:"roomId"`
	RoomNumber    string  `json:"roomNumber"`
	RoomTypeName  string  `json:"roomTypeName"`
	NightlyPrice  float64 `json:"nightlyPrice"`
	TotalPrice    float64 `json:"totalPrice"`
	Status        string  `json:"status"`
}

// GroupReservationResponse HTTP модель ответа группового бронирования
type GroupReservationResponse struct {
	GuestID      int64                  `json:"guestId"`
	GuestName    string                 `json:"guestName"`
	Checkin      string                 `json:"checkin"`
	Checkout     string                 `json:"checkout"`
	Nights       int                    `json:"nights"`
	Channel      string                 `json:"channel"`
	Reservations []GroupReservationItem `json:"reservations"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(result *createGroupReservation.Response) *GroupReservationResponse {
	items := make([]GroupReservationItem, 0, len(result.Reservations))
	for _, res := range result.Reservations {
		items = append(items, GroupReservationItem{
			ID:            res.ID,
			ReferenceCode: res.ReferenceCode,
			RoomID:        res.RoomID,
			RoomNumber:    res.RoomNumber,
			RoomTypeName:  res.RoomTypeName,
			NightlyPrice:  res.NightlyPrice,
			TotalPrice:    res.TotalPrice,
			Status:        res.Status,
		})
	}

	return &GroupReservationResponse{
		GuestID:      result.GuestID,
		GuestName:    result.GuestName,
		Checkin:      result.Checkin.String(),
		Checkout:     result.Checkout.String(),
		Nights:       result.Nights,
		Channel:      result.Channel,
		Reservations: items,
	}
}
