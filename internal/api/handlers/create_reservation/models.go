package create_reservation

import (
	createReservation "github.com/m04kA/HMS-ReservationService/internal/usecase/create_reservation"
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

// CreateReservationRequest HTTP модель запроса на создание бронирования.
// Гость задается либо существующим guestId, либо атрибутами guest.
type CreateReservationRequest struct {
	GuestID    *int64             `json:"guestId,omitempty"`
	Guest      *GuestInputRequest `json:"guest,omitempty"`
	RoomID     int64              `json:"roomId" validate:"required,gt=0"`
	Checkin    string             `json:"checkin" validate:"required"` // "2026-07-01"
	Checkout   string             `json:"checkout" validate:"required"`
	GuestCount int                `json:"guestCount" validate:"required,gt=0"`
	Channel    string             `json:"channel" validate:"required"`
	Notes      *string            `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest() (*createReservation.Request, error) {
	checkin, err := types.ParseDate(r.Checkin)
	if err != nil {
		return nil, err
	}

	checkout, err := types.ParseDate(r.Checkout)
	if err != nil {
		return nil, err
	}

	req := &createReservation.Request{
		GuestID:    r.GuestID,
		RoomID:     r.RoomID,
		Checkin:    checkin,
		Checkout:   checkout,
		GuestCount: r.GuestCount,
		Channel:    r.Channel,
		Notes:      r.Notes,
	}

	if r.Guest != nil {
		req.Guest = &createReservation.GuestInput{
			FullName:   r.Guest.FullName,
			DocumentID: r.Guest.DocumentID,
			Email:      r.Guest.Email,
			Phone:      r.Guest.Phone,
			Country:    r.Guest.Country,
		}
	}

	return req, nil
}

// ReservationResponse HTTP модель созданного бронирования
type ReservationResponse struct {
	ID            int64   `json:"id"`
	ReferenceCode string  `json:"referenceCode"`
	GuestID       int64   `json:"guestId"`
	GuestName     string  `json:"guestName"`
	RoomID        int64   `json:"roomId"`
	RoomNumber    string  `json:"roomNumber"`
	RoomTypeName  string  `json:"roomTypeName"`
	Checkin       string  `json:"checkin"`
	Checkout      string  `json:"checkout"`
	Nights        int     `json:"nights"`
	GuestCount    int     `json:"guestCount"`
	NightlyPrice  float64 `json:"nightlyPrice"`
	TotalPrice    float64 `json:"totalPrice"`
	Channel       string  `json:"channel"`
	Notes         *string `json:"notes,omitempty"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(result *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:            result.ID,
		ReferenceCode: result.ReferenceCode,
		GuestID:       result.GuestID,
		GuestName:     result.GuestName,
		RoomID:        result.RoomID,
		RoomNumber:    result.RoomNumber,
		RoomTypeName:  result.RoomTypeName,
		Checkin:       result.Checkin.String(),
		Checkout:      result.Checkout.String(),
		Nights:        result.Nights,
		GuestCount:    result.GuestCount,
		NightlyPrice:  result.NightlyPrice,
		TotalPrice:    result.TotalPrice,
		Channel:       result.Channel,
		Notes:         result.Notes,
		Status:        result.Status,
		CreatedAt:     result.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
