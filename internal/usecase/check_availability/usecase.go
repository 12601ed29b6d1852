package check_availability

import (
	"context"
	"fmt"
)

// UseCase use case публичного запроса доступности комнат.
// Это read-only удобство: гарантию отсутствия двойных бронирований дает
// не этот запрос, а атомарная проверка внутри создания бронирования.
type UseCase struct {
	roomRepo RoomRepository
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(roomRepo RoomRepository, logger Logger) *UseCase {
	return &UseCase{
		roomRepo: roomRepo,
		logger:   logger,
	}
}

// Execute возвращает комнаты, свободные на весь интервал [checkin, checkout)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	rooms, err := uc.roomRepo.FindAvailable(ctx, req.Interval(), req.RoomTypeID)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to find available rooms: %v", err)
		return nil, fmt.Errorf("%w: failed to find available rooms: %v", ErrInternal, err)
	}

	resp := &Response{
		Checkin:  req.Checkin,
		Checkout: req.Checkout,
		Nights:   req.Interval().Nights(),
		Rooms:    make([]AvailableRoom, 0, len(rooms)),
	}

	for _, room := range rooms {
		resp.Rooms = append(resp.Rooms, AvailableRoom{
			ID:           room.ID,
			RoomNumber:   room.RoomNumber,
			RoomTypeID:   room.RoomTypeID,
			RoomTypeName: room.TypeName,
			Capacity:     room.Capacity,
			NightlyPrice: room.NightlyPrice(),
			State:        string(room.State),
		})
	}

	uc.logger.Info("CheckAvailability: %d rooms available for %s..%s",
		len(resp.Rooms), req.Checkin, req.Checkout)

	return resp, nil
}
