package rooms

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	roomRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/room"
)

// Service сервис ручного управления операционным состоянием комнат.
// Доступность комнаты определяется активными бронями, а не этим
// состоянием; occupied назначается только переходами броней.
type Service struct {
	roomRepo  RoomRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса
func NewService(roomRepo RoomRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		roomRepo:  roomRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Get возвращает комнату по идентификатору
func (s *Service) Get(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("Get: failed to get room %d: %v", id, err)
		return nil, fmt.Errorf("%w: Get - get room: %v", ErrInternal, err)
	}

	return room, nil
}

// SetState вручную назначает состояние комнаты (housekeeping-операция).
// Occupied назначить нельзя: это состояние выводится из подтвержденной
// брони и присваивается только ее переходами.
func (s *Service) SetState(ctx context.Context, id int64, state domain.RoomState) (*domain.Room, error) {
	s.logger.Info("SetRoomState: room=%d, state=%s", id, state)

	if !state.IsValid() {
		return nil, fmt.Errorf("%w: unknown room state %q", ErrInvalidInput, string(state))
	}
	if !state.AssignableManually() {
		s.logger.Warn("SetRoomState: state %s is not manually assignable", state)
		return nil, fmt.Errorf("%w: %s is derived from reservations", ErrStateNotAssignable, state)
	}

	var room *domain.Room

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.roomRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, roomRepo.ErrRoomNotFound) {
				return ErrRoomNotFound
			}
			s.logger.Error("SetRoomState: failed to load room %d: %v", id, err)
			return fmt.Errorf("%w: SetState - load room: %v", ErrInternal, err)
		}

		if current.State == state {
			room = current
			return nil
		}

		if err := s.roomRepo.UpdateState(txCtx, id, state); err != nil {
			s.logger.Error("SetRoomState: failed to update room %d: %v", id, err)
			return fmt.Errorf("%w: SetState - update state: %v", ErrInternal, err)
		}

		current.State = state
		room = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("SetRoomState: room %s is now %s", room.RoomNumber, room.State)

	return room, nil
}
