package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	guestRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/guest"
	reservationRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/room"
)

// UseCase use case создания бронирования одной комнаты.
// Проверка пересечений и вставка выполняются в одной сериализуемой
// транзакции: наивный check-then-insert под конкуренцией молча
// пропускает двойные бронирования.
type UseCase struct {
	guestRepo       GuestRepository
	roomRepo        RoomRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	emitter         EventEmitter
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	guestRepo GuestRepository,
	roomRepo RoomRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	emitter EventEmitter,
	logger Logger,
) *UseCase {
	return &UseCase{
		guestRepo:       guestRepo,
		roomRepo:        roomRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		emitter:         emitter,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: room=%d, checkin=%s, checkout=%s, guests=%d, channel=%s",
		req.RoomID, req.Checkin, req.Checkout, req.GuestCount, req.Channel)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	var details *domain.ReservationDetails

	// 2. Все проверки и вставка — одна атомарная единица работы
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Резолвим гостя: существующий ID или новая запись
		guest, err := uc.resolveGuest(txCtx, req)
		if err != nil {
			return err
		}

		// 2.2. Загружаем комнату (строка блокируется внутри транзакции)
		room, err := uc.loadRoom(txCtx, req.RoomID)
		if err != nil {
			return err
		}

		// 2.3. Вместимость типа комнаты
		if req.GuestCount > room.Capacity {
			uc.logger.Warn("CreateReservation: guest count %d exceeds capacity %d of room %d",
				req.GuestCount, room.Capacity, room.ID)
			return fmt.Errorf("%w: %d guests, capacity %d", ErrCapacityExceeded, req.GuestCount, room.Capacity)
		}

		// 2.4. Проверка пересечений в той же транзакции, что и вставка
		conflicts, err := uc.reservationRepo.FindOverlapping(txCtx, room.ID, req.Interval(), nil)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to find overlapping reservations: %v", err)
			return fmt.Errorf("%w: failed to check availability: %v", ErrInternal, err)
		}
		if len(conflicts) > 0 {
			uc.logger.Warn("CreateReservation: room %d conflicts with reservation %s",
				room.ID, conflicts[0].ReferenceCode)
			return fmt.Errorf("%w: conflicts with reservation %s", ErrOverlapConflict, conflicts[0].ReferenceCode)
		}

		// 2.5. Вставляем бронирование в статусе pending со снапшотом цены
		reservation := &domain.Reservation{
			ReferenceCode: newReferenceCode(),
			GuestID:       guest.ID,
			RoomID:        room.ID,
			Checkin:       req.Checkin,
			Checkout:      req.Checkout,
			GuestCount:    req.GuestCount,
			NightlyPrice:  room.NightlyPrice(),
			Channel:       req.Channel,
			Notes:         req.Notes,
			Status:        domain.StatusPending,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrOverlapViolation) {
				// Конкурирующая вставка уперлась в exclusion constraint
				return ErrOverlapConflict
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		details, err = uc.reservationRepo.GetDetails(txCtx, created.ID)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to load reservation details: %v", err)
			return fmt.Errorf("%w: failed to load reservation details: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: created reservation %s (id=%d) for room %d",
		details.ReferenceCode, details.ID, details.RoomID)

	// 3. Публикуем событие после фиксации; сбой доставки не откатывает бронь
	uc.emitCreated(ctx, details)

	return responseFromDetails(details), nil
}

// resolveGuest возвращает гостя по ID либо создает новую запись.
// Для новых гостей запись переиспользуется по номеру документа.
func (uc *UseCase) resolveGuest(ctx context.Context, req *Request) (*domain.Guest, error) {
	if req.GuestID != nil {
		guest, err := uc.guestRepo.GetByID(ctx, *req.GuestID)
		if err != nil {
			if errors.Is(err, guestRepo.ErrGuestNotFound) {
				uc.logger.Warn("CreateReservation: guest id=%d not found", *req.GuestID)
				return nil, ErrGuestNotFound
			}
			uc.logger.Error("CreateReservation: failed to get guest id=%d: %v", *req.GuestID, err)
			return nil, fmt.Errorf("%w: failed to get guest: %v", ErrInternal, err)
		}
		return guest, nil
	}

	existing, err := uc.guestRepo.GetByDocument(ctx, req.Guest.DocumentID)
	if err == nil {
		uc.logger.Info("CreateReservation: reusing guest id=%d by document", existing.ID)
		return existing, nil
	}
	if !errors.Is(err, guestRepo.ErrGuestNotFound) {
		uc.logger.Error("CreateReservation: failed to look up guest by document: %v", err)
		return nil, fmt.Errorf("%w: failed to look up guest: %v", ErrInternal, err)
	}

	created, err := uc.guestRepo.Create(ctx, domain.NewGuestAttributes{
		FullName:   req.Guest.FullName,
		DocumentID: req.Guest.DocumentID,
		Email:      req.Guest.Email,
		Phone:      req.Guest.Phone,
		Country:    req.Guest.Country,
	})
	if err != nil {
		uc.logger.Error("CreateReservation: failed to create guest: %v", err)
		return nil, fmt.Errorf("%w: failed to create guest: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateReservation: created guest id=%d", created.ID)
	return created, nil
}

// loadRoom загружает комнату и проверяет, что она в продаже
func (uc *UseCase) loadRoom(ctx context.Context, roomID int64) (*domain.Room, error) {
	room, err := uc.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("CreateReservation: room id=%d not found", roomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CreateReservation: failed to get room id=%d: %v", roomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}
	if !room.Active {
		uc.logger.Warn("CreateReservation: room id=%d is inactive", roomID)
		return nil, ErrRoomInactive
	}
	return room, nil
}

func (uc *UseCase) emitCreated(ctx context.Context, details *domain.ReservationDetails) {
	event := domain.ReservationEvent{
		Type:          domain.EventReservationCreated,
		ReservationID: details.ID,
		ReferenceCode: details.ReferenceCode,
		RoomID:        details.RoomID,
		GuestID:       details.GuestID,
		ToStatus:      details.Status,
		OccurredAt:    uc.timeProvider.Now(),
	}
	if err := uc.emitter.Emit(ctx, event); err != nil {
		uc.logger.Warn("CreateReservation: failed to emit event for reservation %s: %v",
			details.ReferenceCode, err)
	}
}

// newReferenceCode генерирует человекочитаемый код бронирования
func newReferenceCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "RSV-" + raw[:12]
}
