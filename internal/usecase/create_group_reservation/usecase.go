package create_group_reservation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	guestRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/guest"
	reservationRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/room"
)

// UseCase use case группового бронирования: все комнаты группы
// бронируются в одной сериализуемой транзакции, либо ни одна.
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

// Execute выполняет групповое бронирование
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateGroupReservation: rooms=%v, checkin=%s, checkout=%s",
		req.RoomIDs, req.Checkin, req.Checkout)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateGroupReservation: validation failed: %v", err)
		return nil, err
	}

	// Комнаты обрабатываются в порядке возрастания ID, чтобы конкурирующие
	// групповые брони захватывали блокировки строк в одном порядке
	roomIDs := append([]int64(nil), req.RoomIDs...)
	sort.Slice(roomIDs, func(i, j int) bool { return roomIDs[i] < roomIDs[j] })

	var (
		guest   *domain.Guest
		created []*domain.ReservationDetails
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		guest, err = uc.resolveGuest(txCtx, req)
		if err != nil {
			return err
		}

		created = created[:0]
		for _, roomID := range roomIDs {
			details, err := uc.reserveRoom(txCtx, guest.ID, roomID, req)
			if err != nil {
				// Любая ошибка откатывает всю группу
				return err
			}
			created = append(created, details)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateGroupReservation: created %d reservations for guest id=%d",
		len(created), guest.ID)

	for _, details := range created {
		uc.emitCreated(ctx, details)
	}

	return uc.buildResponse(guest, req, created), nil
}

// reserveRoom выполняет шаги бронирования одной комнаты группы
// внутри общей транзакции
func (uc *UseCase) reserveRoom(ctx context.Context, guestID, roomID int64, req *Request) (*domain.ReservationDetails, error) {
	room, err := uc.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("CreateGroupReservation: room id=%d not found", roomID)
			return nil, fmt.Errorf("%w: room %d", ErrRoomNotFound, roomID)
		}
		uc.logger.Error("CreateGroupReservation: failed to get room id=%d: %v", roomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}
	if !room.Active {
		uc.logger.Warn("CreateGroupReservation: room id=%d is inactive", roomID)
		return nil, fmt.Errorf("%w: room %d", ErrRoomInactive, roomID)
	}

	if req.GuestCount > room.Capacity {
		uc.logger.Warn("CreateGroupReservation: guest count %d exceeds capacity %d of room %d",
			req.GuestCount, room.Capacity, roomID)
		return nil, fmt.Errorf("%w: room %d holds %d guests", ErrCapacityExceeded, roomID, room.Capacity)
	}

	conflicts, err := uc.reservationRepo.FindOverlapping(ctx, roomID, req.Interval(), nil)
	if err != nil {
		uc.logger.Error("CreateGroupReservation: failed to find overlapping reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to check availability: %v", ErrInternal, err)
	}
	if len(conflicts) > 0 {
		uc.logger.Warn("CreateGroupReservation: room %d conflicts with reservation %s",
			roomID, conflicts[0].ReferenceCode)
		return nil, fmt.Errorf("%w: room %d conflicts with reservation %s",
			ErrOverlapConflict, roomID, conflicts[0].ReferenceCode)
	}

	reservation := &domain.Reservation{
		ReferenceCode: newReferenceCode(),
		GuestID:       guestID,
		RoomID:        roomID,
		Checkin:       req.Checkin,
		Checkout:      req.Checkout,
		GuestCount:    req.GuestCount,
		NightlyPrice:  room.NightlyPrice(),
		Channel:       req.Channel,
		Notes:         req.Notes,
		Status:        domain.StatusPending,
	}

	persisted, err := uc.reservationRepo.Create(ctx, reservation)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrOverlapViolation) {
			return nil, fmt.Errorf("%w: room %d", ErrOverlapConflict, roomID)
		}
		uc.logger.Error("CreateGroupReservation: failed to create reservation for room %d: %v", roomID, err)
		return nil, fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
	}

	details, err := uc.reservationRepo.GetDetails(ctx, persisted.ID)
	if err != nil {
		uc.logger.Error("CreateGroupReservation: failed to load reservation details: %v", err)
		return nil, fmt.Errorf("%w: failed to load reservation details: %v", ErrInternal, err)
	}

	return details, nil
}

// resolveGuest возвращает гостя по ID либо создает новую запись
func (uc *UseCase) resolveGuest(ctx context.Context, req *Request) (*domain.Guest, error) {
	if req.GuestID != nil {
		guest, err := uc.guestRepo.GetByID(ctx, *req.GuestID)
		if err != nil {
			if errors.Is(err, guestRepo.ErrGuestNotFound) {
				uc.logger.Warn("CreateGroupReservation: guest id=%d not found", *req.GuestID)
				return nil, ErrGuestNotFound
			}
			uc.logger.Error("CreateGroupReservation: failed to get guest id=%d: %v", *req.GuestID, err)
			return nil, fmt.Errorf("%w: failed to get guest: %v", ErrInternal, err)
		}
		return guest, nil
	}

	existing, err := uc.guestRepo.GetByDocument(ctx, req.Guest.DocumentID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, guestRepo.ErrGuestNotFound) {
		uc.logger.Error("CreateGroupReservation: failed to look up guest by document: %v", err)
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
		uc.logger.Error("CreateGroupReservation: failed to create guest: %v", err)
		return nil, fmt.Errorf("%w: failed to create guest: %v", ErrInternal, err)
	}

	return created, nil
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
		uc.logger.Warn("CreateGroupReservation: failed to emit event for reservation %s: %v",
			details.ReferenceCode, err)
	}
}

func (uc *UseCase) buildResponse(guest *domain.Guest, req *Request, created []*domain.ReservationDetails) *Response {
	resp := &Response{
		GuestID:      guest.ID,
		GuestName:    guest.FullName,
		Checkin:      req.Checkin,
		Checkout:     req.Checkout,
		Nights:       req.Interval().Nights(),
		Channel:      req.Channel,
		Reservations: make([]ReservationResult, 0, len(created)),
	}

	for _, d := range created {
		resp.Reservations = append(resp.Reservations, ReservationResult{
			ID:            d.ID,
			ReferenceCode: d.ReferenceCode,
			RoomID:        d.RoomID,
			RoomNumber:    d.RoomNumber,
			RoomTypeName:  d.RoomTypeName,
			NightlyPrice:  d.NightlyPrice,
			TotalPrice:    d.TotalPrice(),
			Status:        string(d.Status),
		})
		if d.CreatedAt.After(resp.CreatedAt) {
			resp.CreatedAt = d.CreatedAt
		}
	}

	return resp
}

// newReferenceCode генерирует человекочитаемый код бронирования
func newReferenceCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "RSV-" + raw[:12]
}
