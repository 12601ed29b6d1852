package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/HMS-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

// Service сервис жизненного цикла бронирований: переходы статусов,
// синхронизация операционного состояния комнаты, правки, удаление и
// очистка просроченных pending-броней.
type Service struct {
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
	txManager       TransactionManager
	emitter         EventEmitter
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	reservationRepo ReservationRepository,
	roomRepo RoomRepository,
	txManager TransactionManager,
	emitter EventEmitter,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		txManager:       txManager,
		emitter:         emitter,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестирования)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Get возвращает бронирование с данными гостя и комнаты
func (s *Service) Get(ctx context.Context, id int64) (*domain.ReservationDetails, error) {
	details, err := s.reservationRepo.GetDetails(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Get: failed to get reservation %d: %v", id, err)
		return nil, fmt.Errorf("%w: Get - get details: %v", ErrInternal, err)
	}

	return details, nil
}

// GetByGuest возвращает историю бронирований гостя
func (s *Service) GetByGuest(ctx context.Context, filter domain.GuestReservationsFilter) ([]*domain.Reservation, error) {
	list, err := s.reservationRepo.GetByGuestWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetByGuest: failed to list reservations of guest %d: %v", filter.GuestID, err)
		return nil, fmt.Errorf("%w: GetByGuest - list reservations: %v", ErrInternal, err)
	}

	return list, nil
}

// Update меняет даты, число гостей и заметки бронирования.
// Разрешено только в статусах pending и confirmed. При смене дат
// доступность перепроверяется в той же сериализуемой транзакции,
// что и запись, с исключением самой брони из поиска пересечений.
func (s *Service) Update(ctx context.Context, id int64, req models.UpdateRequest) (*domain.ReservationDetails, error) {
	s.logger.Info("UpdateReservation: id=%d", id)

	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}
	if err := validateUpdateRequest(req); err != nil {
		s.logger.Warn("UpdateReservation: validation failed: %v", err)
		return nil, err
	}

	var details *domain.ReservationDetails

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Строка блокируется внутри транзакции
		current, err := s.loadReservation(txCtx, id)
		if err != nil {
			return err
		}

		if !current.CanBeUpdated() {
			s.logger.Warn("UpdateReservation: reservation %s is %s and cannot be edited",
				current.ReferenceCode, current.Status)
			return fmt.Errorf("%w: reservation %s is %s", ErrInvalidStateForEdit, current.ReferenceCode, current.Status)
		}

		patch := mergePatch(current, req)

		interval := domain.DateInterval{Checkin: patch.Checkin, Checkout: patch.Checkout}
		if !interval.IsValid() {
			return fmt.Errorf("%w: checkout must be after checkin", ErrInvalidInput)
		}
		if interval.Nights() > domain.MaxStayNights {
			return fmt.Errorf("%w: stay cannot exceed %d nights", ErrInvalidInput, domain.MaxStayNights)
		}

		datesChanged := !patch.Checkin.Equal(current.Checkin) || !patch.Checkout.Equal(current.Checkout)
		if datesChanged {
			conflicts, err := s.reservationRepo.FindOverlapping(txCtx, current.RoomID, interval, &id)
			if err != nil {
				s.logger.Error("UpdateReservation: failed to find overlapping reservations: %v", err)
				return fmt.Errorf("%w: Update - check availability: %v", ErrInternal, err)
			}
			if len(conflicts) > 0 {
				s.logger.Warn("UpdateReservation: new dates of %s conflict with reservation %s",
					current.ReferenceCode, conflicts[0].ReferenceCode)
				return fmt.Errorf("%w: conflicts with reservation %s", ErrOverlapConflict, conflicts[0].ReferenceCode)
			}
		}

		if patch.GuestCount != current.GuestCount {
			room, err := s.roomRepo.GetByID(txCtx, current.RoomID)
			if err != nil {
				s.logger.Error("UpdateReservation: failed to load room %d: %v", current.RoomID, err)
				return fmt.Errorf("%w: Update - load room: %v", ErrInternal, err)
			}
			if patch.GuestCount > room.Capacity {
				return fmt.Errorf("%w: %d guests, capacity %d", ErrCapacityExceeded, patch.GuestCount, room.Capacity)
			}
		}

		if err := s.reservationRepo.UpdateFields(txCtx, id, patch); err != nil {
			if errors.Is(err, reservationRepo.ErrOverlapViolation) {
				// Конкурирующая запись уперлась в exclusion constraint
				return ErrOverlapConflict
			}
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			s.logger.Error("UpdateReservation: failed to update fields: %v", err)
			return fmt.Errorf("%w: Update - update fields: %v", ErrInternal, err)
		}

		details, err = s.reservationRepo.GetDetails(txCtx, id)
		if err != nil {
			s.logger.Error("UpdateReservation: failed to reload reservation %d: %v", id, err)
			return fmt.Errorf("%w: Update - reload details: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateReservation: reservation %s updated", details.ReferenceCode)

	return details, nil
}

// Transition переводит бронирование в новый статус и в той же транзакции
// синхронизирует операционное состояние комнаты. Событие перехода
// публикуется только после фиксации; отказ доставки ничего не откатывает.
func (s *Service) Transition(ctx context.Context, id int64, req models.TransitionRequest) (*domain.ReservationDetails, error) {
	s.logger.Info("TransitionReservation: id=%d, target=%s, actor=%d", id, req.Target, req.Actor.ID)

	if !req.Target.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, string(req.Target))
	}

	actorID := req.Actor.ID

	details, from, err := s.transition(ctx, id, req.Target, &actorID, req.Reason)
	if err != nil {
		return nil, err
	}

	s.emitTransitioned(ctx, &details.Reservation, from, &actorID)

	return details, nil
}

// transition выполняет переход одной транзакцией: guarded-обновление
// статуса плюс синхронизация состояния комнаты. Возвращает исходный
// статус для события.
func (s *Service) transition(
	ctx context.Context,
	id int64,
	target domain.ReservationStatus,
	actorID *int64,
	reason *string,
) (*domain.ReservationDetails, domain.ReservationStatus, error) {
	var (
		details *domain.ReservationDetails
		from    domain.ReservationStatus
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.loadReservation(txCtx, id)
		if err != nil {
			return err
		}
		from = current.Status

		if !from.CanTransitionTo(target) {
			s.logger.Warn("TransitionReservation: illegal transition of %s from %s to %s",
				current.ReferenceCode, from, target)
			return fmt.Errorf("%w: from %s to %s", ErrInvalidTransition, from, target)
		}

		stamps := reservationRepo.StatusStamps{
			ActorID: actorID,
			At:      s.timeProvider.Now(),
		}
		if target == domain.StatusCancelled {
			stamps.CancellationReason = reason
		}

		if err := s.reservationRepo.UpdateStatusFrom(txCtx, id, from, target, stamps); err != nil {
			if errors.Is(err, reservationRepo.ErrStatusConflict) {
				// Конкурентный переход успел раньше; для вызывающего это
				// неразрешенный переход из уже изменившегося статуса
				s.logger.Warn("TransitionReservation: reservation %s left status %s concurrently",
					current.ReferenceCode, from)
				return fmt.Errorf("%w: reservation %s is no longer %s", ErrInvalidTransition, current.ReferenceCode, from)
			}
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			s.logger.Error("TransitionReservation: failed to update status: %v", err)
			return fmt.Errorf("%w: Transition - update status: %v", ErrInternal, err)
		}

		if err := s.syncRoomState(txCtx, current.RoomID, target); err != nil {
			return err
		}

		details, err = s.reservationRepo.GetDetails(txCtx, id)
		if err != nil {
			s.logger.Error("TransitionReservation: failed to reload reservation %d: %v", id, err)
			return fmt.Errorf("%w: Transition - reload details: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("TransitionReservation: reservation %s moved from %s to %s",
		details.ReferenceCode, from, target)

	return details, from, nil
}

// syncRoomState выводит операционное состояние комнаты из перехода брони:
// подтверждение занимает комнату, завершение отправляет в уборку, отмена
// состояние не трогает. Комната в maintenance не занимается автоматически.
func (s *Service) syncRoomState(ctx context.Context, roomID int64, target domain.ReservationStatus) error {
	var next domain.RoomState

	switch target {
	case domain.StatusConfirmed:
		next = domain.RoomOccupied
	case domain.StatusCompleted:
		next = domain.RoomCleaning
	default:
		return nil
	}

	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		s.logger.Error("TransitionReservation: failed to load room %d: %v", roomID, err)
		return fmt.Errorf("%w: Transition - load room: %v", ErrInternal, err)
	}

	if next == domain.RoomOccupied && room.State == domain.RoomMaintenance {
		s.logger.Warn("TransitionReservation: room %d is under maintenance, state left untouched", roomID)
		return nil
	}
	if room.State == next {
		return nil
	}

	if err := s.roomRepo.UpdateState(ctx, roomID, next); err != nil {
		s.logger.Error("TransitionReservation: failed to set room %d state to %s: %v", roomID, next, err)
		return fmt.Errorf("%w: Transition - sync room state: %v", ErrInternal, err)
	}

	return nil
}

// Delete удаляет бронирование. Pending-брони не удаляются: нерешенное
// бронирование нельзя молча выбросить, его сначала отменяют.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("DeleteReservation: id=%d", id)

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.loadReservation(txCtx, id)
		if err != nil {
			return err
		}

		if !current.CanBeDeleted() {
			s.logger.Warn("DeleteReservation: reservation %s is pending and cannot be deleted", current.ReferenceCode)
			return fmt.Errorf("%w: cancel reservation %s first", ErrCannotDeletePending, current.ReferenceCode)
		}

		if err := s.reservationRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			s.logger.Error("DeleteReservation: failed to delete reservation %d: %v", id, err)
			return fmt.Errorf("%w: Delete - delete reservation: %v", ErrInternal, err)
		}

		return nil
	})
}

// SweepExpired отменяет pending-брони, чья дата заезда уже прошла.
// Каждая бронь идет через обычный переход в cancelled, поэтому проход
// идемпотентен: уже отмененная или подтвержденная конкурентом бронь
// пропускается. Ошибка одной брони не прерывает проход.
func (s *Service) SweepExpired(ctx context.Context) (*models.SweepResult, error) {
	today := types.NewDate(s.timeProvider.Now())
	s.logger.Info("SweepExpired: cutoff=%s", today)

	expired, err := s.reservationRepo.ListPendingBefore(ctx, today)
	if err != nil {
		s.logger.Error("SweepExpired: failed to list expired reservations: %v", err)
		return nil, fmt.Errorf("%w: SweepExpired - list pending: %v", ErrInternal, err)
	}

	reason := domain.SweeperCancellationReason
	result := &models.SweepResult{}

	for _, res := range expired {
		details, from, err := s.transition(ctx, res.ID, domain.StatusCancelled, nil, &reason)
		if err != nil {
			if errors.Is(err, ErrInvalidTransition) || errors.Is(err, ErrReservationNotFound) {
				// Бронь успели отменить, подтвердить или удалить между
				// выборкой и переходом
				s.logger.Info("SweepExpired: reservation %s skipped: %v", res.ReferenceCode, err)
				continue
			}
			s.logger.Error("SweepExpired: failed to cancel reservation %s: %v", res.ReferenceCode, err)
			result.Failed++
			continue
		}

		s.emitTransitioned(ctx, &details.Reservation, from, nil)
		result.Cancelled = append(result.Cancelled, &details.Reservation)
	}

	s.logger.Info("SweepExpired: cancelled=%d, failed=%d", result.Count(), result.Failed)

	return result, nil
}

// emitTransitioned публикует событие перехода после фиксации транзакции
func (s *Service) emitTransitioned(ctx context.Context, res *domain.Reservation, from domain.ReservationStatus, actorID *int64) {
	event := domain.ReservationEvent{
		Type:          domain.EventReservationTransitioned,
		ReservationID: res.ID,
		ReferenceCode: res.ReferenceCode,
		RoomID:        res.RoomID,
		GuestID:       res.GuestID,
		FromStatus:    from,
		ToStatus:      res.Status,
		ActorID:       actorID,
		OccurredAt:    s.timeProvider.Now(),
	}

	if err := s.emitter.Emit(ctx, event); err != nil {
		// Переход уже зафиксирован, отказ доставки только логируем
		s.logger.Error("emitTransitioned: failed to emit event for %s: %v", res.ReferenceCode, err)
	}
}

// loadReservation загружает бронирование, маппя отсутствие строки на
// сервисную ошибку
func (s *Service) loadReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("loadReservation: failed to get reservation %d: %v", id, err)
		return nil, fmt.Errorf("%w: load reservation: %v", ErrInternal, err)
	}

	return res, nil
}

// mergePatch накладывает непустые поля запроса на текущее бронирование
func mergePatch(current *domain.Reservation, req models.UpdateRequest) reservationRepo.ReservationPatch {
	patch := reservationRepo.ReservationPatch{
		Checkin:    current.Checkin,
		Checkout:   current.Checkout,
		GuestCount: current.GuestCount,
		Notes:      current.Notes,
	}
	if req.Checkin != nil {
		patch.Checkin = *req.Checkin
	}
	if req.Checkout != nil {
		patch.Checkout = *req.Checkout
	}
	if req.GuestCount != nil {
		patch.GuestCount = *req.GuestCount
	}
	if req.Notes != nil {
		patch.Notes = req.Notes
	}
	return patch
}
