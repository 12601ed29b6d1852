package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/room"
	"github.com/m04kA/HMS-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/HMS-ReservationService/pkg/ptr"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEmitter struct {
	events []domain.ReservationEvent
}

func (e *fakeEmitter) Emit(_ context.Context, event domain.ReservationEvent) error {
	e.events = append(e.events, event)
	return nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// fakeRepo in-memory репозиторий броней и комнат
type fakeRepo struct {
	reservations map[int64]*domain.Reservation
	rooms        map[int64]*domain.Room

	// beforeStatusUpdate вызывается перед guarded-обновлением, чтобы
	// имитировать конкурентный переход или сбой хранилища
	beforeStatusUpdate func(id int64) error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		reservations: make(map[int64]*domain.Reservation),
		rooms:        make(map[int64]*domain.Room),
	}
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	res, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	clone := *res
	return &clone, nil
}

func (f *fakeRepo) GetDetails(_ context.Context, id int64) (*domain.ReservationDetails, error) {
	res, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	room := f.rooms[res.RoomID]
	details := &domain.ReservationDetails{
		Reservation: *res,
		GuestName:   "Guest",
	}
	if room != nil {
		details.RoomNumber = room.RoomNumber
		details.RoomTypeName = room.TypeName
		details.RoomState = room.State
	}
	return details, nil
}

func (f *fakeRepo) FindOverlapping(_ context.Context, roomID int64, interval domain.DateInterval, excludeID *int64) ([]*domain.Reservation, error) {
	var overlapping []*domain.Reservation
	for _, res := range f.reservations {
		if excludeID != nil && res.ID == *excludeID {
			continue
		}
		if res.RoomID == roomID && res.IsActive() && res.Interval().Overlaps(interval) {
			overlapping = append(overlapping, res)
		}
	}
	return overlapping, nil
}

func (f *fakeRepo) UpdateFields(_ context.Context, id int64, patch reservationRepo.ReservationPatch) error {
	res, ok := f.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	res.Checkin = patch.Checkin
	res.Checkout = patch.Checkout
	res.GuestCount = patch.GuestCount
	res.Notes = patch.Notes
	return nil
}

func (f *fakeRepo) UpdateStatusFrom(_ context.Context, id int64, from, to domain.ReservationStatus, stamps reservationRepo.StatusStamps) error {
	if f.beforeStatusUpdate != nil {
		if err := f.beforeStatusUpdate(id); err != nil {
			return err
		}
	}

	res, ok := f.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	if res.Status != from {
		return reservationRepo.ErrStatusConflict
	}

	res.Status = to
	switch to {
	case domain.StatusConfirmed:
		res.ConfirmedBy = stamps.ActorID
		res.ConfirmedAt = ptr.Ptr(stamps.At)
	case domain.StatusCompleted:
		res.CompletedBy = stamps.ActorID
		res.CompletedAt = ptr.Ptr(stamps.At)
	case domain.StatusCancelled:
		res.CancelledAt = ptr.Ptr(stamps.At)
		res.CancellationReason = stamps.CancellationReason
	}
	return nil
}

func (f *fakeRepo) ListPendingBefore(_ context.Context, cutoff types.Date) ([]*domain.Reservation, error) {
	var expired []*domain.Reservation
	for _, res := range f.reservations {
		if res.Status == domain.StatusPending && res.Checkin.Before(cutoff) {
			clone := *res
			expired = append(expired, &clone)
		}
	}
	return expired, nil
}

func (f *fakeRepo) GetByGuestWithFilter(_ context.Context, filter domain.GuestReservationsFilter) ([]*domain.Reservation, error) {
	var list []*domain.Reservation
	for _, res := range f.reservations {
		if res.GuestID != filter.GuestID {
			continue
		}
		if filter.Status != nil && res.Status != *filter.Status {
			continue
		}
		if !filter.IncludeInactive && !res.IsActive() {
			continue
		}
		list = append(list, res)
	}
	return list, nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.reservations[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	delete(f.reservations, id)
	return nil
}

// fakeRooms отдельный репозиторий комнат поверх того же хранилища
type fakeRooms struct {
	repo *fakeRepo
}

func (f *fakeRooms) GetByID(_ context.Context, id int64) (*domain.Room, error) {
	room, ok := f.repo.rooms[id]
	if !ok {
		return nil, roomRepo.ErrRoomNotFound
	}
	return room, nil
}

func (f *fakeRooms) UpdateState(_ context.Context, id int64, state domain.RoomState) error {
	room, ok := f.repo.rooms[id]
	if !ok {
		return roomRepo.ErrRoomNotFound
	}
	room.State = state
	return nil
}

// --- фикстуры ---

var testNow = time.Date(2026, 7, 10, 12, 0, 0, 0, time.UTC)

func date(t *testing.T, s string) types.Date {
	t.Helper()
	d, err := types.ParseDate(s)
	require.NoError(t, err)
	return d
}

func newTestService(repo *fakeRepo) (*Service, *fakeEmitter) {
	emitter := &fakeEmitter{}
	svc := NewService(repo, &fakeRooms{repo: repo}, passthroughTxManager{}, emitter, nopLogger{}).
		WithTimeProvider(fixedClock{now: testNow})
	return svc, emitter
}

func seed(repo *fakeRepo, id int64, status domain.ReservationStatus, checkin, checkout types.Date) *domain.Reservation {
	res := &domain.Reservation{
		ID:            id,
		ReferenceCode: "RSV-TEST",
		GuestID:       10,
		RoomID:        1,
		Checkin:       checkin,
		Checkout:      checkout,
		GuestCount:    2,
		NightlyPrice:  100.0,
		Channel:       domain.ChannelDirect,
		Status:        status,
	}
	repo.reservations[id] = res
	if _, ok := repo.rooms[1]; !ok {
		repo.rooms[1] = &domain.Room{
			ID:         1,
			RoomNumber: "101",
			TypeName:   "standard",
			Capacity:   3,
			BaseRate:   100.0,
			State:      domain.RoomAvailable,
			Active:     true,
		}
	}
	return res
}

func actor(id int64) models.Actor { return models.Actor{ID: id} }

// --- переходы ---

func TestTransition_ConfirmStampsActorAndOccupiesRoom(t *testing.T) {
	repo := newFakeRepo()
	seed(repo, 1, domain.StatusPending, date(t, "2026-07-20"), date(t, "2026-07-24"))
	svc, emitter := newTestService(repo)

	details, err := svc.Transition(context.Background(), 1, models.TransitionRequest{
		Target: domain.StatusConfirmed,
		Actor:  actor(7),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, details.Status)
	require.NotNil(t, details.ConfirmedBy)
	assert.Equal(t, int64(7), *details.ConfirmedBy)
	require.NotNil(t, details.ConfirmedAt)
	assert.Equal(t, testNow, *details.ConfirmedAt)

	assert.Equal(t, domain.RoomOccupied, repo.rooms[1].State)

	require.Len(t, emitter.events, 1)
	event := emitter.events[0]
	assert.Equal(t, domain.EventReservationTransitioned, event.Type)
	assert.Equal(t, domain.StatusPending, event.FromStatus)
	assert.Equal(t, domain.StatusConfirmed, event.ToStatus)
	require.NotNil(t, event.ActorID)
	assert.Equal(t, int64(7), *event.ActorID)
}

func TestTransition_ConfirmLeavesMaintenanceRoomUntouched(t *testing.T) {
	repo := newFakeRepo()
	seed(repo, 1, domain.StatusPending, date(t, "2026-07-20"), date(t, "2026-07-24"))
	repo.rooms[1].State = domain.RoomMaintenance
	svc, _ := newTestService(repo)

	_, err := svc.Transition(context.Background(), 1, models.TransitionRequest{
		Target: domain.StatusConfirmed,
		Actor:  actor(7),
	})
	require.NoError(t, err)

	// Комната в ремонте не занимается автоматически, сама бронь подтверждена
	assert.Equal(t, domain.RoomMaintenance, repo.rooms[1].State)
	assert.Equal(t, domain.StatusConfirmed, repo.reservations[1].Status)
}

func TestTransition_CompleteSendsRoomToCleaning(t *testing.T) {
	repo := newFakeRepo()
	seed(repo, 1, domain.StatusConfirmed, date(t, "2026-07-01"), date(t, "2026-07-05"))
	repo.rooms[1].State = domain.RoomOccupied
	svc, _ := newTestService(repo)

	details, err := svc.Transition(context.Background(), 1, models.TransitionRequest{
		Target: domain.StatusCompleted,
		Actor:  actor(3),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, details.Status)
	require.NotNil(t, details.CompletedBy)
	assert.Equal(t, int64(3), *details.CompletedBy)
	assert.Equal(t, domain.RoomCleaning, repo.rooms[1].State)
}

func TestTransition_CancelLeavesRoomStateUntouched(t *testing.T) {
	repo := newFakeRepo()
	seed(repo, 1, domain.StatusConfirmed, date(t, "2026-07-20"), date(t, "2026-07-24"))
	repo.rooms[1].State = domain.RoomOccupied
	svc, _ := newTestService(repo)

	details, err := svc.Transition(context.Background(), 1, models.TransitionRequest{
		Target: domain.StatusCancelled,
		Actor:  actor(7),
		Reason: ptr.Ptr("guest no-show"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, details.Status)
	require.NotNil(t, details.CancellationReason)
	assert.Equal(t, "guest no-show", *details.CancellationReason)
	require.NotNil(t, details.CancelledAt)

	// Отмена не трогает операционное состояние
	assert.Equal(t, domain.RoomOccupied, repo.rooms[1].State)
}

func TestTransition_IllegalTransitionsRejected(t *testing.T) {
	tests := []struct {
		from   domain.ReservationStatus
		target domain.ReservationStatus
	}{
		{domain.StatusPending, domain.StatusCompleted},
		{domain.StatusCompleted, domain.StatusCancelled},
		{domain.StatusCompleted, domain.StatusConfirmed},
		{domain.StatusCancelled, domain.StatusConfirmed},
		{domain.StatusCancelled, domain.StatusCompleted},
		{domain.StatusConfirmed, domain.StatusConfirmed},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.target), func(t *testing.T) {
			repo := newFakeRepo()
			seed(repo, 1, tt.from, date(t, "2026-07-20"), date(t, "2026-07-24"))
			roomStateBefore := repo.rooms[1].State
			svc, emitter := newTestService(repo)

			_, err := svc.Transition(context.Background(), 1, models.TransitionRequest{
				Target: tt.target,
				Actor:  actor(7),
			})
			require.ErrorIs(t, err, ErrInvalidTransition)
			// Сообщение называет оба статуса
			assert.Contains(t, err.Error(), string(tt.from))
			assert.Contains(t, err.Error(), string(tt.target))

			assert.Equal(t, tt.from, repo.reservations[1].Status)
			assert.Equal(t, roomStateBefore, repo.rooms[1].State)
			assert.Empty(t, emitter.events)
		})
	}
}

func TestTransition_UnknownTargetStatus(t *testing.T) {
	repo := newFakeRepo()
	seed(repo, 1, domain.StatusPending, date(t, "2026-07-20"), date(t, "2026-07-24"))
	svc, _ := newTestService(repo)

	_, err := svc.Transition(context.Background(), 1, models.TransitionRequest{
		Target: domain.ReservationStatus("checked_in"),
		Actor:  actor(7),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTransition_ConcurrentLoserGetsInvalidTransition(t *testing.T) {
	repo := newFakeRepo()
	seed(repo, 1, domain.StatusPending, date(t, "2026-07-20"), date(t, "2026-07-24"))
	svc, emitter := newTestService(repo)

	// Конкурент отменяет бронь между загрузкой и guarded-обновлением
	repo.beforeStatusUpdate = func(id int64) error {
		repo.reservations[id].Status = domain.StatusCancelled
		repo.beforeStatusUpdate = nil
		return nil
	}

	_, err := svc.Transition(context.Background(), 1, models.TransitionRequest{
		Target: domain.StatusConfirmed,
		Actor:  actor(7),
	})
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, domain.StatusCancelled, repo.reservations[1].Status)
	assert.Empty(t, emitter.events)
}

func TestTransition_NotFound(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())

	_, err := svc.Transition(context.Background(), 404, models.TransitionRequest{
		Target: domain.StatusConfirmed,
		Actor:  actor(7),
	})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

// --- изменение брони ---

func TestUpdate_ChangesDatesAndRechecksOverlapExcludingSelf(t *testing.T) {
	repo := newFakeRepo()
	seed(repo, 1, domain.StatusConfirmed, date(t, "2026-07-20"), date(t, "2026-07-24"))
	svc, _ := newTestService(repo)

	// Сдвиг внутрь собственного интервала не конфликтует сам с собой
	details, err := svc.Update(context.Background(), 1, models.UpdateRequest{
		Checkin:  ptr.Ptr(date(t, "2026-07-21")),
		Checkout: ptr.Ptr(date(t, "2026-07-23")),
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-07-21", details.Checkin.String())
	assert.Equal(t, "2026-07-23", details.Checkout.String())
}

func TestUpdate_OverlapWithOtherReservationRejected(t *testing.T) {
	repo := newFakeRepo()
	seed(repo, 1, domain.StatusConfirmed, date(t, "2026-07-20"), date(t, "2026-07-24"))
	seed(repo, 2, domain.StatusPending, date(t, "2026-07-25"), date(t, "2026-07-28"))
	svc, _ := newTestService(repo)

	_, err := svc.Update(context.Background(), 1, models.UpdateRequest{
		Checkout: ptr.Ptr(date(t, "2026-07-26")),
	})
	assert.ErrorIs(t, err, ErrOverlapConflict)
	// Бронь не изменилась
	assert.Equal(t, "2026-07-24", repo.reservations[1].Checkout.String())
}

func TestUpdate_TerminalStatusRejected(t *testing.T) {
	for _, status := range []domain.ReservationStatus{domain.StatusCompleted, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			repo := newFakeRepo()
			seed(repo, 1, status, date(t, "2026-07-20"), date(t, "2026-07-24"))
			svc, _ := newTestService(repo)

			_, err := svc.Update(context.Background(), 1, models.UpdateRequest{
				GuestCount: ptr.Ptr(1),
			})
			require.ErrorIs(t, err, ErrInvalidStateForEdit)
			assert.Contains(t, err.Error(), string(status))
		})
	}
}

func TestUpdate_CapacityChecked(t *testing.T) {
	repo := newFakeRepo()
	seed(repo, 1, domain.StatusPending, date(t, "2026-07-20"), date(t, "2026-07-24"))
	svc, _ := newTestService(repo)

	_, err := svc.Update(context.Background(), 1, models.UpdateRequest{
		GuestCount: ptr.Ptr(4),
	})
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 2, repo.reservations[1].GuestCount)
}

func TestUpdate_EmptyRequestRejected(t *testing.T) {
	repo := newFakeRepo()
	seed(repo, 1, domain.StatusPending, date(t, "2026-07-20"), date(t, "2026-07-24"))
	svc, _ := newTestService(repo)

	_, err := svc.Update(context.Background(), 1, models.UpdateRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_InvertedDatesRejected(t *testing.T) {
	repo := newFakeRepo()
	seed(repo, 1, domain.StatusPending, date(t, "2026-07-20"), date(t, "2026-07-24"))
	svc, _ := newTestService(repo)

	// Новый checkin позже существующего checkout
	_, err := svc.Update(context.Background(), 1, models.UpdateRequest{
		Checkin: ptr.Ptr(date(t, "2026-07-25")),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// --- удаление ---

func TestDelete_PendingRefused(t *testing.T) {
	repo := newFakeRepo()
	seed(repo, 1, domain.StatusPending, date(t, "2026-07-20"), date(t, "2026-07-24"))
	svc, _ := newTestService(repo)

	err := svc.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, ErrCannotDeletePending)
	assert.Contains(t, repo.reservations, int64(1))
}

func TestDelete_NonPendingAllowed(t *testing.T) {
	for _, status := range []domain.ReservationStatus{domain.StatusConfirmed, domain.StatusCompleted, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			repo := newFakeRepo()
			seed(repo, 1, status, date(t, "2026-07-20"), date(t, "2026-07-24"))
			svc, _ := newTestService(repo)

			require.NoError(t, svc.Delete(context.Background(), 1))
			assert.NotContains(t, repo.reservations, int64(1))
		})
	}
}

func TestDelete_NotFound(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())
	assert.ErrorIs(t, svc.Delete(context.Background(), 404), ErrReservationNotFound)
}

// --- очистка просроченных броней ---

func TestSweepExpired_CancelsStalePending(t *testing.T) {
	repo := newFakeRepo()
	// Заезд вчера относительно testNow (2026-07-10)
	seed(repo, 1, domain.StatusPending, date(t, "2026-07-09"), date(t, "2026-07-12"))
	// Заезд сегодня еще не просрочен
	seed(repo, 2, domain.StatusPending, date(t, "2026-07-10"), date(t, "2026-07-12"))
	// Подтвержденные брони не трогаются
	seed(repo, 3, domain.StatusConfirmed, date(t, "2026-07-01"), date(t, "2026-07-05"))
	svc, emitter := newTestService(repo)

	result, err := svc.SweepExpired(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Count())
	assert.Zero(t, result.Failed)

	cancelled := repo.reservations[1]
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancellationReason)
	assert.Equal(t, domain.SweeperCancellationReason, *cancelled.CancellationReason)
	require.NotNil(t, cancelled.CancelledAt)

	assert.Equal(t, domain.StatusPending, repo.reservations[2].Status)
	assert.Equal(t, domain.StatusConfirmed, repo.reservations[3].Status)

	// Событие перехода без актора: отмена системная
	require.Len(t, emitter.events, 1)
	assert.Nil(t, emitter.events[0].ActorID)
	assert.Equal(t, domain.StatusCancelled, emitter.events[0].ToStatus)
}

func TestSweepExpired_Idempotent(t *testing.T) {
	repo := newFakeRepo()
	seed(repo, 1, domain.StatusPending, date(t, "2026-07-01"), date(t, "2026-07-03"))
	svc, _ := newTestService(repo)

	first, err := svc.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Count())

	second, err := svc.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Zero(t, second.Count())
	assert.Zero(t, second.Failed)
}

func TestSweepExpired_SkipsConcurrentlyResolved(t *testing.T) {
	repo := newFakeRepo()
	seed(repo, 1, domain.StatusPending, date(t, "2026-07-01"), date(t, "2026-07-03"))
	svc, emitter := newTestService(repo)

	// Администратор подтверждает бронь, пока идет проход очистки
	repo.beforeStatusUpdate = func(id int64) error {
		repo.reservations[id].Status = domain.StatusConfirmed
		repo.beforeStatusUpdate = nil
		return nil
	}

	result, err := svc.SweepExpired(context.Background())
	require.NoError(t, err)

	// Бронь пропущена, это не ошибка прохода
	assert.Zero(t, result.Count())
	assert.Zero(t, result.Failed)
	assert.Equal(t, domain.StatusConfirmed, repo.reservations[1].Status)
	assert.Empty(t, emitter.events)
}

func TestSweepExpired_ContinuesAfterItemFailure(t *testing.T) {
	repo := newFakeRepo()
	seed(repo, 1, domain.StatusPending, date(t, "2026-07-01"), date(t, "2026-07-03"))
	seed(repo, 2, domain.StatusPending, date(t, "2026-07-02"), date(t, "2026-07-04"))
	svc, _ := newTestService(repo)

	// Одна бронь падает с ошибкой хранилища, проход продолжается
	repo.beforeStatusUpdate = func(id int64) error {
		if id == 1 {
			return errors.New("storage unavailable")
		}
		return nil
	}

	result, err := svc.SweepExpired(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Count())
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, domain.StatusPending, repo.reservations[1].Status)
	assert.Equal(t, domain.StatusCancelled, repo.reservations[2].Status)
}

// --- история гостя ---

func TestGetByGuest_AppliesFilter(t *testing.T) {
	repo := newFakeRepo()
	seed(repo, 1, domain.StatusPending, date(t, "2026-07-20"), date(t, "2026-07-22"))
	seed(repo, 2, domain.StatusCancelled, date(t, "2026-06-01"), date(t, "2026-06-03"))
	svc, _ := newTestService(repo)

	active, err := svc.GetByGuest(context.Background(), domain.GuestReservationsFilter{GuestID: 10})
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := svc.GetByGuest(context.Background(), domain.GuestReservationsFilter{GuestID: 10, IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
