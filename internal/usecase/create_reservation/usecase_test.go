package create_reservation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	guestRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/guest"
	reservationRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/room"
	"github.com/m04kA/HMS-ReservationService/pkg/ptr"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

// --- in-memory фейки ---

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fakeTxManager сериализует единицы работы мьютексом, как это делает
// сериализуемая транзакция
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fakeEmitter struct {
	mu     sync.Mutex
	events []domain.ReservationEvent
	fail   bool
}

func (e *fakeEmitter) Emit(_ context.Context, event domain.ReservationEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fail {
		return errors.New("broker unavailable")
	}
	e.events = append(e.events, event)
	return nil
}

func (e *fakeEmitter) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.events)
}

// fakeStore держит гостей, комнаты и брони в памяти
type fakeStore struct {
	mu           sync.Mutex
	guests       map[int64]*domain.Guest
	rooms        map[int64]*domain.Room
	reservations map[int64]*domain.Reservation
	nextID       int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		guests:       make(map[int64]*domain.Guest),
		rooms:        make(map[int64]*domain.Room),
		reservations: make(map[int64]*domain.Reservation),
		nextID:       1,
	}
}

func (s *fakeStore) GetByID(_ context.Context, id int64) (*domain.Guest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	guest, ok := s.guests[id]
	if !ok {
		return nil, guestRepo.ErrGuestNotFound
	}
	return guest, nil
}

func (s *fakeStore) GetByDocument(_ context.Context, documentID string) (*domain.Guest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, guest := range s.guests {
		if guest.DocumentID == documentID {
			return guest, nil
		}
	}
	return nil, guestRepo.ErrGuestNotFound
}

func (s *fakeStore) Create(_ context.Context, attrs domain.NewGuestAttributes) (*domain.Guest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	guest := &domain.Guest{
		ID:         s.nextID,
		FullName:   attrs.FullName,
		DocumentID: attrs.DocumentID,
		Email:      attrs.Email,
		Phone:      attrs.Phone,
		Country:    attrs.Country,
	}
	s.nextID++
	s.guests[guest.ID] = guest
	return guest, nil
}

type fakeRoomRepo struct {
	store *fakeStore
}

func (r *fakeRoomRepo) GetByID(_ context.Context, id int64) (*domain.Room, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	room, ok := r.store.rooms[id]
	if !ok {
		return nil, roomRepo.ErrRoomNotFound
	}
	return room, nil
}

type fakeReservationRepo struct {
	store *fakeStore
}

func (r *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	// Имитация exclusion constraint хранилища
	for _, existing := range r.store.reservations {
		if existing.RoomID == res.RoomID && existing.IsActive() && existing.Interval().Overlaps(res.Interval()) {
			return nil, reservationRepo.ErrOverlapViolation
		}
	}
	stored := *res
	stored.ID = r.store.nextID
	r.store.nextID++
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.store.reservations[stored.ID] = &stored
	return &stored, nil
}

func (r *fakeReservationRepo) FindOverlapping(_ context.Context, roomID int64, interval domain.DateInterval, excludeID *int64) ([]*domain.Reservation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var overlapping []*domain.Reservation
	for _, res := range r.store.reservations {
		if excludeID != nil && res.ID == *excludeID {
			continue
		}
		if res.RoomID == roomID && res.IsActive() && res.Interval().Overlaps(interval) {
			overlapping = append(overlapping, res)
		}
	}
	return overlapping, nil
}

func (r *fakeReservationRepo) GetDetails(_ context.Context, id int64) (*domain.ReservationDetails, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	res, ok := r.store.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	guest := r.store.guests[res.GuestID]
	room := r.store.rooms[res.RoomID]
	return &domain.ReservationDetails{
		Reservation:  *res,
		GuestName:    guest.FullName,
		RoomNumber:   room.RoomNumber,
		RoomTypeName: room.TypeName,
		RoomState:    room.State,
	}, nil
}

// --- фикстуры ---

func date(t *testing.T, s string) types.Date {
	t.Helper()
	d, err := types.ParseDate(s)
	require.NoError(t, err)
	return d
}

func newTestUseCase(store *fakeStore) (*UseCase, *fakeEmitter) {
	emitter := &fakeEmitter{}
	uc := NewUseCase(
		store,
		&fakeRoomRepo{store: store},
		&fakeReservationRepo{store: store},
		&fakeTxManager{},
		emitter,
		nopLogger{},
	)
	return uc, emitter
}

func seedRoom(store *fakeStore, id int64, capacity int, rate float64) *domain.Room {
	room := &domain.Room{
		ID:         id,
		RoomNumber: "101",
		RoomTypeID: 1,
		TypeName:   "standard",
		Capacity:   capacity,
		BaseRate:   rate,
		State:      domain.RoomAvailable,
		Active:     true,
	}
	store.rooms[id] = room
	return room
}

func seedGuest(store *fakeStore, id int64) *domain.Guest {
	guest := &domain.Guest{ID: id, FullName: "Anna Schmidt", DocumentID: "P1234567"}
	store.guests[id] = guest
	return guest
}

func validRequest(t *testing.T, guestID int64) *Request {
	return &Request{
		GuestID:    ptr.Ptr(guestID),
		RoomID:     1,
		Checkin:    date(t, "2026-07-01"),
		Checkout:   date(t, "2026-07-05"),
		GuestCount: 2,
		Channel:    domain.ChannelDirect,
	}
}

// --- тесты ---

func TestExecute_CreatesPendingReservation(t *testing.T) {
	store := newFakeStore()
	seedRoom(store, 1, 2, 150.0)
	seedGuest(store, 10)
	uc, emitter := newTestUseCase(store)

	resp, err := uc.Execute(context.Background(), validRequest(t, 10))
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, int64(10), resp.GuestID)
	assert.Equal(t, 4, resp.Nights)
	assert.InDelta(t, 150.0, resp.NightlyPrice, 0.001)
	assert.InDelta(t, 600.0, resp.TotalPrice, 0.001)
	assert.Regexp(t, `^RSV-[0-9A-F]{12}$`, resp.ReferenceCode)

	require.Equal(t, 1, emitter.count())
	assert.Equal(t, domain.EventReservationCreated, emitter.events[0].Type)
	assert.Equal(t, domain.StatusPending, emitter.events[0].ToStatus)
}

func TestExecute_SnapshotsPriceOverride(t *testing.T) {
	store := newFakeStore()
	room := seedRoom(store, 1, 2, 150.0)
	room.PriceOverride = ptr.Ptr(99.0)
	seedGuest(store, 10)
	uc, _ := newTestUseCase(store)

	resp, err := uc.Execute(context.Background(), validRequest(t, 10))
	require.NoError(t, err)
	assert.InDelta(t, 99.0, resp.NightlyPrice, 0.001)

	// Последующая смена цены не трогает существующую бронь
	room.PriceOverride = ptr.Ptr(500.0)
	stored := store.reservations[resp.ID]
	assert.InDelta(t, 99.0, stored.NightlyPrice, 0.001)
}

func TestExecute_CreatesGuestOnFirstBooking(t *testing.T) {
	store := newFakeStore()
	seedRoom(store, 1, 2, 150.0)
	uc, _ := newTestUseCase(store)

	req := validRequest(t, 0)
	req.GuestID = nil
	req.Guest = &GuestInput{FullName: "Omar Haddad", DocumentID: "X555"}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Omar Haddad", resp.GuestName)

	// Повторная бронь с тем же документом переиспользует запись гостя
	req2 := validRequest(t, 0)
	req2.GuestID = nil
	req2.Guest = &GuestInput{FullName: "Omar Haddad", DocumentID: "X555"}
	req2.Checkin = date(t, "2026-08-01")
	req2.Checkout = date(t, "2026-08-03")

	resp2, err := uc.Execute(context.Background(), req2)
	require.NoError(t, err)
	assert.Equal(t, resp.GuestID, resp2.GuestID)
	assert.Len(t, store.guests, 1)
}

func TestExecute_GuestNotFound(t *testing.T) {
	store := newFakeStore()
	seedRoom(store, 1, 2, 150.0)
	uc, emitter := newTestUseCase(store)

	_, err := uc.Execute(context.Background(), validRequest(t, 404))
	assert.ErrorIs(t, err, ErrGuestNotFound)
	assert.Zero(t, emitter.count())
}

func TestExecute_RoomNotFound(t *testing.T) {
	store := newFakeStore()
	seedGuest(store, 10)
	uc, _ := newTestUseCase(store)

	_, err := uc.Execute(context.Background(), validRequest(t, 10))
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestExecute_RoomInactive(t *testing.T) {
	store := newFakeStore()
	room := seedRoom(store, 1, 2, 150.0)
	room.Active = false
	seedGuest(store, 10)
	uc, _ := newTestUseCase(store)

	_, err := uc.Execute(context.Background(), validRequest(t, 10))
	assert.ErrorIs(t, err, ErrRoomInactive)
}

func TestExecute_CapacityExceeded(t *testing.T) {
	store := newFakeStore()
	seedRoom(store, 1, 2, 150.0)
	seedGuest(store, 10)
	uc, _ := newTestUseCase(store)

	req := validRequest(t, 10)
	req.GuestCount = 3

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Contains(t, err.Error(), "3 guests, capacity 2")
}

func TestExecute_OverlapConflict(t *testing.T) {
	store := newFakeStore()
	seedRoom(store, 1, 2, 150.0)
	seedGuest(store, 10)
	uc, emitter := newTestUseCase(store)

	_, err := uc.Execute(context.Background(), validRequest(t, 10))
	require.NoError(t, err)

	// Частично пересекающийся интервал той же комнаты
	req := validRequest(t, 10)
	req.Checkin = date(t, "2026-07-03")
	req.Checkout = date(t, "2026-07-08")

	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOverlapConflict)
	assert.Equal(t, 1, emitter.count())
	assert.Len(t, store.reservations, 1)
}

func TestExecute_BackToBackStaysAllowed(t *testing.T) {
	store := newFakeStore()
	seedRoom(store, 1, 2, 150.0)
	seedGuest(store, 10)
	uc, _ := newTestUseCase(store)

	_, err := uc.Execute(context.Background(), validRequest(t, 10))
	require.NoError(t, err)

	// Заезд в день выезда предыдущей брони не конфликтует
	req := validRequest(t, 10)
	req.Checkin = date(t, "2026-07-05")
	req.Checkout = date(t, "2026-07-07")

	_, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, store.reservations, 2)
}

func TestExecute_CancelledReservationDoesNotBlock(t *testing.T) {
	store := newFakeStore()
	seedRoom(store, 1, 2, 150.0)
	seedGuest(store, 10)
	uc, _ := newTestUseCase(store)

	resp, err := uc.Execute(context.Background(), validRequest(t, 10))
	require.NoError(t, err)

	store.reservations[resp.ID].Status = domain.StatusCancelled

	_, err = uc.Execute(context.Background(), validRequest(t, 10))
	require.NoError(t, err)
}

func TestExecute_ValidationErrors(t *testing.T) {
	store := newFakeStore()
	seedRoom(store, 1, 2, 150.0)
	seedGuest(store, 10)
	uc, _ := newTestUseCase(store)

	tests := []struct {
		name    string
		mutate  func(req *Request)
		wantErr error
	}{
		{
			name:    "checkout before checkin",
			mutate:  func(req *Request) { req.Checkin, req.Checkout = req.Checkout, req.Checkin },
			wantErr: ErrInvalidDateRange,
		},
		{
			name:    "zero nights",
			mutate:  func(req *Request) { req.Checkout = req.Checkin },
			wantErr: ErrInvalidDateRange,
		},
		{
			name:    "guest id and attributes together",
			mutate:  func(req *Request) { req.Guest = &GuestInput{FullName: "A", DocumentID: "B"} },
			wantErr: ErrInvalidInput,
		},
		{
			name: "no guest at all",
			mutate: func(req *Request) {
				req.GuestID = nil
			},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "non-positive guest count",
			mutate:  func(req *Request) { req.GuestCount = 0 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown channel",
			mutate:  func(req *Request) { req.Channel = "fax" },
			wantErr: ErrInvalidInput,
		},
		{
			name: "stay too long",
			mutate: func(req *Request) {
				req.Checkout = req.Checkin.AddDays(domain.MaxStayNights + 1)
			},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(t, 10)
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_EmitFailureDoesNotFailBooking(t *testing.T) {
	store := newFakeStore()
	seedRoom(store, 1, 2, 150.0)
	seedGuest(store, 10)
	uc, emitter := newTestUseCase(store)
	emitter.fail = true

	resp, err := uc.Execute(context.Background(), validRequest(t, 10))
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Len(t, store.reservations, 1)
}

func TestExecute_ConcurrentBookingsExactlyOneWins(t *testing.T) {
	store := newFakeStore()
	seedRoom(store, 1, 2, 150.0)
	seedGuest(store, 10)
	uc, _ := newTestUseCase(store)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), validRequest(t, 10))
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrOverlapConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, conflicts)
	assert.Len(t, store.reservations, 1)
}
