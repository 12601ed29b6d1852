package check_availability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/pkg/ptr"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRoomRepo struct {
	rooms        []*domain.Room
	err          error
	lastInterval domain.DateInterval
	lastTypeID   *int64
}

func (r *fakeRoomRepo) FindAvailable(_ context.Context, interval domain.DateInterval, roomTypeID *int64) ([]*domain.Room, error) {
	r.lastInterval = interval
	r.lastTypeID = roomTypeID
	return r.rooms, r.err
}

func date(t *testing.T, s string) types.Date {
	t.Helper()
	d, err := types.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestExecute_ReturnsAvailableRooms(t *testing.T) {
	repo := &fakeRoomRepo{
		rooms: []*domain.Room{
			{ID: 1, RoomNumber: "101", RoomTypeID: 1, TypeName: "standard", Capacity: 2, BaseRate: 100.0, State: domain.RoomAvailable},
			{ID: 2, RoomNumber: "201", RoomTypeID: 2, TypeName: "suite", Capacity: 4, BaseRate: 250.0, PriceOverride: ptr.Ptr(199.0), State: domain.RoomCleaning},
		},
	}
	uc := NewUseCase(repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Checkin:  date(t, "2026-05-01"),
		Checkout: date(t, "2026-05-04"),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Nights)
	require.Len(t, resp.Rooms, 2)
	assert.InDelta(t, 100.0, resp.Rooms[0].NightlyPrice, 0.001)
	// Переопределенная цена важнее базовой ставки типа
	assert.InDelta(t, 199.0, resp.Rooms[1].NightlyPrice, 0.001)
}

func TestExecute_PassesRoomTypeFilter(t *testing.T) {
	repo := &fakeRoomRepo{}
	uc := NewUseCase(repo, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		Checkin:    date(t, "2026-05-01"),
		Checkout:   date(t, "2026-05-04"),
		RoomTypeID: ptr.Ptr(int64(2)),
	})
	require.NoError(t, err)

	require.NotNil(t, repo.lastTypeID)
	assert.Equal(t, int64(2), *repo.lastTypeID)
}

func TestExecute_EmptyResultIsNotAnError(t *testing.T) {
	uc := NewUseCase(&fakeRoomRepo{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Checkin:  date(t, "2026-05-01"),
		Checkout: date(t, "2026-05-02"),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Rooms)
	assert.NotNil(t, resp.Rooms)
}

func TestExecute_InvalidDateRange(t *testing.T) {
	uc := NewUseCase(&fakeRoomRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		Checkin:  date(t, "2026-05-04"),
		Checkout: date(t, "2026-05-01"),
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = uc.Execute(context.Background(), &Request{
		Checkin:  date(t, "2026-05-01"),
		Checkout: date(t, "2026-05-01"),
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestExecute_RepositoryFailure(t *testing.T) {
	uc := NewUseCase(&fakeRoomRepo{err: errors.New("connection reset")}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		Checkin:  date(t, "2026-05-01"),
		Checkout: date(t, "2026-05-02"),
	})
	assert.ErrorIs(t, err, ErrInternal)
}
