package room

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/HMS-ReservationService/pkg/psqlbuilder"
)

var roomColumns = []string{
	"r.id",
	"r.room_number",
	"r.room_type_id",
	"rt.name",
	"rt.capacity",
	"rt.base_rate",
	"r.price_override",
	"r.operational_state",
	"r.active",
	"r.created_at",
	"r.updated_at",
}

// Repository репозиторий для работы с комнатами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория комнат
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает комнату по ID вместе с данными типа (вместимость, базовый тариф).
// Внутри транзакции строка комнаты блокируется (FOR UPDATE OF r), чтобы
// конкурирующие бронирования одной комнаты выстраивались последовательно.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(roomColumns...).
		From("rooms r").
		Join("room_types rt ON rt.id = r.room_type_id").
		Where(squirrel.Eq{"r.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF r")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	room, err := r.scanRoom(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan room: %v", ErrScanRow, err)
	}

	return room, nil
}

// FindAvailable возвращает активные комнаты без пересекающихся активных
// бронирований в диапазоне [checkin, checkout). Опционально фильтрует по типу.
func (r *Repository) FindAvailable(ctx context.Context, interval domain.DateInterval, roomTypeID *int64) ([]*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(roomColumns...).
		From("rooms r").
		Join("room_types rt ON rt.id = r.room_type_id").
		Where(squirrel.Eq{"r.active": true}).
		Where(squirrel.Expr(
			`NOT EXISTS (
				SELECT 1 FROM reservations res
				WHERE res.room_id = r.id
				  AND res.status = ANY(?)
				  AND res.checkin < ?
				  AND ? < res.checkout
			)`,
			pq.Array(activeStatuses), interval.Checkout, interval.Checkin,
		)).
		OrderBy("r.room_number ASC")

	if roomTypeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.room_type_id": *roomTypeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindAvailable - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindAvailable - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rooms := make([]*domain.Room, 0)
	for rows.Next() {
		room, err := r.scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: FindAvailable - scan row: %v", ErrScanRow, err)
		}
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindAvailable - rows error: %v", ErrScanRow, err)
	}

	return rooms, nil
}

// UpdateState обновляет операционное состояние комнаты
func (r *Repository) UpdateState(ctx context.Context, id int64, state domain.RoomState) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("rooms").
		Set("operational_state", state).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateState - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateState - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateState - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrRoomNotFound
	}

	return nil
}

// scanner общий интерфейс *sql.Row и *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanRoom(row scanner) (*domain.Room, error) {
	var room domain.Room
	var priceOverride sql.NullFloat64

	err := row.Scan(
		&room.ID,
		&room.RoomNumber,
		&room.RoomTypeID,
		&room.TypeName,
		&room.Capacity,
		&room.BaseRate,
		&priceOverride,
		&room.State,
		&room.Active,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if priceOverride.Valid {
		room.PriceOverride = &priceOverride.Float64
	}

	return &room, nil
}
