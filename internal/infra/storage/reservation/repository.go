package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/HMS-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

// pgExclusionViolation код ошибки PostgreSQL для нарушения exclusion constraint
const pgExclusionViolation = "23P01"

var reservationColumns = []string{
	"id",
	"reference_code",
	"guest_id",
	"room_id",
	"checkin",
	"checkout",
	"guest_count",
	"nightly_price",
	"channel",
	"notes",
	"status",
	"confirmed_by",
	"confirmed_at",
	"completed_by",
	"completed_at",
	"cancelled_at",
	"cancellation_reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование. Должен вызываться внутри той же транзакции,
// что и проверка пересечений, иначе check-then-insert остается гонкой.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"reference_code",
			"guest_id",
			"room_id",
			"checkin",
			"checkout",
			"guest_count",
			"nightly_price",
			"channel",
			"notes",
			"status",
		).
		Values(
			res.ReferenceCode,
			res.GuestID,
			res.RoomID,
			res.Checkin,
			res.Checkout,
			res.GuestCount,
			res.NightlyPrice,
			res.Channel,
			res.Notes,
			res.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrOverlapViolation
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return res, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE) для guarded-переходов.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetDetails получает бронирование вместе с подписями гостя, комнаты и типа
func (r *Repository) GetDetails(ctx context.Context, id int64) (*domain.ReservationDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := make([]string, 0, len(reservationColumns)+4)
	for _, c := range reservationColumns {
		columns = append(columns, "res."+c)
	}
	columns = append(columns, "g.full_name", "r.room_number", "rt.name", "r.operational_state")

	query, args, err := psqlbuilder.Select(columns...).
		From("reservations res").
		Join("guests g ON g.id = res.guest_id").
		Join("rooms r ON r.id = res.room_id").
		Join("room_types rt ON rt.id = r.room_type_id").
		Where(squirrel.Eq{"res.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetails - build select query: %v", ErrBuildQuery, err)
	}

	var details domain.ReservationDetails
	dest := reservationDest(&details.Reservation)
	dest = append(dest, &details.GuestName, &details.RoomNumber, &details.RoomTypeName, &details.RoomState)

	err = executor.QueryRowContext(ctx, query, args...).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetails - scan reservation: %v", ErrScanRow, err)
	}

	return &details, nil
}

// FindOverlapping возвращает активные бронирования комнаты, пересекающие
// интервал [checkin, checkout). excludeID исключает само редактируемое
// бронирование при смене дат.
// Внутри транзакции найденные строки блокируются (FOR UPDATE).
func (r *Repository) FindOverlapping(ctx context.Context, roomID int64, interval domain.DateInterval, excludeID *int64) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.Eq{"status": activeStatuses}).
		Where(squirrel.Lt{"checkin": interval.Checkout}).
		Where(squirrel.Gt{"checkout": interval.Checkin}).
		OrderBy("checkin ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ReservationPatch поля, которые можно менять до терминального статуса
type ReservationPatch struct {
	Checkin    types.Date
	Checkout   types.Date
	GuestCount int
	Notes      *string
}

// UpdateFields обновляет даты, число гостей и заметки бронирования
func (r *Repository) UpdateFields(ctx context.Context, id int64, patch ReservationPatch) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("checkin", patch.Checkin).
		Set("checkout", patch.Checkout).
		Set("guest_count", patch.GuestCount).
		Set("notes", patch.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateFields - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isExclusionViolation(err) {
			return ErrOverlapViolation
		}
		return fmt.Errorf("%w: UpdateFields - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateFields - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// StatusStamps данные, фиксируемые при переходе статуса
type StatusStamps struct {
	ActorID            *int64
	CancellationReason *string
	At                 time.Time
}

// UpdateStatusFrom переводит бронирование из from в to одним guarded-обновлением:
// WHERE status = from гарантирует, что из двух конкурирующих переходов
// зафиксируется ровно один, второй получит ErrStatusConflict.
func (r *Repository) UpdateStatusFrom(ctx context.Context, id int64, from, to domain.ReservationStatus, stamps StatusStamps) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("reservations").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from})

	switch to {
	case domain.StatusConfirmed:
		updateBuilder = updateBuilder.
			Set("confirmed_by", stamps.ActorID).
			Set("confirmed_at", stamps.At)
	case domain.StatusCompleted:
		updateBuilder = updateBuilder.
			Set("completed_by", stamps.ActorID).
			Set("completed_at", stamps.At)
	case domain.StatusCancelled:
		updateBuilder = updateBuilder.
			Set("cancelled_at", stamps.At).
			Set("cancellation_reason", stamps.CancellationReason)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// ListPendingBefore возвращает pending-бронирования с датой заезда строго
// раньше cutoff. Используется sweeper'ом.
func (r *Repository) ListPendingBefore(ctx context.Context, cutoff types.Date) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"status": domain.StatusPending}).
		Where(squirrel.Lt{"checkin": cutoff}).
		OrderBy("checkin ASC, id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPendingBefore - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPendingBefore - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetByGuestWithFilter возвращает историю бронирований гостя
func (r *Repository) GetByGuestWithFilter(ctx context.Context, filter domain.GuestReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"guest_id": filter.GuestID}).
		OrderBy("checkin DESC, id DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		activeStatuses := make([]string, len(domain.ActiveStatuses))
		for i, s := range domain.ActiveStatuses {
			activeStatuses[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": activeStatuses})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByGuestWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByGuestWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// Delete физически удаляет бронирование. Правила допуска (не pending)
// проверяет сервисный слой.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// isExclusionViolation определяет нарушение exclusion constraint по коду PostgreSQL
func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgExclusionViolation
}

// scanner общий интерфейс *sql.Row и *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func reservationDest(res *domain.Reservation) []interface{} {
	return []interface{}{
		&res.ID,
		&res.ReferenceCode,
		&res.GuestID,
		&res.RoomID,
		&res.Checkin,
		&res.Checkout,
		&res.GuestCount,
		&res.NightlyPrice,
		&res.Channel,
		&res.Notes,
		&res.Status,
		&res.ConfirmedBy,
		&res.ConfirmedAt,
		&res.CompletedBy,
		&res.CompletedAt,
		&res.CancelledAt,
		&res.CancellationReason,
		&res.CreatedAt,
		&res.UpdatedAt,
	}
}

func scanReservation(row scanner) (*domain.Reservation, error) {
	var res domain.Reservation
	if err := row.Scan(reservationDest(&res)...); err != nil {
		return nil, err
	}
	return &res, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
