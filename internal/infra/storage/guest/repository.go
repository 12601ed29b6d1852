package guest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/HMS-ReservationService/pkg/psqlbuilder"
)

var guestColumns = []string{
	"id",
	"full_name",
	"document_id",
	"email",
	"phone",
	"country",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с гостями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория гостей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись гостя и возвращает ее с заполненным ID
func (r *Repository) Create(ctx context.Context, attrs domain.NewGuestAttributes) (*domain.Guest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("guests").
		Columns("full_name", "document_id", "email", "phone", "country").
		Values(attrs.FullName, attrs.DocumentID, attrs.Email, attrs.Phone, attrs.Country).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	guest := &domain.Guest{
		FullName:   attrs.FullName,
		DocumentID: attrs.DocumentID,
		Email:      attrs.Email,
		Phone:      attrs.Phone,
		Country:    attrs.Country,
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&guest.ID,
		&guest.CreatedAt,
		&guest.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return guest, nil
}

// GetByID получает гостя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Guest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(guestColumns...).
		From("guests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var guest domain.Guest
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&guest.ID,
		&guest.FullName,
		&guest.DocumentID,
		&guest.Email,
		&guest.Phone,
		&guest.Country,
		&guest.CreatedAt,
		&guest.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGuestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan guest: %v", ErrScanRow, err)
	}

	return &guest, nil
}

// GetByDocument ищет гостя по номеру документа.
// Используется для переиспользования записи при повторном бронировании.
func (r *Repository) GetByDocument(ctx context.Context, documentID string) (*domain.Guest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(guestColumns...).
		From("guests").
		Where(squirrel.Eq{"document_id": documentID}).
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDocument - build select query: %v", ErrBuildQuery, err)
	}

	var guest domain.Guest
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&guest.ID,
		&guest.FullName,
		&guest.DocumentID,
		&guest.Email,
		&guest.Phone,
		&guest.Country,
		&guest.CreatedAt,
		&guest.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGuestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDocument - scan guest: %v", ErrScanRow, err)
	}

	return &guest, nil
}
