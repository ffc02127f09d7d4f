package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Salon-BookingService/pkg/psqlbuilder"
)

var serviceColumns = []string{
	"id",
	"salon_id",
	"name",
	"duration_minutes",
	"price_units",
	"lifecycle_state",
	"deleted_at",
	"deleted_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий услуг салона
// Услуги, на которые ссылаются бронирования, удаляются только мягко
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую услугу
func (r *Repository) Create(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	query, args, err := psqlbuilder.Insert("services").
		Columns("salon_id", "name", "duration_minutes", "price_units").
		Values(svc.SalonID, svc.Name, svc.DurationMinutes, svc.PriceUnits).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&svc.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	svc.Lifecycle = domain.ActiveLifecycle()
	svc.CreatedAt = createdAt.Time
	svc.UpdatedAt = updatedAt.Time

	return svc, nil
}

// GetByID получает услугу по ID
// activeOnly отфильтровывает мягко удалённые услуги
func (r *Repository) GetByID(ctx context.Context, id int64, activeOnly bool) (*domain.Service, error) {
	selectBuilder := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id})

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"lifecycle_state": domain.LifecycleActive})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	svc, err := scanService(row)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %v", ErrScanRow, err)
	}

	return svc, nil
}

// GetBySalon возвращает услуги салона, по умолчанию только активные
func (r *Repository) GetBySalon(ctx context.Context, salonID int64, includeDeleted bool) ([]*domain.Service, error) {
	selectBuilder := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("name ASC, id ASC")

	if !includeDeleted {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"lifecycle_state": domain.LifecycleActive})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalon - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalon - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetBySalon - scan row: %v", ErrScanRow, err)
		}
		services = append(services, svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBySalon - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// Update обновляет название, длительность и цену активной услуги
func (r *Repository) Update(ctx context.Context, svc *domain.Service) error {
	query, args, err := psqlbuilder.Update("services").
		Set("name", svc.Name).
		Set("duration_minutes", svc.DurationMinutes).
		Set("price_units", svc.PriceUnits).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": svc.ID}).
		Where(squirrel.Eq{"lifecycle_state": domain.LifecycleActive}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

// SoftDelete мягко удаляет услугу, сохраняя её для истории бронирований
func (r *Repository) SoftDelete(ctx context.Context, id int64, actorID int64) error {
	query, args, err := psqlbuilder.Update("services").
		Set("lifecycle_state", domain.LifecycleDeleted).
		Set("deleted_at", squirrel.Expr("NOW()")).
		Set("deleted_by", actorID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"lifecycle_state": domain.LifecycleActive}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SoftDelete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

// HasBookings проверяет, ссылается ли хоть одно бронирование на услугу
// Используется для запрета изменения длительности/цены услуг с историей
func (r *Repository) HasBookings(ctx context.Context, serviceID int64) (bool, error) {
	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"service_id": serviceID}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasBookings - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasBookings - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*domain.Service, error) {
	var (
		svc       domain.Service
		state     string
		deletedAt sql.NullTime
		deletedBy sql.NullInt64
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err := row.Scan(
		&svc.ID,
		&svc.SalonID,
		&svc.Name,
		&svc.DurationMinutes,
		&svc.PriceUnits,
		&state,
		&deletedAt,
		&deletedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	svc.Lifecycle = domain.Lifecycle{State: domain.LifecycleState(state)}
	if deletedAt.Valid {
		svc.Lifecycle.DeletedAt = &deletedAt.Time
	}
	if deletedBy.Valid {
		svc.Lifecycle.DeletedBy = &deletedBy.Int64
	}
	svc.CreatedAt = createdAt.Time
	svc.UpdatedAt = updatedAt.Time

	return &svc, nil
}
