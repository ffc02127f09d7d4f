package salon

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Salon-BookingService/pkg/psqlbuilder"
)

var salonColumns = []string{
	"id",
	"owner_id",
	"name",
	"phone",
	"address",
	"city",
	"description",
	"timezone",
	"created_at",
	"updated_at",
}

// Repository репозиторий профилей салонов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория салонов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает салон по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Salon, error) {
	query, args, err := psqlbuilder.Select(salonColumns...).
		From("salons").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	s, err := scanSalon(row)
	if err == sql.ErrNoRows {
		return nil, ErrSalonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan salon: %v", ErrScanRow, err)
	}

	return s, nil
}

// GetByOwnerID получает салон владельца (связь 1:1)
func (r *Repository) GetByOwnerID(ctx context.Context, ownerID int64) (*domain.Salon, error) {
	query, args, err := psqlbuilder.Select(salonColumns...).
		From("salons").
		Where(squirrel.Eq{"owner_id": ownerID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerID - build select query: %v", ErrBuildQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	s, err := scanSalon(row)
	if err == sql.ErrNoRows {
		return nil, ErrSalonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerID - scan salon: %v", ErrScanRow, err)
	}

	return s, nil
}

// Update обновляет профиль салона
func (r *Repository) Update(ctx context.Context, s *domain.Salon) error {
	query, args, err := psqlbuilder.Update("salons").
		Set("name", s.Name).
		Set("phone", s.Phone).
		Set("address", s.Address).
		Set("city", s.City).
		Set("description", s.Description).
		Set("timezone", s.Timezone).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
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
		return ErrSalonNotFound
	}

	return nil
}

// IsComplete вычисляет флаг "салон заполнен" одним запросом:
// имя, телефон и адрес заполнены, есть хотя бы одна запись рабочих часов
// и хотя бы одна активная услуга. Флаг нигде не хранится
func (r *Repository) IsComplete(ctx context.Context, salonID int64) (bool, error) {
	const query = `
SELECT s.name <> ''
   AND s.phone <> ''
   AND s.address <> ''
   AND EXISTS (SELECT 1 FROM working_hours wh WHERE wh.salon_id = s.id)
   AND EXISTS (SELECT 1 FROM services sv WHERE sv.salon_id = s.id AND sv.lifecycle_state = 'active')
FROM salons s
WHERE s.id = $1`

	var complete bool
	err := r.db.QueryRowContext(ctx, query, salonID).Scan(&complete)
	if err == sql.ErrNoRows {
		return false, ErrSalonNotFound
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsComplete - scan: %v", ErrScanRow, err)
	}

	return complete, nil
}

// ListComplete возвращает салоны, прошедшие проверку заполненности
// Используется публичным каталогом салонов
func (r *Repository) ListComplete(ctx context.Context) ([]*domain.Salon, error) {
	const query = `
SELECT s.id, s.owner_id, s.name, s.phone, s.address, s.city, s.description, s.timezone, s.created_at, s.updated_at
FROM salons s
WHERE s.name <> ''
  AND s.phone <> ''
  AND s.address <> ''
  AND EXISTS (SELECT 1 FROM working_hours wh WHERE wh.salon_id = s.id)
  AND EXISTS (SELECT 1 FROM services sv WHERE sv.salon_id = s.id AND sv.lifecycle_state = 'active')
ORDER BY s.name ASC, s.id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: ListComplete - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	salons := make([]*domain.Salon, 0)
	for rows.Next() {
		s, err := scanSalon(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListComplete - scan row: %v", ErrScanRow, err)
		}
		salons = append(salons, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListComplete - rows error: %v", ErrScanRow, err)
	}

	return salons, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSalon(row rowScanner) (*domain.Salon, error) {
	var (
		s         domain.Salon
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err := row.Scan(
		&s.ID,
		&s.OwnerID,
		&s.Name,
		&s.Phone,
		&s.Address,
		&s.City,
		&s.Description,
		&s.Timezone,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}
