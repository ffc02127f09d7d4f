package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/pkg/psqlbuilder"
)

// pgExclusionViolation код ошибки PostgreSQL для нарушения exclusion constraint
const pgExclusionViolation = "23P01"

var bookingColumns = []string{
	"id",
	"salon_id",
	"service_id",
	"client_id",
	"type",
	"starts_at",
	"ends_at",
	"service_name",
	"service_duration_minutes",
	"service_price_units",
	"note",
	"lifecycle_state",
	"deleted_at",
	"deleted_by",
	"created_at",
}

// Repository репозиторий журнала бронирований
// Репозиторий - чистое хранилище: Create не проверяет пересечения,
// конфликт слотов ловит exclusion constraint на уровне БД
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет новое бронирование
// При пересечении с активным бронированием того же салона БД отклоняет
// insert (constraint bookings_no_overlap), что мапится в ErrSlotTaken
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"salon_id",
			"service_id",
			"client_id",
			"type",
			"starts_at",
			"ends_at",
			"service_name",
			"service_duration_minutes",
			"service_price_units",
			"note",
		).
		Values(
			booking.SalonID,
			booking.ServiceID,
			booking.ClientID,
			booking.Type,
			booking.StartsAt,
			booking.EndsAt,
			booking.Snapshot.Name,
			booking.Snapshot.DurationMinutes,
			booking.Snapshot.PriceUnits,
			booking.Note,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgExclusionViolation {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.Lifecycle = domain.ActiveLifecycle()
	booking.CreatedAt = createdAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID (включая отменённые)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	booking, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByClientID получает бронирования клиента, новые первыми
func (r *Repository) GetByClientID(ctx context.Context, clientID int64, includeDeleted bool) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("starts_at DESC, id DESC")

	if !includeDeleted {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"lifecycle_state": domain.LifecycleActive})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetBySalonWithFilter получает бронирования салона с фильтрацией
// по периоду [From, To), типу и включению отменённых
// Порядок детерминирован: starts_at ASC, затем id ASC
func (r *Repository) GetBySalonWithFilter(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"salon_id": filter.SalonID}).
		OrderBy("starts_at ASC, id ASC")

	// Пересечение с периодом [From, To): starts_at < To AND ends_at > From
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"ends_at": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"starts_at": *filter.To})
	}

	if filter.Type != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"type": *filter.Type})
	}

	if !filter.IncludeDeleted {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"lifecycle_state": domain.LifecycleActive})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// OccupiedIntervals возвращает интервалы активных бронирований салона
// (ONLINE и MANUAL), пересекающие период [from, to),
// упорядоченные по началу, при равенстве - по id
func (r *Repository) OccupiedIntervals(ctx context.Context, salonID int64, from, to time.Time) ([]domain.Interval, error) {
	query, args, err := psqlbuilder.Select("starts_at", "ends_at").
		From("bookings").
		Where(squirrel.Eq{"salon_id": salonID}).
		Where(squirrel.Eq{"lifecycle_state": domain.LifecycleActive}).
		Where(squirrel.Gt{"ends_at": from}).
		Where(squirrel.Lt{"starts_at": to}).
		OrderBy("starts_at ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: OccupiedIntervals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: OccupiedIntervals - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]domain.Interval, 0)
	for rows.Next() {
		var iv domain.Interval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, fmt.Errorf("%w: OccupiedIntervals - scan interval: %v", ErrScanRow, err)
		}
		intervals = append(intervals, iv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: OccupiedIntervals - rows error: %v", ErrScanRow, err)
	}

	return intervals, nil
}

// SoftDelete отменяет бронирование (идемпотентно на уровне вызова невозможно:
// повторная отмена возвращает ErrBookingNotFound, как и отсутствующая запись)
func (r *Repository) SoftDelete(ctx context.Context, id int64, actorID int64) error {
	query, args, err := psqlbuilder.Update("bookings").
		Set("lifecycle_state", domain.LifecycleDeleted).
		Set("deleted_at", squirrel.Expr("NOW()")).
		Set("deleted_by", actorID).
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
		return ErrBookingNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking   domain.Booking
		serviceID sql.NullInt64
		clientID  sql.NullInt64
		state     string
		deletedAt sql.NullTime
		deletedBy sql.NullInt64
		createdAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.SalonID,
		&serviceID,
		&clientID,
		&booking.Type,
		&booking.StartsAt,
		&booking.EndsAt,
		&booking.Snapshot.Name,
		&booking.Snapshot.DurationMinutes,
		&booking.Snapshot.PriceUnits,
		&booking.Note,
		&state,
		&deletedAt,
		&deletedBy,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if serviceID.Valid {
		booking.ServiceID = &serviceID.Int64
	}
	if clientID.Valid {
		booking.ClientID = &clientID.Int64
	}

	booking.Lifecycle = domain.Lifecycle{State: domain.LifecycleState(state)}
	if deletedAt.Valid {
		booking.Lifecycle.DeletedAt = &deletedAt.Time
	}
	if deletedBy.Valid {
		booking.Lifecycle.DeletedBy = &deletedBy.Int64
	}
	booking.CreatedAt = createdAt.Time

	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
