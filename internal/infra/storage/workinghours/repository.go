package workinghours

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Salon-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий рабочих часов салона (Calendar Model)
// Не более одной записи на пару (salon_id, weekday); отсутствие записи
// означает "закрыто" и не является ошибкой уровня сервиса
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих часов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Window возвращает окно работы салона на день недели
// ErrWindowNotFound означает, что салон закрыт в этот день
// Корректность окна (open < close) гарантируется на записи, не на чтении
func (r *Repository) Window(ctx context.Context, salonID int64, weekday time.Weekday) (domain.Window, error) {
	query, args, err := psqlbuilder.Select("open_time", "close_time").
		From("working_hours").
		Where(squirrel.Eq{"salon_id": salonID, "weekday": int(weekday)}).
		ToSql()

	if err != nil {
		return domain.Window{}, fmt.Errorf("%w: Window - build select query: %v", ErrBuildQuery, err)
	}

	var window domain.Window
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&window.Open, &window.Close)
	if err == sql.ErrNoRows {
		return domain.Window{}, ErrWindowNotFound
	}
	if err != nil {
		return domain.Window{}, fmt.Errorf("%w: Window - scan window: %v", ErrScanRow, err)
	}

	return window, nil
}

// GetBySalon возвращает все записи рабочих часов салона,
// упорядоченные по дню недели
func (r *Repository) GetBySalon(ctx context.Context, salonID int64) ([]domain.WorkingHours, error) {
	query, args, err := psqlbuilder.Select("salon_id", "weekday", "open_time", "close_time").
		From("working_hours").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalon - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalon - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]domain.WorkingHours, 0)
	for rows.Next() {
		var (
			entry   domain.WorkingHours
			weekday int
		)
		if err := rows.Scan(&entry.SalonID, &weekday, &entry.OpenTime, &entry.CloseTime); err != nil {
			return nil, fmt.Errorf("%w: GetBySalon - scan row: %v", ErrScanRow, err)
		}
		entry.Weekday = time.Weekday(weekday)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBySalon - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// ReplaceForSalon заменяет расписание салона на переданный набор записей
// Дни, отсутствующие в наборе, удаляются (то есть становятся "закрыто"),
// остальные вставляются или обновляются по (salon_id, weekday)
func (r *Repository) ReplaceForSalon(ctx context.Context, salonID int64, entries []domain.WorkingHours) error {
	keepDays := make([]int, 0, len(entries))
	for i := range entries {
		keepDays = append(keepDays, int(entries[i].Weekday))
	}

	deleteBuilder := psqlbuilder.Delete("working_hours").
		Where(squirrel.Eq{"salon_id": salonID})
	if len(keepDays) > 0 {
		deleteBuilder = deleteBuilder.Where(squirrel.NotEq{"weekday": keepDays})
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceForSalon - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceForSalon - execute delete: %v", ErrExecQuery, err)
	}

	for i := range entries {
		query, args, err := psqlbuilder.Insert("working_hours").
			Columns("salon_id", "weekday", "open_time", "close_time").
			Values(salonID, int(entries[i].Weekday), entries[i].OpenTime, entries[i].CloseTime).
			Suffix("ON CONFLICT (salon_id, weekday) DO UPDATE SET open_time = EXCLUDED.open_time, close_time = EXCLUDED.close_time").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: ReplaceForSalon - build upsert query: %v", ErrBuildQuery, err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: ReplaceForSalon - execute upsert: %v", ErrExecQuery, err)
		}
	}

	return nil
}
