package dbmetrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/m04kA/Salon-BookingService/pkg/metrics"
)

// DBExecutor интерфейс исполнителя запросов
// Реализуется *sql.DB и *dbmetrics.DB, используется репозиториями
type DBExecutor interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// DB обёртка над *sql.DB с измерением длительности запросов
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// defaultPoolStatsInterval период сбора статистики connection pool
const defaultPoolStatsInterval = 15 * time.Second

// Wrap оборачивает *sql.DB сбором метрик запросов
func Wrap(db *sql.DB, m *metrics.Metrics) *DB {
	return &DB{db: db, metrics: m}
}

// WrapWithDefault оборачивает *sql.DB и запускает фоновый сбор статистики
// connection pool до закрытия stopCh
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, serviceName string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m)
	go wrapped.collectPoolStats(stopCh)
	return wrapped
}

func (d *DB) collectPoolStats(stopCh <-chan struct{}) {
	ticker := time.NewTicker(defaultPoolStatsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.metrics.DBConnsOpen.WithLabelValues().Set(float64(stats.OpenConnections))
			d.metrics.DBConnsInUse.WithLabelValues().Set(float64(stats.InUse))
			d.metrics.DBConnsIdle.WithLabelValues().Set(float64(stats.Idle))
		}
	}
}

func (d *DB) observe(operation string, start time.Time) {
	d.metrics.DBQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// QueryContext выполняет запрос с измерением длительности
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	defer d.observe("query", start)
	return d.db.QueryContext(ctx, query, args...)
}

// QueryRowContext выполняет запрос одной строки с измерением длительности
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	defer d.observe("query_row", start)
	return d.db.QueryRowContext(ctx, query, args...)
}

// ExecContext выполняет запрос без результата с измерением длительности
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	defer d.observe("exec", start)
	return d.db.ExecContext(ctx, query, args...)
}
