package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBConnsOpen     *prometheus.GaugeVec
	DBConnsInUse    *prometheus.GaugeVec
	DBConnsIdle     *prometheus.GaugeVec

	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec
}

// New создает и регистрирует метрики в default-регистре
func New(serviceName string) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "Total HTTP requests by method, route and status code.",
				ConstLabels: prometheus.Labels{"service": serviceName},
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "HTTP request duration in seconds.",
				ConstLabels: prometheus.Labels{"service": serviceName},
				Buckets:     prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		DBQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "db_query_duration_seconds",
				Help:        "Database query duration in seconds by operation.",
				ConstLabels: prometheus.Labels{"service": serviceName},
				Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"operation"},
		),
		DBConnsOpen: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "db_connections_open",
				Help:        "Open database connections.",
				ConstLabels: prometheus.Labels{"service": serviceName},
			},
			[]string{},
		),
		DBConnsInUse: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "db_connections_in_use",
				Help:        "Database connections currently in use.",
				ConstLabels: prometheus.Labels{"service": serviceName},
			},
			[]string{},
		),
		DBConnsIdle: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "db_connections_idle",
				Help:        "Idle database connections.",
				ConstLabels: prometheus.Labels{"service": serviceName},
			},
			[]string{},
		),
		CacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "cache_hits_total",
				Help:        "Cache hits by cache name.",
				ConstLabels: prometheus.Labels{"service": serviceName},
			},
			[]string{"cache"},
		),
		CacheMissesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "cache_misses_total",
				Help:        "Cache misses by cache name.",
				ConstLabels: prometheus.Labels{"service": serviceName},
			},
			[]string{"cache"},
		),
	}

	prometheus.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBConnsOpen,
		m.DBConnsInUse,
		m.DBConnsIdle,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
	)

	return m
}

// ObserveCacheHit фиксирует попадание в кеш (nil-safe)
func (m *Metrics) ObserveCacheHit(cache string) {
	if m == nil {
		return
	}
	m.CacheHitsTotal.WithLabelValues(cache).Inc()
}

// ObserveCacheMiss фиксирует промах кеша (nil-safe)
func (m *Metrics) ObserveCacheMiss(cache string) {
	if m == nil {
		return
	}
	m.CacheMissesTotal.WithLabelValues(cache).Inc()
}
