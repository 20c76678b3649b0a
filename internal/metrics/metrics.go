package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metric collectors / Contient tous les collecteurs de métriques Prometheus
type Metrics struct {
	// Domain metrics
	EntityOperations *prometheus.CounterVec // CRUD operations by entity, operation and outcome
	BackupsTotal     *prometheus.CounterVec // Database backups by status (success/failure)
	LastBackup       prometheus.Gauge       // Unix time of the last successful backup

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec   // Total HTTP requests by method, path, status
	HTTPRequestDuration *prometheus.HistogramVec // HTTP request latency in seconds
	ActiveConnections   prometheus.Gauge         // Requests currently being served

	// Security metrics
	RateLimitHits *prometheus.CounterVec // Rate limit violations by endpoint

	// System metrics
	DatabaseConnections prometheus.Gauge     // Current database connection pool size
	BackgroundTasks     *prometheus.GaugeVec // Status of background tasks (running/stopped)

	registerer prometheus.Registerer
	gatherer   prometheus.Gatherer
}

// NewMetrics initializes Metrics instance / Initialise une instance Metrics
// A nil registerer uses the process-wide default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}
	factory := promauto.With(reg)

	m := &Metrics{
		EntityOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crud_operations_total",
				Help: "Total number of CRUD operations by entity, operation and outcome",
			},
			[]string{"entity", "operation", "outcome"},
		),

		BackupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "database_backups_total",
				Help: "Total number of database backups by status",
			},
			[]string{"status"},
		),

		LastBackup: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "database_last_backup_timestamp_seconds",
				Help: "Unix time of the last successful database backup",
			},
		),

		// HTTP metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status code",
			},
			[]string{"method", "path", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request latency in seconds",
				// Buckets optimized for API response times: 10ms to 10s
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		ActiveConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_active_connections",
				Help: "Current number of HTTP requests being served",
			},
		),

		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "security_rate_limit_hits_total",
				Help: "Total number of rate limit violations by endpoint",
			},
			[]string{"endpoint"},
		),

		DatabaseConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "database_connections_active",
				Help: "Current number of open database connections",
			},
		),

		BackgroundTasks: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "background_tasks_status",
				Help: "Status of background tasks (1=running, 0=stopped)",
			},
			[]string{"task_name"},
		),

		registerer: reg,
		gatherer:   gatherer,
	}

	return m
}

// RegisterDBStats exports the pool statistics of db / Exporte les statistiques du pool db
func (m *Metrics) RegisterDBStats(db *sql.DB, name string) error {
	return m.registerer.Register(collectors.NewDBStatsCollector(db, name))
}

// Handler serves the exposition format for the registry in use / Sert l'exposition du registre utilisé
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// RecordOperation records one CRUD operation outcome.
// Outcome is one of "success", "not_found", "conflict", "validation", "error".
func (m *Metrics) RecordOperation(entity, operation, outcome string) {
	m.EntityOperations.WithLabelValues(entity, operation, outcome).Inc()
}

// RecordBackup records a backup attempt / Enregistre une tentative de backup
func (m *Metrics) RecordBackup(success bool, at time.Time) {
	if !success {
		m.BackupsTotal.WithLabelValues("failure").Inc()
		return
	}
	m.BackupsTotal.WithLabelValues("success").Inc()
	m.LastBackup.Set(float64(at.Unix()))
}

// RecordHTTPRequest records an HTTP request with method, path, and status code.
func (m *Metrics) RecordHTTPRequest(method, path string, statusCode int) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCodeToString(statusCode)).Inc()
}

// RecordHTTPDuration records the duration of an HTTP request.
func (m *Metrics) RecordHTTPDuration(method, path string, duration time.Duration) {
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// IncrementActiveConnections increments the active connections gauge.
func (m *Metrics) IncrementActiveConnections() {
	m.ActiveConnections.Inc()
}

// DecrementActiveConnections decrements the active connections gauge.
func (m *Metrics) DecrementActiveConnections() {
	m.ActiveConnections.Dec()
}

// RecordRateLimitHit records a rate limit violation for a specific endpoint.
func (m *Metrics) RecordRateLimitHit(endpoint string) {
	m.RateLimitHits.WithLabelValues(endpoint).Inc()
}

// UpdateDatabaseConnections updates the database connections gauge.
func (m *Metrics) UpdateDatabaseConnections(count int) {
	m.DatabaseConnections.Set(float64(count))
}

// SetBackgroundTaskStatus sets the status of a background task.
func (m *Metrics) SetBackgroundTaskStatus(taskName string, running bool) {
	status := 0.0
	if running {
		status = 1.0
	}
	m.BackgroundTasks.WithLabelValues(taskName).Set(status)
}

// exactCodes keep their own label, others are grouped by class / Codes gardant leur propre label
var exactCodes = map[int]bool{200: true, 201: true, 204: true, 400: true, 404: true, 405: true, 429: true, 500: true, 503: true}

// statusCodeToString converts HTTP status code to a bounded label / Convertit le code HTTP en label borné
func statusCodeToString(code int) string {
	if exactCodes[code] {
		return strconv.Itoa(code)
	}
	if code >= 100 && code < 600 {
		return strconv.Itoa(code/100) + "xx"
	}
	return "unknown"
}
