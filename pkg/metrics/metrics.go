// Package metrics - Prometheus метрики сервиса
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Итоги попытки бронирования (label outcome)
const (
	OutcomeAdmitted  = "admitted"
	OutcomeDenied    = "denied"
	OutcomeInvalid   = "invalid"
	OutcomeTransient = "transient"
	OutcomeError     = "error"
)

// Итоги отмены (label outcome)
const (
	OutcomeCancelled = "cancelled"
	OutcomeNotFound  = "not_found"
	OutcomeForbidden = "forbidden"
)

// Metrics набор коллекторов сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrorsTotal *prometheus.CounterVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge
	DBWaitCount        prometheus.Gauge

	TxRetriesTotal *prometheus.CounterVec

	AdmissionsTotal    *prometheus.CounterVec
	CancellationsTotal *prometheus.CounterVec
}

// New создает метрики и регистрирует их в default registry
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном registry
// (в тестах - prometheus.NewRegistry())
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBQueryErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}),
		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),
		DBIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),

		TxRetriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_tx_retries_total",
			Help:        "Transactions retried after serialization or lock failures",
			ConstLabels: constLabels,
		}, []string{"isolation"}),

		AdmissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_admissions_total",
			Help:        "Booking admission attempts by room type and outcome",
			ConstLabels: constLabels,
		}, []string{"room_type", "outcome", "reason"}),

		CancellationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_cancellations_total",
			Help:        "Booking cancellation attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrorsTotal,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.TxRetriesTotal,
		m.AdmissionsTotal,
		m.CancellationsTotal,
	)

	return m
}

// ObserveAdmission учитывает результат попытки бронирования
// Безопасен для nil-получателя (метрики выключены)
func (m *Metrics) ObserveAdmission(roomType, outcome, reason string) {
	if m == nil {
		return
	}
	m.AdmissionsTotal.WithLabelValues(roomType, outcome, reason).Inc()
}

// ObserveCancellation учитывает результат отмены
func (m *Metrics) ObserveCancellation(outcome string) {
	if m == nil {
		return
	}
	m.CancellationsTotal.WithLabelValues(outcome).Inc()
}

// ObserveTxRetry учитывает повтор транзакции
func (m *Metrics) ObserveTxRetry(isolation string) {
	if m == nil {
		return
	}
	m.TxRetriesTotal.WithLabelValues(isolation).Inc()
}
