package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Результаты загрузки доступности
const (
	FetchOK         = "ok"
	FetchError      = "error"
	FetchSuperseded = "superseded"
)

// Результаты отправки записи
const (
	SubmitOK       = "ok"
	SubmitError    = "error"
	SubmitRejected = "rejected"
)

// Metrics набор метрик сервиса виджета
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	availabilityFetches *prometheus.CounterVec
	fetchDuration       *prometheus.HistogramVec
	submissions         *prometheus.CounterVec
	sessionsCreated     *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в указанном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "widget",
			Subsystem:   "http",
			Name:        "requests_total",
			Help:        "Total HTTP requests handled",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   "widget",
			Subsystem:   "http",
			Name:        "request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		availabilityFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "widget",
			Subsystem:   "availability",
			Name:        "fetches_total",
			Help:        "Availability snapshot fetches by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   "widget",
			Subsystem:   "availability",
			Name:        "fetch_duration_seconds",
			Help:        "Latency of availability fetches against the scheduling backend",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"result"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "widget",
			Subsystem:   "appointments",
			Name:        "submissions_total",
			Help:        "Appointment submissions by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		sessionsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "widget",
			Subsystem:   "sessions",
			Name:        "created_total",
			Help:        "Widget sessions created",
			ConstLabels: constLabels,
		}, []string{"preselected_service"}),
	}

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.availabilityFetches,
		m.fetchDuration,
		m.submissions,
		m.sessionsCreated,
	)
	return m
}

// ObserveHTTPRequest учитывает обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveFetch учитывает загрузку доступности
func (m *Metrics) ObserveFetch(result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.availabilityFetches.WithLabelValues(result).Inc()
	m.fetchDuration.WithLabelValues(result).Observe(duration.Seconds())
}

// ObserveSubmission учитывает попытку записи
func (m *Metrics) ObserveSubmission(result string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(result).Inc()
}

// ObserveSessionCreated учитывает новую сессию виджета
func (m *Metrics) ObserveSessionCreated(preselectedService bool) {
	if m == nil {
		return
	}
	m.sessionsCreated.WithLabelValues(strconv.FormatBool(preselectedService)).Inc()
}
