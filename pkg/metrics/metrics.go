// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Результаты обработки одного вхождения серии
const (
	OutcomeCreated  = "created"
	OutcomeSkipped  = "skipped"
	OutcomeReplaced = "replaced"
)

// Metrics набор метрик сервиса
type Metrics struct {
	registerer prometheus.Registerer

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	occurrencesTotal    *prometheus.CounterVec
	schedulingRequests  *prometheus.CounterVec
}

// New создает и регистрирует метрики с префиксом serviceName
func New(serviceName string, registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		registerer: registerer,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		occurrencesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "booking_occurrences_total",
			Help:      "Booking occurrences processed by the scheduler, by outcome.",
		}, []string{"outcome"}),
		schedulingRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "scheduling_requests_total",
			Help:      "Scheduling requests by result.",
		}, []string{"result"}),
	}

	registerer.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.occurrencesTotal,
		m.schedulingRequests,
	)

	return m
}

// RegisterDB добавляет метрики пула соединений
func (m *Metrics) RegisterDB(db *sql.DB, dbName string) {
	m.registerer.MustRegister(collectors.NewDBStatsCollector(db, dbName))
}

// ObserveHTTP фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTP(method, route string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordOccurrence увеличивает счетчик вхождений с указанным исходом
func (m *Metrics) RecordOccurrence(outcome string) {
	m.occurrencesTotal.WithLabelValues(outcome).Inc()
}

// RecordScheduling фиксирует итог запроса на бронирование
func (m *Metrics) RecordScheduling(result string) {
	m.schedulingRequests.WithLabelValues(result).Inc()
}
