package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics коллектор метрик сервиса.
// Все методы безопасны для nil-получателя: при выключенных метриках передаётся nil.
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	dbQueries       *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec
	dbOpenConns     *prometheus.GaugeVec
	dbInUseConns    *prometheus.GaugeVec
	dbWaitCount     *prometheus.GaugeVec

	slotReservations    *prometheus.CounterVec
	slotReleases        *prometheus.CounterVec
	capacityViolations  prometheus.Counter
	slotsGenerated      prometheus.Counter
	bookingsCreated     *prometheus.CounterVec
	bookingTransitions  *prometheus.CounterVec
	rescheduleOutcomes  *prometheus.CounterVec
	collaboratorFailure *prometheus.CounterVec
}

// New создает коллектор и регистрирует его в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает коллектор в указанном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Количество HTTP запросов",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "Время обработки HTTP запросов",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "route"}),

		dbQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Количество запросов к БД",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Время выполнения запросов к БД",
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
			ConstLabels: constLabels,
		}, []string{"operation"}),
		dbOpenConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Открытые соединения пула",
		}, []string{"service"}),
		dbInUseConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Занятые соединения пула",
		}, []string{"service"}),
		dbWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Суммарное количество ожиданий соединения",
		}, []string{"service"}),

		slotReservations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_reservations_total",
			Help:        "Попытки резервирования слота по результату",
			ConstLabels: constLabels,
		}, []string{"result"}),
		slotReleases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_releases_total",
			Help:        "Освобождения слота по результату",
			ConstLabels: constLabels,
		}, []string{"result"}),
		capacityViolations: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "capacity_invariant_violations_total",
			Help:        "Нарушения инварианта счётчика слота, требуют внимания оператора",
			ConstLabels: constLabels,
		}),
		slotsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "slots_generated_total",
			Help:        "Количество созданных генератором слотов",
			ConstLabels: constLabels,
		}),
		bookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Созданные бронирования по начальному статусу",
			ConstLabels: constLabels,
		}, []string{"status"}),
		bookingTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_transitions_total",
			Help:        "Переходы статусов бронирования",
			ConstLabels: constLabels,
		}, []string{"from", "to"}),
		rescheduleOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reschedule_requests_total",
			Help:        "Заявки на перенос по исходу",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		collaboratorFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "collaborator_failures_total",
			Help:        "Ошибки внешних получателей событий (уведомления, лояльность)",
			ConstLabels: constLabels,
		}, []string{"collaborator"}),
	}

	reg.MustRegister(
		m.httpRequests, m.httpDuration,
		m.dbQueries, m.dbQueryDuration, m.dbOpenConns, m.dbInUseConns, m.dbWaitCount,
		m.slotReservations, m.slotReleases, m.capacityViolations, m.slotsGenerated,
		m.bookingsCreated, m.bookingTransitions, m.rescheduleOutcomes, m.collaboratorFailure,
	)

	return m
}

// ObserveHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery реализует dbmetrics.Collector
func (m *Metrics) ObserveDBQuery(_ string, operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueries.WithLabelValues(operation, status).Inc()
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDBPoolStats реализует dbmetrics.Collector
func (m *Metrics) SetDBPoolStats(service string, stats sql.DBStats) {
	if m == nil {
		return
	}
	m.dbOpenConns.WithLabelValues(service).Set(float64(stats.OpenConnections))
	m.dbInUseConns.WithLabelValues(service).Set(float64(stats.InUse))
	m.dbWaitCount.WithLabelValues(service).Set(float64(stats.WaitCount))
}

func (m *Metrics) ObserveReservation(result string) {
	if m == nil {
		return
	}
	m.slotReservations.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveRelease(result string) {
	if m == nil {
		return
	}
	m.slotReleases.WithLabelValues(result).Inc()
}

func (m *Metrics) IncCapacityViolation() {
	if m == nil {
		return
	}
	m.capacityViolations.Inc()
}

func (m *Metrics) AddGeneratedSlots(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.slotsGenerated.Add(float64(n))
}

func (m *Metrics) ObserveBookingCreated(status string) {
	if m == nil {
		return
	}
	m.bookingsCreated.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveBookingTransition(from, to string) {
	if m == nil {
		return
	}
	m.bookingTransitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) ObserveReschedule(outcome string) {
	if m == nil {
		return
	}
	m.rescheduleOutcomes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncCollaboratorFailure(collaborator string) {
	if m == nil {
		return
	}
	m.collaboratorFailure.WithLabelValues(collaborator).Inc()
}
