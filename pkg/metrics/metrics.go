package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	SlotWeeksGenerated prometheus.Counter
	RangesSelected     prometheus.Counter
	RangesRemoved      prometheus.Counter
	ToggleRejections   *prometheus.CounterVec
}

// New создает и регистрирует метрики сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "path"}),

		SlotWeeksGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "slot_weeks_generated_total",
			Help:        "Total number of generated slot weeks",
			ConstLabels: constLabels,
		}),

		RangesSelected: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "selection_ranges_added_total",
			Help:        "Total number of selected time ranges",
			ConstLabels: constLabels,
		}),

		RangesRemoved: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "selection_ranges_removed_total",
			Help:        "Total number of removed time ranges",
			ConstLabels: constLabels,
		}),

		ToggleRejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "selection_toggle_rejections_total",
			Help:        "Total number of rejected toggle attempts by reason",
			ConstLabels: constLabels,
		}, []string{"reason"}),
	}
}

// ObserveHTTPRequest записывает метрики обработанного HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, path, status string, seconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// IncSlotWeekGenerated учитывает сгенерированную неделю слотов
func (m *Metrics) IncSlotWeekGenerated() {
	m.SlotWeeksGenerated.Inc()
}

// IncRangeSelected учитывает добавленный временной диапазон
func (m *Metrics) IncRangeSelected() {
	m.RangesSelected.Inc()
}

// IncRangeRemoved учитывает удаленный временной диапазон
func (m *Metrics) IncRangeRemoved() {
	m.RangesRemoved.Inc()
}

// IncToggleRejection учитывает отклоненную попытку выбора слота
func (m *Metrics) IncToggleRejection(reason string) {
	m.ToggleRejections.WithLabelValues(reason).Inc()
}
