// Package monitoring provides Prometheus metrics for the allocation engine
// and the HTTP layer.
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/longevitykitchen/mealplanner/internal/application/planner"
)

// EngineMetrics collects allocation engine telemetry
type EngineMetrics struct {
	logger *zap.Logger

	generationsTotal   *prometheus.CounterVec
	generationDuration prometheus.Histogram
	plannedMeals       prometheus.Histogram
	planCompleteness   prometheus.Histogram
	providerCallsTotal *prometheus.CounterVec
	slotFallbacksTotal prometheus.Counter
}

var _ planner.MetricsRecorder = (*EngineMetrics)(nil)

// NewEngineMetrics creates and registers the engine metrics
func NewEngineMetrics(logger *zap.Logger) *EngineMetrics {
	return &EngineMetrics{
		logger: logger,

		generationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mealplan_generations_total",
				Help: "Total number of plan generations by outcome",
			},
			[]string{"outcome"},
		),
		generationDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mealplan_generation_duration_seconds",
				Help:    "Plan generation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		plannedMeals: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mealplan_planned_meals",
				Help:    "Number of meals in generated plans",
				Buckets: prometheus.LinearBuckets(0, 5, 13),
			},
		),
		planCompleteness: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mealplan_plan_completeness_ratio",
				Help:    "Planned meals divided by required meals",
				Buckets: prometheus.LinearBuckets(0, 0.1, 11),
			},
		),
		providerCallsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mealplan_provider_calls_total",
				Help: "Total number of external provider calls by operation",
			},
			[]string{"operation"},
		),
		slotFallbacksTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "mealplan_slot_fallbacks_total",
				Help: "Total number of per-slot provider fallbacks",
			},
		),
	}
}

// ObserveGeneration records the outcome of one plan generation
func (m *EngineMetrics) ObserveGeneration(outcome string, seconds float64, planned, required int) {
	m.generationsTotal.WithLabelValues(outcome).Inc()
	m.generationDuration.Observe(seconds)
	m.plannedMeals.Observe(float64(planned))
	if required > 0 {
		m.planCompleteness.Observe(float64(planned) / float64(required))
	}
}

// IncProviderCall counts one external provider call
func (m *EngineMetrics) IncProviderCall(operation string) {
	m.providerCallsTotal.WithLabelValues(operation).Inc()
}

// IncSlotFallback counts one per-slot provider fallback
func (m *EngineMetrics) IncSlotFallback() {
	m.slotFallbacksTotal.Inc()
}

// HTTPMetrics collects request-level metrics for the chi router
type HTTPMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewHTTPMetrics creates and registers the HTTP metrics
func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		requestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

// Middleware instruments each request
func (m *HTTPMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		m.requestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
