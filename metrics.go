package gambit

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector provides Prometheus metrics for the request lifecycle and
// the worker pool. All methods are no-ops on a nil collector.
type MetricsCollector struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight *prometheus.GaugeVec

	declinedTotal *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec

	poolWorkers    prometheus.Gauge
	poolRejections *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetricsCollector creates a metrics collector on the default registerer.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWithRegistry creates a collector using supplied registerer.
func NewMetricsCollectorWithRegistry(registry prometheus.Registerer) *MetricsCollector {
	factory := promauto.With(registry)
	mc := &MetricsCollector{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gambit_requests_total",
				Help: "Total number of API requests that obtained a server answer",
			},
			[]string{"endpoint", "status_code"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gambit_request_duration_seconds",
				Help:    "Duration of API requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint", "status_code"},
		),
		requestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "gambit_requests_in_flight",
				Help: "Number of API requests currently executing on the pool",
			},
			[]string{"endpoint"},
		),
		declinedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gambit_declined_total",
				Help: "Total number of server answers that were not successful",
			},
			[]string{"endpoint", "error_code"},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gambit_errors_total",
				Help: "Total number of requests that failed without a server answer",
			},
			[]string{"type", "endpoint"},
		),
		poolWorkers: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "gambit_pool_workers",
				Help: "Current number of worker goroutines",
			},
		),
		poolRejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gambit_pool_rejections_total",
				Help: "Total number of submissions rejected after shutdown",
			},
			[]string{"endpoint"},
		),
	}

	if reg, ok := registry.(*prometheus.Registry); ok {
		mc.registry = reg
	}

	return mc
}

// RecordRequest records request count and duration.
func (mc *MetricsCollector) RecordRequest(endpoint string, statusCode int, duration time.Duration) {
	if mc == nil {
		return
	}

	statusCodeStr := strconv.Itoa(statusCode)
	mc.requestsTotal.WithLabelValues(endpoint, statusCodeStr).Inc()
	mc.requestDuration.WithLabelValues(endpoint, statusCodeStr).Observe(duration.Seconds())
}

// RecordRequestStart increments in-flight gauge.
func (mc *MetricsCollector) RecordRequestStart(endpoint string) {
	if mc == nil {
		return
	}

	mc.requestsInFlight.WithLabelValues(endpoint).Inc()
}

// RecordRequestEnd decrements in-flight gauge.
func (mc *MetricsCollector) RecordRequestEnd(endpoint string) {
	if mc == nil {
		return
	}

	mc.requestsInFlight.WithLabelValues(endpoint).Dec()
}

// RecordDeclined counts an unsuccessful server answer by error code.
func (mc *MetricsCollector) RecordDeclined(endpoint, errorCode string) {
	if mc == nil {
		return
	}

	mc.declinedTotal.WithLabelValues(endpoint, errorCode).Inc()
}

// RecordError increments error counter by type.
func (mc *MetricsCollector) RecordError(errorType, endpoint string) {
	if mc == nil {
		return
	}

	mc.errorsTotal.WithLabelValues(errorType, endpoint).Inc()
}

// RecordPoolWorkers sets the worker gauge.
func (mc *MetricsCollector) RecordPoolWorkers(workers int) {
	if mc == nil {
		return
	}

	mc.poolWorkers.Set(float64(workers))
}

// RecordPoolRejection increments the rejected submission counter.
func (mc *MetricsCollector) RecordPoolRejection(endpoint string) {
	if mc == nil {
		return
	}

	mc.poolRejections.WithLabelValues(endpoint).Inc()
}

// GetRegistry exposes the underlying prometheus registry, or nil when the
// collector was built on a Registerer that is not a *prometheus.Registry.
func (mc *MetricsCollector) GetRegistry() *prometheus.Registry {
	return mc.registry
}
