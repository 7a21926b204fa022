package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/drivedesk-gateway/internal/dto"
)

// MetricsService encapsulates Prometheus instrumentation for the gateway.
type MetricsService struct {
	registry         *prometheus.Registry
	handler          http.Handler
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	upstreamTotal    *prometheus.CounterVec
	refreshTotal     *prometheus.CounterVec
	resourceFailures *prometheus.CounterVec
	storeLatency     *prometheus.HistogramVec
	storeLookups     *prometheus.CounterVec
	mutationsTotal   *prometheus.CounterVec
}

// NewMetricsService registers the gateway collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	upstreamDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of calls to the driving-school backend",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint", "outcome"})

	upstreamTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_requests_total",
		Help: "Calls to the driving-school backend by status code",
	}, []string{"endpoint", "status"})

	refreshTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_refresh_total",
		Help: "Dashboard refresh batches by outcome",
	}, []string{"outcome"})

	resourceFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_refresh_resource_failures_total",
		Help: "Reads of a refresh batch that fell back to defaults",
	}, []string{"resource"})

	storeLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "snapshot_store_latency_seconds",
		Help:    "Latency of snapshot store operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})

	storeLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "snapshot_store_lookups_total",
		Help: "Snapshot store lookups by result",
	}, []string{"result"})

	mutationsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_mutations_total",
		Help: "Dashboard mutations by kind and outcome",
	}, []string{"kind", "outcome"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, upstreamDuration, upstreamTotal, refreshTotal,
		resourceFailures, storeLatency, storeLookups, mutationsTotal, goroutines)

	return &MetricsService{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		upstreamDuration: upstreamDuration,
		upstreamTotal:    upstreamTotal,
		refreshTotal:     refreshTotal,
		resourceFailures: resourceFailures,
		storeLatency:     storeLatency,
		storeLookups:     storeLookups,
		mutationsTotal:   mutationsTotal,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry returns the underlying registry.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records inbound request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveUpstreamCall implements upstream.Observer.
func (m *MetricsService) ObserveUpstreamCall(endpoint string, status int, duration time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.upstreamDuration.WithLabelValues(endpoint, outcome).Observe(duration.Seconds())
	m.upstreamTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", status)).Inc()
}

// ObserveRefresh records the outcome of a refresh batch.
func (m *MetricsService) ObserveRefresh(report *dto.BatchReport) {
	if m == nil || report == nil {
		return
	}
	outcome := "ok"
	switch {
	case report.Degraded:
		outcome = "degraded"
	case report.Failed > 0:
		outcome = "partial"
	}
	m.refreshTotal.WithLabelValues(outcome).Inc()
	for _, res := range report.Results {
		if !res.OK {
			m.resourceFailures.WithLabelValues(string(res.Resource)).Inc()
		}
	}
}

// ObserveStoreOp records snapshot store latency. hit is ignored for writes.
func (m *MetricsService) ObserveStoreOp(op string, hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.storeLatency.WithLabelValues(op).Observe(duration.Seconds())
	if op != "load" {
		return
	}
	if hit {
		m.storeLookups.WithLabelValues("hit").Inc()
	} else {
		m.storeLookups.WithLabelValues("miss").Inc()
	}
}

// ObserveMutation counts a mutation attempt.
func (m *MetricsService) ObserveMutation(kind string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.mutationsTotal.WithLabelValues(kind, outcome).Inc()
}
