package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP
// surface and the sync channel.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	syncPushes      *prometheus.CounterVec
	syncPulls       *prometheus.CounterVec
	announcements   prometheus.Counter
	mergeFailures   prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
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

	syncPushes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_pushes_total",
		Help: "Snapshot pushes by outcome",
	}, []string{"outcome"})

	syncPulls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_pulls_total",
		Help: "Snapshot pulls by outcome",
	}, []string{"outcome"})

	announcements := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sync_announcements_total",
		Help: "Sync announcements received on the bus",
	})

	mergeFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sync_merge_failures_total",
		Help: "Announced snapshots that could not be decoded or merged",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, syncPushes, syncPulls, announcements, mergeFailures, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		syncPushes:      syncPushes,
		syncPulls:       syncPulls,
		announcements:   announcements,
		mergeFailures:   mergeFailures,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (m *MetricsService) Handler() http.Handler {
	return m.handler
}

// ObserveHTTPRequest captures one served request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := prometheus.Labels{"method": method, "path": path, "status": strconv.Itoa(status)}
	m.requestDuration.With(labels).Observe(duration.Seconds())
	m.requestTotal.With(labels).Inc()
}

// ObserveSyncPush captures one push attempt.
func (m *MetricsService) ObserveSyncPush(ok bool) {
	m.syncPushes.With(prometheus.Labels{"outcome": outcome(ok)}).Inc()
}

// ObserveSyncPull captures one pull attempt.
func (m *MetricsService) ObserveSyncPull(ok bool) {
	m.syncPulls.With(prometheus.Labels{"outcome": outcome(ok)}).Inc()
}

// ObserveAnnouncement counts a received sync announcement.
func (m *MetricsService) ObserveAnnouncement() {
	m.announcements.Inc()
}

// ObserveMergeFailure counts an announced snapshot that failed to apply.
func (m *MetricsService) ObserveMergeFailure() {
	m.mergeFailures.Inc()
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
