package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Operation names used as the "operation" label.
const (
	OperationTranscribe = "transcribe"
	OperationConvert    = "convert"
)

// Metrics holds the service collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	adapterInflight  *prometheus.GaugeVec
	adapterCalls     *prometheus.CounterVec
	adapterDuration  *prometheus.HistogramVec
	uploadBytes      *prometheus.HistogramVec
	tempCleanupFails prometheus.Counter
	buildInfo        *prometheus.GaugeVec
}

// New creates the collectors and registers them, together with the Go and
// process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "audio_api_http_requests_total",
				Help: "HTTP requests by route, method and status code",
			},
			[]string{"route", "method", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "audio_api_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
			},
			[]string{"route", "method"},
		),
		adapterInflight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "audio_api_adapter_inflight",
				Help: "External model/tool invocations currently running",
			},
			[]string{"operation"},
		),
		adapterCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "audio_api_adapter_calls_total",
				Help: "External model/tool invocations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		adapterDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "audio_api_adapter_duration_seconds",
				Help:    "Time spent inside the external model/tool",
				Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
			},
			[]string{"operation"},
		),
		uploadBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "audio_api_upload_bytes",
				Help:    "Size of uploaded files",
				Buckets: prometheus.ExponentialBuckets(16<<10, 4, 8),
			},
			[]string{"operation"},
		),
		tempCleanupFails: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "audio_api_temp_cleanup_failures_total",
				Help: "Request workspaces that could not be removed",
			},
		),
		buildInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "audio_api_build_info",
				Help: "Build information",
			},
			[]string{"version", "transcriber"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.adapterInflight,
		m.adapterCalls,
		m.adapterDuration,
		m.uploadBytes,
		m.tempCleanupFails,
		m.buildInfo,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// SetBuildInfo records the running version and transcriber provider.
func (m *Metrics) SetBuildInfo(version, transcriber string) {
	m.buildInfo.WithLabelValues(version, transcriber).Set(1)
}

// ObserveHTTP records one finished HTTP request.
func (m *Metrics) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ObserveUpload records the size of an upload written to disk.
func (m *Metrics) ObserveUpload(operation string, size int64) {
	m.uploadBytes.WithLabelValues(operation).Observe(float64(size))
}

// AdapterStart marks an adapter call as running and returns a function that
// must be called with the call's error when it finishes.
func (m *Metrics) AdapterStart(operation string) func(err error) {
	start := time.Now()
	m.adapterInflight.WithLabelValues(operation).Inc()
	return func(err error) {
		m.adapterInflight.WithLabelValues(operation).Dec()
		m.adapterDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		m.adapterCalls.WithLabelValues(operation, outcome).Inc()
	}
}

// CleanupFailed counts a workspace that could not be removed.
func (m *Metrics) CleanupFailed() {
	m.tempCleanupFails.Inc()
}
