package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/pseudoloc/pkg/observability"
)

const namespace = "pseudoloc"

// Metrics records pipeline, cache and HTTP activity in Prometheus form.
// It implements every hook interface in pkg/observability; Install routes the
// global hooks to it.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestErrors   *prometheus.CounterVec
	inFlight        prometheus.Gauge

	documents        *prometheus.CounterVec
	documentEntries  *prometheus.CounterVec
	documentDuration *prometheus.HistogramVec
	documentBytes    *prometheus.HistogramVec
	batchFiles       *prometheus.CounterVec

	cacheLookups  *prometheus.CounterVec
	cacheSetBytes *prometheus.CounterVec
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
	_ observability.HTTPHooks     = (*Metrics)(nil)
)

// NewMetrics creates metrics on their own registry, together with the Go
// runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		requestErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_request_errors_total",
			Help:      "HTTP requests answered with an error body",
		}, []string{"method", "route"}),
		inFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "HTTP requests currently being served",
		}),

		documents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Documents localized, by format and result",
		}, []string{"format", "result"}),
		documentEntries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_entries_total",
			Help:      "Localizable values rewritten",
		}, []string{"format"}),
		documentDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "document_duration_seconds",
			Help:      "Time to localize one document",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"format"}),
		documentBytes: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "document_size_bytes",
			Help:      "Size of source documents",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 8),
		}, []string{"format"}),
		batchFiles: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_files_total",
			Help:      "Files processed by batch runs, by result",
		}, []string{"result"}),

		cacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups, by key type and result",
		}, []string{"type", "result"}),
		cacheSetBytes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_set_bytes_total",
			Help:      "Bytes written to the cache",
		}, []string{"type"}),
	}
}

// Install makes m the global pipeline, cache and HTTP hooks.
func (m *Metrics) Install() {
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// =============================================================================
// HTTP hooks
// =============================================================================

func (m *Metrics) OnRequest(context.Context, string, string) {
	m.inFlight.Inc()
}

func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.inFlight.Dec()
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) OnError(_ context.Context, method, route string, _ error) {
	m.requestErrors.WithLabelValues(method, route).Inc()
}

// =============================================================================
// Pipeline hooks
// =============================================================================

func (m *Metrics) OnDocumentStart(_ context.Context, format string, size int) {
	m.documentBytes.WithLabelValues(format).Observe(float64(size))
}

func (m *Metrics) OnDocumentComplete(_ context.Context, format string, entries int, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.documents.WithLabelValues(format, result).Inc()
	m.documentEntries.WithLabelValues(format).Add(float64(entries))
	m.documentDuration.WithLabelValues(format).Observe(d.Seconds())
}

func (m *Metrics) OnBatchComplete(_ context.Context, files, failed int, _ time.Duration) {
	m.batchFiles.WithLabelValues("ok").Add(float64(files - failed))
	m.batchFiles.WithLabelValues("failed").Add(float64(failed))
}

// =============================================================================
// Cache hooks
// =============================================================================

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheLookups.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheLookups.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheSetBytes.WithLabelValues(keyType).Add(float64(size))
}
