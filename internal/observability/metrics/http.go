package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	uploadsTotal         *prometheus.CounterVec
	queryRequestsTotal   *prometheus.CounterVec
	queryGroundedTotal   *prometheus.CounterVec
	queryFallbackTotal   *prometheus.CounterVec
	queryRetrievedChunks *prometheus.HistogramVec
	queryDuration        *prometheus.HistogramVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docproc",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docproc",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "docproc",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	uploadsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docproc",
			Subsystem: "pipeline",
			Name:      "uploads_total",
			Help:      "Total accepted document uploads.",
		},
		[]string{"service"},
	)
	queryRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docproc",
			Subsystem: "query",
			Name:      "requests_total",
			Help:      "Total successful document query requests.",
		},
		[]string{"service"},
	)
	queryGroundedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docproc",
			Subsystem: "query",
			Name:      "grounded_total",
			Help:      "Total query answers grounded in retrieved chunks.",
		},
		[]string{"service"},
	)
	queryFallbackTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docproc",
			Subsystem: "query",
			Name:      "summary_fallback_total",
			Help:      "Total query answers that fell back to the stored summary.",
		},
		[]string{"service"},
	)
	queryRetrievedChunks := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docproc",
			Subsystem: "query",
			Name:      "retrieved_chunks",
			Help:      "Distribution of retrieved chunks per successful query.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8},
		},
		[]string{"service"},
	)
	queryDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docproc",
			Subsystem: "query",
			Name:      "duration_seconds",
			Help:      "Query execution duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		uploadsTotal,
		queryRequestsTotal,
		queryGroundedTotal,
		queryFallbackTotal,
		queryRetrievedChunks,
		queryDuration,
	)

	return &HTTPServerMetrics{
		registry:             registry,
		requestTotal:         requestTotal,
		requestDuration:      requestDuration,
		requestInFlight:      requestInFlight,
		uploadsTotal:         uploadsTotal,
		queryRequestsTotal:   queryRequestsTotal,
		queryGroundedTotal:   queryGroundedTotal,
		queryFallbackTotal:   queryFallbackTotal,
		queryRetrievedChunks: queryRetrievedChunks,
		queryDuration:        queryDuration,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// normalizePath collapses per-document paths so the label set stays bounded.
func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/analysis-status/"):
		return "/analysis-status/{document_id}"
	case strings.HasPrefix(path, "/query-document/"):
		return "/query-document/{document_id}"
	default:
		return path
	}
}

func (m *HTTPServerMetrics) RecordUpload(service string) {
	m.uploadsTotal.WithLabelValues(service).Inc()
}

func (m *HTTPServerMetrics) RecordQuery(service string, chunkCount int, duration time.Duration) {
	m.queryRequestsTotal.WithLabelValues(service).Inc()
	m.queryRetrievedChunks.WithLabelValues(service).Observe(float64(chunkCount))
	m.queryDuration.WithLabelValues(service).Observe(duration.Seconds())

	if chunkCount > 0 {
		m.queryGroundedTotal.WithLabelValues(service).Inc()
		return
	}
	m.queryFallbackTotal.WithLabelValues(service).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}
