package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects Prometheus metrics for the API and the report engine.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	buildDuration   *prometheus.HistogramVec
	skippedLines    *prometheus.CounterVec
	ledgerLines     prometheus.Gauge
	reloads         *prometheus.CounterVec
}

// NewMetrics initialises a private registry and the base metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dre_http_requests_total",
		Help: "HTTP requests by route and status.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dre_http_request_duration_seconds",
		Help:    "HTTP request duration by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	build := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dre_report_build_duration_seconds",
		Help:    "Time to build a report forest.",
		Buckets: prometheus.DefBuckets,
	}, []string{"report"})
	skipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dre_report_skipped_lines_total",
		Help: "Ledger lines skipped while building reports.",
	}, []string{"report"})
	lines := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dre_ledger_lines",
		Help: "Ledger lines currently loaded.",
	})
	reloads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dre_ledger_reloads_total",
		Help: "Ledger reloads by result.",
	}, []string{"result"})
	registry.MustRegister(requests, duration, build, skipped, lines, reloads)
	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		buildDuration:   build,
		skippedLines:    skipped,
		ledgerLines:     lines,
		reloads:         reloads,
	}
}

// Handler returns the /metrics handler.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records count and duration for every request.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(&recorder, r)
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// ObserveBuild records one report build.
func (m *Metrics) ObserveBuild(kind string, d time.Duration, skipped int) {
	if m == nil {
		return
	}
	m.buildDuration.WithLabelValues(kind).Observe(d.Seconds())
	if skipped > 0 {
		m.skippedLines.WithLabelValues(kind).Add(float64(skipped))
	}
}

// ObserveReload records a ledger reload and the resulting line count.
func (m *Metrics) ObserveReload(lines int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.reloads.WithLabelValues("error").Inc()
		return
	}
	m.reloads.WithLabelValues("ok").Inc()
	m.ledgerLines.Set(float64(lines))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}
