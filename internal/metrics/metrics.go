// internal/metrics/metrics.go
//
// Prometheus instrumentation.
//   - HTTP request counter and latency histogram keyed by chi route pattern.
//   - Game counters: guesses by result, puzzle checks by result, hints served.
//     Level labels are bucketed to the played level; rounds are only recorded
//     after a successful catalog lookup.
//
// Metrics live on a private registry so independent servers (and tests) never
// collide on registration. A nil *Metrics is valid and records nothing.

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "brainbuzzer"

type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec

	guesses      *prometheus.CounterVec
	targets      *prometheus.CounterVec
	puzzleChecks *prometheus.CounterVec
	hints        *prometheus.CounterVec
}

// New creates and registers all collectors, including Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"method", "route"}),
		guesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "number_guesses_total",
			Help:      "Number-game guesses checked, by level and result.",
		}, []string{"level", "result"}),
		targets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "number_targets_total",
			Help:      "Number-game targets generated, by level.",
		}, []string{"level"}),
		puzzleChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "puzzle_checks_total",
			Help:      "Riddle answers checked, by round and result.",
		}, []string{"round", "result"}),
		hints: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "puzzle_hints_total",
			Help:      "Riddle hints served, by round.",
		}, []string{"round"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.duration, m.guesses, m.targets, m.puzzleChecks, m.hints,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records count and latency per route pattern, so path parameters
// and query strings never explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// TargetGenerated and GuessChecked take a bounded level label
// (numbergame.LevelLabel), never the raw client value.
func (m *Metrics) TargetGenerated(level string) {
	if m == nil {
		return
	}
	m.targets.WithLabelValues(level).Inc()
}

func (m *Metrics) GuessChecked(level, result string) {
	if m == nil {
		return
	}
	m.guesses.WithLabelValues(level, result).Inc()
}

func (m *Metrics) PuzzleChecked(round int, correct bool) {
	if m == nil {
		return
	}
	result := "wrong"
	if correct {
		result = "correct"
	}
	m.puzzleChecks.WithLabelValues(strconv.Itoa(round), result).Inc()
}

func (m *Metrics) HintServed(round int) {
	if m == nil {
		return
	}
	m.hints.WithLabelValues(strconv.Itoa(round)).Inc()
}
