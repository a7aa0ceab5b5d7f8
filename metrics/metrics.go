// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "yoga_journal",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yoga_journal",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "yoga_journal",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	sessionsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yoga_journal",
			Subsystem: "sessions",
			Name:      "created_total",
			Help:      "Practice sessions materialized, by practice type.",
		},
		[]string{"practice_type"},
	)

	scoreCardsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "yoga_journal",
			Subsystem: "sessions",
			Name:      "score_cards_created_total",
			Help:      "Score cards bulk-inserted by session materialization.",
		},
	)

	scoreCardUpdates = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "yoga_journal",
			Subsystem: "scorecards",
			Name:      "updates_total",
			Help:      "Score card rating updates committed.",
		},
	)

	transitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yoga_journal",
			Subsystem: "sessions",
			Name:      "transitions_total",
			Help:      "Publish state machine outcomes.",
		},
		[]string{"transition", "result"},
	)

	missingReference = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "yoga_journal",
			Subsystem: "catalog",
			Name:      "missing_reference_total",
			Help:      "Materializations aborted because a pose slug was not seeded.",
		},
	)
)

// Transition results
const (
	ResultOK         = "ok"
	ResultNoop       = "noop"
	ResultIncomplete = "incomplete"
	ResultConflict   = "conflict"
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		sessionsCreated,
		scoreCardsCreated,
		scoreCardUpdates,
		transitions,
		missingReference,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler exposes the registered collectors.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps next with HTTP metrics collection. Routes are
// labelled by their mux template so ids do not explode cardinality.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		route := routeLabel(r)
		method := strings.ToUpper(r.Method)

		httpRequests.WithLabelValues(method, route, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	})
}

// RecordSessionCreated counts a materialized session and its cards.
func RecordSessionCreated(practiceType string, cards int) {
	sessionsCreated.WithLabelValues(practiceType).Inc()
	scoreCardsCreated.Add(float64(cards))
}

// RecordScoreCardUpdate counts a committed card update.
func RecordScoreCardUpdate() {
	scoreCardUpdates.Inc()
}

// RecordTransition counts a publish or unpublish attempt by outcome.
func RecordTransition(transition, result string) {
	transitions.WithLabelValues(transition, result).Inc()
}

// RecordMissingReference counts a materialization that hit unseeded poses.
func RecordMissingReference() {
	missingReference.Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// routeLabel prefers the matched mux template and falls back to the first
// path segment for unmatched requests.
func routeLabel(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	trimmed := strings.Trim(r.URL.Path, "/")
	if trimmed == "" {
		return "/"
	}
	return "/" + strings.SplitN(trimmed, "/", 2)[0]
}
