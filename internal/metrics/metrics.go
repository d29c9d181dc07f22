package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Transfer outcomes used as the "outcome" label.
const (
	OutcomeCompleted         = "completed"
	OutcomeInvalid           = "invalid"
	OutcomeNotFound          = "not_found"
	OutcomeInsufficientFunds = "insufficient_funds"
	OutcomeError             = "error"
)

var (
	// Registry holds the ledger's Prometheus collectors.
	Registry = prometheus.NewRegistry()

	accountsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "accounts_ledger",
			Subsystem: "accounts",
			Name:      "created_total",
			Help:      "Total number of accounts created.",
		},
	)

	transfers = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "accounts_ledger",
			Subsystem: "transfers",
			Name:      "total",
			Help:      "Total number of transfers by outcome.",
		},
		[]string{"outcome"},
	)

	transferDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "accounts_ledger",
			Subsystem: "transfers",
			Name:      "duration_seconds",
			Help:      "Time spent validating, locking and applying transfers.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12), // 100µs to ~200ms
		},
		[]string{"outcome"},
	)

	notificationFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "accounts_ledger",
			Subsystem: "notifications",
			Name:      "failures_total",
			Help:      "Total number of notifications that could not be dispatched.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "accounts_ledger",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)
)

func init() {
	Registry.MustRegister(
		accountsCreated,
		transfers,
		transferDuration,
		notificationFailures,
		httpRequests,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func RecordAccountCreated() {
	accountsCreated.Inc()
}

// RecordTransfer records a transfer attempt with its outcome.
func RecordTransfer(outcome string, duration time.Duration) {
	transfers.WithLabelValues(outcome).Inc()
	transferDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func RecordNotificationFailure() {
	notificationFailures.Inc()
}

// InstrumentHandler counts requests by chi route pattern so path parameters
// do not explode label cardinality.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		httpRequests.WithLabelValues(strings.ToUpper(r.Method), route, strconv.Itoa(status)).Inc()
	})
}
