// Package metrics defines and registers all custom Prometheus metrics for the
// restaurant console. It is the single source of truth for metric names,
// labels, and help strings. All metrics self-register with the default
// registry via promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// ── Backend client metrics ────────────────────────────────────────────────────

// BackendRequestsTotal counts requests issued to the restaurant backend.
// Labels:
//   - resource: collection name (e.g. "menu-items") or endpoint tag ("token")
//   - method: HTTP verb
//   - code: status class ("2xx", "4xx", "5xx") or "error" for transport failures
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests sent to the restaurant backend.",
	},
	[]string{"resource", "method", "code"},
)

// BackendRequestDuration measures backend round-trip time per resource/verb.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of backend requests from send to decoded response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"resource", "method"},
)

// ── Checkout metrics ──────────────────────────────────────────────────────────

// CheckoutsTotal counts checkout attempts.
// Label:
//   - outcome: "success" or the step the sequence aborted at
//     (e.g. "order", "order_detail", "bill")
var CheckoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_total",
		Help:      "Total number of checkout attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsOpenedTotal counts successful logins by user type.
var SessionsOpenedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_opened_total",
		Help:      "Total number of sessions opened, by user type.",
	},
	[]string{"user_type"},
)

// SessionsClosedTotal counts session teardowns.
// Label:
//   - reason: "logout" or "expired" (backend returned 401)
var SessionsClosedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_closed_total",
		Help:      "Total number of sessions closed, by reason.",
	},
	[]string{"reason"},
)

// ── Cart metrics ──────────────────────────────────────────────────────────────

// CartOperationsTotal counts cart mutations.
// Label:
//   - op: "add", "set_quantity", "remove", "clear"
var CartOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_operations_total",
		Help:      "Total number of cart mutations, by operation.",
	},
	[]string{"op"},
)
