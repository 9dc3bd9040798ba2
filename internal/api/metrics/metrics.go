// Package metrics defines and registers all custom Prometheus metrics for the
// Afya Yetu case-work gateway. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "afya_gateway"

// ── Upstream registry metrics ─────────────────────────────────────────────────

// UpstreamRequestsTotal counts requests issued against the upstream registry.
// Labels:
//   - method: HTTP method of the request
//   - outcome: "ok", "client_error", "server_error", or "transport_error"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests issued to the upstream registry.",
	},
	[]string{"method", "outcome"},
)

// UpstreamRequestDuration measures upstream round-trip time.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of upstream registry round trips.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// CSRFRefreshesTotal counts anti-forgery token fetch round trips.
var CSRFRefreshesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "csrf_refreshes_total",
		Help:      "Total number of anti-forgery token fetches against the registry.",
	},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionInvalidationsTotal counts unauthorized-triggered session
// invalidations. Concurrent 401s within one session generation count once.
var SessionInvalidationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_invalidations_total",
		Help:      "Total number of session invalidations triggered by unauthorized responses.",
	},
)

// SessionTransitionsTotal counts session state-machine transitions.
// Label:
//   - state: the state entered ("authenticating", "authenticated", "unauthenticated")
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of session state transitions, by entered state.",
	},
	[]string{"state"},
)

// ── Form metrics ──────────────────────────────────────────────────────────────

// ProgramCodesGeneratedTotal counts program codes derived because the form's
// code field was left blank at submission.
var ProgramCodesGeneratedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "program_codes_generated_total",
		Help:      "Total number of program codes derived for blank submissions.",
	},
)
