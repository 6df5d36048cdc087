// Package metrics defines and registers all custom Prometheus metrics for the
// forum services. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// initialisation (promauto) and exposed by each service on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "forum"

// ── Backend metrics ───────────────────────────────────────────────────────────

// EntitiesCreatedTotal counts forum entities persisted by the backend.
// Label:
//   - kind: "discussion", "answer", "comment" or "report"
var EntitiesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entities_created_total",
		Help:      "Total number of forum entities created, by kind.",
	},
	[]string{"kind"},
)

// SecurityDecisionsTotal counts security callback outcomes.
// Labels:
//   - scheme: "api_key" or "token"
//   - result: "granted" or "denied"
var SecurityDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "security_decisions_total",
		Help:      "Total number of credential checks run before protected operations.",
	},
	[]string{"scheme", "result"},
)

// ── Outbound metrics ──────────────────────────────────────────────────────────

// OutboundRequestDuration measures calls to other services, retries included.
// Labels:
//   - service: "auth" or "backend"
//   - outcome: "ok", "status_error" or "transport_error"
var OutboundRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "outbound_request_duration_seconds",
		Help:      "Duration of outbound service calls including retries.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"service", "outcome"},
)

// OutboundRetriesTotal counts retried outbound attempts.
var OutboundRetriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "outbound_retries_total",
		Help:      "Total number of outbound attempts that were retried.",
	},
	[]string{"service"},
)

// ── Frontend metrics ──────────────────────────────────────────────────────────

// SessionGateDecisionsTotal counts page guard outcomes.
// Label:
//   - outcome: "proceed", "login" or "home"
var SessionGateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_gate_decisions_total",
		Help:      "Total number of protected page requests, by guard outcome.",
	},
	[]string{"outcome"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
