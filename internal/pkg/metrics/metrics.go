// Package metrics defines and registers all custom Prometheus metrics for the
// project portal. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry on import through
// promauto; the HTTP middleware exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Labels:
//   - track: "admin" or "client"
//   - result: "success", "invalid", "denied", "transient", "setup_incomplete", "not_found"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by track and result.",
	},
	[]string{"track", "result"},
)

// ── Gateway metrics ───────────────────────────────────────────────────────────

// StrategyFallbacksTotal counts operations served by a fallback strategy
// instead of the first one they tried.
// Labels:
//   - op: logical operation (e.g. "client.timeline")
//   - strategy: the strategy that finally succeeded
var StrategyFallbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "strategy_fallbacks_total",
		Help:      "Total number of operations served by a fallback strategy.",
	},
	[]string{"op", "strategy"},
)

// RPCDuration measures remote procedure calls against the database.
// Labels:
//   - function: procedure name
//   - outcome: ok, empty, missing, unavailable or error
var RPCDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rpc_duration_seconds",
		Help:      "Duration of remote procedure calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"function", "outcome"},
)

// ReadTrackingDisabled is 1 once the message read-state column was found
// missing and unread counts degraded to zero.
var ReadTrackingDisabled = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "read_tracking_disabled",
		Help:      "1 when message read tracking is unavailable in the schema.",
	},
)

// ── Realtime metrics ──────────────────────────────────────────────────────────

// RealtimeSubscriptions tracks open realtime subscriptions per table.
var RealtimeSubscriptions = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "realtime_subscriptions",
		Help:      "Current number of open realtime subscriptions.",
	},
	[]string{"table"},
)

// RealtimeQueueDepth tracks pending change notifications in each hub shard.
var RealtimeQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "realtime_queue_depth",
		Help:      "Current number of changes pending in each realtime shard.",
	},
	[]string{"shard"},
)

// ChangesDeliveredTotal counts change notifications handed to subscribers.
var ChangesDeliveredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "changes_delivered_total",
		Help:      "Total number of change notifications delivered, by table.",
	},
	[]string{"table"},
)

// ── Scope metrics ─────────────────────────────────────────────────────────────

// ActiveScopes tracks per-tab scopes held in memory.
var ActiveScopes = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_scopes",
		Help:      "Current number of tab scopes held in memory.",
	},
)

// NotificationsTotal counts inbox notifications, by type.
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of notifications added to inboxes, by type.",
	},
	[]string{"type"},
)
