// Package metrics defines and registers all custom Prometheus metrics for the
// svcdesk admin console. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "svcdesk"

// RequestsTotal counts backend calls made through the gateway.
// Labels:
//   - method: HTTP method of the call
//   - outcome: "ok", "auth_error", "forbidden", "validation_error", "error"
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of backend requests made through the HTTP gateway.",
	},
	[]string{"method", "outcome"},
)

// ForcedLogoutsTotal counts forced logouts triggered by the gateway's
// response transform.
// Label:
//   - reason: "token_missing" or "invalid_token"
var ForcedLogoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "forced_logouts_total",
		Help:      "Total number of forced logouts caused by backend auth rejections.",
	},
	[]string{"reason"},
)

// LoginAttemptsTotal counts login attempts by result.
// Label:
//   - result: "success" or "failed"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ReconcilerOpsTotal counts order line operations emitted by the reconciler.
// Label:
//   - kind: "create", "update" or "delete"
var ReconcilerOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reconciler_ops_total",
		Help:      "Total number of order service-line operations emitted by the reconciler.",
	},
	[]string{"kind"},
)
