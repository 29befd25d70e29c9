// Package metrics defines and registers all custom Prometheus metrics for the
// members portal. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default registry at import time via
// promauto; the /metrics endpoint is mounted by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "members"

// SignupsTotal counts registration attempts.
// Label:
//   - result: "success", "validation_error", "duplicate", or "error"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "validation_error", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthDeniedTotal counts requests turned away by the auth gates.
// Label:
//   - reason: "unauthenticated" (redirected to login) or "forbidden" (403)
var AuthDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denied_total",
		Help:      "Total number of requests denied by the auth gates, by reason.",
	},
	[]string{"reason"},
)

// SessionsDestroyedTotal counts explicit logouts.
var SessionsDestroyedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_destroyed_total",
		Help:      "Total number of sessions destroyed by explicit logout.",
	},
)

// RoleChangesTotal counts admin role mutations.
// Label:
//   - role: the role assigned ("admin" for promote, "user" for demote)
var RoleChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_changes_total",
		Help:      "Total number of role changes applied by admins, by new role.",
	},
	[]string{"role"},
)
