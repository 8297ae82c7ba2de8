// Package metrics defines and registers all custom Prometheus metrics for
// the iris-ui front-end. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "irisui"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "rejected" (backend refused the credentials) or
//     "error" (transport or upstream failure)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts, same labels as logins.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// SessionTeardownsTotal counts session clears.
// Label:
//   - reason: "logout" (user initiated) or "unauthorized" (a 401 from any
//     backend endpoint tore the session down)
var SessionTeardownsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_teardowns_total",
		Help:      "Total number of session clears, by reason.",
	},
	[]string{"reason"},
)

// GuardDenialsTotal counts route-guard denials.
// Label:
//   - guard: "authenticated" or "admin"
var GuardDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_denials_total",
		Help:      "Total number of navigations denied by a route guard.",
	},
	[]string{"guard"},
)

// UpstreamRequestDuration measures backend round trips as observed by the
// front-end's HTTP client.
// Labels:
//   - method: HTTP method of the outbound request
//   - status: numeric status code of the response ("timeout" never appears
//     here; transport failures produce no response to observe)
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of requests to the clinic backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "status"},
)
