// Package metrics holds the Prometheus collectors of the ordering API. They
// are registered on the default registry at init and served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "restaurante"

// CustomersRegisteredTotal counts successful registrations.
var CustomersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "customers_registered_total",
		Help:      "Total number of customers registered.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "invalid_credentials"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// OrdersCreatedTotal counts orders placed.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created.",
	},
)

// OrderTransitionsTotal counts committed status transitions.
// Labels:
//   - from, to: the status before and after the transition
var OrderTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_transitions_total",
		Help:      "Total number of committed order status transitions.",
	},
	[]string{"from", "to"},
)

// OrderTransitionRejectionsTotal counts advance requests that did not commit.
// Label:
//   - reason: "not_found", "already_delivered", "unknown_state", "conflict"
var OrderTransitionRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_transition_rejections_total",
		Help:      "Total number of rejected order status transitions, by reason.",
	},
	[]string{"reason"},
)

// OrderTransitionRetriesTotal counts advance attempts replayed after losing
// a race or hitting a retryable storage error.
var OrderTransitionRetriesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_transition_retries_total",
		Help:      "Total number of retried order status transitions.",
	},
)

// HTTPRequestDuration measures handler latency.
// Labels:
//   - method, route: chi route pattern, e.g. "/orders/{id}/status"
//   - code: response status code
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests by method, route and status code.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "code"},
)
