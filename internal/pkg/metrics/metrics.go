// Package metrics defines and registers the custom Prometheus metrics of the
// customer-desk API. It is the single source of truth for metric names,
// labels, and help strings. All metrics register with the default registry
// through promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "customer_desk"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthEventsTotal counts session operations.
// Labels:
//   - action: "register", "login", "logout", "check"
//   - result: "ok" or the error reason (e.g. "user_not_found", "duplicate_email")
var AuthEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_total",
		Help:      "Total number of auth session operations, by action and result.",
	},
	[]string{"action", "result"},
)

// ── Customer metrics ──────────────────────────────────────────────────────────

// CustomerMutationsTotal counts customer registry mutations.
// Labels:
//   - op: "create", "update", "delete"
//   - result: "ok" or the error reason
var CustomerMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "customer_mutations_total",
		Help:      "Total number of customer registry mutations, by operation and result.",
	},
	[]string{"op", "result"},
)

// ── Mutation queue metrics ────────────────────────────────────────────────────

// QueueDepth tracks the number of mutations waiting in each queue worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var QueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mutation_queue_depth",
		Help:      "Current number of mutations pending in each queue worker channel.",
	},
	[]string{"worker_id"},
)

// MutationDuration measures how long a queued mutation takes once dequeued.
// Label:
//   - key: the registry storage key ("users", "customers")
var MutationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "mutation_duration_seconds",
		Help:      "Duration of a registry mutation from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"key"},
)

// RegistrySize reports the number of records held by a registry.
// Label:
//   - registry: "users" or "customers"
var RegistrySize = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "registry_size",
		Help:      "Number of records currently held by each registry.",
	},
	[]string{"registry"},
)
