// Package metrics defines and registers all custom Prometheus metrics for the
// price-tracking API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time and
// are exposed through the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pricetrack"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
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

// TokensIssuedTotal counts session tokens minted after a successful login.
// Label:
//   - role: the role embedded in the token ("user" or "admin")
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of session tokens issued, by role.",
	},
	[]string{"role"},
)

// ── Instrument metrics ────────────────────────────────────────────────────────

// InstrumentsCreatedTotal counts newly created instruments.
var InstrumentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "instruments_created_total",
		Help:      "Total number of instruments created.",
	},
)

// ── Tick metrics ──────────────────────────────────────────────────────────────

// TicksProcessedTotal counts ticks that completed processing successfully.
// Label:
//   - source: the feed source reported by the sender (e.g. "seed", "manual")
var TicksProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ticks_processed_total",
		Help:      "Total number of price ticks successfully processed.",
	},
	[]string{"source"},
)

// TickDedupHitsTotal counts ticks skipped because the idempotency store had
// already seen the same symbol and timestamp. Dedup hits are not failures and
// never count towards TicksProcessedTotal.
var TickDedupHitsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tick_dedup_hits_total",
		Help:      "Total number of duplicate price ticks skipped by the idempotency check.",
	},
)

// TicksErrorsTotal counts ticks that failed processing.
// Label:
//   - reason: "instrument_not_found" or "process_failed"
var TicksErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ticks_errors_total",
		Help:      "Total number of price ticks that failed processing.",
	},
	[]string{"reason"},
)

// TickQueueDepth tracks the current number of ticks waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var TickQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "tick_queue_depth",
		Help:      "Current number of ticks pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// TickProcessingDuration measures how long a single tick takes to process end-to-end.
// Label:
//   - result: "ok" or "error"
var TickProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "tick_processing_duration_seconds",
		Help:      "Duration of tick processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"result"},
)
