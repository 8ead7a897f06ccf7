// Package metrics defines and registers all custom Prometheus metrics for the
// tracking simulator. It is the single source of truth for metric names,
// labels, and help strings.
//
// All metrics are registered with the default Prometheus registry on import
// through promauto; the HTTP layer exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tracking"

// ── Simulation metrics ────────────────────────────────────────────────────────

// EventsGeneratedTotal counts tracking events produced by the progression engine.
// Label:
//   - stage: the stage of the new event (e.g. "arrived_hub")
var EventsGeneratedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_generated_total",
		Help:      "Total number of synthetic tracking events generated.",
	},
	[]string{"stage"},
)

// AdvanceErrorsTotal counts advance attempts that did not produce an event.
// Label:
//   - reason: "not_found", "invalid_state", "locked", "conflict", "store_failed"
var AdvanceErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "advance_errors_total",
		Help:      "Total number of shipment advances that failed.",
	},
	[]string{"reason"},
)

// AdvanceDuration measures one advance from lock acquisition to persistence.
// Label:
//   - result: the new stage, "noop" for delivered input, or "error"
var AdvanceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "advance_duration_seconds",
		Help:      "Duration of a single shipment advance.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// ShipmentsDeliveredTotal counts shipments that reached the terminal stage.
var ShipmentsDeliveredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipments_delivered_total",
		Help:      "Total number of shipments that reached Delivered.",
	},
)

// ── Shipment metrics ──────────────────────────────────────────────────────────

// ShipmentsCreatedTotal counts newly created shipments.
// Label:
//   - service: "Standard", "Express", "Overnight", "Same-Day" or "Weekend"
var ShipmentsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipments_created_total",
		Help:      "Total number of shipments created, by service option.",
	},
	[]string{"service"},
)

// ── Ticker / dispatcher metrics ───────────────────────────────────────────────

// TicksTotal counts simulation ticks.
var TicksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "simulation_ticks_total",
		Help:      "Total number of simulation ticks executed.",
	},
)

// WatchedShipments is the number of ids enqueued on the last tick.
var WatchedShipments = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "watched_shipments",
		Help:      "Number of shipments the simulation advanced on the last tick.",
	},
)

// QueueDepth tracks the current number of jobs waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var QueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "advance_queue_depth",
		Help:      "Current number of advance jobs pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// JobsDroppedTotal counts advance jobs dropped because a worker queue was full.
var JobsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "advance_jobs_dropped_total",
		Help:      "Total number of advance jobs dropped on a full worker queue.",
	},
)
