// Package metrics defines and registers all custom Prometheus metrics for the
// consulting platform API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "astro"

// ChartsCalculatedTotal counts completed chart calculations.
// Label:
//   - kind: "natal", "quick", "transit", or "solar_return"
var ChartsCalculatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "charts_calculated_total",
		Help:      "Total number of charts calculated, by kind.",
	},
	[]string{"kind"},
)

// CalculationErrorsTotal counts failed calculations.
// Label:
//   - stage: the pipeline stage that failed (e.g. "natal_chart", "solar_set")
var CalculationErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "calculation_errors_total",
		Help:      "Total number of failed chart calculations, by stage.",
	},
	[]string{"stage"},
)

// CalculationDuration measures end-to-end chart calculation latency as seen by
// the HTTP handler, external engine round-trip included.
// Label:
//   - kind: "natal", "quick", "transit", or "solar_return"
var CalculationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "calculation_duration_seconds",
		Help:      "Duration of chart calculations from request to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)

// InterpretationFailuresTotal counts interpretation lookups that could not be
// served, typically a missing or malformed translation file. Calculations
// degrade rather than fail when this fires.
// Label:
//   - language: the requested language code
var InterpretationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "interpretation_failures_total",
		Help:      "Total number of failed interpretation lookups, by language.",
	},
	[]string{"language"},
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

// AuditQueueDepth tracks pending audit entries in each writer worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", ...)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each writer worker channel.",
	},
	[]string{"worker_id"},
)
