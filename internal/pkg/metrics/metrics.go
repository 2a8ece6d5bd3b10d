// Package metrics defines and registers all custom Prometheus metrics of the
// kiosk control plane. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry on package init via
// promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "kiosk"

// ── Master session ────────────────────────────────────────────────────────────

// MasterLoginsTotal counts login attempts.
// Label:
//   - result: "ok", "empty", "rejected" or "network"
var MasterLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "master_logins_total",
		Help:      "Total number of master login attempts, by result.",
	},
	[]string{"result"},
)

// MasterLogoutsTotal counts transitions back to anonymous mode.
// Label:
//   - reason: "manual", "timeout" or "server"
var MasterLogoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "master_logouts_total",
		Help:      "Total number of master session terminations, by reason.",
	},
	[]string{"reason"},
)

// MasterSessionActive is 1 while the terminal is in master mode.
var MasterSessionActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "master_session_active",
		Help:      "1 while the kiosk is in master mode, 0 otherwise.",
	},
)

// ── Settings ──────────────────────────────────────────────────────────────────

// SettingsSyncTotal counts settings reads and writes.
// Labels:
//   - op: "load" or "save"
//   - result: "ok", "invalid", "denied" or "error"
var SettingsSyncTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "settings_sync_total",
		Help:      "Total number of settings loads and saves, by result.",
	},
	[]string{"op", "result"},
)

// ── Catalog ───────────────────────────────────────────────────────────────────

// CatalogRecords tracks the size of the loaded catalog.
// Label:
//   - kind: "total" or "unparsable"
var CatalogRecords = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "catalog_records",
		Help:      "Number of SKU records in the local catalog index.",
	},
	[]string{"kind"},
)

// ── Kiosk server transport ────────────────────────────────────────────────────

// UpstreamRequestsTotal counts requests to the kiosk server.
// Labels:
//   - endpoint: path relative to the API base (e.g. "master/login")
//   - outcome: "ok", "rejected" or "network"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests sent to the kiosk server.",
	},
	[]string{"endpoint", "outcome"},
)

// UpstreamRequestDuration measures round trips to the kiosk server.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of requests to the kiosk server.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// ── Journal ───────────────────────────────────────────────────────────────────

// JournalEventsTotal counts audit journal writes.
// Label:
//   - result: "written", "failed" or "dropped"
var JournalEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "journal_events_total",
		Help:      "Total number of master-session audit events, by result.",
	},
	[]string{"result"},
)

// JournalQueueDepth tracks events waiting in each journal worker channel.
var JournalQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "journal_queue_depth",
		Help:      "Current number of audit events pending in each journal worker channel.",
	},
	[]string{"worker_id"},
)
