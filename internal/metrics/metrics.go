// Package metrics holds the Prometheus collectors of the sync client and the
// relay. Collectors register on the default registry at init, the binaries
// expose them with promhttp.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// =============================================================================
// Client sync engine
// =============================================================================

var (
	// PullsTotal counts pulled collection pages by outcome.
	PullsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appsync_pulls_total",
			Help: "Total number of collection pulls",
		},
		[]string{"collection", "result"},
	)

	// PushesTotal counts pushed patches by outcome.
	PushesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appsync_pushes_total",
			Help: "Total number of collection pushes",
		},
		[]string{"collection", "result"},
	)

	// MACFailuresTotal counts authentication failures by the tag that failed:
	// value, index, patch or snapshot.
	MACFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appsync_mac_failures_total",
			Help: "Total number of failed MAC checks",
		},
		[]string{"collection", "kind"},
	)

	// DecodeResetsTotal counts collections reset to empty after repeated
	// decode failures.
	DecodeResetsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appsync_decode_resets_total",
			Help: "Total number of collection states reset after decode failures",
		},
		[]string{"collection"},
	)

	// CollectionVersion is the version of the last applied patch.
	CollectionVersion = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "appsync_collection_version",
			Help: "Current version of a collection state",
		},
		[]string{"collection"},
	)

	// MutationsDispatchedTotal counts mutations handed to the dispatcher.
	MutationsDispatchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appsync_mutations_dispatched_total",
			Help: "Total number of mutations applied to the domain store",
		},
		[]string{"kind"},
	)
)

// =============================================================================
// Relay
// =============================================================================

var (
	// PatchesStoredTotal counts patches appended to the log.
	PatchesStoredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appsync_relay_patches_stored_total",
			Help: "Total number of patches appended to the relay log",
		},
		[]string{"collection"},
	)

	// PatchConflictsTotal counts pushes rejected because they were not on top
	// of the head.
	PatchConflictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appsync_relay_patch_conflicts_total",
			Help: "Total number of pushes rejected with a version conflict",
		},
		[]string{"collection"},
	)

	// SnapshotsServedTotal counts snapshots built for pulling clients.
	SnapshotsServedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appsync_relay_snapshots_served_total",
			Help: "Total number of snapshots served",
		},
		[]string{"collection"},
	)

	// QueryDurationSeconds measures how long the relay takes to answer a query.
	QueryDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "appsync_relay_query_duration_seconds",
			Help:    "Latency of sync queries",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"transport"},
	)
)

// Result maps an error to a result label value.
func Result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}

// ObserveQuery records how long a query took on the given transport.
func ObserveQuery(transport string, started time.Time) {
	QueryDurationSeconds.WithLabelValues(transport).Observe(time.Since(started).Seconds())
}
