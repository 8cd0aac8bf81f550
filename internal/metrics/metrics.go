// Package metrics holds the process-wide counters tickwire packages increment on
// their slow paths: skipped deltas, malformed input, registry misses, rejected frames, pool misses.
package metrics

import (
	"io"

	"github.com/VictoriaMetrics/metrics"
)

var (
	DeltaWritten     = metrics.NewCounter(`tickwire_delta_total{result="written"}`)
	DeltaSkipped     = metrics.NewCounter(`tickwire_delta_total{result="skipped"}`)
	DeltaUnknownTier = metrics.NewCounter(`tickwire_delta_unknown_tier_total`)

	ShortReads      = metrics.NewCounter(`tickwire_reader_errors_total{kind="short_buffer"}`)
	MalformedLength = metrics.NewCounter(`tickwire_reader_errors_total{kind="malformed_length"}`)

	UnregisteredType = metrics.NewCounter(`tickwire_registry_unregistered_total`)
	RejectedOverride = metrics.NewCounter(`tickwire_registry_rejected_override_total`)

	RingIndexErrors  = metrics.NewCounter(`tickwire_ring_errors_total{kind="index"}`)
	RingUninitUse    = metrics.NewCounter(`tickwire_ring_errors_total{kind="uninitialized"}`)
	RingMutatedWalks = metrics.NewCounter(`tickwire_ring_errors_total{kind="mutated_iteration"}`)

	FramesEncoded    = metrics.NewCounter(`tickwire_packet_frames_total{result="encoded"}`)
	FramesDecoded    = metrics.NewCounter(`tickwire_packet_frames_total{result="decoded"}`)
	FramesRejected   = metrics.NewCounter(`tickwire_packet_frames_total{result="rejected"}`)
	FramesUnhandled  = metrics.NewCounter(`tickwire_packet_frames_total{result="unhandled"}`)

	PoolMisses   = metrics.NewCounter(`tickwire_pool_total{result="miss"}`)
	PoolHits     = metrics.NewCounter(`tickwire_pool_total{result="hit"}`)
	PoolDiscards = metrics.NewCounter(`tickwire_pool_total{result="discard"}`)
)

// WritePrometheus writes every registered tickwire counter in Prometheus text format.
func WritePrometheus(w io.Writer) {
	metrics.WritePrometheus(w, false)
}
