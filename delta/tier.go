package delta

import (
	"math"

	"go.uber.org/zap"

	"github.com/arloliu/tickwire/buffer"
	"github.com/arloliu/tickwire/format"
	"github.com/arloliu/tickwire/internal/logging"
	"github.com/arloliu/tickwire/internal/metrics"
)

// Upper bounds of the magnitude each tier carries. The limits are the signed
// maxima of each width so signed and unsigned families share one table.
const (
	limit8  = math.MaxInt8
	limit16 = math.MaxInt16
	limit32 = math.MaxInt32
	limit64 = math.MaxInt64
)

const (
	twoPow64  = float64(1 << 64)
	twoPow127 = float64(1 << 127)
)

// magnitude is an unsigned 128-bit quantity split into two words.
type magnitude struct {
	lo, hi uint64
}

// tier returns the smallest tier whose range covers m. hi must stay below 2^63.
func (m magnitude) tier() format.Tier {
	switch {
	case m.hi != 0:
		return format.Tier128
	case m.lo == 0:
		return format.TierUnset
	case m.lo <= limit8:
		return format.Tier8
	case m.lo <= limit16:
		return format.Tier16
	case m.lo <= limit32:
		return format.Tier32
	case m.lo <= limit64:
		return format.Tier64
	default:
		return format.Tier128
	}
}

// float returns m as a float64, losing precision beyond 53 bits.
func (m magnitude) float() float64 {
	return float64(m.hi)*twoPow64 + float64(m.lo)
}

// quantize returns floor(diff*scale) as a magnitude. ok is false when diff is
// not finite or the scaled value does not fit the 128-bit tier.
func quantize(diff, scale float64) (magnitude, bool) {
	q := math.Floor(math.Abs(diff) * scale)
	if math.IsNaN(q) || math.IsInf(q, 0) || q >= twoPow127 {
		return magnitude{}, false
	}
	if q < twoPow64 {
		return magnitude{lo: uint64(q)}, true
	}

	return magnitude{lo: uint64(math.Mod(q, twoPow64)), hi: uint64(q / twoPow64)}, true
}

// writeMagnitude writes the payload of m at the width of t. t must be a sized tier.
func writeMagnitude(w *buffer.Writer, t format.Tier, m magnitude) {
	switch t.Width() {
	case format.Tier8:
		w.WriteUint8(uint8(m.lo)) //nolint:gosec
	case format.Tier16:
		w.WriteUint16(uint16(m.lo)) //nolint:gosec
	case format.Tier32:
		w.WriteUint32(uint32(m.lo)) //nolint:gosec
	case format.Tier64:
		w.WriteUint64(m.lo)
	case format.Tier128:
		w.WriteUint128(m.lo, m.hi)
	}
}

// readMagnitude reads a payload written by writeMagnitude.
func readMagnitude(r *buffer.Reader, t format.Tier) magnitude {
	switch t.Width() {
	case format.Tier8:
		return magnitude{lo: uint64(r.ReadUint8())}
	case format.Tier16:
		return magnitude{lo: uint64(r.ReadUint16())}
	case format.Tier32:
		return magnitude{lo: uint64(r.ReadUint32())}
	case format.Tier64:
		return magnitude{lo: r.ReadUint64()}
	case format.Tier128:
		lo, hi := r.ReadUint128()
		return magnitude{lo: lo, hi: hi}
	default:
		return magnitude{}
	}
}

// readTier reads a tier byte and checks it against the tiers a family accepts.
// allowFull and allowDirection describe the family. On a bad byte it logs,
// counts the failure and returns ok=false.
func readTier(r *buffer.Reader, family string, allowFull, allowDirection bool) (format.Tier, bool) {
	t := format.Tier(r.ReadUint8())
	if r.Err() != nil {
		return format.TierUnset, false
	}

	ok := t.Valid() &&
		(allowFull || t.Width() != format.TierFull) &&
		(allowDirection || !t.NextLarger())
	if !ok {
		unknownTier(family, t)
		return format.TierUnset, false
	}

	return t, true
}

func unknownTier(family string, t format.Tier) {
	metrics.DeltaUnknownTier.Inc()
	logging.Named("delta").Error("unknown delta precision tier",
		zap.String("family", family),
		zap.Uint8("tier", uint8(t)),
	)
}

// emit records the outcome of a Write call.
func emit(written bool) bool {
	if written {
		metrics.DeltaWritten.Inc()
	} else {
		metrics.DeltaSkipped.Inc()
	}

	return written
}

// writeUnchanged handles a delta that classified as unset: it writes the unset
// tier byte when opts force a write and reports whether it did.
func writeUnchanged(w *buffer.Writer, opts Options) bool {
	if !opts.Forced() {
		return emit(false)
	}
	w.WriteUint8(uint8(format.TierUnset))

	return emit(true)
}
