package delta

import (
	"math"

	"github.com/arloliu/tickwire/buffer"
	"github.com/arloliu/tickwire/format"
)

// Float is the set of floating-point types the delta codec accepts.
type Float interface {
	float32 | float64
}

// writeFull writes v unpacked at its own width.
func writeFull[T Float](w *buffer.Writer, v T) {
	switch x := any(v).(type) {
	case float32:
		w.WriteFloat32(x)
	case float64:
		w.WriteFloat64(x)
	}
}

func readFull[T Float](r *buffer.Reader) T {
	var zero T
	switch any(zero).(type) {
	case float32:
		return T(r.ReadFloat32())
	default:
		return T(r.ReadFloat64())
	}
}

// floatChange classifies the change from prev to next. full is true when the
// value must be sent unpacked.
func floatChange[T Float](prev, next T) (t format.Tier, m magnitude, larger, full bool) {
	a, b := float64(prev), float64(next)
	if math.IsNaN(a) || math.IsInf(a, 0) || math.IsNaN(b) || math.IsInf(b, 0) {
		// a non-finite previous value cannot anchor a delta
		if math.Float64bits(a) == math.Float64bits(b) {
			return format.TierUnset, magnitude{}, false, false
		}

		return format.TierFull, magnitude{}, false, true
	}

	m, ok := quantize(b-a, FloatAccuracy)
	if !ok {
		return format.TierFull, magnitude{}, false, true
	}

	return m.tier(), m, b > a, false
}

// writeFloatPayload writes the tier byte and payload for a classified change.
func writeFloatPayload[T Float](w *buffer.Writer, next T, t format.Tier, m magnitude, larger, full bool) {
	if full {
		w.WriteUint8(uint8(format.TierFull))
		writeFull(w, next)

		return
	}
	if larger {
		w.WriteUint8(uint8(t | format.TierNextLarger))
	} else {
		w.WriteUint8(uint8(t))
	}
	writeMagnitude(w, t, m)
}

// WriteFloat writes the change from prev to next quantized to 1/FloatAccuracy.
//
// The magnitude floor(|next-prev|*FloatAccuracy) is written at the smallest tier
// that covers it with the direction bit in the tier byte. A change below one
// quantization unit counts as unchanged. Non-finite values and magnitudes past
// the 128-bit tier are written unpacked with TierFull.
//
// Parameters:
//   - w: destination writer
//   - prev: value the receiver already holds
//   - next: value to transmit
//   - opts: FullSerialize or RootSerialize force a write when nothing changed
//
// Returns:
//   - bool: true if anything was written
func WriteFloat[T Float](w *buffer.Writer, prev, next T, opts Options) bool {
	t, m, larger, full := floatChange(prev, next)
	if t == format.TierUnset {
		return writeUnchanged(w, opts)
	}
	writeFloatPayload(w, next, t, m, larger, full)

	return emit(true)
}

// ReadFloat reads a delta written by WriteFloat and applies it to prev.
// The result is within 1/FloatAccuracy of the value the writer was given.
func ReadFloat[T Float](r *buffer.Reader, prev T) T {
	t, ok := readTier(r, "float", true, true)
	if !ok {
		return 0
	}

	return applyFloat(r, prev, t)
}

func applyFloat[T Float](r *buffer.Reader, prev T, t format.Tier) T {
	switch t.Width() {
	case format.TierUnset:
		return prev
	case format.TierFull:
		v := readFull[T](r)
		if r.Err() != nil {
			return 0
		}

		return v
	}

	m := readMagnitude(r, t)
	if r.Err() != nil {
		return 0
	}
	d := m.float() / FloatAccuracy
	if t.NextLarger() {
		return T(float64(prev) + d)
	}

	return T(float64(prev) - d)
}
