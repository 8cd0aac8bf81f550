package delta

import (
	"github.com/arloliu/tickwire/buffer"
	"github.com/arloliu/tickwire/format"
)

// Axis bits of the vector envelope mask byte.
const (
	AxisX uint8 = 1 << iota
	AxisY
	AxisZ
)

// Vec2 is a two-component vector.
type Vec2[T Float] struct {
	X, Y T
}

// Vec3 is a three-component vector.
type Vec3[T Float] struct {
	X, Y, Z T
}

type axisChange struct {
	tier   format.Tier
	mag    magnitude
	larger bool
	full   bool
}

// writeAxes writes the mask byte and every changed axis. prev and next hold one
// entry per axis, in mask bit order.
func writeAxes[T Float](w *buffer.Writer, prev, next []T, opts Options) bool {
	var (
		changes [3]axisChange
		mask    uint8
	)
	for i := range next {
		t, m, larger, full := floatChange(prev[i], next[i])
		if t == format.TierUnset {
			continue
		}
		changes[i] = axisChange{tier: t, mag: m, larger: larger, full: full}
		mask |= 1 << i
	}

	if mask == 0 {
		if !opts.Forced() {
			return emit(false)
		}
		w.WriteUint8(0)

		return emit(true)
	}

	w.WriteUint8(mask)
	for i := range next {
		if mask&(1<<i) == 0 {
			continue
		}
		c := changes[i]
		writeFloatPayload(w, next[i], c.tier, c.mag, c.larger, c.full)
	}

	return emit(true)
}

// readAxes applies the envelope read from r to out, which holds the previous
// value of every axis. It reports false on a malformed envelope.
func readAxes[T Float](r *buffer.Reader, out []T) bool {
	mask := r.ReadUint8()
	if r.Err() != nil {
		return false
	}
	if mask>>len(out) != 0 {
		unknownTier("vector-mask", format.Tier(mask))
		return false
	}

	for i := range out {
		if mask&(1<<i) == 0 {
			continue
		}
		t, ok := readTier(r, "vector", true, true)
		if !ok {
			return false
		}
		out[i] = applyFloat(r, out[i], t)
	}

	return r.Err() == nil
}

// WriteVec2 writes the per-axis change from prev to next. Axes that did not
// change by at least one quantization unit are left out of the mask.
func WriteVec2[T Float](w *buffer.Writer, prev, next Vec2[T], opts Options) bool {
	return writeAxes(w, []T{prev.X, prev.Y}, []T{next.X, next.Y}, opts)
}

// ReadVec2 reads a delta written by WriteVec2 and applies it to prev.
func ReadVec2[T Float](r *buffer.Reader, prev Vec2[T]) Vec2[T] {
	axes := []T{prev.X, prev.Y}
	if !readAxes(r, axes) {
		return Vec2[T]{}
	}

	return Vec2[T]{X: axes[0], Y: axes[1]}
}

// WriteVec3 writes the per-axis change from prev to next.
func WriteVec3[T Float](w *buffer.Writer, prev, next Vec3[T], opts Options) bool {
	return writeAxes(w, []T{prev.X, prev.Y, prev.Z}, []T{next.X, next.Y, next.Z}, opts)
}

// ReadVec3 reads a delta written by WriteVec3 and applies it to prev.
func ReadVec3[T Float](r *buffer.Reader, prev Vec3[T]) Vec3[T] {
	axes := []T{prev.X, prev.Y, prev.Z}
	if !readAxes(r, axes) {
		return Vec3[T]{}
	}

	return Vec3[T]{X: axes[0], Y: axes[1], Z: axes[2]}
}
