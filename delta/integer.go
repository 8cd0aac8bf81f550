package delta

import (
	"math"
	"math/bits"

	"golang.org/x/exp/constraints"

	"github.com/arloliu/tickwire/buffer"
	"github.com/arloliu/tickwire/format"
)

// signExtend returns the high word of v widened to 128 bits.
func signExtend(v int64) uint64 {
	if v < 0 {
		return math.MaxUint64
	}

	return 0
}

// signedDiff returns next-prev as a 128-bit two's-complement value.
func signedDiff(prev, next int64) (lo, hi uint64) {
	lo, borrow := bits.Sub64(uint64(next), uint64(prev), 0) //nolint:gosec
	hi, _ = bits.Sub64(signExtend(next), signExtend(prev), borrow)

	return lo, hi
}

// signedTier classifies a 128-bit signed difference by signed range.
func signedTier(lo, hi uint64) format.Tier {
	d := int64(lo) //nolint:gosec
	if hi != signExtend(d) {
		return format.Tier128
	}

	switch {
	case d == 0:
		return format.TierUnset
	case d >= math.MinInt8 && d <= math.MaxInt8:
		return format.Tier8
	case d >= math.MinInt16 && d <= math.MaxInt16:
		return format.Tier16
	case d >= math.MinInt32 && d <= math.MaxInt32:
		return format.Tier32
	default:
		return format.Tier64
	}
}

// WriteSigned writes next-prev for a signed integer type.
//
// The difference is computed without overflow: a difference that does not fit
// in int64 uses the 128-bit tier. The tier byte never carries the direction bit.
//
// Parameters:
//   - w: destination writer
//   - prev: value the receiver already holds
//   - next: value to transmit
//   - opts: FullSerialize or RootSerialize force a write when prev == next
//
// Returns:
//   - bool: true if anything was written
func WriteSigned[T constraints.Signed](w *buffer.Writer, prev, next T, opts Options) bool {
	lo, hi := signedDiff(int64(prev), int64(next))
	t := signedTier(lo, hi)
	if t == format.TierUnset {
		return writeUnchanged(w, opts)
	}

	w.WriteUint8(uint8(t))
	switch t {
	case format.Tier8:
		w.WriteInt8(int8(lo)) //nolint:gosec
	case format.Tier16:
		w.WriteInt16(int16(lo)) //nolint:gosec
	case format.Tier32:
		w.WriteInt32(int32(lo)) //nolint:gosec
	case format.Tier64:
		w.WriteUint64(lo)
	case format.Tier128:
		w.WriteUint128(lo, hi)
	}

	return emit(true)
}

// ReadSigned reads a delta written by WriteSigned and applies it to prev.
func ReadSigned[T constraints.Signed](r *buffer.Reader, prev T) T {
	t, ok := readTier(r, "signed", false, false)
	if !ok {
		return 0
	}

	var d uint64
	switch t {
	case format.TierUnset:
		return prev
	case format.Tier8:
		d = uint64(int64(r.ReadInt8())) //nolint:gosec
	case format.Tier16:
		d = uint64(int64(r.ReadInt16())) //nolint:gosec
	case format.Tier32:
		d = uint64(int64(r.ReadInt32())) //nolint:gosec
	case format.Tier64:
		d = r.ReadUint64()
	case format.Tier128:
		// the sum fits in T, so the low word alone determines it
		d, _ = r.ReadUint128()
	}
	if r.Err() != nil {
		return 0
	}

	return T(uint64(int64(prev)) + d) //nolint:gosec
}

// WriteUnsigned writes |next-prev| plus the direction bit for an unsigned integer type.
func WriteUnsigned[T constraints.Unsigned](w *buffer.Writer, prev, next T, opts Options) bool {
	a, b := uint64(prev), uint64(next)

	var m magnitude
	larger := b > a
	if larger {
		m.lo = b - a
	} else {
		m.lo = a - b
	}

	t := m.tier()
	if t == format.TierUnset {
		return writeUnchanged(w, opts)
	}
	if larger {
		w.WriteUint8(uint8(t | format.TierNextLarger))
	} else {
		w.WriteUint8(uint8(t))
	}
	writeMagnitude(w, t, m)

	return emit(true)
}

// ReadUnsigned reads a delta written by WriteUnsigned and applies it to prev.
func ReadUnsigned[T constraints.Unsigned](r *buffer.Reader, prev T) T {
	t, ok := readTier(r, "unsigned", false, true)
	if !ok {
		return 0
	}
	if t.Width() == format.TierUnset {
		return prev
	}

	m := readMagnitude(r, t)
	if r.Err() != nil {
		return 0
	}
	if t.NextLarger() {
		return T(uint64(prev) + m.lo)
	}

	return T(uint64(prev) - m.lo)
}

// WriteBool writes next as a plain byte when it differs from prev or opts force a write.
// Booleans carry no tier byte.
func WriteBool(w *buffer.Writer, prev, next bool, opts Options) bool {
	if prev == next && !opts.Forced() {
		return emit(false)
	}
	w.WriteBool(next)

	return emit(true)
}

// ReadBool reads a value written by WriteBool.
func ReadBool(r *buffer.Reader) bool {
	return r.ReadBool()
}
