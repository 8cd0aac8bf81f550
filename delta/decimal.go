package delta

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/arloliu/tickwire/buffer"
	"github.com/arloliu/tickwire/format"
)

var (
	decimalScale = decimal.NewFromInt(DecimalAccuracy)
	word64Mask   = new(big.Int).SetUint64(^uint64(0))
)

// WriteDecimal writes the change from prev to next quantized to 1/DecimalAccuracy.
// Magnitudes past the 128-bit tier are written with TierFull as the decimal string
// of next.
func WriteDecimal(w *buffer.Writer, prev, next decimal.Decimal, opts Options) bool {
	diff := next.Sub(prev)
	q := diff.Abs().Mul(decimalScale).Floor().BigInt()

	if q.BitLen() > 127 {
		w.WriteUint8(uint8(format.TierFull))
		w.WriteString(next.String())

		return emit(true)
	}

	m := magnitude{
		lo: new(big.Int).And(q, word64Mask).Uint64(),
		hi: new(big.Int).Rsh(q, 64).Uint64(),
	}
	t := m.tier()
	if t == format.TierUnset {
		return writeUnchanged(w, opts)
	}

	if diff.Sign() > 0 {
		w.WriteUint8(uint8(t | format.TierNextLarger))
	} else {
		w.WriteUint8(uint8(t))
	}
	writeMagnitude(w, t, m)

	return emit(true)
}

// ReadDecimal reads a delta written by WriteDecimal and applies it to prev.
func ReadDecimal(r *buffer.Reader, prev decimal.Decimal) decimal.Decimal {
	t, ok := readTier(r, "decimal", true, true)
	if !ok {
		return decimal.Zero
	}

	switch t.Width() {
	case format.TierUnset:
		return prev
	case format.TierFull:
		s := r.ReadString()
		if r.Err() != nil {
			return decimal.Zero
		}
		v, err := decimal.NewFromString(s)
		if err != nil {
			r.Fail(fmt.Errorf("delta: malformed decimal %q: %w", s, err))
			return decimal.Zero
		}

		return v
	}

	m := readMagnitude(r, t)
	if r.Err() != nil {
		return decimal.Zero
	}
	q := new(big.Int).SetUint64(m.hi)
	q.Lsh(q, 64).Or(q, new(big.Int).SetUint64(m.lo))
	d := decimal.NewFromBigInt(q, 0).Div(decimalScale)

	if t.NextLarger() {
		return prev.Add(d)
	}

	return prev.Sub(d)
}
