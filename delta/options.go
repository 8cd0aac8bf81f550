package delta

const (
	// FloatAccuracy is the number of quantization steps per unit for float32 and float64 deltas.
	FloatAccuracy = 1000
	// DecimalAccuracy is the number of quantization steps per unit for decimal deltas.
	DecimalAccuracy = 1000
)

// Options are bit flags that change how a delta is written.
type Options uint8

const (
	// FullSerialize forces a write even when the value did not change, used for
	// periodic resynchronisation.
	FullSerialize Options = 1 << iota
	// RootSerialize forces a write even when the value did not change, used when
	// the initial state of an object is sent.
	RootSerialize
)

// None is the zero Options value: unchanged fields are omitted.
const None Options = 0

// Forced reports whether o requires a write regardless of change.
func (o Options) Forced() bool {
	return o&(FullSerialize|RootSerialize) != 0
}

// Has reports whether every flag in f is set in o.
func (o Options) Has(f Options) bool {
	return o&f == f
}
