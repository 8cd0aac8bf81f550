package endian

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWireIsLittleEndian(t *testing.T) {
	engine := Wire()

	buf := engine.AppendUint32(nil, 0x01020304)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, buf)
	require.Equal(t, uint32(0x01020304), engine.Uint32(buf))
}

func TestUint128RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi uint64
	}{
		{"zero", 0, 0},
		{"low only", 0xDEADBEEF, 0},
		{"high only", 0, 1},
		{"max", math.MaxUint64, math.MaxUint64},
	}

	engine := Wire()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, 16)
			PutUint128(engine, buf, tt.lo, tt.hi)

			lo, hi := Uint128(engine, buf)
			require.Equal(t, tt.lo, lo)
			require.Equal(t, tt.hi, hi)
			require.Equal(t, tt.lo, engine.Uint64(buf[:8]), "low word comes first")
		})
	}
}

func TestUint128ShortBufferPanics(t *testing.T) {
	require.Panics(t, func() {
		PutUint128(Wire(), make([]byte, 15), 1, 2)
	})
	require.Panics(t, func() {
		Uint128(Wire(), make([]byte, 8))
	})
}

func BenchmarkWireAppendUint64(b *testing.B) {
	engine := Wire()
	buf := make([]byte, 0, 8)
	for b.Loop() {
		buf = engine.AppendUint64(buf[:0], 0x0102030405060708)
	}
}
