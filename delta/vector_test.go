package delta

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tickwire/buffer"
	"github.com/arloliu/tickwire/format"
)

func TestVec3_SparseAxes(t *testing.T) {
	prev := Vec3[float32]{X: 1, Y: 2, Z: 3}
	next := Vec3[float32]{X: 1, Y: 2.5, Z: 3}

	w := buffer.NewWriter()
	require.True(t, WriteVec3(w, prev, next, None))
	// mask, tier byte, 16-bit payload for 500 units
	require.Equal(t, []byte{AxisY, byte(format.Tier16 | format.TierNextLarger), 0xF4, 0x01}, w.Bytes())

	r := buffer.NewReader(w.Bytes())
	got := ReadVec3(r, prev)
	require.NoError(t, r.Err())
	require.Equal(t, prev.X, got.X)
	require.InDelta(t, next.Y, got.Y, 1.0/FloatAccuracy)
	require.Equal(t, prev.Z, got.Z)
}

func TestVec3_AllAxes(t *testing.T) {
	prev := Vec3[float64]{X: -10, Y: 0, Z: 1e6}
	next := Vec3[float64]{X: 10, Y: -0.25, Z: 1e6 + 0.0025}

	w := buffer.NewWriter()
	require.True(t, WriteVec3(w, prev, next, None))
	require.Equal(t, AxisX|AxisY|AxisZ, w.Bytes()[0])

	r := buffer.NewReader(w.Bytes())
	got := ReadVec3(r, prev)
	require.NoError(t, r.Err())
	require.InDelta(t, next.X, got.X, 1.0/FloatAccuracy)
	require.InDelta(t, next.Y, got.Y, 1.0/FloatAccuracy)
	require.InDelta(t, next.Z, got.Z, 1.0/FloatAccuracy)
}

func TestVec2_Unchanged(t *testing.T) {
	v := Vec2[float64]{X: 4, Y: 5}
	w := buffer.NewWriter()

	require.False(t, WriteVec2(w, v, Vec2[float64]{X: 4.0004, Y: 5}, None))
	require.Equal(t, 0, w.Length())

	require.True(t, WriteVec2(w, v, v, RootSerialize))
	require.Equal(t, []byte{0}, w.Bytes())

	r := buffer.NewReader(w.Bytes())
	require.Equal(t, v, ReadVec2(r, v))
}

func TestVec2_BadMask(t *testing.T) {
	r := buffer.NewReader([]byte{AxisZ})
	require.Equal(t, Vec2[float32]{}, ReadVec2(r, Vec2[float32]{X: 1, Y: 1}))
}
