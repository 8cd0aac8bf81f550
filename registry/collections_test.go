package registry

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/tickwire/buffer"
	"github.com/arloliu/tickwire/delta"
)

func newBuiltins(t *testing.T) *Registry {
	t.Helper()
	reg := New()
	RegisterBuiltins(reg)

	return reg
}

func TestBuiltins_RoundTrip(t *testing.T) {
	reg := newBuiltins(t)
	w := buffer.NewWriter()

	require.NoError(t, Write(reg, w, true))
	require.NoError(t, Write(reg, w, int8(-3)))
	require.NoError(t, Write(reg, w, -70000))
	require.NoError(t, Write(reg, w, uint(1<<40)))
	require.NoError(t, Write(reg, w, float32(1.25)))
	require.NoError(t, Write(reg, w, "tick"))
	require.NoError(t, Write(reg, w, []byte{1, 2}))
	require.NoError(t, Write(reg, w, decimal.RequireFromString("12.345")))
	require.NoError(t, Write(reg, w, delta.Vec3[float32]{X: 1, Y: 2, Z: 3}))
	require.NoError(t, Write(reg, w, delta.IdentityRotation()))

	r := buffer.NewReader(w.Bytes())
	assert.True(t, Read[bool](reg, r))
	assert.Equal(t, int8(-3), Read[int8](reg, r))
	assert.Equal(t, -70000, Read[int](reg, r))
	assert.Equal(t, uint(1<<40), Read[uint](reg, r))
	assert.Equal(t, float32(1.25), Read[float32](reg, r))
	assert.Equal(t, "tick", Read[string](reg, r))
	assert.Equal(t, []byte{1, 2}, Read[[]byte](reg, r))
	assert.True(t, decimal.RequireFromString("12.345").Equal(Read[decimal.Decimal](reg, r)))
	assert.Equal(t, delta.Vec3[float32]{X: 1, Y: 2, Z: 3}, Read[delta.Vec3[float32]](reg, r))
	assert.Equal(t, delta.IdentityRotation(), Read[delta.Rotation](reg, r))
	require.NoError(t, r.Err())
	require.Equal(t, 0, r.Remaining())
}

func TestBuiltins_Delta(t *testing.T) {
	reg := newBuiltins(t)
	w := buffer.NewWriter()

	require.False(t, WriteDelta(reg, w, int32(7), int32(7), delta.None))
	require.True(t, WriteDelta(reg, w, int32(7), int32(9), delta.None))
	require.True(t, WriteDelta(reg, w, 1.0, 2.5, delta.None))
	require.True(t, WriteDelta(reg, w, delta.Vec2[float64]{}, delta.Vec2[float64]{Y: 3}, delta.None))

	r := buffer.NewReader(w.Bytes())
	assert.Equal(t, int32(9), ReadDelta(reg, r, int32(7)))
	assert.InDelta(t, 2.5, ReadDelta(reg, r, 1.0), 1e-3)
	assert.InDelta(t, 3.0, ReadDelta(reg, r, delta.Vec2[float64]{}).Y, 1e-3)
	require.NoError(t, r.Err())
}

func TestSlice(t *testing.T) {
	reg := newBuiltins(t)
	w := buffer.NewWriter()

	require.NoError(t, WriteSlice(reg, w, []string{"a", "", "c"}))
	require.NoError(t, WriteSlice[int32](reg, w, nil))
	require.NoError(t, WriteSlice(reg, w, []int32{}))

	r := buffer.NewReader(w.Bytes())
	assert.Equal(t, []string{"a", "", "c"}, ReadSlice[string](reg, r))
	assert.Nil(t, ReadSlice[int32](reg, r))
	empty := ReadSlice[int32](reg, r)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
	require.NoError(t, r.Err())
}

func TestSlice_MalformedCount(t *testing.T) {
	reg := newBuiltins(t)
	w := buffer.NewWriter()
	w.WriteLength(1 << 30)

	r := buffer.NewReader(w.Bytes())
	require.Nil(t, ReadSlice[int64](reg, r))
	require.ErrorIs(t, r.Err(), buffer.ErrMalformedLength)
}

func TestSlice_Unregistered(t *testing.T) {
	reg := New()
	w := buffer.NewWriter()
	require.ErrorIs(t, WriteSlice(reg, w, []player{{}}), ErrUnregistered)
	require.Equal(t, 0, w.Length())
}

func TestMap(t *testing.T) {
	reg := newBuiltins(t)
	in := map[string]int32{"hp": 100, "mp": -5, "xp": 1 << 20}

	w := buffer.NewWriter()
	require.NoError(t, WriteMap(reg, w, in))
	require.NoError(t, WriteMap[string, int32](reg, w, nil))

	r := buffer.NewReader(w.Bytes())
	assert.Equal(t, in, ReadMap[string, int32](reg, r))
	assert.Nil(t, ReadMap[string, int32](reg, r))
	require.NoError(t, r.Err())
}

func TestPtr(t *testing.T) {
	reg := newBuiltins(t)
	v := uint16(512)

	w := buffer.NewWriter()
	require.NoError(t, WritePtr(reg, w, &v))
	require.NoError(t, WritePtr[uint16](reg, w, nil))

	r := buffer.NewReader(w.Bytes())
	got := ReadPtr[uint16](reg, r)
	require.NotNil(t, got)
	assert.Equal(t, v, *got)
	assert.Nil(t, ReadPtr[uint16](reg, r))
}

func TestAny(t *testing.T) {
	reg := newBuiltins(t)
	Register(reg, Custom, writePlayerV1, readPlayerV1)

	values := []any{int64(-9), "text", player{Name: "bo", Score: 3}, nil, delta.Vec2[float32]{X: 1}}

	w := buffer.NewWriter()
	for _, v := range values {
		require.NoError(t, reg.WriteAny(w, v))
	}

	r := buffer.NewReader(w.Bytes())
	for _, want := range values {
		assert.Equal(t, want, reg.ReadAny(r))
	}
	require.NoError(t, r.Err())

	require.ErrorIs(t, reg.WriteAny(w, struct{}{}), ErrUnregistered)
}

func TestAny_UnknownID(t *testing.T) {
	reg := newBuiltins(t)
	w := buffer.NewWriter()
	w.WritePackedWhole(TypeID[player]())
	w.WriteUint32(1)

	r := buffer.NewReader(w.Bytes())
	require.Nil(t, reg.ReadAny(r))
	require.ErrorIs(t, r.Err(), ErrUnknownTypeID)
}

func TestBuiltins_RotationOptions(t *testing.T) {
	prev := delta.RotationFromAxisAngle(0, 1, 0, 10)

	t.Run("defaults", func(t *testing.T) {
		reg := newBuiltins(t)
		require.InDelta(t, delta.DefaultRotationPrecision, reg.RotationPrecision(), 1e-12)
		require.Zero(t, reg.RotationEpsilon())
	})

	t.Run("precision", func(t *testing.T) {
		coarse := New(WithRotationPrecision(1))
		RegisterBuiltins(coarse)
		fine := newBuiltins(t)

		next := delta.RotationFromAxisAngle(0, 1, 0, 11.4)
		wc, wf := buffer.NewWriter(), buffer.NewWriter()
		require.True(t, WriteDelta(coarse, wc, prev, next, delta.None))
		require.True(t, WriteDelta(fine, wf, prev, next, delta.None))
		require.Less(t, wc.Length(), wf.Length())

		got := ReadDelta(coarse, buffer.NewReader(wc.Bytes()), prev)
		require.LessOrEqual(t, got.AngleTo(next), 2.0)

		// decoding with a different precision rebuilds the wrong angle
		got = ReadDelta(fine, buffer.NewReader(wc.Bytes()), prev)
		require.Greater(t, got.AngleTo(next), 0.1)
	})

	t.Run("epsilon", func(t *testing.T) {
		reg := New(WithRotationEpsilon(0.5))
		RegisterBuiltins(reg)

		w := buffer.NewWriter()
		require.False(t, WriteDelta(reg, w, prev, delta.RotationFromAxisAngle(0, 1, 0, 10.3), delta.None))
		require.Zero(t, w.Length())

		require.True(t, WriteDelta(reg, w, prev, delta.RotationFromAxisAngle(0, 1, 0, 10.3), delta.FullSerialize))
		w.Reset()
		require.True(t, WriteDelta(reg, w, prev, delta.RotationFromAxisAngle(0, 1, 0, 11), delta.None))
	})
}
