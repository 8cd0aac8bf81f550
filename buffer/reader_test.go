package buffer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_RoundTrip(t *testing.T) {
	s := "ünïcode"
	w := NewWriter(WithInitialCapacity(8))
	w.WriteUint8(200)
	w.WriteInt8(-100)
	w.WriteBool(true)
	w.WriteUint16(65000)
	w.WriteInt16(-32000)
	w.WriteUint32(4000000000)
	w.WriteInt32(-2000000000)
	w.WriteUint64(math.MaxUint64)
	w.WriteInt64(math.MinInt64)
	w.WriteUint128(1, 2)
	w.WriteFloat32(3.25)
	w.WriteFloat64(-1e300)
	w.WritePackedWhole(1 << 40)
	w.WritePackedInt(-123456)
	w.WriteString("hello")
	w.WriteStringPtr(&s)
	w.WriteStringPtr(nil)
	w.WriteBytes([]byte{9, 8, 7})
	w.WriteBytes(nil)
	w.WriteBytes([]byte{})
	w.WriteRaw([]byte{1, 2})

	r := NewReader(w.Bytes())
	assert.Equal(t, uint8(200), r.ReadUint8())
	assert.Equal(t, int8(-100), r.ReadInt8())
	assert.True(t, r.ReadBool())
	assert.Equal(t, uint16(65000), r.ReadUint16())
	assert.Equal(t, int16(-32000), r.ReadInt16())
	assert.Equal(t, uint32(4000000000), r.ReadUint32())
	assert.Equal(t, int32(-2000000000), r.ReadInt32())
	assert.Equal(t, uint64(math.MaxUint64), r.ReadUint64())
	assert.Equal(t, int64(math.MinInt64), r.ReadInt64())
	lo, hi := r.ReadUint128()
	assert.Equal(t, uint64(1), lo)
	assert.Equal(t, uint64(2), hi)
	assert.Equal(t, float32(3.25), r.ReadFloat32())
	assert.Equal(t, -1e300, r.ReadFloat64())
	assert.Equal(t, uint64(1<<40), r.ReadPackedWhole())
	assert.Equal(t, int64(-123456), r.ReadPackedInt())
	assert.Equal(t, "hello", r.ReadString())
	got := r.ReadStringPtr()
	require.NotNil(t, got)
	assert.Equal(t, s, *got)
	assert.Nil(t, r.ReadStringPtr())
	assert.Equal(t, []byte{9, 8, 7}, r.ReadBytes())
	assert.Nil(t, r.ReadBytes())
	empty := r.ReadBytes()
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
	assert.Equal(t, []byte{1, 2}, r.ReadRaw(2))

	require.NoError(t, r.Err())
	require.Equal(t, 0, r.Remaining())
}

func TestReader_PackedFloatTwoDigits(t *testing.T) {
	tests := []struct {
		in   float32
		want float32
	}{
		{0, 0},
		{1.5, 1.5},
		{-3.14159, -3.14},
		{12.345, 12.35},
		{0.004, 0},
	}

	for _, tt := range tests {
		w := NewWriter()
		w.WritePackedFloat32(tt.in)
		r := NewReader(w.Bytes())
		assert.InDelta(t, tt.want, r.ReadPackedFloat32(), 1e-4, "input %v", tt.in)
	}
}

func TestReader_StickyShortBuffer(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03})

	assert.Equal(t, uint16(0x0201), r.ReadUint16())
	assert.Equal(t, uint32(0), r.ReadUint32())
	require.ErrorIs(t, r.Err(), ErrShortBuffer)

	// every later read yields zero even though a byte remains
	assert.Equal(t, uint8(0), r.ReadUint8())
	assert.Equal(t, "", r.ReadString())
	assert.Nil(t, r.ReadBytes())
	_, ok := r.PeekByte()
	assert.False(t, ok)
	require.ErrorIs(t, r.Err(), ErrShortBuffer)
}

func TestReader_TruncatedPackedWhole(t *testing.T) {
	r := NewReader([]byte{0x80, 0x80})
	assert.Equal(t, uint64(0), r.ReadPackedWhole())
	require.ErrorIs(t, r.Err(), ErrShortBuffer)
}

func TestReader_MalformedLength(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"negative", []byte{0x03}},         // zigzag -2
		{"too long", []byte{0x0A, 'a', 'b'}}, // declares 5 bytes
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(tt.data)
			assert.Equal(t, "", r.ReadString())
			require.ErrorIs(t, r.Err(), ErrMalformedLength)
		})
	}
}

func TestReader_ReadLengthNull(t *testing.T) {
	w := NewWriter()
	w.WriteLength(NullLength)
	w.WriteLength(0)

	r := NewReader(w.Bytes())
	n, null := r.ReadLength()
	assert.True(t, null)
	assert.Equal(t, 0, n)
	n, null = r.ReadLength()
	assert.False(t, null)
	assert.Equal(t, 0, n)
	require.NoError(t, r.Err())
}

func TestReader_Window(t *testing.T) {
	data := []byte{0xFF, 0x10, 0x00, 0x20, 0xFF}

	r, err := NewReaderAt(data, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Offset())
	assert.Equal(t, 3, r.Length())
	assert.Equal(t, 1, r.Position())

	id, ok := r.PeekPacketID()
	require.True(t, ok)
	assert.Equal(t, uint16(0x0010), id)
	assert.Equal(t, 3, r.Remaining(), "peeking does not consume")

	assert.Equal(t, uint16(0x0010), r.ReadPacketID())
	b, ok := r.PeekByte()
	require.True(t, ok)
	assert.Equal(t, byte(0x20), b)

	r.Skip(1)
	assert.Equal(t, 0, r.Remaining())
	_, ok = r.PeekPacketID()
	assert.False(t, ok)
	require.NoError(t, r.Err())

	r.Skip(1)
	require.ErrorIs(t, r.Err(), ErrShortBuffer)

	_, err = NewReaderAt(data, 3, 3)
	require.ErrorIs(t, err, ErrInvalidWindow)
	_, err = NewReaderAt(data, -1, 1)
	require.ErrorIs(t, err, ErrInvalidWindow)
}

func TestReader_RawViewAliases(t *testing.T) {
	data := []byte{1, 2, 3}
	r := NewReader(data)

	view := r.ReadRawView(2)
	data[0] = 9
	assert.Equal(t, byte(9), view[0])

	r.Reset(data)
	cp := r.ReadRaw(2)
	data[0] = 1
	assert.Equal(t, byte(9), cp[0])
}

func BenchmarkReader_Mixed(b *testing.B) {
	w := NewWriter()
	w.WriteUint16(12)
	w.WritePackedWhole(300)
	w.WritePackedInt(-42)
	w.WriteFloat32(1.5)
	w.WriteString("player")
	data := w.Bytes()
	r := NewReader(data)

	b.ReportAllocs()
	for b.Loop() {
		r.Reset(data)
		_ = r.ReadUint16()
		_ = r.ReadPackedWhole()
		_ = r.ReadPackedInt()
		_ = r.ReadFloat32()
		_ = r.ReadString()
	}
}
