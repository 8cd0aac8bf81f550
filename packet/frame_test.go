package packet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tickwire/buffer"
	"github.com/arloliu/tickwire/compress"
	"github.com/arloliu/tickwire/format"
	"github.com/arloliu/tickwire/packed"
)

var compressions = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

func TestEncode_WireLayout(t *testing.T) {
	w := buffer.NewWriter()
	require.NoError(t, Encode(w, 0x0102, []byte("hi"), format.CompressionNone))
	require.Equal(t, []byte{0x02, 0x01, 0x01, 0x02, 'h', 'i'}, w.Bytes())
}

func TestFrame_RoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"empty":    {},
		"small":    []byte("tick"),
		"snapshot": bytes.Repeat([]byte("entity 3 pos 10.5 20.25 -1.0;"), 300),
	}

	for _, ct := range compressions {
		t.Run(ct.String(), func(t *testing.T) {
			for name, payload := range payloads {
				t.Run(name, func(t *testing.T) {
					w := buffer.NewWriter()
					require.NoError(t, Encode(w, 42, payload, ct))

					r := buffer.NewReader(w.Bytes())
					id, ok := r.PeekPacketID()
					require.True(t, ok)
					require.Equal(t, uint16(42), id)

					id, got, err := Decode(r)
					require.NoError(t, err)
					require.Equal(t, uint16(42), id)
					require.Equal(t, len(payload), len(got))
					if len(payload) > 0 {
						require.Equal(t, payload, got)
					}
					require.Zero(t, r.Remaining())
				})
			}
		})
	}
}

func TestFrame_Concatenated(t *testing.T) {
	w := buffer.NewWriter()
	for i, ct := range compressions {
		require.NoError(t, Encode(w, uint16(i+1), bytes.Repeat([]byte{byte(i)}, 100), ct))
	}

	r := buffer.NewReader(w.Bytes())
	for i := range compressions {
		id, payload, err := Decode(r)
		require.NoError(t, err)
		require.Equal(t, uint16(i+1), id)
		require.Equal(t, bytes.Repeat([]byte{byte(i)}, 100), payload)
	}
	require.Zero(t, r.Remaining())
}

func TestEncode_UnknownCompression(t *testing.T) {
	w := buffer.NewWriter()
	err := Encode(w, 1, []byte("x"), format.CompressionType(0x7F))
	require.ErrorIs(t, err, ErrUnknownCompression)
	require.ErrorIs(t, err, compress.ErrUnsupported)
	require.Zero(t, w.Length())
}

func TestEncode_TooLarge(t *testing.T) {
	w := buffer.NewWriter()
	err := Encode(w, 1, make([]byte, MaxBodySize+1), format.CompressionNone)
	require.ErrorIs(t, err, ErrFrameTooLarge)
	require.Zero(t, w.Length())
}

func TestDecode_UnknownCompressionSkipsFrame(t *testing.T) {
	w := buffer.NewWriter()
	w.WritePacketID(7)
	w.WriteUint8(0x7F)
	w.WritePackedWhole(3)
	w.WriteRaw([]byte("abc"))
	require.NoError(t, Encode(w, 8, []byte("ok"), format.CompressionNone))

	r := buffer.NewReader(w.Bytes())
	id, _, err := Decode(r)
	require.ErrorIs(t, err, ErrUnknownCompression)
	require.Equal(t, uint16(7), id)
	require.NoError(t, r.Err())

	id, payload, err := Decode(r)
	require.NoError(t, err)
	require.Equal(t, uint16(8), id)
	require.Equal(t, []byte("ok"), payload)
}

func TestDecode_CorruptBody(t *testing.T) {
	w := buffer.NewWriter()
	w.WritePacketID(1)
	w.WriteUint8(uint8(format.CompressionZstd))
	w.WritePackedWhole(4)
	w.WriteRaw([]byte{1, 2, 3, 4})

	_, _, err := Decode(buffer.NewReader(w.Bytes()))
	require.ErrorIs(t, err, compress.ErrCorrupt)
}

func TestDecode_Truncated(t *testing.T) {
	frame, err := Append(nil, 3, []byte("payload"), format.CompressionNone)
	require.NoError(t, err)

	for cut := range len(frame) {
		r := buffer.NewReader(frame[:cut])
		_, _, err := Decode(r)
		require.ErrorIs(t, err, buffer.ErrShortBuffer, "cut=%d", cut)
		require.Error(t, r.Err())
	}
}

func TestDecode_DeclaredTooLarge(t *testing.T) {
	frame := []byte{0x01, 0x00, uint8(format.CompressionNone)}
	frame = packed.AppendWhole(frame, MaxBodySize+1)

	r := buffer.NewReader(frame)
	_, _, err := Decode(r)
	require.ErrorIs(t, err, ErrFrameTooLarge)
	require.ErrorIs(t, r.Err(), ErrFrameTooLarge)
}

func TestSkip(t *testing.T) {
	w := buffer.NewWriter()
	require.NoError(t, Encode(w, 5, bytes.Repeat([]byte("z"), 64), format.CompressionS2))
	require.NoError(t, Encode(w, 6, []byte("next"), format.CompressionNone))

	r := buffer.NewReader(w.Bytes())
	h, err := Skip(r)
	require.NoError(t, err)
	require.Equal(t, uint16(5), h.ID)
	require.Equal(t, format.CompressionS2, h.Compression)
	require.Positive(t, h.BodyLen)

	id, payload, err := Decode(r)
	require.NoError(t, err)
	require.Equal(t, uint16(6), id)
	require.Equal(t, []byte("next"), payload)
}
