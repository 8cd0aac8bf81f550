package buffer

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/arloliu/tickwire/endian"
	"github.com/arloliu/tickwire/internal/logging"
	"github.com/arloliu/tickwire/internal/metrics"
	"github.com/arloliu/tickwire/packed"
)

// Reader is a bounded view over caller-owned bytes with a read cursor.
//
// Invariant: Offset <= Position <= Offset+Length.
type Reader struct {
	data   []byte
	offset int
	end    int
	pos    int
	err    error
	engine endian.EndianEngine
}

// NewReader creates a Reader over all of data.
func NewReader(data []byte) *Reader {
	r := &Reader{engine: endian.Wire()}
	r.Reset(data)

	return r
}

// NewReaderAt creates a Reader over data[offset:offset+length].
func NewReaderAt(data []byte, offset, length int) (*Reader, error) {
	r := &Reader{engine: endian.Wire()}
	if err := r.ResetAt(data, offset, length); err != nil {
		return nil, err
	}

	return r, nil
}

// Reset points the Reader at all of data and clears any recorded error.
func (r *Reader) Reset(data []byte) {
	r.data = data
	r.offset = 0
	r.end = len(data)
	r.pos = 0
	r.err = nil
}

// ResetAt points the Reader at data[offset:offset+length] and clears any recorded error.
func (r *Reader) ResetAt(data []byte, offset, length int) error {
	if offset < 0 || length < 0 || offset+length > len(data) {
		return fmt.Errorf("%w: offset=%d length=%d size=%d", ErrInvalidWindow, offset, length, len(data))
	}
	r.data = data
	r.offset = offset
	r.end = offset + length
	r.pos = offset
	r.err = nil

	return nil
}

// Position returns the absolute offset of the next read in the backing slice.
func (r *Reader) Position() int { return r.pos }

// Offset returns the absolute start of the window.
func (r *Reader) Offset() int { return r.offset }

// Length returns the size of the window.
func (r *Reader) Length() int { return r.end - r.offset }

// Remaining returns the number of unread bytes in the window.
func (r *Reader) Remaining() int { return r.end - r.pos }

// Err returns the first error recorded by a read, or nil.
func (r *Reader) Err() error { return r.err }

// Fail records err as the Reader's error if none is recorded yet. Codecs built
// on top of the Reader use it to stop decoding a message they found corrupt.
func (r *Reader) Fail(err error) {
	if r.err != nil || err == nil {
		return
	}
	r.err = err

	switch {
	case errors.Is(err, ErrShortBuffer):
		metrics.ShortReads.Inc()
	case errors.Is(err, ErrMalformedLength):
		metrics.MalformedLength.Inc()
	}

	logging.Named("buffer").Warn("reader failed",
		zap.Error(err),
		zap.Int("position", r.pos),
		zap.Int("remaining", r.Remaining()),
	)
}

// take consumes n bytes, or records ErrShortBuffer and returns nil.
func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || n > r.Remaining() {
		r.Fail(fmt.Errorf("%w: need %d bytes, have %d", ErrShortBuffer, n, r.Remaining()))
		return nil
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n

	return b
}

// Skip advances the cursor by n bytes.
func (r *Reader) Skip(n int) {
	r.take(n)
}

// PeekByte returns the next byte without consuming it. It reports false when the
// window is exhausted or the Reader has failed; peeking never records an error.
func (r *Reader) PeekByte() (byte, bool) {
	if r.err != nil || r.Remaining() < 1 {
		return 0, false
	}

	return r.data[r.pos], true
}

// PeekPacketID returns the next 16-bit packet identifier without consuming it.
func (r *Reader) PeekPacketID() (uint16, bool) {
	if r.err != nil || r.Remaining() < 2 {
		return 0, false
	}

	return r.engine.Uint16(r.data[r.pos:]), true
}

// ReadPacketID reads a 16-bit packet identifier.
func (r *Reader) ReadPacketID() uint16 { return r.ReadUint16() }

// ReadUint8 reads one byte.
func (r *Reader) ReadUint8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}

	return b[0]
}

// ReadInt8 reads one two's-complement byte.
func (r *Reader) ReadInt8() int8 { return int8(r.ReadUint8()) } //nolint:gosec

// ReadBool reads a byte and reports whether it is non-zero.
func (r *Reader) ReadBool() bool { return r.ReadUint8() != 0 }

// ReadUint16 reads 2 little-endian bytes.
func (r *Reader) ReadUint16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}

	return r.engine.Uint16(b)
}

// ReadInt16 reads 2 little-endian two's-complement bytes.
func (r *Reader) ReadInt16() int16 { return int16(r.ReadUint16()) } //nolint:gosec

// ReadUint32 reads 4 little-endian bytes.
func (r *Reader) ReadUint32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}

	return r.engine.Uint32(b)
}

// ReadInt32 reads 4 little-endian two's-complement bytes.
func (r *Reader) ReadInt32() int32 { return int32(r.ReadUint32()) } //nolint:gosec

// ReadUint64 reads 8 little-endian bytes.
func (r *Reader) ReadUint64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}

	return r.engine.Uint64(b)
}

// ReadInt64 reads 8 little-endian two's-complement bytes.
func (r *Reader) ReadInt64() int64 { return int64(r.ReadUint64()) } //nolint:gosec

// ReadUint128 reads two 64-bit words, low word first.
func (r *Reader) ReadUint128() (lo, hi uint64) {
	b := r.take(16)
	if b == nil {
		return 0, 0
	}

	return endian.Uint128(r.engine, b)
}

// ReadFloat32 reads a value written by WriteFloat32.
func (r *Reader) ReadFloat32() float32 { return math.Float32frombits(r.ReadUint32()) }

// ReadFloat64 reads a value written by WriteFloat64.
func (r *Reader) ReadFloat64() float64 { return math.Float64frombits(r.ReadUint64()) }

// ReadPackedWhole reads a packed whole number.
func (r *Reader) ReadPackedWhole() uint64 {
	if r.err != nil {
		return 0
	}

	v, n, err := packed.Whole(r.data[r.pos:r.end])
	if err != nil {
		if errors.Is(err, packed.ErrTruncated) {
			err = fmt.Errorf("%w: %w", ErrShortBuffer, err)
		}
		r.Fail(err)

		return 0
	}
	r.pos += n

	return v
}

// ReadPackedInt reads a zigzag-folded packed whole number.
func (r *Reader) ReadPackedInt() int64 {
	return packed.ZigZagDecode(r.ReadPackedWhole())
}

// ReadPackedFloat32 reads a value written by WritePackedFloat32.
func (r *Reader) ReadPackedFloat32() float32 {
	return float32(float64(r.ReadPackedInt()) / packedFloatScale)
}

// ReadLength reads a length prefix. It returns null=true for NullLength. A negative
// prefix other than NullLength, or one larger than the remaining bytes, records
// ErrMalformedLength and returns (0, false).
func (r *Reader) ReadLength() (n int, null bool) {
	v := r.ReadPackedInt()
	if r.err != nil {
		return 0, false
	}
	if v == NullLength {
		return 0, true
	}
	if v < 0 || v > int64(r.Remaining()) {
		r.Fail(fmt.Errorf("%w: declared %d, remaining %d", ErrMalformedLength, v, r.Remaining()))
		return 0, false
	}

	return int(v), false
}

// ReadString reads a length-prefixed UTF-8 string. Null decodes as "".
func (r *Reader) ReadString() string {
	n, _ := r.ReadLength()
	if n == 0 {
		return ""
	}

	return string(r.take(n))
}

// ReadStringPtr reads a string written by WriteStringPtr, returning nil for null.
func (r *Reader) ReadStringPtr() *string {
	n, null := r.ReadLength()
	if null || r.err != nil {
		return nil
	}
	s := string(r.take(n))

	return &s
}

// ReadBytes reads a length-prefixed block into a new slice. Null decodes as nil,
// an empty block as a non-nil empty slice.
func (r *Reader) ReadBytes() []byte {
	n, null := r.ReadLength()
	if null || r.err != nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, r.take(n))

	return out
}

// ReadRaw copies the next n bytes into a new slice.
func (r *Reader) ReadRaw(n int) []byte {
	b := r.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)

	return out
}

// ReadRawView returns the next n bytes without copying. The slice aliases the
// caller's backing array.
func (r *Reader) ReadRawView(n int) []byte {
	return r.take(n)
}
