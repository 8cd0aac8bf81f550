package buffer

import (
	"math"

	"github.com/arloliu/tickwire/endian"
	"github.com/arloliu/tickwire/internal/options"
	"github.com/arloliu/tickwire/packed"
)

const (
	// DefaultWriterCapacity is the initial capacity of a Writer built without options.
	DefaultWriterCapacity = 1024
	// NullLength is the length prefix that encodes a nil string, byte slice or collection.
	NullLength = -1
	// packedFloatScale is the fixed scale of the lossy packed float mode (two decimal digits).
	packedFloatScale = 100
	twoPow63         = float64(1 << 63)
)

// Writer is a growable byte buffer with a write cursor.
//
// Invariant: 0 <= Position <= Length <= Capacity.
type Writer struct {
	buf    []byte // len(buf) is the capacity
	pos    int
	length int
	engine endian.EndianEngine
}

// WriterOption configures a Writer.
type WriterOption = options.Option[*Writer]

// WithInitialCapacity sets the size of the Writer's first allocation.
func WithInitialCapacity(n int) WriterOption {
	return options.NoError(func(w *Writer) {
		if n > 0 {
			w.buf = make([]byte, n)
		}
	})
}

// NewWriter creates a Writer. Without options it starts with DefaultWriterCapacity bytes.
func NewWriter(opts ...WriterOption) *Writer {
	w := &Writer{engine: endian.Wire()}
	_ = options.Apply(w, opts...)
	if w.buf == nil {
		w.buf = make([]byte, DefaultWriterCapacity)
	}

	return w
}

// Position returns the offset of the next write.
func (w *Writer) Position() int { return w.pos }

// Length returns the number of populated bytes.
func (w *Writer) Length() int { return w.length }

// Capacity returns the allocated size.
func (w *Writer) Capacity() int { return len(w.buf) }

// Bytes returns the populated bytes. The slice aliases the Writer's storage and is
// valid until the next write or Reset.
func (w *Writer) Bytes() []byte { return w.buf[:w.length] }

// Reset empties the Writer while keeping its storage.
func (w *Writer) Reset() {
	w.pos = 0
	w.length = 0
}

// SetPosition moves the cursor within the populated range.
//
// Panics if pos is outside [0, Length]; seeking is a programming decision, never
// driven by wire data.
func (w *Writer) SetPosition(pos int) {
	if pos < 0 || pos > w.length {
		panic("buffer: SetPosition out of range")
	}
	w.pos = pos
}

// Reserve writes n zero bytes and returns the position of the first one so the
// caller can patch it later.
func (w *Writer) Reserve(n int) int {
	at := w.pos
	b := w.next(n)
	clear(b)

	return at
}

// PatchUint8 overwrites a previously written byte without moving the cursor.
func (w *Writer) PatchUint8(at int, v uint8) {
	if at < 0 || at >= w.length {
		panic("buffer: PatchUint8 out of range")
	}
	w.buf[at] = v
}

// grow ensures n more bytes fit at the cursor.
func (w *Writer) grow(n int) {
	if w.pos+n <= len(w.buf) {
		return
	}

	newCap := 2*len(w.buf) + n
	next := make([]byte, newCap)
	copy(next, w.buf[:w.length])
	w.buf = next
}

// next returns the n-byte window at the cursor and advances past it.
func (w *Writer) next(n int) []byte {
	w.grow(n)
	b := w.buf[w.pos : w.pos+n]
	w.pos += n
	if w.pos > w.length {
		w.length = w.pos
	}

	return b
}

// Write implements io.Writer by appending p at the cursor. It never fails.
func (w *Writer) Write(p []byte) (int, error) {
	w.WriteRaw(p)
	return len(p), nil
}

// WriteRaw writes p without a length prefix.
func (w *Writer) WriteRaw(p []byte) {
	copy(w.next(len(p)), p)
}

// WriteUint8 writes one byte.
func (w *Writer) WriteUint8(v uint8) { w.next(1)[0] = v }

// WriteInt8 writes v as one two's-complement byte.
func (w *Writer) WriteInt8(v int8) { w.next(1)[0] = byte(v) } //nolint:gosec

// WriteBool writes 1 for true and 0 for false.
func (w *Writer) WriteBool(v bool) {
	var b byte
	if v {
		b = 1
	}
	w.next(1)[0] = b
}

// WriteUint16 writes v as 2 little-endian bytes.
func (w *Writer) WriteUint16(v uint16) { w.engine.PutUint16(w.next(2), v) }

// WriteInt16 writes v as 2 little-endian two's-complement bytes.
func (w *Writer) WriteInt16(v int16) { w.engine.PutUint16(w.next(2), uint16(v)) } //nolint:gosec

// WriteUint32 writes v as 4 little-endian bytes.
func (w *Writer) WriteUint32(v uint32) { w.engine.PutUint32(w.next(4), v) }

// WriteInt32 writes v as 4 little-endian two's-complement bytes.
func (w *Writer) WriteInt32(v int32) { w.engine.PutUint32(w.next(4), uint32(v)) } //nolint:gosec

// WriteUint64 writes v as 8 little-endian bytes.
func (w *Writer) WriteUint64(v uint64) { w.engine.PutUint64(w.next(8), v) }

// WriteInt64 writes v as 8 little-endian two's-complement bytes.
func (w *Writer) WriteInt64(v int64) { w.engine.PutUint64(w.next(8), uint64(v)) } //nolint:gosec

// WriteUint128 writes a 128-bit value as two 64-bit words, low word first.
func (w *Writer) WriteUint128(lo, hi uint64) {
	endian.PutUint128(w.engine, w.next(16), lo, hi)
}

// WriteFloat32 writes the IEEE-754 bits of v.
func (w *Writer) WriteFloat32(v float32) { w.WriteUint32(math.Float32bits(v)) }

// WriteFloat64 writes the IEEE-754 bits of v.
func (w *Writer) WriteFloat64(v float64) { w.WriteUint64(math.Float64bits(v)) }

// WritePackedWhole writes v in the packed whole-number format.
func (w *Writer) WritePackedWhole(v uint64) {
	w.grow(packed.MaxLen)
	n := packed.PutWhole(w.buf[w.pos:], v)
	w.pos += n
	if w.pos > w.length {
		w.length = w.pos
	}
}

// WritePackedInt zigzag-folds v and writes it as a packed whole number.
func (w *Writer) WritePackedInt(v int64) {
	w.WritePackedWhole(packed.ZigZagEncode(v))
}

// WritePackedFloat32 writes v as a packed count of hundredths. This is lossy:
// only two decimal digits survive, and magnitudes beyond int64 hundredths saturate.
func (w *Writer) WritePackedFloat32(v float32) {
	scaled := math.Round(float64(v) * packedFloatScale)

	var q int64
	switch {
	case math.IsNaN(scaled):
		q = 0
	case scaled >= twoPow63:
		q = math.MaxInt64
	case scaled < -twoPow63:
		q = math.MinInt64
	default:
		q = int64(scaled)
	}
	w.WritePackedInt(q)
}

// WriteLength writes a length prefix. n must be NullLength or non-negative.
func (w *Writer) WriteLength(n int) {
	if n < NullLength {
		panic("buffer: negative length prefix")
	}
	w.WritePackedInt(int64(n))
}

// WriteString writes s as a length-prefixed UTF-8 string.
func (w *Writer) WriteString(s string) {
	w.WriteLength(len(s))
	copy(w.next(len(s)), s)
}

// WriteStringPtr writes *s, or the null sentinel when s is nil.
func (w *Writer) WriteStringPtr(s *string) {
	if s == nil {
		w.WriteLength(NullLength)
		return
	}
	w.WriteString(*s)
}

// WriteBytes writes p as a length-prefixed block. A nil p is written as null,
// an empty non-nil p as length 0.
func (w *Writer) WriteBytes(p []byte) {
	if p == nil {
		w.WriteLength(NullLength)
		return
	}
	w.WriteLength(len(p))
	w.WriteRaw(p)
}

// WritePacketID writes a 16-bit packet identifier used by framing collaborators.
func (w *Writer) WritePacketID(id uint16) { w.WriteUint16(id) }
