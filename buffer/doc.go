// Package buffer provides the growable Writer and the bounded Reader every
// tickwire codec writes into and reads from, plus single-owner pools for both.
//
// # Writer
//
// A Writer owns a byte region, a cursor (Position) and a populated length
// (Length). Writes happen at Position and extend Length when they pass it, so a
// caller may reserve space, write the body, then seek back to patch a header:
//
//	w := buffer.NewWriter()
//	at := w.Reserve(1)
//	w.WritePackedWhole(42)
//	w.PatchUint8(at, flags)
//
// When capacity runs out the Writer reallocates to twice its capacity plus the
// bytes required. It never shrinks.
//
// # Reader
//
// A Reader borrows a caller-owned window [Offset, Offset+Length) and mirrors every
// Writer operation. Reads are sticky-error: the first read past the window or the
// first malformed length prefix records an error, logs it once, and from then on
// every read yields the zero value. Callers check Err once after decoding a
// message instead of after every field:
//
//	r := buffer.NewReader(payload)
//	id := r.ReadUint16()
//	name := r.ReadString()
//	if err := r.Err(); err != nil {
//	    return err // abort the whole message
//	}
//
// # Wire Conventions
//
//   - Fixed-width integers and IEEE floats are little-endian.
//   - Length prefixes are zigzag packed whole numbers; NullLength (-1) encodes a
//     nil string, byte slice or collection, 0 encodes an empty one.
//   - Strings are UTF-8.
//   - WritePackedFloat32 is a lossy mode that keeps two decimal digits.
//
// # Thread Safety
//
// Writers, Readers and pools are not safe for concurrent use. Confine each
// message's encode or decode to one goroutine.
package buffer
