package packed

import (
	"errors"
	"math/bits"
)

// MaxLen is the maximum encoded size of a packed whole number.
const MaxLen = 9

const (
	groupBits     = 7
	groupCount    = 4
	continuation  = 0x80
	groupMask     = 0x7F
	nibbleMask    = 0x0F
	tailCountMask = 0x07
	maxTailBytes  = 4
)

var (
	// ErrTruncated is returned when the input ends before the encoded value does.
	ErrTruncated = errors.New("packed: truncated input")
	// ErrOverflow is returned when the fifth byte declares more than four tail
	// bytes or sets its reserved bit.
	ErrOverflow = errors.New("packed: malformed fifth byte")
)

// Size returns the number of bytes PutWhole would write for v.
func Size(v uint64) int {
	switch {
	case v < 1<<7:
		return 1
	case v < 1<<14:
		return 2
	case v < 1<<21:
		return 3
	case v < 1<<28:
		return 4
	default:
		return 5 + tailBytes(v>>32)
	}
}

// tailBytes returns how many raw bytes are needed for the bits above bit 31.
func tailBytes(high uint64) int {
	return (bits.Len64(high) + 7) / 8
}

// PutWhole encodes v into dst and returns the number of bytes written.
//
// Panics if dst is too small; callers size dst with Size or MaxLen.
func PutWhole(dst []byte, v uint64) int {
	for i := range groupCount {
		b := byte(v & groupMask)
		v >>= groupBits
		if v == 0 {
			dst[i] = b
			return i + 1
		}
		dst[i] = b | continuation
	}

	// v now holds bits 28..63
	nibble := byte(v & nibbleMask)
	v >>= 4

	tail := tailBytes(v)
	dst[groupCount] = nibble | byte(tail)<<4 //nolint:gosec
	for j := range tail {
		dst[groupCount+1+j] = byte(v)
		v >>= 8
	}

	return groupCount + 1 + tail
}

// AppendWhole appends the packed encoding of v to dst and returns the extended slice.
func AppendWhole(dst []byte, v uint64) []byte {
	var tmp [MaxLen]byte
	n := PutWhole(tmp[:], v)

	return append(dst, tmp[:n]...)
}

// Whole decodes a packed whole number from the start of src.
//
// Returns:
//   - uint64: The decoded value (0 on error)
//   - int: Number of bytes consumed (0 on error)
//   - error: ErrTruncated or ErrOverflow for malformed input
func Whole(src []byte) (uint64, int, error) {
	var v uint64
	for i := range groupCount {
		if i >= len(src) {
			return 0, 0, ErrTruncated
		}
		b := src[i]
		v |= uint64(b&groupMask) << (groupBits * i)
		if b&continuation == 0 {
			return v, i + 1, nil
		}
	}

	if len(src) <= groupCount {
		return 0, 0, ErrTruncated
	}

	fifth := src[groupCount]
	tail := int(fifth>>4) & tailCountMask
	if fifth&continuation != 0 || tail > maxTailBytes {
		return 0, 0, ErrOverflow
	}

	v |= uint64(fifth&nibbleMask) << (groupBits * groupCount)

	end := groupCount + 1 + tail
	if len(src) < end {
		return 0, 0, ErrTruncated
	}
	for j := range tail {
		v |= uint64(src[groupCount+1+j]) << (32 + 8*j)
	}

	return v, end, nil
}

// ZigZagEncode maps a signed integer onto an unsigned one so that values of small
// magnitude, positive or negative, stay small.
func ZigZagEncode(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63) //nolint:gosec
}

// ZigZagDecode reverses ZigZagEncode.
func ZigZagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1) //nolint:gosec
}

// AppendInt zigzag-folds v and appends it as a packed whole number.
func AppendInt(dst []byte, v int64) []byte {
	return AppendWhole(dst, ZigZagEncode(v))
}

// Int decodes a zigzag-folded packed whole number from the start of src.
func Int(src []byte) (int64, int, error) {
	u, n, err := Whole(src)
	if err != nil {
		return 0, 0, err
	}

	return ZigZagDecode(u), n, nil
}
