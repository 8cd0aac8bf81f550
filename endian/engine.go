// Package endian provides the byte order used by every fixed-width field on the
// tickwire wire.
//
// The wire format is little-endian regardless of the host. This package wraps
// encoding/binary so the buffer and delta packages share one EndianEngine value
// and gain the two-word helpers used by the 128-bit delta tier.
//
// # Basic Usage
//
//	engine := endian.Wire()
//	buf = engine.AppendUint32(buf, 42)
//	v := engine.Uint32(buf)
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Wire returns the engine all tickwire fixed-width fields are encoded with.
func Wire() EndianEngine {
	return binary.LittleEndian
}

// PutUint128 writes a 128-bit value given as two 64-bit words, low word first.
//
// Panics if dst is shorter than 16 bytes.
func PutUint128(engine EndianEngine, dst []byte, lo, hi uint64) {
	_ = dst[15]
	engine.PutUint64(dst[0:8], lo)
	engine.PutUint64(dst[8:16], hi)
}

// Uint128 reads a 128-bit value written by PutUint128.
//
// Panics if src is shorter than 16 bytes.
func Uint128(engine EndianEngine, src []byte) (lo, hi uint64) {
	_ = src[15]
	return engine.Uint64(src[0:8]), engine.Uint64(src[8:16])
}
