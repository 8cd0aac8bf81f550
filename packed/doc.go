// Package packed implements the tickwire variable-length whole-number format and
// the zigzag transform used to carry signed integers through it.
//
// # Wire Format
//
// A packed whole number is 1 to 9 bytes long:
//
//	byte 1..4  7 value bits each, bit 7 set when another byte follows
//	byte 5     bits 0-3: value bits 28..31
//	           bits 4-6: number of raw tail bytes (0..4)
//	           bit 7:    reserved, always zero
//	byte 6..9  raw tail bytes carrying value bits 32..63, least-significant first
//
// The first four groups keep the common small-value case as short as LEB128,
// while the nibble plus raw tail caps the worst case at nine bytes instead of ten.
// The format is NOT bit-compatible with encoding/binary's Uvarint; values of
// 2^28 and above encode differently.
//
// Size by magnitude:
//
//	[0, 2^7)     1 byte
//	[2^7, 2^14)  2 bytes
//	[2^14, 2^21) 3 bytes
//	[2^21, 2^28) 4 bytes
//	[2^28, 2^32) 5 bytes
//	[2^32, 2^64) 6-9 bytes
//
// # Signed Values
//
// ZigZagEncode folds signed integers so that small negative and small positive
// values both map to small magnitudes:
//
//	 0 -> 0, -1 -> 1, 1 -> 2, -2 -> 3, ...
package packed
