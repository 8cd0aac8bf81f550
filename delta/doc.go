// Package delta encodes the change between two values of the same type at the
// smallest byte width that keeps a fixed accuracy.
//
// Every Write function takes the previous and next value and reports whether it
// wrote anything. When nothing was written the field is unchanged, and the
// receiving side must not call the matching Read: it keeps its previous value.
//
// # Wire format
//
// A written delta starts with a tier byte (see format.Tier). Its low nibble
// selects the payload width; bit 7 (format.TierNextLarger) is set for
// unsigned-magnitude deltas when the next value is larger than the previous.
//
//	integers (signed)    tier byte | two's-complement B-A at tier width
//	integers (unsigned)  tier byte+dir | |B-A| at tier width
//	float32/float64      tier byte+dir | floor(|B-A|*FloatAccuracy) at tier width
//	decimal              tier byte+dir | floor(|B-A|*DecimalAccuracy) at tier width
//	bool                 the new value as one byte
//	Vec2/Vec3            axis mask byte | per present axis: float delta
//	Rotation             mask byte (present bits, omitted index) | per present component: packed zigzag
//
// TierFull carries the next value unpacked; it is used for non-finite floats
// and magnitudes too large for the 128-bit tier.
//
// # Accuracy
//
// Fractional deltas are truncated, not rounded, so the decoded value differs
// from the encoded one by less than 1/FloatAccuracy (or 1/DecimalAccuracy).
// Changes smaller than one quantization unit are not encoded at all.
//
// # Malformed input
//
// A tier byte that does not name a tier valid for the value family is logged,
// counted in the tickwire_delta_unknown_tier_total metric and decoded as the
// zero value. The surrounding Reader keeps going so the caller can decide
// whether to drop the message.
package delta
