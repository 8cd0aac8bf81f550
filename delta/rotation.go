package delta

import (
	"math"

	"github.com/arloliu/tickwire/buffer"
	"github.com/arloliu/tickwire/format"
)

// DefaultRotationPrecision is the angular precision, in degrees, used when a
// caller passes a non-positive precision.
const DefaultRotationPrecision = 0.01

// Rotation is a unit quaternion.
type Rotation struct {
	X, Y, Z, W float64
}

// IdentityRotation returns the rotation that changes nothing.
func IdentityRotation() Rotation {
	return Rotation{W: 1}
}

// RotationFromAxisAngle builds a rotation of angleDeg degrees around the axis (x, y, z).
func RotationFromAxisAngle(x, y, z, angleDeg float64) Rotation {
	n := math.Sqrt(x*x + y*y + z*z)
	if n == 0 {
		return IdentityRotation()
	}
	half := angleDeg * math.Pi / 360
	s := math.Sin(half) / n

	return Rotation{X: x * s, Y: y * s, Z: z * s, W: math.Cos(half)}
}

// Mul returns the Hamilton product q*p: p applied first, then q.
func (q Rotation) Mul(p Rotation) Rotation {
	return Rotation{
		X: q.W*p.X + q.X*p.W + q.Y*p.Z - q.Z*p.Y,
		Y: q.W*p.Y - q.X*p.Z + q.Y*p.W + q.Z*p.X,
		Z: q.W*p.Z + q.X*p.Y - q.Y*p.X + q.Z*p.W,
		W: q.W*p.W - q.X*p.X - q.Y*p.Y - q.Z*p.Z,
	}
}

// Conjugate returns the inverse of a unit quaternion.
func (q Rotation) Conjugate() Rotation {
	return Rotation{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Dot returns the four-component dot product.
func (q Rotation) Dot(p Rotation) float64 {
	return q.X*p.X + q.Y*p.Y + q.Z*p.Z + q.W*p.W
}

// Normalize scales q to unit length. The zero quaternion becomes the identity.
func (q Rotation) Normalize() Rotation {
	n := math.Sqrt(q.Dot(q))
	if n == 0 || math.IsNaN(n) {
		return IdentityRotation()
	}

	return Rotation{X: q.X / n, Y: q.Y / n, Z: q.Z / n, W: q.W / n}
}

// AngleTo returns the angle in degrees of the rotation taking q to p.
func (q Rotation) AngleTo(p Rotation) float64 {
	d := math.Min(1, math.Abs(q.Normalize().Dot(p.Normalize())))

	return 2 * math.Acos(d) * 180 / math.Pi
}

// RotationChanged reports whether next differs from prev by more than epsilonDeg degrees.
// Callers use it to skip rotations that moved less than their angular tolerance.
func RotationChanged(prev, next Rotation, epsilonDeg float64) bool {
	return prev.AngleTo(next) > epsilonDeg
}

func rotationQuantum(precisionDeg float64) float64 {
	if precisionDeg <= 0 || math.IsNaN(precisionDeg) {
		precisionDeg = DefaultRotationPrecision
	}

	return math.Sin(precisionDeg * math.Pi / 360)
}

const (
	// rotationDroppedShift positions the index of the omitted component in
	// the rotation mask byte: 0 = W, 1 = X, 2 = Y, 3 = Z.
	rotationDroppedShift = 3
	rotationPresentMask  = AxisX | AxisY | AxisZ
	rotationMaskBits     = rotationPresentMask | 3<<rotationDroppedShift
)

// components returns q as W, X, Y, Z so that index 0 is the component the
// unchanged rotation keeps.
func (q Rotation) components() [4]float64 {
	return [4]float64{q.W, q.X, q.Y, q.Z}
}

func rotationFromComponents(c [4]float64) Rotation {
	return Rotation{W: c[0], X: c[1], Y: c[2], Z: c[3]}
}

// WriteRotation writes the rotation taking prev to next as three fixed-point
// components.
//
// The relative rotation conj(prev)*next is sent smallest-three: the component
// with the largest magnitude is omitted and its index stored in bits 3-4 of
// the mask byte, and the sign of the quaternion is chosen so that component is
// non-negative. The other three are rounded to multiples of
// sin(precisionDeg/2). The omitted component is at least 0.5, so rebuilding it
// keeps the angular error within about precisionDeg at any angle.
//
// Bits 0-2 of the mask flag which of the three sent components are non-zero.
// When the omitted component is W and all three round to zero the rotation is
// unchanged, and nothing is written unless opts force a write.
//
// The reader must use the same precisionDeg.
func WriteRotation(w *buffer.Writer, prev, next Rotation, precisionDeg float64, opts Options) bool {
	rel := prev.Normalize().Conjugate().Mul(next.Normalize()).Normalize().components()

	dropped := 0
	for i := 1; i < len(rel); i++ {
		if math.Abs(rel[i]) > math.Abs(rel[dropped]) {
			dropped = i
		}
	}
	if rel[dropped] < 0 {
		for i := range rel {
			rel[i] = -rel[i]
		}
	}

	quantum := rotationQuantum(precisionDeg)
	var comps [3]int64
	var present uint8
	j := 0
	for i, c := range rel {
		if i == dropped {
			continue
		}
		comps[j] = int64(math.Round(c / quantum))
		if comps[j] != 0 {
			present |= 1 << j
		}
		j++
	}
	if dropped == 0 && present == 0 && !opts.Forced() {
		return emit(false)
	}

	w.WriteUint8(present | uint8(dropped)<<rotationDroppedShift) //nolint:gosec
	for k, c := range comps {
		if present&(1<<k) != 0 {
			w.WritePackedInt(c)
		}
	}

	return emit(true)
}

// ReadRotation reads a delta written by WriteRotation and applies it to prev.
func ReadRotation(r *buffer.Reader, prev Rotation, precisionDeg float64) Rotation {
	mask := r.ReadUint8()
	if r.Err() != nil {
		return Rotation{}
	}
	if mask&^rotationMaskBits != 0 {
		unknownTier("rotation-mask", format.Tier(mask))
		return Rotation{}
	}
	dropped := int(mask >> rotationDroppedShift)

	quantum := rotationQuantum(precisionDeg)
	var rel [4]float64
	sum := 0.0
	j := 0
	for i := range rel {
		if i == dropped {
			continue
		}
		if mask&(1<<j) != 0 {
			rel[i] = float64(r.ReadPackedInt()) * quantum
			sum += rel[i] * rel[i]
		}
		j++
	}
	if r.Err() != nil {
		return Rotation{}
	}
	rel[dropped] = math.Sqrt(math.Max(0, 1-sum))

	return prev.Normalize().Mul(rotationFromComponents(rel)).Normalize()
}
