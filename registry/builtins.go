package registry

import (
	"github.com/shopspring/decimal"

	"github.com/arloliu/tickwire/buffer"
	"github.com/arloliu/tickwire/delta"
)

// RegisterBuiltins installs Generated codecs for the primitive types, strings,
// byte slices, decimals and the delta vector and rotation types.
//
// Fixed-size integers use their fixed width; int and uint use the packed
// format since their size differs between platforms. Every numeric type also
// gets a Generated delta codec. Since all of these are Generated, callers may
// replace any of them with Custom codecs afterwards.
//
// The rotation delta codec uses the precision and epsilon the Registry was
// created with (WithRotationPrecision, WithRotationEpsilon).
func RegisterBuiltins(reg *Registry) {
	Register(reg, Generated, (*buffer.Writer).WriteBool, (*buffer.Reader).ReadBool)
	RegisterDelta(reg, Generated, delta.WriteBool, func(r *buffer.Reader, _ bool) bool { return delta.ReadBool(r) })

	Register(reg, Generated, (*buffer.Writer).WriteInt8, (*buffer.Reader).ReadInt8)
	Register(reg, Generated, (*buffer.Writer).WriteInt16, (*buffer.Reader).ReadInt16)
	Register(reg, Generated, (*buffer.Writer).WriteInt32, (*buffer.Reader).ReadInt32)
	Register(reg, Generated, (*buffer.Writer).WriteInt64, (*buffer.Reader).ReadInt64)
	Register(reg, Generated,
		func(w *buffer.Writer, v int) { w.WritePackedInt(int64(v)) },
		func(r *buffer.Reader) int { return int(r.ReadPackedInt()) },
	)
	registerSignedDelta[int8](reg)
	registerSignedDelta[int16](reg)
	registerSignedDelta[int32](reg)
	registerSignedDelta[int64](reg)
	registerSignedDelta[int](reg)

	Register(reg, Generated, (*buffer.Writer).WriteUint8, (*buffer.Reader).ReadUint8)
	Register(reg, Generated, (*buffer.Writer).WriteUint16, (*buffer.Reader).ReadUint16)
	Register(reg, Generated, (*buffer.Writer).WriteUint32, (*buffer.Reader).ReadUint32)
	Register(reg, Generated, (*buffer.Writer).WriteUint64, (*buffer.Reader).ReadUint64)
	Register(reg, Generated,
		func(w *buffer.Writer, v uint) { w.WritePackedWhole(uint64(v)) },
		func(r *buffer.Reader) uint { return uint(r.ReadPackedWhole()) },
	)
	registerUnsignedDelta[uint8](reg)
	registerUnsignedDelta[uint16](reg)
	registerUnsignedDelta[uint32](reg)
	registerUnsignedDelta[uint64](reg)
	registerUnsignedDelta[uint](reg)

	Register(reg, Generated, (*buffer.Writer).WriteFloat32, (*buffer.Reader).ReadFloat32)
	Register(reg, Generated, (*buffer.Writer).WriteFloat64, (*buffer.Reader).ReadFloat64)
	RegisterDelta(reg, Generated, delta.WriteFloat[float32], delta.ReadFloat[float32])
	RegisterDelta(reg, Generated, delta.WriteFloat[float64], delta.ReadFloat[float64])

	Register(reg, Generated, (*buffer.Writer).WriteString, (*buffer.Reader).ReadString)
	Register(reg, Generated, (*buffer.Writer).WriteBytes, (*buffer.Reader).ReadBytes)

	Register(reg, Generated,
		func(w *buffer.Writer, v decimal.Decimal) { w.WriteString(v.String()) },
		readDecimal,
	)
	RegisterDelta(reg, Generated, delta.WriteDecimal, delta.ReadDecimal)

	registerVectors[float32](reg)
	registerVectors[float64](reg)

	precision, epsilon := reg.rotationPrecision, reg.rotationEpsilon
	Register(reg, Generated, writeRotation, readRotation)
	RegisterDelta(reg, Generated,
		func(w *buffer.Writer, prev, next delta.Rotation, opts delta.Options) bool {
			if !opts.Forced() && !delta.RotationChanged(prev, next, epsilon) {
				return false
			}

			return delta.WriteRotation(w, prev, next, precision, opts)
		},
		func(r *buffer.Reader, prev delta.Rotation) delta.Rotation {
			return delta.ReadRotation(r, prev, precision)
		},
	)
}

func registerSignedDelta[T int8 | int16 | int32 | int64 | int](reg *Registry) {
	RegisterDelta(reg, Generated, delta.WriteSigned[T], delta.ReadSigned[T])
}

func registerUnsignedDelta[T uint8 | uint16 | uint32 | uint64 | uint](reg *Registry) {
	RegisterDelta(reg, Generated, delta.WriteUnsigned[T], delta.ReadUnsigned[T])
}

func registerVectors[T delta.Float](reg *Registry) {
	Register(reg, Generated,
		func(w *buffer.Writer, v delta.Vec2[T]) {
			writeFloat(w, v.X)
			writeFloat(w, v.Y)
		},
		func(r *buffer.Reader) delta.Vec2[T] {
			return delta.Vec2[T]{X: readFloat[T](r), Y: readFloat[T](r)}
		},
	)
	RegisterDelta(reg, Generated, delta.WriteVec2[T], delta.ReadVec2[T])

	Register(reg, Generated,
		func(w *buffer.Writer, v delta.Vec3[T]) {
			writeFloat(w, v.X)
			writeFloat(w, v.Y)
			writeFloat(w, v.Z)
		},
		func(r *buffer.Reader) delta.Vec3[T] {
			return delta.Vec3[T]{X: readFloat[T](r), Y: readFloat[T](r), Z: readFloat[T](r)}
		},
	)
	RegisterDelta(reg, Generated, delta.WriteVec3[T], delta.ReadVec3[T])
}

func writeFloat[T delta.Float](w *buffer.Writer, v T) {
	switch x := any(v).(type) {
	case float32:
		w.WriteFloat32(x)
	case float64:
		w.WriteFloat64(x)
	}
}

func readFloat[T delta.Float](r *buffer.Reader) T {
	var zero T
	if _, ok := any(zero).(float32); ok {
		return T(r.ReadFloat32())
	}

	return T(r.ReadFloat64())
}

func readDecimal(r *buffer.Reader) decimal.Decimal {
	s := r.ReadString()
	if s == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		r.Fail(err)
		return decimal.Zero
	}

	return v
}

func writeRotation(w *buffer.Writer, q delta.Rotation) {
	w.WriteFloat64(q.X)
	w.WriteFloat64(q.Y)
	w.WriteFloat64(q.Z)
	w.WriteFloat64(q.W)
}

func readRotation(r *buffer.Reader) delta.Rotation {
	return delta.Rotation{X: r.ReadFloat64(), Y: r.ReadFloat64(), Z: r.ReadFloat64(), W: r.ReadFloat64()}
}
