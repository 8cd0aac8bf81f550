// Package hash derives stable 64-bit identifiers used on the wire.
package hash

import (
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// TypeName returns the name both endpoints use to identify t: the import path
// qualified name for named types and the type literal otherwise.
//
// Generic instantiations keep their type arguments, so Vec2[float32] and
// Vec2[float64] get distinct names.
func TypeName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}

	return t.String()
}

// TypeID returns the xxHash64 of TypeName(t). It is never zero for a non-nil
// type; zero is reserved for the nil value on the wire.
func TypeID(t reflect.Type) uint64 {
	if t == nil {
		return 0
	}
	id := ID(TypeName(t))
	if id == 0 {
		id = 1
	}

	return id
}
