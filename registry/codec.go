package registry

import (
	"fmt"
	"reflect"

	"github.com/arloliu/tickwire/buffer"
	"github.com/arloliu/tickwire/delta"
)

// Write encodes v with the write function registered for T.
//
// Returns:
//   - error: ErrUnregistered if T has no write function; nothing is written
func Write[T any](reg *Registry, w *buffer.Writer, v T) error {
	t := reflect.TypeFor[T]()
	fn, ok := lookup[WriteFunc[T]](reg, t, slotWrite)
	if !ok {
		reg.unregistered(t, slotWrite)
		return fmt.Errorf("%w: %s", ErrUnregistered, t)
	}
	fn(w, v)

	return nil
}

// Read decodes a T with the read function registered for T. A missing
// registration is logged and yields the zero value without consuming input.
func Read[T any](reg *Registry, r *buffer.Reader) T {
	t := reflect.TypeFor[T]()
	fn, ok := lookup[ReadFunc[T]](reg, t, slotRead)
	if !ok {
		reg.unregistered(t, slotRead)

		var zero T
		return zero
	}

	return fn(r)
}

// WriteDelta encodes the change from prev to next and reports whether anything
// was written. When T has no delta write function but has a plain one, next is
// written in full with the plain codec.
func WriteDelta[T any](reg *Registry, w *buffer.Writer, prev, next T, opts delta.Options) bool {
	t := reflect.TypeFor[T]()
	if fn, ok := lookup[DeltaWriteFunc[T]](reg, t, slotDeltaWrite); ok {
		return fn(w, prev, next, opts)
	}
	if fn, ok := lookup[WriteFunc[T]](reg, t, slotWrite); ok {
		fn(w, next)
		return true
	}
	reg.unregistered(t, slotDeltaWrite)

	return false
}

// ReadDelta applies a change written by WriteDelta to prev. It must only be
// called when the matching WriteDelta reported a write.
func ReadDelta[T any](reg *Registry, r *buffer.Reader, prev T) T {
	t := reflect.TypeFor[T]()
	if fn, ok := lookup[DeltaReadFunc[T]](reg, t, slotDeltaRead); ok {
		return fn(r, prev)
	}
	if fn, ok := lookup[ReadFunc[T]](reg, t, slotRead); ok {
		return fn(r)
	}
	reg.unregistered(t, slotDeltaRead)

	var zero T
	return zero
}
