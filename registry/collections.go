package registry

import (
	"fmt"
	"reflect"

	"github.com/arloliu/tickwire/buffer"
)

// WriteSlice writes a count prefix followed by every element of s. A nil slice
// is written as the null length.
func WriteSlice[T any](reg *Registry, w *buffer.Writer, s []T) error {
	if s == nil {
		w.WriteLength(buffer.NullLength)
		return nil
	}

	t := reflect.TypeFor[T]()
	fn, ok := lookup[WriteFunc[T]](reg, t, slotWrite)
	if !ok {
		reg.unregistered(t, slotWrite)
		return fmt.Errorf("%w: %s", ErrUnregistered, t)
	}

	w.WriteLength(len(s))
	for _, v := range s {
		fn(w, v)
	}

	return nil
}

// ReadSlice reads a slice written by WriteSlice. The null length decodes as nil.
//
// The declared count is checked against the remaining bytes before allocating,
// so a corrupt prefix cannot trigger a huge allocation.
func ReadSlice[T any](reg *Registry, r *buffer.Reader) []T {
	n, null := r.ReadLength()
	if null || r.Err() != nil {
		return nil
	}

	t := reflect.TypeFor[T]()
	fn, ok := lookup[ReadFunc[T]](reg, t, slotRead)
	if !ok {
		reg.unregistered(t, slotRead)
		return nil
	}

	out := make([]T, n)
	for i := range out {
		out[i] = fn(r)
		if r.Err() != nil {
			return nil
		}
	}

	return out
}

// WriteMap writes a count prefix followed by key/value pairs. Pair order follows
// Go map iteration and is not stable across calls.
func WriteMap[K comparable, V any](reg *Registry, w *buffer.Writer, m map[K]V) error {
	if m == nil {
		w.WriteLength(buffer.NullLength)
		return nil
	}

	kt, vt := reflect.TypeFor[K](), reflect.TypeFor[V]()
	kfn, ok := lookup[WriteFunc[K]](reg, kt, slotWrite)
	if !ok {
		reg.unregistered(kt, slotWrite)
		return fmt.Errorf("%w: %s", ErrUnregistered, kt)
	}
	vfn, ok := lookup[WriteFunc[V]](reg, vt, slotWrite)
	if !ok {
		reg.unregistered(vt, slotWrite)
		return fmt.Errorf("%w: %s", ErrUnregistered, vt)
	}

	w.WriteLength(len(m))
	for k, v := range m {
		kfn(w, k)
		vfn(w, v)
	}

	return nil
}

// ReadMap reads a map written by WriteMap. The null length decodes as nil.
func ReadMap[K comparable, V any](reg *Registry, r *buffer.Reader) map[K]V {
	n, null := r.ReadLength()
	if null || r.Err() != nil {
		return nil
	}

	kt, vt := reflect.TypeFor[K](), reflect.TypeFor[V]()
	kfn, ok := lookup[ReadFunc[K]](reg, kt, slotRead)
	if !ok {
		reg.unregistered(kt, slotRead)
		return nil
	}
	vfn, ok := lookup[ReadFunc[V]](reg, vt, slotRead)
	if !ok {
		reg.unregistered(vt, slotRead)
		return nil
	}

	out := make(map[K]V, n)
	for range n {
		k := kfn(r)
		v := vfn(r)
		if r.Err() != nil {
			return nil
		}
		out[k] = v
	}

	return out
}

// WritePtr writes a presence byte followed by *p when p is not nil.
func WritePtr[T any](reg *Registry, w *buffer.Writer, p *T) error {
	if p == nil {
		w.WriteBool(false)
		return nil
	}

	t := reflect.TypeFor[T]()
	fn, ok := lookup[WriteFunc[T]](reg, t, slotWrite)
	if !ok {
		reg.unregistered(t, slotWrite)
		return fmt.Errorf("%w: %s", ErrUnregistered, t)
	}
	w.WriteBool(true)
	fn(w, *p)

	return nil
}

// ReadPtr reads a value written by WritePtr.
func ReadPtr[T any](reg *Registry, r *buffer.Reader) *T {
	if !r.ReadBool() || r.Err() != nil {
		return nil
	}

	v := Read[T](reg, r)
	if r.Err() != nil {
		return nil
	}

	return &v
}
