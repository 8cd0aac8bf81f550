package registry

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/arloliu/tickwire/buffer"
	"github.com/arloliu/tickwire/internal/hash"
	"github.com/arloliu/tickwire/internal/metrics"
)

// TypeID returns the wire identifier of T used by WriteAny.
func TypeID[T any]() uint64 {
	return hash.TypeID(reflect.TypeFor[T]())
}

// WriteAny writes the packed type id of v's dynamic type followed by v. A nil v
// is written as type id 0.
func (reg *Registry) WriteAny(w *buffer.Writer, v any) error {
	if v == nil {
		w.WritePackedWhole(0)
		return nil
	}

	t := reflect.TypeOf(v)
	e, ok := reg.entries.Load(t)
	if !ok || e.anyWrite == nil {
		reg.unregistered(t, slotWrite)
		return fmt.Errorf("%w: %s", ErrUnregistered, t)
	}
	w.WritePackedWhole(e.id)
	e.anyWrite(w, v)

	return nil
}

// ReadAny reads a value written by WriteAny. The payload size of an unknown
// type id cannot be known, so an unknown id fails r with ErrUnknownTypeID.
func (reg *Registry) ReadAny(r *buffer.Reader) any {
	id := r.ReadPackedWhole()
	if id == 0 || r.Err() != nil {
		return nil
	}

	t, ok := reg.byID.Load(id)
	if ok {
		if e, found := reg.entries.Load(t); found && e.anyRead != nil {
			return e.anyRead(r)
		}
	}

	metrics.UnregisteredType.Inc()
	reg.log().Error("unknown type id", zap.Uint64("id", id))
	r.Fail(fmt.Errorf("%w: %#x", ErrUnknownTypeID, id))

	return nil
}
