package registry

import (
	"reflect"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"

	"github.com/arloliu/tickwire/buffer"
	"github.com/arloliu/tickwire/delta"
	"github.com/arloliu/tickwire/internal/hash"
	"github.com/arloliu/tickwire/internal/logging"
	"github.com/arloliu/tickwire/internal/metrics"
	"github.com/arloliu/tickwire/internal/options"
)

// Origin records who registered a function.
type Origin uint8

const (
	// OriginNone marks an empty slot.
	OriginNone Origin = iota
	// Generated functions are defaults and may be replaced.
	Generated
	// Custom functions are hand-written and can never be replaced.
	Custom
)

func (o Origin) String() string {
	switch o {
	case Generated:
		return "generated"
	case Custom:
		return "custom"
	default:
		return "none"
	}
}

type (
	// WriteFunc encodes v.
	WriteFunc[T any] func(w *buffer.Writer, v T)
	// ReadFunc decodes a value written by the matching WriteFunc.
	ReadFunc[T any] func(r *buffer.Reader) T
	// DeltaWriteFunc encodes the change from prev to next and reports whether it wrote anything.
	DeltaWriteFunc[T any] func(w *buffer.Writer, prev, next T, opts delta.Options) bool
	// DeltaReadFunc applies a change written by the matching DeltaWriteFunc to prev.
	DeltaReadFunc[T any] func(r *buffer.Reader, prev T) T
)

type slotKind uint8

const (
	slotWrite slotKind = iota
	slotRead
	slotDeltaWrite
	slotDeltaRead
	slotCount
)

var slotNames = [slotCount]string{"write", "read", "delta write", "delta read"}

type slot struct {
	fn     any
	origin Origin
}

// entry is immutable once stored; registration publishes a modified copy.
type entry struct {
	typ   reflect.Type
	id    uint64
	slots [slotCount]slot

	anyWrite func(w *buffer.Writer, v any)
	anyRead  func(r *buffer.Reader) any
}

// Registry maps types to their codecs.
type Registry struct {
	mu      sync.Mutex
	entries *xsync.MapOf[reflect.Type, *entry]
	byID    *xsync.MapOf[uint64, reflect.Type]
	logger  *zap.Logger

	// used by the built-in rotation delta codec
	rotationPrecision float64
	rotationEpsilon   float64
}

// Option configures a Registry.
type Option = options.Option[*Registry]

// WithLogger sets the logger used for dispatch failures and rejected overrides.
func WithLogger(l *zap.Logger) Option {
	return options.NoError(func(r *Registry) {
		r.logger = l
	})
}

// WithRotationPrecision sets the angular precision, in degrees, of the
// built-in rotation delta codec. Both endpoints must use the same value.
// Non-positive values keep delta.DefaultRotationPrecision.
func WithRotationPrecision(deg float64) Option {
	return options.NoError(func(r *Registry) {
		if deg > 0 {
			r.rotationPrecision = deg
		}
	})
}

// WithRotationEpsilon sets the angle, in degrees, a rotation must move before
// the built-in rotation delta codec writes it. Forced writes ignore it.
func WithRotationEpsilon(deg float64) Option {
	return options.NoError(func(r *Registry) {
		if deg >= 0 {
			r.rotationEpsilon = deg
		}
	})
}

// New creates an empty Registry.
func New(opts ...Option) *Registry {
	reg := &Registry{
		entries: xsync.NewMapOf[reflect.Type, *entry](),
		byID:    xsync.NewMapOf[uint64, reflect.Type](),

		rotationPrecision: delta.DefaultRotationPrecision,
	}
	_ = options.Apply(reg, opts...)

	return reg
}

// RotationPrecision returns the precision used by the built-in rotation delta codec.
func (reg *Registry) RotationPrecision() float64 { return reg.rotationPrecision }

// RotationEpsilon returns the change threshold of the built-in rotation delta codec.
func (reg *Registry) RotationEpsilon() float64 { return reg.rotationEpsilon }

func (reg *Registry) log() *zap.Logger {
	if reg.logger != nil {
		return reg.logger
	}

	return logging.Named("registry")
}

// Len returns the number of registered types.
func (reg *Registry) Len() int {
	return reg.entries.Size()
}

// Origins reports the origin of each slot for T: write, read, delta write, delta read.
func Origins[T any](reg *Registry) (write, read, deltaWrite, deltaRead Origin) {
	e, ok := reg.entries.Load(reflect.TypeFor[T]())
	if !ok {
		return OriginNone, OriginNone, OriginNone, OriginNone
	}

	return e.slots[slotWrite].origin, e.slots[slotRead].origin,
		e.slots[slotDeltaWrite].origin, e.slots[slotDeltaRead].origin
}

// set stores fn in slot kind of t under the override policy. hook, when not
// nil, runs on the new copy of the entry before it is published.
func (reg *Registry) set(t reflect.Type, kind slotKind, origin Origin, fn any, hook func(e *entry)) bool {
	if origin != Generated && origin != Custom {
		reg.log().Error("registration without origin",
			zap.String("type", hash.TypeName(t)), zap.String("slot", slotNames[kind]))

		return false
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	var e entry
	if old, ok := reg.entries.Load(t); ok {
		e = *old
	} else {
		e = entry{typ: t, id: hash.TypeID(t)}
		if other, taken := reg.byID.Load(e.id); taken && other != t {
			reg.log().Error("type id collision",
				zap.String("type", hash.TypeName(t)), zap.String("other", hash.TypeName(other)))
		}
	}

	if cur := e.slots[kind]; cur.fn != nil && cur.origin == Custom {
		metrics.RejectedOverride.Inc()
		reg.log().Debug("ignored registration over custom codec",
			zap.String("type", hash.TypeName(t)),
			zap.String("slot", slotNames[kind]),
			zap.Stringer("origin", origin),
		)

		return false
	}

	e.slots[kind] = slot{fn: fn, origin: origin}
	if hook != nil {
		hook(&e)
	}

	if origin == Custom && (kind == slotWrite || kind == slotRead) {
		for _, k := range []slotKind{slotDeltaWrite, slotDeltaRead} {
			if e.slots[k].origin == Generated {
				e.slots[k] = slot{}
				reg.log().Debug("dropped generated delta codec",
					zap.String("type", hash.TypeName(t)), zap.String("slot", slotNames[k]))
			}
		}
	}

	reg.entries.Store(t, &e)
	reg.byID.Store(e.id, t)

	return true
}

// SetWrite registers the plain write function for T. It reports whether the
// registration was accepted.
func SetWrite[T any](reg *Registry, origin Origin, fn WriteFunc[T]) bool {
	if fn == nil {
		return false
	}

	return reg.set(reflect.TypeFor[T](), slotWrite, origin, fn, func(e *entry) {
		e.anyWrite = func(w *buffer.Writer, v any) { fn(w, v.(T)) } //nolint:forcetypeassert
	})
}

// SetRead registers the plain read function for T.
func SetRead[T any](reg *Registry, origin Origin, fn ReadFunc[T]) bool {
	if fn == nil {
		return false
	}

	return reg.set(reflect.TypeFor[T](), slotRead, origin, fn, func(e *entry) {
		e.anyRead = func(r *buffer.Reader) any { return fn(r) }
	})
}

// SetDeltaWrite registers the delta write function for T.
func SetDeltaWrite[T any](reg *Registry, origin Origin, fn DeltaWriteFunc[T]) bool {
	if fn == nil {
		return false
	}

	return reg.set(reflect.TypeFor[T](), slotDeltaWrite, origin, fn, nil)
}

// SetDeltaRead registers the delta read function for T.
func SetDeltaRead[T any](reg *Registry, origin Origin, fn DeltaReadFunc[T]) bool {
	if fn == nil {
		return false
	}

	return reg.set(reflect.TypeFor[T](), slotDeltaRead, origin, fn, nil)
}

// Register installs plain write and read functions for T in one call.
func Register[T any](reg *Registry, origin Origin, write WriteFunc[T], read ReadFunc[T]) {
	SetWrite(reg, origin, write)
	SetRead(reg, origin, read)
}

// RegisterDelta installs delta write and read functions for T in one call.
func RegisterDelta[T any](reg *Registry, origin Origin, write DeltaWriteFunc[T], read DeltaReadFunc[T]) {
	SetDeltaWrite(reg, origin, write)
	SetDeltaRead(reg, origin, read)
}

func lookup[F any](reg *Registry, t reflect.Type, kind slotKind) (F, bool) {
	var zero F
	e, ok := reg.entries.Load(t)
	if !ok {
		return zero, false
	}
	fn, ok := e.slots[kind].fn.(F)

	return fn, ok
}

func (reg *Registry) unregistered(t reflect.Type, kind slotKind) {
	metrics.UnregisteredType.Inc()
	reg.log().Error("no codec registered",
		zap.String("type", hash.TypeName(t)),
		zap.String("slot", slotNames[kind]),
	)
}
