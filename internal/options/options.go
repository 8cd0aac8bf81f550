// Package options provides the generic functional-option plumbing shared by the
// tickwire constructors (writers, pools, registries, ring buffers).
package options

// Option configures a target of type T. Options are applied in order and the
// first failing option aborts construction.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a plain function to Option.
type Func[T any] func(T) error

func (f Func[T]) apply(target T) error {
	return f(target)
}

// New wraps fn as an Option.
func New[T any](fn func(T) error) Option[T] {
	return Func[T](fn)
}

// NoError wraps a function that cannot fail as an Option.
func NoError[T any](fn func(T)) Option[T] {
	return Func[T](func(target T) error {
		fn(target)
		return nil
	})
}

// Apply applies opts to target in order, stopping at the first error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
