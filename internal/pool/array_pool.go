package pool

import (
	"math/bits"
	"reflect"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/arloliu/tickwire/internal/metrics"
)

// maxClass bounds pooled arrays to 2^30 elements; larger requests bypass the pool.
const maxClass = 31

// ArrayPool recycles backing arrays in power-of-two size classes.
//
// Rent hands out a slice whose length is the requested size and whose capacity
// is the enclosing power of two, so any array of the same class can serve any
// request that fits it. ArrayPool is safe for concurrent use.
type ArrayPool[T any] struct {
	classes [maxClass]sync.Pool
}

// NewArrayPool creates an empty ArrayPool.
func NewArrayPool[T any]() *ArrayPool[T] {
	return &ArrayPool[T]{}
}

var shared = xsync.NewMapOf[reflect.Type, any]()

// Shared returns the process-wide ArrayPool for element type T.
func Shared[T any]() *ArrayPool[T] {
	p, _ := shared.LoadOrCompute(reflect.TypeFor[T](), func() any {
		return NewArrayPool[T]()
	})

	return p.(*ArrayPool[T]) //nolint:forcetypeassert
}

func classOf(n int) int {
	if n <= 1 {
		return 0
	}

	return bits.Len(uint(n - 1))
}

// Rent returns a zeroed slice of length n.
//
// Parameters:
//   - n: Required length; values below 1 return nil
//
// Returns:
//   - []T: slice with len == n and cap a power of two >= n
//
// Example:
//
//	arr := pool.Shared[Snapshot]().Rent(64)
//	defer pool.Shared[Snapshot]().Return(arr)
func (p *ArrayPool[T]) Rent(n int) []T {
	if n < 1 {
		return nil
	}

	c := classOf(n)
	if c >= maxClass {
		metrics.PoolMisses.Inc()
		return make([]T, n)
	}

	if ptr, ok := p.classes[c].Get().(*[]T); ok {
		metrics.PoolHits.Inc()
		return (*ptr)[:n]
	}
	metrics.PoolMisses.Inc()

	return make([]T, n, 1<<c)
}

// Return clears s and makes its backing array available to later Rent calls.
// Arrays whose capacity is not a power of two were not rented from a pool and
// are dropped. The caller must not use s after Return.
func (p *ArrayPool[T]) Return(s []T) {
	c := cap(s)
	if c == 0 {
		return
	}
	class := classOf(c)
	if 1<<class != c || class >= maxClass {
		metrics.PoolDiscards.Inc()
		return
	}

	s = s[:c]
	clear(s)
	p.classes[class].Put(&s)
}
