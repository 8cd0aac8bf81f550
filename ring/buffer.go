package ring

import (
	"iter"

	"go.uber.org/zap"

	"github.com/arloliu/tickwire/internal/logging"
	"github.com/arloliu/tickwire/internal/pool"
)

// Buffer is a fixed-capacity circular buffer with logical indexing.
//
// The zero value is uninitialized; call Initialize before use.
type Buffer[T any] struct {
	items      []T
	capacity   int
	writeIndex int
	count      int

	// reset, when set, is called on every element leaving the buffer.
	reset func(*T)
}

// New returns a Buffer initialized with the given capacity.
func New[T any](capacity int) *Buffer[T] {
	b := &Buffer[T]{}
	b.Initialize(capacity)

	return b
}

// Initialize rents a backing array for capacity elements. Initializing an
// already initialized buffer clears it first, and releases its array when the
// capacity changes. A capacity below 1 is logged and ignored.
func (b *Buffer[T]) Initialize(capacity int) {
	if capacity < 1 {
		logging.Named("ring").Error("invalid ring buffer capacity", zap.Int("capacity", capacity))
		return
	}
	if b.items != nil {
		if b.capacity == capacity {
			b.Clear()
			return
		}
		b.Release()
	}

	b.items = pool.Shared[T]().Rent(capacity)
	b.capacity = capacity
	b.writeIndex = 0
	b.count = 0
}

// Initialized reports whether the buffer has a backing array.
func (b *Buffer[T]) Initialized() bool { return b.items != nil }

// Capacity returns the fixed capacity, or 0 before Initialize.
func (b *Buffer[T]) Capacity() int { return b.capacity }

// Count returns the number of stored elements.
func (b *Buffer[T]) Count() int { return b.count }

// Full reports whether the next Add evicts an element.
func (b *Buffer[T]) Full() bool { return b.items != nil && b.count == b.capacity }

// WriteIndex returns the physical slot the next Add writes to.
func (b *Buffer[T]) WriteIndex() int { return b.writeIndex }

// start returns the physical slot of the oldest element.
func (b *Buffer[T]) start() int {
	return (b.capacity - b.count + b.writeIndex) % b.capacity
}

// slot maps a logical index to its physical slot.
func (b *Buffer[T]) slot(i int) int {
	return (b.capacity - b.count + i + b.writeIndex) % b.capacity
}

func (b *Buffer[T]) drop(p *T) {
	if b.reset != nil {
		b.reset(p)
	}
}

// Add appends v as the newest element, evicting the oldest when full.
func (b *Buffer[T]) Add(v T) {
	if b.items == nil {
		logUninitialized("Add")
		return
	}

	if b.count == b.capacity {
		// when full the oldest element sits at writeIndex
		b.drop(&b.items[b.writeIndex])
	} else {
		b.count++
	}
	b.items[b.writeIndex] = v
	b.writeIndex = (b.writeIndex + 1) % b.capacity
}

// Insert places v at logical index i, shifting the elements from i to the
// newest one slot towards the end. Inserting at Count() is Add.
//
// When the buffer is full the oldest element is evicted first, so v lands at
// logical index i-1. Inserting at index 0 of a full buffer would make v the
// element evicted, so v is dropped.
//
// Cost is O(Count()-i).
func (b *Buffer[T]) Insert(i int, v T) {
	if b.items == nil {
		logUninitialized("Insert")
		return
	}
	if i < 0 || i > b.count {
		logIndex("Insert", i, b.count)
		return
	}
	if i == b.count {
		b.Add(v)
		return
	}

	if b.count == b.capacity {
		if i == 0 {
			b.drop(&v)
			return
		}
		b.drop(&b.items[b.start()])
		b.count--
		i--
	}

	start := b.start()
	for j := b.count; j > i; j-- {
		b.items[(start+j)%b.capacity] = b.items[(start+j-1)%b.capacity]
	}
	b.items[(start+i)%b.capacity] = v
	b.count++
	b.writeIndex = (b.writeIndex + 1) % b.capacity
}

// RemoveRange removes n elements from the oldest end when fromStart is true,
// or from the newest end otherwise. Removing Count() or more elements is Clear.
//
// Only the logical bounds move, so a plain Buffer removes in O(1). Removed
// slots keep their values until they are overwritten or the buffer is cleared.
func (b *Buffer[T]) RemoveRange(fromStart bool, n int) {
	if b.items == nil {
		logUninitialized("RemoveRange")
		return
	}
	if n <= 0 {
		return
	}
	if n >= b.count {
		b.Clear()
		return
	}

	if b.reset != nil {
		first := 0
		if !fromStart {
			first = b.count - n
		}
		for k := first; k < first+n; k++ {
			b.reset(&b.items[b.slot(k)])
		}
	}

	if !fromStart {
		b.writeIndex = (b.writeIndex - n + b.capacity) % b.capacity
	}
	b.count -= n
}

// Clear removes every element while keeping the backing array.
func (b *Buffer[T]) Clear() {
	if b.items == nil {
		return
	}
	if b.reset != nil {
		for k := 0; k < b.count; k++ {
			b.reset(&b.items[b.slot(k)])
		}
	}
	clear(b.items)
	b.writeIndex = 0
	b.count = 0
}

// Release clears the buffer and returns its backing array to the pool. The
// buffer must be initialized again before reuse.
func (b *Buffer[T]) Release() {
	if b.items == nil {
		return
	}
	b.Clear()
	pool.Shared[T]().Return(b.items)
	b.items = nil
	b.capacity = 0
}

// At returns the element at logical index i. An out-of-range index is logged
// and yields the zero value.
func (b *Buffer[T]) At(i int) T {
	v, _ := b.lookup("At", i)
	return v
}

// TryAt returns the element at logical index i and whether i was in range.
// It never logs.
func (b *Buffer[T]) TryAt(i int) (T, bool) {
	var zero T
	if b.items == nil || i < 0 || i >= b.count {
		return zero, false
	}

	return b.items[b.slot(i)], true
}

// Ref returns a pointer to the element at logical index i for in-place
// updates, or nil when i is out of range. The pointer is valid until the
// element leaves the buffer.
func (b *Buffer[T]) Ref(i int) *T {
	if b.items == nil {
		logUninitialized("Ref")
		return nil
	}
	if i < 0 || i >= b.count {
		logIndex("Ref", i, b.count)
		return nil
	}

	return &b.items[b.slot(i)]
}

// Set replaces the element at logical index i.
func (b *Buffer[T]) Set(i int, v T) {
	p := b.Ref(i)
	if p == nil {
		return
	}
	b.drop(p)
	*p = v
}

func (b *Buffer[T]) lookup(op string, i int) (T, bool) {
	var zero T
	if b.items == nil {
		logUninitialized(op)
		return zero, false
	}
	if i < 0 || i >= b.count {
		logIndex(op, i, b.count)
		return zero, false
	}

	return b.items[b.slot(i)], true
}

// Oldest returns the element at logical index 0.
func (b *Buffer[T]) Oldest() (T, bool) { return b.TryAt(0) }

// Newest returns the most recently added element.
func (b *Buffer[T]) Newest() (T, bool) { return b.TryAt(b.count - 1) }

// Iter returns an iterator positioned before the oldest element.
func (b *Buffer[T]) Iter() Iterator[T] {
	return Iterator[T]{buf: b, count: b.count, index: -1}
}

// All yields every element from oldest to newest with its logical index. It
// stops early, logging an error, if the buffer's count changes during the walk.
func (b *Buffer[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		it := b.Iter()
		for it.Next() {
			if !yield(it.Index(), it.Value()) {
				return
			}
		}
	}
}

// Values returns the elements from oldest to newest as a new slice.
func (b *Buffer[T]) Values() []T {
	out := make([]T, 0, b.count)
	for _, v := range b.All() {
		out = append(out, v)
	}

	return out
}
