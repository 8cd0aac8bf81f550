package ring

import "iter"

const minQueueCapacity = 4

// Queue is an unbounded FIFO backed by a circular array that doubles when full.
//
// The zero value is an empty queue ready to use.
type Queue[T any] struct {
	items []T
	head  int
	count int
}

// NewQueue returns an empty Queue with room for capacity elements before it grows.
func NewQueue[T any](capacity int) *Queue[T] {
	return &Queue[T]{items: make([]T, max(capacity, minQueueCapacity))}
}

// Len returns the number of queued elements.
func (q *Queue[T]) Len() int { return q.count }

// Cap returns the current size of the backing array.
func (q *Queue[T]) Cap() int { return len(q.items) }

func (q *Queue[T]) grow() {
	next := make([]T, max(2*len(q.items), minQueueCapacity))
	n := copy(next, q.items[q.head:])
	copy(next[n:], q.items[:q.head])
	q.items = next
	q.head = 0
}

// Enqueue appends v.
func (q *Queue[T]) Enqueue(v T) {
	if q.count == len(q.items) {
		q.grow()
	}
	q.items[(q.head+q.count)%len(q.items)] = v
	q.count++
}

// TryDequeue removes and returns the oldest element.
func (q *Queue[T]) TryDequeue() (T, bool) {
	var zero T
	if q.count == 0 {
		return zero, false
	}

	v := q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) % len(q.items)
	q.count--

	return v, true
}

// Dequeue removes and returns the oldest element. It panics when the queue is empty.
func (q *Queue[T]) Dequeue() T {
	v, ok := q.TryDequeue()
	if !ok {
		panic("ring: Dequeue on empty queue")
	}

	return v
}

// TryPeek returns the oldest element without removing it.
func (q *Queue[T]) TryPeek() (T, bool) {
	if q.count == 0 {
		var zero T
		return zero, false
	}

	return q.items[q.head], true
}

// Peek returns the oldest element. It panics when the queue is empty.
func (q *Queue[T]) Peek() T {
	v, ok := q.TryPeek()
	if !ok {
		panic("ring: Peek on empty queue")
	}

	return v
}

// At returns element i, 0 being the oldest. An out-of-range i is logged and
// yields the zero value.
func (q *Queue[T]) At(i int) T {
	if i < 0 || i >= q.count {
		logIndex("Queue.At", i, q.count)

		var zero T
		return zero
	}

	return q.items[(q.head+i)%len(q.items)]
}

// Clear removes every element and keeps the backing array.
func (q *Queue[T]) Clear() {
	clear(q.items)
	q.head = 0
	q.count = 0
}

// All yields the elements from oldest to newest.
func (q *Queue[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < q.count; i++ {
			if !yield(i, q.items[(q.head+i)%len(q.items)]) {
				return
			}
		}
	}
}
