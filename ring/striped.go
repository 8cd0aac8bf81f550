package ring

import "fmt"

// Striped holds several fixed-capacity FIFO queues in one contiguous array.
// Queue q owns the stripe [q*Capacity, (q+1)*Capacity).
//
// Enqueue on a full queue overwrites that queue's oldest element; other queues
// are never touched. Operations on different queue indices may run
// concurrently, but AddQueue and RemoveQueueAtSwapBack reshape the whole
// store and need exclusive access.
//
// A queue index outside [0, QueueCount()) is a programming error and panics.
type Striped[T any] struct {
	items    []T
	heads    []int
	counts   []int
	capacity int
}

// NewStriped creates queues empty queues of the given capacity each.
func NewStriped[T any](queues, capacity int) *Striped[T] {
	if capacity < 1 {
		panic(fmt.Sprintf("ring: striped capacity must be positive, got %d", capacity))
	}
	if queues < 0 {
		panic(fmt.Sprintf("ring: negative queue count %d", queues))
	}

	return &Striped[T]{
		items:    make([]T, queues*capacity),
		heads:    make([]int, queues),
		counts:   make([]int, queues),
		capacity: capacity,
	}
}

// Capacity returns the per-queue capacity.
func (s *Striped[T]) Capacity() int { return s.capacity }

// QueueCount returns the number of queues.
func (s *Striped[T]) QueueCount() int { return len(s.heads) }

// Len returns the number of elements in queue q.
func (s *Striped[T]) Len(q int) int { return s.counts[q] }

func (s *Striped[T]) slot(q, i int) int {
	return q*s.capacity + (s.heads[q]+i)%s.capacity
}

// Enqueue appends v to queue q, evicting the queue's oldest element when full.
func (s *Striped[T]) Enqueue(q int, v T) {
	if s.counts[q] == s.capacity {
		s.items[s.slot(q, 0)] = v
		s.heads[q] = (s.heads[q] + 1) % s.capacity

		return
	}
	s.items[s.slot(q, s.counts[q])] = v
	s.counts[q]++
}

// TryDequeue removes and returns the oldest element of queue q.
func (s *Striped[T]) TryDequeue(q int) (T, bool) {
	var zero T
	if s.counts[q] == 0 {
		return zero, false
	}

	at := s.slot(q, 0)
	v := s.items[at]
	s.items[at] = zero
	s.heads[q] = (s.heads[q] + 1) % s.capacity
	s.counts[q]--

	return v, true
}

// Dequeue removes and returns the oldest element of queue q. It panics when
// the queue is empty.
func (s *Striped[T]) Dequeue(q int) T {
	v, ok := s.TryDequeue(q)
	if !ok {
		panic(fmt.Sprintf("ring: Dequeue on empty queue %d", q))
	}

	return v
}

// TryPeek returns the oldest element of queue q without removing it.
func (s *Striped[T]) TryPeek(q int) (T, bool) {
	if s.counts[q] == 0 {
		var zero T
		return zero, false
	}

	return s.items[s.slot(q, 0)], true
}

// Peek returns the oldest element of queue q. It panics when the queue is empty.
func (s *Striped[T]) Peek(q int) T {
	v, ok := s.TryPeek(q)
	if !ok {
		panic(fmt.Sprintf("ring: Peek on empty queue %d", q))
	}

	return v
}

// DequeueUpTo removes up to n of the oldest elements of queue q. It returns
// how many were removed and the last (newest) of them.
func (s *Striped[T]) DequeueUpTo(q, n int) (int, T) {
	var zero T
	m := min(n, s.counts[q])
	if m <= 0 {
		return 0, zero
	}

	last := s.items[s.slot(q, m-1)]
	for i := range m {
		s.items[s.slot(q, i)] = zero
	}
	s.heads[q] = (s.heads[q] + m) % s.capacity
	s.counts[q] -= m

	return m, last
}

// At returns element i of queue q, 0 being the oldest. An out-of-range i is
// logged and yields the zero value.
func (s *Striped[T]) At(q, i int) T {
	if i < 0 || i >= s.counts[q] {
		logIndex("Striped.At", i, s.counts[q])

		var zero T
		return zero
	}

	return s.items[s.slot(q, i)]
}

// ClearQueue empties queue q.
func (s *Striped[T]) ClearQueue(q int) {
	clear(s.items[q*s.capacity : (q+1)*s.capacity])
	s.heads[q] = 0
	s.counts[q] = 0
}

// AddQueue appends an empty queue and returns its index.
func (s *Striped[T]) AddQueue() int {
	s.items = append(s.items, make([]T, s.capacity)...)
	s.heads = append(s.heads, 0)
	s.counts = append(s.counts, 0)

	return len(s.heads) - 1
}

// RemoveQueueAtSwapBack removes queue q by moving the last queue into its
// stripe. The last queue's index becomes q. Cost is O(Capacity).
func (s *Striped[T]) RemoveQueueAtSwapBack(q int) {
	last := len(s.heads) - 1
	if q < 0 || q > last {
		panic(fmt.Sprintf("ring: queue index %d out of range [0, %d)", q, last+1))
	}

	c := s.capacity
	if q != last {
		copy(s.items[q*c:(q+1)*c], s.items[last*c:])
		s.heads[q] = s.heads[last]
		s.counts[q] = s.counts[last]
	}

	clear(s.items[last*c:])
	s.items = s.items[:last*c]
	s.heads = s.heads[:last]
	s.counts = s.counts[:last]
}
