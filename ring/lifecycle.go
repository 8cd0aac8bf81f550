package ring

// Resetter is satisfied by a pointer to T that can return T to its empty state.
type Resetter[T any] interface {
	*T
	Reset()
}

// Lifecycle is a Buffer that calls Reset on every element it evicts,
// overwrites, removes or clears.
//
// Use it for elements that own pooled resources, for example a snapshot
// holding a rented slice:
//
//	type snapshot struct{ entities []uint32 }
//	func (s *snapshot) Reset() { pool.Shared[uint32]().Return(s.entities); s.entities = nil }
//
//	history := ring.NewLifecycle[snapshot](64)
//
// Removing a range resets each removed element, so RemoveRange costs O(n) here.
type Lifecycle[T any, PT Resetter[T]] struct {
	Buffer[T]
}

// NewLifecycle returns a Lifecycle initialized with the given capacity.
func NewLifecycle[T any, PT Resetter[T]](capacity int) *Lifecycle[T, PT] {
	l := &Lifecycle[T, PT]{}
	l.Initialize(capacity)

	return l
}

// Initialize rents a backing array for capacity elements, resetting any
// elements already held.
func (l *Lifecycle[T, PT]) Initialize(capacity int) {
	l.reset = func(p *T) { PT(p).Reset() }
	l.Buffer.Initialize(capacity)
}
