// Package ring provides fixed-capacity circular containers for bounded history,
// such as the last N snapshots of an object's state.
//
// # Buffer
//
// Buffer[T] keeps at most Capacity elements. Adding to a full buffer evicts the
// oldest element. Elements are addressed by a logical index where 0 is the
// oldest element and Count()-1 the newest; the logical index i lives in slot
//
//	(Capacity - Count + i + WriteIndex) mod Capacity
//
// of the backing array, which is rented from a shared array pool on Initialize
// and returned on Release.
//
// # Lifecycle
//
// Lifecycle[T, PT] has the same API but calls (*T).Reset on every element it
// evicts, overwrites, removes or clears, so elements holding pooled resources
// give them back deterministically.
//
// # Striped
//
// Striped[T] packs several independent fixed-capacity FIFO queues into one
// contiguous array. Operations on different queue indices touch disjoint
// memory and may run concurrently.
//
// # Queue
//
// Queue[T] is an unbounded FIFO that doubles its array when full.
//
// # Errors
//
// Out-of-range indices and use of an uninitialized Buffer are logged and
// return zero values. Dequeue and Peek on an empty queue panic: calling them
// without checking is a bug in the caller.
//
// None of these types lock. A Buffer, Lifecycle or Queue must have a single
// owner at a time.
package ring
