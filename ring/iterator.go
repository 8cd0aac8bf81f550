package ring

import (
	"go.uber.org/zap"

	"github.com/arloliu/tickwire/internal/logging"
	"github.com/arloliu/tickwire/internal/metrics"
)

// Iterator walks a Buffer from oldest to newest.
//
// It records the buffer's count when created. If the count differs on a later
// call to Next, the buffer was modified during the walk: Next logs an error and
// returns false.
type Iterator[T any] struct {
	buf   *Buffer[T]
	count int
	index int
	cur   T
}

// Next advances to the next element and reports whether there is one.
func (it *Iterator[T]) Next() bool {
	if it.buf == nil {
		return false
	}
	if it.buf.count != it.count {
		metrics.RingMutatedWalks.Inc()
		logging.Named("ring").Error("ring buffer modified during iteration",
			zap.Int("expected_count", it.count),
			zap.Int("count", it.buf.count),
		)
		it.buf = nil

		return false
	}
	if it.index+1 >= it.count {
		return false
	}

	it.index++
	it.cur = it.buf.items[it.buf.slot(it.index)]

	return true
}

// Value returns the current element.
func (it *Iterator[T]) Value() T { return it.cur }

// Index returns the logical index of the current element.
func (it *Iterator[T]) Index() int { return it.index }
