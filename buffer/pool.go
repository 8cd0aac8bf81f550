package buffer

import (
	"github.com/arloliu/tickwire/internal/metrics"
	"github.com/arloliu/tickwire/internal/options"
)

const (
	// DefaultPoolMaxCapacity is the largest Writer capacity a Pool keeps for reuse.
	DefaultPoolMaxCapacity = 1024 * 64 // 64KiB
	// DefaultPoolMaxIdle is the number of idle Writers a Pool retains.
	DefaultPoolMaxIdle = 64
)

// Pool recycles Writers through a stack-like free list.
//
// A Pool is owned by a single goroutine (typically the network thread) and is
// not safe for concurrent use. Writers whose capacity grew past the configured
// maximum are dropped on Release instead of being retained.
type Pool struct {
	free        []*Writer
	initialCap  int
	maxCapacity int
	maxIdle     int
}

// PoolOption configures a Pool.
type PoolOption = options.Option[*Pool]

// WithPoolInitialCapacity sets the capacity of Writers created on a pool miss.
func WithPoolInitialCapacity(n int) PoolOption {
	return options.NoError(func(p *Pool) {
		if n > 0 {
			p.initialCap = n
		}
	})
}

// WithPoolMaxCapacity sets the capacity above which released Writers are discarded.
// Zero disables the limit.
func WithPoolMaxCapacity(n int) PoolOption {
	return options.NoError(func(p *Pool) {
		if n >= 0 {
			p.maxCapacity = n
		}
	})
}

// WithPoolMaxIdle bounds the number of idle Writers retained.
func WithPoolMaxIdle(n int) PoolOption {
	return options.NoError(func(p *Pool) {
		if n >= 0 {
			p.maxIdle = n
		}
	})
}

// NewPool creates a Writer pool.
func NewPool(opts ...PoolOption) *Pool {
	p := &Pool{
		initialCap:  DefaultWriterCapacity,
		maxCapacity: DefaultPoolMaxCapacity,
		maxIdle:     DefaultPoolMaxIdle,
	}
	_ = options.Apply(p, opts...)

	return p
}

// Acquire returns an empty Writer, reusing the most recently released one when available.
func (p *Pool) Acquire() *Writer {
	n := len(p.free)
	if n == 0 {
		metrics.PoolMisses.Inc()
		return NewWriter(WithInitialCapacity(p.initialCap))
	}

	w := p.free[n-1]
	p.free[n-1] = nil
	p.free = p.free[:n-1]
	metrics.PoolHits.Inc()

	return w
}

// Release resets w and returns it to the pool. Releasing nil is a no-op.
//
// The caller must not use w after Release.
func (p *Pool) Release(w *Writer) {
	if w == nil {
		return
	}
	if (p.maxCapacity > 0 && w.Capacity() > p.maxCapacity) || len(p.free) >= p.maxIdle {
		metrics.PoolDiscards.Inc()
		return
	}

	w.Reset()
	p.free = append(p.free, w)
}

// Idle returns the number of Writers waiting in the pool.
func (p *Pool) Idle() int { return len(p.free) }

// ReaderPool recycles Reader structs. Readers hold no storage of their own, so
// the pool only saves the struct allocation on hot receive paths.
type ReaderPool struct {
	free    []*Reader
	maxIdle int
}

// NewReaderPool creates a ReaderPool retaining up to maxIdle idle Readers.
// A non-positive maxIdle uses DefaultPoolMaxIdle.
func NewReaderPool(maxIdle int) *ReaderPool {
	if maxIdle <= 0 {
		maxIdle = DefaultPoolMaxIdle
	}

	return &ReaderPool{maxIdle: maxIdle}
}

// Acquire returns a Reader over data.
func (p *ReaderPool) Acquire(data []byte) *Reader {
	n := len(p.free)
	if n == 0 {
		metrics.PoolMisses.Inc()
		return NewReader(data)
	}

	r := p.free[n-1]
	p.free[n-1] = nil
	p.free = p.free[:n-1]
	r.Reset(data)
	metrics.PoolHits.Inc()

	return r
}

// Release detaches r from its bytes and returns it to the pool.
func (p *ReaderPool) Release(r *Reader) {
	if r == nil {
		return
	}
	if len(p.free) >= p.maxIdle {
		metrics.PoolDiscards.Inc()
		return
	}

	r.Reset(nil)
	p.free = append(p.free, r)
}

// Idle returns the number of Readers waiting in the pool.
func (p *ReaderPool) Idle() int { return len(p.free) }
