package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPool_ReusesMostRecent(t *testing.T) {
	p := NewPool(WithPoolInitialCapacity(16))

	a := p.Acquire()
	b := p.Acquire()
	require.Equal(t, 16, a.Capacity())

	a.WriteUint32(1)
	p.Release(a)
	p.Release(b)
	require.Equal(t, 2, p.Idle())

	require.Same(t, b, p.Acquire())
	got := p.Acquire()
	require.Same(t, a, got)
	require.Equal(t, 0, got.Length(), "released writers come back empty")
	require.Equal(t, 0, p.Idle())
}

func TestPool_DiscardsOversized(t *testing.T) {
	p := NewPool(WithPoolInitialCapacity(8), WithPoolMaxCapacity(32))

	w := p.Acquire()
	w.WriteRaw(make([]byte, 64))
	p.Release(w)
	require.Equal(t, 0, p.Idle())

	p.Release(nil)
	require.Equal(t, 0, p.Idle())
}

func TestPool_MaxIdle(t *testing.T) {
	p := NewPool(WithPoolMaxIdle(1))
	p.Release(p.Acquire())
	p.Release(NewWriter())
	require.Equal(t, 1, p.Idle())
}

func TestReaderPool(t *testing.T) {
	p := NewReaderPool(2)

	r := p.Acquire([]byte{0x05})
	require.Equal(t, uint8(5), r.ReadUint8())
	r.Skip(1)
	require.Error(t, r.Err())
	p.Release(r)

	again := p.Acquire([]byte{0x07})
	require.Same(t, r, again)
	require.NoError(t, again.Err())
	require.Equal(t, uint8(7), again.ReadUint8())
}
