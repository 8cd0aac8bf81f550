package ring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueue_GrowthKeepsOrder(t *testing.T) {
	q := NewQueue[int](4)

	// move the head off zero so growth has to unwrap
	for i := range 3 {
		q.Enqueue(i)
	}
	require.Equal(t, 0, q.Dequeue())
	require.Equal(t, 1, q.Dequeue())

	for i := 3; i < 20; i++ {
		q.Enqueue(i)
	}
	require.Equal(t, 18, q.Len())
	require.GreaterOrEqual(t, q.Cap(), 18)

	for want := 2; want < 20; want++ {
		require.Equal(t, want, q.Peek())
		require.Equal(t, want, q.Dequeue())
	}
	require.Equal(t, 0, q.Len())
}

func TestQueue_ZeroValue(t *testing.T) {
	var q Queue[string]
	_, ok := q.TryDequeue()
	require.False(t, ok)
	require.Panics(t, func() { q.Dequeue() })
	require.Panics(t, func() { q.Peek() })

	q.Enqueue("a")
	q.Enqueue("b")
	require.Equal(t, "b", q.At(1))
	require.Equal(t, "", q.At(2))

	var got []string
	for _, v := range q.All() {
		got = append(got, v)
	}
	require.Equal(t, []string{"a", "b"}, got)

	q.Clear()
	require.Equal(t, 0, q.Len())
	_, ok = q.TryPeek()
	require.False(t, ok)
}
