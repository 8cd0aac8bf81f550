package ring

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(s *Striped[string], q int) []string {
	out := []string{}
	for {
		v, ok := s.TryDequeue(q)
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

func TestStriped_Isolation(t *testing.T) {
	s := NewStriped[string](2, 2)

	s.Enqueue(0, "X")
	s.Enqueue(1, "a")
	s.Enqueue(0, "Y")
	s.Enqueue(1, "b")
	s.Enqueue(0, "Z")

	require.Equal(t, 2, s.Len(0))
	require.Equal(t, "Y", s.At(0, 0))
	require.Equal(t, "Z", s.At(0, 1))

	require.Equal(t, []string{"Y", "Z"}, drain(s, 0))
	require.Equal(t, []string{"a", "b"}, drain(s, 1))
}

func TestStriped_PeekAndDequeue(t *testing.T) {
	s := NewStriped[int](1, 3)
	require.Panics(t, func() { s.Dequeue(0) })
	require.Panics(t, func() { s.Peek(0) })
	_, ok := s.TryPeek(0)
	require.False(t, ok)

	s.Enqueue(0, 4)
	s.Enqueue(0, 5)
	require.Equal(t, 4, s.Peek(0))
	require.Equal(t, 4, s.Dequeue(0))
	require.Equal(t, 5, s.Peek(0))
}

func TestStriped_DequeueUpTo(t *testing.T) {
	s := NewStriped[int](2, 4)
	for i := 1; i <= 6; i++ {
		s.Enqueue(1, i) // holds 3,4,5,6
	}

	n, last := s.DequeueUpTo(1, 3)
	assert.Equal(t, 3, n)
	assert.Equal(t, 5, last)
	assert.Equal(t, 1, s.Len(1))

	n, last = s.DequeueUpTo(1, 10)
	assert.Equal(t, 1, n)
	assert.Equal(t, 6, last)

	n, last = s.DequeueUpTo(1, 2)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, last)

	n, _ = s.DequeueUpTo(0, 0)
	assert.Equal(t, 0, n)
}

func TestStriped_AddAndRemoveQueues(t *testing.T) {
	s := NewStriped[string](2, 2)
	s.Enqueue(0, "a0")
	s.Enqueue(1, "b0")
	s.Enqueue(1, "b1")
	s.Enqueue(1, "b2")

	q := s.AddQueue()
	require.Equal(t, 2, q)
	require.Equal(t, 3, s.QueueCount())
	s.Enqueue(q, "c0")

	// queue 2 moves into slot 0
	s.RemoveQueueAtSwapBack(0)
	require.Equal(t, 2, s.QueueCount())
	require.Equal(t, []string{"c0"}, drain(s, 0))
	require.Equal(t, []string{"b1", "b2"}, drain(s, 1))

	s.RemoveQueueAtSwapBack(1)
	require.Equal(t, 1, s.QueueCount())
	require.Panics(t, func() { s.RemoveQueueAtSwapBack(1) })
}

func TestStriped_RemoveKeepsWrappedHead(t *testing.T) {
	s := NewStriped[int](2, 3)
	for i := range 5 {
		s.Enqueue(1, i) // head wrapped, holds 2,3,4
	}
	s.RemoveQueueAtSwapBack(0)

	require.Equal(t, 3, s.Len(0))
	for i := range 3 {
		require.Equal(t, i+2, s.At(0, i))
	}
}

func TestStriped_ClearQueue(t *testing.T) {
	s := NewStriped[string](2, 2)
	s.Enqueue(0, "a")
	s.Enqueue(1, "b")
	s.ClearQueue(0)

	require.Equal(t, 0, s.Len(0))
	require.Equal(t, 1, s.Len(1))
}

func TestStriped_ConcurrentQueues(t *testing.T) {
	const (
		queues = 8
		rounds = 1000
	)
	s := NewStriped[int](queues, 16)

	var wg sync.WaitGroup
	for q := range queues {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rounds {
				s.Enqueue(q, q*rounds+i)
				if i%2 == 1 {
					s.TryDequeue(q)
				}
			}
		}()
	}
	wg.Wait()

	// the queue saturates at 16 and the final odd round dequeues once
	for q := range queues {
		require.Equal(t, 15, s.Len(q))
		require.Equal(t, q*rounds+rounds-1, s.At(q, s.Len(q)-1))
		for i := range s.Len(q) {
			v := s.At(q, i)
			require.Equal(t, q, v/rounds, "queue %d holds a foreign value", q)
		}
	}
}

func TestNewStriped_InvalidArgs(t *testing.T) {
	require.Panics(t, func() { NewStriped[int](1, 0) })
	require.Panics(t, func() { NewStriped[int](-1, 2) })
	require.Equal(t, 0, NewStriped[int](0, 2).QueueCount())
}
