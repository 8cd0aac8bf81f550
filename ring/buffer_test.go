package ring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/arloliu/tickwire/internal/logging"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.ErrorLevel)
	logging.Install(zap.New(core))
	t.Cleanup(func() { logging.Install(nil) })

	return logs
}

func fill(b *Buffer[string], values ...string) {
	for _, v := range values {
		b.Add(v)
	}
}

func TestBuffer_FIFOWithEviction(t *testing.T) {
	b := New[string](3)
	fill(b, "A", "B", "C", "D")

	require.Equal(t, []string{"B", "C", "D"}, b.Values())
	require.Equal(t, 3, b.Count())
	require.True(t, b.Full())

	b.RemoveRange(true, 1)
	require.Equal(t, []string{"C", "D"}, b.Values())

	oldest, ok := b.Oldest()
	require.True(t, ok)
	require.Equal(t, "C", oldest)
	newest, ok := b.Newest()
	require.True(t, ok)
	require.Equal(t, "D", newest)
}

func TestBuffer_PhysicalMapping(t *testing.T) {
	b := New[int](4)
	for i := 1; i <= 6; i++ {
		b.Add(i)
	}

	// writeIndex wrapped to 2, oldest (3) lives in slot 2
	require.Equal(t, 2, b.WriteIndex())
	require.Equal(t, 2, b.slot(0))
	for i := range 4 {
		require.Equal(t, i+3, b.At(i))
	}
}

func TestBuffer_InsertInMiddle(t *testing.T) {
	b := New[string](5)
	fill(b, "A", "B", "D", "E")

	b.Insert(2, "C")
	require.Equal(t, []string{"A", "B", "C", "D", "E"}, b.Values())
}

func TestBuffer_InsertWrapped(t *testing.T) {
	b := New[int](5)
	for _, v := range []int{0, 0, 0, 10, 20, 40} {
		b.Add(v)
	}
	b.RemoveRange(true, 1)
	require.Equal(t, []int{0, 10, 20, 40}, b.Values())

	b.Insert(3, 30)
	require.Equal(t, []int{0, 10, 20, 30, 40}, b.Values())
}

func TestBuffer_InsertEnds(t *testing.T) {
	b := New[string](3)
	fill(b, "B")
	b.Insert(0, "A")
	b.Insert(2, "C")
	require.Equal(t, []string{"A", "B", "C"}, b.Values())

	// full: the oldest is evicted and the value shifts down by one
	b.Insert(2, "X")
	require.Equal(t, []string{"B", "X", "C"}, b.Values())

	// full, index 0: the new value would be evicted immediately
	b.Insert(0, "Z")
	require.Equal(t, []string{"B", "X", "C"}, b.Values())
}

func TestBuffer_RemoveRange(t *testing.T) {
	tests := []struct {
		name      string
		fromStart bool
		n         int
		want      []string
	}{
		{"from start", true, 2, []string{"C", "D"}},
		{"from end", false, 1, []string{"A", "B", "C"}},
		{"zero", true, 0, []string{"A", "B", "C", "D"}},
		{"all", false, 4, []string{}},
		{"more than count", true, 9, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New[string](4)
			fill(b, "A", "B", "C", "D")
			b.RemoveRange(tt.fromStart, tt.n)
			require.Equal(t, tt.want, b.Values())
		})
	}
}

func TestBuffer_AddAfterRemoveFromEnd(t *testing.T) {
	b := New[string](4)
	fill(b, "A", "B", "C")
	b.RemoveRange(false, 2)
	fill(b, "X", "Y")
	require.Equal(t, []string{"A", "X", "Y"}, b.Values())
}

func TestBuffer_SetAndRef(t *testing.T) {
	b := New[int](3)
	b.Add(1)
	b.Add(2)

	b.Set(1, 20)
	*b.Ref(0) += 10
	require.Equal(t, []int{11, 20}, b.Values())
}

func TestBuffer_OutOfRange(t *testing.T) {
	logs := observeLogs(t)
	b := New[int](2)
	b.Add(7)

	assert.Equal(t, 0, b.At(1))
	assert.Equal(t, 0, b.At(-1))
	assert.Nil(t, b.Ref(5))
	b.Set(3, 1)
	b.Insert(4, 1)
	require.Equal(t, 5, logs.FilterMessage("index out of range").Len())

	_, ok := b.TryAt(1)
	assert.False(t, ok)
	require.Equal(t, 5, logs.Len(), "TryAt does not log")
}

func TestBuffer_Uninitialized(t *testing.T) {
	logs := observeLogs(t)
	var b Buffer[int]

	require.False(t, b.Initialized())
	b.Add(1)
	assert.Equal(t, 0, b.At(0))
	b.RemoveRange(true, 1)
	_, ok := b.Newest()
	assert.False(t, ok)
	require.Equal(t, 3, logs.FilterMessage("buffer used before Initialize").Len())

	b.Initialize(2)
	b.Add(1)
	require.Equal(t, 1, b.At(0))
}

func TestBuffer_ClearAndRelease(t *testing.T) {
	b := New[string](3)
	fill(b, "A", "B")

	b.Clear()
	require.Equal(t, 0, b.Count())
	require.Equal(t, 3, b.Capacity())
	fill(b, "C")
	require.Equal(t, []string{"C"}, b.Values())

	b.Release()
	require.False(t, b.Initialized())
	require.Equal(t, 0, b.Capacity())

	b.Initialize(5)
	require.Equal(t, 5, b.Capacity())
	require.Equal(t, 0, b.Count())
	_, ok := b.Oldest()
	require.False(t, ok, "a re-rented array starts empty")
}

func TestBuffer_Reinitialize(t *testing.T) {
	b := New[int](2)
	b.Add(1)
	b.Initialize(2)
	require.Equal(t, 0, b.Count())

	b.Add(1)
	b.Initialize(8)
	require.Equal(t, 8, b.Capacity())
	require.Equal(t, 0, b.Count())
}

func TestIterator_DetectsMutation(t *testing.T) {
	logs := observeLogs(t)
	b := New[int](4)
	b.Add(1)
	b.Add(2)
	b.Add(3)

	var seen []int
	for i, v := range b.All() {
		seen = append(seen, v)
		if i == 0 {
			b.RemoveRange(false, 1)
		}
	}
	require.Equal(t, []int{1}, seen)
	require.Equal(t, 1, logs.FilterMessage("ring buffer modified during iteration").Len())
}

func TestIterator_Struct(t *testing.T) {
	b := New[int](3)
	b.Add(5)
	b.Add(6)

	it := b.Iter()
	require.True(t, it.Next())
	require.Equal(t, 0, it.Index())
	require.Equal(t, 5, it.Value())
	require.True(t, it.Next())
	require.Equal(t, 6, it.Value())
	require.False(t, it.Next())
	require.False(t, it.Next())
}

func BenchmarkBuffer_Add(b *testing.B) {
	buf := New[int](64)
	b.ReportAllocs()
	i := 0
	for b.Loop() {
		buf.Add(i)
		i++
	}
}
