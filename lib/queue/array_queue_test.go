package queue

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArrayQueue_FIFO(t *testing.T) {
	q := NewArrayQueue[int](WithArrayQueueCapacity[int](2))
	require.Equal(t, int64(2), q.Cap())

	_, ok := q.PopFront()
	require.False(t, ok)
	_, ok = q.Peek()
	require.False(t, ok)

	for i := 0; i < 100; i++ {
		require.NoError(t, q.PushBack(i))
	}
	require.Equal(t, int64(100), q.Len())
	require.Equal(t, int64(128), q.Cap())

	head, ok := q.Peek()
	require.True(t, ok)
	require.Equal(t, 0, head)

	for i := 0; i < 100; i++ {
		e, ok := q.PopFront()
		require.True(t, ok)
		require.Equal(t, i, e)
	}
	require.Equal(t, int64(0), q.Len())
	_, ok = q.PopFront()
	require.False(t, ok)
}

func TestArrayQueue_WrapAroundGrow(t *testing.T) {
	q := NewArrayQueue[int](WithArrayQueueCapacity[int](4))
	expected := make([]int, 0, 16)
	next := 0
	// Move the head forward, so the tail wraps around before growing.
	for i := 0; i < 3; i++ {
		require.NoError(t, q.PushBack(next))
		next++
	}
	for i := 0; i < 2; i++ {
		e, ok := q.PopFront()
		require.True(t, ok)
		require.Equal(t, i, e)
	}
	expected = append(expected, 2)
	for i := 0; i < 6; i++ {
		require.NoError(t, q.PushBack(next))
		expected = append(expected, next)
		next++
	}
	require.Equal(t, int64(8), q.Cap())

	actual := make([]int, 0, len(expected))
	for q.Len() > 0 {
		e, _ := q.PopFront()
		actual = append(actual, e)
	}
	require.Equal(t, expected, actual)
}

func TestArrayQueue_MaxCapacity(t *testing.T) {
	testcases := []struct {
		name     string
		opts     []ArrayQueueOption[string]
		accepted int
	}{
		{
			name:     "bounded 4",
			opts:     []ArrayQueueOption[string]{WithArrayQueueMaxCapacity[string](4)},
			accepted: 4,
		},
		{
			name: "bounded 5 round up to 8",
			opts: []ArrayQueueOption[string]{
				WithArrayQueueCapacity[string](2),
				WithArrayQueueMaxCapacity[string](5),
			},
			accepted: 8,
		},
		{
			name: "initial capacity clamped",
			opts: []ArrayQueueOption[string]{
				WithArrayQueueCapacity[string](64),
				WithArrayQueueMaxCapacity[string](2),
			},
			accepted: 2,
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			q := NewArrayQueue[string](tc.opts...)
			for i := 0; i < tc.accepted; i++ {
				require.NoError(tt, q.PushBack("x"))
			}
			require.ErrorIs(tt, q.PushBack("y"), ErrQueueFull)
			require.Equal(tt, int64(tc.accepted), q.Len())

			e, ok := q.PopFront()
			require.True(tt, ok)
			require.Equal(tt, "x", e)
			require.NoError(tt, q.PushBack("y"))
		})
	}
}

func TestCeilPowOf2(t *testing.T) {
	require.Equal(t, int64(1), ceilPowOf2(-1))
	require.Equal(t, int64(1), ceilPowOf2(1))
	require.Equal(t, int64(2), ceilPowOf2(2))
	require.Equal(t, int64(4), ceilPowOf2(3))
	require.Equal(t, int64(1024), ceilPowOf2(1000))
}

func BenchmarkArrayQueue_PushPop(b *testing.B) {
	q := NewArrayQueue[int]()
	for i := 0; i < b.N; i++ {
		_ = q.PushBack(i)
		if i&0x3 == 0 {
			_, _ = q.PopFront()
		}
	}
}
