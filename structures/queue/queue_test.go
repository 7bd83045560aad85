package queue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQueue(t *testing.T) {
	q := NewQueue[int]()
	assert.Equal(t, 0, q.Len())
	val, ok := q.Pop()
	assert.False(t, ok)
	assert.Equal(t, 0, val)

	q.Push(1)
	assert.Equal(t, 1, q.Len())

	val, ok = q.Pop()
	assert.True(t, ok)
	assert.Equal(t, 1, val)

	q.Push(1)
	q.Push(2)
	q.Push(3)
	assert.Equal(t, 3, q.Len())

	for expected := 1; expected <= 3; expected++ {
		val, ok = q.Pop()
		assert.True(t, ok)
		assert.Equal(t, expected, val)
	}
	assert.Equal(t, 0, q.Len())
}

func TestQueue_ZeroValue(t *testing.T) {
	var q Queue[string]
	q.Push("a")
	val, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, "a", val)
}

func TestQueue_Compaction(t *testing.T) {
	q := NewQueue[int](8)
	const total = 1000
	for i := 0; i < total; i++ {
		q.Push(i)
	}
	// Interleave pops and pushes so the head advances past the compaction threshold with items still queued.
	for i := 0; i < total; i++ {
		val, ok := q.Pop()
		require.True(t, ok)
		require.Equal(t, i, val)
		if i < 10 {
			q.Push(total + i)
		}
	}
	assert.Equal(t, 10, q.Len())
	for i := 0; i < 10; i++ {
		val, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, total+i, val)
	}
}

func TestQueue_Clear(t *testing.T) {
	q := NewQueue[int]()
	q.Push(1)
	q.Push(2)
	_, _ = q.Pop()
	q.Push(3)
	assert.Equal(t, 2, q.Clear())
	assert.Equal(t, 0, q.Len())
	_, ok := q.Pop()
	assert.False(t, ok)
}

func TestQueue_Drain(t *testing.T) {
	q := NewQueue[int]()
	for i := 1; i <= 5; i++ {
		q.Push(i)
	}
	var got []int
	for val := range q.Drain() {
		got = append(got, val)
		if val == 3 {
			break
		}
	}
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Equal(t, 2, q.Len())
}

func TestQueue_ConcurrentPushPop(t *testing.T) {
	var (
		q        = NewQueue[int]()
		wg       sync.WaitGroup
		mux      sync.Mutex
		seen     = map[int]bool{}
		producer = 8
		perProd  = 250
	)
	wg.Add(producer)
	for p := 0; p < producer; p++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perProd; i++ {
				q.Push(p*perProd + i)
			}
		}()
	}
	wg.Wait()

	wg.Add(4)
	for c := 0; c < 4; c++ {
		go func() {
			defer wg.Done()
			for val := range q.Drain() {
				mux.Lock()
				seen[val] = true
				mux.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, producer*perProd)
	assert.Equal(t, 0, q.Len())
}
