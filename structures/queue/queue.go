package queue

import (
	"iter"
	"sync"
)

// compactThreshold is the number of consumed slots at the head of the buffer that triggers compaction on Pop.
const compactThreshold = 64

// Queue is a concurrency-safe, unbounded FIFO queue.
// The zero value is an empty Queue ready for use.
type Queue[T any] struct {
	mux    sync.RWMutex
	values []T
	head   int
}

func NewQueue[T any](initialBuffer ...int) *Queue[T] {
	if len(initialBuffer) > 0 && initialBuffer[0] > 0 {
		return &Queue[T]{values: make([]T, 0, initialBuffer[0])}
	}
	return &Queue[T]{}
}

// Len gets the length of the Queue
func (q *Queue[T]) Len() int {
	q.mux.RLock()
	defer q.mux.RUnlock()
	return len(q.values) - q.head
}

// Push will push an item to the tail of the Queue.
func (q *Queue[T]) Push(val T) {
	q.mux.Lock()
	defer q.mux.Unlock()
	q.values = append(q.values, val)
}

// Pop will pop an item from the head of the Queue.
// False will be returned if the Queue is empty.
func (q *Queue[T]) Pop() (T, bool) {
	q.mux.Lock()
	defer q.mux.Unlock()
	var mt T
	if q.head == len(q.values) {
		return mt, false
	}
	val := q.values[q.head]
	// Zero out the slot so the backing array doesn't retain references.
	q.values[q.head] = mt
	q.head++
	switch {
	case q.head == len(q.values):
		q.values = q.values[:0]
		q.head = 0
	case q.head >= compactThreshold && q.head*2 >= len(q.values):
		n := copy(q.values, q.values[q.head:])
		clear(q.values[n:])
		q.values = q.values[:n]
		q.head = 0
	}
	return val, true
}

// Clear removes all items from the Queue, returning how many were discarded.
func (q *Queue[T]) Clear() int {
	q.mux.Lock()
	defer q.mux.Unlock()
	n := len(q.values) - q.head
	clear(q.values)
	q.values = q.values[:0]
	q.head = 0
	return n
}

// Drain returns an iterator that pops items until the Queue is empty or iteration stops.
// Items pushed while draining will also be yielded.
func (q *Queue[T]) Drain() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			val, ok := q.Pop()
			if !ok {
				return
			}
			if !yield(val) {
				return
			}
		}
	}
}
