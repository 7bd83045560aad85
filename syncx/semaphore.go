package syncx

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

var ErrSemaphoreClosed = errors.New("syncx: semaphore closed")

// Semaphore is a counting semaphore of fixed size.
// Unlike a bare [semaphore.Weighted], it reports how many slots are available, and it can be closed so that no further slots are granted.
// Slots acquired before closing may still be released.
type Semaphore struct {
	sem       *semaphore.Weighted
	size      int64
	held      atomic.Int64
	closed    atomic.Bool
	closeOnce sync.Once
	done      chan struct{}
}

// NewSemaphore creates a [Semaphore] with size slots.
// Panics if size < 1.
func NewSemaphore(size int) *Semaphore {
	if size < 1 {
		panic("semaphore size must be >= 1")
	}
	return &Semaphore{
		sem:  semaphore.NewWeighted(int64(size)),
		size: int64(size),
		done: make(chan struct{}),
	}
}

// Size returns the total number of slots.
func (s *Semaphore) Size() int {
	return int(s.size)
}

// Available returns the number of free slots.
// The value is a snapshot and may be stale by the time it's used.
func (s *Semaphore) Available() int {
	return int(s.size - s.held.Load())
}

// TryAcquire takes a slot without blocking, reporting whether it succeeded.
// Always returns false once the [Semaphore] is closed, including when Close runs concurrently with the acquire.
func (s *Semaphore) TryAcquire() bool {
	if s.closed.Load() {
		return false
	}
	if !s.sem.TryAcquire(1) {
		return false
	}
	s.held.Add(1)
	// Close may have landed between the check above and the acquire.
	if s.closed.Load() {
		s.Release()
		return false
	}
	return true
}

// Acquire blocks until a slot is available, ctx is done, or the [Semaphore] is closed.
func (s *Semaphore) Acquire(ctx context.Context) error {
	if s.closed.Load() {
		return ErrSemaphoreClosed
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.done:
			cancel()
		case <-ctx.Done():
		}
	}()
	if err := s.sem.Acquire(ctx, 1); err != nil {
		if s.closed.Load() {
			return ErrSemaphoreClosed
		}
		return err
	}
	s.held.Add(1)
	if s.closed.Load() {
		s.Release()
		return ErrSemaphoreClosed
	}
	return nil
}

// Release returns a slot to the [Semaphore].
// Panics if more slots are released than were acquired.
func (s *Semaphore) Release() {
	if s.held.Add(-1) < 0 {
		s.held.Add(1)
		panic("syncx: Semaphore.Release called without matching acquire")
	}
	s.sem.Release(1)
}

// Close stops the [Semaphore] from granting slots and wakes any blocked [Semaphore.Acquire] calls.
// Returns false if it was already closed.
func (s *Semaphore) Close() bool {
	closed := false
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.done)
		closed = true
	})
	return closed
}

// Closed reports whether [Semaphore.Close] has been called.
func (s *Semaphore) Closed() bool {
	return s.closed.Load()
}
