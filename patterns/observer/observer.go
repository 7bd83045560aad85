// Package observer provides a value that notifies observers when it changes.
package observer

import (
	"context"
	"sync"

	"github.com/saylorsolutions/concur/event"
	"github.com/saylorsolutions/concur/executor"
	"github.com/saylorsolutions/concur/syncx"
)

// Observer receives a new value from a [Subject] when it changes.
type Observer[T any] func(newVal T)

// Subject is a value that may be observed for changes.
type Subject[T any] interface {
	Get() T
	// Set queues a change. Changes are applied and propagated one at a time, in the order they were set.
	Set(newVal T) error
	// Observe registers obs to be called after each change, and returns a function that removes it.
	Observe(obs Observer[T]) (func(), error)
}

// NewSubject creates a [Subject] implementation with a context for cancellation.
// Once the context is cancelled, the [Subject] will no longer accept or propagate changes.
func NewSubject[T any](ctx context.Context, val T) (Subject[T], error) {
	sub := &subject[T]{
		value: val,
	}
	changes, err := executor.New[T](ctx, sub.apply, executor.Name("observer"))
	if err != nil {
		return nil, err
	}
	sub.changes = changes
	if ctx != nil {
		context.AfterFunc(ctx, changes.Dispose)
	}
	return sub, nil
}

type subject[T any] struct {
	changes *executor.QueueExecutor[T]
	changed event.SyncEventT[T]

	mux   sync.RWMutex
	value T
}

// apply runs on the single executor slot, so changes never overlap.
func (s *subject[T]) apply(_ context.Context, newVal T) error {
	syncx.LockFunc(&s.mux, func() {
		s.value = newVal
	})
	// Observers run unlocked so they can call Get.
	s.changed.Invoke(newVal)
	return nil
}

func (s *subject[T]) Get() T {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.value
}

func (s *subject[T]) Set(newVal T) error {
	return s.changes.Enqueue(newVal)
}

func (s *subject[T]) Observe(obs Observer[T]) (func(), error) {
	return s.changed.Subscribe(event.SyncHandlerT[T](obs))
}
