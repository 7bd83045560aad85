package event

import (
	"context"

	"github.com/saylorsolutions/concur/syncx"
)

func invokeAll[H any](handlers []H, call func(H) error) error {
	var errs []error
	for _, h := range handlers {
		// Failures never stop the remaining handlers.
		if err := syncx.CallErr(func() error {
			return call(h)
		}); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return newAggregateError(errs, len(handlers))
}

func invokeAllAsync[H any](handlers []H, call func(H) error) syncx.Future[error] {
	if len(handlers) == 0 {
		return syncx.StaticFuture[error](nil)
	}
	f := syncx.NewFuture[error]()
	go func() {
		f.Resolve(invokeAll(handlers, call))
	}()
	return f
}

// AsyncHandler handles an [AsyncEvent].
type AsyncHandler func(ctx context.Context) error

// AsyncEvent is an event with no argument whose handlers may block and fail.
// The zero value is ready for use.
type AsyncEvent struct {
	handlers HandlerList[AsyncHandler]
}

func (e *AsyncEvent) Register(handler AsyncHandler) error {
	return e.handlers.Register(handler)
}

func (e *AsyncEvent) Subscribe(handler AsyncHandler) (func(), error) {
	return e.handlers.Subscribe(handler)
}

func (e *AsyncEvent) Unregister(handler AsyncHandler) error {
	return e.handlers.Unregister(handler)
}

func (e *AsyncEvent) Len() int {
	return e.handlers.Len()
}

// Invoke calls every handler registered at the time of the call, one after another, and waits for all of them.
// Returns an [*AggregateError] if any handler failed.
func (e *AsyncEvent) Invoke(ctx context.Context) error {
	return invokeAll(e.handlers.Snapshot(), func(h AsyncHandler) error {
		return h(ctx)
	})
}

// InvokeAsync performs [AsyncEvent.Invoke] on a new goroutine.
// The returned [syncx.Future] resolves with its result, and is already resolved if there are no handlers.
func (e *AsyncEvent) InvokeAsync(ctx context.Context) syncx.Future[error] {
	return invokeAllAsync(e.handlers.Snapshot(), func(h AsyncHandler) error {
		return h(ctx)
	})
}

// AsyncHandlerT handles an [AsyncEventT].
type AsyncHandlerT[T any] func(ctx context.Context, arg T) error

// AsyncEventT is an event with an argument of type T whose handlers may block and fail.
// The zero value is ready for use.
type AsyncEventT[T any] struct {
	handlers HandlerList[AsyncHandlerT[T]]
}

func (e *AsyncEventT[T]) Register(handler AsyncHandlerT[T]) error {
	return e.handlers.Register(handler)
}

func (e *AsyncEventT[T]) Subscribe(handler AsyncHandlerT[T]) (func(), error) {
	return e.handlers.Subscribe(handler)
}

func (e *AsyncEventT[T]) Unregister(handler AsyncHandlerT[T]) error {
	return e.handlers.Unregister(handler)
}

func (e *AsyncEventT[T]) Len() int {
	return e.handlers.Len()
}

// Invoke calls every handler registered at the time of the call with arg, one after another, and waits for all of them.
// Returns an [*AggregateError] if any handler failed.
func (e *AsyncEventT[T]) Invoke(ctx context.Context, arg T) error {
	return invokeAll(e.handlers.Snapshot(), func(h AsyncHandlerT[T]) error {
		return h(ctx, arg)
	})
}

// InvokeAsync performs [AsyncEventT.Invoke] on a new goroutine.
// The returned [syncx.Future] resolves with its result, and is already resolved if there are no handlers.
func (e *AsyncEventT[T]) InvokeAsync(ctx context.Context, arg T) syncx.Future[error] {
	return invokeAllAsync(e.handlers.Snapshot(), func(h AsyncHandlerT[T]) error {
		return h(ctx, arg)
	})
}
