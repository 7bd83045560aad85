package executor

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/saylorsolutions/concur/event"
	"github.com/saylorsolutions/concur/structures/queue"
	"github.com/saylorsolutions/concur/syncx"
	"github.com/ygrebnov/errorc"
)

const idlePollInterval = 5 * time.Millisecond

// Action processes a single item taken from the queue.
// The context is cancelled when the executor is disposed.
type Action[T any] func(ctx context.Context, item T) error

// QueueExecutor runs an [Action] for every enqueued item, with at most a fixed number of actions running at once.
type QueueExecutor[T any] struct {
	name   string
	action Action[T]
	log    *slog.Logger
	ctx    context.Context
	cancel context.CancelFunc

	sem     *syncx.Semaphore
	queue   *queue.Queue[T]
	onError event.AsyncEventT[QueueError[T]]

	disposed  atomic.Bool
	workers   atomic.Int64
	running   atomic.Int64
	processed atomic.Uint64
	failed    atomic.Uint64
}

// New creates a [QueueExecutor] that calls action for each item.
// The context given is the parent of the context passed to action.
func New[T any](ctx context.Context, action Action[T], opts ...Option) (*QueueExecutor[T], error) {
	if action == nil {
		return nil, errorc.With(ErrInvalidArgument, errorc.String("action", "cannot be nil"))
	}
	conf := defaultConf()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&conf); err != nil {
			return nil, err
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if conf.logger == nil {
		conf.logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(ctx)
	return &QueueExecutor[T]{
		name:   conf.name,
		action: action,
		log:    conf.logger.With("executor", conf.name),
		ctx:    ctx,
		cancel: cancel,
		sem:    syncx.NewSemaphore(conf.maxConcurrency),
		queue:  queue.NewQueue[T](),
	}, nil
}

// Name returns the name given with the [Name] option.
func (e *QueueExecutor[T]) Name() string {
	return e.name
}

// MaxConcurrency returns the maximum number of actions that may run at once.
func (e *QueueExecutor[T]) MaxConcurrency() int {
	return e.sem.Size()
}

// OnError is published once for every item whose action failed.
// Errors returned by its handlers are logged.
func (e *QueueExecutor[T]) OnError() *event.AsyncEventT[QueueError[T]] {
	return &e.onError
}

// Enqueue adds item to the queue and returns immediately.
// Returns [ErrDisposed] if [QueueExecutor.Dispose] has been called.
func (e *QueueExecutor[T]) Enqueue(item T) error {
	if e.disposed.Load() {
		return errorc.With(ErrDisposed, errorc.String("executor", e.name))
	}
	e.queue.Push(item)
	if e.disposed.Load() {
		// Lost a race with Dispose, so nothing will process the item.
		e.queue.Clear()
		return errorc.With(ErrDisposed, errorc.String("executor", e.name))
	}
	e.trySpawn()
	return nil
}

// trySpawn starts a worker only if it can take a slot for it, so a slot is always held before an item is popped.
func (e *QueueExecutor[T]) trySpawn() {
	if !e.sem.TryAcquire() {
		return
	}
	e.workers.Add(1)
	go e.work()
}

// work owns one semaphore slot until it returns.
func (e *QueueExecutor[T]) work() {
	e.log.Debug("Worker started")
	defer func() {
		e.log.Debug("Worker exited", "processed", e.processed.Load())
		e.workers.Add(-1)
	}()
	for {
		if e.disposed.Load() {
			e.sem.Release()
			return
		}
		item, ok := e.queue.Pop()
		if !ok {
			e.sem.Release()
			// An Enqueue that raced with the Pop above may have failed to get a slot because this worker held it.
			if e.queue.Len() == 0 || !e.sem.TryAcquire() {
				return
			}
			continue
		}
		e.execute(item)
	}
}

func (e *QueueExecutor[T]) execute(item T) {
	e.running.Add(1)
	err := syncx.CallErr(func() error {
		return e.action(e.ctx, item)
	})
	e.running.Add(-1)
	e.processed.Add(1)
	if err == nil {
		return
	}
	e.failed.Add(1)
	e.reportError(QueueError[T]{Err: err, Item: item})
}

func (e *QueueExecutor[T]) reportError(qerr QueueError[T]) {
	if e.onError.Len() == 0 {
		e.log.Error("Action failed with no error handler registered", "error", qerr.Err)
		return
	}
	// Disposal shouldn't cut error reporting short.
	if err := e.onError.Invoke(context.WithoutCancel(e.ctx), qerr); err != nil {
		e.log.Error("Error handler failed", "error", err, "action_error", qerr.Err)
	}
}

// Len returns the number of items waiting to be processed.
func (e *QueueExecutor[T]) Len() int {
	return e.queue.Len()
}

// Running returns the number of actions currently running.
func (e *QueueExecutor[T]) Running() int {
	return int(e.running.Load())
}

// IsDisposed reports whether [QueueExecutor.Dispose] has been called.
func (e *QueueExecutor[T]) IsDisposed() bool {
	return e.disposed.Load()
}

// AwaitIdle blocks until the queue is empty and no workers are running, or until ctx is done.
// Items enqueued while waiting extend the wait.
// Once disposed, only running workers are waited on.
func (e *QueueExecutor[T]) AwaitIdle(ctx context.Context) error {
	ticker := time.NewTicker(idlePollInterval)
	defer ticker.Stop()
	for {
		if (e.disposed.Load() || e.queue.Len() == 0) && e.workers.Load() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Dispose stops the executor.
// No new actions are started, the context passed to running actions is cancelled, and items still queued are dropped.
// This is safe to call multiple times from multiple goroutines.
func (e *QueueExecutor[T]) Dispose() {
	if !e.disposed.CompareAndSwap(false, true) {
		return
	}
	e.sem.Close()
	e.cancel()
	if dropped := e.queue.Clear(); dropped > 0 {
		e.log.Warn("Dropped queued items on dispose", "count", dropped)
	}
}
