package event

import (
	"log/slog"

	"github.com/saylorsolutions/concur/syncx"
)

// InvokeMode determines how a synchronous event calls its handlers.
type InvokeMode int

const (
	Sequential InvokeMode = iota // Sequential calls each handler to completion on the invoking goroutine.
	Concurrent                   // Concurrent dispatches each handler to its own goroutine without waiting.
)

func (m InvokeMode) String() string {
	switch m {
	case Sequential:
		return "sequential"
	case Concurrent:
		return "concurrent"
	default:
		return "unknown"
	}
}

type syncConf struct {
	mode    InvokeMode
	onPanic func(*syncx.PanicError)
}

// SyncOption configures a [SyncEvent] or [SyncEventT].
type SyncOption func(conf *syncConf)

// Concurrently dispatches each handler to its own goroutine when the event is invoked.
func Concurrently() SyncOption {
	return func(conf *syncConf) {
		conf.mode = Concurrent
	}
}

// OnPanic sets the function that receives panics from concurrently dispatched handlers.
// It has no effect in [Sequential] mode, where panics reach the caller.
func OnPanic(fn func(*syncx.PanicError)) SyncOption {
	return func(conf *syncConf) {
		conf.onPanic = fn
	}
}

func newSyncConf(opts []SyncOption) syncConf {
	var conf syncConf
	for _, opt := range opts {
		if opt != nil {
			opt(&conf)
		}
	}
	return conf
}

func (c syncConf) reportPanic(perr *syncx.PanicError) {
	if c.onPanic != nil {
		c.onPanic(perr)
		return
	}
	slog.Default().Error("Event handler panicked", "panic", perr.Value, "stack", perr.Stack)
}

func invokeSync[H any](conf syncConf, handlers []H, call func(H)) {
	if len(handlers) == 0 {
		return
	}
	if conf.mode != Concurrent {
		for _, h := range handlers {
			call(h)
		}
		return
	}
	for _, h := range handlers {
		syncx.Go(func() {
			call(h)
		}, conf.reportPanic)
	}
}

// SyncHandler handles a [SyncEvent].
type SyncHandler func()

// SyncEvent is an event with no argument whose handlers return nothing.
// The zero value is a [Sequential] event ready for use.
type SyncEvent struct {
	handlers HandlerList[SyncHandler]
	conf     syncConf
}

// NewSyncEvent creates a [SyncEvent] configured with opts.
func NewSyncEvent(opts ...SyncOption) *SyncEvent {
	return &SyncEvent{conf: newSyncConf(opts)}
}

// Mode returns how handlers are invoked.
func (e *SyncEvent) Mode() InvokeMode {
	return e.conf.mode
}

func (e *SyncEvent) Register(handler SyncHandler) error {
	return e.handlers.Register(handler)
}

func (e *SyncEvent) Subscribe(handler SyncHandler) (func(), error) {
	return e.handlers.Subscribe(handler)
}

func (e *SyncEvent) Unregister(handler SyncHandler) error {
	return e.handlers.Unregister(handler)
}

func (e *SyncEvent) Len() int {
	return e.handlers.Len()
}

// Invoke calls every handler registered at the time of the call.
func (e *SyncEvent) Invoke() {
	invokeSync(e.conf, e.handlers.Snapshot(), func(h SyncHandler) {
		h()
	})
}

// SyncHandlerT handles a [SyncEventT].
type SyncHandlerT[T any] func(arg T)

// SyncEventT is an event with an argument of type T whose handlers return nothing.
// The zero value is a [Sequential] event ready for use.
type SyncEventT[T any] struct {
	handlers HandlerList[SyncHandlerT[T]]
	conf     syncConf
}

// NewSyncEventT creates a [SyncEventT] configured with opts.
func NewSyncEventT[T any](opts ...SyncOption) *SyncEventT[T] {
	return &SyncEventT[T]{conf: newSyncConf(opts)}
}

// Mode returns how handlers are invoked.
func (e *SyncEventT[T]) Mode() InvokeMode {
	return e.conf.mode
}

func (e *SyncEventT[T]) Register(handler SyncHandlerT[T]) error {
	return e.handlers.Register(handler)
}

func (e *SyncEventT[T]) Subscribe(handler SyncHandlerT[T]) (func(), error) {
	return e.handlers.Subscribe(handler)
}

func (e *SyncEventT[T]) Unregister(handler SyncHandlerT[T]) error {
	return e.handlers.Unregister(handler)
}

func (e *SyncEventT[T]) Len() int {
	return e.handlers.Len()
}

// Invoke calls every handler registered at the time of the call with arg.
func (e *SyncEventT[T]) Invoke(arg T) {
	invokeSync(e.conf, e.handlers.Snapshot(), func(h SyncHandlerT[T]) {
		h(arg)
	})
}
