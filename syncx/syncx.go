// Package syncx provides the synchronization building blocks shared by the event and executor packages.
package syncx

import (
	"sync"
)

// LockFunc runs fn while holding mux.
func LockFunc(mux sync.Locker, fn func()) {
	mux.Lock()
	defer mux.Unlock()
	fn()
}

// LockFuncT runs fn while holding mux and returns its result.
// This is the usual way to take a snapshot of shared state before working on it unlocked.
func LockFuncT[T any](mux sync.Locker, fn func() T) T {
	mux.Lock()
	defer mux.Unlock()
	return fn()
}

// Go runs fn on a new goroutine.
// A panic in fn is recovered and handed to onPanic as a [*PanicError], instead of crashing the process.
// If onPanic is nil, then the panic is dropped.
func Go(fn func(), onPanic func(*PanicError)) {
	go func() {
		if err := Call(fn); err != nil && onPanic != nil {
			onPanic(err)
		}
	}()
}

// Call runs fn on the calling goroutine and returns a [*PanicError] if it panicked.
func Call(fn func()) (perr *PanicError) {
	defer func() {
		if r := recover(); r != nil {
			perr = NewPanicError(r)
		}
	}()
	fn()
	return nil
}

// CallErr runs fn on the calling goroutine.
// A panic is returned as a [*PanicError], otherwise the error returned by fn is passed through.
func CallErr(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewPanicError(r)
		}
	}()
	return fn()
}
