package event

import (
	"reflect"
	"sync"

	"github.com/saylorsolutions/concur/syncx"
)

// HandlerList is an ordered list of handlers of function type H.
// The zero value is an empty list ready for use.
//
// A HandlerList must not be copied after first use.
type HandlerList[H any] struct {
	mux      sync.Mutex
	nextID   uint64
	ids      []uint64
	handlers []H
}

// Register appends handler to the list.
// Returns [ErrInvalidArgument] if handler is nil.
func (l *HandlerList[H]) Register(handler H) error {
	_, err := l.add(handler)
	return err
}

// Subscribe appends handler to the list and returns a function that removes exactly this registration.
// The returned function is safe to call more than once.
func (l *HandlerList[H]) Subscribe(handler H) (func(), error) {
	id, err := l.add(handler)
	if err != nil {
		return nil, err
	}
	var once sync.Once
	return func() {
		once.Do(func() {
			syncx.LockFunc(&l.mux, func() {
				l.removeAt(indexOf(l.ids, id))
			})
		})
	}, nil
}

// Unregister removes the first registration of handler from the list.
// This is a no-op if handler isn't registered.
// Returns [ErrInvalidArgument] if handler is nil.
//
// Handlers are matched by code pointer only. Closures from the same function literal match each other,
// and so do method values of the same method bound to different receivers: Unregister(b.Handle) removes an earlier a.Handle.
// Owners that unregister themselves on disposal should keep the function returned by [HandlerList.Subscribe] instead.
func (l *HandlerList[H]) Unregister(handler H) error {
	if isNil(handler) {
		return errNilHandler
	}
	target := reflect.ValueOf(handler).Pointer()
	syncx.LockFunc(&l.mux, func() {
		for i, h := range l.handlers {
			if reflect.ValueOf(h).Pointer() == target {
				l.removeAt(i)
				return
			}
		}
	})
	return nil
}

// Snapshot returns the handlers registered at the time of the call.
// The returned slice is shared with other callers and must not be modified.
func (l *HandlerList[H]) Snapshot() []H {
	return syncx.LockFuncT(&l.mux, func() []H {
		return l.handlers
	})
}

// Len returns the number of registrations.
func (l *HandlerList[H]) Len() int {
	return syncx.LockFuncT(&l.mux, func() int {
		return len(l.handlers)
	})
}

func (l *HandlerList[H]) add(handler H) (uint64, error) {
	if isNil(handler) {
		return 0, errNilHandler
	}
	return syncx.LockFuncT(&l.mux, func() uint64 {
		l.nextID++
		id := l.nextID
		l.ids = appendCopy(l.ids, id)
		l.handlers = appendCopy(l.handlers, handler)
		return id
	}), nil
}

// removeAt must be called with the lock held.
func (l *HandlerList[H]) removeAt(i int) {
	if i < 0 {
		return
	}
	l.ids = removeCopy(l.ids, i)
	l.handlers = removeCopy(l.handlers, i)
}

// appendCopy never appends into the existing backing array, since a snapshot may be reading it.
func appendCopy[E any](s []E, e E) []E {
	next := make([]E, len(s), len(s)+1)
	copy(next, s)
	return append(next, e)
}

func removeCopy[E any](s []E, i int) []E {
	if len(s) == 1 {
		return nil
	}
	next := make([]E, 0, len(s)-1)
	next = append(next, s[:i]...)
	return append(next, s[i+1:]...)
}

func indexOf(ids []uint64, id uint64) int {
	for i, candidate := range ids {
		if candidate == id {
			return i
		}
	}
	return -1
}

func isNil(handler any) bool {
	if handler == nil {
		return true
	}
	v := reflect.ValueOf(handler)
	switch v.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
