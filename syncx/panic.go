package syncx

import (
	"errors"
	"fmt"
	"runtime"
)

var ErrPanicked = errors.New("syncx: recovered panic")

// PanicError wraps a recovered panic value together with the stack captured where it was recovered.
type PanicError struct {
	Value any
	Stack string
}

// NewPanicError captures the current goroutine stack along with the recovered value.
func NewPanicError(v any) *PanicError {
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return &PanicError{
		Value: v,
		Stack: string(buf[:n]),
	}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes [ErrPanicked], and the panic value itself if it was an error.
func (e *PanicError) Unwrap() []error {
	if err, ok := e.Value.(error); ok {
		return []error{ErrPanicked, err}
	}
	return []error{ErrPanicked}
}
