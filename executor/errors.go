package executor

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("executor: invalid argument")
	ErrDisposed        = errors.New("executor: disposed")
)

// QueueError pairs a failed action's error with the item it was processing.
type QueueError[T any] struct {
	Err  error
	Item T
}

func (e QueueError[T]) Error() string {
	return fmt.Sprintf("executor: action failed for item '%v': %v", e.Item, e.Err)
}

func (e QueueError[T]) Unwrap() error {
	return e.Err
}
