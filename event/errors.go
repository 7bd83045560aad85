package event

import (
	"errors"
	"fmt"

	"github.com/ygrebnov/errorc"
	"go.uber.org/multierr"
)

var (
	ErrInvalidArgument = errors.New("event: invalid argument")
	ErrHandlerFailed   = errors.New("event: handler failed")
)

var errNilHandler = errorc.With(ErrInvalidArgument, errorc.String("handler", "cannot be nil"))

// AggregateError reports every handler failure from a single asynchronous invocation.
// It matches [ErrHandlerFailed] and each individual failure with [errors.Is] and [errors.As].
type AggregateError struct {
	errs    []error
	handled int
}

func newAggregateError(errs []error, handled int) *AggregateError {
	return &AggregateError{
		errs:    errs,
		handled: handled,
	}
}

// Errors returns the failures in the order the failing handlers were invoked.
func (e *AggregateError) Errors() []error {
	return append([]error(nil), e.errs...)
}

func (e *AggregateError) Error() string {
	return fmt.Sprintf("%v: %d of %d handlers failed: %v", ErrHandlerFailed, len(e.errs), e.handled, multierr.Combine(e.errs...))
}

func (e *AggregateError) Unwrap() []error {
	return append([]error{ErrHandlerFailed}, e.errs...)
}
