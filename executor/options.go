package executor

import (
	"fmt"
	"log/slog"

	"github.com/ygrebnov/errorc"
)

const (
	DefaultMaxConcurrency = 1
	DefaultName           = "default"
)

type execConf struct {
	maxConcurrency int
	logger         *slog.Logger
	name           string
}

func defaultConf() execConf {
	return execConf{
		maxConcurrency: DefaultMaxConcurrency,
		name:           DefaultName,
	}
}

// Option configures a [QueueExecutor].
type Option func(conf *execConf) error

// MaxConcurrency sets how many actions may run at the same time.
func MaxConcurrency(n int) Option {
	return func(conf *execConf) error {
		if n < 1 {
			return errorc.With(ErrInvalidArgument, errorc.String("max concurrency", fmt.Sprintf("must be >= 1, got %d", n)))
		}
		conf.maxConcurrency = n
		return nil
	}
}

// WithLogger sets the logger used for the executor's own diagnostics.
// [slog.Default] is used if this isn't set.
func WithLogger(logger *slog.Logger) Option {
	return func(conf *execConf) error {
		if logger == nil {
			return errorc.With(ErrInvalidArgument, errorc.String("logger", "cannot be nil"))
		}
		conf.logger = logger
		return nil
	}
}

// Name identifies the executor in logs and metrics.
func Name(name string) Option {
	return func(conf *execConf) error {
		if len(name) == 0 {
			return errorc.With(ErrInvalidArgument, errorc.String("name", "cannot be empty"))
		}
		conf.name = name
		return nil
	}
}
