package main

import (
	"time"

	"github.com/saylorsolutions/concur/env"
	flag "github.com/spf13/pflag"
)

const (
	envWorkers = "CONCUR_WORKERS"
	envItems   = "CONCUR_ITEMS"
	envDelay   = "CONCUR_DELAY"
	envVerbose = "CONCUR_VERBOSE"
)

type config struct {
	workers     int
	items       int
	failEvery   int
	delay       time.Duration
	verbose     bool
	metricsAddr string
}

// defaultConfig reads defaults from the environment, so flags only need to be given to override them.
func defaultConfig() config {
	return config{
		workers: int(env.Int(envWorkers, 4)),
		items:   int(env.Int(envItems, 100)),
		delay:   env.Duration(envDelay, 10*time.Millisecond),
		verbose: env.Bool(envVerbose, false),
	}
}

func (c *config) bind(flags *flag.FlagSet) {
	flags.IntVarP(&c.workers, "workers", "w", c.workers, "Maximum number of items processed at once ($"+envWorkers+")")
	flags.IntVarP(&c.items, "items", "n", c.items, "Number of items to enqueue ($"+envItems+")")
	flags.IntVar(&c.failEvery, "fail-every", c.failEvery, "Fail every Nth item, 0 to never fail")
	flags.DurationVar(&c.delay, "delay", c.delay, "Simulated work time per item ($"+envDelay+")")
	flags.BoolVarP(&c.verbose, "verbose", "v", c.verbose, "Log every processed item ($"+envVerbose+")")
	flags.StringVar(&c.metricsAddr, "metrics-addr", c.metricsAddr, "Serve Prometheus metrics on this address while running")
}
