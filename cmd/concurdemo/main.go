// Command concurdemo pushes simulated work through a bounded queue executor and reports what happened.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/saylorsolutions/concur/event"
	"github.com/saylorsolutions/concur/executor"
	"github.com/saylorsolutions/concur/slogx"
	flag "github.com/spf13/pflag"
)

var errSimulated = errors.New("simulated failure")

func main() {
	conf := defaultConfig()
	flags := flag.NewFlagSet("concurdemo", flag.ContinueOnError)
	conf.bind(flags)
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if _, err := run(ctx, conf, os.Stderr); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, conf config, out io.Writer) (executor.Stats, error) {
	var stats executor.Stats
	level := slog.LevelInfo
	if conf.verbose {
		level = slog.LevelDebug
	}
	handler, err := slogx.NewQueuedHandler(ctx, out, &slogx.QueuedHandlerOptions{Level: level})
	if err != nil {
		return stats, err
	}
	defer func() {
		// Flush even if ctx was cancelled.
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = handler.Close(closeCtx)
	}()
	log := slog.New(handler)

	exec, err := executor.New[int](ctx, func(ctx context.Context, item int) error {
		select {
		case <-time.After(conf.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if conf.failEvery > 0 && item%conf.failEvery == 0 {
			return fmt.Errorf("%w: item %d", errSimulated, item)
		}
		log.Debug("Processed item", "item", item)
		return nil
	}, executor.MaxConcurrency(conf.workers), executor.Name("concurdemo"), executor.WithLogger(log))
	if err != nil {
		return stats, err
	}
	defer exec.Dispose()

	var failures atomic.Int64
	if err := exec.OnError().Register(func(_ context.Context, qerr executor.QueueError[int]) error {
		failures.Add(1)
		log.Warn("Item failed", "item", qerr.Item, "error", qerr.Err)
		return nil
	}); err != nil {
		return stats, err
	}

	completed := event.NewSyncEventT[executor.Stats]()
	if err := completed.Register(func(stats executor.Stats) {
		log.Info("Finished",
			"processed", stats.Processed,
			"failed", stats.Failed,
			"max_concurrency", stats.MaxConcurrency,
		)
	}); err != nil {
		return stats, err
	}

	if len(conf.metricsAddr) > 0 {
		shutdown, err := serveMetrics(conf.metricsAddr, exec, log)
		if err != nil {
			return stats, err
		}
		defer shutdown()
	}

	start := time.Now()
	log.Info("Enqueueing items", "items", conf.items, "workers", conf.workers)
	for i := 1; i <= conf.items; i++ {
		if err := exec.Enqueue(i); err != nil {
			return stats, err
		}
	}
	if err := exec.AwaitIdle(ctx); err != nil {
		return exec.Stats(), fmt.Errorf("interrupted with %d items pending: %w", exec.Len(), err)
	}
	stats = exec.Stats()
	completed.Invoke(stats)
	log.Info("Done", "duration", time.Since(start).Round(time.Millisecond), "failures_reported", failures.Load())
	return stats, nil
}

func serveMetrics(addr string, exec *executor.QueueExecutor[int], log *slog.Logger) (func(), error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(executor.NewCollector(exec)); err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Metrics server failed", "error", err)
		}
	}()
	log.Info("Serving metrics", "addr", addr)
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
