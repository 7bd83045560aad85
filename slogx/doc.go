// Package slogx provides [slog.Handler] implementations.
//
// [QueuedHandler] formats records on the logging goroutine, and writes them on a background worker, one line at a time and in order.
// Logging calls never block on the output.
package slogx
