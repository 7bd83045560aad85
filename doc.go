/*
Package concur provides building blocks for in-process concurrency: events with multiple handlers, and a queue executor that runs an action for each enqueued item with bounded parallelism.
The package naming should map intuitively to what each one does.

  - event has synchronous and asynchronous multicast events.
  - executor has the bounded [executor.QueueExecutor] and its metrics collector.
  - syncx has futures, a closable semaphore, and panic recovery helpers.
  - structures/queue has the FIFO queue the executor drains.
  - patterns/observer has an observable value that applies changes in order.
  - slogx has a log/slog handler that writes through a single-slot executor.
*/
package concur
