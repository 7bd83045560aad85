/*
Package executor provides [QueueExecutor], which drains a FIFO work queue with a bounded number of concurrently running actions.

Workers are not long-lived. [QueueExecutor.Enqueue] pushes the item and tries to take a concurrency slot without blocking.
If a slot is taken, then a worker goroutine is started that owns the slot, and keeps popping and processing items until the queue is empty.
If no slot is free, then the item waits for one of the running workers to reach it.

When a worker finds the queue empty, it releases its slot and checks the queue once more.
Without this check, an item pushed while every slot was held could be left in the queue with no worker to process it.

Failures returned by the action (and panics, as a [*syncx.PanicError]) never reach the producer.
They are wrapped in a [QueueError] and published through [QueueExecutor.OnError], and the queue keeps draining.
With a concurrency limit of 1, items are processed strictly in the order they were enqueued.

[QueueExecutor.Dispose] stops the executor: no new slots are granted, the context passed to running actions is cancelled, and queued items are dropped.
Use [QueueExecutor.AwaitIdle] first for a graceful shutdown.
*/
package executor
