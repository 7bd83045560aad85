/*
Package event provides multicast events: a publisher invokes every subscribed handler with a single call.

# Handler Lists

Every event type is built on a [HandlerList], an ordered list of handlers that is safe to mutate from any goroutine at any time, including while the event is being invoked.
Registration appends to the list, so handlers are invoked in the order they were registered. The same handler may be registered more than once.

Mutations never modify a slice that an invocation may be iterating.
Instead, a new slice is built under the list's lock, and invocations take a reference to the current slice under the same lock before calling any handler.
This means that a handler unregistered during an invocation will still be called by that invocation, but not by later ones.
It also means that invocation never holds the lock while handlers run.

Go function values can't be compared, so [HandlerList.Unregister] matches handlers by their code pointer.
Two closures created from the same function literal are indistinguishable this way, and so are method values of the same method bound to different receivers.
Unregistering b.Handle removes whichever of a.Handle or b.Handle was registered first.
When that matters, such as an owner unregistering itself on disposal, use [HandlerList.Subscribe], which returns a function that removes exactly that registration.

# Synchronous Events

[SyncEvent] and [SyncEventT] run handlers that don't return anything.
By default, handlers are called sequentially on the invoking goroutine, and a panic in a handler propagates to the caller and skips the remaining handlers.

Use [Concurrently] to dispatch each handler to its own goroutine instead.
There is intentionally no way to wait for concurrently dispatched handlers: a handler blocking on something the publisher holds would deadlock.
A panic in a concurrently dispatched handler is recovered and reported with the function given to [OnPanic], or logged if none was given.

# Asynchronous Events

[AsyncEvent] and [AsyncEventT] run handlers that accept a context and return an error.
Handlers are awaited one after another in registration order, and every handler runs even if an earlier one failed.
Once all handlers have returned, any failures are reported together as an [*AggregateError].
Panics are recovered and reported as a [*syncx.PanicError] within the [*AggregateError].

Use InvokeAsync to run the same sequence on another goroutine and receive the outcome as a [syncx.Future].
*/
package event
