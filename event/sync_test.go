package event

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/saylorsolutions/concur/syncx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncEvent_Sequential(t *testing.T) {
	var (
		evt   SyncEvent
		order []int
	)
	assert.Equal(t, Sequential, evt.Mode())
	for i := 0; i < 4; i++ {
		require.NoError(t, evt.Register(func() {
			order = append(order, i)
		}))
	}
	evt.Invoke()
	assert.Equal(t, []int{0, 1, 2, 3}, order, "Each handler should be called once in registration order")
}

func TestSyncEvent_Empty(t *testing.T) {
	assert.NotPanics(t, func() {
		NewSyncEvent().Invoke()
		NewSyncEvent(Concurrently()).Invoke()
		NewSyncEventT[int]().Invoke(1)
	})
}

func TestSyncEvent_SequentialPanicAborts(t *testing.T) {
	var (
		evt   SyncEvent
		after bool
	)
	require.NoError(t, evt.Register(func() { panic("boom") }))
	require.NoError(t, evt.Register(func() { after = true }))
	assert.PanicsWithValue(t, "boom", evt.Invoke)
	assert.False(t, after, "A panic should abort the remaining handlers")
}

func TestSyncEvent_UnregisterDuringInvoke(t *testing.T) {
	var (
		evt          SyncEvent
		secondCalled int
	)
	second := func() { secondCalled++ }
	require.NoError(t, evt.Register(func() {
		require.NoError(t, evt.Unregister(second))
	}))
	require.NoError(t, evt.Register(second))

	evt.Invoke()
	assert.Equal(t, 1, secondCalled, "The in-flight invocation should still call the unregistered handler")
	evt.Invoke()
	assert.Equal(t, 1, secondCalled, "Later invocations should not")
}

func TestSyncEvent_Concurrent(t *testing.T) {
	var (
		evt     = NewSyncEvent(Concurrently())
		release = make(chan struct{})
		wg      sync.WaitGroup
		calls   atomic.Int32
	)
	assert.Equal(t, Concurrent, evt.Mode())
	const handlers = 3
	wg.Add(handlers)
	for i := 0; i < handlers; i++ {
		require.NoError(t, evt.Register(func() {
			defer wg.Done()
			<-release
			calls.Add(1)
		}))
	}
	// Would deadlock if Invoke waited for handlers.
	evt.Invoke()
	close(release)
	wg.Wait()
	assert.Equal(t, int32(handlers), calls.Load())
}

func TestSyncEvent_ConcurrentPanicIsolated(t *testing.T) {
	var (
		panics = make(chan *syncx.PanicError, 1)
		evt    = NewSyncEvent(Concurrently(), OnPanic(func(perr *syncx.PanicError) {
			panics <- perr
		}))
		ok = make(chan struct{})
	)
	require.NoError(t, evt.Register(func() { panic("boom") }))
	require.NoError(t, evt.Register(func() { close(ok) }))
	evt.Invoke()
	<-ok
	perr := <-panics
	assert.Equal(t, "boom", perr.Value)
}

func TestSyncEventT_Invoke(t *testing.T) {
	var (
		evt      = NewSyncEventT[string]()
		received []string
	)
	require.NoError(t, evt.Register(func(arg string) {
		received = append(received, "a:"+arg)
	}))
	stop, err := evt.Subscribe(func(arg string) {
		received = append(received, "b:"+arg)
	})
	require.NoError(t, err)
	assert.Equal(t, 2, evt.Len())

	evt.Invoke("x")
	stop()
	evt.Invoke("y")
	assert.Equal(t, []string{"a:x", "b:x", "a:y"}, received)
	assert.ErrorIs(t, evt.Register(nil), ErrInvalidArgument)
}

func TestInvokeMode_String(t *testing.T) {
	assert.Equal(t, "sequential", Sequential.String())
	assert.Equal(t, "concurrent", Concurrent.String())
	assert.Equal(t, "unknown", InvokeMode(9).String())
}
