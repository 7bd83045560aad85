package event

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	calledA, calledB int
)

func handlerA() { calledA++ }
func handlerB() { calledB++ }

func TestHandlerList_Register_Nil(t *testing.T) {
	var list HandlerList[SyncHandler]
	assert.ErrorIs(t, list.Register(nil), ErrInvalidArgument)
	assert.ErrorIs(t, list.Unregister(nil), ErrInvalidArgument)
	_, err := list.Subscribe(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 0, list.Len(), "Failed registration should not change the list")
}

func TestHandlerList_Order(t *testing.T) {
	var (
		list  HandlerList[func() int]
		order []int
	)
	for i := 0; i < 5; i++ {
		require.NoError(t, list.Register(func() int { return i }))
	}
	for _, h := range list.Snapshot() {
		order = append(order, h())
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestHandlerList_Unregister(t *testing.T) {
	var list HandlerList[SyncHandler]
	require.NoError(t, list.Register(handlerA))
	require.NoError(t, list.Register(handlerB))
	require.NoError(t, list.Register(handlerA))
	assert.Equal(t, 3, list.Len(), "Duplicates are allowed")

	require.NoError(t, list.Unregister(handlerA))
	assert.Equal(t, 2, list.Len())

	calledA, calledB = 0, 0
	for _, h := range list.Snapshot() {
		h()
	}
	assert.Equal(t, 1, calledA, "Only the first registration should be removed")
	assert.Equal(t, 1, calledB)

	require.NoError(t, list.Unregister(handlerA))
	require.NoError(t, list.Unregister(handlerA), "Unregistering a missing handler is a no-op")
	assert.Equal(t, 1, list.Len())
}

type hitCounter struct {
	hits int
}

func (c *hitCounter) Handle() { c.hits++ }

func TestHandlerList_Unregister_MethodValues(t *testing.T) {
	var (
		evt  SyncEvent
		a, b hitCounter
	)
	require.NoError(t, evt.Register(a.Handle))
	require.NoError(t, evt.Register(b.Handle))

	// Method values share a code pointer, so this matches a.Handle first.
	require.NoError(t, evt.Unregister(b.Handle))
	evt.Invoke()
	assert.Equal(t, 0, a.hits)
	assert.Equal(t, 1, b.hits)

	var (
		subscribed SyncEvent
		c, d       hitCounter
	)
	_, err := subscribed.Subscribe(c.Handle)
	require.NoError(t, err)
	stopD, err := subscribed.Subscribe(d.Handle)
	require.NoError(t, err)
	stopD()
	subscribed.Invoke()
	assert.Equal(t, 1, c.hits)
	assert.Equal(t, 0, d.hits, "Subscribe should remove exactly the owner's registration")
}

func TestHandlerList_Subscribe(t *testing.T) {
	var (
		list  HandlerList[func() string]
		names = []string{"first", "second", "third"}
		stops []func()
	)
	for _, name := range names {
		// All of these closures share a code pointer, so only Subscribe can tell them apart.
		stop, err := list.Subscribe(func() string { return name })
		require.NoError(t, err)
		stops = append(stops, stop)
	}
	stops[1]()
	stops[1]()

	var got []string
	for _, h := range list.Snapshot() {
		got = append(got, h())
	}
	assert.Equal(t, []string{"first", "third"}, got)
}

func TestHandlerList_SnapshotIsolation(t *testing.T) {
	var list HandlerList[SyncHandler]
	require.NoError(t, list.Register(handlerA))
	snapshot := list.Snapshot()

	require.NoError(t, list.Register(handlerB))
	require.NoError(t, list.Unregister(handlerA))

	assert.Len(t, snapshot, 1, "Mutations must not affect an existing snapshot")
	assert.Equal(t, 1, list.Len())
}

func TestHandlerList_ConcurrentMutation(t *testing.T) {
	var (
		list HandlerList[SyncHandler]
		wg   sync.WaitGroup
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			_ = list.Register(func() {})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			stop, _ := list.Subscribe(func() {})
			stop()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			for _, h := range list.Snapshot() {
				h()
			}
		}
	}()
	wg.Wait()
	assert.Equal(t, 500, list.Len())
}
