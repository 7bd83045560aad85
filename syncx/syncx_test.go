package syncx

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockFuncT(t *testing.T) {
	var (
		mux    sync.Mutex
		shared = []int{1, 2}
	)
	snapshot := LockFuncT(&mux, func() []int {
		return shared
	})
	LockFunc(&mux, func() {
		shared = append([]int{0}, shared...)
	})
	assert.Equal(t, []int{1, 2}, snapshot)
	assert.Equal(t, []int{0, 1, 2}, shared)
}

func TestCall(t *testing.T) {
	assert.Nil(t, Call(func() {}))

	perr := Call(func() {
		panic("boom")
	})
	require.NotNil(t, perr)
	assert.Equal(t, "boom", perr.Value)
	assert.NotEmpty(t, perr.Stack)
	assert.ErrorIs(t, perr, ErrPanicked)
	assert.Equal(t, "panic: boom", perr.Error())
}

func TestCallErr(t *testing.T) {
	errExpected := errors.New("expected")
	assert.ErrorIs(t, CallErr(func() error { return errExpected }), errExpected)

	err := CallErr(func() error {
		panic(errExpected)
	})
	var perr *PanicError
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, ErrPanicked)
	assert.ErrorIs(t, err, errExpected, "Panicked error values should be reachable")
}

func TestGo(t *testing.T) {
	received := make(chan *PanicError, 1)
	Go(func() {
		panic(42)
	}, func(perr *PanicError) {
		received <- perr
	})
	perr := <-received
	assert.Equal(t, 42, perr.Value)

	done := make(chan struct{})
	Go(func() {
		close(done)
	}, nil)
	<-done
}
