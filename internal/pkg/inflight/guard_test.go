package inflight

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_SecondAttemptRejectedWhilePending(t *testing.T) {
	g := NewGuard()

	release, ok := g.TryAcquire("s1:attendance")
	require.True(t, ok)
	assert.True(t, g.Busy("s1:attendance"))

	_, ok = g.TryAcquire("s1:attendance")
	assert.False(t, ok)

	// Other keys are independent.
	otherRelease, ok := g.TryAcquire("s2:attendance")
	require.True(t, ok)
	otherRelease()

	release()
	assert.False(t, g.Busy("s1:attendance"))

	release, ok = g.TryAcquire("s1:attendance")
	require.True(t, ok)
	release()
}

func TestGuard_ReleaseIsIdempotent(t *testing.T) {
	g := NewGuard()
	release, _ := g.TryAcquire("k")
	release()

	again, ok := g.TryAcquire("k")
	require.True(t, ok)
	release() // stale release must not free the new holder
	assert.True(t, g.Busy("k"))
	again()
}

func TestGuard_DoReleasesOnFailure(t *testing.T) {
	g := NewGuard()
	boom := errors.New("boom")

	err := g.Do("k", func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, g.Busy("k"))
}

func TestGuard_ConcurrentCallsRunOnce(t *testing.T) {
	g := NewGuard()
	var calls int32
	start := make(chan struct{})
	hold := make(chan struct{})

	const callers = 10
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		go func() {
			<-start
			errs <- g.Do("k", func() error {
				atomic.AddInt32(&calls, 1)
				<-hold
				return nil
			})
		}()
	}

	close(start)
	// The winner blocks on hold, so every other caller must be rejected.
	for i := 0; i < callers-1; i++ {
		assert.ErrorIs(t, <-errs, ErrInProgress)
	}
	close(hold)
	assert.NoError(t, <-errs)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
