package pool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetTimerFires(t *testing.T) {
	require := require.New(t)

	timer := GetTimer(10 * time.Millisecond)
	require.NotNil(timer)

	select {
	case <-timer.C:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
	PutTimer(timer)
}

func TestPutTimerReuse(t *testing.T) {
	require := require.New(t)

	timer := GetTimer(time.Hour)
	PutTimer(timer)

	reused := GetTimer(10 * time.Millisecond)
	require.NotNil(reused)

	select {
	case <-reused.C:
	case <-time.After(time.Second):
		t.Fatal("reused timer did not fire")
	}
	PutTimer(reused)
}

func TestPutTimerAfterFire(t *testing.T) {
	timer := GetTimer(time.Millisecond)
	<-timer.C
	// Returning an already fired timer must not poison the pool.
	PutTimer(timer)

	next := GetTimer(5 * time.Millisecond)
	select {
	case <-next.C:
	case <-time.After(time.Second):
		t.Fatal("pooled timer did not fire after reset")
	}
	PutTimer(next)
}
