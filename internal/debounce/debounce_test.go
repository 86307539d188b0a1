package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delay = 20 * time.Millisecond

func TestTriggerRunsOnce(t *testing.T) {
	d := New(delay)
	done := make(chan struct{})
	d.Trigger(func() { close(done) })
	assert.True(t, d.Pending())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("call never ran")
	}
	assert.Eventually(t, func() bool { return !d.Pending() }, time.Second, 5*time.Millisecond)
}

func TestLastTriggerWins(t *testing.T) {
	d := New(delay)
	var calls atomic.Int32
	ran := make(chan int, 10)

	for i := 1; i <= 5; i++ {
		d.Trigger(func() {
			calls.Add(1)
			ran <- i
		})
	}

	select {
	case got := <-ran:
		assert.Equal(t, 5, got)
	case <-time.After(2 * time.Second):
		t.Fatal("call never ran")
	}

	// give superseded timers a chance to misfire
	time.Sleep(5 * delay)
	assert.Equal(t, int32(1), calls.Load())
}

func TestTriggerRestartsDelay(t *testing.T) {
	d := New(50 * time.Millisecond)
	start := time.Now()
	done := make(chan time.Time, 1)

	d.Trigger(func() { done <- time.Now() })
	time.Sleep(30 * time.Millisecond)
	d.Trigger(func() { done <- time.Now() })

	select {
	case at := <-done:
		assert.GreaterOrEqual(t, at.Sub(start), 80*time.Millisecond)
	case <-time.After(2 * time.Second):
		t.Fatal("call never ran")
	}
}

func TestStop(t *testing.T) {
	d := New(delay)
	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })

	require.True(t, d.Stop())
	assert.False(t, d.Pending())
	assert.False(t, d.Stop(), "nothing left to stop")

	time.Sleep(5 * delay)
	assert.Equal(t, int32(0), calls.Load())
}

func TestDelay(t *testing.T) {
	assert.Equal(t, 500*time.Millisecond, New(500*time.Millisecond).Delay())
}
