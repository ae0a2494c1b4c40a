package timer

import (
	"sync"
	"testing"
	"time"
)

const testInterval = 10 * time.Millisecond

// tickRecorder collects tick values safely across goroutines.
type tickRecorder struct {
	mutex sync.Mutex
	ticks []int
}

func (r *tickRecorder) record(remaining int) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.ticks = append(r.ticks, remaining)
}

func (r *tickRecorder) snapshot() []int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	out := make([]int, len(r.ticks))
	copy(out, r.ticks)
	return out
}

func TestCountdown_TicksDownAndExpiresOnce(t *testing.T) {
	rec := &tickRecorder{}
	expirations := make(chan struct{}, 10)

	StartCountdown(3, testInterval, rec.record, func() {
		expirations <- struct{}{}
	})

	select {
	case <-expirations:
	case <-time.After(time.Second):
		t.Fatal("Countdown did not expire")
	}

	// Give a stale goroutine a chance to fire again; it must not.
	time.Sleep(5 * testInterval)
	if len(expirations) != 0 {
		t.Fatal("Expiry callback fired more than once")
	}

	ticks := rec.snapshot()
	want := []int{2, 1, 0}
	if len(ticks) != len(want) {
		t.Fatalf("Expected ticks %v, got %v", want, ticks)
	}
	for i := range want {
		if ticks[i] != want[i] {
			t.Fatalf("Expected ticks %v, got %v", want, ticks)
		}
	}
}

func TestCountdown_StopPreventsExpiry(t *testing.T) {
	expired := make(chan struct{}, 1)
	c := StartCountdown(2, testInterval, nil, func() {
		expired <- struct{}{}
	})

	c.Stop()

	select {
	case <-expired:
		t.Fatal("Expiry fired after Stop")
	case <-time.After(6 * testInterval):
	}

	if c.Live() {
		t.Error("Countdown should not be live after Stop")
	}
}

func TestCountdown_StopIsIdempotent(t *testing.T) {
	c := StartCountdown(5, testInterval, nil, nil)

	c.Stop()
	c.Stop() // must not panic or block
	c.Stop()

	if c.Live() {
		t.Error("Countdown should not be live after Stop")
	}
}

func TestCountdown_StopAfterExpiryIsNoOp(t *testing.T) {
	expired := make(chan struct{})
	c := StartCountdown(1, testInterval, nil, func() { close(expired) })

	select {
	case <-expired:
	case <-time.After(time.Second):
		t.Fatal("Countdown did not expire")
	}

	c.Stop() // already expired; must be a no-op
}

func TestCountdown_Remaining(t *testing.T) {
	c := StartCountdown(100, time.Hour, nil, nil)
	defer c.Stop()

	if got := c.Remaining(); got != 100 {
		t.Errorf("Expected 100 remaining before any tick, got %d", got)
	}
	if !c.Live() {
		t.Error("Countdown should be live before Stop")
	}
}

func TestDelayed_Fires(t *testing.T) {
	fired := make(chan struct{})
	After(testInterval, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("Delayed callback did not fire")
	}
}

func TestDelayed_CancelPreventsFiring(t *testing.T) {
	fired := make(chan struct{}, 1)
	d := After(3*testInterval, func() { fired <- struct{}{} })

	d.Cancel()
	d.Cancel() // idempotent

	select {
	case <-fired:
		t.Fatal("Delayed callback fired after Cancel")
	case <-time.After(6 * testInterval):
	}
}
