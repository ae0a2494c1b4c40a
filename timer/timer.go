// timer/timer.go
package timer

import (
	"sync"
	"time"
)

// Countdown counts an integer number of seconds down to zero, invoking
// onTick with the new remaining value after every interval and onExpire
// exactly once when it reaches zero. Stop is idempotent; stopping an
// expired or already-stopped countdown is a no-op.
//
// Callbacks run on the countdown's own goroutine with no internal lock
// held, so they may call back into Stop.
type Countdown struct {
	mutex     sync.Mutex
	remaining int
	stopped   bool
	ticker    *time.Ticker
	done      chan struct{}
	onTick    func(remaining int)
	onExpire  func()
}

// StartCountdown begins counting immediately. The interval is one real
// second in production; tests inject shorter ones.
func StartCountdown(seconds int, interval time.Duration, onTick func(remaining int), onExpire func()) *Countdown {
	c := &Countdown{
		remaining: seconds,
		ticker:    time.NewTicker(interval),
		done:      make(chan struct{}),
		onTick:    onTick,
		onExpire:  onExpire,
	}
	go c.run()
	return c
}

func (c *Countdown) run() {
	for {
		select {
		case <-c.ticker.C:
			c.mutex.Lock()
			if c.stopped {
				c.mutex.Unlock()
				return
			}
			c.remaining--
			remaining := c.remaining
			expired := remaining <= 0
			if expired {
				// Mark stopped before the callbacks so a re-entrant
				// Stop is a no-op and onExpire cannot fire twice.
				c.stopped = true
				c.ticker.Stop()
			}
			c.mutex.Unlock()

			if c.onTick != nil {
				c.onTick(remaining)
			}
			if expired {
				if c.onExpire != nil {
					c.onExpire()
				}
				return
			}
		case <-c.done:
			return
		}
	}
}

// Stop cancels the countdown. Safe to call from any goroutine, any
// number of times, on any path that ends or pauses a session.
func (c *Countdown) Stop() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.stopped {
		return
	}
	c.stopped = true
	c.ticker.Stop()
	close(c.done)
}

// Remaining reports the seconds left.
func (c *Countdown) Remaining() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.remaining
}

// Live reports whether the countdown is still running.
func (c *Countdown) Live() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return !c.stopped
}

// Delayed is a cancellable one-shot, used for the pause between rounds.
// Cancel is idempotent and must be called on every path that destroys a
// session so a stale callback cannot resurrect it.
type Delayed struct {
	mutex     sync.Mutex
	timer     *time.Timer
	cancelled bool
}

// After schedules fn once after d.
func After(d time.Duration, fn func()) *Delayed {
	return &Delayed{timer: time.AfterFunc(d, fn)}
}

func (d *Delayed) Cancel() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.cancelled {
		return
	}
	d.cancelled = true
	d.timer.Stop()
}
