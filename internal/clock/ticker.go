// ABOUTME: Periodic refresh driver for a clock Widget
// ABOUTME: One goroutine per running ticker; Stop waits for it to exit

package clock

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is the refresh period of the page clock.
const DefaultInterval = time.Second

// Ticker refreshes a Widget once per interval. It can be started again after
// Stop or after its context ends.
type Ticker struct {
	widget   *Widget
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewTicker creates a stopped ticker. A non-positive interval uses DefaultInterval.
func NewTicker(w *Widget, interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Ticker{widget: w, interval: interval}
}

// Start begins refreshing until ctx ends or Stop is called.
// Calling Start on a running ticker does nothing.
func (t *Ticker) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.runningLocked() {
		return
	}

	t.stop = make(chan struct{})
	t.done = make(chan struct{})
	go t.run(ctx, t.stop, t.done)
}

// Stop halts the ticker and waits for its goroutine to exit. Safe to call
// multiple times.
func (t *Ticker) Stop() {
	t.mu.Lock()
	stop, done := t.stop, t.done
	t.stop, t.done = nil, nil
	t.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// Running reports whether the refresh goroutine is alive.
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.runningLocked()
}

func (t *Ticker) runningLocked() bool {
	if t.done == nil {
		return false
	}
	select {
	case <-t.done:
		return false
	default:
		return true
	}
}

func (t *Ticker) run(ctx context.Context, stop, done chan struct{}) {
	defer close(done)

	tick := time.NewTicker(t.interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-tick.C:
			t.widget.Refresh()
		}
	}
}
