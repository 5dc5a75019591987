package scheduler

import (
	"sync"
	"time"
)

// Fixed fires the tick function from a background goroutine on a wall-clock
// ticker. Ticks never overlap: the goroutine runs one tick to completion before
// it reads the next one, and time.Ticker drops ticks a slow receiver missed.
type Fixed struct {
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
}

// NewFixed creates a stopped scheduler ticking every interval.
func NewFixed(interval time.Duration) *Fixed {
	if interval <= 0 {
		interval = Interval(0)
	}
	return &Fixed{interval: interval}
}

// Start launches the tick goroutine, stopping a previous one first.
func (f *Fixed) Start(tick func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.stopLocked()
	stop := make(chan struct{})
	f.stop = stop
	go f.run(tick, stop)
}

// Stop signals the tick goroutine to exit. It does not wait, so it is safe to
// call from inside a tick.
func (f *Fixed) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopLocked()
}

// Running reports whether a tick goroutine is active.
func (f *Fixed) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stop != nil
}

func (f *Fixed) stopLocked() {
	if f.stop != nil {
		close(f.stop)
		f.stop = nil
	}
}

func (f *Fixed) run(tick func(), stop <-chan struct{}) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			// A stop that raced with the ticker wins.
			select {
			case <-stop:
				return
			default:
			}
			tick()
		}
	}
}
