// Package scheduler provides fixed-tick schedulers that drive a simulation
// independently of any UI framework.
package scheduler

import (
	"sync"
	"time"
)

// Scheduler invokes a tick function at a fixed cadence while running.
//
// Start replaces any previously started function. Stop is immediate: once it
// returns no new tick is started. Callers that need to discard a tick that was
// already dispatched must guard their own state.
type Scheduler interface {
	Start(tick func())
	Stop()
	Running() bool
}

// Manual is a Scheduler advanced explicitly by its owner. Tests and frame-driven
// hosts call Step once per tick.
type Manual struct {
	mu   sync.Mutex
	tick func()
}

// NewManual creates a stopped manual scheduler.
func NewManual() *Manual {
	return &Manual{}
}

// Start arms the scheduler with a tick function.
func (m *Manual) Start(tick func()) {
	m.mu.Lock()
	m.tick = tick
	m.mu.Unlock()
}

// Stop disarms the scheduler.
func (m *Manual) Stop() {
	m.mu.Lock()
	m.tick = nil
	m.mu.Unlock()
}

// Running reports whether a tick function is armed.
func (m *Manual) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tick != nil
}

// Step runs one tick. It returns false when the scheduler is stopped.
func (m *Manual) Step() bool {
	m.mu.Lock()
	tick := m.tick
	m.mu.Unlock()
	if tick == nil {
		return false
	}
	tick()
	return true
}

// Advance runs up to n ticks, stopping early if a tick stops the scheduler.
// Returns the number of ticks executed.
func (m *Manual) Advance(n int) int {
	ran := 0
	for i := 0; i < n; i++ {
		if !m.Step() {
			break
		}
		ran++
	}
	return ran
}

// Interval converts a tick rate into a tick period. Non-positive rates use 60 Hz.
func Interval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}
