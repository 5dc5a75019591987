// Package game implements the Cupid Arrow simulation: a player sprite at the
// bottom of the field dodges falling arrows, collects or avoids debuff pickups,
// and spends shield and speed items while the score climbs every tick.
//
// The Engine owns all gameplay state. Hosts drive it through a
// scheduler.Scheduler and read it through Snapshot copies.
package game

import (
	"sync"
	"time"

	"github.com/vovakirdan/cupid-arrow/internal/config"
	"github.com/vovakirdan/cupid-arrow/internal/core"
	"github.com/vovakirdan/cupid-arrow/internal/scheduler"
)

// Judge decides whether a final score earns a leaderboard entry.
type Judge interface {
	Qualifies(score int) bool
}

// Engine is one game session. All methods are safe for concurrent use; a tick
// holds the engine lock for its full duration.
type Engine struct {
	mu sync.Mutex

	cfg   config.CupidConfig
	sched scheduler.Scheduler
	rng   Random
	judge Judge

	st     state
	epoch  uint64 // bumped on every loop start/stop, stale ticks are dropped
	closed bool
}

// NewEngine creates an engine on the start screen. A nil scheduler defaults to
// a Manual one, a nil rng to a time-seeded source. With a nil judge every
// final score is sent to name entry.
func NewEngine(cfg config.CupidConfig, sched scheduler.Scheduler, rng Random, judge Judge) *Engine {
	if sched == nil {
		sched = scheduler.NewManual()
	}
	if rng == nil {
		rng = NewRandom(time.Now().UnixNano())
	}
	e := &Engine{
		cfg:   cfg,
		sched: sched,
		rng:   rng,
		judge: judge,
	}
	e.reset()
	e.st.screen = ScreenStart
	return e
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.CupidConfig {
	return e.cfg
}

// Start begins a new session. Equivalent to SetScreen(ScreenPlaying).
func (e *Engine) Start() bool {
	return e.SetScreen(ScreenPlaying)
}

// SetScreen requests a screen transition and reports whether it was applied.
// Entering playing reinitializes the session and starts the tick loop;
// leaving it stops the loop.
func (e *Engine) SetScreen(to Screen) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || !e.canTransition(e.st.screen, to) {
		return false
	}
	e.transition(to)
	return true
}

func (e *Engine) canTransition(from, to Screen) bool {
	switch from {
	case ScreenStart:
		return to == ScreenPlaying || to == ScreenRankings
	case ScreenPlaying:
		return (to == ScreenNameInput || to == ScreenRankings) && e.st.lives == 0
	case ScreenNameInput:
		return to == ScreenRankings
	case ScreenRankings:
		return to == ScreenStart || to == ScreenPlaying
	default:
		return false
	}
}

func (e *Engine) transition(to Screen) {
	from := e.st.screen
	if from == ScreenPlaying {
		e.stopLoop()
	}
	if to == ScreenPlaying {
		e.reset()
	}
	e.st.screen = to
	if to == ScreenPlaying {
		e.startLoop()
	}
}

func (e *Engine) startLoop() {
	e.epoch++
	epoch := e.epoch
	e.sched.Start(func() { e.tick(epoch) })
}

func (e *Engine) stopLoop() {
	e.epoch++
	e.sched.Stop()
}

// reset reinitializes all session state except the screen.
func (e *Engine) reset() {
	screen := e.st.screen
	e.st = state{
		screen: screen,
		level:  1,
		lives:  e.cfg.Scoring.Lives,
		items: Items{
			Shield: ItemSlot{Count: e.cfg.Items.Shield.Charges},
			Speed:  ItemSlot{Count: e.cfg.Items.Speed.Charges},
		},
	}
	e.st.player = Player{
		ID:   e.st.id(),
		Pos:  core.Vec2{X: e.cfg.Field.Width / 2, Y: e.cfg.PlayerY()},
		Size: e.cfg.Player.Size,
	}
}

// Move records the held movement intent consumed by each tick.
// Ignored unless playing.
func (e *Engine) Move(in Input) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.st.screen != ScreenPlaying {
		return
	}
	e.st.input = in
}

// UseItem activates an item slot. It is rejected while not playing, while
// invincible, without charges, or when the slot is already active.
func (e *Engine) UseItem(item Item) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.st.screen != ScreenPlaying || e.st.status.Invincible.Active {
		return false
	}

	var slot *ItemSlot
	var duration int
	switch item {
	case ItemShield:
		slot, duration = &e.st.items.Shield, e.cfg.Items.Shield.Duration
	case ItemSpeed:
		slot, duration = &e.st.items.Speed, e.cfg.Items.Speed.Duration
	default:
		return false
	}

	if slot.Count < 1 || slot.Active {
		return false
	}
	slot.Count--
	slot.Active = true
	slot.Remaining = duration
	return true
}

// SetFinalScore overrides the latched final score.
func (e *Engine) SetFinalScore(score int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.st.finalScore = score
}

// Snapshot returns a deep copy of the current session.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st.snapshot(e.cfg.Field.Width, e.cfg.Field.Height)
}

// Screen returns the current screen.
func (e *Engine) Screen() Screen {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st.screen
}

// Close stops the tick loop unconditionally. Further transitions are refused.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.closed = true
	e.stopLoop()
}

// tick runs one fixed step unless it belongs to a stopped loop.
func (e *Engine) tick(epoch uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if epoch != e.epoch || e.st.screen != ScreenPlaying {
		return
	}
	e.step()
}

// endSession latches the final score and leaves the playing screen.
func (e *Engine) endSession() {
	e.st.finalScore = e.st.score
	next := ScreenNameInput
	if e.judge != nil && !e.judge.Qualifies(e.st.finalScore) {
		next = ScreenRankings
	}
	e.transition(next)
}
