// Package session owns one game Engine together with the shared ranking
// Manager and implements the host-side flow around a session: game over,
// name entry, submission and the rankings screen.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cupid-arrow/internal/config"
	"github.com/vovakirdan/cupid-arrow/internal/game"
	"github.com/vovakirdan/cupid-arrow/internal/ranking"
	"github.com/vovakirdan/cupid-arrow/internal/scheduler"
)

// ErrNotAwaitingName is returned by SubmitName outside the name entry screen.
var ErrNotAwaitingName = errors.New("session: no score awaiting a name")

// NoticeOffline is shown when a submission only reached the local cache.
const NoticeOffline = "Leaderboard unreachable, score kept locally"

// Controller is one player's session. Safe for concurrent use.
type Controller struct {
	engine  *game.Engine
	manager *ranking.Manager
	logger  *log.Logger

	submitMu sync.Mutex // serializes submissions

	mu     sync.Mutex
	notice string
	last   *ranking.SubmitResult
}

// NewController creates a controller on the start screen. The manager judges
// leaderboard eligibility; a nil manager gets a local-only one.
func NewController(cfg config.CupidConfig, manager *ranking.Manager, sched scheduler.Scheduler, rng game.Random, logger *log.Logger) *Controller {
	if manager == nil {
		manager = ranking.NewManager(nil)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{
		engine:  game.NewEngine(cfg, sched, rng, manager),
		manager: manager,
		logger:  logger,
	}
}

// Start begins a new game from the start or rankings screen.
func (c *Controller) Start() bool {
	if !c.engine.Start() {
		return false
	}
	c.mu.Lock()
	c.notice = ""
	c.last = nil
	c.mu.Unlock()
	c.logger.Debug("Session started")
	return true
}

// Move forwards the held movement intent.
func (c *Controller) Move(in game.Input) {
	c.engine.Move(in)
}

// UseItem activates an item.
func (c *Controller) UseItem(item game.Item) bool {
	return c.engine.UseItem(item)
}

// Snapshot returns a copy of the game state.
func (c *Controller) Snapshot() game.Snapshot {
	return c.engine.Snapshot()
}

// Screen returns the current screen.
func (c *Controller) Screen() game.Screen {
	return c.engine.Screen()
}

// ShowRankings moves from the start screen to the rankings screen.
// Callers follow up with RefreshRankings.
func (c *Controller) ShowRankings() bool {
	return c.engine.SetScreen(game.ScreenRankings)
}

// BackToStart returns from the rankings screen.
func (c *Controller) BackToStart() bool {
	return c.engine.SetScreen(game.ScreenStart)
}

// SubmitName records the latched final score under name and moves to the
// rankings screen. A blank name is rejected and the session stays on name
// entry. Store failures only set the offline notice.
func (c *Controller) SubmitName(ctx context.Context, name string) (ranking.SubmitResult, error) {
	c.submitMu.Lock()
	defer c.submitMu.Unlock()

	snap := c.engine.Snapshot()
	if snap.Screen != game.ScreenNameInput {
		return ranking.SubmitResult{Rank: -1}, ErrNotAwaitingName
	}

	res, err := c.manager.Submit(ctx, name, snap.FinalScore, snap.Level)
	if err != nil {
		return res, fmt.Errorf("session: submit: %w", err)
	}

	c.mu.Lock()
	c.last = &res
	if !res.Persisted {
		c.notice = NoticeOffline
	}
	c.mu.Unlock()

	c.logger.Info("Ranking submitted", "name", res.Entry.Name, "score", res.Entry.Score, "rank", res.Rank, "persisted", res.Persisted)
	c.engine.SetScreen(game.ScreenRankings)
	return res, nil
}

// SkipName leaves name entry without submitting.
func (c *Controller) SkipName() bool {
	if c.engine.Screen() != game.ScreenNameInput {
		return false
	}
	return c.engine.SetScreen(game.ScreenRankings)
}

// RefreshRankings reloads the leaderboard from the store.
func (c *Controller) RefreshRankings(ctx context.Context) []ranking.Entry {
	return c.manager.Refresh(ctx)
}

// Rankings returns the cached leaderboard.
func (c *Controller) Rankings() []ranking.Entry {
	return c.manager.Rankings()
}

// RankingsLoading reports whether a refresh is in flight.
func (c *Controller) RankingsLoading() bool {
	return c.manager.Loading()
}

// LastSubmission returns the result of this session's submission, if any.
func (c *Controller) LastSubmission() (ranking.SubmitResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return ranking.SubmitResult{}, false
	}
	return *c.last, true
}

// Notice returns the last non-blocking message for the player.
func (c *Controller) Notice() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notice
}

// Close stops the engine.
func (c *Controller) Close() {
	c.engine.Close()
}
