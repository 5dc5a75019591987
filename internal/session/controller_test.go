package session

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/cupid-arrow/internal/config"
	"github.com/vovakirdan/cupid-arrow/internal/core"
	"github.com/vovakirdan/cupid-arrow/internal/game"
	"github.com/vovakirdan/cupid-arrow/internal/ranking"
	"github.com/vovakirdan/cupid-arrow/internal/scheduler"
)

// fixedRandom always returns the same value.
type fixedRandom float64

func (f fixedRandom) Float64() float64 { return float64(f) }

// failingStore rejects every call.
type failingStore struct{}

func (failingStore) Top(context.Context, int) ([]ranking.Entry, error) {
	return nil, ranking.ErrUnavailable
}

func (failingStore) Submit(context.Context, ranking.Entry) error {
	return ranking.ErrUnavailable
}

// arrowRainConfig spawns an arrow every tick straight above a one-life player,
// so the session ends on the first arrow to arrive.
func arrowRainConfig() config.CupidConfig {
	cfg := config.DefaultCupidConfig()
	cfg.Scoring.Lives = 1
	cfg.Spawns.Arrow = 1
	cfg.Spawns.ArrowFast = 1
	cfg.Spawns.Confusion = 0
	cfg.Spawns.Slow = 0
	cfg.Field.SpawnMargin = 160
	return cfg
}

func quietConfig() config.CupidConfig {
	cfg := config.DefaultCupidConfig()
	cfg.Spawns.Arrow = 0
	cfg.Spawns.ArrowFast = 0
	cfg.Spawns.Confusion = 0
	cfg.Spawns.Slow = 0
	return cfg
}

// playUntilOver steps the scheduler until the session leaves playing.
func playUntilOver(t *testing.T, c *Controller, sched *scheduler.Manual) game.Snapshot {
	t.Helper()
	for i := 0; i < 20000; i++ {
		if !sched.Step() {
			break
		}
	}
	snap := c.Snapshot()
	if snap.Screen == game.ScreenPlaying {
		t.Fatal("session did not end")
	}
	return snap
}

func TestGameOverToNameInputToRankings(t *testing.T) {
	sched := scheduler.NewManual()
	manager := ranking.NewManager(nil, ranking.WithEntries(nil))
	c := NewController(arrowRainConfig(), manager, sched, fixedRandom(0), nil)
	defer c.Close()

	if !c.Start() {
		t.Fatal("Start() failed")
	}
	snap := playUntilOver(t, c, sched)

	if snap.Screen != game.ScreenNameInput {
		t.Fatalf("an empty leaderboard should ask for a name, got %s", snap.Screen)
	}
	if snap.Lives != 0 {
		t.Errorf("expected lives 0, got %d", snap.Lives)
	}

	if _, err := c.SubmitName(context.Background(), "   "); !errors.Is(err, ranking.ErrEmptyName) {
		t.Errorf("blank name error = %v, expected ErrEmptyName", err)
	}
	if c.Screen() != game.ScreenNameInput {
		t.Error("blank name must keep the name entry screen")
	}

	res, err := c.SubmitName(context.Background(), "cupid")
	if err != nil {
		t.Fatalf("SubmitName: %v", err)
	}
	if res.Rank != 1 || res.Entry.Score != snap.FinalScore {
		t.Errorf("unexpected result %+v for final score %d", res, snap.FinalScore)
	}
	if c.Screen() != game.ScreenRankings {
		t.Errorf("expected rankings after submit, got %s", c.Screen())
	}
	if last, ok := c.LastSubmission(); !ok || last.Entry.Name != "cupid" {
		t.Errorf("LastSubmission = %+v, %v", last, ok)
	}

	if _, err := c.SubmitName(context.Background(), "again"); !errors.Is(err, ErrNotAwaitingName) {
		t.Errorf("second submit error = %v, expected ErrNotAwaitingName", err)
	}
}

func TestLowScoreGoesStraightToRankings(t *testing.T) {
	sched := scheduler.NewManual()
	c := NewController(arrowRainConfig(), ranking.NewManager(nil), sched, fixedRandom(0), nil)
	defer c.Close()

	c.Start()
	snap := playUntilOver(t, c, sched)

	// Placeholders bottom out at 200 and the first arrow lands around tick 65.
	if snap.FinalScore > 200 {
		t.Fatalf("test assumes a low final score, got %d", snap.FinalScore)
	}
	if snap.Screen != game.ScreenRankings {
		t.Errorf("expected rankings, got %s", snap.Screen)
	}
}

func TestOfflineSubmissionSetsNotice(t *testing.T) {
	sched := scheduler.NewManual()
	manager := ranking.NewManager(failingStore{}, ranking.WithEntries(nil))
	c := NewController(arrowRainConfig(), manager, sched, fixedRandom(0), nil)
	defer c.Close()

	c.Start()
	playUntilOver(t, c, sched)

	res, err := c.SubmitName(context.Background(), "offline")
	if err != nil {
		t.Fatalf("SubmitName: %v", err)
	}
	if res.Persisted {
		t.Error("failing store should not persist")
	}
	if c.Notice() != NoticeOffline {
		t.Errorf("expected offline notice, got %q", c.Notice())
	}
	if got := c.Rankings(); len(got) != 1 || got[0].Name != "offline" {
		t.Errorf("entry should be merged locally, got %+v", got)
	}

	if c.SkipName() {
		t.Error("SkipName outside name entry should be ignored")
	}
	if !c.Start() {
		t.Fatal("restart from rankings should succeed")
	}
	if c.Notice() != "" {
		t.Error("restart should clear the notice")
	}
}

func TestSkipName(t *testing.T) {
	sched := scheduler.NewManual()
	manager := ranking.NewManager(nil, ranking.WithEntries(nil))
	c := NewController(arrowRainConfig(), manager, sched, fixedRandom(0), nil)
	defer c.Close()

	c.Start()
	playUntilOver(t, c, sched)

	if !c.SkipName() {
		t.Fatal("SkipName from name entry should succeed")
	}
	if c.Screen() != game.ScreenRankings {
		t.Errorf("expected rankings, got %s", c.Screen())
	}
	if len(c.Rankings()) != 0 {
		t.Error("skipping must not record an entry")
	}
}

func TestRankingsNavigation(t *testing.T) {
	c := NewController(quietConfig(), nil, scheduler.NewManual(), fixedRandom(0.5), nil)
	defer c.Close()

	if c.BackToStart() {
		t.Error("BackToStart from start should be ignored")
	}
	if !c.ShowRankings() {
		t.Fatal("ShowRankings from start should succeed")
	}
	if got := c.RefreshRankings(context.Background()); len(got) != 10 {
		t.Errorf("local manager should keep placeholders, got %d", len(got))
	}
	if !c.BackToStart() {
		t.Error("BackToStart from rankings should succeed")
	}

	c.Start()
	if c.ShowRankings() {
		t.Error("ShowRankings while playing should be ignored")
	}
}

func TestControllerForwardsInput(t *testing.T) {
	sched := scheduler.NewManual()
	c := NewController(quietConfig(), nil, sched, fixedRandom(0.5), nil)
	defer c.Close()

	c.Start()
	c.Move(game.Input{Right: true})
	if !c.UseItem(game.ItemSpeed) {
		t.Fatal("UseItem(speed) should succeed")
	}
	sched.Step()

	snap := c.Snapshot()
	if snap.Player.Pos != (core.Vec2{X: 163, Y: 420}) {
		t.Errorf("expected boosted move to x=163, got %+v", snap.Player.Pos)
	}
	if snap.Score != 1 {
		t.Errorf("expected score 1, got %d", snap.Score)
	}
}

func TestCloseStopsTicking(t *testing.T) {
	sched := scheduler.NewManual()
	c := NewController(quietConfig(), nil, sched, fixedRandom(0.5), nil)

	c.Start()
	c.Close()
	if sched.Running() {
		t.Error("Close should stop the scheduler")
	}
	if c.Start() {
		t.Error("Start after Close should fail")
	}
}
