package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/vovakirdan/cupid-arrow/internal/ranking"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSubmitAndTop(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, e := range []ranking.Entry{
		{Name: "cupid", Score: 100, Level: 1},
		{Name: "psyche", Score: 50, Level: 1},
		{Name: "eros", Score: 200, Level: 2},
		{Name: "nolevel", Score: 75},
	} {
		if err := store.Submit(ctx, e); err != nil {
			t.Fatalf("Submit() failed: %v", err)
		}
	}

	entries, err := store.Top(ctx, 10)
	if err != nil {
		t.Fatalf("Top() failed: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("Expected 4 entries, got %d", len(entries))
	}

	want := []string{"eros", "cupid", "nolevel", "psyche"}
	for i, name := range want {
		if entries[i].Name != name {
			t.Errorf("entries[%d] = %q, expected %q", i, entries[i].Name, name)
		}
	}
	if entries[2].Level != 1 {
		t.Errorf("missing level should default to 1, got %d", entries[2].Level)
	}
	if entries[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set by the store")
	}
}

func TestStorePrunesToTopTen(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 15; i++ {
		if err := store.Submit(ctx, ranking.Entry{Name: fmt.Sprintf("p%d", i), Score: i * 100, Level: 1}); err != nil {
			t.Fatalf("Submit() failed: %v", err)
		}
	}

	entries, err := store.Top(ctx, 100)
	if err != nil {
		t.Fatalf("Top() failed: %v", err)
	}
	if len(entries) != ranking.MaxEntries {
		t.Fatalf("Expected %d active entries, got %d", ranking.MaxEntries, len(entries))
	}
	if entries[0].Score != 1500 || entries[9].Score != 600 {
		t.Errorf("unexpected top range %d..%d", entries[0].Score, entries[9].Score)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Submissions != 15 || stats.Archived != 5 {
		t.Errorf("expected 15 submissions with 5 archived, got %+v", stats)
	}
	if stats.HighScore != 1500 {
		t.Errorf("expected high score 1500, got %d", stats.HighScore)
	}
	if stats.AvgScore != 800 {
		t.Errorf("expected average 800, got %v", stats.AvgScore)
	}
}

func TestStoreLowScoreIsArchivedImmediately(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < ranking.MaxEntries; i++ {
		store.Submit(ctx, ranking.Entry{Name: "top", Score: 1000, Level: 1})
	}
	if err := store.Submit(ctx, ranking.Entry{Name: "late", Score: 1000, Level: 1}); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	entries, _ := store.Top(ctx, 100)
	for _, e := range entries {
		if e.Name == "late" {
			t.Error("a tie with the 10th place should be archived, earlier entries win")
		}
	}
}

func TestStoreClear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.Submit(ctx, ranking.Entry{Name: "a", Score: 1, Level: 1})
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}

	entries, err := store.Top(ctx, 10)
	if err != nil {
		t.Fatalf("Top() failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries after clear, got %d", len(entries))
	}

	stats, _ := store.Stats(ctx)
	if stats.Submissions != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}
}

func TestStoreConcurrentSubmits(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := store.Submit(ctx, ranking.Entry{Name: "c", Score: i, Level: 1}); err != nil {
				t.Errorf("Submit() failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	entries, _ := store.Top(ctx, 100)
	if len(entries) != ranking.MaxEntries {
		t.Errorf("Expected %d entries, got %d", ranking.MaxEntries, len(entries))
	}
}

func TestStoreBacksManager(t *testing.T) {
	store := openTestStore(t)
	m := ranking.NewManager(store)

	res, err := m.Submit(context.Background(), "heart", 42, 1)
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if !res.Persisted || res.Rank != 1 {
		t.Errorf("expected persisted rank 1, got %+v", res)
	}
	if got := m.Rankings(); len(got) != 1 || got[0].Name != "heart" {
		t.Errorf("manager should adopt the store list, got %+v", got)
	}
}
