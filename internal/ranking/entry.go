// Package ranking implements the Cupid Arrow leaderboard: the cached top-10
// Manager, the Store contract it talks to, an HTTP client for remote stores,
// and the HTTP handler that exposes a Store as /api/rankings.
package ranking

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"
)

// MaxEntries is the leaderboard size.
const MaxEntries = 10

// MaxNameLength is the maximum player name length in runes.
const MaxNameLength = 10

var (
	// ErrEmptyName is returned when a submitted name is blank after trimming.
	ErrEmptyName = errors.New("ranking: name is required")
	// ErrUnavailable wraps failures to reach a ranking store.
	ErrUnavailable = errors.New("ranking: store unavailable")
)

// Entry is one leaderboard record.
type Entry struct {
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"-"`
}

// Store persists leaderboard entries. Top returns at most n entries ordered by
// score descending. Submit appends one entry; the store then keeps only the
// top MaxEntries.
type Store interface {
	Top(ctx context.Context, n int) ([]Entry, error)
	Submit(ctx context.Context, e Entry) error
}

// Placeholders returns the entries shown before any store has answered.
func Placeholders() []Entry {
	return []Entry{
		{Name: "화살마스터", Score: 2500, Level: 4},
		{Name: "천사", Score: 2000, Level: 4},
		{Name: "하트", Score: 1800, Level: 4},
		{Name: "사랑이", Score: 1500, Level: 3},
		{Name: "화살", Score: 1200, Level: 3},
		{Name: "핑크", Score: 1000, Level: 2},
		{Name: "로맨스", Score: 800, Level: 2},
		{Name: "달링", Score: 600, Level: 2},
		{Name: "허니", Score: 400, Level: 1},
		{Name: "러브", Score: 200, Level: 1},
	}
}

// Merge adds e to entries and returns a new score-descending list capped at
// MaxEntries. Ties keep their existing order, so the newcomer ranks below
// equal scores.
func Merge(entries []Entry, e Entry) []Entry {
	out := make([]Entry, 0, len(entries)+1)
	out = append(out, entries...)
	out = append(out, e)
	return normalize(out)
}

// normalize sorts entries by score descending and caps them at MaxEntries.
// The slice is sorted in place.
func normalize(entries []Entry) []Entry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries
}

// CleanName trims surrounding space and caps the name at MaxNameLength runes.
func CleanName(name string) string {
	r := []rune(strings.TrimSpace(name))
	if len(r) > MaxNameLength {
		r = r[:MaxNameLength]
	}
	return strings.TrimSpace(string(r))
}
