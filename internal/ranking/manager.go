package ranking

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// SubmitResult describes the outcome of a submission.
type SubmitResult struct {
	Entry     Entry
	Persisted bool // false when the store failed and the entry was only merged locally
	Rank      int  // 1-based position in the cache, or -1
}

// Manager caches the leaderboard and mediates all store traffic. It is safe
// for concurrent use; store calls never hold the cache lock.
type Manager struct {
	store  Store
	logger *log.Logger

	mu      sync.RWMutex
	entries []Entry
	loading bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for store warnings.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithEntries replaces the placeholder seed.
func WithEntries(entries []Entry) Option {
	return func(m *Manager) {
		m.entries = normalize(append([]Entry(nil), entries...))
	}
}

// NewManager creates a Manager seeded with the placeholder leaderboard.
// A nil store keeps every submission local.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		logger:  log.New(io.Discard),
		entries: Placeholders(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Rankings returns a copy of the cached leaderboard.
func (m *Manager) Rankings() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Entry(nil), m.entries...)
}

// Loading reports whether a refresh is in flight.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// Refresh fetches the top entries from the store. A non-empty result replaces
// the cache; errors keep the cache and are logged.
func (m *Manager) Refresh(ctx context.Context) []Entry {
	if m.store == nil {
		return m.Rankings()
	}

	m.setLoading(true)
	defer m.setLoading(false)

	entries, err := m.store.Top(ctx, MaxEntries)
	if err != nil {
		m.logger.Warn("Cannot fetch rankings, keeping cached list", "error", err)
		return m.Rankings()
	}
	if len(entries) > 0 {
		m.adopt(entries)
	}
	return m.Rankings()
}

// Qualifies reports whether score earns a place: fewer than MaxEntries
// entries exist, or it beats the last one.
func (m *Manager) Qualifies(score int) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.entries) < MaxEntries {
		return true
	}
	return score > m.entries[MaxEntries-1].Score
}

// Submit records a score under name. Store failures are not returned: the
// entry is merged into the cache and Persisted is false. Only a blank name is
// an error.
func (m *Manager) Submit(ctx context.Context, name string, score, level int) (SubmitResult, error) {
	name = CleanName(name)
	if name == "" {
		return SubmitResult{Rank: -1}, ErrEmptyName
	}

	entry := Entry{Name: name, Score: score, Level: level}
	res := SubmitResult{Entry: entry}

	if m.store == nil {
		m.merge(entry)
	} else if err := m.store.Submit(ctx, entry); err != nil {
		m.logger.Warn("Cannot save ranking, keeping it locally", "name", name, "score", score, "error", err)
		m.merge(entry)
	} else {
		res.Persisted = true
		entries, err := m.store.Top(ctx, MaxEntries)
		switch {
		case err != nil:
			m.logger.Warn("Cannot refetch rankings after save", "error", err)
			m.merge(entry)
		case len(entries) == 0:
			m.merge(entry)
		default:
			m.adopt(entries)
		}
	}

	res.Rank = m.Rank(name, score)
	return res, nil
}

// Rank returns the 1-based position of the first entry matching name and
// score, or -1.
func (m *Manager) Rank(name string, score int) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i, e := range m.entries {
		if e.Name == name && e.Score == score {
			return i + 1
		}
	}
	return -1
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}

func (m *Manager) adopt(entries []Entry) {
	sorted := normalize(append([]Entry(nil), entries...))
	m.mu.Lock()
	m.entries = sorted
	m.mu.Unlock()
}

func (m *Manager) merge(e Entry) {
	m.mu.Lock()
	m.entries = Merge(m.entries, e)
	m.mu.Unlock()
}
