package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/cupid-arrow/internal/config"
	"github.com/vovakirdan/cupid-arrow/internal/ranking"
	"github.com/vovakirdan/cupid-arrow/internal/storage"
)

// frame decodes any server message.
type frame struct {
	Type       string          `json:"type"`
	Screen     string          `json:"screen"`
	Lives      int             `json:"lives"`
	Score      int             `json:"score"`
	FinalScore int             `json:"finalScore"`
	Name       string          `json:"name"`
	Rank       int             `json:"rank"`
	Persisted  bool            `json:"persisted"`
	Error      string          `json:"error"`
	Entries    []ranking.Entry `json:"entries"`
}

// arrowRainConfig drops an arrow on a one-life player every tick.
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

func newTestServer(t *testing.T, cfg ServerConfig) *httptest.Server {
	t.Helper()
	srv := NewServer(cfg, log.New(io.Discard))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "rankings.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to dial websocket: %v", err)
	}
	t.Cleanup(func() {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
	})
	return conn
}

func sendJSON(t *testing.T, conn *websocket.Conn, v any) {
	t.Helper()
	if err := conn.WriteJSON(v); err != nil {
		t.Fatalf("failed to send message: %v", err)
	}
}

// readUntil reads frames until match accepts one or the deadline passes.
func readUntil(t *testing.T, conn *websocket.Conn, what string, match func(frame) bool) frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("waiting for %s: %v", what, err)
		}
		var f frame
		if err := json.Unmarshal(data, &f); err != nil {
			t.Fatalf("server sent invalid JSON %q: %v", data, err)
		}
		if match(f) {
			return f
		}
	}
}

func snapshotOn(screen string) func(frame) bool {
	return func(f frame) bool { return f.Type == "snapshot" && f.Screen == screen }
}

func TestWebSocketGameOverAndSubmit(t *testing.T) {
	store := openStore(t)
	cfg := DefaultServerConfig()
	cfg.Game = arrowRainConfig()
	cfg.TickRate = 1000
	cfg.SnapshotRate = 200
	cfg.Store = store
	cfg.Manager = ranking.NewManager(store, ranking.WithEntries(nil))
	ts := newTestServer(t, cfg)
	conn := dial(t, ts)

	first := readUntil(t, conn, "first snapshot", func(f frame) bool { return f.Type == "snapshot" })
	if first.Screen != "start" {
		t.Fatalf("new connections should start on the start screen, got %q", first.Screen)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("failed to send malformed message: %v", err)
	}
	sendJSON(t, conn, map[string]any{"type": "start"})
	readUntil(t, conn, "playing", snapshotOn("playing"))

	over := readUntil(t, conn, "name entry", snapshotOn("nameInput"))
	if over.Lives != 0 || over.FinalScore <= 0 {
		t.Fatalf("unexpected game over frame %+v", over)
	}

	sendJSON(t, conn, map[string]any{"type": "submit", "name": "  "})
	blank := readUntil(t, conn, "blank reply", func(f frame) bool { return f.Type == "submitted" })
	if blank.Error == "" {
		t.Error("blank name should be refused")
	}

	sendJSON(t, conn, map[string]any{"type": "submit", "name": "webcupid"})
	res := readUntil(t, conn, "submit reply", func(f frame) bool { return f.Type == "submitted" })
	if res.Error != "" || res.Rank != 1 || !res.Persisted {
		t.Fatalf("unexpected submit reply %+v", res)
	}
	if res.Score != over.FinalScore {
		t.Errorf("submitted score %d, final score was %d", res.Score, over.FinalScore)
	}
	readUntil(t, conn, "rankings screen", snapshotOn("rankings"))

	resp, err := http.Get(ts.URL + ranking.RankingsPath)
	if err != nil {
		t.Fatalf("GET rankings: %v", err)
	}
	defer resp.Body.Close()
	var entries []ranking.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("decode rankings: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "webcupid" {
		t.Errorf("expected the submitted entry from the API, got %+v", entries)
	}
}

func TestWebSocketLowScoreSendsRankings(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.Game = arrowRainConfig()
	cfg.TickRate = 1000
	cfg.SnapshotRate = 200
	ts := newTestServer(t, cfg)
	conn := dial(t, ts)

	sendJSON(t, conn, map[string]any{"type": "start"})
	readUntil(t, conn, "playing", snapshotOn("playing"))

	// Placeholders bottom out at 200, far above what one arrow allows.
	list := readUntil(t, conn, "rankings after game over", func(f frame) bool {
		if f.Type == "snapshot" && f.Screen == "nameInput" {
			t.Fatal("a score below 10th place should skip name entry")
		}
		return f.Type == "rankings"
	})
	if len(list.Entries) != ranking.MaxEntries {
		t.Errorf("expected %d placeholder entries, got %d", ranking.MaxEntries, len(list.Entries))
	}

	sendJSON(t, conn, map[string]any{"type": "screen", "screen": "rankings"})
	again := readUntil(t, conn, "refreshed rankings", func(f frame) bool { return f.Type == "rankings" })
	if len(again.Entries) != ranking.MaxEntries {
		t.Errorf("refresh on the rankings screen returned %d entries", len(again.Entries))
	}
}

func TestWebSocketIgnoresInvalidCommands(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.SnapshotRate = 100
	ts := newTestServer(t, cfg)
	conn := dial(t, ts)

	sendJSON(t, conn, map[string]any{"type": "item", "item": "laser"})
	sendJSON(t, conn, map[string]any{"type": "screen", "screen": "credits"})
	sendJSON(t, conn, map[string]any{"type": "teleport"})
	sendJSON(t, conn, map[string]any{"type": "screen", "screen": "rankings"})

	list := readUntil(t, conn, "rankings", func(f frame) bool { return f.Type == "rankings" })
	if len(list.Entries) != ranking.MaxEntries {
		t.Errorf("offline server should list placeholders, got %d entries", len(list.Entries))
	}
	readUntil(t, conn, "rankings screen", snapshotOn("rankings"))

	sendJSON(t, conn, map[string]any{"type": "screen", "screen": "start"})
	readUntil(t, conn, "start screen", snapshotOn("start"))
}

func TestHealthAndRoutes(t *testing.T) {
	ts := newTestServer(t, DefaultServerConfig())

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("healthz = %d %q", resp.StatusCode, body)
	}

	resp, err = http.Get(ts.URL + ranking.RankingsPath)
	if err != nil {
		t.Fatalf("GET rankings: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("rankings API without a store should be absent, got %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "Cupid Arrow") {
		t.Error("index page should be served at /")
	}
}
