package web

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/cupid-arrow/internal/game"
	"github.com/vovakirdan/cupid-arrow/internal/ranking"
	"github.com/vovakirdan/cupid-arrow/internal/session"
)

// outboxSize bounds queued replies per connection.
const outboxSize = 16

// wsSession pairs one websocket connection with one game session. The reader
// runs on the handler goroutine; a single writer goroutine owns all writes.
type wsSession struct {
	conn     *websocket.Conn
	ctrl     *session.Controller
	logger   *log.Logger
	interval time.Duration

	// sent is the screen of the last snapshot written. Only the writer reads
	// or updates it.
	sent game.Screen

	out       chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newWSSession(conn *websocket.Conn, ctrl *session.Controller, interval time.Duration, logger *log.Logger) *wsSession {
	return &wsSession{
		conn:     conn,
		ctrl:     ctrl,
		logger:   logger,
		interval: interval,
		out:      make(chan []byte, outboxSize),
		done:     make(chan struct{}),
	}
}

// run serves the connection until the client goes away.
func (s *wsSession) run() {
	defer s.close()
	go s.writeLoop()

	for {
		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("read failed", "error", err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logger.Warn("discarding malformed message", "error", err)
			continue
		}
		s.handle(msg)
	}
}

func (s *wsSession) handle(msg clientMessage) {
	switch msg.Type {
	case "start":
		s.ctrl.Start()

	case "move":
		s.ctrl.Move(game.Input{Left: msg.Left, Right: msg.Right})

	case "item":
		item, ok := game.ParseItem(msg.Item)
		if !ok {
			s.logger.Warn("discarding unknown item", "item", msg.Item)
			return
		}
		s.ctrl.UseItem(item)

	case "screen":
		screen, ok := game.ParseScreen(msg.Screen)
		if !ok {
			s.logger.Warn("discarding unknown screen", "screen", msg.Screen)
			return
		}
		s.changeScreen(screen)

	case "submit":
		s.submit(msg.Name)

	case "rankings":
		s.sendRankings()

	default:
		s.logger.Warn("discarding unknown message", "type", msg.Type)
	}
}

func (s *wsSession) changeScreen(to game.Screen) {
	switch to {
	case game.ScreenPlaying:
		s.ctrl.Start()
	case game.ScreenStart:
		s.ctrl.BackToStart()
	case game.ScreenRankings:
		// Entering rankings is announced by the writer. Asking again while
		// already there refreshes the list.
		if s.ctrl.Screen() == game.ScreenRankings {
			s.sendRankings()
			return
		}
		if !s.ctrl.ShowRankings() {
			s.ctrl.SkipName()
		}
	}
}

func (s *wsSession) submit(name string) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	res, err := s.ctrl.SubmitName(ctx, name)
	reply := submittedMessage{
		Type:      "submitted",
		Name:      res.Entry.Name,
		Score:     res.Entry.Score,
		Rank:      res.Rank,
		Persisted: res.Persisted,
	}
	switch {
	case errors.Is(err, ranking.ErrEmptyName):
		reply.Error = "name is required"
	case errors.Is(err, session.ErrNotAwaitingName):
		reply.Error = "no score to submit"
	case err != nil:
		reply.Error = err.Error()
	}
	s.send(reply)
}

// sendRankings refreshes the leaderboard and sends it.
func (s *wsSession) sendRankings() {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	s.send(rankingsMessage{Type: "rankings", Entries: s.ctrl.RefreshRankings(ctx)})
}

// send queues a reply for the writer. Replies are dropped once closed.
func (s *wsSession) send(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("cannot encode message", "error", err)
		return
	}
	select {
	case s.out <- data:
	case <-s.done:
	}
}

func (s *wsSession) writeLoop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	if !s.writeSnapshot() {
		return
	}
	for {
		select {
		case <-s.done:
			return
		case data := <-s.out:
			if !s.write(data) {
				return
			}
		case <-ticker.C:
			if !s.writeSnapshot() {
				return
			}
		}
	}
}

// writeSnapshot writes the current snapshot. Whenever the session arrives on
// the rankings screen, by request or because the score did not qualify, a
// refreshed leaderboard follows.
func (s *wsSession) writeSnapshot() bool {
	snap := s.ctrl.Snapshot()
	data, err := json.Marshal(snapshotMessage{
		Type:     "snapshot",
		Snapshot: snap,
		Notice:   s.ctrl.Notice(),
	})
	if err != nil {
		s.logger.Error("cannot encode snapshot", "error", err)
		return true
	}
	if !s.write(data) {
		return false
	}

	if snap.Screen == game.ScreenRankings && s.sent != game.ScreenRankings {
		// The store call must not stall the writer that drains s.out.
		go s.sendRankings()
	}
	s.sent = snap.Screen
	return true
}

func (s *wsSession) write(data []byte) bool {
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		s.logger.Debug("cannot set write deadline", "error", err)
		s.close()
		return false
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.logger.Debug("write failed", "error", err)
		s.close()
		return false
	}
	return true
}

func (s *wsSession) close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.ctrl.Close()
		s.conn.Close()
	})
}
