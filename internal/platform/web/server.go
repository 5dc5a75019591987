// Package web serves the game over WebSocket together with the leaderboard
// HTTP API.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/cupid-arrow/internal/config"
	"github.com/vovakirdan/cupid-arrow/internal/game"
	"github.com/vovakirdan/cupid-arrow/internal/ranking"
	"github.com/vovakirdan/cupid-arrow/internal/scheduler"
	"github.com/vovakirdan/cupid-arrow/internal/session"
)

const (
	storeTimeout = 5 * time.Second
	writeTimeout = 5 * time.Second
)

//go:embed static
var staticFiles embed.FS

// ServerConfig holds configuration for the web server.
type ServerConfig struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// Game is the simulation config every connection plays with.
	Game config.CupidConfig

	// TickRate overrides Game.Timing.DefaultTickRate when positive.
	TickRate int

	// SnapshotRate is how many snapshot frames per second each client receives.
	SnapshotRate int

	// Seed fixes the spawn sequence when non-zero. Each connection offsets it
	// by its connection number.
	Seed int64

	// Manager is the leaderboard shared by all connections.
	Manager *ranking.Manager

	// Store backs /api/rankings. The route is not mounted when nil.
	Store ranking.Store
}

// DefaultServerConfig returns a config with sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:      ":8080",
		Game:         config.DefaultCupidConfig(),
		SnapshotRate: 30,
	}
}

// Server hosts game sessions over WebSocket.
type Server struct {
	config   ServerConfig
	logger   *log.Logger
	upgrader websocket.Upgrader
	mux      *http.ServeMux
	http     *http.Server
	nextID   atomic.Int64
}

// NewServer builds the server and its routes.
func NewServer(cfg ServerConfig, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "cupid-web",
		})
	}
	if cfg.Manager == nil {
		cfg.Manager = ranking.NewManager(cfg.Store, ranking.WithLogger(logger))
	}
	if cfg.SnapshotRate <= 0 {
		cfg.SnapshotRate = 30
	}

	s := &Server{
		config: cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		mux: http.NewServeMux(),
	}

	s.mux.HandleFunc("/ws", s.handleWS)
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if cfg.Store != nil {
		s.mux.Handle(ranking.RankingsPath, ranking.NewHandler(cfg.Store, logger.With("component", "api")))
	}
	if static, err := fs.Sub(staticFiles, "static"); err == nil {
		s.mux.Handle("/", http.FileServer(http.FS(static)))
	}

	s.http = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the server's route table.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	id := s.nextID.Add(1)
	logger := s.logger.With("conn", id, "remote", r.RemoteAddr)

	tickRate := s.config.TickRate
	if tickRate <= 0 {
		tickRate = s.config.Game.Timing.DefaultTickRate
	}
	seed := time.Now().UnixNano()
	if s.config.Seed != 0 {
		seed = s.config.Seed + id
	}

	ctrl := session.NewController(
		s.config.Game,
		s.config.Manager,
		scheduler.NewFixed(scheduler.Interval(tickRate)),
		game.NewRandom(seed),
		logger,
	)

	logger.Info("client connected")
	newWSSession(conn, ctrl, time.Second/time.Duration(s.config.SnapshotRate), logger).run()
	logger.Info("client disconnected")
}

// ListenAndServe starts the web server and blocks until shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting web server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("web: cannot serve: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-done:
	}
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *Server) Addr() string {
	return s.config.Address
}
