package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cupid-arrow/internal/platform/web"
	"github.com/vovakirdan/cupid-arrow/internal/ranking"
)

var (
	flagHTTPAddr     string
	flagSnapshotRate int
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the WebSocket game server and rankings API",
	Long: `Start an HTTP server for browser play.

Routes:
  /              - Browser client
  /ws            - Game session over WebSocket (JSON snapshots and commands)
  /api/rankings  - Rankings API (GET list, POST submit)
  /healthz       - Liveness check

With --rankings-url the API forwards to the remote rankings service.

Examples:
  cupid web
  cupid web --http :9000 --snapshot-rate 20
  cupid web --db ./rankings.db`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP server address (host:port)")
	webCmd.Flags().IntVar(&flagSnapshotRate, "snapshot-rate", 30, "Snapshot frames per second sent to each client")
}

func runWeb(_ *cobra.Command, _ []string) error {
	gameCfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	logger := newLogger("cupid-web")
	store, closer := openRankingStore(logger)
	defer closer.Close()

	cfg := web.ServerConfig{
		Address:      flagHTTPAddr,
		Game:         gameCfg,
		TickRate:     flagFPS,
		SnapshotRate: flagSnapshotRate,
		Seed:         flagSeed,
		Manager:      ranking.NewManager(store, ranking.WithLogger(logger)),
		Store:        store,
	}

	fmt.Printf("Starting Cupid Arrow web server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return web.NewServer(cfg, logger).ListenAndServe()
}
