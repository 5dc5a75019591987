// cupid is Cupid Arrow, a falling-arrow dodging game for the terminal, SSH
// and the browser, with a shared top-10 leaderboard.
//
// Usage:
//
//	cupid play        - Play in this terminal
//	cupid serve       - Start SSH server for remote play
//	cupid web         - Start WebSocket server and rankings API
//	cupid rankings    - Show the leaderboard
//
// Global flags:
//
//	--fps <rate>            - Set tick rate (default: config tick rate)
//	--seed <value>          - Set RNG seed for reproducible gameplay
//	--db <path>             - Set database path (default: ~/.cupid/rankings.db)
//	--config <path>         - Custom game config YAML
//	--difficulty <preset>   - easy, normal or hard
//	--rankings-url <url>    - Use a remote rankings API instead of the database
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cupid-arrow/internal/config"
	"github.com/vovakirdan/cupid-arrow/internal/ranking"
	"github.com/vovakirdan/cupid-arrow/internal/storage"
)

var (
	// Global flags
	flagFPS         int
	flagSeed        int64
	flagDBPath      string
	flagConfig      string
	flagDifficulty  string
	flagRankingsURL string
	flagVerbose     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cupid",
	Short: "Cupid Arrow - Dodge the falling arrows",
	Long: `Cupid Arrow is a small arcade game: steer the heart left and right,
dodge Cupid's arrows, collect shield and speed items, and climb the
top-10 leaderboard.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  web       - Start WebSocket server and rankings API
  rankings  - View the leaderboard

Examples:
  cupid play
  cupid play --difficulty hard
  cupid serve --ssh :2222
  cupid web --http :8080
  cupid rankings`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = config tick rate)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.cupid/rankings.db", "Path to rankings database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagRankingsURL, "rankings-url", "", "Base URL of a remote rankings API")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(rankingsCmd)
}

func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadGameConfig resolves the game config and applies --difficulty.
func loadGameConfig() (config.CupidConfig, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.CupidConfig{}, err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.CupidConfig{}, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

// openRankingStore picks the leaderboard backend: the remote API when
// --rankings-url is set, otherwise the local database. A database that cannot
// be opened is reported and the game continues with a local-only leaderboard.
func openRankingStore(logger *log.Logger) (ranking.Store, io.Closer) {
	if flagRankingsURL != "" {
		return ranking.NewHTTPClient(flagRankingsURL, nil), io.NopCloser(nil)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open rankings database, scores stay local", "path", flagDBPath, "error", err)
		return nil, io.NopCloser(nil)
	}
	return store, store
}
