package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cupid-arrow/internal/platform/tui"
	"github.com/vovakirdan/cupid-arrow/internal/ranking"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Cupid Arrow in this terminal",
	Long: `Start Cupid Arrow in the current terminal.

Controls:
  Left/A, Right/D  - Move
  1                - Use shield
  2                - Use speed boost
  Enter            - Start / submit name
  R                - Rankings
  Esc/B            - Back
  Q/Ctrl+C         - Quit

Difficulty options:
  easy    - Fewer arrows, more items
  normal  - Config defaults
  hard    - More arrows, fewer items

Examples:
  cupid play
  cupid play --difficulty hard
  cupid play --config ./my-cupid.yaml
  cupid play --rankings-url https://example.com`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	gameCfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, closer := openRankingStore(newLogger("cupid"))
	defer closer.Close()

	// Logging to stderr would tear the alt screen, so the session stays quiet.
	return tui.Run(tui.Options{
		Game:     gameCfg,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Manager:  ranking.NewManager(store),
		Width:    width,
		Height:   height,
	})
}
