package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cupid-arrow/internal/ranking"
	"github.com/vovakirdan/cupid-arrow/internal/storage"
)

var flagClear bool

var rankingsCmd = &cobra.Command{
	Use:   "rankings",
	Short: "Show the leaderboard",
	Long: `Display the top 10 rankings.

Reads the local database, or the remote API when --rankings-url is set.

Examples:
  cupid rankings
  cupid rankings --db ./rankings.db
  cupid rankings --clear`,
	Args: cobra.NoArgs,
	RunE: runRankings,
}

func init() {
	rankingsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all local rankings")
}

func runRankings(_ *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if flagRankingsURL != "" {
		if flagClear {
			return fmt.Errorf("--clear only works on the local database")
		}
		entries, err := ranking.NewHTTPClient(flagRankingsURL, nil).Top(ctx, ranking.MaxEntries)
		if err != nil {
			return err
		}
		printRankings(entries)
		return nil
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open rankings database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.Clear(ctx); err != nil {
			return err
		}
		fmt.Println("Rankings cleared.")
		return nil
	}

	entries, err := store.Top(ctx, ranking.MaxEntries)
	if err != nil {
		return err
	}
	printRankings(entries)
	if len(entries) == 0 {
		return nil
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Games: %d  Best: %d  Average: %.0f\n", stats.Submissions, stats.HighScore, stats.AvgScore)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("Last played: %s\n", stats.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func printRankings(entries []ranking.Entry) {
	fmt.Println("Cupid Arrow - Rankings")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No rankings recorded yet.")
		fmt.Println()
		fmt.Println("Play 'cupid play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "Rank", "Name", "Score", "Level")
	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "----", "----", "-----", "-----")
	for i, e := range entries {
		fmt.Printf("  %-4d  %-10s  %-8d  %d\n", i+1, e.Name, e.Score, e.Level)
	}
}
