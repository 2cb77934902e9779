package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rotopong/internal/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the top completed runs.

Examples:
  rotopong scores
  rotopong scores --limit 20`,
	Run: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	runs, err := store.TopRuns(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Roto Pong - Leaderboard")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'rotopong play' to set the first score!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-5s  %-8s  %-20s  %s\n", "Rank", "Score", "Wave", "Time", "Seed", "Date")
	fmt.Printf("  %-4s  %-10s  %-5s  %-8s  %-20s  %s\n", "----", "-----", "----", "----", "----", "----")

	for i, entry := range runs {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		timeStr := fmt.Sprintf("%dm%02ds", entry.DurationSecs/60, entry.DurationSecs%60)
		fmt.Printf("  %-4d  %-10d  %-5d  %-8s  %-20d  %s\n",
			i+1, entry.Score, entry.WaveReached+1, timeStr, entry.Seed, dateStr)
	}

	best, err := store.BestScore()
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d\n", best)
	}
}
