// rotopong is a circular-arena breakout played around a black hole, in the
// terminal.
//
// Usage:
//
//	rotopong play              - Play in the local terminal
//	rotopong scores            - Show the leaderboard
//	rotopong verify <file>     - Verify a save envelope
//	rotopong serve             - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>   - RNG seed for reproducible runs (0 = time-based)
//	--tuning <path>  - Custom tuning YAML
//	--db <path>      - Leaderboard database path
//	--save-dir <dir> - Checkpoint directory
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed    uint64
	flagTuning  string
	flagDBPath  string
	flagSaveDir string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rotopong",
	Short: "Roto Pong - circular breakout around a black hole",
	Long: `Roto Pong is a terminal arcade game: a paddle orbits a central black
hole inside a circular arena, and every wave of arc blocks is procedurally
generated with a guaranteed safe lane.

Available commands:
  play     - Play in the local terminal
  scores   - View the leaderboard
  verify   - Verify a save file's integrity
  serve    - Start SSH server for remote play

Examples:
  rotopong play
  rotopong play --seed 42
  rotopong play --resume
  rotopong scores --limit 20
  rotopong verify ~/.rotopong/saves/save.json
  rotopong serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagTuning, "tuning", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.rotopong/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagSaveDir, "save-dir", "", "Checkpoint directory (default ~/.rotopong/saves)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(serveCmd)
}

// saveDir resolves the checkpoint directory.
func saveDir() (string, error) {
	if flagSaveDir != "" {
		return flagSaveDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve home directory: %w", err)
	}
	return home + "/.rotopong/saves", nil
}
