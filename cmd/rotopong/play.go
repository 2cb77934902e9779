package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/rotopong/internal/config"
	"github.com/vovakirdan/rotopong/internal/platform/tui"
	"github.com/vovakirdan/rotopong/internal/save"
	"github.com/vovakirdan/rotopong/internal/sim"
	"github.com/vovakirdan/rotopong/internal/storage"
)

var flagResume bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the local terminal",
	Long: `Start a run in the local terminal.

Controls:
  A/D or arrows - Rotate the paddle
  Space/Enter   - Launch
  P/Esc         - Pause (also checkpoints the run)
  R             - Restart (after game over)
  Q/Ctrl+C      - Quit

The run is checkpointed at every wave boundary, on pause and on quit.
Use --resume to continue the latest checkpoint.

Examples:
  rotopong play
  rotopong play --seed 42
  rotopong play --resume
  rotopong play --tuning ./my-tuning.yaml`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Resume the latest checkpoint")
}

func runPlay(_ *cobra.Command, _ []string) {
	tun, err := config.Load(flagTuning)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading tuning: %v\n", err)
		os.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "rotopong"})

	dir, err := saveDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	saves, err := save.NewFileStore(dir, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening save directory: %v\n", err)
		os.Exit(1)
	}

	scores, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		scores = nil // play without a leaderboard
	}
	if scores != nil {
		defer scores.Close()
	}

	var resumed *sim.State
	if flagResume {
		resumed, err = saves.Load(&tun)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot resume: %s\n", resumeReason(err))
			os.Exit(1)
		}
	}

	model := tui.NewModel(tui.Options{
		Tuning: &tun,
		Seed:   flagSeed,
		Resume: resumed,
		Saves:  saves,
		Scores: scores,
		Logger: logger,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: stdout is not a terminal")
		os.Exit(1)
	}

	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// resumeReason maps load failures to the user-facing explanation.
func resumeReason(err error) string {
	switch {
	case errors.Is(err, save.ErrNotFound):
		return "no checkpoint found"
	case errors.Is(err, save.ErrUnsupportedSchema):
		return "checkpoint was written by an incompatible version"
	case errors.Is(err, save.ErrIntegrityMismatch):
		return "checkpoint is corrupted (and so is its backup)"
	case errors.Is(err, save.ErrTuningMismatch):
		return "checkpoint was recorded under different tuning constants"
	case errors.Is(err, save.ErrNotResumable):
		return "checkpoint cannot be resumed deterministically"
	case errors.Is(err, save.ErrInvariantViolation):
		return "checkpoint contains invalid state"
	default:
		return err.Error()
	}
}
