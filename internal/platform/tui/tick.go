// Package tui provides the Bubble Tea front-end for the game. It consumes
// read-only simulation snapshots and produces tick-quantized commands; it
// never reaches into simulation state directly.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// frameRate is the render loop rate. The simulation tick rate is independent
// and comes from the tuning table; the model feeds elapsed wall-clock time to
// the fixed-step runner on every frame.
const frameRate = 60

// FrameMsg drives the render loop.
type FrameMsg time.Time

// frameCmd returns a command that emits FrameMsg at the frame rate.
func frameCmd() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
