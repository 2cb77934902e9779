package tui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rotopong/internal/config"
	"github.com/vovakirdan/rotopong/internal/core"
	"github.com/vovakirdan/rotopong/internal/save"
	"github.com/vovakirdan/rotopong/internal/sim"
	"github.com/vovakirdan/rotopong/internal/storage"
)

// paddleStep is how far one key press moves the paddle target angle.
const paddleStep = 0.22

// Options configures a game model.
type Options struct {
	Tuning *config.Tuning
	Seed   uint64
	// Resume, when set, continues a loaded run instead of starting fresh.
	Resume *sim.State
	// Saves is the checkpoint store; nil disables checkpointing (SSH play).
	Saves *save.FileStore
	// Scores is the leaderboard; nil disables run recording.
	Scores *storage.Store
	Logger *log.Logger
}

// Model is the Bubble Tea model for a single run.
type Model struct {
	opts   Options
	keymap KeyMap
	runner *sim.Runner

	width, height int
	target        float32
	lastFrame     time.Time
	startedAt     time.Time
	bestScore     uint64
	scoreSaved    bool
	saveBroken    bool
	quitting      bool
}

// NewModel creates a model for a fresh or resumed run.
func NewModel(opts Options) Model {
	if opts.Seed == 0 {
		opts.Seed = uint64(time.Now().UnixNano())
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	st := opts.Resume
	if st == nil {
		st = sim.NewState(opts.Seed, opts.Tuning.Paddle.ArcWidth, opts.Tuning.Ball.Radius, opts.Tuning.Gameplay.Lives)
	}

	m := Model{
		opts:      opts,
		keymap:    DefaultKeyMap(),
		runner:    sim.NewRunner(opts.Tuning, st),
		target:    st.Paddle.Theta,
		startedAt: time.Now(),
	}
	if opts.Scores != nil {
		if best, err := opts.Scores.BestScore(); err == nil {
			m.bestScore = best
		}
	}
	return m
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return frameCmd()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case FrameMsg:
		return m.handleFrame(time.Time(msg))
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.runner.State()

	switch m.keymap.MapKey(msg) {
	case ActionQuit:
		m.checkpoint("quit")
		m.quitting = true
		return m, tea.Quit
	case ActionRotateCCW:
		m.target = core.NormalizeAngle(m.target + paddleStep)
		m.runner.Push(sim.Command{Kind: sim.CmdSetPaddleTarget, Target: m.target})
	case ActionRotateCW:
		m.target = core.NormalizeAngle(m.target - paddleStep)
		m.runner.Push(sim.Command{Kind: sim.CmdSetPaddleTarget, Target: m.target})
	case ActionLaunch:
		m.runner.Push(sim.Command{Kind: sim.CmdLaunch})
	case ActionPause:
		if st.Phase == sim.PhasePaused {
			m.runner.Push(sim.Command{Kind: sim.CmdResume})
		} else {
			m.runner.Push(sim.Command{Kind: sim.CmdPause})
			m.checkpoint("pause")
		}
	case ActionRestart:
		if st.Phase == sim.PhaseGameOver {
			return m.restart()
		}
	}
	return m, nil
}

func (m Model) restart() (tea.Model, tea.Cmd) {
	opts := m.opts
	opts.Seed = uint64(time.Now().UnixNano())
	opts.Resume = nil
	if opts.Saves != nil {
		opts.Saves.Clear()
	}
	next := NewModel(opts)
	next.width = m.width
	next.height = m.height
	return next, next.Init()
}

func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	elapsed := float64(0)
	if !m.lastFrame.IsZero() {
		elapsed = now.Sub(m.lastFrame).Seconds()
	}
	m.lastFrame = now

	events := m.runner.Advance(elapsed)
	for _, ev := range events {
		switch ev.Kind {
		case sim.EventWaveCleared:
			m.checkpoint("wave boundary")
		case sim.EventGameOver:
			m.recordRun()
		}
	}
	return m, frameCmd()
}

// checkpoint saves the run outside the tick path. IO failures are logged and
// retried at the next checkpoint; an invariant failure means the state itself
// is corrupt and disables checkpointing for the rest of the run. Neither
// interrupts play.
func (m *Model) checkpoint(reason string) {
	st := m.runner.State()
	if m.opts.Saves == nil || m.saveBroken || st.Phase == sim.PhaseGameOver {
		return
	}
	if err := m.opts.Saves.Save(st, m.opts.Tuning); err != nil {
		if errors.Is(err, save.ErrInvariantViolation) {
			// The live state failed the save-time invariant check; it will
			// never pass again, so stop checkpointing instead of retrying.
			m.saveBroken = true
			m.opts.Logger.Error("state failed invariant check, checkpointing disabled", "reason", reason, "err", err)
			return
		}
		m.opts.Logger.Warn("checkpoint failed", "reason", reason, "err", err)
	}
}

// recordRun writes the finished run to the leaderboard exactly once and
// clears the checkpoint slots.
func (m *Model) recordRun() {
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true

	st := m.runner.State()
	if m.opts.Scores != nil {
		duration := int(time.Since(m.startedAt).Seconds())
		if _, err := m.opts.Scores.SaveRun(st.Seed, st.Score, st.WaveIndex, duration); err != nil {
			m.opts.Logger.Warn("could not record run", "err", err)
		}
		if st.Score > m.bestScore {
			m.bestScore = st.Score
		}
	}
	if m.opts.Saves != nil {
		m.opts.Saves.Clear()
	}
}

// View renders the current frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}
	snap := sim.TakeSnapshot(m.runner.State(), m.opts.Tuning)
	return renderFrame(snap, m.opts.Tuning, m.width, m.height, m.bestScore)
}
