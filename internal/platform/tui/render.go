package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/rotopong/internal/config"
	"github.com/vovakirdan/rotopong/internal/core"
	"github.com/vovakirdan/rotopong/internal/sim"
)

// cellStyle indexes the palette; zero is unstyled.
type cellStyle uint8

const (
	styleNone cellStyle = iota
	styleWall
	styleHazard
	stylePaddle
	styleBall
	styleGlass
	styleArmored
	styleExplosive
	styleInvincible
	stylePortal
	styleJello
	styleCrystal
	styleElectric
	styleMagnet
	styleGhost
	styleCapsule
	stylePickup
)

var palette = map[cellStyle]lipgloss.Style{
	styleNone:       lipgloss.NewStyle(),
	styleWall:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	styleHazard:     lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	stylePaddle:     lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	styleBall:       lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	styleGlass:      lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	styleArmored:    lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	styleExplosive:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	styleInvincible: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	stylePortal:     lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	styleJello:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	styleCrystal:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	styleElectric:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	styleMagnet:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	styleGhost:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	styleCapsule:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	stylePickup:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
}

var blockStyles = map[sim.BlockKind]cellStyle{
	sim.KindGlass:      styleGlass,
	sim.KindArmored:    styleArmored,
	sim.KindExplosive:  styleExplosive,
	sim.KindInvincible: styleInvincible,
	sim.KindPortal:     stylePortal,
	sim.KindJello:      styleJello,
	sim.KindCrystal:    styleCrystal,
	sim.KindElectric:   styleElectric,
	sim.KindMagnet:     styleMagnet,
	sim.KindGhost:      styleGhost,
	sim.KindCapsule:    styleCapsule,
}

var blockRunes = map[sim.BlockKind]rune{
	sim.KindGlass:      '▒',
	sim.KindArmored:    '█',
	sim.KindExplosive:  '✶',
	sim.KindInvincible: '▓',
	sim.KindPortal:     '◎',
	sim.KindJello:      '~',
	sim.KindCrystal:    '◆',
	sim.KindElectric:   'z',
	sim.KindMagnet:     'U',
	sim.KindGhost:      '░',
	sim.KindCapsule:    '?',
}

var pickupRunes = map[sim.PickupKind]rune{
	sim.PickupMultiBall: '+',
	sim.PickupSlow:      'S',
	sim.PickupPiercing:  'P',
	sim.PickupWiden:     'W',
	sim.PickupShield:    '@',
}

// canvas is a rune+style grid with a polar world projection. Terminal cells
// are roughly 2:1 tall, so world x is stretched by 2 when mapped to columns.
type canvas struct {
	w, h   int
	runes  []rune
	styles []cellStyle
	scale  float32
	cx, cy int
}

func newCanvas(w, h int, worldRadius float32) *canvas {
	c := &canvas{
		w:      w,
		h:      h,
		runes:  make([]rune, w*h),
		styles: make([]cellStyle, w*h),
		cx:     w / 2,
		cy:     h / 2,
	}
	for i := range c.runes {
		c.runes[i] = ' '
	}
	scaleY := float32(h-1) / 2 / worldRadius
	scaleX := float32(w-1) / 4 / worldRadius
	c.scale = scaleY
	if scaleX < scaleY {
		c.scale = scaleX
	}
	return c
}

func (c *canvas) plot(p core.Vec2, r rune, s cellStyle) {
	x := c.cx + int(p.X*c.scale*2+signOf(p.X)*0.5)
	y := c.cy - int(p.Y*c.scale+signOf(p.Y)*0.5)
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return
	}
	idx := y*c.w + x
	c.runes[idx] = r
	c.styles[idx] = s
}

// plotArc samples an arc band densely enough that no cell gap opens up.
func (c *canvas) plotArc(arc sim.ArcSegment, r rune, s cellStyle) {
	steps := int(arc.Span()*arc.Radius*c.scale*2) + 2
	for i := 0; i <= steps; i++ {
		theta := arc.ThetaStart + arc.Span()*float32(i)/float32(steps)
		c.plot(core.PolarToCartesian(arc.Radius, theta), r, s)
	}
}

func (c *canvas) plotCircle(radius float32, r rune, s cellStyle) {
	steps := int(core.Tau*radius*c.scale*2) + 8
	for i := 0; i < steps; i++ {
		theta := core.Tau * float32(i) / float32(steps)
		c.plot(core.PolarToCartesian(radius, theta), r, s)
	}
}

// render flattens the grid to a styled string, grouping same-style runs to
// keep the ANSI overhead down.
func (c *canvas) render() string {
	var sb strings.Builder
	sb.Grow(c.w*c.h*2 + c.h)
	for y := 0; y < c.h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		x := 0
		for x < c.w {
			start := c.styles[y*c.w+x]
			var run strings.Builder
			for x < c.w && c.styles[y*c.w+x] == start {
				run.WriteRune(c.runes[y*c.w+x])
				x++
			}
			if start == styleNone {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(palette[start].Render(run.String()))
			}
		}
	}
	return sb.String()
}

var (
	hudStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	overlayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// renderFrame draws the full frame: HUD, arena, and phase overlay.
func renderFrame(snap sim.Snapshot, tun *config.Tuning, width, height int, best uint64) string {
	arenaH := height - 2
	if arenaH < 5 || width < 20 {
		return "terminal too small"
	}

	c := newCanvas(width, arenaH, tun.Arena.OuterRadius+10)

	c.plotCircle(tun.Arena.OuterRadius, '·', styleWall)
	c.plotCircle(tun.Arena.HazardRadius, '░', styleHazard)
	c.plot(core.Vec2{}, '●', styleHazard)

	for _, b := range snap.Blocks {
		r := blockRunes[b.Kind]
		s := blockStyles[b.Kind]
		if b.Hidden {
			r = '⋅'
		}
		c.plotArc(b.Arc, r, s)
	}

	paddle := sim.Paddle{Theta: snap.PaddleTheta, ArcWidth: snap.PaddleWidth}
	c.plotArc(paddle.AsArc(tun.Paddle.Radius, tun.Paddle.Thickness), '▀', stylePaddle)

	for _, p := range snap.Pickups {
		c.plot(p.Pos, pickupRunes[p.Kind], stylePickup)
	}
	for _, b := range snap.Balls {
		r := 'o'
		if b.Piercing {
			r = '*'
		}
		c.plot(b.Pos, r, styleBall)
	}

	hud := hudStyle.Render(fmt.Sprintf(
		" score %d  best %d  wave %d  lives %d  combo x%d",
		snap.Score, best, snap.WaveIndex+1, snap.Lives, snap.Combo,
	))
	if snap.Effects.ShieldActive {
		hud += hudStyle.Render("  [shield]")
	}

	return hud + "\n" + c.render() + "\n" + statusLine(snap, tun)
}

func statusLine(snap sim.Snapshot, tun *config.Tuning) string {
	switch snap.Phase {
	case sim.PhaseServe:
		return hintStyle.Render(" a/d rotate · space launch · p pause · q quit")
	case sim.PhaseBreather:
		secs := float32(snap.BreatherTicks) / float32(tun.Sim.TickRate)
		return overlayStyle.Render(fmt.Sprintf(" wave cleared! next wave in %.1fs", secs))
	case sim.PhasePaused:
		return overlayStyle.Render(" paused — p to resume")
	case sim.PhaseGameOver:
		return overlayStyle.Render(fmt.Sprintf(" game over — score %d · r restart · q quit", snap.Score))
	default:
		return ""
	}
}

func signOf(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}
