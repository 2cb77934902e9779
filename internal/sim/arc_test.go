package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/rotopong/internal/core"
)

func TestArcSpan(t *testing.T) {
	a := NewArc(100, 20, 0, 1)
	assert.InDelta(t, 1.0, float64(a.Span()), 1e-5)

	// Wraparound: 170° to -170° is a 20° span, not -340°.
	b := NewArc(100, 20, 2.967, -2.967)
	assert.InDelta(t, 0.349, float64(b.Span()), 1e-2)
}

func TestArcContainsAngle(t *testing.T) {
	a := NewArc(100, 20, -0.5, 0.5)
	assert.True(t, a.ContainsAngle(0))
	assert.True(t, a.ContainsAngle(0.5))
	assert.False(t, a.ContainsAngle(1.0))

	wrap := NewArc(100, 20, 3.0, -3.0)
	assert.True(t, wrap.ContainsAngle(3.1))
	assert.True(t, wrap.ContainsAngle(-3.1))
	assert.False(t, wrap.ContainsAngle(0))
}

func TestArcContainsPoint(t *testing.T) {
	a := NewArc(100, 20, -0.5, 0.5)
	assert.True(t, a.ContainsPoint(core.PolarToCartesian(100, 0)))
	assert.True(t, a.ContainsPoint(core.PolarToCartesian(92, 0.3)))
	assert.False(t, a.ContainsPoint(core.PolarToCartesian(80, 0)))
	assert.False(t, a.ContainsPoint(core.PolarToCartesian(100, 1.2)))
}

func TestArcDegenerate(t *testing.T) {
	assert.True(t, ArcSegment{Radius: 100, Thickness: 0, ThetaStart: 0, ThetaEnd: 1}.Degenerate())
	assert.True(t, ArcSegment{Radius: 0, Thickness: 10, ThetaStart: 0, ThetaEnd: 1}.Degenerate())
	assert.False(t, NewArc(100, 10, 0, 1).Degenerate())
}

func TestArcRotate(t *testing.T) {
	a := NewArc(100, 20, -0.5, 0.5)
	a.Rotate(1.0)
	assert.InDelta(t, 0.5, float64(a.ThetaStart), 1e-5)
	assert.InDelta(t, 1.5, float64(a.ThetaEnd), 1e-5)
	assert.InDelta(t, 1.0, float64(a.Span()), 1e-4)
}
