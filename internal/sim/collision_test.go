package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/rotopong/internal/core"
)

func TestReflectVelocity(t *testing.T) {
	v := core.Vec2{X: 1, Y: -1}
	n := core.Vec2{X: 0, Y: 1}
	out := ReflectVelocity(v, n)
	assert.InDelta(t, 1.0, float64(out.X), 1e-5)
	assert.InDelta(t, 1.0, float64(out.Y), 1e-5)
}

func TestReflectWithEnglishClamped(t *testing.T) {
	v := core.Vec2{X: 0, Y: -100}
	n := core.Vec2{X: 0, Y: 1}
	// Absurd paddle spin: english must still be capped at 30% of speed.
	out := ReflectWithEnglish(v, n, 1000, 50, 1.0)
	reflected := ReflectVelocity(v, n)
	tangential := out.Sub(reflected).Length()
	assert.LessOrEqual(t, float64(tangential), float64(v.Length()*0.3)+1e-3)
}

func TestOuterWallCollision(t *testing.T) {
	res := OuterWallCollision(core.Vec2{X: 395, Y: 0}, 8, 400)
	assert.True(t, res.Hit)
	assert.InDelta(t, -1.0, float64(res.Normal.X), 1e-5)
	assert.InDelta(t, 3.0, float64(res.Penetration), 1e-3)

	assert.False(t, OuterWallCollision(core.Vec2{X: 100, Y: 0}, 8, 400).Hit)
}

func TestBallArcCollisionOuterEdge(t *testing.T) {
	arc := NewArc(200, 24, -0.5, 0.5)
	// Ball just outside the outer edge, within the angular span.
	res := BallArcCollision(core.PolarToCartesian(218, 0), 8, arc)
	assert.True(t, res.Hit)
	assert.Greater(t, float64(res.Normal.X), 0.9) // outward at theta=0
}

func TestBallArcCollisionInnerEdge(t *testing.T) {
	arc := NewArc(200, 24, -0.5, 0.5)
	res := BallArcCollision(core.PolarToCartesian(182, 0), 8, arc)
	assert.True(t, res.Hit)
	assert.Less(t, float64(res.Normal.X), -0.9) // inward at theta=0
}

func TestBallArcCollisionMissOutsideSpan(t *testing.T) {
	arc := NewArc(200, 24, -0.5, 0.5)
	res := BallArcCollision(core.PolarToCartesian(200, 2.0), 8, arc)
	assert.False(t, res.Hit)
}

func TestBallArcCollisionEndpointTip(t *testing.T) {
	arc := NewArc(200, 24, -0.5, 0.5)
	// Just past the end angle, touching the cap segment.
	pos := core.PolarToCartesian(200, 0.5+0.03)
	res := BallArcCollision(pos, 8, arc)
	assert.True(t, res.Hit)
	assert.InDelta(t, 1.0, float64(res.Normal.Length()), 1e-4)
}

func TestBallArcCollisionDegenerateInert(t *testing.T) {
	flat := ArcSegment{Radius: 200, Thickness: 0, ThetaStart: -0.5, ThetaEnd: 0.5}
	res := BallArcCollision(core.PolarToCartesian(200, 0), 8, flat)
	assert.False(t, res.Hit)
}

func TestHazardConsumes(t *testing.T) {
	assert.True(t, HazardConsumes(core.Vec2{X: 30, Y: 0}, 8, 35))
	assert.False(t, HazardConsumes(core.Vec2{X: 60, Y: 0}, 8, 35))
}
