package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAngle(t *testing.T) {
	assert.InDelta(t, 0, float64(NormalizeAngle(Tau)), 1e-5)
	assert.InDelta(t, float64(-Pi), float64(NormalizeAngle(Pi)), 1e-5)
	assert.InDelta(t, float64(-Pi+0.25), float64(NormalizeAngle(Pi+0.25)), 1e-5)
	assert.InDelta(t, 0.5, float64(NormalizeAngle(0.5-2*Tau)), 1e-4)
}

func TestAngleDiffWraparound(t *testing.T) {
	// Shortest path from 170 degrees to -170 degrees goes forward 20 degrees.
	a := float32(170.0 / 180.0 * math.Pi)
	b := float32(-170.0 / 180.0 * math.Pi)
	d := AngleDiff(a, b)
	assert.InDelta(t, 20.0/180.0*math.Pi, float64(d), 1e-4)
}

func TestPolarRoundTrip(t *testing.T) {
	p := PolarToCartesian(100, 0.7)
	r, theta := CartesianToPolar(p)
	assert.InDelta(t, 100, float64(r), 1e-3)
	assert.InDelta(t, 0.7, float64(theta), 1e-4)
}

func TestVecNormalizeOrZero(t *testing.T) {
	assert.Equal(t, Vec2{}, Vec2{}.NormalizeOrZero())
	u := V(3, 4).NormalizeOrZero()
	assert.InDelta(t, 1, float64(u.Length()), 1e-5)
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(1.5))
	assert.False(t, IsFinite(float32(math.NaN())))
	assert.False(t, IsFinite(float32(math.Inf(1))))
}

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(12345, 0)
	b := NewRNG(12345, 0)
	for i := 0; i < 1000; i++ {
		require.Equal(t, a.Uint32(), b.Uint32(), "draw %d diverged", i)
	}
}

func TestRNGStateRoundTrip(t *testing.T) {
	a := NewRNG(99, 7)
	for i := 0; i < 37; i++ {
		a.Uint32()
	}
	st := a.State()

	b := NewRNG(0, 0)
	b.Restore(st)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Uint32(), b.Uint32())
	}
}

func TestRNGStateValid(t *testing.T) {
	assert.False(t, RNGState{}.Valid())
	assert.True(t, NewRNG(1, 0).State().Valid())
}

func TestRNGDistributionBounds(t *testing.T) {
	r := NewRNG(42, 1)
	for i := 0; i < 10000; i++ {
		f := r.Float32()
		require.GreaterOrEqual(t, f, float32(0))
		require.Less(t, f, float32(1))
		n := r.IntN(7)
		require.GreaterOrEqual(t, n, 0)
		require.Less(t, n, 7)
	}
}
