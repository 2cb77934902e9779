// Package sim implements the deterministic fixed-timestep simulation:
// entities and phase machine, the collision engine for curved geometry,
// and the wave generator with its fairness validation.
package sim

import "github.com/vovakirdan/rotopong/internal/core"

// ArcSegment is a thickened arc in polar space. Blocks and the paddle are
// arcs; balls are circles.
//
// The band spans radius ± thickness/2 radially and thetaStart..thetaEnd
// angularly (angles normalized to [-π, π), wraparound handled).
type ArcSegment struct {
	Radius     float32 `json:"radius"`
	Thickness  float32 `json:"thickness"`
	ThetaStart float32 `json:"theta_start"`
	ThetaEnd   float32 `json:"theta_end"`
}

// NewArc builds an arc segment with normalized angles.
func NewArc(radius, thickness, thetaStart, thetaEnd float32) ArcSegment {
	return ArcSegment{
		Radius:     radius,
		Thickness:  thickness,
		ThetaStart: core.NormalizeAngle(thetaStart),
		ThetaEnd:   core.NormalizeAngle(thetaEnd),
	}
}

// InnerRadius returns the inner edge of the band.
func (a ArcSegment) InnerRadius() float32 {
	return a.Radius - a.Thickness/2
}

// OuterRadius returns the outer edge of the band.
func (a ArcSegment) OuterRadius() float32 {
	return a.Radius + a.Thickness/2
}

// Span returns the angular span, handling wraparound.
func (a ArcSegment) Span() float32 {
	span := a.ThetaEnd - a.ThetaStart
	if span < 0 {
		span += core.Tau
	}
	return span
}

// ContainsAngle reports whether theta falls within the arc's angular extent.
func (a ArcSegment) ContainsAngle(theta float32) bool {
	theta = core.NormalizeAngle(theta)
	if a.ThetaStart <= a.ThetaEnd {
		return theta >= a.ThetaStart && theta <= a.ThetaEnd
	}
	// Wraparound case (e.g. start=170°, end=-170°)
	return theta >= a.ThetaStart || theta <= a.ThetaEnd
}

// ContainsPoint reports whether a cartesian point lies inside the band.
func (a ArcSegment) ContainsPoint(p core.Vec2) bool {
	r, theta := core.CartesianToPolar(p)
	return r >= a.InnerRadius() && r <= a.OuterRadius() && a.ContainsAngle(theta)
}

// MidAngle returns the angle of the arc's center.
func (a ArcSegment) MidAngle() float32 {
	return core.NormalizeAngle(a.ThetaStart + a.Span()/2)
}

// Center returns the cartesian center of the arc (centerline radius, mid-angle).
func (a ArcSegment) Center() core.Vec2 {
	return core.PolarToCartesian(a.Radius, a.MidAngle())
}

// Degenerate reports whether the arc has no collidable extent. Malformed
// geometry is treated as inert by the collision engine rather than a fault.
func (a ArcSegment) Degenerate() bool {
	return a.Thickness <= 0 || a.Radius <= 0 || a.Span() <= 0
}

// Rotate shifts the arc by delta radians.
func (a *ArcSegment) Rotate(delta float32) {
	a.ThetaStart = core.NormalizeAngle(a.ThetaStart + delta)
	a.ThetaEnd = core.NormalizeAngle(a.ThetaEnd + delta)
}
