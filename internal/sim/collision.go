package sim

import "github.com/vovakirdan/rotopong/internal/core"

// CollisionResult describes a ball-vs-geometry contact.
type CollisionResult struct {
	Hit bool
	// Point is the contact point.
	Point core.Vec2
	// Normal is the surface normal at contact, pointing toward the ball
	// center (the reflection normal).
	Normal core.Vec2
	// Penetration is the overlap depth, for position correction.
	Penetration float32
}

// miss is the zero CollisionResult.
func miss() CollisionResult { return CollisionResult{} }

// BallArcCollision checks a circle against a thickened arc band.
//
// The test is radial-band + angular-span containment; when the ball is
// outside the angular span, the arc endpoints are tested as line segments
// from inner to outer radius (the "tips"). Malformed geometry is inert.
func BallArcCollision(ballPos core.Vec2, ballRadius float32, arc ArcSegment) CollisionResult {
	if arc.Degenerate() {
		return miss()
	}

	ballR, ballTheta := core.CartesianToPolar(ballPos)
	innerR := arc.InnerRadius()
	outerR := arc.OuterRadius()

	if arc.ContainsAngle(ballTheta) {
		outward := core.PolarToCartesian(1, ballTheta)

		// Outer edge, ball approaching from outside.
		distToOuter := ballR - outerR
		if distToOuter < ballRadius && ballR > arc.Radius {
			return CollisionResult{
				Hit:         true,
				Point:       core.PolarToCartesian(outerR, ballTheta),
				Normal:      outward,
				Penetration: ballRadius - distToOuter,
			}
		}

		// Inner edge, ball approaching from inside.
		distToInner := innerR - ballR
		if distToInner < ballRadius && ballR < arc.Radius {
			return CollisionResult{
				Hit:         true,
				Point:       core.PolarToCartesian(innerR, ballTheta),
				Normal:      outward.Scale(-1),
				Penetration: ballRadius - distToInner,
			}
		}

		// Fully inside the band (tunneling fallback): eject via nearest edge.
		if ballR > innerR && ballR < outerR {
			if ballR-innerR < outerR-ballR {
				return CollisionResult{
					Hit:         true,
					Point:       core.PolarToCartesian(innerR, ballTheta),
					Normal:      outward.Scale(-1),
					Penetration: ballRadius + (ballR - innerR),
				}
			}
			return CollisionResult{
				Hit:         true,
				Point:       core.PolarToCartesian(outerR, ballTheta),
				Normal:      outward,
				Penetration: ballRadius + (outerR - ballR),
			}
		}
		return miss()
	}

	// Outside the angular span: the arc tips.
	if r, ok := endpointCollision(ballPos, ballRadius, arc, arc.ThetaStart); ok {
		return r
	}
	if r, ok := endpointCollision(ballPos, ballRadius, arc, arc.ThetaEnd); ok {
		return r
	}
	return miss()
}

// endpointCollision tests the radial line segment capping the arc at theta.
func endpointCollision(ballPos core.Vec2, ballRadius float32, arc ArcSegment, theta float32) (CollisionResult, bool) {
	innerPoint := core.PolarToCartesian(arc.InnerRadius(), theta)
	outerPoint := core.PolarToCartesian(arc.OuterRadius(), theta)

	lineVec := outerPoint.Sub(innerPoint)
	lineLenSq := lineVec.LengthSq()
	if lineLenSq < 1e-4 {
		return miss(), false
	}

	t := core.Clamp32(ballPos.Sub(innerPoint).Dot(lineVec)/lineLenSq, 0, 1)
	closest := innerPoint.Add(lineVec.Scale(t))
	delta := ballPos.Sub(closest)
	dist := delta.Length()
	if dist >= ballRadius {
		return miss(), false
	}

	normal := delta.NormalizeOrZero()
	if normal.LengthSq() < 0.5 {
		// Ball center sits on the segment: use the segment perpendicular
		// pointing away from the arc body.
		perp := lineVec.Perp().Normalize()
		toBody := arc.Center().Sub(closest)
		if perp.Dot(toBody) > 0 {
			perp = perp.Scale(-1)
		}
		normal = perp
	}
	return CollisionResult{
		Hit:         true,
		Point:       closest,
		Normal:      normal,
		Penetration: ballRadius - dist,
	}, true
}

// ReflectVelocity reflects v off a surface: v' = v - 2(v·n)n.
func ReflectVelocity(v, normal core.Vec2) core.Vec2 {
	return v.Sub(normal.Scale(2 * v.Dot(normal)))
}

// ReflectWithEnglish reflects and adds a clamped tangential component from
// paddle rotation. English never exceeds 30% of the incoming speed.
func ReflectWithEnglish(v, normal core.Vec2, paddleAngularVel, contactRadius, englishFactor float32) core.Vec2 {
	reflected := ReflectVelocity(v, normal)
	tangent := normal.Perp()
	english := paddleAngularVel * contactRadius * englishFactor
	maxEnglish := v.Length() * 0.3
	english = core.Clamp32(english, -maxEnglish, maxEnglish)
	return reflected.Add(tangent.Scale(english))
}

// OuterWallCollision checks the ball against the arena boundary.
func OuterWallCollision(ballPos core.Vec2, ballRadius, arenaRadius float32) CollisionResult {
	r, theta := core.CartesianToPolar(ballPos)
	if r+ballRadius <= arenaRadius {
		return miss()
	}
	return CollisionResult{
		Hit:         true,
		Point:       core.PolarToCartesian(arenaRadius, theta),
		Normal:      core.PolarToCartesian(1, theta).Scale(-1),
		Penetration: r + ballRadius - arenaRadius,
	}
}

// HazardConsumes reports whether the ball has fallen inside the hazard's
// consumption radius.
func HazardConsumes(ballPos core.Vec2, ballRadius, lossRadius float32) bool {
	return ballPos.Length()-ballRadius <= lossRadius
}
