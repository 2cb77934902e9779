package sim

import (
	"github.com/vovakirdan/rotopong/internal/config"
	"github.com/vovakirdan/rotopong/internal/core"
)

// Runner advances a State at a fixed timestep. It owns the command queue and
// the wall-clock accumulator; everything it does to the state is a pure
// function of (state, tuning, queued commands), so two runners fed the same
// seed and command stream produce identical states tick for tick.
type Runner struct {
	tuning *config.Tuning
	state  *State
	queue  CommandQueue

	paddleTarget float32
	accumulator  float64
	events       []Event
}

// NewRunner wraps a state for stepping. A fresh state (tick zero, no blocks)
// gets its first wave generated here so wave content always flows through the
// generator path, never through hand-placed layouts.
func NewRunner(tun *config.Tuning, st *State) *Runner {
	r := &Runner{
		tuning:       tun,
		state:        st,
		paddleTarget: st.Paddle.Theta,
	}
	if st.TickCount == 0 && len(st.Blocks) == 0 && st.Phase == PhaseServe {
		rng := &core.RNG{}
		rng.Restore(st.RNG)
		r.spawnWave(rng)
		st.RNG = rng.State()
	}
	return r
}

// State returns the underlying state. Callers outside the sim package treat
// it as read-only between steps.
func (r *Runner) State() *State { return r.state }

// Push queues a command for the next step.
func (r *Runner) Push(cmd Command) { r.queue.Push(cmd) }

// Advance accumulates wall-clock time and runs the fixed steps it covers,
// capped at MaxSubsteps per call. Excess time beyond the cap is dropped so a
// stall never triggers a catch-up spiral. Returns all events emitted.
func (r *Runner) Advance(elapsed float64) []Event {
	r.accumulator += elapsed
	dt := float64(r.tuning.DT())

	var events []Event
	steps := 0
	for r.accumulator >= dt && steps < r.tuning.Sim.MaxSubsteps {
		r.accumulator -= dt
		events = append(events, r.Step()...)
		steps++
	}
	if r.accumulator >= dt {
		r.accumulator = 0
	}
	return events
}

// Step advances exactly one fixed tick. Commands queued since the previous
// step are applied atomically at the start; the returned event slice is valid
// until the next call.
func (r *Runner) Step() []Event {
	r.events = r.events[:0]
	st := r.state
	tun := r.tuning

	rng := &core.RNG{}
	rng.Restore(st.RNG)

	for _, cmd := range r.queue.Drain() {
		r.applyCommand(cmd)
	}

	if st.Phase == PhasePaused || st.Phase == PhaseGameOver {
		// Paused consumes no ticks; the clock stands still.
		st.RNG = rng.State()
		return r.events
	}

	dt := tun.DT()

	r.advanceTimers()
	r.advancePickups(dt)

	for i := range st.Blocks {
		st.Blocks[i].Advance(dt)
	}

	st.Paddle.MoveToward(r.paddleTarget, dt, tun.Paddle.MaxAngularVel)
	r.trackAttachedBalls()

	switch st.Phase {
	case PhasePlaying:
		r.stepPhysics(dt, rng)
	case PhaseBreather:
		st.BreatherTicks--
		if st.BreatherTicks <= 0 {
			r.spawnWave(rng)
			st.SpawnAttachedBall(tun.Ball.Radius)
			st.Phase = PhaseServe
		}
	}

	st.TickCount++
	st.NormalizeOrder()
	st.RNG = rng.State()
	return r.events
}

func (r *Runner) applyCommand(cmd Command) {
	st := r.state
	switch cmd.Kind {
	case CmdSetPaddleTarget:
		r.paddleTarget = core.NormalizeAngle(cmd.Target)
	case CmdLaunch:
		if st.Phase == PhaseServe {
			r.launch()
		}
	case CmdPause:
		if st.Phase != PhasePaused && st.Phase != PhaseGameOver {
			st.ResumePhase = st.Phase
			st.Phase = PhasePaused
		}
	case CmdResume:
		if st.Phase == PhasePaused {
			st.Phase = st.ResumePhase
		}
	}
}

// launch frees every attached ball with an outward velocity plus a small
// clamped tangential component from current paddle angular velocity.
func (r *Runner) launch() {
	st := r.state
	tun := r.tuning
	launched := false
	for i := range st.Balls {
		b := &st.Balls[i]
		if b.Attachment != BallAttached {
			continue
		}
		theta := core.NormalizeAngle(st.Paddle.Theta + b.AttachOffset)
		outward := core.PolarToCartesian(1, theta)
		tangent := outward.Perp()
		english := st.Paddle.AngularVel * tun.Paddle.Radius * tun.Paddle.EnglishFactor
		english = core.Clamp32(english, -tun.Ball.StartSpeed*0.3, tun.Ball.StartSpeed*0.3)

		b.Attachment = BallFree
		b.Vel = outward.Scale(tun.Ball.StartSpeed).Add(tangent.Scale(english))
		launched = true
	}
	if launched {
		st.Phase = PhasePlaying
	}
}

func (r *Runner) advanceTimers() {
	e := &r.state.Effects
	if e.SlowTicks > 0 {
		e.SlowTicks--
	}
	if e.PiercingTicks > 0 {
		e.PiercingTicks--
	}
	if e.WidenTicks > 0 {
		e.WidenTicks--
	}
	piercing := e.PiercingTicks > 0
	for i := range r.state.Balls {
		b := &r.state.Balls[i]
		b.Piercing = piercing
		if b.PaddleCooldown > 0 {
			b.PaddleCooldown--
		}
		if b.PortalCooldown > 0 {
			b.PortalCooldown--
		}
	}
}

// advancePickups drifts capsules toward the paddle and expires them. A
// capsule that strays inside the hazard is consumed.
func (r *Runner) advancePickups(dt float32) {
	st := r.state
	tun := r.tuning

	paddleArc := r.paddleArc()
	paddlePos := core.PolarToCartesian(tun.Paddle.Radius, st.Paddle.Theta)

	kept := st.Pickups[:0]
	for i := range st.Pickups {
		p := st.Pickups[i]
		p.TTLTicks--
		if p.TTLTicks <= 0 {
			continue
		}

		toPaddle := paddlePos.Sub(p.Pos).NormalizeOrZero()
		p.Vel = p.Vel.Add(toPaddle.Scale(tun.Pickups.DriftAccel * dt))
		if speed := p.Vel.Length(); speed > tun.Pickups.MaxDriftSpeed {
			p.Vel = p.Vel.Scale(tun.Pickups.MaxDriftSpeed / speed)
		}
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))

		if p.Pos.Length() <= tun.Arena.HazardRadius {
			continue
		}
		if paddleArc.ContainsPoint(p.Pos) {
			r.collectPickup(p)
			continue
		}
		kept = append(kept, p)
	}
	st.Pickups = kept
}

func (r *Runner) collectPickup(p Pickup) {
	st := r.state
	tun := r.tuning
	switch p.Kind {
	case PickupSlow:
		st.Effects.SlowTicks = tun.Pickups.SlowTicks
	case PickupPiercing:
		st.Effects.PiercingTicks = tun.Pickups.PiercingTicks
	case PickupWiden:
		st.Effects.WidenTicks = tun.Pickups.WidenTicks
	case PickupShield:
		st.Effects.ShieldActive = true
	case PickupMultiBall:
		r.splitBall()
	}
	r.emit(Event{Kind: EventPickupCollected, EntityID: p.ID})
}

// splitBall spawns rotated copies of the first free ball, capped at MaxBalls.
func (r *Runner) splitBall() {
	st := r.state
	tun := r.tuning
	src := -1
	for i := range st.Balls {
		if st.Balls[i].Attachment == BallFree {
			src = i
			break
		}
	}
	if src == -1 {
		return
	}
	for n := 0; n < tun.Pickups.MultiBallCount; n++ {
		if len(st.Balls) >= tun.Limits.MaxBalls {
			return
		}
		angle := float32(0.45) * float32(n+1)
		if n%2 == 1 {
			angle = -angle
		}
		orig := st.Balls[src]
		cosA, sinA := core.Cos(angle), core.Sin(angle)
		st.Balls = append(st.Balls, Ball{
			ID:         st.NextEntityID(),
			Pos:        orig.Pos,
			Vel:        core.Vec2{X: orig.Vel.X*cosA - orig.Vel.Y*sinA, Y: orig.Vel.X*sinA + orig.Vel.Y*cosA},
			Radius:     orig.Radius,
			Attachment: BallFree,
			Piercing:   orig.Piercing,
		})
	}
}

// paddleArc returns the paddle's effective collision arc, widened while the
// Widen effect is active.
func (r *Runner) paddleArc() ArcSegment {
	tun := r.tuning
	p := r.state.Paddle
	width := p.ArcWidth
	if r.state.Effects.WidenTicks > 0 {
		width *= tun.Pickups.WidenFactor
	}
	widened := Paddle{Theta: p.Theta, ArcWidth: width}
	return widened.AsArc(tun.Paddle.Radius, tun.Paddle.Thickness)
}

// trackAttachedBalls pins attached balls on the paddle's outer edge, clear
// of the hazard.
func (r *Runner) trackAttachedBalls() {
	st := r.state
	tun := r.tuning
	ride := tun.Paddle.Radius + tun.Paddle.Thickness/2 + tun.Ball.Radius
	for i := range st.Balls {
		b := &st.Balls[i]
		if b.Attachment != BallAttached {
			continue
		}
		b.Pos = core.PolarToCartesian(ride, core.NormalizeAngle(st.Paddle.Theta+b.AttachOffset))
		b.Vel = core.Vec2{}
	}
}

// stepPhysics integrates every free and sliding ball, resolves collisions and
// runs the loss / wave-clear transitions.
func (r *Runner) stepPhysics(dt float32, rng *core.RNG) {
	st := r.state
	tun := r.tuning

	lost := make(map[uint32]bool)
	for i := range st.Balls {
		b := &st.Balls[i]
		switch b.Attachment {
		case BallFree:
			if !r.stepFreeBall(b, dt, rng) {
				lost[b.ID] = true
			}
		case BallSliding:
			r.stepSlidingBall(b, dt)
		}
	}

	if len(lost) > 0 {
		kept := st.Balls[:0]
		for i := range st.Balls {
			if !lost[st.Balls[i].ID] {
				kept = append(kept, st.Balls[i])
			}
		}
		st.Balls = kept
		st.Combo = 0
	}

	if len(st.Balls) == 0 {
		st.Lives--
		if st.Lives <= 0 {
			st.Lives = 0
			st.Phase = PhaseGameOver
			r.emit(Event{Kind: EventGameOver, Wave: st.WaveIndex})
			return
		}
		st.SpawnAttachedBall(tun.Ball.Radius)
		st.Phase = PhaseServe
		return
	}

	if st.ClearableBlocks() == 0 {
		// Invincible leftovers go with the wave; balls despawn for the
		// breather so the hazard has nothing to eat.
		st.Blocks = st.Blocks[:0]
		st.Balls = st.Balls[:0]
		r.emit(Event{Kind: EventWaveCleared, Wave: st.WaveIndex})
		st.WaveIndex++
		st.BreatherTicks = tun.BreatherTicks()
		st.Phase = PhaseBreather
	}
}

// stepFreeBall integrates one ball for a full tick in collision substeps.
// Returns false if the hazard consumed the ball.
func (r *Runner) stepFreeBall(b *Ball, dt float32, rng *core.RNG) bool {
	st := r.state
	tun := r.tuning

	// Hazard gravity, inverse-square falloff from the hazard edge.
	rSq := b.Pos.LengthSq()
	hazSq := tun.Arena.HazardRadius * tun.Arena.HazardRadius
	if rSq > 1 {
		pull := tun.Arena.HazardGravity * hazSq / max32(rSq, hazSq)
		b.Vel = b.Vel.Add(b.Pos.NormalizeOrZero().Scale(-pull * dt))
	}

	r.applyMagnets(b, dt)
	r.clampSpeed(b)

	speed := b.Vel.Length()
	steps := int(speed*dt/max32(b.Radius, 1)) + 1
	if steps > tun.Sim.MaxCollSteps {
		steps = tun.Sim.MaxCollSteps
	}
	subDt := dt / float32(steps)

	hitThisTick := make(map[uint32]bool)
	for s := 0; s < steps; s++ {
		b.Pos = b.Pos.Add(b.Vel.Scale(subDt))

		if HazardConsumes(b.Pos, b.Radius, tun.Arena.HazardLossRadius) {
			if st.Effects.ShieldActive {
				st.Effects.ShieldActive = false
				r.rescueFromHazard(b)
				r.emit(Event{Kind: EventShieldConsumed, EntityID: b.ID})
				continue
			}
			r.emit(Event{Kind: EventBallLost, EntityID: b.ID})
			return false
		}

		if res := OuterWallCollision(b.Pos, b.Radius, tun.Arena.OuterRadius); res.Hit {
			if b.Vel.Dot(res.Normal) < 0 {
				b.Vel = ReflectVelocity(b.Vel, res.Normal)
			}
			b.Pos = b.Pos.Add(res.Normal.Scale(res.Penetration))
			r.emit(Event{Kind: EventWallBounce, EntityID: b.ID})
		}

		r.collidePaddle(b)

		if b.Attachment != BallFree {
			// A portal grabbed the ball mid-tick.
			return true
		}
		r.collideBlocks(b, hitThisTick, rng)
		if b.Attachment != BallFree {
			return true
		}
	}
	return true
}

// rescueFromHazard ejects a shielded ball back above the hazard, radially
// outward at its current speed.
func (r *Runner) rescueFromHazard(b *Ball) {
	tun := r.tuning
	_, theta := core.CartesianToPolar(b.Pos)
	safeR := tun.Arena.HazardRadius + b.Radius*2
	b.Pos = core.PolarToCartesian(safeR, theta)
	speed := max32(b.Vel.Length(), tun.Ball.MinSpeed)
	b.Vel = core.PolarToCartesian(1, theta).Scale(speed)
}

func (r *Runner) collidePaddle(b *Ball) {
	if b.PaddleCooldown > 0 {
		return
	}
	tun := r.tuning
	arc := r.paddleArc()
	res := BallArcCollision(b.Pos, b.Radius, arc)
	if !res.Hit || b.Vel.Dot(res.Normal) >= 0 {
		return
	}
	contactR := res.Point.Length()
	b.Vel = ReflectWithEnglish(b.Vel, res.Normal, r.state.Paddle.AngularVel, contactR, tun.Paddle.EnglishFactor)
	b.Vel = b.Vel.Scale(tun.Paddle.Boost)
	b.Pos = b.Pos.Add(res.Normal.Scale(res.Penetration))
	r.clampSpeed(b)
	b.PaddleCooldown = tun.Paddle.CooldownTicks
	r.emit(Event{Kind: EventPaddleBounce, EntityID: b.ID})
}

func (r *Runner) collideBlocks(b *Ball, hitThisTick map[uint32]bool, rng *core.RNG) {
	st := r.state
	tun := r.tuning

	for i := 0; i < len(st.Blocks); i++ {
		blk := &st.Blocks[i]
		if blk.GhostHidden(st.TickCount, tun.Blocks.GhostCycleTicks) {
			continue
		}
		res := BallArcCollision(b.Pos, b.Radius, blk.Arc)
		if !res.Hit {
			continue
		}

		if b.Piercing {
			if !hitThisTick[blk.ID] {
				hitThisTick[blk.ID] = true
				r.damageBlock(blk.ID, 1, 0, rng)
				i = -1 // damage may reorder/remove blocks, restart scan
			}
			continue
		}

		if blk.Kind == KindPortal && b.PortalCooldown == 0 {
			r.enterPortal(b, blk, res, rng)
			return
		}

		if b.Vel.Dot(res.Normal) < 0 {
			b.Vel = ReflectVelocity(b.Vel, res.Normal)
		}
		b.Pos = b.Pos.Add(res.Normal.Scale(res.Penetration))

		switch blk.Kind {
		case KindInvincible:
			r.emit(Event{Kind: EventBlockHit, EntityID: blk.ID})
		case KindElectric:
			// Electric blocks jolt the ball on contact.
			b.Vel = b.Vel.Scale(1.1)
			r.clampSpeed(b)
			r.damageBlock(blk.ID, 1, 0, rng)
		default:
			r.damageBlock(blk.ID, 1, 0, rng)
		}
		return
	}
}

// enterPortal puts the ball into the sliding sub-state bound to the entry
// block, and charges the entry block one point of damage.
func (r *Runner) enterPortal(b *Ball, blk *Block, res CollisionResult, rng *core.RNG) {
	_, theta := core.CartesianToPolar(res.Point)
	dir := float32(1)
	if b.Vel.Dot(res.Normal.Perp()) < 0 {
		dir = -1
	}
	b.Attachment = BallSliding
	b.SlidingBlockID = blk.ID
	b.SlideTheta = theta
	b.SlideDir = dir
	b.SlideSpeed = max32(b.Vel.Length(), r.tuning.Ball.MinSpeed)
	b.SlideTraveled = 0
	b.Vel = core.Vec2{}
	r.damageBlock(blk.ID, 1, 0, rng)
}

// stepSlidingBall advances a portal transit and performs the teleport once
// the ball has traversed the entry block's span.
func (r *Runner) stepSlidingBall(b *Ball, dt float32) {
	st := r.state
	tun := r.tuning

	idx := st.FindBlock(b.SlidingBlockID)
	if idx == -1 {
		// Entry block destroyed mid-transit; release in place.
		r.releaseSlidingBall(b, b.SlideTheta)
		return
	}
	blk := &st.Blocks[idx]

	step := tun.Blocks.PortalSlideSpeed * dt
	b.SlideTheta = core.NormalizeAngle(b.SlideTheta + b.SlideDir*step)
	b.SlideTraveled += step
	b.Pos = core.PolarToCartesian(blk.Arc.Radius, b.SlideTheta)

	if b.SlideTraveled < blk.Arc.Span() {
		return
	}

	pairIdx := st.FindBlock(blk.PairID)
	if pairIdx == -1 || st.Blocks[pairIdx].Kind != KindPortal {
		r.releaseSlidingBall(b, b.SlideTheta)
		return
	}
	pair := &st.Blocks[pairIdx]

	exitTheta := core.NormalizeAngle(pair.Arc.MidAngle() + b.SlideDir*0.2)
	exitR := pair.Arc.InnerRadius() - b.Radius*2
	// Unsafe exits get pushed to the nearest safe radius.
	minSafe := tun.Arena.HazardRadius + b.Radius*3
	maxSafe := tun.Arena.OuterRadius - b.Radius*3
	exitR = core.Clamp32(exitR, minSafe, maxSafe)

	b.Attachment = BallFree
	b.SlidingBlockID = 0
	b.Pos = core.PolarToCartesian(exitR, exitTheta)
	inward := core.PolarToCartesian(1, exitTheta).Scale(-1)
	tangent := inward.Perp().Scale(b.SlideDir)
	dirVec := inward.Scale(0.6).Add(tangent.Scale(0.8)).Normalize()
	speed := max32(b.SlideSpeed*0.5, tun.Ball.MinSpeed)
	b.Vel = dirVec.Scale(speed)
	b.SlideSpeed = 0
	b.SlideTraveled = 0
	b.PortalCooldown = tun.Blocks.PortalCooldown
	r.emit(Event{Kind: EventPortalTransit, EntityID: b.ID})
}

// releaseSlidingBall frees a ball whose transit cannot complete, sending it
// tangentially so it does not re-enter immediately.
func (r *Runner) releaseSlidingBall(b *Ball, theta float32) {
	tun := r.tuning
	tangent := core.PolarToCartesian(1, theta).Perp().Scale(b.SlideDir)
	b.Attachment = BallFree
	b.SlidingBlockID = 0
	b.Vel = tangent.Scale(max32(b.SlideSpeed, tun.Ball.MinSpeed))
	b.SlideSpeed = 0
	b.SlideTraveled = 0
	b.PortalCooldown = tun.Blocks.PortalCooldown
}

// applyMagnets adds a tangential-only force bias near magnet blocks. The
// force never points radially inward, so a magnet cannot feed the hazard.
func (r *Runner) applyMagnets(b *Ball, dt float32) {
	st := r.state
	tun := r.tuning
	_, ballTheta := core.CartesianToPolar(b.Pos)

	for i := range st.Blocks {
		blk := &st.Blocks[i]
		if blk.Kind != KindMagnet {
			continue
		}
		center := blk.Arc.Center()
		if b.Pos.Sub(center).Length() > tun.Blocks.MagnetRange {
			continue
		}
		diff := core.AngleDiff(ballTheta, blk.Arc.MidAngle())
		dir := float32(1)
		if diff < 0 {
			dir = -1
		}
		tangent := core.PolarToCartesian(1, ballTheta).Perp().Scale(dir)
		b.Vel = b.Vel.Add(tangent.Scale(tun.Blocks.MagnetStrength * dt))
	}
}

// clampSpeed keeps ball speed inside [MinSpeed, MaxSpeed], with the Slow
// effect lowering the ceiling.
func (r *Runner) clampSpeed(b *Ball) {
	tun := r.tuning
	maxSpeed := tun.Ball.MaxSpeed
	if r.state.Effects.SlowTicks > 0 {
		maxSpeed *= tun.Pickups.SlowFactor
	}
	speed := b.Vel.Length()
	if speed < 1e-3 {
		return
	}
	clamped := core.Clamp32(speed, tun.Ball.MinSpeed, maxSpeed)
	if clamped != speed {
		b.Vel = b.Vel.Scale(clamped / speed)
	}
}

// damageBlock applies damage to the block with the given id, handling
// destruction, scoring, explosive splash (depth-capped) and pickup drops.
func (r *Runner) damageBlock(id uint32, amount uint32, depth int, rng *core.RNG) {
	st := r.state
	tun := r.tuning

	idx := st.FindBlock(id)
	if idx == -1 {
		return
	}
	blk := &st.Blocks[idx]
	if blk.Kind == KindInvincible {
		return
	}
	blk.TriggerWobble()

	if blk.HP > amount {
		blk.HP -= amount
		r.emit(Event{Kind: EventBlockHit, EntityID: id})
		return
	}

	destroyed := *blk
	st.Blocks = append(st.Blocks[:idx], st.Blocks[idx+1:]...)

	st.Combo++
	mult := min32(1+tun.Gameplay.ComboStep*float32(st.Combo-1), tun.Gameplay.ComboCap)
	st.Score += uint64(float32(blockScore(destroyed.Kind)) * mult)
	r.emit(Event{Kind: EventBlockDestroyed, EntityID: id})

	r.maybeDropPickup(destroyed, rng)

	if destroyed.Kind == KindExplosive && depth < tun.Blocks.ExplosionMaxDepth {
		r.explode(destroyed, depth, rng)
	}
}

// explode applies splash damage to blocks within the blast's angular and
// radial reach. Chains recurse with a depth cap.
func (r *Runner) explode(src Block, depth int, rng *core.RNG) {
	st := r.state
	tun := r.tuning

	var hit []uint32
	for i := range st.Blocks {
		blk := &st.Blocks[i]
		dAngle := core.Abs32(core.AngleDiff(blk.Arc.MidAngle(), src.Arc.MidAngle()))
		dRadial := core.Abs32(blk.Arc.Radius - src.Arc.Radius)
		if dAngle <= tun.Blocks.ExplosionAngle && dRadial <= tun.Blocks.ExplosionRadial {
			hit = append(hit, blk.ID)
		}
	}
	for _, id := range hit {
		r.damageBlock(id, 1, depth+1, rng)
	}
}

// maybeDropPickup rolls a pickup drop for a destroyed block. Capsule and
// crystal blocks always drop; others roll against DropPercent.
func (r *Runner) maybeDropPickup(blk Block, rng *core.RNG) {
	st := r.state
	tun := r.tuning

	guaranteed := blk.Kind == KindCapsule || blk.Kind == KindCrystal
	if !guaranteed && rng.IntN(100) >= tun.Pickups.DropPercent {
		return
	}
	if len(st.Pickups) >= tun.Limits.MaxPickups {
		return
	}
	kind := PickupKind(rng.IntN(int(pickupKindCount)))
	id := st.NextEntityID()
	st.Pickups = append(st.Pickups, Pickup{
		ID:       id,
		Kind:     kind,
		Pos:      blk.Arc.Center(),
		TTLTicks: tun.Pickups.TTLTicks,
	})
	r.emit(Event{Kind: EventPickupSpawned, EntityID: id})
}

// spawnWave generates the next wave's blocks through the generator path.
func (r *Runner) spawnWave(rng *core.RNG) {
	st := r.state
	blocks, meta := GenerateWave(st.WaveIndex, rng, r.tuning, st.WaveTemplate, st.NextEntityID)
	st.Blocks = blocks
	st.WaveTemplate = meta.Template
	st.NormalizeOrder()
	r.emit(Event{Kind: EventWaveSpawned, Wave: st.WaveIndex})
}

func (r *Runner) emit(ev Event) {
	r.events = append(r.events, ev)
}

func blockScore(k BlockKind) int {
	switch k {
	case KindGlass:
		return 10
	case KindJello:
		return 15
	case KindCapsule:
		return 20
	case KindArmored:
		return 25
	case KindExplosive, KindElectric, KindGhost:
		return 30
	case KindMagnet:
		return 35
	case KindPortal:
		return 40
	case KindCrystal:
		return 50
	default:
		return 0
	}
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
