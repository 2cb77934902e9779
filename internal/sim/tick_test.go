package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/rotopong/internal/config"
	"github.com/vovakirdan/rotopong/internal/core"
)

func newTestRunner(seed uint64) (*Runner, *config.Tuning) {
	tun := config.DefaultTuning()
	st := NewState(seed, tun.Paddle.ArcWidth, tun.Ball.Radius, tun.Gameplay.Lives)
	return NewRunner(&tun, st), &tun
}

// scriptedDigests plays a fixed command script for n ticks and records the
// state digest every 30 ticks.
func scriptedDigests(seed uint64, n int) []string {
	r, _ := newTestRunner(seed)
	var digests []string
	for tick := 0; tick < n; tick++ {
		switch tick {
		case 5:
			r.Push(Command{Kind: CmdLaunch})
		case 40:
			r.Push(Command{Kind: CmdSetPaddleTarget, Target: 1.2})
		case 200:
			r.Push(Command{Kind: CmdSetPaddleTarget, Target: -2.5})
		case 500:
			r.Push(Command{Kind: CmdSetPaddleTarget, Target: 0.4})
		}
		r.Step()
		if tick%30 == 0 {
			digests = append(digests, StateDigest(r.State()))
		}
	}
	return digests
}

func TestDeterminismTwoRuns(t *testing.T) {
	for _, seed := range []uint64{1, 42, 987654321} {
		a := scriptedDigests(seed, 1200)
		b := scriptedDigests(seed, 1200)
		require.Equal(t, a, b, "seed %d diverged", seed)
	}
}

func TestDeterminismSeedsDiffer(t *testing.T) {
	a := scriptedDigests(7, 600)
	b := scriptedDigests(8, 600)
	assert.NotEqual(t, a, b)
}

func TestFreshRunStartsInServe(t *testing.T) {
	r, _ := newTestRunner(42)
	st := r.State()
	assert.Equal(t, PhaseServe, st.Phase)
	assert.NotEmpty(t, st.Blocks, "first wave generated on construction")
	require.Len(t, st.Balls, 1)
	assert.Equal(t, BallAttached, st.Balls[0].Attachment)
}

func TestLaunchFreesBall(t *testing.T) {
	r, _ := newTestRunner(42)
	r.Push(Command{Kind: CmdLaunch})
	r.Step()
	st := r.State()
	assert.Equal(t, PhasePlaying, st.Phase)
	require.Len(t, st.Balls, 1)
	assert.Equal(t, BallFree, st.Balls[0].Attachment)
	assert.Greater(t, float64(st.Balls[0].Vel.Length()), 0.0)
}

func TestPauseConsumesNoTicks(t *testing.T) {
	r, _ := newTestRunner(42)
	r.Push(Command{Kind: CmdLaunch})
	r.Step()
	before := r.State().TickCount

	r.Push(Command{Kind: CmdPause})
	for i := 0; i < 50; i++ {
		r.Step()
	}
	assert.Equal(t, PhasePaused, r.State().Phase)
	assert.Equal(t, before, r.State().TickCount)

	r.Push(Command{Kind: CmdResume})
	r.Step()
	assert.Equal(t, PhasePlaying, r.State().Phase)
	assert.Equal(t, before+1, r.State().TickCount)
}

func TestWaveClearBreatherCycle(t *testing.T) {
	r, tun := newTestRunner(42)
	r.Push(Command{Kind: CmdLaunch})
	r.Step()

	// Force the clear instead of simulating a full wave of bounces.
	r.State().Blocks = r.State().Blocks[:0]
	r.Step()

	st := r.State()
	require.Equal(t, PhaseBreather, st.Phase)
	assert.Equal(t, uint32(1), st.WaveIndex)
	assert.Empty(t, st.Balls, "balls despawn for the breather")

	for i := 0; i < tun.BreatherTicks()-1; i++ {
		r.Step()
		assert.Empty(t, r.State().Balls)
	}
	r.Step()

	assert.Equal(t, PhaseServe, st.Phase)
	assert.NotEmpty(t, st.Blocks, "wave 1 generated at the breather boundary")
	require.Len(t, st.Balls, 1)
	assert.Equal(t, BallAttached, st.Balls[0].Attachment)
}

func TestShieldNegatesOneHazardLoss(t *testing.T) {
	r, tun := newTestRunner(42)
	r.Push(Command{Kind: CmdLaunch})
	r.Step()

	st := r.State()
	st.Effects.ShieldActive = true
	livesBefore := st.Lives
	st.Balls[0].Pos = core.Vec2{X: tun.Arena.HazardLossRadius - 5, Y: 0}
	st.Balls[0].Vel = core.Vec2{X: -tun.Ball.StartSpeed, Y: 0}
	r.Step()

	assert.False(t, st.Effects.ShieldActive, "shield consumed exactly once")
	assert.Equal(t, livesBefore, st.Lives)
	require.Len(t, st.Balls, 1)
	assert.Greater(t, float64(st.Balls[0].Pos.Length()), float64(tun.Arena.HazardRadius))
}

func TestHazardLossDecrementsLives(t *testing.T) {
	r, tun := newTestRunner(42)
	r.Push(Command{Kind: CmdLaunch})
	r.Step()

	st := r.State()
	livesBefore := st.Lives
	st.Balls[0].Pos = core.Vec2{X: tun.Arena.HazardLossRadius - 5, Y: 0}
	st.Balls[0].Vel = core.Vec2{X: -tun.Ball.StartSpeed, Y: 0}
	r.Step()

	assert.Equal(t, livesBefore-1, st.Lives)
	assert.Equal(t, PhaseServe, st.Phase, "respawn with a fresh attached ball")
	require.Len(t, st.Balls, 1)
	assert.Equal(t, BallAttached, st.Balls[0].Attachment)
}

func TestLastLifeGameOver(t *testing.T) {
	r, tun := newTestRunner(42)
	r.Push(Command{Kind: CmdLaunch})
	r.Step()

	st := r.State()
	st.Lives = 1
	st.Balls[0].Pos = core.Vec2{X: tun.Arena.HazardLossRadius - 5, Y: 0}
	st.Balls[0].Vel = core.Vec2{X: -tun.Ball.StartSpeed, Y: 0}
	events := r.Step()

	assert.Equal(t, PhaseGameOver, st.Phase)
	assert.Equal(t, 0, st.Lives)
	var sawGameOver bool
	for _, ev := range events {
		if ev.Kind == EventGameOver {
			sawGameOver = true
		}
	}
	assert.True(t, sawGameOver)
}

func TestBallLossResetsCombo(t *testing.T) {
	r, tun := newTestRunner(42)
	r.Push(Command{Kind: CmdLaunch})
	r.Step()

	st := r.State()
	st.Combo = 7
	st.Balls[0].Pos = core.Vec2{X: tun.Arena.HazardLossRadius - 5, Y: 0}
	st.Balls[0].Vel = core.Vec2{X: -tun.Ball.StartSpeed, Y: 0}
	r.Step()

	assert.Equal(t, uint32(0), st.Combo)
}

func TestDegenerateBlockIsInert(t *testing.T) {
	r, tun := newTestRunner(42)
	r.Push(Command{Kind: CmdLaunch})
	r.Step()

	st := r.State()
	st.Blocks = append(st.Blocks, Block{
		ID:   st.NextEntityID(),
		Kind: KindGlass,
		HP:   1,
		Arc:  ArcSegment{Radius: 200, Thickness: 0, ThetaStart: -core.Pi, ThetaEnd: core.Pi - 0.01},
	})
	st.NormalizeOrder()

	// The ball crosses the degenerate ring without a single hit event.
	st.Balls[0].Pos = core.Vec2{X: 0, Y: -180}
	st.Balls[0].Vel = core.Vec2{X: 0, Y: -tun.Ball.MaxSpeed}
	for i := 0; i < 30; i++ {
		for _, ev := range r.Step() {
			if ev.Kind == EventBlockHit || ev.Kind == EventBlockDestroyed {
				if idx := st.FindBlock(ev.EntityID); idx != -1 && st.Blocks[idx].Arc.Thickness == 0 {
					t.Fatalf("degenerate block produced a hit")
				}
			}
		}
	}
}

func TestExplosionDepthCap(t *testing.T) {
	r, tun := newTestRunner(42)
	st := r.State()
	st.Blocks = nil

	// A long chain of explosives spaced within blast reach. Without the
	// depth cap one hit would clear all of them.
	const chain = 12
	for i := 0; i < chain; i++ {
		theta := float32(i) * (tun.Blocks.ExplosionAngle * 0.8)
		st.Blocks = append(st.Blocks, Block{
			ID:   st.NextEntityID(),
			Kind: KindExplosive,
			HP:   1,
			Arc:  NewArc(250, tun.Blocks.Thickness, theta-0.1, theta+0.1),
		})
	}
	st.NormalizeOrder()
	first := st.Blocks[0].ID

	rng := &core.RNG{}
	rng.Restore(st.RNG)
	r.damageBlock(first, 1, 0, rng)

	assert.NotEmpty(t, st.Blocks, "depth cap must stop the chain")
	assert.Less(t, len(st.Blocks), chain)
}

func TestAdvanceCapsSubsteps(t *testing.T) {
	r, tun := newTestRunner(42)
	r.Push(Command{Kind: CmdLaunch})
	// A 10-second stall must not replay 1200 ticks.
	r.Advance(10.0)
	assert.LessOrEqual(t, r.State().TickCount, uint64(tun.Sim.MaxSubsteps))
}

func TestServeBallUsesTunedRadius(t *testing.T) {
	r, tun := newTestRunner(42)
	st := r.State()
	require.Len(t, st.Balls, 1)
	assert.Equal(t, tun.Ball.Radius, st.Balls[0].Radius, "first serve ball")

	// The respawn after a loss must produce an identical ball.
	r.Push(Command{Kind: CmdLaunch})
	r.Step()
	st.Balls[0].Pos = core.Vec2{X: tun.Arena.HazardLossRadius - 5, Y: 0}
	st.Balls[0].Vel = core.Vec2{X: -tun.Ball.StartSpeed, Y: 0}
	r.Step()

	require.Len(t, st.Balls, 1)
	assert.Equal(t, tun.Ball.Radius, st.Balls[0].Radius, "respawned ball")
}

func TestPaddleCooldownSingleBounce(t *testing.T) {
	r, tun := newTestRunner(42)
	r.Push(Command{Kind: CmdLaunch})
	r.Step()

	st := r.State()
	b := &st.Balls[0]
	outward := core.PolarToCartesian(1, st.Paddle.Theta)
	overlap := func() {
		b.Pos = core.PolarToCartesian(tun.Paddle.Radius+tun.Paddle.Thickness/2+b.Radius*0.5, st.Paddle.Theta)
		b.Vel = outward.Scale(-tun.Ball.StartSpeed)
	}

	overlap()
	r.collidePaddle(b)
	require.Equal(t, tun.Paddle.CooldownTicks, b.PaddleCooldown)
	assert.Greater(t, float64(b.Vel.Dot(outward)), 0.0, "first contact bounces outward")

	// Still overlapping on the next substep: the cooldown suppresses a
	// second registration.
	overlap()
	before := b.Vel
	r.collidePaddle(b)
	assert.Equal(t, before, b.Vel)

	b.PaddleCooldown = 0
	overlap()
	r.collidePaddle(b)
	assert.Greater(t, float64(b.Vel.Dot(outward)), 0.0, "bounces again once the cooldown expires")
}

func TestPortalEntryStartsSlide(t *testing.T) {
	r, tun := newTestRunner(42)
	r.Push(Command{Kind: CmdLaunch})
	r.Step()

	st := r.State()
	st.Blocks = nil
	entryID := st.NextEntityID()
	exitID := st.NextEntityID()
	st.Blocks = append(st.Blocks,
		Block{ID: entryID, Kind: KindPortal, HP: 2, PairID: exitID, Arc: NewArc(250, tun.Blocks.Thickness, -0.3, 0.3)},
		Block{ID: exitID, Kind: KindPortal, HP: 2, PairID: entryID, Arc: NewArc(320, tun.Blocks.Thickness, 1.2, 1.8)},
	)
	st.NormalizeOrder()

	b := &st.Balls[0]
	b.Pos = core.PolarToCartesian(250+tun.Blocks.Thickness/2+b.Radius*0.5, 0)
	b.Vel = core.PolarToCartesian(1, 0).Scale(-tun.Ball.StartSpeed)

	rng := &core.RNG{}
	rng.Restore(st.RNG)
	r.collideBlocks(b, map[uint32]bool{}, rng)

	assert.Equal(t, BallSliding, b.Attachment)
	assert.Equal(t, entryID, b.SlidingBlockID)
	assert.Equal(t, uint32(1), st.Blocks[st.FindBlock(entryID)].HP, "entry charged one hit")
}

func TestPortalTransitTeleportsWithCooldown(t *testing.T) {
	r, tun := newTestRunner(42)
	r.Push(Command{Kind: CmdLaunch})
	r.Step()

	st := r.State()
	st.Blocks = nil
	entryID := st.NextEntityID()
	exitID := st.NextEntityID()
	// The exit hugs the hazard, so the raw exit radius lands inside the
	// forbidden band and must be pushed out to the safe minimum.
	st.Blocks = append(st.Blocks,
		Block{ID: entryID, Kind: KindPortal, HP: 1, PairID: exitID, Arc: NewArc(250, tun.Blocks.Thickness, -0.3, 0.3)},
		Block{ID: exitID, Kind: KindPortal, HP: 1, PairID: entryID, Arc: NewArc(tun.Arena.HazardRadius+10, tun.Blocks.Thickness, 1.2, 1.8)},
	)
	st.NormalizeOrder()

	b := &st.Balls[0]
	b.Attachment = BallSliding
	b.SlidingBlockID = entryID
	b.SlideTheta = -0.3
	b.SlideDir = 1
	b.SlideSpeed = tun.Ball.StartSpeed
	b.SlideTraveled = st.Blocks[st.FindBlock(entryID)].Arc.Span()
	b.Vel = core.Vec2{}

	r.stepSlidingBall(b, tun.DT())

	exit := st.Blocks[st.FindBlock(exitID)]
	assert.Equal(t, BallFree, b.Attachment)
	assert.Equal(t, tun.Blocks.PortalCooldown, b.PortalCooldown, "re-entry cooldown armed")

	minSafe := tun.Arena.HazardRadius + b.Radius*3
	maxSafe := tun.Arena.OuterRadius - b.Radius*3
	radius := b.Pos.Length()
	assert.GreaterOrEqual(t, float64(radius), float64(minSafe)-0.01)
	assert.LessOrEqual(t, float64(radius), float64(maxSafe)+0.01)

	_, theta := core.CartesianToPolar(b.Pos)
	assert.InDelta(t, float64(core.NormalizeAngle(exit.Arc.MidAngle()+0.2)), float64(theta), 1e-2)
	assert.GreaterOrEqual(t, float64(b.Vel.Length()), float64(tun.Ball.MinSpeed)-0.01)
}

func TestMultiBallSplitsFreeBall(t *testing.T) {
	r, _ := newTestRunner(42)
	r.Push(Command{Kind: CmdLaunch})
	r.Step()

	st := r.State()
	before := len(st.Balls)
	r.collectPickup(Pickup{ID: 999, Kind: PickupMultiBall})
	assert.Greater(t, len(st.Balls), before)
}
