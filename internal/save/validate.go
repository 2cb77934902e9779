package save

import (
	"fmt"

	"github.com/vovakirdan/rotopong/internal/config"
	"github.com/vovakirdan/rotopong/internal/core"
	"github.com/vovakirdan/rotopong/internal/sim"
)

// Validate is the semantic validation stage of load. It rejects states that
// cannot be trusted (non-finite floats, duplicate ids, unknown phase), clamps
// out-of-range scalars deterministically, drops excess entities highest-id
// first, and normalizes ordering so the loaded state iterates identically to
// the one that was saved.
func Validate(st *sim.State, tun *config.Tuning) error {
	if err := checkFinite(st); err != nil {
		return err
	}
	if st.Phase > sim.PhaseGameOver || st.ResumePhase > sim.PhaseGameOver {
		return fmt.Errorf("%w: unknown phase", ErrInvariantViolation)
	}
	if err := checkDuplicateIDs(st); err != nil {
		return err
	}

	st.Lives = clampInt(st.Lives, 0, tun.Limits.MaxLives)
	if st.WaveIndex > uint32(tun.Limits.MaxWaveIndex) {
		st.WaveIndex = uint32(tun.Limits.MaxWaveIndex)
	}
	st.Paddle.Theta = core.NormalizeAngle(st.Paddle.Theta)
	if st.Paddle.ArcWidth <= 0 {
		st.Paddle.ArcWidth = tun.Paddle.ArcWidth
	}
	if st.Effects.SlowTicks < 0 {
		st.Effects.SlowTicks = 0
	}
	if st.Effects.PiercingTicks < 0 {
		st.Effects.PiercingTicks = 0
	}
	if st.Effects.WidenTicks < 0 {
		st.Effects.WidenTicks = 0
	}

	normalizeBlocks(st)
	dropExcess(st, tun)
	st.NormalizeOrder()
	fixNextID(st)

	// Attached balls carry no simulated velocity; a non-positive radius would
	// change collision behavior, so it falls back to the tuned value.
	for i := range st.Balls {
		if st.Balls[i].Radius <= 0 {
			st.Balls[i].Radius = tun.Ball.Radius
		}
		if st.Balls[i].Attachment == sim.BallAttached {
			st.Balls[i].Vel = core.Vec2{}
		}
	}
	return nil
}

func checkFinite(st *sim.State) error {
	bad := func(what string) error {
		return fmt.Errorf("%w: non-finite %s", ErrInvariantViolation, what)
	}
	if !core.IsFinite(st.Paddle.Theta) || !core.IsFinite(st.Paddle.ArcWidth) || !core.IsFinite(st.Paddle.AngularVel) {
		return bad("paddle")
	}
	for i := range st.Balls {
		b := &st.Balls[i]
		if !b.Pos.IsFinite() || !b.Vel.IsFinite() || !core.IsFinite(b.Radius) {
			return bad("ball")
		}
	}
	for i := range st.Blocks {
		a := st.Blocks[i].Arc
		if !core.IsFinite(a.Radius) || !core.IsFinite(a.Thickness) ||
			!core.IsFinite(a.ThetaStart) || !core.IsFinite(a.ThetaEnd) ||
			!core.IsFinite(st.Blocks[i].RotationSpeed) {
			return bad("block")
		}
	}
	for i := range st.Pickups {
		if !st.Pickups[i].Pos.IsFinite() || !st.Pickups[i].Vel.IsFinite() {
			return bad("pickup")
		}
	}
	return nil
}

func checkDuplicateIDs(st *sim.State) error {
	seen := make(map[uint32]bool, len(st.Balls)+len(st.Blocks)+len(st.Pickups))
	check := func(id uint32) error {
		if seen[id] {
			return fmt.Errorf("%w: duplicate entity id %d", ErrInvariantViolation, id)
		}
		seen[id] = true
		return nil
	}
	for i := range st.Balls {
		if err := check(st.Balls[i].ID); err != nil {
			return err
		}
	}
	for i := range st.Blocks {
		if err := check(st.Blocks[i].ID); err != nil {
			return err
		}
	}
	for i := range st.Pickups {
		if err := check(st.Pickups[i].ID); err != nil {
			return err
		}
	}
	return nil
}

// normalizeBlocks remaps unknown kinds to Glass, drops depleted blocks,
// wraps arc angles and resolves dangling portal pairs.
func normalizeBlocks(st *sim.State) {
	kept := st.Blocks[:0]
	for i := range st.Blocks {
		b := st.Blocks[i]
		if b.HP == 0 {
			continue
		}
		if !b.Kind.Valid() {
			b.Kind = sim.KindGlass
			b.PairID = 0
		}
		b.Arc.ThetaStart = core.NormalizeAngle(b.Arc.ThetaStart)
		b.Arc.ThetaEnd = core.NormalizeAngle(b.Arc.ThetaEnd)
		kept = append(kept, b)
	}
	st.Blocks = kept
	sim.ResolvePortalPairs(st.Blocks)
}

// dropExcess trims each entity list to capacity, removing the highest ids
// first so the result is deterministic regardless of stored order.
func dropExcess(st *sim.State, tun *config.Tuning) {
	st.NormalizeOrder()
	if len(st.Balls) > tun.Limits.MaxBalls {
		st.Balls = st.Balls[:tun.Limits.MaxBalls]
	}
	if len(st.Blocks) > tun.Limits.MaxBlocks {
		st.Blocks = st.Blocks[:tun.Limits.MaxBlocks]
		sim.ResolvePortalPairs(st.Blocks)
	}
	if len(st.Pickups) > tun.Limits.MaxPickups {
		st.Pickups = st.Pickups[:tun.Limits.MaxPickups]
	}
}

// fixNextID makes sure future ids never collide with loaded entities.
func fixNextID(st *sim.State) {
	maxID := uint32(0)
	for i := range st.Balls {
		if st.Balls[i].ID > maxID {
			maxID = st.Balls[i].ID
		}
	}
	for i := range st.Blocks {
		if st.Blocks[i].ID > maxID {
			maxID = st.Blocks[i].ID
		}
	}
	for i := range st.Pickups {
		if st.Pickups[i].ID > maxID {
			maxID = st.Pickups[i].ID
		}
	}
	if st.NextID <= maxID {
		st.NextID = maxID + 1
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
