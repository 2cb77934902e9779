package sim

import (
	"encoding/binary"
	"encoding/hex"

	"lukechampine.com/blake3"

	"github.com/vovakirdan/rotopong/internal/config"
	"github.com/vovakirdan/rotopong/internal/core"
)

// BallView is a ball as the renderer sees it.
type BallView struct {
	Pos      core.Vec2
	Radius   float32
	Attached bool
	Piercing bool
}

// BlockView is a block as the renderer sees it.
type BlockView struct {
	Kind   BlockKind
	HP     uint32
	Arc    ArcSegment
	Wobble float32
	Hidden bool
}

// PickupView is a pickup as the renderer sees it.
type PickupView struct {
	Kind PickupKind
	Pos  core.Vec2
}

// Snapshot is an immutable per-frame view of the simulation. The renderer
// reads one of these per displayed frame and never touches State.
type Snapshot struct {
	Phase         Phase
	Score         uint64
	Lives         int
	Combo         uint32
	WaveIndex     uint32
	TickCount     uint64
	BreatherTicks int

	PaddleTheta float32
	PaddleWidth float32

	Balls   []BallView
	Blocks  []BlockView
	Pickups []PickupView
	Effects ActiveEffects
}

// TakeSnapshot builds a render snapshot from the current state.
func TakeSnapshot(st *State, tun *config.Tuning) Snapshot {
	width := st.Paddle.ArcWidth
	if st.Effects.WidenTicks > 0 {
		width *= tun.Pickups.WidenFactor
	}
	snap := Snapshot{
		Phase:         st.Phase,
		Score:         st.Score,
		Lives:         st.Lives,
		Combo:         st.Combo,
		WaveIndex:     st.WaveIndex,
		TickCount:     st.TickCount,
		BreatherTicks: st.BreatherTicks,
		PaddleTheta:   st.Paddle.Theta,
		PaddleWidth:   width,
		Effects:       st.Effects,
	}
	for i := range st.Balls {
		b := &st.Balls[i]
		snap.Balls = append(snap.Balls, BallView{
			Pos:      b.Pos,
			Radius:   b.Radius,
			Attached: b.Attachment == BallAttached,
			Piercing: b.Piercing,
		})
	}
	for i := range st.Blocks {
		blk := &st.Blocks[i]
		snap.Blocks = append(snap.Blocks, BlockView{
			Kind:   blk.Kind,
			HP:     blk.HP,
			Arc:    blk.Arc,
			Wobble: blk.Wobble,
			Hidden: blk.GhostHidden(st.TickCount, tun.Blocks.GhostCycleTicks),
		})
	}
	for i := range st.Pickups {
		snap.Pickups = append(snap.Pickups, PickupView{Kind: st.Pickups[i].Kind, Pos: st.Pickups[i].Pos})
	}
	return snap
}

// StateDigest hashes the gameplay-relevant state, quantized and in stable id
// order, for replay verification. Two runs of the same seed and input stream
// must produce identical digests at every tick.
func StateDigest(st *State) string {
	h := blake3.New(32, nil)
	var buf [8]byte

	putU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	putF := func(v float32) {
		// Quantize to milli-units so the digest tolerates no drift but
		// stays independent of float formatting.
		putU64(uint64(int64(v * 1000)))
	}

	putU64(st.Seed)
	putU64(st.RNG.State)
	putU64(st.RNG.Inc)
	putU64(uint64(st.WaveIndex))
	putU64(uint64(st.Lives))
	putU64(st.Score)
	putU64(uint64(st.Combo))
	putU64(st.TickCount)
	putU64(uint64(st.Phase))
	putF(st.Paddle.Theta)
	putF(st.Paddle.ArcWidth)

	for i := range st.Balls {
		b := &st.Balls[i]
		putU64(uint64(b.ID))
		putF(b.Pos.X)
		putF(b.Pos.Y)
		putF(b.Vel.X)
		putF(b.Vel.Y)
		putU64(uint64(b.Attachment))
	}
	for i := range st.Blocks {
		blk := &st.Blocks[i]
		putU64(uint64(blk.ID))
		putU64(uint64(blk.Kind))
		putU64(uint64(blk.HP))
		putF(blk.Arc.Radius)
		putF(blk.Arc.ThetaStart)
		putF(blk.Arc.ThetaEnd)
	}
	for i := range st.Pickups {
		p := &st.Pickups[i]
		putU64(uint64(p.ID))
		putU64(uint64(p.Kind))
		putF(p.Pos.X)
		putF(p.Pos.Y)
		putU64(uint64(p.TTLTicks))
	}

	return hex.EncodeToString(h.Sum(nil))
}
