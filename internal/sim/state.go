package sim

import (
	"sort"

	"github.com/vovakirdan/rotopong/internal/core"
)

// Phase is the coarse game-state mode.
type Phase uint8

const (
	PhaseServe Phase = iota
	PhasePlaying
	PhaseBreather
	PhasePaused
	PhaseGameOver
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseServe:
		return "serve"
	case PhasePlaying:
		return "playing"
	case PhaseBreather:
		return "breather"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// BallAttachment describes whether a ball rides the paddle or moves freely.
type BallAttachment uint8

const (
	// BallFree participates in collision every tick.
	BallFree BallAttachment = iota
	// BallAttached tracks the paddle and never collides.
	BallAttached
	// BallSliding is in portal transit, bound to a block id.
	BallSliding
)

// Ball is a ball entity.
type Ball struct {
	ID         uint32         `json:"id"`
	Pos        core.Vec2      `json:"pos"`
	Vel        core.Vec2      `json:"vel"`
	Radius     float32        `json:"radius"`
	Attachment BallAttachment `json:"attachment"`
	// AttachOffset is the angular offset from paddle center while attached.
	AttachOffset float32 `json:"attach_offset"`
	// Piercing balls skip block collision but still hit paddle and wall.
	Piercing bool `json:"piercing"`
	// PaddleCooldown prevents double-registration against the paddle.
	PaddleCooldown int `json:"paddle_cooldown"`
	// PortalCooldown prevents immediate portal re-entry after a transit.
	PortalCooldown int `json:"portal_cooldown"`

	// Sliding sub-state (portal transit), valid while Attachment == BallSliding.
	SlidingBlockID uint32  `json:"sliding_block_id"`
	SlideTheta     float32 `json:"slide_theta"`
	SlideDir       float32 `json:"slide_dir"` // +1 or -1
	SlideSpeed     float32 `json:"slide_speed"`
	SlideTraveled  float32 `json:"slide_traveled"`
}

// BlockKind is the closed set of block variants.
type BlockKind uint8

const (
	KindGlass BlockKind = iota
	KindArmored
	KindExplosive
	KindInvincible
	KindPortal
	KindJello
	KindCrystal
	KindElectric
	KindMagnet
	KindGhost
	KindCapsule
	kindCount // sentinel, keep last
)

// String returns the block kind name.
func (k BlockKind) String() string {
	switch k {
	case KindGlass:
		return "glass"
	case KindArmored:
		return "armored"
	case KindExplosive:
		return "explosive"
	case KindInvincible:
		return "invincible"
	case KindPortal:
		return "portal"
	case KindJello:
		return "jello"
	case KindCrystal:
		return "crystal"
	case KindElectric:
		return "electric"
	case KindMagnet:
		return "magnet"
	case KindGhost:
		return "ghost"
	case KindCapsule:
		return "capsule"
	default:
		return "unknown"
	}
}

// Valid reports whether k is a known kind. Unknown kinds in old saves are
// remapped to Glass by migration.
func (k BlockKind) Valid() bool {
	return k < kindCount
}

// HighThreat reports whether the kind counts against per-ring density caps.
func (k BlockKind) HighThreat() bool {
	switch k {
	case KindExplosive, KindPortal, KindMagnet, KindInvincible:
		return true
	}
	return false
}

// Block is a curved arc block.
type Block struct {
	ID   uint32     `json:"id"`
	Kind BlockKind  `json:"kind"`
	HP   uint32     `json:"hp"`
	Arc  ArcSegment `json:"arc"`
	// RotationSpeed is radians/sec; zero for stationary rings.
	RotationSpeed float32 `json:"rotation_speed"`
	// PairID links the two halves of a portal (id lookup, not ownership).
	PairID uint32 `json:"pair_id,omitempty"`
	// Wobble is cosmetic jello ripple (0-1, decays); never affects collision.
	Wobble float32 `json:"wobble,omitempty"`
	// GhostOffset phase-shifts the ghost visibility cycle.
	GhostOffset int `json:"ghost_offset,omitempty"`
}

// CountsForClear reports whether the block must be destroyed to clear the wave.
func (b *Block) CountsForClear() bool {
	return b.Kind != KindInvincible
}

// GhostHidden reports whether a ghost block is currently intangible.
// Ghosts alternate visible/hidden on a fixed tick cycle; the offset staggers
// blocks so a ring never blinks in unison.
func (b *Block) GhostHidden(tick uint64, cycleTicks int) bool {
	if b.Kind != KindGhost || cycleTicks <= 0 {
		return false
	}
	phase := (tick + uint64(b.GhostOffset)) % uint64(cycleTicks*2)
	return phase >= uint64(cycleTicks)
}

// TriggerWobble starts the jello ripple.
func (b *Block) TriggerWobble() {
	if b.Kind == KindJello {
		b.Wobble = 1.0
	}
}

// Advance rotates the block and decays wobble.
func (b *Block) Advance(dt float32) {
	if b.RotationSpeed != 0 {
		b.Arc.Rotate(b.RotationSpeed * dt)
	}
	if b.Wobble > 0 {
		b.Wobble = max32(b.Wobble-dt*2, 0)
	}
}

// PickupKind is the set of pickup capsule payloads.
type PickupKind uint8

const (
	PickupMultiBall PickupKind = iota
	PickupSlow
	PickupPiercing
	PickupWiden
	PickupShield
	pickupKindCount
)

// String returns the pickup kind name.
func (k PickupKind) String() string {
	switch k {
	case PickupMultiBall:
		return "multiball"
	case PickupSlow:
		return "slow"
	case PickupPiercing:
		return "piercing"
	case PickupWiden:
		return "widen"
	case PickupShield:
		return "shield"
	default:
		return "unknown"
	}
}

// Pickup is a drifting power-up capsule.
type Pickup struct {
	ID       uint32     `json:"id"`
	Kind     PickupKind `json:"kind"`
	Pos      core.Vec2  `json:"pos"`
	Vel      core.Vec2  `json:"vel"`
	TTLTicks int        `json:"ttl_ticks"`
}

// ActiveEffects tracks remaining durations (ticks) and shield charge.
type ActiveEffects struct {
	SlowTicks     int  `json:"slow_ticks"`
	PiercingTicks int  `json:"piercing_ticks"`
	WidenTicks    int  `json:"widen_ticks"`
	ShieldActive  bool `json:"shield_active"`
}

// Paddle is the player's arc, orbiting just outside the hazard.
type Paddle struct {
	Theta      float32 `json:"theta"`
	ArcWidth   float32 `json:"arc_width"`
	AngularVel float32 `json:"angular_vel"`
}

// AsArc returns the paddle's collision geometry.
func (p *Paddle) AsArc(radius, thickness float32) ArcSegment {
	return NewArc(radius, thickness, p.Theta-p.ArcWidth/2, p.Theta+p.ArcWidth/2)
}

// MoveToward steps the paddle angle toward target at a capped angular speed,
// recording the resulting angular velocity for english.
func (p *Paddle) MoveToward(target, dt, maxSpeed float32) {
	delta := core.AngleDiff(p.Theta, target)
	maxDelta := maxSpeed * dt
	delta = core.Clamp32(delta, -maxDelta, maxDelta)
	p.AngularVel = delta / dt
	p.Theta = core.NormalizeAngle(p.Theta + delta)
}

// State is the authoritative simulation aggregate. It exclusively owns all
// entities; lists are kept sorted by id for deterministic iteration.
type State struct {
	Seed      uint64        `json:"seed"`
	RNG       core.RNGState `json:"rng"`
	WaveIndex uint32        `json:"wave_index"`
	Lives     int           `json:"lives"`
	Score     uint64        `json:"score"`
	Combo     uint32        `json:"combo"`
	TickCount uint64        `json:"tick_count"`
	Phase     Phase         `json:"phase"`
	// ResumePhase remembers where to return after a pause.
	ResumePhase   Phase `json:"resume_phase"`
	BreatherTicks int   `json:"breather_ticks"`

	Paddle  Paddle        `json:"paddle"`
	Balls   []Ball        `json:"balls"`
	Blocks  []Block       `json:"blocks"`
	Pickups []Pickup      `json:"pickups"`
	Effects ActiveEffects `json:"effects"`

	// WaveTemplate is the template id of the current wave (fed back to the
	// generator so consecutive waves vary).
	WaveTemplate uint8 `json:"wave_template"`

	NextID uint32 `json:"next_id"`
}

// NewState creates a fresh run with one ball attached to the paddle.
// The first wave is not generated here; the tick runner does that so wave
// content always flows through the same generator path.
func NewState(seed uint64, paddleArcWidth, ballRadius float32, lives int) *State {
	s := &State{
		Seed:        seed,
		RNG:         core.NewRNG(seed, 0).State(),
		Lives:       lives,
		Phase:       PhaseServe,
		ResumePhase: PhaseServe,
		Paddle:      Paddle{Theta: -core.Pi / 2, ArcWidth: paddleArcWidth},
		NextID:      1,
	}
	s.SpawnAttachedBall(ballRadius)
	return s
}

// NextEntityID allocates a fresh id. IDs are never reused within a run.
func (s *State) NextEntityID() uint32 {
	id := s.NextID
	s.NextID++
	return id
}

// SpawnAttachedBall creates a ball riding the paddle.
func (s *State) SpawnAttachedBall(radius float32) {
	id := s.NextEntityID()
	s.Balls = append(s.Balls, Ball{
		ID:         id,
		Radius:     radius,
		Attachment: BallAttached,
	})
}

// FindBlock returns the index of the block with the given id, or -1.
func (s *State) FindBlock(id uint32) int {
	for i := range s.Blocks {
		if s.Blocks[i].ID == id {
			return i
		}
	}
	return -1
}

// ClearableBlocks counts blocks that must be destroyed to clear the wave.
func (s *State) ClearableBlocks() int {
	n := 0
	for i := range s.Blocks {
		if s.Blocks[i].CountsForClear() {
			n++
		}
	}
	return n
}

// NormalizeOrder re-sorts all entity lists by id to restore the stable
// iteration order determinism depends on.
func (s *State) NormalizeOrder() {
	sort.Slice(s.Balls, func(i, j int) bool { return s.Balls[i].ID < s.Balls[j].ID })
	sort.Slice(s.Blocks, func(i, j int) bool { return s.Blocks[i].ID < s.Blocks[j].ID })
	sort.Slice(s.Pickups, func(i, j int) bool { return s.Pickups[i].ID < s.Pickups[j].ID })
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
