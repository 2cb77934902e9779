// Package config provides the YAML-based gameplay tuning table.
//
// The tuning table is loaded once per run and never mutated afterwards.
// Every constant that can affect simulation outcomes lives here; its hash
// (see Hash) is stored in saves so a resumed run is guaranteed to replay
// against the same numbers it was recorded with.
package config

// Tuning contains every gameplay-affecting constant.
type Tuning struct {
	Sim      SimTuning      `yaml:"sim" json:"sim"`
	Arena    ArenaTuning    `yaml:"arena" json:"arena"`
	Paddle   PaddleTuning   `yaml:"paddle" json:"paddle"`
	Ball     BallTuning     `yaml:"ball" json:"ball"`
	Blocks   BlockTuning    `yaml:"blocks" json:"blocks"`
	Pickups  PickupTuning   `yaml:"pickups" json:"pickups"`
	Wave     WaveTuning     `yaml:"wave" json:"wave"`
	Gameplay GameplayTuning `yaml:"gameplay" json:"gameplay"`
	Limits   LimitTuning    `yaml:"limits" json:"limits"`
}

// SimTuning defines the fixed-timestep parameters.
type SimTuning struct {
	TickRate     int `yaml:"tick_rate" json:"tick_rate"`           // simulation Hz (default 120)
	MaxSubsteps  int `yaml:"max_substeps" json:"max_substeps"`     // spiral-of-death cap per frame
	MaxCollSteps int `yaml:"max_coll_steps" json:"max_coll_steps"` // collision substeps per tick
}

// ArenaTuning defines arena and hazard geometry.
type ArenaTuning struct {
	OuterRadius      float32 `yaml:"outer_radius" json:"outer_radius"`
	HazardRadius     float32 `yaml:"hazard_radius" json:"hazard_radius"`
	HazardLossRadius float32 `yaml:"hazard_loss_radius" json:"hazard_loss_radius"`
	HazardGravity    float32 `yaml:"hazard_gravity" json:"hazard_gravity"`
}

// PaddleTuning defines the player paddle.
type PaddleTuning struct {
	Radius        float32 `yaml:"radius" json:"radius"`
	Thickness     float32 `yaml:"thickness" json:"thickness"`
	ArcWidth      float32 `yaml:"arc_width" json:"arc_width"`
	MaxAngularVel float32 `yaml:"max_angular_vel" json:"max_angular_vel"` // rad/s
	EnglishFactor float32 `yaml:"english_factor" json:"english_factor"`
	Boost         float32 `yaml:"boost" json:"boost"`       // speed multiplier on paddle hit
	CooldownTicks int     `yaml:"cooldown_ticks" json:"cooldown_ticks"`
}

// BallTuning defines ball physics.
type BallTuning struct {
	Radius     float32 `yaml:"radius" json:"radius"`
	StartSpeed float32 `yaml:"start_speed" json:"start_speed"`
	MinSpeed   float32 `yaml:"min_speed" json:"min_speed"`
	MaxSpeed   float32 `yaml:"max_speed" json:"max_speed"`
}

// BlockTuning defines per-kind block behavior.
type BlockTuning struct {
	Thickness         float32 `yaml:"thickness" json:"thickness"`
	ExplosionAngle    float32 `yaml:"explosion_angle" json:"explosion_angle"`   // angular blast reach, rad
	ExplosionRadial   float32 `yaml:"explosion_radial" json:"explosion_radial"` // radial blast reach
	ExplosionMaxDepth int     `yaml:"explosion_max_depth" json:"explosion_max_depth"`
	MagnetRange       float32 `yaml:"magnet_range" json:"magnet_range"`
	MagnetStrength    float32 `yaml:"magnet_strength" json:"magnet_strength"`
	GhostCycleTicks   int     `yaml:"ghost_cycle_ticks" json:"ghost_cycle_ticks"`
	PortalSlideSpeed  float32 `yaml:"portal_slide_speed" json:"portal_slide_speed"` // rad/s
	PortalCooldown    int     `yaml:"portal_cooldown" json:"portal_cooldown"`       // ticks
}

// PickupTuning defines pickup drift and effect durations (in ticks).
type PickupTuning struct {
	TTLTicks       int     `yaml:"ttl_ticks" json:"ttl_ticks"`
	DriftAccel     float32 `yaml:"drift_accel" json:"drift_accel"`
	MaxDriftSpeed  float32 `yaml:"max_drift_speed" json:"max_drift_speed"`
	DropPercent    int     `yaml:"drop_percent" json:"drop_percent"` // chance per destroyed block
	SlowTicks      int     `yaml:"slow_ticks" json:"slow_ticks"`
	PiercingTicks  int     `yaml:"piercing_ticks" json:"piercing_ticks"`
	WidenTicks     int     `yaml:"widen_ticks" json:"widen_ticks"`
	WidenFactor    float32 `yaml:"widen_factor" json:"widen_factor"`
	SlowFactor     float32 `yaml:"slow_factor" json:"slow_factor"`
	MultiBallCount int     `yaml:"multi_ball_count" json:"multi_ball_count"`
}

// WaveTuning defines the generator's fairness constraints.
type WaveTuning struct {
	SafeLaneMinWidth float32 `yaml:"safe_lane_min_width" json:"safe_lane_min_width"` // rad
	MaxAttempts      int     `yaml:"max_attempts" json:"max_attempts"`
	MaxRings         int     `yaml:"max_rings" json:"max_rings"`
	MaxThreatDensity float32 `yaml:"max_threat_density" json:"max_threat_density"` // per ring
	MaxExplosive     int     `yaml:"max_explosive" json:"max_explosive"`           // per wave
	MaxPortalPairs   int     `yaml:"max_portal_pairs" json:"max_portal_pairs"`
	MaxMagnets       int     `yaml:"max_magnets" json:"max_magnets"`
	MinBlockRadius   float32 `yaml:"min_block_radius" json:"min_block_radius"`
}

// GameplayTuning defines run-level rules.
type GameplayTuning struct {
	Lives           int     `yaml:"lives" json:"lives"`
	BreatherSeconds float32 `yaml:"breather_seconds" json:"breather_seconds"`
	ComboStep       float32 `yaml:"combo_step" json:"combo_step"`
	ComboCap        float32 `yaml:"combo_cap" json:"combo_cap"`
}

// LimitTuning defines caps enforced by save validation.
type LimitTuning struct {
	MaxLives     int `yaml:"max_lives" json:"max_lives"`
	MaxWaveIndex int `yaml:"max_wave_index" json:"max_wave_index"`
	MaxBalls     int `yaml:"max_balls" json:"max_balls"`
	MaxBlocks    int `yaml:"max_blocks" json:"max_blocks"`
	MaxPickups   int `yaml:"max_pickups" json:"max_pickups"`
}

// DT returns the fixed timestep in seconds.
func (t *Tuning) DT() float32 {
	return 1.0 / float32(t.Sim.TickRate)
}

// BreatherTicks returns the breather duration in ticks.
func (t *Tuning) BreatherTicks() int {
	return int(t.Gameplay.BreatherSeconds * float32(t.Sim.TickRate))
}
