package config

import (
	_ "embed"
)

//go:embed defaults/tuning.yaml
var defaultTuningYAML []byte

// DefaultTuning returns the built-in tuning table.
func DefaultTuning() Tuning {
	return Tuning{
		Sim: SimTuning{
			TickRate:     120,
			MaxSubsteps:  8,
			MaxCollSteps: 20,
		},
		Arena: ArenaTuning{
			OuterRadius:      400,
			HazardRadius:     40,
			HazardLossRadius: 35,
			HazardGravity:    120,
		},
		Paddle: PaddleTuning{
			Radius:        47.5,
			Thickness:     15,
			ArcWidth:      1.21,
			MaxAngularVel: 9.6,
			EnglishFactor: 0.15,
			Boost:         1.15,
			CooldownTicks: 8,
		},
		Ball: BallTuning{
			Radius:     8,
			StartSpeed: 200,
			MinSpeed:   150,
			MaxSpeed:   400,
		},
		Blocks: BlockTuning{
			Thickness:         24,
			ExplosionAngle:    0.6,
			ExplosionRadial:   60,
			ExplosionMaxDepth: 3,
			MagnetRange:       90,
			MagnetStrength:    140,
			GhostCycleTicks:   360,
			PortalSlideSpeed:  1.5,
			PortalCooldown:    60,
		},
		Pickups: PickupTuning{
			TTLTicks:       1200,
			DriftAccel:     80,
			MaxDriftSpeed:  150,
			DropPercent:    10,
			SlowTicks:      600,
			PiercingTicks:  480,
			WidenTicks:     720,
			WidenFactor:    1.5,
			SlowFactor:     0.6,
			MultiBallCount: 2,
		},
		Wave: WaveTuning{
			SafeLaneMinWidth: 0.40,
			MaxAttempts:      24,
			MaxRings:         3,
			MaxThreatDensity: 0.35,
			MaxExplosive:     4,
			MaxPortalPairs:   2,
			MaxMagnets:       2,
			MinBlockRadius:   120,
		},
		Gameplay: GameplayTuning{
			Lives:           3,
			BreatherSeconds: 5.0,
			ComboStep:       0.1,
			ComboCap:        3.0,
		},
		Limits: LimitTuning{
			MaxLives:     9,
			MaxWaveIndex: 9999,
			MaxBalls:     16,
			MaxBlocks:    256,
			MaxPickups:   32,
		},
	}
}
