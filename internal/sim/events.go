package sim

// EventKind identifies a discrete simulation event. Events are consumed by
// audio/VFX/HUD collaborators and by the persistence checkpoint logic; they
// carry no authority over simulation state.
type EventKind uint8

const (
	EventBlockHit EventKind = iota
	EventBlockDestroyed
	EventWallBounce
	EventPaddleBounce
	EventBallLost
	EventPickupSpawned
	EventPickupCollected
	EventPortalTransit
	EventShieldConsumed
	EventWaveCleared
	EventWaveSpawned
	EventGameOver
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventBlockHit:
		return "block_hit"
	case EventBlockDestroyed:
		return "block_destroyed"
	case EventWallBounce:
		return "wall_bounce"
	case EventPaddleBounce:
		return "paddle_bounce"
	case EventBallLost:
		return "ball_lost"
	case EventPickupSpawned:
		return "pickup_spawned"
	case EventPickupCollected:
		return "pickup_collected"
	case EventPortalTransit:
		return "portal_transit"
	case EventShieldConsumed:
		return "shield_consumed"
	case EventWaveCleared:
		return "wave_cleared"
	case EventWaveSpawned:
		return "wave_spawned"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is a single discrete occurrence within a tick.
type Event struct {
	Kind EventKind
	// EntityID is the primary subject (block id, ball id, pickup id).
	EntityID uint32
	// Wave is set for wave-related events.
	Wave uint32
}
