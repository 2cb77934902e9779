package save

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/rotopong/internal/config"
	"github.com/vovakirdan/rotopong/internal/sim"
)

// migrateV1 upgrades a v1 payload to the current state shape. The v1 schema
// predates combo tracking, wave templates, ghost phase offsets and portal
// pair links; missing fields are filled with tuning-consistent defaults and
// legacy ranges are left to Validate's clamping. The tuning hash of the save
// is deliberately not compared for migrating loads: v1 saves were written
// under an older constant table.
//
// Migrations never invent an RNG state. If the payload carries none, Decode
// fails the load with ErrNotResumable instead of guessing.
func migrateV1(raw []byte, tun *config.Tuning) (*sim.State, error) {
	st := &sim.State{}
	if err := json.Unmarshal(raw, st); err != nil {
		return nil, fmt.Errorf("%w: v1 payload: %v", ErrDecodeFailed, err)
	}

	// v1 had no combo counter; a resumed run starts the chain fresh.
	st.Combo = 0
	st.WaveTemplate = 0

	// v1 ghosts blinked in unison; stagger them the way the generator does.
	ghostSeq := 0
	for i := range st.Blocks {
		b := &st.Blocks[i]
		if !b.Kind.Valid() {
			b.Kind = sim.KindGlass
			b.PairID = 0
		}
		if b.Kind == sim.KindGhost && b.GhostOffset == 0 {
			b.GhostOffset = ghostSeq * 13
			ghostSeq++
		}
		// v1 portals had no pair links; Validate downgrades them to Glass.
	}

	if st.Phase == sim.PhaseBreather && st.BreatherTicks <= 0 {
		st.BreatherTicks = tun.BreatherTicks()
	}
	if st.Paddle.ArcWidth <= 0 {
		st.Paddle.ArcWidth = tun.Paddle.ArcWidth
	}
	return st, nil
}
