package sim

import (
	"github.com/vovakirdan/rotopong/internal/config"
	"github.com/vovakirdan/rotopong/internal/core"
)

// Wave templates. Consecutive waves never reuse a template.
const (
	TemplateRingSlice uint8 = iota
	TemplateSpiral
	TemplateCorridor
	TemplateConstellation
	TemplateChords
	templateCount
)

// WaveMeta records how a wave came to be.
type WaveMeta struct {
	Template uint8
	Attempts int
	// Fallback is true when every generation attempt failed validation and
	// the fixed fallback layout was used instead.
	Fallback bool
}

// GenerateWave deterministically produces the block layout for a wave.
// Candidates are validated against the fairness constraints; generation
// retries up to MaxAttempts and then emits the fixed fallback layout, so it
// always terminates with a playable wave. Entity ids are allocated through
// alloc only for the accepted candidate.
func GenerateWave(waveIndex uint32, rng *core.RNG, tun *config.Tuning, priorTemplate uint8, alloc func() uint32) ([]Block, WaveMeta) {
	for attempt := 1; attempt <= tun.Wave.MaxAttempts; attempt++ {
		template := pickTemplate(rng, priorTemplate)
		blocks := buildCandidate(waveIndex, template, rng, tun)
		pairs := pickPortalPairs(blocks, rng, tun)
		if validateWave(blocks, tun) {
			assignIDs(blocks, alloc)
			for _, pr := range pairs {
				blocks[pr[0]].PairID = blocks[pr[1]].ID
				blocks[pr[1]].PairID = blocks[pr[0]].ID
			}
			ResolvePortalPairs(blocks)
			return blocks, WaveMeta{Template: template, Attempts: attempt}
		}
	}
	blocks := fallbackWave(tun)
	assignIDs(blocks, alloc)
	return blocks, WaveMeta{Template: TemplateRingSlice, Attempts: tun.Wave.MaxAttempts, Fallback: true}
}

func pickTemplate(rng *core.RNG, prior uint8) uint8 {
	t := uint8(rng.IntN(int(templateCount) - 1))
	if t >= prior {
		t++
	}
	if t >= templateCount {
		t = 0
	}
	return t
}

// buildCandidate places arc blocks on concentric rings according to the
// template, always leaving the reserved safe lane empty. Blocks get zero ids;
// the accepted candidate is id-stamped afterwards.
func buildCandidate(waveIndex uint32, template uint8, rng *core.RNG, tun *config.Tuning) []Block {
	rings := 1 + int(waveIndex)/2
	if rings > tun.Wave.MaxRings {
		rings = tun.Wave.MaxRings
	}

	laneCenter := rng.Range32(-core.Pi, core.Pi)
	laneHalf := tun.Wave.SafeLaneMinWidth*0.65 + 0.05

	gateCenter := core.NormalizeAngle(laneCenter + core.Pi)
	gateHalf := tun.Wave.SafeLaneMinWidth * 0.45

	rMin := tun.Wave.MinBlockRadius
	rMax := tun.Arena.OuterRadius - tun.Blocks.Thickness*2

	budget := kindBudget{
		explosive: tun.Wave.MaxExplosive,
		magnets:   tun.Wave.MaxMagnets,
	}

	var blocks []Block
	for ring := 0; ring < rings; ring++ {
		radius := rMin + (rMax-rMin)*float32(ring+1)/float32(rings+1)

		segments := 8 + int(waveIndex)
		if segments > 20 {
			segments = 20
		}
		segSpan := core.Tau / float32(segments)
		ringOffset := float32(0)
		if template == TemplateSpiral {
			ringOffset = float32(ring) * 0.35
		}

		rotation := float32(0)
		if waveIndex >= 2 && rng.Float32() < 0.25 {
			rotation = rng.Range32(0.1, 0.3)
			if rng.Float32() < 0.5 {
				rotation = -rotation
			}
		}

		for seg := 0; seg < segments; seg++ {
			mid := core.NormalizeAngle(float32(seg)*segSpan + segSpan/2 + ringOffset)
			blockHalf := segSpan * 0.425

			if core.Abs32(core.AngleDiff(mid, laneCenter)) < laneHalf+blockHalf {
				continue
			}
			if template == TemplateCorridor &&
				core.Abs32(core.AngleDiff(mid, gateCenter)) < gateHalf+blockHalf {
				continue
			}
			if !templateFills(template, ring, seg, rng) {
				continue
			}

			kind := rollKind(rng, waveIndex, &budget)
			blocks = append(blocks, Block{
				Kind:          kind,
				HP:            kindHP(kind),
				Arc:           NewArc(radius, tun.Blocks.Thickness, mid-blockHalf, mid+blockHalf),
				RotationSpeed: rotation,
				GhostOffset:   seg * 13,
			})
		}
	}
	return blocks
}

// templateFills decides whether a template places a block in a given slot.
// Constellation is the only template that draws randomness here.
func templateFills(template uint8, ring, seg int, rng *core.RNG) bool {
	switch template {
	case TemplateSpiral:
		return (seg+ring*2)%3 != 0
	case TemplateConstellation:
		return rng.Float32() < 0.45
	case TemplateChords:
		return seg%4 < 2
	default: // ring-slice, corridor
		return true
	}
}

type kindBudget struct {
	explosive int
	magnets   int
}

// rollKind picks a block kind weighted by wave depth, consuming per-wave
// budgets for the capped kinds. Portals are linked in a separate pass.
func rollKind(rng *core.RNG, waveIndex uint32, budget *kindBudget) BlockKind {
	roll := rng.IntN(100)
	depth := int(waveIndex)

	switch {
	case roll < 4 && depth >= 3 && budget.explosive > 0:
		budget.explosive--
		return KindExplosive
	case roll < 7 && depth >= 4 && budget.magnets > 0:
		budget.magnets--
		return KindMagnet
	case roll < 11 && depth >= 5:
		return KindGhost
	case roll < 14 && depth >= 3:
		return KindElectric
	case roll < 18 && depth >= 2:
		return KindJello
	case roll < 21:
		return KindCapsule
	case roll < 24 && depth >= 6:
		return KindCrystal
	case roll < 27 && depth >= 7:
		return KindInvincible
	case roll < 27+10*minInt(depth, 4):
		return KindArmored
	default:
		return KindGlass
	}
}

func kindHP(k BlockKind) uint32 {
	switch k {
	case KindArmored:
		return 3
	case KindCrystal, KindJello, KindElectric:
		return 2
	default:
		return 1
	}
}

// pickPortalPairs upgrades pairs of plain blocks to portals, within the
// per-wave pair cap, and returns the paired indexes. It runs before
// validation so the density caps see the portals; ids are linked only once
// the candidate is accepted.
func pickPortalPairs(blocks []Block, rng *core.RNG, tun *config.Tuning) [][2]int {
	var pairs [][2]int
	for p := 0; p < tun.Wave.MaxPortalPairs; p++ {
		if rng.Float32() >= 0.3 || len(blocks) < 6 {
			continue
		}
		a := rng.IntN(len(blocks))
		b := rng.IntN(len(blocks))
		if a == b || blocks[a].Kind != KindGlass || blocks[b].Kind != KindGlass {
			continue
		}
		blocks[a].Kind = KindPortal
		blocks[a].HP = 1
		blocks[b].Kind = KindPortal
		blocks[b].HP = 1
		pairs = append(pairs, [2]int{a, b})
	}
	return pairs
}

// ResolvePortalPairs downgrades any portal whose pair id does not resolve to
// another portal block. Used post-generation and by save validation.
func ResolvePortalPairs(blocks []Block) {
	byID := make(map[uint32]int, len(blocks))
	for i := range blocks {
		byID[blocks[i].ID] = i
	}
	for i := range blocks {
		if blocks[i].Kind != KindPortal {
			continue
		}
		j, ok := byID[blocks[i].PairID]
		if !ok || j == i || blocks[j].Kind != KindPortal {
			blocks[i].Kind = KindGlass
			blocks[i].PairID = 0
		}
	}
}

func assignIDs(blocks []Block, alloc func() uint32) {
	for i := range blocks {
		blocks[i].ID = alloc()
	}
}

// fallbackWave is the fixed layout used when generation exhausts its retries:
// a single ring of glass with a wide lane over the paddle's starting angle.
// It is valid by construction.
func fallbackWave(tun *config.Tuning) []Block {
	const segments = 8
	laneCenter := -core.Pi / 2
	laneHalf := tun.Wave.SafeLaneMinWidth

	radius := (tun.Wave.MinBlockRadius + tun.Arena.OuterRadius) / 2
	segSpan := core.Tau / float32(segments)

	var blocks []Block
	for seg := 0; seg < segments; seg++ {
		mid := core.NormalizeAngle(float32(seg)*segSpan + segSpan/2)
		blockHalf := segSpan * 0.425
		if core.Abs32(core.AngleDiff(mid, laneCenter)) < laneHalf+blockHalf {
			continue
		}
		blocks = append(blocks, Block{
			Kind: KindGlass,
			HP:   1,
			Arc:  NewArc(radius, tun.Blocks.Thickness, mid-blockHalf, mid+blockHalf),
		})
	}
	return blocks
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
