package sim

import (
	"sort"

	"github.com/vovakirdan/rotopong/internal/config"
	"github.com/vovakirdan/rotopong/internal/core"
)

// minWaveBlocks rejects near-empty candidates that would clear instantly.
const minWaveBlocks = 4

// validateWave runs every fairness check against a candidate layout.
func validateWave(blocks []Block, tun *config.Tuning) bool {
	return len(blocks) >= minWaveBlocks &&
		radiiLegal(blocks, tun) &&
		safeLaneWidth(blocks) >= tun.Wave.SafeLaneMinWidth &&
		densityOK(blocks, tun) &&
		kindCountsOK(blocks, tun) &&
		noAdjacentExplosives(blocks)
}

// safeLaneWidth returns the widest contiguous block-free angular corridor
// across all rings.
func safeLaneWidth(blocks []Block) float32 {
	type interval struct{ start, end float32 }
	var occupied []interval
	for i := range blocks {
		a := blocks[i].Arc
		if a.Degenerate() {
			continue
		}
		if a.ThetaStart <= a.ThetaEnd {
			occupied = append(occupied, interval{a.ThetaStart, a.ThetaEnd})
		} else {
			// Wraparound arcs split at the seam.
			occupied = append(occupied,
				interval{a.ThetaStart, core.Pi},
				interval{-core.Pi, a.ThetaEnd})
		}
	}
	if len(occupied) == 0 {
		return core.Tau
	}

	sort.Slice(occupied, func(i, j int) bool { return occupied[i].start < occupied[j].start })

	merged := occupied[:1]
	for _, iv := range occupied[1:] {
		last := &merged[len(merged)-1]
		if iv.start <= last.end {
			if iv.end > last.end {
				last.end = iv.end
			}
			continue
		}
		merged = append(merged, iv)
	}

	widest := float32(0)
	for i := 1; i < len(merged); i++ {
		if gap := merged[i].start - merged[i-1].end; gap > widest {
			widest = gap
		}
	}
	// Gap across the -π/π seam.
	seam := (core.Pi - merged[len(merged)-1].end) + (merged[0].start + core.Pi)
	if seam > widest {
		widest = seam
	}
	return widest
}

// densityOK bounds the fraction of high-threat blocks per ring.
func densityOK(blocks []Block, tun *config.Tuning) bool {
	total := make(map[float32]int)
	threat := make(map[float32]int)
	for i := range blocks {
		r := blocks[i].Arc.Radius
		total[r]++
		if blocks[i].Kind.HighThreat() {
			threat[r]++
		}
	}
	for r, n := range total {
		if n == 0 {
			continue
		}
		if float32(threat[r])/float32(n) > tun.Wave.MaxThreatDensity {
			return false
		}
	}
	return true
}

func kindCountsOK(blocks []Block, tun *config.Tuning) bool {
	explosive, magnets, portals := 0, 0, 0
	for i := range blocks {
		switch blocks[i].Kind {
		case KindExplosive:
			explosive++
		case KindMagnet:
			magnets++
		case KindPortal:
			portals++
		}
	}
	return explosive <= tun.Wave.MaxExplosive &&
		magnets <= tun.Wave.MaxMagnets &&
		portals <= tun.Wave.MaxPortalPairs*2
}

// radiiLegal rejects placements that reach into the hazard or past the wall.
func radiiLegal(blocks []Block, tun *config.Tuning) bool {
	for i := range blocks {
		a := blocks[i].Arc
		if a.Radius < tun.Wave.MinBlockRadius ||
			a.InnerRadius() <= tun.Arena.HazardRadius ||
			a.OuterRadius() >= tun.Arena.OuterRadius {
			return false
		}
	}
	return true
}

// noAdjacentExplosives forbids two explosive blocks sitting next to each
// other in the same ring, which would trivialize the wave via one chain.
func noAdjacentExplosives(blocks []Block) bool {
	rings := make(map[float32][]int)
	for i := range blocks {
		r := blocks[i].Arc.Radius
		rings[r] = append(rings[r], i)
	}
	for _, idxs := range rings {
		if len(idxs) < 2 {
			continue
		}
		sort.Slice(idxs, func(a, b int) bool {
			return blocks[idxs[a]].Arc.MidAngle() < blocks[idxs[b]].Arc.MidAngle()
		})
		for k := range idxs {
			cur := blocks[idxs[k]]
			next := blocks[idxs[(k+1)%len(idxs)]]
			if cur.Kind == KindExplosive && next.Kind == KindExplosive {
				return false
			}
		}
	}
	return true
}
