package constel

import (
	"math"
	"sort"
)

// worstResidualFactor bounds the single worst point-to-particle distance a
// transform may have, expressed as a multiple of the transform's scale.
const worstResidualFactor = 2.4

// match is a successful shape fit: one claimed-to-be particle index per
// template point, in template point order, plus the fit's normalized score
// (RMS residual divided by scale; lower is better).
type match struct {
	particles []int
	score     float64
}

// matchTemplate tries to remap the candidate block onto the template by
// searching a fixed set of scale variants times evenly spaced rotation
// angles. For each variant the template points are assigned greedily to the
// nearest unassigned pool particle, outer points first. Returns the best
// scoring assignment, or ok=false when the block is geometrically
// incompatible with the template.
func matchTemplate(t Template, cand candidate, ndc []Vec2, cfg *Config) (match, bool) {
	poolSize := cfg.PoolMultiplier * t.Stars
	if poolSize > len(cand.members) {
		poolSize = len(cand.members)
	}
	if poolSize < t.Stars {
		return match{}, false
	}

	// Distance-sorted pool of particles nearest the target centroid.
	pool := make([]int, len(cand.members))
	copy(pool, cand.members)
	sort.Slice(pool, func(a, b int) bool {
		return ndc[pool[a]].Dist(cand.centroid) < ndc[pool[b]].Dist(cand.centroid)
	})
	pool = pool[:poolSize]

	best := match{score: math.Inf(1)}
	transformed := make([]Vec2, t.Stars)
	assigned := make([]int, t.Stars)
	used := make([]bool, poolSize)

	for _, scale := range cfg.ScaleVariants {
		for step := 0; step < cfg.RotationSteps; step++ {
			angle := 2 * math.Pi * float64(step) / float64(cfg.RotationSteps)
			sin, cos := math.Sincos(angle)
			for i, p := range t.Points {
				transformed[i] = Vec2{
					X: (p.X*cos-p.Y*sin)*scale + cand.centroid.X,
					Y: (p.X*sin+p.Y*cos)*scale + cand.centroid.Y,
				}
			}

			for i := range used {
				used[i] = false
			}
			sumSq := 0.0
			worst := 0.0
			ok := true
			for _, pi := range t.matchOrder {
				target := transformed[pi]
				nearest := -1
				nearestDist := math.Inf(1)
				for k, particle := range pool {
					if used[k] {
						continue
					}
					d := ndc[particle].Dist(target)
					if math.IsNaN(d) {
						continue
					}
					if d < nearestDist {
						nearest = k
						nearestDist = d
					}
				}
				if nearest < 0 || math.IsInf(nearestDist, 0) {
					ok = false
					break
				}
				used[nearest] = true
				assigned[pi] = pool[nearest]
				sumSq += nearestDist * nearestDist
				if nearestDist > worst {
					worst = nearestDist
				}
			}
			if !ok || worst > worstResidualFactor*scale {
				continue
			}
			score := math.Sqrt(sumSq/float64(t.Stars)) / scale
			if score < best.score {
				best.score = score
				best.particles = append(best.particles[:0], assigned...)
			}
		}
	}

	if best.particles == nil || best.score > cfg.QualityThreshold {
		return match{}, false
	}
	return best, true
}
