package constel

import (
	"math"
	"sort"
)

// scored pairs a catalog template with its best bias-corrected score across
// the sampled candidate blocks.
type scored struct {
	template int
	fit      match
	adjusted float64
}

// selectPattern runs the matcher over a bounded random sample of candidate
// blocks and makes a weighted random pick among the best-scoring templates.
// Returns ok=false when nothing clears the quality threshold, in which case
// no constellation spawns this tick.
func (e *Engine) selectPattern(cands []candidate, now float64) (scored, bool) {
	sample := cands
	if len(sample) > e.cfg.MaxSampleBlocks {
		perm := e.rng.Perm(len(cands))
		sample = make([]candidate, e.cfg.MaxSampleBlocks)
		for i := range sample {
			sample[i] = cands[perm[i]]
		}
	}

	// Templates without a live instance are tried first, in shuffled order,
	// so variety is preserved when several fits are equally good.
	idle := make([]int, 0, len(e.catalog))
	busy := make([]int, 0, len(e.catalog))
	for ti := range e.catalog {
		if e.liveCount(ti) > 0 {
			busy = append(busy, ti)
		} else {
			idle = append(idle, ti)
		}
	}
	e.rng.Shuffle(len(idle), func(a, b int) { idle[a], idle[b] = idle[b], idle[a] })
	order := append(idle, busy...)

	var entries []scored
	for _, ti := range order {
		t := e.catalog[ti]
		best := match{score: math.Inf(1)}
		found := false
		for _, block := range sample {
			if m, ok := matchTemplate(t, block, e.index.ndc, &e.cfg); ok && m.score < best.score {
				best = m
				found = true
			}
		}
		if !found {
			continue
		}
		adj := best.score / e.spanBias(t) * e.complexityBias(t)
		if e.liveCount(ti) > 0 {
			adj += e.cfg.ActivePenalty
		}
		if remaining := e.cooldownRemaining(ti, now); remaining > 0 {
			adj += e.cfg.CooldownPenalty * remaining
		}
		entries = append(entries, scored{template: ti, fit: best, adjusted: adj})
	}
	if len(entries) == 0 {
		return scored{}, false
	}

	sort.Slice(entries, func(a, b int) bool { return entries[a].adjusted < entries[b].adjusted })
	if len(entries) > e.cfg.TopCandidates {
		entries = entries[:e.cfg.TopCandidates]
	}

	// Softmax-weighted sampling over (score - best) keeps the pick close to
	// the best fit without always choosing it.
	bestAdj := entries[0].adjusted
	weights := make([]float64, len(entries))
	total := 0.0
	for i, s := range entries {
		weights[i] = math.Exp(-(s.adjusted - bestAdj) / e.cfg.Temperature)
		total += weights[i]
	}
	r := e.rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r <= 0 {
			return entries[i], true
		}
	}
	return entries[len(entries)-1], true
}

// spanBias compensates smaller-span templates' natural matching advantage.
func (e *Engine) spanBias(t Template) float64 {
	return 0.6 + 0.4*t.Span
}

// complexityBias compensates simpler templates' advantage by shading complex
// shapes toward lower (better) adjusted scores.
func (e *Engine) complexityBias(t Template) float64 {
	return math.Sqrt(float64(e.minStars) / float64(t.Stars))
}

// cooldownRemaining reports the unexpired fraction of the template's
// post-spawn cooldown, in [0, 1].
func (e *Engine) cooldownRemaining(template int, now float64) float64 {
	until := e.cooldownUntil[template]
	if until <= now || e.cfg.CooldownSeconds <= 0 {
		return 0
	}
	return clampUnit((until - now) / e.cfg.CooldownSeconds)
}
