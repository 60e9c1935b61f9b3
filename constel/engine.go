package constel

import (
	"math/rand"

	"github.com/crazy3lf/colorconv"
)

// Engine owns every piece of live-pattern state: the template catalog, the
// claims table, the live constellation list, per-template cooldowns, and the
// per-particle brightness boosts. All mutation happens inside Advance, which
// the caller invokes once per frame after the drift simulation has moved the
// shared particle buffers; there is no locking because there is exactly one
// owner.
type Engine struct {
	cfg      Config
	catalog  []Template
	minStars int

	positions  []Vec2 // shared with the drift simulation, read-only here
	velocities []Vec2 // shared; Active-phase repulsion impulses land here

	// Boost is the per-particle brightness multiplier consumed by the
	// particle render step. Reset to 1 every frame, then raised to the
	// maximum requested across claiming constellations, never added.
	Boost []float32

	// SpawnListener, when set, is invoked with the template name each time a
	// new constellation forms.
	SpawnListener func(name string)

	claims        *claimSet
	live          []*constellation
	cooldownUntil []float64
	index         *clusterIndex
	rng           *rand.Rand
	nextSearch    float64
	projection    Projection // captured per Advance call
}

// NewEngine wires the engine to the shared particle buffers. The random
// source drives block sampling, template shuffling, weighted selection, and
// color generation; pass a fixed seed to reproduce exact selections.
func NewEngine(cfg Config, catalog []Template, positions, velocities []Vec2, rng *rand.Rand) *Engine {
	return &Engine{
		cfg:           cfg,
		catalog:       catalog,
		minStars:      minCatalogStars(catalog),
		positions:     positions,
		velocities:    velocities,
		Boost:         make([]float32, len(positions)),
		claims:        newClaimSet(len(positions)),
		cooldownUntil: make([]float64, len(catalog)),
		index:         newClusterIndex(cfg.GridRes, cfg.ScreenPad),
		rng:           rng,
	}
}

// Advance runs one frame: lifecycle updates for every live constellation,
// brightness boost production, pruning of dissolved instances, and — when the
// search interval has elapsed and capacity allows — at most one new spawn.
// now is elapsed simulation time in seconds; dt is the frame delta, consumed
// by the flash countdown only.
func (e *Engine) Advance(now, dt float64, project Projection) {
	e.projection = project
	for i := range e.Boost {
		e.Boost[i] = 1
	}

	for _, c := range e.live {
		c.advance(now, dt, e.positions, e.velocities, project, &e.cfg)
		if c.phase == PhaseDissolved {
			continue
		}
		b := float32(c.boost(&e.cfg))
		for _, p := range c.particles {
			if b > e.Boost[p] {
				e.Boost[p] = b
			}
		}
	}

	e.prune()

	if now >= e.nextSearch {
		e.nextSearch = now + e.cfg.SearchInterval
		if len(e.live) < e.cfg.MaxConstellations {
			e.search(now)
		}
	}
}

// prune removes dissolved constellations, releasing their claims and
// dropping their geometry together so dissolution is all-or-nothing.
func (e *Engine) prune() {
	kept := e.live[:0]
	for _, c := range e.live {
		if c.phase == PhaseDissolved {
			e.claims.release(c.particles)
			c.geom = nil
			continue
		}
		kept = append(kept, c)
	}
	e.live = kept
}

// search runs one cluster search tick: index the unclaimed particles, window
// them into candidate blocks, and let the selector pick a template fit. A
// sparse screen or a failed quality threshold simply spawns nothing.
func (e *Engine) search(now float64) {
	e.index.rebuild(e.positions, e.claims.isClaimed, e.projection)
	cands := e.index.candidates(e.cfg.MinBlockParticles)
	if len(cands) == 0 {
		return
	}
	pick, ok := e.selectPattern(cands, now)
	if !ok {
		return
	}
	particles := append([]int(nil), pick.fit.particles...)
	if !e.claims.claim(particles) {
		return
	}
	t := &e.catalog[pick.template]
	r, g, b := e.spawnColor()
	e.live = append(e.live, newConstellation(t, particles, e.positions, now, &e.cfg, r, g, b))
	e.cooldownUntil[pick.template] = now + e.cfg.CooldownSeconds
	if e.SpawnListener != nil {
		e.SpawnListener(t.Name)
	}
}

// spawnColor generates a pale random hue for a new constellation's lines.
func (e *Engine) spawnColor() (uint8, uint8, uint8) {
	hue := e.rng.Float64() * 360
	sat := 0.25 + 0.2*e.rng.Float64()
	r, g, b, err := colorconv.HSVToRGB(hue, sat, 1.0)
	if err != nil {
		return 255, 255, 255
	}
	return r, g, b
}

// Geometries appends the visible line geometries to dst and returns the
// extended slice, avoiding per-frame allocation in the renderer.
func (e *Engine) Geometries(dst []*Geometry) []*Geometry {
	for _, c := range e.live {
		if c.geom != nil {
			dst = append(dst, c.geom)
		}
	}
	return dst
}

// LiveCount reports the number of non-dissolved constellations.
func (e *Engine) LiveCount() int { return len(e.live) }

// liveCount reports the live instances of one catalog template.
func (e *Engine) liveCount(template int) int {
	n := 0
	for _, c := range e.live {
		if c.template == &e.catalog[template] {
			n++
		}
	}
	return n
}

// Reset tears the engine down deterministically: every claim is released and
// every geometry dropped in the same pass.
func (e *Engine) Reset() {
	for _, c := range e.live {
		e.claims.release(c.particles)
		c.geom = nil
		c.phase = PhaseDissolved
	}
	e.live = e.live[:0]
	for i := range e.Boost {
		e.Boost[i] = 1
	}
}
