package constel

import "math"

// Phase is a live constellation's lifecycle state. Transitions only ever move
// forward: Forming -> Active -> Fading -> Dissolved.
type Phase uint8

const (
	PhaseForming Phase = iota
	PhaseActive
	PhaseFading
	PhaseDissolved
)

// Line is one constellation edge in world space. To already carries the
// edge's draw-in progress, so during Forming the segment visibly grows from
// From toward the destination particle.
type Line struct {
	From, To Vec2
}

// Geometry is the render-facing output of one live constellation: its edge
// segments, the combined line opacity, and the generated color.
type Geometry struct {
	Lines   []Line
	Opacity float64
	R, G, B uint8
}

// formingPhase holds the fields that only exist while edges draw in.
type formingPhase struct {
	progress   []float64 // per-edge draw progress, 0..1
	flashLeft  []float64 // per-edge one-shot flash countdown
	flashFired []bool
	rampSpan   float64 // opacity ramp length, seconds
}

// fadingPhase holds the fields that only exist while dissolving.
type fadingPhase struct {
	since float64 // simulation time the fade began
}

// constellation binds one template to an ordered set of claimed particles and
// drives them through the lifecycle. Particle order matches template point
// order, so edge endpoints index directly.
type constellation struct {
	template  *Template
	particles []int
	anchors   []Vec2 // frozen claim positions at formation
	maxAnchor float64
	bornAt    float64
	phase     Phase
	forming   *formingPhase
	fading    *fadingPhase
	opacity   float64
	spread    float64
	geom      *Geometry
}

// newConstellation freezes the anchor snapshot and starts the Forming phase.
func newConstellation(t *Template, particles []int, positions []Vec2, now float64, cfg *Config, r, g, b uint8) *constellation {
	anchors := make([]Vec2, len(particles))
	for i, p := range particles {
		anchors[i] = positions[p]
	}
	maxAnchor := 0.0
	for i := 0; i < len(anchors); i++ {
		for j := i + 1; j < len(anchors); j++ {
			if d := anchors[i].Dist(anchors[j]); d > maxAnchor {
				maxAnchor = d
			}
		}
	}
	edges := len(t.Edges)
	lastStart := float64(edges-1) * cfg.EdgeStagger
	ramp := lastStart + cfg.EdgeDraw
	if ramp > cfg.FormingCap {
		ramp = cfg.FormingCap
	}
	return &constellation{
		template:  t,
		particles: particles,
		anchors:   anchors,
		maxAnchor: maxAnchor,
		bornAt:    now,
		phase:     PhaseForming,
		forming: &formingPhase{
			progress:   make([]float64, edges),
			flashLeft:  make([]float64, edges),
			flashFired: make([]bool, edges),
			rampSpan:   ramp,
		},
		spread: 1,
		geom: &Geometry{
			Lines: make([]Line, edges),
			R:     r, G: g, B: b,
		},
	}
}

// advance runs one frame of the state machine and refreshes the output
// geometry. positions is read-only shared drift state; repulsion impulses are
// written into velocities during the Active phase.
func (c *constellation) advance(now, dt float64, positions, velocities []Vec2, project Projection, cfg *Config) {
	switch c.phase {
	case PhaseForming:
		c.advanceForming(now, dt, positions, cfg)
	case PhaseActive:
		c.advanceActive(now, positions, velocities, cfg)
	case PhaseFading:
		c.advanceFading(now, positions, cfg)
	case PhaseDissolved:
		return
	}

	// Fully drifted off-screen after the minimum lifetime forces a fade no
	// matter the phase.
	if c.phase != PhaseFading && c.phase != PhaseDissolved &&
		now-c.bornAt >= cfg.MinLifetime && c.offscreen(positions, project, cfg) {
		c.toFading(now)
	}

	if c.phase != PhaseDissolved {
		c.updateGeometry(positions, cfg)
	}
}

// advanceForming ramps edge draw progress and the overall opacity, firing the
// one-shot flash as each edge completes.
func (c *constellation) advanceForming(now, dt float64, positions []Vec2, cfg *Config) {
	f := c.forming
	for i := range f.flashLeft {
		if f.flashFired[i] && f.flashLeft[i] > 0 {
			f.flashLeft[i] -= dt
			if f.flashLeft[i] < 0 {
				f.flashLeft[i] = 0
			}
		}
	}
	age := now - c.bornAt
	done := true
	for i := range f.progress {
		start := float64(i) * cfg.EdgeStagger
		p := clampUnit((age - start) / cfg.EdgeDraw)
		f.progress[i] = p
		if p >= 1 && !f.flashFired[i] {
			f.flashFired[i] = true
			f.flashLeft[i] = cfg.FlashDuration
		}
		if p < 1 || !f.flashFired[i] || f.flashLeft[i] > 0 {
			done = false
		}
	}
	c.opacity = clampUnit(age / f.rampSpan)

	if c.wrapped(positions, cfg) {
		c.toFading(now)
		return
	}
	if done {
		c.phase = PhaseActive
		c.forming = nil
		c.opacity = 1
	}
}

// advanceActive holds opacity at 1, nudges claimed particles apart, and
// watches the spread ratio for the fade trigger.
func (c *constellation) advanceActive(now float64, positions, velocities []Vec2, cfg *Config) {
	c.opacity = 1
	centroid := c.liveCentroid(positions)
	for _, p := range c.particles {
		d := positions[p].Sub(centroid)
		l := d.Len()
		if l <= 0 {
			continue
		}
		// Per-frame impulse, matching the drift simulation's velocity
		// convention; deliberately not dt-scaled.
		velocities[p] = velocities[p].Add(d.Scale(cfg.Repulse / l))
	}
	c.spread = c.spreadRatio(positions)
	if c.spread >= cfg.SpreadFadeStart || c.wrapped(positions, cfg) {
		c.toFading(now)
	}
}

// advanceFading blends the spread-based and time-based opacity decays and
// dissolves once fully transparent.
func (c *constellation) advanceFading(now float64, positions []Vec2, cfg *Config) {
	c.spread = c.spreadRatio(positions)
	spreadOp := 1.0
	if c.spread >= cfg.SpreadFadeStart {
		spreadOp = clampUnit(1 - (c.spread-cfg.SpreadFadeStart)/(cfg.SpreadDissolve-cfg.SpreadFadeStart))
	}
	timeOp := clampUnit(1 - (now-c.fading.since)/cfg.FadeDuration)
	c.opacity = math.Min(spreadOp, timeOp)
	if c.opacity <= 0 {
		c.opacity = 0
		c.phase = PhaseDissolved
	}
}

// toFading moves any earlier phase into Fading exactly once.
func (c *constellation) toFading(now float64) {
	if c.phase == PhaseFading || c.phase == PhaseDissolved {
		return
	}
	c.phase = PhaseFading
	c.forming = nil
	c.fading = &fadingPhase{since: now}
}

// spreadRatio measures drift from the formation anchors relative to the
// shape's own scale: exactly 1 at formation, growing as particles separate.
func (c *constellation) spreadRatio(positions []Vec2) float64 {
	if c.maxAnchor <= 0 {
		return 1
	}
	sum := 0.0
	for i, p := range c.particles {
		sum += positions[p].Dist(c.anchors[i])
	}
	mean := sum / float64(len(c.particles))
	return 1 + mean/c.maxAnchor
}

// wrapped detects a drift-simulation boundary wrap: a claimed particle whose
// position jumped implausibly far from its anchor on either axis. Raw
// displacement is meaningless after a wrap, so the constellation fades
// immediately instead of computing a nonsensical spread.
func (c *constellation) wrapped(positions []Vec2, cfg *Config) bool {
	for i, p := range c.particles {
		d := positions[p].Sub(c.anchors[i])
		if math.Abs(d.X) > cfg.WrapThreshold || math.Abs(d.Y) > cfg.WrapThreshold {
			return true
		}
	}
	return false
}

// offscreen reports whether every claimed particle is outside the loosely
// padded screen box.
func (c *constellation) offscreen(positions []Vec2, project Projection, cfg *Config) bool {
	limit := 1 + cfg.OffscreenPad
	for _, p := range c.particles {
		n := project(positions[p])
		if !n.IsFinite() {
			continue
		}
		if n.X >= -limit && n.X <= limit && n.Y >= -limit && n.Y <= limit {
			return false
		}
	}
	return true
}

// liveCentroid is the current mean position of the claimed particles.
func (c *constellation) liveCentroid(positions []Vec2) Vec2 {
	var sum Vec2
	for _, p := range c.particles {
		sum = sum.Add(positions[p])
	}
	return sum.Scale(1 / float64(len(c.particles)))
}

// updateGeometry rebuilds the edge segments from live particle positions and
// folds the dim factor and flash multiplier into the line opacity.
func (c *constellation) updateGeometry(positions []Vec2, cfg *Config) {
	flashMul := 1.0
	for i, edge := range c.template.Edges {
		from := positions[c.particles[edge[0]]]
		to := positions[c.particles[edge[1]]]
		progress := 1.0
		if c.forming != nil {
			progress = c.forming.progress[i]
			if c.forming.flashLeft[i] > 0 {
				m := 1 + (cfg.FlashPeak-1)*(c.forming.flashLeft[i]/cfg.FlashDuration)
				if m > flashMul {
					flashMul = m
				}
			}
		}
		c.geom.Lines[i] = Line{From: from, To: from.Lerp(to, progress)}
	}
	op := c.opacity * cfg.DimFactor * flashMul
	if op > 1 {
		op = 1
	}
	c.geom.Opacity = op
}

// boost is the brightness multiplier this constellation requests for its
// claimed particles.
func (c *constellation) boost(cfg *Config) float64 {
	return 1 + (cfg.StarBoostMax-1)*c.opacity
}
