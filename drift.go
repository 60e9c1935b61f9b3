package main

import (
	"math"
	"math/rand"
	"sync"

	"stardrift/constel"
)

// swarm is the drift simulation: a flat pair of position/velocity buffers
// shared by reference with the detection engine, integrated once per frame
// with a per-frame velocity convention (no dt scaling). Particles leaving the
// world rectangle wrap to the opposite edge; the engine detects the resulting
// position jumps on claimed particles and fades the constellation out.
type swarm struct {
	pos []constel.Vec2
	vel []constel.Vec2
	rng *rand.Rand
}

// newSwarm scatters count particles uniformly with small random headings.
func newSwarm(count int, rng *rand.Rand) *swarm {
	s := &swarm{
		pos: make([]constel.Vec2, count),
		vel: make([]constel.Vec2, count),
		rng: rng,
	}
	for i := range s.pos {
		s.pos[i] = constel.Vec2{X: rng.Float64() * worldW, Y: rng.Float64() * worldH}
		angle := rng.Float64() * 2 * math.Pi
		speed := driftInitSpeed * (0.4 + 0.6*rng.Float64())
		s.vel[i] = constel.Vec2{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed}
	}
	return s
}

// step integrates one frame of drift. Jitter is drawn up front on the single
// owning goroutine so the worker split stays deterministic for a given seed;
// workers then integrate disjoint ranges and join before anything else reads
// the buffers.
func (s *swarm) step() {
	jitter := make([]constel.Vec2, len(s.vel))
	for i := range jitter {
		angle := s.rng.Float64() * 2 * math.Pi
		jitter[i] = constel.Vec2{X: math.Cos(angle) * driftJitter, Y: math.Sin(angle) * driftJitter}
	}

	chunk := (len(s.pos) + driftThreads - 1) / driftThreads
	var wg sync.WaitGroup
	for t := 0; t < driftThreads; t++ {
		lo := t * chunk
		if lo >= len(s.pos) {
			break
		}
		hi := lo + chunk
		if hi > len(s.pos) {
			hi = len(s.pos)
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				v := s.vel[i].Add(jitter[i]).Scale(driftDamping)
				s.vel[i] = v
				p := s.pos[i].Add(v)
				if p.X < 0 {
					p.X += worldW
				} else if p.X >= worldW {
					p.X -= worldW
				}
				if p.Y < 0 {
					p.Y += worldH
				} else if p.Y >= worldH {
					p.Y -= worldH
				}
				s.pos[i] = p
			}
		}(lo, hi)
	}
	wg.Wait()
}
