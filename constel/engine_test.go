package constel

import (
	"math"
	"math/rand"
	"testing"
)

// engineConfig is a compact search setup matched to hand-placed particles in
// identity-projected space (world == NDC).
func engineConfig() Config {
	cfg := DefaultConfig()
	cfg.GridRes = 4
	cfg.MinBlockParticles = 3
	cfg.ScaleVariants = []float64{0.2}
	cfg.RotationSteps = 4
	cfg.QualityThreshold = 0.4
	cfg.SearchInterval = 1000 // one search at t=0, then nothing
	cfg.WrapThreshold = 50
	return cfg
}

func TestEngineSpawnsFromExactCluster(t *testing.T) {
	cfg := engineConfig()
	tpl := triTemplate()
	positions := placeExact(tpl, 0, 0.2, Vec2{0, 0})
	velocities := make([]Vec2, len(positions))
	eng := NewEngine(cfg, []Template{tpl}, positions, velocities, rand.New(rand.NewSource(1)))

	var spawned string
	eng.SpawnListener = func(name string) { spawned = name }

	eng.Advance(0, 1.0/60, identity)
	if eng.LiveCount() != 1 {
		t.Fatalf("live count after exact cluster = %d, want 1", eng.LiveCount())
	}
	if spawned != "tri" {
		t.Fatalf("spawn listener got %q, want \"tri\"", spawned)
	}
	for i := range positions {
		if !eng.claims.isClaimed(i) {
			t.Fatalf("particle %d not claimed after spawn", i)
		}
	}

	c := eng.live[0]
	if len(c.particles) != tpl.Stars {
		t.Fatalf("claimed particles = %d, want %d", len(c.particles), tpl.Stars)
	}
	if c.phase != PhaseForming {
		t.Fatalf("fresh constellation phase = %d, want Forming", c.phase)
	}
}

func TestEngineDeclinesOnSparseOrIncompatibleScreen(t *testing.T) {
	cfg := engineConfig()
	tpl := triTemplate()

	// Sparse: a single drifting particle.
	positions := []Vec2{{0, 0}}
	eng := NewEngine(cfg, []Template{tpl}, positions, make([]Vec2, 1), rand.New(rand.NewSource(1)))
	eng.Advance(0, 1.0/60, identity)
	if eng.LiveCount() != 0 {
		t.Fatalf("spawned from a single particle")
	}

	// Dense but geometrically incompatible: a tight clump.
	positions = []Vec2{{0, 0}, {0.001, 0}, {0.002, 0}, {0.001, 0.001}}
	eng = NewEngine(cfg, []Template{tpl}, positions, make([]Vec2, 4), rand.New(rand.NewSource(1)))
	eng.Advance(0, 1.0/60, identity)
	if eng.LiveCount() != 0 {
		t.Fatalf("spawned from an incompatible clump")
	}
}

func TestEngineRespectsCapacity(t *testing.T) {
	cfg := engineConfig()
	cfg.MaxConstellations = 1
	cfg.SearchInterval = 0.1
	tpl := triTemplate()

	// Two exact clusters in opposite screen halves.
	a := placeExact(tpl, 0, 0.2, Vec2{-0.5, -0.5})
	b := placeExact(tpl, 0, 0.2, Vec2{0.5, 0.5})
	positions := append(append([]Vec2{}, a...), b...)
	velocities := make([]Vec2, len(positions))
	eng := NewEngine(cfg, []Template{tpl}, positions, velocities, rand.New(rand.NewSource(7)))

	for i := 0; i < 30; i++ {
		eng.Advance(float64(i)*0.1, 0.1, identity)
		if eng.LiveCount() > 1 {
			t.Fatalf("live count = %d exceeds max 1", eng.LiveCount())
		}
	}
	if eng.LiveCount() != 1 {
		t.Fatalf("live count = %d, want 1", eng.LiveCount())
	}
}

func TestEngineClaimsDisjointAcrossConstellations(t *testing.T) {
	cfg := engineConfig()
	cfg.MaxConstellations = 2
	cfg.SearchInterval = 0.1
	tpl := triTemplate()

	a := placeExact(tpl, 0, 0.2, Vec2{-0.5, -0.5})
	b := placeExact(tpl, 0, 0.2, Vec2{0.5, 0.5})
	positions := append(append([]Vec2{}, a...), b...)
	velocities := make([]Vec2, len(positions))
	eng := NewEngine(cfg, []Template{tpl}, positions, velocities, rand.New(rand.NewSource(7)))

	for i := 0; i < 30 && eng.LiveCount() < 2; i++ {
		eng.Advance(float64(i)*0.1, 0.1, identity)
	}
	if eng.LiveCount() != 2 {
		t.Fatalf("live count = %d, want 2", eng.LiveCount())
	}
	seen := map[int]bool{}
	for _, c := range eng.live {
		for _, p := range c.particles {
			if seen[p] {
				t.Fatalf("particle %d claimed by two constellations", p)
			}
			seen[p] = true
		}
	}
}

func TestEngineDissolutionReleasesClaimsExactlyOnce(t *testing.T) {
	cfg := engineConfig()
	cfg.FadeDuration = 0.5
	tpl := triTemplate()
	positions := placeExact(tpl, 0, 0.2, Vec2{0, 0})
	velocities := make([]Vec2, len(positions))
	eng := NewEngine(cfg, []Template{tpl}, positions, velocities, rand.New(rand.NewSource(1)))

	eng.Advance(0, 1.0/60, identity)
	if eng.LiveCount() != 1 {
		t.Fatalf("no spawn to dissolve")
	}

	// A boundary wrap makes displacement implausible; the constellation must
	// fade immediately and then dissolve on the spread term.
	positions[0].X += 100
	eng.Advance(0.1, 0.1, identity)
	if eng.live[0].phase != PhaseFading {
		t.Fatalf("phase after wrap = %d, want Fading", eng.live[0].phase)
	}
	eng.Advance(0.2, 0.1, identity)

	if eng.LiveCount() != 0 {
		t.Fatalf("live count after dissolve = %d, want 0", eng.LiveCount())
	}
	if eng.claims.count != 0 {
		t.Fatalf("claim count after dissolve = %d, want 0", eng.claims.count)
	}
	for i := range positions {
		if eng.claims.isClaimed(i) {
			t.Fatalf("particle %d leaked a claim", i)
		}
	}
}

func TestEngineBoostRaisedOnlyForClaimed(t *testing.T) {
	cfg := engineConfig()
	tpl := triTemplate()
	positions := placeExact(tpl, 0, 0.2, Vec2{0, 0})
	positions = append(positions, Vec2{0.8, 0.8}) // bystander
	velocities := make([]Vec2, len(positions))
	eng := NewEngine(cfg, []Template{tpl}, positions, velocities, rand.New(rand.NewSource(1)))

	eng.Advance(0, 1.0/60, identity)
	eng.Advance(1.0/60, 1.0/60, identity)

	for i := 0; i < 3; i++ {
		if eng.Boost[i] <= 1 {
			t.Fatalf("claimed particle %d boost = %f, want > 1", i, eng.Boost[i])
		}
		if eng.Boost[i] > float32(cfg.StarBoostMax) {
			t.Fatalf("boost %f exceeds StarBoostMax", eng.Boost[i])
		}
	}
	if eng.Boost[3] != 1 {
		t.Fatalf("bystander boost = %f, want 1", eng.Boost[3])
	}
}

func TestEngineLifecycleNeverRegressesAndOpacityBounded(t *testing.T) {
	cfg := engineConfig()
	cfg.SearchInterval = 0.5
	cfg.MaxConstellations = 2
	cfg.FadeDuration = 1
	cfg.SpreadFadeStart = 1.3
	cfg.SpreadDissolve = 1.6
	tpl := triTemplate()
	positions := placeExact(tpl, 0, 0.2, Vec2{0, 0})
	velocities := make([]Vec2, len(positions))
	rng := rand.New(rand.NewSource(3))
	eng := NewEngine(cfg, []Template{tpl}, positions, velocities, rng)

	lastPhase := map[*constellation]Phase{}
	for i := 0; i < 600; i++ {
		// Free drift plus the engine's own repulsion impulses.
		for j := range positions {
			velocities[j].X += (rng.Float64() - 0.5) * 0.001
			velocities[j].Y += (rng.Float64() - 0.5) * 0.001
			positions[j] = positions[j].Add(velocities[j])
		}
		eng.Advance(float64(i)/60, 1.0/60, identity)

		if eng.LiveCount() > cfg.MaxConstellations {
			t.Fatalf("frame %d: live count %d exceeds max", i, eng.LiveCount())
		}
		for _, c := range eng.live {
			if c.opacity < 0 || c.opacity > 1 {
				t.Fatalf("frame %d: opacity %f out of bounds", i, c.opacity)
			}
			if prev, seen := lastPhase[c]; seen && c.phase < prev {
				t.Fatalf("frame %d: phase regressed %d -> %d", i, prev, c.phase)
			}
			lastPhase[c] = c.phase
		}
	}
}

func TestEngineDeterministicWithSeed(t *testing.T) {
	tpl := triTemplate()
	run := func() []int {
		cfg := engineConfig()
		positions := placeExact(tpl, 0, 0.2, Vec2{0.3, -0.2})
		velocities := make([]Vec2, len(positions))
		eng := NewEngine(cfg, []Template{tpl}, positions, velocities, rand.New(rand.NewSource(42)))
		eng.Advance(0, 1.0/60, identity)
		if eng.LiveCount() != 1 {
			t.Fatalf("deterministic run failed to spawn")
		}
		return append([]int(nil), eng.live[0].particles...)
	}
	first := run()
	second := run()
	if len(first) != len(second) {
		t.Fatalf("assignment lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("assignment differs at %d: %d vs %d", i, first[i], second[i])
		}
	}
}

func TestEngineResetReleasesEverything(t *testing.T) {
	cfg := engineConfig()
	tpl := triTemplate()
	positions := placeExact(tpl, 0, 0.2, Vec2{0, 0})
	velocities := make([]Vec2, len(positions))
	eng := NewEngine(cfg, []Template{tpl}, positions, velocities, rand.New(rand.NewSource(1)))

	eng.Advance(0, 1.0/60, identity)
	if eng.LiveCount() != 1 {
		t.Fatalf("no spawn before reset")
	}
	eng.Reset()
	if eng.LiveCount() != 0 {
		t.Fatalf("live count after reset = %d, want 0", eng.LiveCount())
	}
	if eng.claims.count != 0 {
		t.Fatalf("claim count after reset = %d, want 0", eng.claims.count)
	}
	for i := range eng.Boost {
		if eng.Boost[i] != 1 {
			t.Fatalf("boost[%d] after reset = %f, want 1", i, eng.Boost[i])
		}
	}
	if math.IsNaN(float64(eng.Boost[0])) {
		t.Fatalf("boost corrupted")
	}
}
