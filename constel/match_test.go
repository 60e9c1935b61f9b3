package constel

import (
	"math"
	"testing"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.ScaleVariants = []float64{0.2}
	cfg.RotationSteps = 8
	cfg.QualityThreshold = 0.4
	return cfg
}

// placeExact positions one particle per template point using the given
// rotation angle, scale, and centroid, returning the NDC buffer.
func placeExact(t Template, angle, scale float64, centroid Vec2) []Vec2 {
	sin, cos := math.Sincos(angle)
	ndc := make([]Vec2, len(t.Points))
	for i, p := range t.Points {
		ndc[i] = Vec2{
			X: (p.X*cos-p.Y*sin)*scale + centroid.X,
			Y: (p.X*sin+p.Y*cos)*scale + centroid.Y,
		}
	}
	return ndc
}

func TestMatcherRecoversExactTransform(t *testing.T) {
	cfg := testConfig()
	tpl, _ := newTemplate("tri", []Vec2{{0, 0}, {1.4, 0.4}, {0.5, 1.6}}, [][2]int{{0, 1}, {1, 2}, {2, 0}})

	// Angle is one of the searched rotation steps, scale one of the variants.
	angle := 2 * math.Pi * 3 / float64(cfg.RotationSteps)
	centroid := Vec2{0.1, -0.2}
	ndc := placeExact(tpl, angle, 0.2, centroid)

	cand := candidate{members: []int{0, 1, 2}, centroid: centroid}
	m, ok := matchTemplate(tpl, cand, ndc, &cfg)
	if !ok {
		t.Fatalf("exact transform not matched")
	}
	if m.score > 1e-9 {
		t.Fatalf("score = %g, want ~0", m.score)
	}
	for i, p := range m.particles {
		if p != i {
			t.Fatalf("assignment[%d] = %d, want %d", i, p, i)
		}
	}
}

func TestMatcherIgnoresDistractors(t *testing.T) {
	cfg := testConfig()
	tpl, _ := newTemplate("tri", []Vec2{{0, 0}, {1.4, 0.4}, {0.5, 1.6}}, [][2]int{{0, 1}, {1, 2}, {2, 0}})
	centroid := Vec2{0, 0}
	ndc := placeExact(tpl, 0, 0.2, centroid)
	// Extra particles farther from the centroid than any template point.
	ndc = append(ndc, Vec2{0.4, 0.4}, Vec2{-0.45, 0.3})

	cand := candidate{members: []int{0, 1, 2, 3, 4}, centroid: centroid}
	m, ok := matchTemplate(tpl, cand, ndc, &cfg)
	if !ok {
		t.Fatalf("expected a match")
	}
	if m.score > 1e-9 {
		t.Fatalf("score = %g, want ~0", m.score)
	}
	for i, p := range m.particles {
		if p != i {
			t.Fatalf("assignment[%d] = %d, want %d", i, p, i)
		}
	}
}

func TestMatcherRejectsTooFewParticles(t *testing.T) {
	cfg := testConfig()
	tpl, _ := newTemplate("tri", []Vec2{{0, 0}, {1.4, 0.4}, {0.5, 1.6}}, [][2]int{{0, 1}, {1, 2}, {2, 0}})
	ndc := []Vec2{{0, 0}, {0.1, 0}}
	cand := candidate{members: []int{0, 1}, centroid: Vec2{0, 0}}
	if _, ok := matchTemplate(tpl, cand, ndc, &cfg); ok {
		t.Fatalf("matched with fewer particles than template stars")
	}
}

func TestMatcherRejectsIncompatibleGeometry(t *testing.T) {
	cfg := testConfig()
	tpl, _ := newTemplate("tri", []Vec2{{0, 0}, {1.4, 0.4}, {0.5, 1.6}}, [][2]int{{0, 1}, {1, 2}, {2, 0}})
	// A tight collinear clump cannot satisfy the residual bound at any
	// searched rotation without blowing the quality threshold.
	ndc := []Vec2{{0, 0}, {0.001, 0}, {0.002, 0}}
	cand := candidate{members: []int{0, 1, 2}, centroid: Vec2{0.001, 0}}
	if m, ok := matchTemplate(tpl, cand, ndc, &cfg); ok {
		t.Fatalf("matched incompatible geometry with score %g", m.score)
	}
}

func TestMatcherGuardsNonFinitePositions(t *testing.T) {
	cfg := testConfig()
	tpl, _ := newTemplate("tri", []Vec2{{0, 0}, {1.4, 0.4}, {0.5, 1.6}}, [][2]int{{0, 1}, {1, 2}, {2, 0}})
	ndc := []Vec2{{math.NaN(), 0}, {0.1, 0}, {0, 0.1}}
	cand := candidate{members: []int{0, 1, 2}, centroid: Vec2{0, 0}}
	// Must not match (one usable particle short) and must not panic.
	if _, ok := matchTemplate(tpl, cand, ndc, &cfg); ok {
		t.Fatalf("matched with a NaN particle position")
	}
}
