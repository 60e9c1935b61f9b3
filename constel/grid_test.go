package constel

import (
	"math"
	"testing"
)

func identity(p Vec2) Vec2 { return p }

func noneClaimed(int) bool { return false }

func TestRebuildDiscardsBadProjections(t *testing.T) {
	ix := newClusterIndex(4, 0.1)
	positions := []Vec2{
		{0, 0},                 // kept
		{math.NaN(), 0},        // non-finite
		{math.Inf(1), 0.5},     // non-finite
		{2.0, 0},               // outside padded box
		{0, -3.0},              // outside padded box
		{1.05, 1.05},           // inside padding
		{-0.9, 0.9},            // kept
	}
	ix.rebuild(positions, noneClaimed, identity)

	total := 0
	for _, cell := range ix.cells {
		total += len(cell)
	}
	if total != 3 {
		t.Fatalf("indexed particles = %d, want 3", total)
	}
}

func TestRebuildSkipsClaimed(t *testing.T) {
	ix := newClusterIndex(4, 0.1)
	positions := []Vec2{{0, 0}, {0.1, 0}, {0.2, 0}}
	claimed := func(i int) bool { return i == 1 }
	ix.rebuild(positions, claimed, identity)

	total := 0
	for _, cell := range ix.cells {
		total += len(cell)
	}
	if total != 2 {
		t.Fatalf("indexed particles = %d, want 2", total)
	}
}

func TestCandidatesRequireMinimumCount(t *testing.T) {
	ix := newClusterIndex(4, 0.1)
	// Five particles clustered near the origin, one alone in a corner.
	positions := []Vec2{
		{-0.05, -0.05}, {0.05, -0.05}, {0, 0.05}, {-0.02, 0.02}, {0.03, 0.01},
		{-0.95, -0.95},
	}
	ix.rebuild(positions, noneClaimed, identity)

	cands := ix.candidates(5)
	if len(cands) == 0 {
		t.Fatalf("expected at least one candidate window")
	}
	for _, c := range cands {
		if len(c.members) < 5 {
			t.Fatalf("candidate has %d members, want >= 5", len(c.members))
		}
		if c.centroid.Len() > 0.2 {
			t.Fatalf("candidate centroid %v too far from the cluster", c.centroid)
		}
	}

	if cands = ix.candidates(7); len(cands) != 0 {
		t.Fatalf("got %d candidates with threshold 7, want 0", len(cands))
	}
}

func TestCandidatesEmptyOnSparseScreen(t *testing.T) {
	ix := newClusterIndex(6, 0.1)
	ix.rebuild([]Vec2{{0.5, 0.5}}, noneClaimed, identity)
	if cands := ix.candidates(3); len(cands) != 0 {
		t.Fatalf("got %d candidates from a single particle, want 0", len(cands))
	}
}
