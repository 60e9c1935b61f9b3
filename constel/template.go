package constel

// Template is one catalog shape used as a matching target: an ordered set of
// local 2D points plus the edges drawn between them. Points are stored
// centered on their centroid and rescaled so the maximum pairwise distance is
// exactly 1; Span records the shape's size relative to the largest catalog
// entry so selection can compensate small shapes' matching advantage.
// Templates are immutable and shared across all live instances.
type Template struct {
	Name   string
	Points []Vec2
	Edges  [][2]int
	Span   float64
	Stars  int

	// matchOrder lists point indices sorted by decreasing distance from the
	// shape center. Outer points are assigned first so orientation is fixed
	// before ambiguous central matches can corrupt it.
	matchOrder []int
}

// newTemplate centers and unit-scales the sketch points, returning the
// template together with its raw sketch span for catalog-relative sizing.
func newTemplate(name string, pts []Vec2, edges [][2]int) (Template, float64) {
	var c Vec2
	for _, p := range pts {
		c = c.Add(p)
	}
	c = c.Scale(1 / float64(len(pts)))

	centered := make([]Vec2, len(pts))
	for i, p := range pts {
		centered[i] = p.Sub(c)
	}
	rawSpan := 0.0
	for i := 0; i < len(centered); i++ {
		for j := i + 1; j < len(centered); j++ {
			if d := centered[i].Dist(centered[j]); d > rawSpan {
				rawSpan = d
			}
		}
	}
	for i := range centered {
		centered[i] = centered[i].Scale(1 / rawSpan)
	}

	order := make([]int, len(centered))
	for i := range order {
		order[i] = i
	}
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && centered[order[j]].Len() > centered[order[j-1]].Len(); j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}

	return Template{
		Name:       name,
		Points:     centered,
		Edges:      edges,
		Stars:      len(centered),
		matchOrder: order,
	}, rawSpan
}

// DefaultCatalog returns the built-in constellation shapes. Sketch
// coordinates are rough sky proportions; exact astrometry is irrelevant to
// matching, only the relative geometry matters.
func DefaultCatalog() []Template {
	type sketch struct {
		name  string
		pts   []Vec2
		edges [][2]int
	}
	sketches := []sketch{
		{
			name:  "Triangulum",
			pts:   []Vec2{{0, 0}, {1.4, 0.4}, {0.5, 1.6}},
			edges: [][2]int{{0, 1}, {1, 2}, {2, 0}},
		},
		{
			name:  "Cassiopeia",
			pts:   []Vec2{{0, 0}, {1, 0.9}, {2, 0.2}, {3, 1.0}, {4, 0.35}},
			edges: [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}},
		},
		{
			name: "Cygnus",
			pts: []Vec2{
				{0, 2.2}, {0, 1.0}, {0.3, -1.6}, {1.4, 0.6}, {-1.3, 1.5},
			},
			edges: [][2]int{{0, 1}, {1, 2}, {3, 1}, {1, 4}},
		},
		{
			name: "Lyra",
			pts: []Vec2{
				{0, 1.5}, {0.3, 0.9}, {0.9, 0.2}, {0.7, -0.6}, {0.1, -0.5},
			},
			edges: [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 1}},
		},
		{
			name: "Ursa Major",
			pts: []Vec2{
				{0, 0.3}, {1.0, 0}, {1.9, 0.1}, {2.7, 0.35},
				{2.8, 1.3}, {3.9, 1.25}, {3.85, 0.25},
			},
			edges: [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 6}, {6, 3}},
		},
		{
			name: "Orion",
			pts: []Vec2{
				{0.4, 2.0}, {-1.0, 1.8}, {0.2, 0.2}, {-0.2, 0},
				{-0.6, -0.2}, {0.5, -1.9}, {-1.1, -2.1},
			},
			edges: [][2]int{{0, 1}, {0, 2}, {1, 4}, {2, 3}, {3, 4}, {2, 5}, {4, 6}},
		},
	}

	catalog := make([]Template, 0, len(sketches))
	rawSpans := make([]float64, 0, len(sketches))
	maxSpan := 0.0
	for _, s := range sketches {
		t, raw := newTemplate(s.name, s.pts, s.edges)
		catalog = append(catalog, t)
		rawSpans = append(rawSpans, raw)
		if raw > maxSpan {
			maxSpan = raw
		}
	}
	for i := range catalog {
		catalog[i].Span = rawSpans[i] / maxSpan
	}
	return catalog
}

// minCatalogStars returns the smallest star count in the catalog, used both
// as the candidate-block floor and the complexity-bias reference.
func minCatalogStars(catalog []Template) int {
	min := catalog[0].Stars
	for _, t := range catalog[1:] {
		if t.Stars < min {
			min = t.Stars
		}
	}
	return min
}
