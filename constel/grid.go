package constel

// Projection maps a world-space position to normalized device coordinates,
// where the visible screen covers [-1, 1] on both axes. The camera is owned
// by the caller; the engine only ever sees this function.
type Projection func(world Vec2) Vec2

// candidate is one cluster candidate block: a set of unclaimed particle
// indices dense enough to host the smallest template, plus its NDC centroid.
// No geometric matching has happened yet; this is a cheap pre-filter.
type candidate struct {
	members  []int
	centroid Vec2
}

// clusterIndex buckets the on-screen unclaimed particles into a uniform grid
// over padded NDC space. It is rebuilt from scratch on every search tick,
// which is acceptable because ticks are infrequent relative to frame rate.
type clusterIndex struct {
	res   int
	pad   float64
	cells [][]int
	ndc   []Vec2
}

func newClusterIndex(res int, pad float64) *clusterIndex {
	return &clusterIndex{
		res:   res,
		pad:   pad,
		cells: make([][]int, res*res),
	}
}

// cellCoord maps one NDC axis value to a clamped cell coordinate.
func (ix *clusterIndex) cellCoord(v float64) int {
	span := 2 * (1 + ix.pad)
	c := int((v + 1 + ix.pad) / span * float64(ix.res))
	if c < 0 {
		c = 0
	} else if c >= ix.res {
		c = ix.res - 1
	}
	return c
}

// rebuild projects every unclaimed particle and buckets the survivors.
// Non-finite projections and anything outside the padded screen box are
// discarded.
func (ix *clusterIndex) rebuild(positions []Vec2, claimed func(int) bool, project Projection) {
	for i := range ix.cells {
		ix.cells[i] = ix.cells[i][:0]
	}
	if len(ix.ndc) != len(positions) {
		ix.ndc = make([]Vec2, len(positions))
	}
	limit := 1 + ix.pad
	for i, p := range positions {
		if claimed(i) {
			continue
		}
		n := project(p)
		if !n.IsFinite() {
			continue
		}
		if n.X < -limit || n.X > limit || n.Y < -limit || n.Y > limit {
			continue
		}
		ix.ndc[i] = n
		cell := ix.cellCoord(n.Y)*ix.res + ix.cellCoord(n.X)
		ix.cells[cell] = append(ix.cells[cell], i)
	}
}

// candidates slides a 2x2 cell window across the grid and keeps windows
// holding at least minCount particles. A sparse screen simply yields zero
// candidates.
func (ix *clusterIndex) candidates(minCount int) []candidate {
	var out []candidate
	for cy := 0; cy < ix.res-1; cy++ {
		for cx := 0; cx < ix.res-1; cx++ {
			n := len(ix.cells[cy*ix.res+cx]) +
				len(ix.cells[cy*ix.res+cx+1]) +
				len(ix.cells[(cy+1)*ix.res+cx]) +
				len(ix.cells[(cy+1)*ix.res+cx+1])
			if n < minCount {
				continue
			}
			members := make([]int, 0, n)
			members = append(members, ix.cells[cy*ix.res+cx]...)
			members = append(members, ix.cells[cy*ix.res+cx+1]...)
			members = append(members, ix.cells[(cy+1)*ix.res+cx]...)
			members = append(members, ix.cells[(cy+1)*ix.res+cx+1]...)
			var c Vec2
			for _, m := range members {
				c = c.Add(ix.ndc[m])
			}
			c = c.Scale(1 / float64(n))
			out = append(out, candidate{members: members, centroid: c})
		}
	}
	return out
}
