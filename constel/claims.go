package constel

// claimSet tracks which particle indices are committed to a live
// constellation. A particle belongs to at most one constellation at a time;
// that invariant is enforced here, at the claim boundary, rather than by
// membership checks scattered through update code.
type claimSet struct {
	claimed []bool
	count   int
}

func newClaimSet(particles int) *claimSet {
	return &claimSet{claimed: make([]bool, particles)}
}

// isClaimed reports whether particle i is committed to a constellation.
func (c *claimSet) isClaimed(i int) bool {
	return i >= 0 && i < len(c.claimed) && c.claimed[i]
}

// claim commits every index atomically. If any index is already claimed or
// out of range, nothing is claimed and claim returns false.
func (c *claimSet) claim(indices []int) bool {
	for _, i := range indices {
		if i < 0 || i >= len(c.claimed) || c.claimed[i] {
			return false
		}
	}
	for _, i := range indices {
		c.claimed[i] = true
	}
	c.count += len(indices)
	return true
}

// release returns every index to the unclaimed pool. Releasing an index that
// is not claimed is a bug in the lifecycle manager; it is ignored rather than
// corrupting the count.
func (c *claimSet) release(indices []int) {
	for _, i := range indices {
		if i < 0 || i >= len(c.claimed) || !c.claimed[i] {
			continue
		}
		c.claimed[i] = false
		c.count--
	}
}
