package physics

// WellCollision returns the index of the first well, in slice order, whose
// center lies closer than threshold to p. The well radii are ignored.
func WellCollision(p *Particle, wells []Well, threshold float64) (int, bool) {
	for i := range wells {
		if p.Pos.Dist(wells[i].Pos) < threshold {
			return i, true
		}
	}
	return -1, false
}

// BodyCollision returns the pair index (see Pair) of the first pair of bodies
// whose centers lie closer than the sum of their radii.
func BodyCollision(bodies []Body) (int, bool) {
	k := 0
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			if bodies[i].Pos.Dist(bodies[j].Pos) < bodies[i].Radius+bodies[j].Radius {
				return k, true
			}
			k++
		}
	}
	return -1, false
}

// Pairs returns the number of distinct pairs in a system of n bodies.
func Pairs(n int) int {
	return n * (n - 1) / 2
}

// Pair returns the two body indices, i < j, of the kth pair of a system of n
// bodies. Pairs are ordered (0, 1), (0, 2), ..., (0, n-1), (1, 2), ...
func Pair(n, k int) (i, j int) {
	for i = 0; i < n; i++ {
		row := n - i - 1
		if k < row {
			return i, i + 1 + k
		}
		k -= row
	}
	panic("Pair index out of range.")
}
