package grid

// Intner is the subset of a random source the grid needs.
type Intner interface {
	Intn(n int) int
}

// RandomPos returns a uniformly random tile.
func (t Topology) RandomPos(r Intner) Pos {
	return t.PosOf(r.Intn(t.NumTiles()))
}

// RandomPosFiltered returns a random tile for which filter returns true.
// It first tries a bounded number of random picks and then falls back to
// enumerating every matching tile. The second return value is false when
// no tile matches. A nil filter accepts every tile.
func (t Topology) RandomPosFiltered(r Intner, filter func(Pos) bool) (Pos, bool) {
	if filter == nil {
		return t.RandomPos(r), true
	}
	maxTries := t.NumTiles() / 10
	for tries := 0; tries < maxTries; tries++ {
		p := t.RandomPos(r)
		if filter(p) {
			return p, true
		}
	}

	var matches []int
	for i := 0; i < t.NumTiles(); i++ {
		if filter(t.PosOf(i)) {
			matches = append(matches, i)
		}
	}
	if len(matches) == 0 {
		return Pos{}, false
	}
	return t.PosOf(matches[r.Intn(len(matches))]), true
}
