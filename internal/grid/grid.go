package grid

// Grid stores one value per tile in row-major order.
type Grid[T any] struct {
	topo  Topology
	cells []T
}

// New allocates a zeroed grid covering t.
func New[T any](t Topology) *Grid[T] {
	return &Grid[T]{topo: t, cells: make([]T, t.NumTiles())}
}

// Topology returns the shape of the grid.
func (g *Grid[T]) Topology() Topology { return g.topo }

// At returns the value at a normal position.
func (g *Grid[T]) At(p Pos) T { return g.cells[g.topo.Index(p)] }

// Set stores v at a normal position.
func (g *Grid[T]) Set(p Pos, v T) { g.cells[g.topo.Index(p)] = v }

// Ptr returns a pointer to the cell at p.
func (g *Grid[T]) Ptr(p Pos) *T { return &g.cells[g.topo.Index(p)] }

// Cells exposes the backing slice so callers can scan values directly.
func (g *Grid[T]) Cells() []T { return g.cells }

// Fill sets every cell to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.cells {
		g.cells[i] = v
	}
}

// Clone returns an independent copy of g.
func (g *Grid[T]) Clone() *Grid[T] {
	c := &Grid[T]{topo: g.topo, cells: make([]T, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Count returns how many cells satisfy pred.
func (g *Grid[T]) Count(pred func(T) bool) int {
	n := 0
	for _, v := range g.cells {
		if pred(v) {
			n++
		}
	}
	return n
}
