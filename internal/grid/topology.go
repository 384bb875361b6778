package grid

import "fmt"

// Linear size limits for either side of a map.
const (
	MinLinearSize = 16
	MaxLinearSize = 512
)

// CityRadius is the working radius of a city, used for singularity and
// resource checks.
const CityRadius = 2

// Pos identifies a tile by its native X and Y coordinates.
type Pos struct{ X, Y int }

func (p Pos) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Topology describes the shape of a map: its size and which axes wrap.
type Topology struct {
	Width  int
	Height int
	WrapX  bool
	WrapY  bool
}

// NumTiles returns the number of tiles on the map.
func (t Topology) NumTiles() int { return t.Width * t.Height }

// Flat reports whether neither axis wraps.
func (t Topology) Flat() bool { return !t.WrapX && !t.WrapY }

// Degenerate reports whether a side is below MinLinearSize.
func (t Topology) Degenerate() bool {
	return t.Width < MinLinearSize || t.Height < MinLinearSize
}

// Contains reports whether p is a normal position (no wrapping needed).
func (t Topology) Contains(p Pos) bool {
	return p.X >= 0 && p.X < t.Width && p.Y >= 0 && p.Y < t.Height
}

// Normalize wraps p along the wrapping axes. The second return value is
// false if p lies off a non-wrapping edge.
func (t Topology) Normalize(p Pos) (Pos, bool) {
	if t.WrapX {
		p.X = wrap(p.X, t.Width)
	}
	if t.WrapY {
		p.Y = wrap(p.Y, t.Height)
	}
	return p, t.Contains(p)
}

// Index returns the row-major index of a normal position. It panics on a
// position outside the map.
func (t Topology) Index(p Pos) int {
	if !t.Contains(p) {
		panic(fmt.Sprintf("grid: position %v outside %dx%d map", p, t.Width, t.Height))
	}
	return p.Y*t.Width + p.X
}

// PosOf is the inverse of Index.
func (t Topology) PosOf(i int) Pos {
	return Pos{X: i % t.Width, Y: i / t.Width}
}

// Vector returns the shortest (dx, dy) from a to b, taking wrapping into
// account.
func (t Topology) Vector(a, b Pos) (dx, dy int) {
	dx, dy = b.X-a.X, b.Y-a.Y
	if t.WrapX {
		dx = wrap(dx+t.Width/2, t.Width) - t.Width/2
	}
	if t.WrapY {
		dy = wrap(dy+t.Height/2, t.Height) - t.Height/2
	}
	return dx, dy
}

// RealDistance is the Chebyshev distance between two tiles.
func (t Topology) RealDistance(a, b Pos) int {
	dx, dy := t.Vector(a, b)
	return max(abs(dx), abs(dy))
}

// Distance is the Manhattan distance between two tiles.
func (t Topology) Distance(a, b Pos) int {
	dx, dy := t.Vector(a, b)
	return abs(dx) + abs(dy)
}

// SqDistance is the squared Euclidean distance between two tiles.
func (t Topology) SqDistance(a, b Pos) int {
	dx, dy := t.Vector(a, b)
	return dx*dx + dy*dy
}

// IsSingular reports whether p is within dist tiles of a non-wrapping edge.
func (t Topology) IsSingular(p Pos, dist int) bool {
	return (!t.WrapX && (p.X < dist || p.X >= t.Width-dist)) ||
		(!t.WrapY && (p.Y < dist || p.Y >= t.Height-dist))
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
