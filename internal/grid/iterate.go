package grid

import "iter"

// Direction is one of the four cardinal directions.
type Direction int

// Cardinal directions in iteration order.
const (
	North Direction = iota
	West
	East
	South
)

var cardinalOffsets = [4]Pos{North: {0, -1}, West: {-1, 0}, East: {1, 0}, South: {0, 1}}

// Adjacent yields the up to eight real neighbors of p, row by row.
func (t Topology) Adjacent(p Pos) iter.Seq[Pos] {
	return func(yield func(Pos) bool) {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				if n, ok := t.Normalize(Pos{p.X + dx, p.Y + dy}); ok && !yield(n) {
					return
				}
			}
		}
	}
}

// Cardinal yields the up to four real cardinal neighbors of p.
func (t Topology) Cardinal(p Pos) iter.Seq[Pos] {
	return func(yield func(Pos) bool) {
		for _, d := range t.CardinalDirs(p) {
			if !yield(d.Pos) {
				return
			}
		}
	}
}

// Step is a neighbor reached in a cardinal direction.
type Step struct {
	Dir Direction
	Pos Pos
}

// CardinalDirs returns the real cardinal neighbors of p together with their
// direction, in North, West, East, South order.
func (t Topology) CardinalDirs(p Pos) []Step {
	steps := make([]Step, 0, 4)
	for d, off := range cardinalOffsets {
		if n, ok := t.Normalize(Pos{p.X + off.X, p.Y + off.Y}); ok {
			steps = append(steps, Step{Dir: Direction(d), Pos: n})
		}
	}
	return steps
}

// Square yields every real tile within real distance radius of p,
// including p itself.
func (t Topology) Square(p Pos, radius int) iter.Seq[Pos] {
	return func(yield func(Pos) bool) {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if n, ok := t.Normalize(Pos{p.X + dx, p.Y + dy}); ok && !yield(n) {
					return
				}
			}
		}
	}
}

// CityArea yields the tiles a city on p could work: the square of
// CityRadius without its four corners.
func (t Topology) CityArea(p Pos) iter.Seq[Pos] {
	return func(yield func(Pos) bool) {
		for dy := -CityRadius; dy <= CityRadius; dy++ {
			for dx := -CityRadius; dx <= CityRadius; dx++ {
				if abs(dx) == CityRadius && abs(dy) == CityRadius {
					continue
				}
				if n, ok := t.Normalize(Pos{p.X + dx, p.Y + dy}); ok && !yield(n) {
					return
				}
			}
		}
	}
}

// All yields every tile of the map in index order.
func (t Topology) All() iter.Seq[Pos] {
	return func(yield func(Pos) bool) {
		for y := 0; y < t.Height; y++ {
			for x := 0; x < t.Width; x++ {
				if !yield(Pos{x, y}) {
					return
				}
			}
		}
	}
}
