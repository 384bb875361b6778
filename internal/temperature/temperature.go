// Package temperature classifies every tile into a climate band from its
// colatitude, and on a finished height field also from altitude and
// distance to the sea.
package temperature

import (
	"github.com/OCharnyshevich/mapgen/internal/grid"
	"github.com/OCharnyshevich/mapgen/internal/heightmap"
	"github.com/OCharnyshevich/mapgen/internal/latitude"
)

// Type is a set of climate bands. A classified tile holds exactly one.
type Type uint8

const (
	Frozen Type = 1 << iota
	Cold
	Temperate
	Tropical
)

// Common band unions used as placement conditions.
const (
	NFrozen = Cold | Temperate | Tropical
	All     = Frozen | NFrozen
	Hot     = Temperate | Tropical
	NHot    = Frozen | Cold
)

func (t Type) String() string {
	switch t {
	case Frozen:
		return "frozen"
	case Cold:
		return "cold"
	case Temperate:
		return "temperate"
	case Tropical:
		return "tropical"
	}
	return "mixed"
}

// Relief is the terrain information a real classification needs.
type Relief struct {
	Height  *heightmap.Field
	Shore   int
	IsOcean func(grid.Pos) bool
}

// Map holds the climate band of every tile.
type Map struct {
	bands *grid.Grid[Type]
}

// New classifies every tile. With a nil relief only colatitude is used.
func New(lat *latitude.Model, relief *Relief) *Map {
	topo := lat.Topology()
	values := make([]int, topo.NumTiles())
	for p := range topo.All() {
		values[topo.Index(p)] = adjusted(lat, relief, p)
	}

	if !lat.Settings().AllTemperate {
		lo, hi := values[0], values[0]
		for _, v := range values {
			lo, hi = min(lo, v), max(hi, v)
		}
		if hi-lo >= latitude.MaxColatitude/10 {
			heightmap.Equalize(values, 0, latitude.MaxColatitude)
		}
	}

	m := &Map{bands: grid.New[Type](topo)}
	tropical, cold, frozen := lat.TropicalLevel(), lat.ColdLevel(), 2*lat.IceBaseLevel()
	for i, v := range values {
		var b Type
		switch {
		case v >= tropical:
			b = Tropical
		case v >= cold:
			b = Temperate
		case v >= frozen:
			b = Cold
		default:
			b = Frozen
		}
		m.bands.Cells()[i] = b
	}
	return m
}

// adjusted is the colatitude of p made cooler by altitude and milder by
// nearby sea.
func adjusted(lat *latitude.Model, relief *Relief, p grid.Pos) int {
	t := lat.Colatitude(p)
	if relief == nil {
		return t
	}
	topo := lat.Topology()

	span := heightmap.MaxLevel - relief.Shore
	height := 0.0
	if span > 0 {
		height = -0.3 * float64(max(0, relief.Height.At(p)-relief.Shore)) / float64(span)
	}

	ocean, near := 0, 0
	for n := range topo.Square(p, 2) {
		if n == p {
			continue
		}
		near++
		if relief.IsOcean(n) {
			ocean++
		}
	}
	pct := 0
	if near > 0 {
		pct = 100 * ocean / near
	}
	temperate := 0.15 * (float64(lat.Settings().Temperature)/100 - float64(t)/latitude.MaxColatitude) *
		2 * float64(min(50, pct)) / 100

	return int(float64(t) * (1 + temperate) * (1 + height))
}

// At returns the band of p.
func (m *Map) At(p grid.Pos) Type { return m.bands.At(p) }

// Is reports whether the band of p is in set.
func (m *Map) Is(p grid.Pos, set Type) bool { return m.bands.At(p)&set != 0 }

// Near reports whether any adjacent tile of p has a band in set.
func (m *Map) Near(p grid.Pos, set Type) bool {
	for n := range m.bands.Topology().Adjacent(p) {
		if m.Is(n, set) {
			return true
		}
	}
	return false
}
