// Package latitude maps tiles to their distance from the nearest pole and
// derives the climate thresholds that depend on it.
package latitude

import (
	"math"

	"github.com/OCharnyshevich/mapgen/internal/grid"
)

// MaxColatitude is the colatitude of the equator. Poles are at 0.
const MaxColatitude = 1000

// Settings are the knobs that shape colatitude and climate levels.
type Settings struct {
	Temperature   int
	SeparatePoles bool
	AllTemperate  bool
}

// Model answers colatitude and climate level queries for one map.
type Model struct {
	topo     grid.Topology
	settings Settings
	sqsize   int
	iceBase  int
}

// New builds the model for topo, computing the size-dependent ice level.
func New(topo grid.Topology, s Settings) *Model {
	m := &Model{topo: topo, settings: s, sqsize: SqSize(topo)}

	cold := m.ColdLevel()
	if s.SeparatePoles {
		m.iceBase = (max(0, 100*cold/3-1*MaxColatitude) + 1*MaxColatitude*m.sqsize) / (100 * m.sqsize)
	} else {
		m.iceBase = (max(0, 100*cold/3-2*MaxColatitude) + 2*MaxColatitude*m.sqsize) / (100 * m.sqsize)
	}
	if topo.Flat() {
		m.iceBase /= 2
	}
	return m
}

// SqSize estimates the linear size of the map in units of 1000 tiles.
func SqSize(topo grid.Topology) int {
	return max(1, int(math.Sqrt(float64(topo.NumTiles()/1000))))
}

// Topology returns the map shape the model was built for.
func (m *Model) Topology() grid.Topology { return m.topo }

// Settings returns the knobs the model was built with.
func (m *Model) Settings() Settings { return m.settings }

// SqSize returns the cached linear size estimate.
func (m *Model) SqSize() int { return m.sqsize }

// Colatitude returns the distance of p from the nearest pole, from 0 at a
// pole to MaxColatitude at the equator.
func (m *Model) Colatitude(p grid.Pos) int {
	if m.settings.AllTemperate {
		return MaxColatitude / 2
	}
	t := m.topo
	if t.Flat() {
		return MaxColatitude * p.Y / (t.Height - 1)
	}

	// Fold the map into one quarter; the four corners are equivalent.
	x := fold(p.X, t.Width)
	y := fold(p.Y, t.Height)

	switch {
	case t.WrapX && !t.WrapY:
		return int(MaxColatitude * y)
	case !t.WrapX && t.WrapY:
		return int(MaxColatitude * x)
	}

	// Torus: poles along the sides, equator on the diagonals. Flip along X
	// and fold across the diagonal to reach one eighth of the map.
	x = 1.0 - x
	if x+y > 1.0 {
		x = 1.0 - x
		y = 1.0 - y
	}
	return int(MaxColatitude * (1.5*(x*x*y+x*y*y) - 0.5*(x*x*x+y*y*y) + 1.5*(x*x+y*y)))
}

func fold(v, size int) float64 {
	half := size/2 - 1
	f := float64(v)
	if v > half {
		f = float64(size) - 1.0 - f
	}
	return f / float64(half)
}

// NearSingularity reports whether p is within a city radius of a
// topological singularity, where land should not be generated.
func (m *Model) NearSingularity(p grid.Pos) bool {
	return m.topo.IsSingular(p, grid.CityRadius)
}

// HasPoles reports whether the climate produces polar regions at all.
func (m *Model) HasPoles() bool {
	return m.settings.Temperature < 70 && !m.settings.AllTemperate
}

// IceBaseLevel is the colatitude below which the map freezes.
func (m *Model) IceBaseLevel() int { return m.iceBase }

// ColdLevel is the colatitude below which tiles are cold.
func (m *Model) ColdLevel() int {
	return max(0, MaxColatitude*(60*7-m.settings.Temperature*6)/700)
}

// TropicalLevel is the colatitude above which tiles are tropical.
func (m *Model) TropicalLevel() int {
	return min(MaxColatitude*9/10, MaxColatitude*(143*7-m.settings.Temperature*10)/700)
}

// DryMinLevel and DryMaxLevel bound the dry belt used for deserts.
func (m *Model) DryMinLevel() int {
	return MaxColatitude * (7300 - m.settings.Temperature*18) / 10000
}

// DryMaxLevel is the upper bound of the dry belt.
func (m *Model) DryMaxLevel() int {
	return MaxColatitude * (7300 + m.settings.Temperature*17) / 10000
}

// LatitudeUnit is the colatitude step counted as one unit of climate
// difference during terrain spreading.
func (m *Model) LatitudeUnit() int {
	return max(1, MaxColatitude/(30*m.sqsize))
}
