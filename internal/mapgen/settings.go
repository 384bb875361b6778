package mapgen

import (
	"fmt"
	"strconv"

	"github.com/OCharnyshevich/mapgen/internal/grid"
)

// Generator selects the height field or island layout algorithm.
type Generator int

const (
	GenRandom Generator = iota + 1
	GenIslands
	GenArchipelago
	GenPaired
	GenFractal
)

var generatorNames = map[Generator]string{
	GenRandom:      "random",
	GenIslands:     "islands",
	GenArchipelago: "archipelago",
	GenPaired:      "paired",
	GenFractal:     "fractal",
}

func (g Generator) String() string {
	if n, ok := generatorNames[g]; ok {
		return n
	}
	return "generator(" + strconv.Itoa(int(g)) + ")"
}

// Valid reports whether g names a known generator.
func (g Generator) Valid() bool {
	_, ok := generatorNames[g]
	return ok
}

// GeneratorNames lists the generator names in selector order.
func GeneratorNames() []string {
	names := make([]string, 0, len(generatorNames))
	for g := GenRandom; g <= GenFractal; g++ {
		names = append(names, generatorNames[g])
	}
	return names
}

// GeneratorByName resolves a generator name.
func GeneratorByName(name string) (Generator, bool) {
	for g, n := range generatorNames {
		if n == name {
			return g, true
		}
	}
	return 0, false
}

// DefaultMinIslandPercent is the smallest fraction of a requested island,
// in percent, the island builder accepts before giving up on it.
const DefaultMinIslandPercent = 10

// Settings are the inputs of one generation run.
type Settings struct {
	Topology      grid.Topology
	LandPercent   int
	Wetness       int
	Temperature   int
	Steepness     int
	Rivers        int
	Riches        int
	Huts          int
	SeparatePoles bool
	AllTemperate  bool
	TinyIsles     bool
	Lakes         bool
	Generator     Generator
	Players       int
	Seed          int64
}

func (s Settings) checkTopology() error {
	t := s.Topology
	if t.Degenerate() {
		return fmt.Errorf("%w: %dx%d is below the minimum side %d", ErrDegenerateGrid, t.Width, t.Height, grid.MinLinearSize)
	}
	if t.Width > grid.MaxLinearSize || t.Height > grid.MaxLinearSize {
		return fmt.Errorf("%w: %dx%d exceeds the maximum side %d", ErrDegenerateGrid, t.Width, t.Height, grid.MaxLinearSize)
	}
	return nil
}
