package mapgen

import (
	"github.com/OCharnyshevich/mapgen/internal/grid"
	"github.com/OCharnyshevich/mapgen/internal/temperature"
)

// wetness is a placement condition on dryness.
type wetness int

const (
	wetAll wetness = iota
	wetDry
	wetNotDry
)

// misc is a placement condition on ground height.
type misc int

const (
	miscNone misc = iota
	miscLow
	miscNotLow
)

// isDry is the desert belt: mid colatitudes away from the sea.
func (c *genContext) isDry(p grid.Pos) bool {
	colat := c.lat.Colatitude(p)
	return colat <= c.lat.DryMaxLevel() &&
		colat > c.lat.DryMinLevel() &&
		c.oceanNear(p, false, true) <= 35
}

func (c *genContext) isLow(p grid.Pos) bool { return c.hmap.At(p) < c.low }

func (c *genContext) testWetness(p grid.Pos, w wetness) bool {
	switch w {
	case wetAll:
		return true
	case wetDry:
		return c.isDry(p)
	case wetNotDry:
		return !c.isDry(p)
	}
	return false
}

func (c *genContext) testMisc(p grid.Pos, m misc) bool {
	switch m {
	case miscNone:
		return true
	case miscLow:
		return c.isLow(p)
	case miscNotLow:
		return !c.isLow(p)
	}
	return false
}

// condition bundles the filters used to pick and grow terrain clusters.
type condition struct {
	wet  wetness
	temp temperature.Type
	misc misc
}

func (c *genContext) matches(p grid.Pos, cond condition) bool {
	return c.notPlaced(p) &&
		c.tmap.Is(p, cond.temp) &&
		c.testWetness(p, cond.wet) &&
		c.testMisc(p, cond.misc)
}

// randPosWith returns a random unplaced tile satisfying cond.
func (c *genContext) randPosWith(cond condition) (grid.Pos, bool) {
	return c.topo.RandomPosFiltered(c.r, func(p grid.Pos) bool {
		return c.matches(p, cond)
	})
}
