package mapgen

import (
	"github.com/OCharnyshevich/mapgen/internal/grid"
	"github.com/OCharnyshevich/mapgen/internal/ruleset"
	"github.com/OCharnyshevich/mapgen/internal/temperature"
)

// addSpecials scatters resource specials with prob per mille, never two
// within one tile of each other. Ocean resources also need a safe tile
// nearby.
func (c *genContext) addSpecials(prob int) {
	for p := range c.topo.All() {
		t := c.terrain(p)
		if !c.rs.IsOceanic(t) {
			if !c.isSpecialClose(p) && c.r.Intn(1000) < prob {
				c.placeResource(p, t)
			}
		} else if c.nearSafeTiles(p) && c.r.Intn(1000) < prob && !c.isSpecialClose(p) {
			c.placeResource(p, t)
		}
	}
}

func (c *genContext) placeResource(p grid.Pos, t ruleset.Terrain) {
	has1, has2 := c.rs.HasResource(t, 1), c.rs.HasResource(t, 2)
	switch {
	case has1 && (!has2 || c.r.Chance(50)):
		c.m.SetSpecial(p, ruleset.Resource1)
	case has2:
		c.m.SetSpecial(p, ruleset.Resource2)
	}
}

func (c *genContext) isSpecialClose(p grid.Pos) bool {
	for n := range c.topo.Square(p, 1) {
		s := c.m.Specials.At(n)
		if s.Has(ruleset.Resource1) || s.Has(ruleset.Resource2) {
			return true
		}
	}
	return false
}

// nearSafeTiles reports whether a tile within radius 1 is a safe coast.
func (c *genContext) nearSafeTiles(p grid.Pos) bool {
	for n := range c.topo.Square(p, 1) {
		if !c.rs.IsUnsafeCoast(c.terrain(n)) {
			return true
		}
	}
	return false
}

// makeHuts spreads up to about number huts over non-frozen land, at
// least four tiles apart. It returns the number placed.
func (c *genContext) makeHuts(number int) int {
	tiles := c.topo.NumTiles()
	cond := condition{wetAll, temperature.NFrozen, miscNone}
	placed := 0

	c.newPlacedMap()
	for count := 0; number*tiles >= 2000 && count < tiles*2; count++ {
		p, ok := c.randPosWith(cond)
		if !ok {
			break
		}
		if c.isOcean(p) {
			c.setPlaced(p)
			continue
		}
		number--
		placed++
		c.m.SetSpecial(p, ruleset.Hut)
		c.setPlacedNear(p, 3)
	}
	return placed
}
