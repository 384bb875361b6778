package mapgen

import (
	"github.com/OCharnyshevich/mapgen/internal/grid"
	"github.com/OCharnyshevich/mapgen/internal/heightmap"
	"github.com/OCharnyshevich/mapgen/internal/ruleset"
	"github.com/OCharnyshevich/mapgen/internal/temperature"
)

// makeRelief raises hills and mountains on high ground, and on flat land
// that would otherwise stay featureless.
func (c *genContext) makeRelief() {
	c.mountain = (heightmap.MaxLevel-c.shore)*(100-c.s.Steepness)/100 + c.shore
	for p := range c.topo.All() {
		if !c.notPlaced(p) {
			continue
		}
		h := c.hmap.At(p)
		if (c.mountain < h && (c.r.Intn(10) > 5 || !c.tooHighForHills(p))) || c.tooFlatForHills(p) {
			if c.r.Intn(100) > 70 || c.tmap.Is(p, temperature.NHot) {
				c.setTerrain(p, ruleset.Mountains)
			} else {
				c.setTerrain(p, ruleset.Hills)
			}
			c.setPlaced(p)
		}
	}
}

// tooFlatForHills reports whether p sits on a plateau below the mountain
// level that no nearby tile rises much above.
func (c *genContext) tooFlatForHills(p grid.Pos) bool {
	thill, mine := c.mountain, c.hmap.At(p)
	higher := 0
	for n := range c.topo.Square(p, 2) {
		h := c.hmap.At(n)
		if h > thill {
			return false
		}
		if h > mine {
			if c.topo.Distance(p, n) == 1 {
				return false
			}
			higher++
			if higher > 2 {
				return false
			}
		}
	}
	return (thill-c.shore)*higher <= (mine-c.shore)*4
}

// tooHighForHills reports whether every tile around p is close to the
// mountain level, so a long ridge would form.
func (c *genContext) tooHighForHills(p grid.Pos) bool {
	for n := range c.topo.Square(p, 1) {
		if c.hmap.At(n)+(heightmap.MaxLevel-c.mountain)/5 < c.mountain {
			return false
		}
	}
	return true
}
