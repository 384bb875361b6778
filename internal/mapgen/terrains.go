package mapgen

import (
	"github.com/OCharnyshevich/mapgen/internal/grid"
	"github.com/OCharnyshevich/mapgen/internal/ruleset"
	"github.com/OCharnyshevich/mapgen/internal/temperature"
)

// heightUnit is the height difference counted as one unit of terrain
// difference while spreading clusters.
const heightUnit = 1

// cluster describes one terrain family placed by makeTerrains.
type cluster struct {
	terrain ruleset.Terrain
	cond    condition
	diff    int
}

var (
	forestCluster    = cluster{ruleset.Forest, condition{wetAll, temperature.NFrozen, miscNone}, 60}
	jungleCluster    = cluster{ruleset.Jungle, condition{wetAll, temperature.Tropical, miscNone}, 50}
	swampCluster     = cluster{ruleset.Swamp, condition{wetNotDry, temperature.Hot, miscLow}, 50}
	desertCluster    = cluster{ruleset.Desert, condition{wetDry, temperature.NFrozen, miscNotLow}, 80}
	altDesertCluster = cluster{ruleset.Desert, condition{wetAll, temperature.NFrozen, miscNotLow}, 40}
	plainsCondition  = condition{wetAll, temperature.All, miscNone}
)

// makeTerrains covers the unplaced land with clusters of forest, jungle,
// swamp and desert in proportion to the terrain parameters, and plains
// everywhere else.
func (c *genContext) makeTerrains() {
	total := 0
	for p := range c.topo.All() {
		if c.notPlaced(p) {
			total++
		}
	}

	rest := 100 - c.params.mountain
	forests := total * c.params.forest / rest
	jungles := total * c.params.jungle / rest
	deserts := total * c.params.desert / rest
	swamps := total * c.params.swamp / rest
	altDeserts := 0
	plains := total - forests - deserts - swamps - jungles

	for {
		c.placeOneType(&forests, &plains, forestCluster)
		c.placeOneType(&jungles, &forests, jungleCluster)
		c.placeOneType(&swamps, &forests, swampCluster)
		c.placeOneType(&deserts, &altDeserts, desertCluster)
		c.placeOneType(&altDeserts, &plains, altDesertCluster)

		if plains > 0 {
			if p, ok := c.randPosWith(plainsCondition); ok {
				c.makePlain(p, &plains)
			} else {
				plains = 0
			}
		}

		if forests <= 0 && jungles <= 0 && deserts <= 0 && altDeserts <= 0 && plains <= 0 && swamps <= 0 {
			break
		}
	}
}

// placeOneType seeds one cluster of k. When no tile qualifies the rest of
// the quota moves to alternate.
func (c *genContext) placeOneType(count, alternate *int, k cluster) {
	if *count <= 0 {
		return
	}
	if p, ok := c.randPosWith(k.cond); ok {
		c.placeTerrain(p, k.diff, k.terrain, count, k.cond)
		return
	}
	*alternate += *count
	*count = 0
}

// placeTerrain sets p to t and spreads to cardinal neighbors while the
// remaining difference budget and the quota allow.
func (c *genContext) placeTerrain(p grid.Pos, diff int, t ruleset.Terrain, count *int, cond condition) {
	if *count <= 0 {
		return
	}
	c.setTerrain(p, t)
	c.setPlaced(p)
	*count--

	unit := c.lat.LatitudeUnit()
	for n := range c.topo.Cardinal(p) {
		delta := abs(c.lat.Colatitude(n)-c.lat.Colatitude(p))/unit +
			abs(c.hmap.At(n)-c.hmap.At(p))/heightUnit
		if c.matches(n, cond) && delta < diff && c.r.Intn(10) > 4 {
			c.placeTerrain(n, diff-1-delta, t, count, cond)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
