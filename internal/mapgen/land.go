package mapgen

import (
	"github.com/OCharnyshevich/mapgen/internal/continent"
	"github.com/OCharnyshevich/mapgen/internal/grid"
	"github.com/OCharnyshevich/mapgen/internal/heightmap"
	"github.com/OCharnyshevich/mapgen/internal/ruleset"
	"github.com/OCharnyshevich/mapgen/internal/temperature"
)

// makeLand turns the height field into a textured map: sea below the
// shore level, relief, terrain clusters and rivers on the rest.
func (c *genContext) makeLand() {
	heightmap.Equalize(c.hmap.Cells(), 0, heightmap.MaxLevel)
	if c.lat.HasPoles() {
		heightmap.NormalizePoles(c.hmap, c.lat)
	}

	c.shore = heightmap.MaxLevel * (100 - c.s.LandPercent) / 100
	c.low = 4*c.params.swamp*(heightmap.MaxLevel-c.shore)/100 + c.shore
	for p := range c.topo.All() {
		c.setTerrain(p, ruleset.Unknown)
		if c.hmap.At(p) < c.shore {
			c.setTerrain(p, ruleset.Ocean)
		}
	}
	if c.lat.HasPoles() {
		heightmap.RenormalizePoles(c.hmap, c.lat)
	}

	c.tmap = temperature.New(c.lat, &temperature.Relief{
		Height:  c.hmap,
		Shore:   c.shore,
		IsOcean: c.isOcean,
	})

	if c.lat.HasPoles() {
		c.makePolarLand()
	}

	c.newPlacedMap()
	c.setAllOceanPlaced()
	c.makeRelief()
	c.makeTerrains()

	c.makeRivers()
}

// makePolarLand raises untextured land on frozen tiles and on some cold
// tiles next to them. With separate poles it keeps a channel of sea
// between that land and the continents.
func (c *genContext) makePolarLand() {
	continent.LabelLand(c.topo, c.m.Continents, func(p grid.Pos) bool { return !c.isOcean(p) })
	for p := range c.topo.All() {
		polar := c.tmap.Is(p, temperature.Frozen) ||
			(c.tmap.Is(p, temperature.Cold) && c.r.Intn(10) > 7 && c.tmap.Near(p, temperature.Frozen))
		if polar && c.okForSeparatePoles(p) {
			c.setTerrain(p, ruleset.Unknown)
			c.m.Continents.Set(p, 0)
		}
	}
}

// okForSeparatePoles is false when separate poles are requested and p
// touches land that already belongs to a continent.
func (c *genContext) okForSeparatePoles(p grid.Pos) bool {
	if !c.s.SeparatePoles {
		return true
	}
	for n := range c.topo.Adjacent(p) {
		if !c.isOcean(n) && c.m.Continents.At(n) != 0 {
			return false
		}
	}
	return true
}

// makePolar textures the poles with glacier for the island generators.
func (c *genContext) makePolar() {
	for p := range c.topo.All() {
		if c.tmap.Is(p, temperature.Frozen) ||
			(c.tmap.Is(p, temperature.Cold) && c.r.Intn(10) > 7 && c.tmap.Near(p, temperature.Frozen)) {
			c.setTerrain(p, ruleset.Arctic)
		}
	}
}

// makePlain places glacier, tundra, grassland or plains on p by climate.
func (c *genContext) makePlain(p grid.Pos, count *int) {
	switch {
	case c.tmap.Is(p, temperature.Frozen):
		c.setTerrain(p, ruleset.Arctic)
	case c.tmap.Is(p, temperature.Cold):
		c.setTerrain(p, ruleset.Tundra)
	case c.r.Intn(100) > 50:
		c.setTerrain(p, ruleset.Grassland)
	default:
		c.setTerrain(p, ruleset.Plains)
	}
	c.setPlaced(p)
	*count--
}

// makePlains fills every tile still unplaced.
func (c *genContext) makePlains() {
	for p := range c.topo.All() {
		if c.notPlaced(p) {
			n := 1
			c.makePlain(p, &n)
		}
	}
}

func (c *genContext) isTinyIsland(p grid.Pos) bool {
	t := c.terrain(p)
	if c.rs.IsOceanic(t) || t == ruleset.Arctic || t == ruleset.Unknown {
		return false
	}
	for n := range c.topo.Cardinal(p) {
		if !c.isOcean(n) {
			return false
		}
	}
	return true
}

// removeTinyIslands sinks single-tile islands.
func (c *genContext) removeTinyIslands() int {
	removed := 0
	for p := range c.topo.All() {
		if c.isTinyIsland(p) {
			c.setTerrain(p, ruleset.Ocean)
			c.m.ClearSpecial(p, ruleset.River)
			c.m.Continents.Set(p, 0)
			removed++
		}
	}
	return removed
}
