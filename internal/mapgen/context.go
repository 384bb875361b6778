package mapgen

import (
	"iter"
	"log/slog"

	"github.com/OCharnyshevich/mapgen/internal/grid"
	"github.com/OCharnyshevich/mapgen/internal/heightmap"
	"github.com/OCharnyshevich/mapgen/internal/latitude"
	"github.com/OCharnyshevich/mapgen/internal/rng"
	"github.com/OCharnyshevich/mapgen/internal/ruleset"
	"github.com/OCharnyshevich/mapgen/internal/temperature"
	"github.com/OCharnyshevich/mapgen/internal/world"
)

// genContext is the state of one generation run. Nothing in it outlives
// the call to Generate except the map.
type genContext struct {
	s      Settings
	topo   grid.Topology
	lat    *latitude.Model
	rs     ruleset.Oracle
	r      *rng.Rand
	log    *slog.Logger
	m      *world.Map
	params terrainParams

	hmap   *heightmap.Field
	placed *grid.Grid[bool]
	tmap   *temperature.Map
	rmap   *grid.Grid[riverState]

	shore, low, mountain int

	island   *islandState
	starters []islandStarters
}

// islandStarters remembers how many players an island builder reserved
// for the island containing pos.
type islandStarters struct {
	pos   grid.Pos
	count int
}

func newContext(s Settings, rs ruleset.Oracle, r *rng.Rand, log *slog.Logger) *genContext {
	lat := latitude.New(s.Topology, latitude.Settings{
		Temperature:   s.Temperature,
		SeparatePoles: s.SeparatePoles,
		AllTemperate:  s.AllTemperate,
	})
	return &genContext{
		s:      s,
		topo:   s.Topology,
		lat:    lat,
		rs:     rs,
		r:      r,
		log:    log,
		m:      world.New(s.Topology),
		params: newTerrainParams(s, lat),
	}
}

func (c *genContext) terrain(p grid.Pos) ruleset.Terrain { return c.m.Terrain.At(p) }

func (c *genContext) setTerrain(p grid.Pos, t ruleset.Terrain) { c.m.Terrain.Set(p, t) }

func (c *genContext) isOcean(p grid.Pos) bool { return c.rs.IsOceanic(c.terrain(p)) }

func (c *genContext) notPlaced(p grid.Pos) bool { return !c.placed.At(p) }

func (c *genContext) setPlaced(p grid.Pos) { c.placed.Set(p, true) }

// newPlacedMap starts a placement phase with every tile unplaced.
func (c *genContext) newPlacedMap() { c.placed = grid.New[bool](c.topo) }

func (c *genContext) setAllOceanPlaced() {
	for p := range c.topo.All() {
		if c.isOcean(p) {
			c.setPlaced(p)
		}
	}
}

// setPlacedNear marks every tile within radius of p as placed.
func (c *genContext) setPlacedNear(p grid.Pos, radius int) {
	for n := range c.topo.Square(p, radius) {
		c.setPlaced(n)
	}
}

func (c *genContext) neighbors(p grid.Pos, cardinal bool) iter.Seq[grid.Pos] {
	if cardinal {
		return c.topo.Cardinal(p)
	}
	return c.topo.Adjacent(p)
}

// countNear counts the neighbors of p matching pred, optionally as a
// percentage of all neighbors.
func (c *genContext) countNear(p grid.Pos, cardinal, percent bool, pred func(grid.Pos) bool) int {
	count, total := 0, 0
	for n := range c.neighbors(p, cardinal) {
		total++
		if pred(n) {
			count++
		}
	}
	if percent && total > 0 {
		return count * 100 / total
	}
	return count
}

func (c *genContext) oceanNear(p grid.Pos, cardinal, percent bool) int {
	return c.countNear(p, cardinal, percent, c.isOcean)
}

func (c *genContext) riverNear(p grid.Pos, cardinal, percent bool) int {
	return c.countNear(p, cardinal, percent, func(n grid.Pos) bool {
		return c.m.HasSpecial(n, ruleset.River)
	})
}

func (c *genContext) terrainNear(p grid.Pos, cardinal, percent bool, t ruleset.Terrain) int {
	return c.countNear(p, cardinal, percent, func(n grid.Pos) bool {
		return c.terrain(n) == t
	})
}

func (c *genContext) isTerrainNear(p grid.Pos, t ruleset.Terrain) bool {
	return c.terrainNear(p, false, false, t) > 0
}

// isWaterAdjacent reports whether p or a cardinal neighbor is water or
// river.
func (c *genContext) isWaterAdjacent(p grid.Pos) bool {
	if c.isOcean(p) || c.m.HasSpecial(p, ruleset.River) {
		return true
	}
	for n := range c.topo.Cardinal(p) {
		if c.rs.IsOceanic(c.terrain(n)) || c.m.HasSpecial(n, ruleset.River) {
			return true
		}
	}
	return false
}

// recordStarters reserves count start positions for the island at pos.
func (c *genContext) recordStarters(pos grid.Pos, count int) {
	if count > 0 {
		c.starters = append(c.starters, islandStarters{pos: pos, count: count})
	}
}
