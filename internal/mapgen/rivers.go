package mapgen

import (
	"github.com/OCharnyshevich/mapgen/internal/grid"
	"github.com/OCharnyshevich/mapgen/internal/ruleset"
	"github.com/OCharnyshevich/mapgen/internal/temperature"
)

// riversMaxTries bounds the number of spring attempts per map.
const riversMaxTries = 32767

// riverState is the scratch marking of the river under construction.
type riverState uint8

const (
	riverMarked riverState = 1 << iota
	riverBlocked
)

// riverTest scores a candidate next tile; lower is better. A fatal test
// aborts the river when even the best candidate scores above zero.
type riverTest struct {
	name  string
	score func(c *genContext, p grid.Pos) int
	fatal bool
}

// riverTests run in order, each keeping only the best scoring directions.
var riverTests = []riverTest{
	{"blocked", (*genContext).riverBlockedScore, true},
	{"rivergrid", func(c *genContext, p grid.Pos) int {
		if c.riverNear(p, true, false) > 1 {
			return 1
		}
		return 0
	}, true},
	{"highlands", func(c *genContext, p grid.Pos) int {
		switch c.terrain(p) {
		case ruleset.Hills:
			return 1
		case ruleset.Mountains:
			return 2
		}
		return 0
	}, false},
	{"adjacent ocean", func(c *genContext, p grid.Pos) int {
		return 100 - c.oceanNear(p, true, true)
	}, false},
	{"adjacent river", func(c *genContext, p grid.Pos) int {
		return 100 - c.riverNear(p, true, true)
	}, false},
	{"adjacent highlands", func(c *genContext, p grid.Pos) int {
		return c.terrainNear(p, true, true, ruleset.Hills) + 2*c.terrainNear(p, true, true, ruleset.Mountains)
	}, false},
	{"swamp", func(c *genContext, p grid.Pos) int {
		if c.terrain(p) != ruleset.Swamp {
			return 1
		}
		return 0
	}, false},
	{"adjacent swamp", func(c *genContext, p grid.Pos) int {
		return 100 - c.terrainNear(p, true, true, ruleset.Swamp)
	}, false},
	{"height", func(c *genContext, p grid.Pos) int { return c.hmap.At(p) }, false},
}

func (c *genContext) riverBlockedScore(p grid.Pos) int {
	if c.rmap.At(p)&riverBlocked != 0 {
		return 1
	}
	for n := range c.topo.Cardinal(p) {
		if c.rmap.At(n)&riverBlocked == 0 {
			return 0
		}
	}
	return 1
}

// riverBlockmark blocks p and its cardinal neighbors for the rest of the
// current river.
func (c *genContext) riverBlockmark(p grid.Pos) {
	*c.rmap.Ptr(p) |= riverBlocked
	for n := range c.topo.Cardinal(p) {
		*c.rmap.Ptr(n) |= riverBlocked
	}
}

// makeRiver walks a river from p into the scratch map until it reaches
// the sea, another river or the polar ice. It reports false when the
// walk gets stuck.
func (c *genContext) makeRiver(p grid.Pos) bool {
	for {
		*c.rmap.Ptr(p) |= riverMarked

		if c.riverNear(p, true, false) > 0 ||
			c.oceanNear(p, true, false) > 0 ||
			(c.terrain(p) == ruleset.Arctic && float64(c.lat.Colatitude(p)) < 0.8*float64(c.lat.ColdLevel())) {
			return true
		}

		dirs := c.topo.CardinalDirs(p)
		scores := make([]int, len(dirs))
		for _, test := range riverTests {
			best := -1
			for i, d := range dirs {
				scores[i] = test.score(c, d.Pos)
				if best == -1 || scores[i] < best {
					best = scores[i]
				}
			}
			if best > 0 && test.fatal {
				c.log.Debug("river stuck", "at", p, "test", test.name)
				return false
			}
			kept := dirs[:0]
			for i, d := range dirs {
				if scores[i] == best {
					kept = append(kept, d)
				}
			}
			dirs = kept
			scores = scores[:len(dirs)]
		}
		if len(dirs) == 0 {
			return false
		}

		next := dirs[c.r.Intn(len(dirs))]
		c.riverBlockmark(p)
		p = next.Pos
	}
}

// makeRivers starts rivers at random springs until the map carries the
// desired river length or the attempts run out.
func (c *genContext) makeRivers() {
	desirable := c.params.river * c.topo.NumTiles() * c.s.LandPercent / 5325
	length := 0

	c.newPlacedMap()
	c.setAllOceanPlaced()
	c.rmap = grid.New[riverState](c.topo)
	defer func() { c.rmap = nil }()

	spring := condition{wetAll, temperature.NFrozen, miscNotLow}
	for tries := 0; length < desirable && tries < riversMaxTries; tries++ {
		p, ok := c.randPosWith(spring)
		if !ok {
			break
		}
		if !c.isSpring(p, tries) {
			continue
		}

		c.rmap.Fill(0)
		if !c.makeRiver(p) {
			continue
		}
		for q := range c.topo.All() {
			if c.rmap.At(q)&riverMarked == 0 {
				continue
			}
			if !c.rs.CanCarryRiver(c.terrain(q)) {
				c.setTerrain(q, c.rs.RiverFallback())
			}
			c.m.SetSpecial(q, ruleset.River)
			length++
			c.setPlaced(q)
		}
	}
	c.log.Debug("rivers placed", "length", length, "desirable", desirable)
}

// isSpring decides whether a river may start at p. Hills, mountains,
// glacier and desert are each allowed on exactly one late iteration.
func (c *genContext) isSpring(p grid.Pos, tries int) bool {
	t := c.terrain(p)
	step := riversMaxTries / 10
	return !c.isOcean(p) &&
		!c.m.HasSpecial(p, ruleset.River) &&
		c.riverNear(p, true, false)+c.oceanNear(p, true, false) <= 1 &&
		(c.terrainNear(p, true, true, ruleset.Hills)+c.terrainNear(p, true, true, ruleset.Mountains) < 90 || tries == step*5) &&
		(t != ruleset.Hills || tries == step*6) &&
		(t != ruleset.Mountains || tries == step*7) &&
		(t != ruleset.Arctic || tries == step*8) &&
		(t != ruleset.Desert || tries == step*9)
}
