package mapgen

import (
	"fmt"

	"github.com/OCharnyshevich/mapgen/internal/continent"
	"github.com/OCharnyshevich/mapgen/internal/grid"
	"github.com/OCharnyshevich/mapgen/internal/ruleset"
	"github.com/OCharnyshevich/mapgen/internal/temperature"
)

// maxContinents bounds the island index handed out by makeIsland.
const maxContinents = 300

// islandState is the bookkeeping shared by every island of one run of
// an island generator. The buckets carry rounding remainders of each
// terrain family from one island to the next.
type islandState struct {
	index      int
	n, e, s, w int
	totalMass  int
	checkMass  int
	tileFactor int
	balance    int
	lastPlaced int
	anchor     grid.Pos
	underflow  bool

	riverBuck  int
	mountBuck  int
	desertBuck int
	forestBuck int
	swampBuck  int
}

// initWorld floods the map with ocean, textures the poles and resets the
// island bookkeeping for a budget of totalMass land tiles.
func (c *genContext) initWorld(totalMass int) {
	c.newPlacedMap()
	c.tmap = temperature.New(c.lat, nil)
	c.hmap = grid.New[int](c.topo)
	c.starters = c.starters[:0]
	for p := range c.topo.All() {
		c.setTerrain(p, ruleset.Ocean)
		c.m.Continents.Set(p, 0)
		c.setPlaced(p)
		c.m.Specials.Set(p, 0)
	}
	if c.lat.HasPoles() {
		c.makePolar()
	}
	continent.Assign(c.m, c.rs)

	st := &islandState{
		index:      c.m.NumContinents() + 1,
		totalMass:  totalMass,
		checkMass:  totalMass,
		lastPlaced: totalMass,
	}
	i := c.params.river + c.params.mountain + c.params.desert + c.params.forest + c.params.swamp
	if i <= 90 {
		i = 100
	} else {
		i = i * 11 / 10
	}
	st.tileFactor = totalMass / i
	st.riverBuck = -c.r.Intn(totalMass)
	st.mountBuck = -c.r.Intn(totalMass)
	st.desertBuck = -c.r.Intn(totalMass)
	st.forestBuck = -c.r.Intn(totalMass)
	st.swampBuck = -c.r.Intn(totalMass)
	c.island = st
	if totalMass > 3000 {
		c.log.Info("high landmass, island placement may take a while", "mass", totalMass)
	}
}

// randomBoxPos returns a random tile inside the current island box.
func (c *genContext) randomBoxPos() grid.Pos {
	st := c.island
	x := st.w + c.r.Intn(st.e-st.w)
	y := st.n + c.r.Intn(st.s-st.n)
	p, _ := c.topo.Normalize(grid.Pos{X: x, Y: y})
	return p
}

// countElevatedCardinal counts cardinal neighbors of p that are part of
// the island blob being grown.
func (c *genContext) countElevatedCardinal(p grid.Pos) int {
	n := 0
	for q := range c.topo.Cardinal(p) {
		if c.hmap.At(q) != 0 {
			n++
		}
	}
	return n
}

// isNearLand reports whether any neighbor of p is land.
func (c *genContext) isNearLand(p grid.Pos) bool {
	for n := range c.topo.Adjacent(p) {
		if !c.isOcean(n) {
			return true
		}
	}
	return false
}

// islandTarget maps a box cell to its tile under the offset o.
func (c *genContext) islandTarget(x, y int, o grid.Pos) (grid.Pos, bool) {
	st := c.island
	return c.topo.Normalize(grid.Pos{X: x + o.X - st.w, Y: y + o.Y - st.n})
}

func (c *genContext) islandFits(x, y int, o grid.Pos) bool {
	p, ok := c.islandTarget(x, y, o)
	if !ok {
		return false
	}
	return c.hmap.At(grid.Pos{X: x, Y: y}) == 0 || !c.isNearLand(p)
}

// placeIsland drops the blob at a random offset if no part of it would
// touch existing land, and moves the box to the new location.
func (c *genContext) placeIsland() bool {
	st := c.island
	o := c.topo.RandomPos(c.r)

	for y, x := st.n, st.w; y < st.s && x < st.e; y, x = y+1, x+1 {
		if !c.islandFits(x, y, o) {
			return false
		}
	}
	for y := st.n; y < st.s; y++ {
		for x := st.w; x < st.e; x++ {
			if !c.islandFits(x, y, o) {
				return false
			}
		}
	}

	placed := 0
	for y := st.n; y < st.s; y++ {
		for x := st.w; x < st.e; x++ {
			if c.hmap.At(grid.Pos{X: x, Y: y}) == 0 {
				continue
			}
			p, _ := c.islandTarget(x, y, o)
			st.checkMass--
			if st.checkMass < 0 {
				st.underflow = true
				return placed != 0
			}
			if placed == 0 {
				st.anchor = p
			}
			c.setTerrain(p, ruleset.Unknown)
			c.placed.Set(p, false)
			c.m.Continents.Set(p, st.index)
			placed++
		}
	}
	st.s += o.Y - st.n
	st.e += o.X - st.w
	st.n = o.Y
	st.w = o.X
	return placed != 0
}

// createIsland grows a blob of mass tiles on the scratch field around the
// map center, then tries to place it.
func (c *genContext) createIsland(mass int) bool {
	st := c.island
	c.hmap.Fill(0)
	cx, cy := c.topo.Width/2, c.topo.Height/2
	c.hmap.Set(grid.Pos{X: cx, Y: cy}, 1)
	st.n, st.w = cy-1, cx-1
	st.s, st.e = cy+2, cx+2

	i := mass - 1
	tries := mass*(2+mass/20) + 99
	for ; i > 0 && tries > 0; tries-- {
		p := c.randomBoxPos()
		if (!c.lat.NearSingularity(p) || c.r.Intn(50) < 25) &&
			c.hmap.At(p) == 0 && c.countElevatedCardinal(p) > 0 {
			c.hmap.Set(p, 1)
			i--
			if p.Y >= st.s-1 && st.s < c.topo.Height-2 {
				st.s++
			}
			if p.X >= st.e-1 && st.e < c.topo.Width-2 {
				st.e++
			}
			if p.Y <= st.n && st.n > 2 {
				st.n--
			}
			if p.X <= st.w && st.w > 2 {
				st.w--
			}
		}
		if i < mass/10 {
			for y := st.n; y < st.s; y++ {
				for x := st.w; x < st.e; x++ {
					p := grid.Pos{X: x, Y: y}
					if c.hmap.At(p) == 0 && i > 0 && c.countElevatedCardinal(p) == 4 {
						c.hmap.Set(p, 1)
						i--
					}
				}
			}
		}
	}
	if tries <= 0 {
		c.log.Debug("island growth ended early", "grown", mass-i, "mass", mass)
	}

	for attempts := c.topo.NumTiles() / 4; ; {
		if c.placeIsland() {
			return true
		}
		attempts--
		if attempts <= 0 {
			return false
		}
	}
}

// makeIsland creates one island of about mass tiles, reserving starters
// start positions on it, and textures it. It reports false when the
// island could not be made at least minPct percent of the wanted size.
func (c *genContext) makeIsland(mass, starters, minPct int) (bool, error) {
	st := c.island
	mass -= st.balance

	if st.index >= maxContinents {
		return false, nil
	}
	mass = min(mass, st.lastPlaced+1+st.lastPlaced/50)
	mass = min(mass, (c.topo.Height-6)*(c.topo.Height-6))
	mass = min(mass, (c.topo.Width-2)*(c.topo.Width-2))
	mass = min(mass, st.checkMass)
	if mass <= 0 {
		return false, nil
	}

	i := mass
	for !c.createIsland(i) {
		if i < mass*minPct/100 {
			c.log.Debug("island not placed", "island", st.index, "requested", mass)
			return false, nil
		}
		i--
	}
	if st.underflow {
		return false, fmt.Errorf("place island %d: %w", st.index, ErrMassUnderflow)
	}
	i++
	st.lastPlaced = i
	if i*10 > mass {
		st.balance = i - mass
	} else {
		st.balance = 0
	}
	c.recordStarters(st.anchor, starters)
	c.log.Debug("island", "index", st.index, "requested", mass, "placed", i, "balance", st.balance, "left", st.checkMass)

	i *= st.tileFactor
	p := c.params

	st.riverBuck += p.river * i
	c.fillIslandRivers(1, &st.riverBuck)

	st.mountBuck += p.mountain * i
	c.fillIsland(20, &st.mountBuck, [4]int{3, 1, 3, 1},
		[4]ruleset.Terrain{ruleset.Hills, ruleset.Mountains, ruleset.Hills, ruleset.Mountains})

	st.desertBuck += p.desert * i
	c.fillIsland(40, &st.desertBuck, [4]int{1, 1, 1, 1},
		[4]ruleset.Terrain{ruleset.Desert, ruleset.Desert, ruleset.Desert, ruleset.Tundra})

	st.forestBuck += p.forest * i
	c.fillIsland(60, &st.forestBuck, [4]int{p.forest, p.swamp, p.forest, p.swamp},
		[4]ruleset.Terrain{ruleset.Forest, ruleset.Jungle, ruleset.Forest, ruleset.Tundra})

	st.swampBuck += p.swamp * i
	c.fillIsland(80, &st.swampBuck, [4]int{1, 1, 1, 1},
		[4]ruleset.Terrain{ruleset.Swamp, ruleset.Swamp, ruleset.Swamp, ruleset.Swamp})

	st.index++
	return true, nil
}

// spend takes whole island-sized units out of a bucket and returns how
// many tiles to place, together with the attempt limit.
func (c *genContext) spend(bucket *int) (count, failsafe int) {
	st := c.island
	count = *bucket/st.totalMass + 1
	*bucket -= count * st.totalMass
	failsafe = abs(count * (st.s - st.n) * (st.e - st.w))
	return count, failsafe
}

func (c *genContext) isCardinallyAdjToOcean(p grid.Pos) bool {
	return c.oceanNear(p, true, false) > 0
}

// fillIsland places up to four terrains on the new island: a warm pair
// and a cold pair, each picked by weight.
func (c *genContext) fillIsland(coast int, bucket *int, weights [4]int, terrains [4]ruleset.Terrain) {
	if *bucket <= 0 {
		return
	}
	st := c.island
	i, failsafe := c.spend(bucket)
	k := i
	if weights[0]+weights[1]+weights[2]+weights[3] <= 0 {
		i = 0
	}

	warm0, warm1, cold0, cold1 := terrains[0], terrains[1], terrains[2], terrains[3]
	for ; i > 0 && failsafe > 0; failsafe-- {
		p := c.randomBoxPos()
		if c.m.Continents.At(p) != st.index || !c.notPlaced(p) {
			continue
		}
		if (i*3 > k*2 ||
			c.isTerrainNear(p, warm0) ||
			c.isTerrainNear(p, warm1) ||
			c.r.Chance(50) ||
			c.isTerrainNear(p, cold0) ||
			c.isTerrainNear(p, cold1)) &&
			(!c.isCardinallyAdjToOcean(p) || c.r.Chance(coast)) {
			if c.lat.Colatitude(p) < c.lat.ColdLevel() {
				if c.r.Intn(weights[2]+weights[3]) < weights[2] {
					c.setTerrain(p, cold0)
				} else {
					c.setTerrain(p, cold1)
				}
			} else {
				if c.r.Intn(weights[0]+weights[1]) < weights[0] {
					c.setTerrain(p, warm0)
				} else {
					c.setTerrain(p, warm1)
				}
			}
			c.setPlaced(p)
		}
		if !c.notPlaced(p) {
			i--
		}
	}
}

// fillIslandRivers sprinkles river tiles on the new island next to water.
func (c *genContext) fillIslandRivers(coast int, bucket *int) {
	if *bucket <= 0 {
		return
	}
	st := c.island
	i, failsafe := c.spend(bucket)
	k := i

	for ; i > 0 && failsafe > 0; failsafe-- {
		p := c.randomBoxPos()
		if c.m.Continents.At(p) != st.index || !c.notPlaced(p) {
			continue
		}
		if (i*3 > k*2 || c.riverNear(p, false, true) > 0 || c.r.Chance(50)) &&
			(!c.isCardinallyAdjToOcean(p) || c.r.Chance(coast)) {
			if c.isWaterAdjacent(p) &&
				c.oceanNear(p, false, true) < 50 &&
				c.riverNear(p, false, true) < 35 {
				c.m.SetSpecial(p, ruleset.River)
				i--
			}
		}
	}
}
