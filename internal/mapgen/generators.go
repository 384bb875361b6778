package mapgen

import "github.com/OCharnyshevich/mapgen/internal/heightmap"

// generatorFunc builds the terrain of the map. A non-zero result names
// the generator to fall back to because this one cannot handle the
// settings.
type generatorFunc func(c *genContext) (Generator, error)

var generators = map[Generator]generatorFunc{
	GenRandom:      (*genContext).generateRandom,
	GenIslands:     (*genContext).generateIslands,
	GenArchipelago: (*genContext).generateArchipelago,
	GenPaired:      (*genContext).generatePaired,
	GenFractal:     (*genContext).generateFractal,
}

func (c *genContext) generateRandom() (Generator, error) {
	c.hmap = heightmap.Random(c.lat, c.r)
	c.makeLand()
	return 0, nil
}

func (c *genContext) generateFractal() (Generator, error) {
	c.hmap = heightmap.Fractal(c.lat, c.s.LandPercent, c.r)
	c.makeLand()
	return 0, nil
}

// islandMass is the land budget of the island generators, leaving room
// for the poles and spares tiles of slack on each axis.
func (c *genContext) islandMass(spares int) int {
	return (c.topo.Height - 6 - spares) * c.s.LandPercent * (c.topo.Width - spares) / 100
}

func (c *genContext) players() int { return max(1, c.s.Players) }

// generateIslands makes one big island per player, then a medium and a
// small one each. Big islands shrink until all of them fit.
func (c *genContext) generateIslands() (Generator, error) {
	if c.s.LandPercent > 85 {
		return GenRandom, nil
	}
	players := c.players()
	total := c.islandMass(1)
	totalWeight := 100 * players
	bigFrac, midFrac, smallFrac := 70, 20, 10

	for done := false; !done && bigFrac > midFrac; {
		done = true
		c.initWorld(total)
		for i := players; i > 0; i-- {
			ok, err := c.makeIsland(bigFrac*total/totalWeight, 1, 95)
			if err != nil {
				return 0, err
			}
			if !ok {
				c.log.Debug("big island too small, shrinking", "bigFrac", bigFrac)
				midFrac += int(float64(bigFrac) * 0.01)
				smallFrac += int(float64(bigFrac) * 0.04)
				bigFrac = int(float64(bigFrac) * 0.95)
				done = false
				break
			}
		}
	}
	if bigFrac <= midFrac {
		return GenRandom, nil
	}

	for _, frac := range []int{midFrac, smallFrac} {
		for i := players; i > 0; i-- {
			if _, err := c.makeIsland(frac*total/totalWeight, 0, DefaultMinIslandPercent); err != nil {
				return 0, err
			}
		}
	}
	c.makePlains()
	c.logLeftover(c.topo.Width + c.topo.Height + totalWeight)
	return 0, nil
}

// generateArchipelago makes many islands of similar size, the first ones
// each reserved for a player.
func (c *genContext) generateArchipelago() (Generator, error) {
	const maxMassDiv6 = 20
	if c.s.LandPercent > 80 {
		return GenIslands, nil
	}
	players := c.players()
	total := c.islandMass(1)
	bigIslands := players

	landMass := c.topo.Width * (c.topo.Height - 6) * c.s.LandPercent / 100
	if landMass > 3*c.topo.Height+players*3 {
		landMass -= 3 * c.topo.Height
	}
	islandMass := landMass / (3 * bigIslands)
	if islandMass < 4*maxMassDiv6 {
		islandMass = landMass / (2 * bigIslands)
	}
	if islandMass < 3*maxMassDiv6 && players*2 < landMass {
		islandMass = landMass / bigIslands
	}
	if c.topo.Width < 40 || c.topo.Height < 40 {
		return GenIslands, nil
	}
	islandMass = min(max(islandMass, 2), maxMassDiv6*6)

	c.initWorld(total)
	st := c.island
	j := 0
	bump := func(limit int) bool {
		j++
		return j < limit
	}

	for st.index-2 <= bigIslands && st.checkMass > islandMass && bump(500) {
		if _, err := c.makeIsland(islandMass, 1, DefaultMinIslandPercent); err != nil {
			return 0, err
		}
	}
	if j == 500 {
		c.log.Info("archipelago did not place all big islands")
	}

	islandMass = max(islandMass*11/8, 2)
	for st.index <= maxContinents-20 && st.checkMass > islandMass && bump(1500) {
		size := c.r.Intn((islandMass+1)/2 + 1)
		if j < 1000 {
			size += islandMass / 2
		}
		starters := 0
		if st.index-2 <= players {
			starters = 1
		}
		if _, err := c.makeIsland(max(size, 2), starters, DefaultMinIslandPercent); err != nil {
			return 0, err
		}
	}
	c.makePlains()
	if j == 1500 {
		c.log.Info("archipelago left land unplaced", "mass", st.checkMass)
	} else {
		c.logLeftover(c.topo.Width + c.topo.Height)
	}
	return 0, nil
}

// generatePaired puts two players on each big island, three on one of
// them when the player count is odd.
func (c *genContext) generatePaired() (Generator, error) {
	if c.s.Players < 2 || c.s.LandPercent > 80 {
		return GenArchipelago, nil
	}
	players := c.s.Players
	bigWeight := 70
	switch {
	case c.s.LandPercent > 60:
		bigWeight = 30
	case c.s.LandPercent > 40:
		bigWeight = 50
	}
	total := c.islandMass((c.s.LandPercent - 5) / 30)
	totalWeight := (30 + bigWeight) * players

	c.initWorld(total)
	place := func(weight, starters int) error {
		_, err := c.makeIsland(weight*total/totalWeight, starters, DefaultMinIslandPercent)
		return err
	}

	i := players / 2
	if players%2 == 1 {
		if err := place(bigWeight*3, 3); err != nil {
			return 0, err
		}
	} else {
		i++
	}
	for i--; i > 0; i-- {
		if err := place(bigWeight*2, 2); err != nil {
			return 0, err
		}
	}
	for _, weight := range []int{20, 10} {
		for i := players; i > 0; i-- {
			if err := place(weight, 0); err != nil {
				return 0, err
			}
		}
	}
	c.makePlains()
	c.logLeftover(c.topo.Width + c.topo.Height + totalWeight)
	return 0, nil
}

func (c *genContext) logLeftover(threshold int) {
	if c.island.checkMass > threshold {
		c.log.Debug("mass left unplaced", "mass", c.island.checkMass)
	}
}
