// Package mapgen generates a complete world map: height field, land and
// sea, relief, climate textured terrain, rivers, islands, resources,
// huts and start positions.
package mapgen

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/OCharnyshevich/mapgen/internal/continent"
	"github.com/OCharnyshevich/mapgen/internal/rng"
	"github.com/OCharnyshevich/mapgen/internal/ruleset"
	"github.com/OCharnyshevich/mapgen/internal/startpos"
	"github.com/OCharnyshevich/mapgen/internal/world"
)

// Generate builds a map for s. A zero seed is replaced by a random one,
// recorded in the result. Requested generators that cannot handle the
// settings fall back to simpler ones; the generator used and the ones
// skipped are recorded as well.
func Generate(s Settings, rs ruleset.Oracle, log *slog.Logger) (*world.Map, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if err := s.checkTopology(); err != nil {
		return nil, err
	}
	if !s.Generator.Valid() {
		return nil, fmt.Errorf("generate map: unknown %v", s.Generator)
	}
	if s.Seed == 0 {
		s.Seed = max(1, (rand.Int64()^time.Now().Unix())&rng.MaxSeed)
	}

	runID := uuid.NewString()
	log = log.With("run", runID)
	log.Info("generating map",
		"width", s.Topology.Width, "height", s.Topology.Height,
		"wrapX", s.Topology.WrapX, "wrapY", s.Topology.WrapY,
		"generator", s.Generator.String(), "seed", s.Seed)

	c := newContext(s, rs, rng.New(s.Seed), log)
	c.m.Seed = s.Seed
	c.m.RunID = runID

	gen := s.Generator
	for {
		next, err := generators[gen](c)
		if err != nil {
			return nil, fmt.Errorf("generate %s map: %w", gen, err)
		}
		if next == 0 {
			break
		}
		log.Info("falling back to generator", "from", gen.String(), "to", next.String())
		c.m.Fallbacks = append(c.m.Fallbacks, int(gen))
		c.resetMap()
		gen = next
	}
	c.m.Generator = int(gen)

	if !s.TinyIsles {
		if n := c.removeTinyIslands(); n > 0 {
			log.Debug("removed tiny islands", "count", n)
		}
	}
	continent.Assign(c.m, rs)
	if s.Lakes {
		if n := continent.RegenerateLakes(c.m, rs); n > 0 {
			log.Debug("regenerated lakes", "tiles", n)
		}
	}
	c.addSpecials(s.Riches)
	huts := c.makeHuts(s.Huts)

	req := startpos.Request{
		Players:  s.Players,
		Quotas:   c.starterQuotas(),
		Latitude: c.lat,
	}
	if err := startpos.Allocate(c.m, rs, req, c.r, log); err != nil {
		return nil, fmt.Errorf("allocate start positions: %w", err)
	}

	log.Info("map generated",
		"generator", gen.String(),
		"continents", c.m.NumContinents(),
		"oceans", c.m.NumOceans(),
		"land", c.m.CountLand(rs),
		"rivers", c.m.CountSpecial(ruleset.River),
		"huts", huts,
		"starts", len(c.m.Starts),
		"startDistance", c.m.StartDistance,
		"fingerprint", c.m.Fingerprint())
	return c.m, nil
}

// starterQuotas translates the starters the island generators reserved
// into final continent labels.
func (c *genContext) starterQuotas() map[int]int {
	if len(c.starters) == 0 {
		return nil
	}
	quotas := make(map[int]int)
	for _, is := range c.starters {
		if cont := c.m.Continents.At(is.pos); cont > 0 {
			quotas[cont] += is.count
		}
	}
	return quotas
}

// resetMap discards whatever a generator left behind before it gave up.
func (c *genContext) resetMap() {
	c.m.Terrain.Fill(ruleset.Unknown)
	c.m.Specials.Fill(0)
	c.m.Continents.Fill(0)
	c.starters = nil
	c.island = nil
}
