// Package startpos picks one start tile per player, spreading players
// over continents in proportion to how much each continent can yield.
package startpos

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/OCharnyshevich/mapgen/internal/grid"
	"github.com/OCharnyshevich/mapgen/internal/latitude"
	"github.com/OCharnyshevich/mapgen/internal/ruleset"
	"github.com/OCharnyshevich/mapgen/internal/world"
)

// MaxStartDistance caps the initial distance between starts on one
// continent.
const MaxStartDistance = 40

var (
	// ErrNoStartPositions is returned when the players cannot be placed
	// even with the start distance shrunk to nothing.
	ErrNoStartPositions = errors.New("no room for start positions")

	// ErrNotEnoughResources is returned when no continent yields anything,
	// so no quota can be assigned.
	ErrNotEnoughResources = errors.New("not enough resources for start positions")
)

// Request describes one allocation.
type Request struct {
	Players int
	// Quotas are starters per continent label reserved by the island
	// generators. They are used only when they cover every player.
	Quotas   map[int]int
	Latitude *latitude.Model
}

// Allocate places req.Players start positions on m and records them in
// m.Starts together with the start distance finally used.
func Allocate(m *world.Map, o ruleset.Oracle, req Request, r grid.Intner, log *slog.Logger) error {
	m.Starts = nil
	m.StartDistance = 0
	if req.Players <= 0 {
		return nil
	}

	if quotas := presetQuotas(m, req); quotas != nil {
		err := place(m, o, quotas, req.Players, r, log)
		if err == nil {
			return nil
		}
		log.Debug("reserved starters do not fit, using continent richness", "error", err)
	}

	quotas, err := richnessQuotas(Goodies(m, o, req.Latitude), req.Players)
	if err != nil {
		return err
	}
	return place(m, o, quotas, req.Players, r, log)
}

// place picks start tiles by rejection sampling, shrinking the minimum
// distance between starts on one continent whenever no tile qualifies.
func place(m *world.Map, o ruleset.Oracle, quotas map[int]int, players int, r grid.Intner, log *slog.Logger) error {
	m.Starts = m.Starts[:0]
	topo := m.Topo
	dist := min(MaxStartDistance, topo.Width/2, topo.Height/2)
	valid := func(p grid.Pos) bool {
		t := m.Terrain.At(p)
		if o.IsOceanic(t) || t == ruleset.Unknown {
			return false
		}
		cont := m.Continents.At(p)
		if quotas[cont] <= 0 || !o.IsStarterEligible(t) || m.HasSpecial(p, ruleset.Hut) {
			return false
		}
		for _, s := range m.Starts {
			if m.Continents.At(s.Pos) == cont && topo.RealDistance(p, s.Pos) < dist {
				return false
			}
		}
		return true
	}

	for len(m.Starts) < players {
		p, ok := topo.RandomPosFiltered(r, valid)
		if !ok {
			dist--
			log.Debug("shrinking start distance", "distance", dist, "placed", len(m.Starts))
			if dist <= 0 {
				m.Starts = nil
				return fmt.Errorf("place %d players: %w", players, ErrNoStartPositions)
			}
			continue
		}
		quotas[m.Continents.At(p)]--
		m.Starts = append(m.Starts, world.StartPos{Pos: p, Nation: len(m.Starts)})
	}
	m.StartDistance = dist
	return nil
}

// presetQuotas keeps the positive entries of req.Quotas that name a
// continent, or returns nil when they do not cover every player.
func presetQuotas(m *world.Map, req Request) map[int]int {
	quotas := make(map[int]int)
	sum := 0
	for cont, n := range req.Quotas {
		if cont <= 0 || cont > m.NumContinents() || n <= 0 {
			continue
		}
		quotas[cont] += n
		sum += n
	}
	if sum < req.Players {
		return nil
	}
	return quotas
}

// TileValue estimates what a city gains from working p: its yield plus
// half of the better of irrigating or mining it.
func TileValue(m *world.Map, o ruleset.Oracle, p grid.Pos) int {
	t := m.Terrain.At(p)
	irrigation, mine := o.ImprovementBonus(t)
	return o.TileYield(t, m.Specials.At(p)).Total() + max(0, irrigation, mine)/2
}

// Goodies scores every continent by the value of the land its cities
// could work. Water and deep polar tiles do not count.
func Goodies(m *world.Map, o ruleset.Oracle, lat *latitude.Model) map[int]int {
	goodies := make(map[int]int)
	seen := make([]int, 0, 8)
	for p := range m.Topo.All() {
		t := m.Terrain.At(p)
		if t == ruleset.Unknown || o.IsOceanic(t) || lat.Colatitude(p) <= 2*lat.IceBaseLevel() {
			continue
		}
		v := TileValue(m, o, p)
		seen = seen[:0]
		for n := range m.Topo.CityArea(p) {
			cont := m.Continents.At(n)
			if cont > 0 && !slices.Contains(seen, cont) {
				seen = append(seen, cont)
				goodies[cont] += v
			}
		}
	}
	return goodies
}

// richnessQuotas hands out player slots: the threshold starts at the
// richest continent's score and drops just enough to unlock one more
// slot until every player has one.
func richnessQuotas(goodies map[int]int, players int) (map[int]int, error) {
	conts := slices.Sorted(maps.Keys(goodies))
	threshold := 0
	for _, c := range conts {
		threshold = max(threshold, goodies[c])
	}
	if threshold <= 0 {
		return nil, ErrNotEnoughResources
	}

	for {
		slots := 0
		next := 0
		for _, c := range conts {
			s := goodies[c] / threshold
			slots += s
			next = max(next, goodies[c]/(s+1))
		}
		if slots >= players {
			break
		}
		if next <= 0 {
			return nil, fmt.Errorf("%w: %d slots for %d players", ErrNotEnoughResources, slots, players)
		}
		threshold = next
	}

	quotas := make(map[int]int, len(conts))
	for _, c := range conts {
		if n := goodies[c] / threshold; n > 0 {
			quotas[c] = n
		}
	}
	return quotas, nil
}
