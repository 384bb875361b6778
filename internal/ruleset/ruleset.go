// Package ruleset answers the terrain questions map generation asks: which
// terrains are water, which carry rivers, what a tile yields.
package ruleset

import (
	"fmt"
	"slices"
)

// Class separates land from water terrains.
type Class string

const (
	ClassLand  Class = "land"
	ClassOcean Class = "ocean"
)

// Terrain flags.
const (
	FlagFreshwater   = "freshwater"
	FlagCanHaveRiver = "can_have_river"
	FlagStarter      = "starter"
	FlagUnsafeCoast  = "unsafe_coast"
	FlagFrozen       = "frozen"
)

var knownFlags = []string{FlagFreshwater, FlagCanHaveRiver, FlagStarter, FlagUnsafeCoast, FlagFrozen}

// Yield is the food, shield and trade output of a tile.
type Yield struct {
	Food   int `json:"food"`
	Shield int `json:"shield"`
	Trade  int `json:"trade"`
}

// Add returns the sum of two yields.
func (y Yield) Add(o Yield) Yield {
	return Yield{Food: y.Food + o.Food, Shield: y.Shield + o.Shield, Trade: y.Trade + o.Trade}
}

// Total is the unweighted sum of all outputs.
func (y Yield) Total() int { return y.Food + y.Shield + y.Trade }

// Resource is an optional tile special with its bonus.
type Resource struct {
	Name  string `json:"name"`
	Bonus Yield  `json:"bonus"`
}

// TerrainInfo describes one terrain role.
type TerrainInfo struct {
	Name           string     `json:"name"`
	Class          Class      `json:"class"`
	Flags          []string   `json:"flags,omitempty"`
	Yield          Yield      `json:"yield"`
	IrrigationFood int        `json:"irrigation_food"`
	MiningShield   int        `json:"mining_shield"`
	RoadTrade      int        `json:"road_trade"`
	Resources      []Resource `json:"resources,omitempty"`
}

// HasFlag reports whether the terrain carries flag.
func (ti *TerrainInfo) HasFlag(flag string) bool {
	return slices.Contains(ti.Flags, flag)
}

// Oracle is what the generator needs to know about terrains.
type Oracle interface {
	IsOceanic(t Terrain) bool
	IsFreshwater(t Terrain) bool
	CanCarryRiver(t Terrain) bool
	IsStarterEligible(t Terrain) bool
	IsUnsafeCoast(t Terrain) bool
	IsFrozen(t Terrain) bool
	TileYield(t Terrain, s Special) Yield
	ImprovementBonus(t Terrain) (irrigation, mine int)
	HasResource(t Terrain, n int) bool
	RiverFallback() Terrain
	LakeMaxSize() int
}

// Ruleset is a validated set of terrain definitions.
type Ruleset struct {
	name          string
	riverTrade    int
	riverFallback Terrain
	lakeMaxSize   int
	terrains      [NumTerrains]TerrainInfo
}

var _ Oracle = (*Ruleset)(nil)

// Name returns the ruleset name.
func (r *Ruleset) Name() string { return r.name }

// Info returns the definition of t.
func (r *Ruleset) Info(t Terrain) *TerrainInfo { return &r.terrains[t] }

// Lookup resolves a terrain by its ruleset name or role name.
func (r *Ruleset) Lookup(name string) (Terrain, error) {
	for i := 1; i < NumTerrains; i++ {
		if equalFold(r.terrains[i].Name, name) {
			return Terrain(i), nil
		}
	}
	if t, ok := ParseTerrain(name); ok && t != Unknown {
		return t, nil
	}
	return Unknown, fmt.Errorf("unknown terrain %q%s", name, r.hint(name))
}

func (r *Ruleset) IsOceanic(t Terrain) bool { return r.terrains[t].Class == ClassOcean }

func (r *Ruleset) IsFreshwater(t Terrain) bool { return r.terrains[t].HasFlag(FlagFreshwater) }

func (r *Ruleset) CanCarryRiver(t Terrain) bool { return r.terrains[t].HasFlag(FlagCanHaveRiver) }

func (r *Ruleset) IsStarterEligible(t Terrain) bool { return r.terrains[t].HasFlag(FlagStarter) }

func (r *Ruleset) IsUnsafeCoast(t Terrain) bool { return r.terrains[t].HasFlag(FlagUnsafeCoast) }

func (r *Ruleset) IsFrozen(t Terrain) bool { return r.terrains[t].HasFlag(FlagFrozen) }

// TileYield is the base output of a tile with its resource and river.
func (r *Ruleset) TileYield(t Terrain, s Special) Yield {
	ti := &r.terrains[t]
	y := ti.Yield
	if n := s.Resource(); n > 0 && n <= len(ti.Resources) {
		y = y.Add(ti.Resources[n-1].Bonus)
	}
	if s.Has(River) {
		y.Trade += r.riverTrade
	}
	return y
}

// ImprovementBonus returns the extra output of an irrigated tile and of a
// mined tile, both assuming a road.
func (r *Ruleset) ImprovementBonus(t Terrain) (irrigation, mine int) {
	ti := &r.terrains[t]
	if ti.IrrigationFood > 0 {
		irrigation = ti.RoadTrade + ti.IrrigationFood
	}
	if ti.MiningShield > 0 {
		mine = ti.RoadTrade + ti.MiningShield
	}
	return irrigation, mine
}

// HasResource reports whether t defines resource slot n (1 or 2).
func (r *Ruleset) HasResource(t Terrain, n int) bool {
	return n >= 1 && n <= len(r.terrains[t].Resources)
}

// RiverFallback is the terrain a river tile turns into when its own terrain
// cannot carry a river.
func (r *Ruleset) RiverFallback() Terrain { return r.riverFallback }

// LakeMaxSize is the largest enclosed water body turned into a lake.
func (r *Ruleset) LakeMaxSize() int { return r.lakeMaxSize }

// RiverTrade is the trade bonus of a river tile.
func (r *Ruleset) RiverTrade() int { return r.riverTrade }
