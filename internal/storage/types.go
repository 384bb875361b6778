package storage

import (
	"github.com/OCharnyshevich/mapgen/internal/mapgen"
	"github.com/OCharnyshevich/mapgen/internal/ruleset"
	"github.com/OCharnyshevich/mapgen/internal/world"
)

// Report is the serializable summary of one generation run.
type Report struct {
	RunID         string           `json:"run_id"`
	Seed          int64            `json:"seed"`
	Width         int              `json:"width"`
	Height        int              `json:"height"`
	WrapX         bool             `json:"wrap_x"`
	WrapY         bool             `json:"wrap_y"`
	Generator     string           `json:"generator"`
	Fallbacks     []string         `json:"fallbacks,omitempty"`
	Continents    int              `json:"continents"`
	Oceans        int              `json:"oceans"`
	LandTiles     int              `json:"land_tiles"`
	Rivers        int              `json:"rivers"`
	Resources     int              `json:"resources"`
	Huts          int              `json:"huts"`
	Starts        []world.StartPos `json:"starts"`
	StartDistance int              `json:"start_distance"`
	Fingerprint   string           `json:"fingerprint"`
}

// NewReport summarizes m.
func NewReport(m *world.Map, o ruleset.Oracle) *Report {
	r := &Report{
		RunID:         m.RunID,
		Seed:          m.Seed,
		Width:         m.Topo.Width,
		Height:        m.Topo.Height,
		WrapX:         m.Topo.WrapX,
		WrapY:         m.Topo.WrapY,
		Generator:     mapgen.Generator(m.Generator).String(),
		Continents:    m.NumContinents(),
		Oceans:        m.NumOceans(),
		LandTiles:     m.CountLand(o),
		Rivers:        m.CountSpecial(ruleset.River),
		Resources:     m.CountSpecial(ruleset.Resource1) + m.CountSpecial(ruleset.Resource2),
		Huts:          m.CountSpecial(ruleset.Hut),
		Starts:        m.Starts,
		StartDistance: m.StartDistance,
		Fingerprint:   m.Fingerprint(),
	}
	for _, g := range m.Fallbacks {
		r.Fallbacks = append(r.Fallbacks, mapgen.Generator(g).String())
	}
	return r
}
