// Package world holds the generated map handed back to callers.
package world

import (
	"encoding/binary"
	"encoding/hex"

	"lukechampine.com/blake3"

	"github.com/OCharnyshevich/mapgen/internal/grid"
	"github.com/OCharnyshevich/mapgen/internal/ruleset"
)

// StartPos is a start tile assigned to a nation slot.
type StartPos struct {
	Pos    grid.Pos `json:"pos"`
	Nation int      `json:"nation"`
}

// Map is the generated terrain, specials, connectivity labels and start
// positions for one run.
type Map struct {
	Topo       grid.Topology
	Terrain    *grid.Grid[ruleset.Terrain]
	Specials   *grid.Grid[ruleset.Special]
	Continents *grid.Grid[int]

	// Indexed by label; slot 0 is unused. Ocean slices are indexed by -label.
	ContinentSizes    []int
	OceanSizes        []int
	LakeSurrounders   []int
	IslandSurrounders []int

	Starts        []StartPos
	StartDistance int

	Seed      int64
	Generator int
	Fallbacks []int
	RunID     string
}

// New allocates an empty map covering topo.
func New(topo grid.Topology) *Map {
	return &Map{
		Topo:       topo,
		Terrain:    grid.New[ruleset.Terrain](topo),
		Specials:   grid.New[ruleset.Special](topo),
		Continents: grid.New[int](topo),
	}
}

// NumContinents is the number of land components.
func (m *Map) NumContinents() int { return max(0, len(m.ContinentSizes)-1) }

// NumOceans is the number of water components.
func (m *Map) NumOceans() int { return max(0, len(m.OceanSizes)-1) }

// ComponentSize returns the tile count of the component with label id.
func (m *Map) ComponentSize(id int) int {
	switch {
	case id > 0 && id < len(m.ContinentSizes):
		return m.ContinentSizes[id]
	case id < 0 && -id < len(m.OceanSizes):
		return m.OceanSizes[-id]
	}
	return 0
}

// HasSpecial reports whether p carries every flag in s.
func (m *Map) HasSpecial(p grid.Pos, s ruleset.Special) bool {
	return m.Specials.At(p).Has(s)
}

// SetSpecial adds s to the flags of p.
func (m *Map) SetSpecial(p grid.Pos, s ruleset.Special) {
	*m.Specials.Ptr(p) |= s
}

// ClearSpecial removes s from the flags of p.
func (m *Map) ClearSpecial(p grid.Pos, s ruleset.Special) {
	*m.Specials.Ptr(p) &^= s
}

// CountLand returns the number of tiles that are neither water nor unknown.
func (m *Map) CountLand(o ruleset.Oracle) int {
	return m.Terrain.Count(func(t ruleset.Terrain) bool {
		return t != ruleset.Unknown && !o.IsOceanic(t)
	})
}

// CountSpecial returns the number of tiles carrying s.
func (m *Map) CountSpecial(s ruleset.Special) int {
	return m.Specials.Count(func(v ruleset.Special) bool { return v.Has(s) })
}

// Fingerprint is a BLAKE3 digest of everything the generator decides:
// shape, terrain, specials, labels and start positions.
func (m *Map) Fingerprint() string {
	n := m.Topo.NumTiles()
	buf := make([]byte, 0, 16+n*6+len(m.Starts)*12)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(m.Topo.Width))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(m.Topo.Height))
	flags := byte(0)
	if m.Topo.WrapX {
		flags |= 1
	}
	if m.Topo.WrapY {
		flags |= 2
	}
	buf = append(buf, flags)
	for _, t := range m.Terrain.Cells() {
		buf = append(buf, byte(t))
	}
	for _, s := range m.Specials.Cells() {
		buf = append(buf, byte(s))
	}
	for _, c := range m.Continents.Cells() {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(int32(c)))
	}
	for _, s := range m.Starts {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(s.Pos.X))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(s.Pos.Y))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(s.Nation))
	}
	sum := blake3.Sum256(buf)
	return hex.EncodeToString(sum[:])
}
