package ruleset

import "strings"

// Terrain is a terrain role. The generator places roles; a ruleset gives
// each role its name and properties.
type Terrain uint8

const (
	Unknown Terrain = iota
	Ocean
	Lake
	Arctic
	Desert
	Forest
	Grassland
	Hills
	Jungle
	Mountains
	Plains
	Swamp
	Tundra

	NumTerrains = int(Tundra) + 1
)

var terrainNames = [NumTerrains]string{
	Unknown:   "unknown",
	Ocean:     "ocean",
	Lake:      "lake",
	Arctic:    "arctic",
	Desert:    "desert",
	Forest:    "forest",
	Grassland: "grassland",
	Hills:     "hills",
	Jungle:    "jungle",
	Mountains: "mountains",
	Plains:    "plains",
	Swamp:     "swamp",
	Tundra:    "tundra",
}

func (t Terrain) String() string {
	if int(t) < NumTerrains {
		return terrainNames[t]
	}
	return "invalid"
}

// ParseTerrain resolves a role name, ignoring case.
func ParseTerrain(name string) (Terrain, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range terrainNames {
		if n == name {
			return Terrain(i), true
		}
	}
	return Unknown, false
}

// Special is a set of per-tile extras.
type Special uint8

const (
	River Special = 1 << iota
	Hut
	Resource1
	Resource2
)

// Has reports whether every bit of f is set.
func (s Special) Has(f Special) bool { return s&f == f }

// Resource returns the resource slot (1 or 2) present in s, or 0.
func (s Special) Resource() int {
	switch {
	case s.Has(Resource1):
		return 1
	case s.Has(Resource2):
		return 2
	}
	return 0
}
