// Package continent numbers the connected land and water bodies of a map
// and derives which bodies enclose which.
package continent

import (
	"github.com/OCharnyshevich/mapgen/internal/grid"
	"github.com/OCharnyshevich/mapgen/internal/ruleset"
	"github.com/OCharnyshevich/mapgen/internal/world"
)

// Multiple marks a surrounder slot bordered by more than one body.
const Multiple = -1

// Assign labels every known tile of m: land bodies get 1, 2, ... and water
// bodies -1, -2, ... in scan order. Unknown tiles keep label 0. Sizes and
// surrounders are recomputed from scratch.
func Assign(m *world.Map, o ruleset.Oracle) {
	topo := m.Topo
	labels := m.Continents
	labels.Fill(0)
	m.ContinentSizes = []int{0}
	m.OceanSizes = []int{0}

	for start := range topo.All() {
		t := m.Terrain.At(start)
		if labels.At(start) != 0 || t == ruleset.Unknown {
			continue
		}
		water := o.IsOceanic(t)
		same := func(p grid.Pos) bool {
			nt := m.Terrain.At(p)
			return nt != ruleset.Unknown && o.IsOceanic(nt) == water
		}
		if water {
			id := -len(m.OceanSizes)
			m.OceanSizes = append(m.OceanSizes, flood(topo, labels, start, id, same))
		} else {
			id := len(m.ContinentSizes)
			m.ContinentSizes = append(m.ContinentSizes, flood(topo, labels, start, id, same))
		}
	}

	surrounders(m, o)
}

// LabelLand numbers the 8-connected components of tiles for which isLand
// holds, starting at 1, and sets every other tile to 0. It returns the
// number of components.
func LabelLand(topo grid.Topology, labels *grid.Grid[int], isLand func(grid.Pos) bool) int {
	labels.Fill(0)
	n := 0
	for start := range topo.All() {
		if labels.At(start) != 0 || !isLand(start) {
			continue
		}
		n++
		flood(topo, labels, start, n, isLand)
	}
	return n
}

// flood labels the component of start with id using a queue and returns
// its size. same decides which neighbors belong to the component.
func flood(topo grid.Topology, labels *grid.Grid[int], start grid.Pos, id int, same func(grid.Pos) bool) int {
	size := 0
	labels.Set(start, id)
	queue := []grid.Pos{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		size++
		for n := range topo.Adjacent(p) {
			if labels.At(n) != 0 || !same(n) {
				continue
			}
			labels.Set(n, id)
			queue = append(queue, n)
		}
	}
	return size
}

// surrounders records, for each water body, the single continent it
// touches and, for each continent, the single water body it touches.
// Island surrounders hold the positive water index.
func surrounders(m *world.Map, o ruleset.Oracle) {
	m.LakeSurrounders = make([]int, len(m.OceanSizes))
	m.IslandSurrounders = make([]int, len(m.ContinentSizes))

	for p := range m.Topo.All() {
		t := m.Terrain.At(p)
		if t == ruleset.Unknown {
			continue
		}
		cont := m.Continents.At(p)
		water := o.IsOceanic(t)
		for n := range m.Topo.Adjacent(p) {
			nt := m.Terrain.At(n)
			if nt == ruleset.Unknown || o.IsOceanic(nt) == water {
				continue
			}
			adj := m.Continents.At(n)
			if water {
				record(m.IslandSurrounders, adj, -cont)
			} else {
				record(m.LakeSurrounders, -adj, cont)
			}
		}
	}
}

func record(slots []int, idx, v int) {
	switch slots[idx] {
	case 0:
		slots[idx] = v
	case v:
	default:
		slots[idx] = Multiple
	}
}

// IsLake reports whether water body id (a negative label) is enclosed by
// a single continent.
func IsLake(m *world.Map, id int) bool {
	return id < 0 && -id < len(m.LakeSurrounders) && m.LakeSurrounders[-id] > 0
}

// RegenerateLakes turns every enclosed water body no larger than the
// ruleset lake size into lake terrain, then relabels the map. It returns
// the number of tiles changed.
func RegenerateLakes(m *world.Map, o ruleset.Oracle) int {
	maxSize := o.LakeMaxSize()
	changed := 0
	for p := range m.Topo.All() {
		t := m.Terrain.At(p)
		if t == ruleset.Unknown || t == ruleset.Lake || !o.IsOceanic(t) {
			continue
		}
		id := m.Continents.At(p)
		if IsLake(m, id) && m.OceanSizes[-id] <= maxSize {
			m.Terrain.Set(p, ruleset.Lake)
			changed++
		}
	}
	if changed > 0 {
		Assign(m, o)
	}
	return changed
}
