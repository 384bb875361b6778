package continent

import (
	"testing"

	"github.com/OCharnyshevich/mapgen/internal/grid"
	"github.com/OCharnyshevich/mapgen/internal/ruleset"
	"github.com/OCharnyshevich/mapgen/internal/world"
)

// ringMap has a 3x3 land ring around a one-tile pond and a single-tile
// island, surrounded by ocean.
func ringMap() *world.Map {
	m := world.New(grid.Topology{Width: 16, Height: 16})
	m.Terrain.Fill(ruleset.Ocean)
	for p := range m.Topo.Square(grid.Pos{X: 3, Y: 3}, 1) {
		m.Terrain.Set(p, ruleset.Grassland)
	}
	m.Terrain.Set(grid.Pos{X: 3, Y: 3}, ruleset.Ocean)
	m.Terrain.Set(grid.Pos{X: 10, Y: 10}, ruleset.Hills)
	return m
}

func TestAssignLabels(t *testing.T) {
	m := ringMap()
	Assign(m, ruleset.Classic())

	tests := []struct {
		p    grid.Pos
		want int
	}{
		{grid.Pos{X: 0, Y: 0}, -1},
		{grid.Pos{X: 2, Y: 2}, 1},
		{grid.Pos{X: 4, Y: 4}, 1},
		{grid.Pos{X: 3, Y: 3}, -2},
		{grid.Pos{X: 10, Y: 10}, 2},
		{grid.Pos{X: 15, Y: 15}, -1},
	}
	for _, tt := range tests {
		if got := m.Continents.At(tt.p); got != tt.want {
			t.Errorf("label%v = %d, want %d", tt.p, got, tt.want)
		}
	}
	if m.NumContinents() != 2 || m.NumOceans() != 2 {
		t.Fatalf("bodies = %d land, %d water, want 2, 2", m.NumContinents(), m.NumOceans())
	}
	if m.ComponentSize(1) != 8 || m.ComponentSize(2) != 1 {
		t.Errorf("continent sizes = %v", m.ContinentSizes)
	}
	if m.ComponentSize(-2) != 1 || m.ComponentSize(-1) != 246 {
		t.Errorf("ocean sizes = %v", m.OceanSizes)
	}
}

func TestSurrounders(t *testing.T) {
	m := ringMap()
	Assign(m, ruleset.Classic())

	if got := m.LakeSurrounders[2]; got != 1 {
		t.Errorf("pond surrounder = %d, want 1", got)
	}
	if got := m.LakeSurrounders[1]; got != Multiple {
		t.Errorf("open ocean surrounder = %d, want %d", got, Multiple)
	}
	if got := m.IslandSurrounders[1]; got != Multiple {
		t.Errorf("ring surrounder = %d, want %d", got, Multiple)
	}
	if got := m.IslandSurrounders[2]; got != 1 {
		t.Errorf("islet surrounder = %d, want 1", got)
	}
	if !IsLake(m, -2) || IsLake(m, -1) || IsLake(m, 1) {
		t.Error("IsLake mismatch")
	}
}

func TestUnknownStaysUnlabeled(t *testing.T) {
	m := ringMap()
	m.Terrain.Set(grid.Pos{X: 8, Y: 0}, ruleset.Unknown)
	Assign(m, ruleset.Classic())
	if got := m.Continents.At(grid.Pos{X: 8, Y: 0}); got != 0 {
		t.Errorf("unknown tile label = %d, want 0", got)
	}
}

func TestLabelsPartitionKnownTiles(t *testing.T) {
	m := ringMap()
	rs := ruleset.Classic()
	Assign(m, rs)
	for p := range m.Topo.All() {
		id := m.Continents.At(p)
		if id == 0 {
			t.Fatalf("label%v = 0 for known terrain", p)
		}
		if (id > 0) == rs.IsOceanic(m.Terrain.At(p)) {
			t.Fatalf("label%v = %d does not match terrain class", p, id)
		}
	}
}

func TestRegenerateLakes(t *testing.T) {
	m := ringMap()
	rs := ruleset.Classic()
	Assign(m, rs)
	if n := RegenerateLakes(m, rs); n != 1 {
		t.Fatalf("RegenerateLakes changed %d tiles, want 1", n)
	}
	if got := m.Terrain.At(grid.Pos{X: 3, Y: 3}); got != ruleset.Lake {
		t.Errorf("pond terrain = %v, want lake", got)
	}
	if got := m.Terrain.At(grid.Pos{X: 0, Y: 0}); got != ruleset.Ocean {
		t.Errorf("open ocean terrain = %v, want ocean", got)
	}
	if got := m.Continents.At(grid.Pos{X: 3, Y: 3}); got != -2 {
		t.Errorf("pond label after relabel = %d, want -2", got)
	}
}

func TestAssignLargeMap(t *testing.T) {
	m := world.New(grid.Topology{Width: 300, Height: 300})
	m.Terrain.Fill(ruleset.Plains)
	Assign(m, ruleset.Classic())
	if m.NumContinents() != 1 || m.ComponentSize(1) != 90000 {
		t.Errorf("continents = %d, size = %d", m.NumContinents(), m.ComponentSize(1))
	}
}

func TestLabelLandCountsUnknown(t *testing.T) {
	m := ringMap()
	m.Terrain.Set(grid.Pos{X: 11, Y: 11}, ruleset.Unknown)
	m.Terrain.Set(grid.Pos{X: 14, Y: 2}, ruleset.Unknown)
	rs := ruleset.Classic()
	labels := grid.New[int](m.Topo)
	n := LabelLand(m.Topo, labels, func(p grid.Pos) bool { return !rs.IsOceanic(m.Terrain.At(p)) })
	if n != 3 {
		t.Fatalf("LabelLand = %d components, want 3", n)
	}
	if labels.At(grid.Pos{X: 10, Y: 10}) != labels.At(grid.Pos{X: 11, Y: 11}) {
		t.Error("diagonal unknown tile should join the islet")
	}
	if labels.At(grid.Pos{X: 0, Y: 0}) != 0 {
		t.Error("water must stay unlabeled")
	}
}
