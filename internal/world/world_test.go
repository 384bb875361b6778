package world

import (
	"testing"

	"github.com/OCharnyshevich/mapgen/internal/grid"
	"github.com/OCharnyshevich/mapgen/internal/ruleset"
)

func sample() *Map {
	m := New(grid.Topology{Width: 16, Height: 16, WrapX: true})
	m.Terrain.Fill(ruleset.Ocean)
	m.Terrain.Set(grid.Pos{X: 3, Y: 4}, ruleset.Grassland)
	m.Terrain.Set(grid.Pos{X: 4, Y: 4}, ruleset.Hills)
	m.SetSpecial(grid.Pos{X: 3, Y: 4}, ruleset.River)
	m.Starts = []StartPos{{Pos: grid.Pos{X: 3, Y: 4}}}
	return m
}

func TestFingerprintStable(t *testing.T) {
	a, b := sample(), sample()
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatal("equal maps must have equal fingerprints")
	}
	if len(a.Fingerprint()) != 64 {
		t.Errorf("fingerprint length = %d, want 64", len(a.Fingerprint()))
	}
}

func TestFingerprintSensitive(t *testing.T) {
	base := sample().Fingerprint()
	changes := []struct {
		name string
		edit func(*Map)
	}{
		{"terrain", func(m *Map) { m.Terrain.Set(grid.Pos{X: 0, Y: 0}, ruleset.Arctic) }},
		{"special", func(m *Map) { m.SetSpecial(grid.Pos{X: 4, Y: 4}, ruleset.Hut) }},
		{"label", func(m *Map) { m.Continents.Set(grid.Pos{X: 3, Y: 4}, 1) }},
		{"start", func(m *Map) { m.Starts[0].Nation = 2 }},
		{"wrap", func(m *Map) { m.Topo.WrapY = true }},
	}
	for _, c := range changes {
		m := sample()
		c.edit(m)
		if m.Fingerprint() == base {
			t.Errorf("%s change did not alter the fingerprint", c.name)
		}
	}
}

func TestSpecials(t *testing.T) {
	m := sample()
	p := grid.Pos{X: 3, Y: 4}
	m.SetSpecial(p, ruleset.Hut)
	if !m.HasSpecial(p, ruleset.River|ruleset.Hut) {
		t.Fatal("expected river and hut")
	}
	m.ClearSpecial(p, ruleset.River)
	if m.HasSpecial(p, ruleset.River) || !m.HasSpecial(p, ruleset.Hut) {
		t.Errorf("ClearSpecial removed the wrong flag: %v", m.Specials.At(p))
	}
	if n := m.CountSpecial(ruleset.Hut); n != 1 {
		t.Errorf("CountSpecial(hut) = %d, want 1", n)
	}
}

func TestCountLandAndSizes(t *testing.T) {
	m := sample()
	if n := m.CountLand(ruleset.Classic()); n != 2 {
		t.Errorf("CountLand = %d, want 2", n)
	}
	m.ContinentSizes = []int{0, 2}
	m.OceanSizes = []int{0, 254}
	if m.NumContinents() != 1 || m.NumOceans() != 1 {
		t.Errorf("counts = %d, %d, want 1, 1", m.NumContinents(), m.NumOceans())
	}
	if m.ComponentSize(1) != 2 || m.ComponentSize(-1) != 254 || m.ComponentSize(5) != 0 {
		t.Error("ComponentSize mismatch")
	}
}
