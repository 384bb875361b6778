package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/OCharnyshevich/mapgen/internal/grid"
	"github.com/OCharnyshevich/mapgen/internal/ruleset"
	"github.com/OCharnyshevich/mapgen/internal/world"
)

// twoIslands is a 20x16 ocean with a grassland block labeled 1 and a
// desert block labeled 2.
func twoIslands() *world.Map {
	topo := grid.Topology{Width: 20, Height: 16}
	m := world.New(topo)
	m.Terrain.Fill(ruleset.Ocean)
	m.Continents.Fill(-1)
	for p := range topo.All() {
		switch {
		case p.X >= 2 && p.X < 8 && p.Y >= 2 && p.Y < 8:
			m.Terrain.Set(p, ruleset.Grassland)
			m.Continents.Set(p, 1)
		case p.X >= 12 && p.X < 18 && p.Y >= 8 && p.Y < 14:
			m.Terrain.Set(p, ruleset.Desert)
			m.Continents.Set(p, 2)
		}
	}
	m.ContinentSizes = []int{0, 36, 36}
	m.OceanSizes = []int{0, topo.NumTiles() - 72}
	return m
}

func TestASCIIPlain(t *testing.T) {
	m := twoIslands()
	m.SetSpecial(grid.Pos{X: 3, Y: 3}, ruleset.River)
	m.SetSpecial(grid.Pos{X: 13, Y: 9}, ruleset.Hut)
	m.Starts = []world.StartPos{{Pos: grid.Pos{X: 5, Y: 5}, Nation: 0}, {Pos: grid.Pos{X: 15, Y: 11}, Nation: 1}}

	out := ASCII(m, false)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 16 {
		t.Fatalf("lines = %d, want 16", len(lines))
	}
	for i, l := range lines {
		if len(l) != 20 {
			t.Fatalf("line %d has %d runes, want 20", i, len(l))
		}
	}

	tests := []struct {
		p    grid.Pos
		want byte
	}{
		{grid.Pos{X: 0, Y: 0}, '.'},
		{grid.Pos{X: 2, Y: 2}, 'g'},
		{grid.Pos{X: 3, Y: 3}, 'G'},
		{grid.Pos{X: 13, Y: 9}, 'H'},
		{grid.Pos{X: 12, Y: 8}, 'd'},
		{grid.Pos{X: 5, Y: 5}, '0'},
		{grid.Pos{X: 15, Y: 11}, '1'},
	}
	for _, tt := range tests {
		if got := lines[tt.p.Y][tt.p.X]; got != tt.want {
			t.Errorf("glyph at %v = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestASCIIColorKeepsGlyphs(t *testing.T) {
	m := twoIslands()
	colored := ASCII(m, true)
	if !strings.Contains(colored, "g") || !strings.Contains(colored, "d") {
		t.Fatal("colored output lost the terrain glyphs")
	}
	if strings.Count(colored, "\n") != 16 {
		t.Errorf("colored output has %d lines, want 16", strings.Count(colored, "\n"))
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("continents"); err != nil || m != ModeContinents {
		t.Errorf("ParseMode(continents) = %v, %v", m, err)
	}
	if m, err := ParseMode("terrain"); err != nil || m != ModeTerrain {
		t.Errorf("ParseMode(terrain) = %v, %v", m, err)
	}
	if _, err := ParseMode("height"); err == nil {
		t.Error("ParseMode(height) should fail")
	}
}

func TestImageTerrainColors(t *testing.T) {
	m := twoIslands()
	img := Image(m, ModeTerrain, 4)
	if b := img.Bounds(); b.Dx() != 80 || b.Dy() != 64 {
		t.Fatalf("bounds = %v, want 80x64", b)
	}
	tests := []struct {
		p    grid.Pos
		want ruleset.Terrain
	}{
		{grid.Pos{X: 0, Y: 0}, ruleset.Ocean},
		{grid.Pos{X: 4, Y: 4}, ruleset.Grassland},
		{grid.Pos{X: 14, Y: 10}, ruleset.Desert},
	}
	for _, tt := range tests {
		r, g, b, _ := img.At(tt.p.X*4+2, tt.p.Y*4+2).RGBA()
		want := palette[tt.want]
		if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
			t.Errorf("pixel at %v = (%d,%d,%d), want %v", tt.p, r>>8, g>>8, b>>8, want)
		}
	}
}

func TestImageContinentsDistinct(t *testing.T) {
	m := twoIslands()
	img := Image(m, ModeContinents, 2)
	a := img.At(4*2+1, 4*2+1)
	b := img.At(14*2+1, 10*2+1)
	ar, ag, ab, _ := a.RGBA()
	br, bg, bb, _ := b.RGBA()
	if ar == br && ag == bg && ab == bb {
		t.Error("continents 1 and 2 share a color")
	}
}

func TestEncodePNG(t *testing.T) {
	m := twoIslands()
	var buf bytes.Buffer
	if err := EncodePNG(&buf, m, ModeTerrain, 1); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 16 {
		t.Errorf("bounds = %v, want 20x16", b)
	}
}
