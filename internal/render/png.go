package render

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/mazznoer/colorgrad"

	"github.com/OCharnyshevich/mapgen/internal/grid"
	"github.com/OCharnyshevich/mapgen/internal/ruleset"
	"github.com/OCharnyshevich/mapgen/internal/world"
)

// Mode selects what the PNG colors encode.
type Mode int

const (
	ModeTerrain Mode = iota
	ModeContinents
)

// ParseMode resolves "terrain" or "continents".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "terrain", "":
		return ModeTerrain, nil
	case "continents":
		return ModeContinents, nil
	}
	return 0, fmt.Errorf("unknown png mode %q, want terrain or continents", s)
}

var palette = [ruleset.NumTerrains]color.RGBA{
	ruleset.Unknown:   {255, 0, 255, 255},
	ruleset.Ocean:     {28, 60, 140, 255},
	ruleset.Lake:      {70, 130, 200, 255},
	ruleset.Arctic:    {235, 240, 245, 255},
	ruleset.Desert:    {225, 200, 120, 255},
	ruleset.Forest:    {34, 100, 40, 255},
	ruleset.Grassland: {110, 180, 70, 255},
	ruleset.Hills:     {150, 120, 70, 255},
	ruleset.Jungle:    {20, 120, 80, 255},
	ruleset.Mountains: {120, 110, 110, 255},
	ruleset.Plains:    {180, 170, 80, 255},
	ruleset.Swamp:     {80, 110, 90, 255},
	ruleset.Tundra:    {170, 170, 150, 255},
}

var (
	riverColor = color.RGBA{60, 140, 230, 255}
	hutColor   = color.RGBA{200, 40, 40, 255}
	oceanShade = color.RGBA{20, 40, 90, 255}
)

// TileColor returns the fill color of tile p in the given mode. conts holds
// one color per continent, indexed by label-1.
func TileColor(m *world.Map, mode Mode, conts []color.Color, p grid.Pos) color.Color {
	t := m.Terrain.At(p)
	if mode == ModeTerrain {
		return palette[t]
	}
	label := m.Continents.At(p)
	switch {
	case label > 0 && label <= len(conts):
		return conts[label-1]
	case t == ruleset.Lake:
		return palette[ruleset.Lake]
	case label < 0:
		return oceanShade
	}
	return palette[ruleset.Unknown]
}

// Draw paints m at scale pixels per tile.
func Draw(m *world.Map, mode Mode, scale int) *gg.Context {
	scale = max(1, scale)
	s := float64(scale)
	dc := gg.NewContext(m.Topo.Width*scale, m.Topo.Height*scale)

	var conts []color.Color
	if mode == ModeContinents && m.NumContinents() > 0 {
		conts = colorgrad.Rainbow().Colors(uint(m.NumContinents()))
	}

	for p := range m.Topo.All() {
		dc.SetColor(TileColor(m, mode, conts, p))
		dc.DrawRectangle(float64(p.X)*s, float64(p.Y)*s, s, s)
		dc.Fill()
	}

	if mode == ModeTerrain {
		drawRivers(dc, m, s)
		drawHuts(dc, m, s)
	}
	drawStarts(dc, m, s)
	return dc
}

// Image renders m and returns the bitmap.
func Image(m *world.Map, mode Mode, scale int) image.Image {
	return Draw(m, mode, scale).Image()
}

// SavePNG renders m into a PNG file.
func SavePNG(path string, m *world.Map, mode Mode, scale int) error {
	if err := Draw(m, mode, scale).SavePNG(path); err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	return nil
}

// EncodePNG renders m as PNG into w.
func EncodePNG(w io.Writer, m *world.Map, mode Mode, scale int) error {
	return Draw(m, mode, scale).EncodePNG(w)
}

// drawRivers links each river tile to its river or water neighbors with a
// line through the tile centers. Edges that wrap are skipped.
func drawRivers(dc *gg.Context, m *world.Map, s float64) {
	dc.SetColor(riverColor)
	dc.SetLineWidth(max(1, s/4))
	dc.SetLineCapRound()
	for p := range m.Topo.All() {
		if !m.HasSpecial(p, ruleset.River) {
			continue
		}
		cx, cy := center(p, s)
		linked := false
		for n := range m.Topo.Cardinal(p) {
			if abs(n.X-p.X) > 1 || abs(n.Y-p.Y) > 1 {
				continue
			}
			t := m.Terrain.At(n)
			if !m.HasSpecial(n, ruleset.River) && t != ruleset.Ocean && t != ruleset.Lake {
				continue
			}
			nx, ny := center(n, s)
			dc.DrawLine(cx, cy, (cx+nx)/2, (cy+ny)/2)
			dc.Stroke()
			linked = true
		}
		if !linked {
			dc.DrawPoint(cx, cy, max(1, s/6))
			dc.Fill()
		}
	}
}

func drawHuts(dc *gg.Context, m *world.Map, s float64) {
	dc.SetColor(hutColor)
	for p := range m.Topo.All() {
		if m.HasSpecial(p, ruleset.Hut) {
			cx, cy := center(p, s)
			dc.DrawRectangle(cx-s/6, cy-s/6, s/3, s/3)
			dc.Fill()
		}
	}
}

func drawStarts(dc *gg.Context, m *world.Map, s float64) {
	for _, st := range m.Starts {
		cx, cy := center(st.Pos, s)
		dc.DrawCircle(cx, cy, max(1.5, s*0.4))
		dc.SetRGB(1, 1, 1)
		dc.FillPreserve()
		dc.SetRGB(0, 0, 0)
		dc.SetLineWidth(max(1, s/8))
		dc.Stroke()
	}
}

func center(p grid.Pos, s float64) (float64, float64) {
	return (float64(p.X) + 0.5) * s, (float64(p.Y) + 0.5) * s
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
