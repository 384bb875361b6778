// Package render draws previews of a generated map: a terminal view with
// one glyph per tile and a PNG image.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/OCharnyshevich/mapgen/internal/grid"
	"github.com/OCharnyshevich/mapgen/internal/ruleset"
	"github.com/OCharnyshevich/mapgen/internal/world"
)

var glyphs = [ruleset.NumTerrains]rune{
	ruleset.Unknown:   '?',
	ruleset.Ocean:     '.',
	ruleset.Lake:      '~',
	ruleset.Arctic:    'a',
	ruleset.Desert:    'd',
	ruleset.Forest:    'f',
	ruleset.Grassland: 'g',
	ruleset.Hills:     'h',
	ruleset.Jungle:    'j',
	ruleset.Mountains: 'm',
	ruleset.Plains:    'p',
	ruleset.Swamp:     's',
	ruleset.Tundra:    't',
}

var styles = [ruleset.NumTerrains]lipgloss.Style{
	ruleset.Unknown:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	ruleset.Ocean:     lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	ruleset.Lake:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	ruleset.Arctic:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	ruleset.Desert:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	ruleset.Forest:    lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
	ruleset.Grassland: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	ruleset.Hills:     lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
	ruleset.Jungle:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	ruleset.Mountains: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	ruleset.Plains:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	ruleset.Swamp:     lipgloss.NewStyle().Foreground(lipgloss.Color("66")),
	ruleset.Tundra:    lipgloss.NewStyle().Foreground(lipgloss.Color("248")),
}

var (
	riverStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	hutStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	startStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("9")).Bold(true)
)

// Glyph returns the character for tile p. Start positions show the nation
// slot (0-9, then '@'), huts 'H', and river tiles the upper-case terrain
// letter.
func Glyph(m *world.Map, starts map[grid.Pos]int, p grid.Pos) rune {
	if n, ok := starts[p]; ok {
		if n < 10 {
			return rune('0' + n)
		}
		return '@'
	}
	sp := m.Specials.At(p)
	if sp.Has(ruleset.Hut) {
		return 'H'
	}
	g := glyphs[m.Terrain.At(p)]
	if sp.Has(ruleset.River) && g >= 'a' && g <= 'z' {
		g -= 'a' - 'A'
	}
	return g
}

// ASCII renders m as one line per row. With color off the output is plain
// text; otherwise runs of equally styled tiles are wrapped in lipgloss
// styles.
func ASCII(m *world.Map, color bool) string {
	starts := make(map[grid.Pos]int, len(m.Starts))
	for _, s := range m.Starts {
		starts[s.Pos] = s.Nation
	}

	var b strings.Builder
	var run strings.Builder
	for y := 0; y < m.Topo.Height; y++ {
		var cur *lipgloss.Style
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur != nil {
				b.WriteString(cur.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			run.Reset()
		}
		for x := 0; x < m.Topo.Width; x++ {
			p := grid.Pos{X: x, Y: y}
			g := Glyph(m, starts, p)
			if color {
				st := styleFor(m, starts, p)
				if st != cur {
					flush()
					cur = st
				}
			}
			run.WriteRune(g)
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}

func styleFor(m *world.Map, starts map[grid.Pos]int, p grid.Pos) *lipgloss.Style {
	if _, ok := starts[p]; ok {
		return &startStyle
	}
	sp := m.Specials.At(p)
	switch {
	case sp.Has(ruleset.Hut):
		return &hutStyle
	case sp.Has(ruleset.River):
		return &riverStyle
	}
	return &styles[m.Terrain.At(p)]
}
