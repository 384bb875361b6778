package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/OCharnyshevich/mapgen/internal/grid"
	"github.com/OCharnyshevich/mapgen/internal/latitude"
	"github.com/OCharnyshevich/mapgen/internal/mapgen"
	"github.com/OCharnyshevich/mapgen/internal/rng"
	"github.com/OCharnyshevich/mapgen/internal/suggest"
)

// ErrInvalid is returned by Validate and ParseGenerator.
var ErrInvalid = errors.New("invalid config")

// Config holds the generator configuration.
type Config struct {
	Width          int  `json:"width"`
	Height         int  `json:"height"`
	Autosize       bool `json:"autosize"`
	Size           int  `json:"size"` // thousands of tiles, 0 = derive from players
	TilesPerPlayer int  `json:"tiles_per_player"`
	WrapX          bool `json:"wrap_x"`
	WrapY          bool `json:"wrap_y"`

	LandPercent int `json:"landpercent"`
	Wetness     int `json:"wetness"`
	Temperature int `json:"temperature"`
	Steepness   int `json:"steepness"`
	Rivers      int `json:"rivers"`
	Riches      int `json:"riches"`
	Huts        int `json:"huts"`

	SeparatePoles bool `json:"separate_poles"`
	AllTemperate  bool `json:"all_temperate"`
	TinyIsles     bool `json:"tiny_isles"`
	Lakes         bool `json:"lakes"`

	Generator string `json:"generator"` // number or name
	Players   int    `json:"players"`
	Seed      int64  `json:"seed"` // 0 = random

	Ruleset string `json:"ruleset"` // file path or getter URL, "" = classic
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Width:          80,
		Height:         50,
		Size:           4,
		TilesPerPlayer: 100,
		WrapX:          true,
		LandPercent:    30,
		Wetness:        50,
		Temperature:    50,
		Steepness:      30,
		Rivers:         50,
		Riches:         250,
		Huts:           50,
		Lakes:          true,
		Generator:      mapgen.GenFractal.String(),
		Players:        4,
	}
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["width"] {
		cfg.Width = fromFile.Width
	}
	if !explicitFlags["height"] {
		cfg.Height = fromFile.Height
	}
	if !explicitFlags["autosize"] {
		cfg.Autosize = fromFile.Autosize
	}
	if !explicitFlags["size"] {
		cfg.Size = fromFile.Size
	}
	if !explicitFlags["tiles-per-player"] {
		cfg.TilesPerPlayer = fromFile.TilesPerPlayer
	}
	if !explicitFlags["wrap-x"] {
		cfg.WrapX = fromFile.WrapX
	}
	if !explicitFlags["wrap-y"] {
		cfg.WrapY = fromFile.WrapY
	}
	if !explicitFlags["landpercent"] {
		cfg.LandPercent = fromFile.LandPercent
	}
	if !explicitFlags["wetness"] {
		cfg.Wetness = fromFile.Wetness
	}
	if !explicitFlags["temperature"] {
		cfg.Temperature = fromFile.Temperature
	}
	if !explicitFlags["steepness"] {
		cfg.Steepness = fromFile.Steepness
	}
	if !explicitFlags["rivers"] {
		cfg.Rivers = fromFile.Rivers
	}
	if !explicitFlags["riches"] {
		cfg.Riches = fromFile.Riches
	}
	if !explicitFlags["huts"] {
		cfg.Huts = fromFile.Huts
	}
	if !explicitFlags["separate-poles"] {
		cfg.SeparatePoles = fromFile.SeparatePoles
	}
	if !explicitFlags["all-temperate"] {
		cfg.AllTemperate = fromFile.AllTemperate
	}
	if !explicitFlags["tiny-isles"] {
		cfg.TinyIsles = fromFile.TinyIsles
	}
	if !explicitFlags["lakes"] {
		cfg.Lakes = fromFile.Lakes
	}
	if !explicitFlags["generator"] {
		cfg.Generator = fromFile.Generator
	}
	if !explicitFlags["players"] {
		cfg.Players = fromFile.Players
	}
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["ruleset"] {
		cfg.Ruleset = fromFile.Ruleset
	}
}

type limit struct {
	name     string
	value    int64
	min, max int64
}

// Validate checks every knob against its accepted range.
func (c *Config) Validate() error {
	limits := []limit{
		{"landpercent", int64(c.LandPercent), 15, 85},
		{"wetness", int64(c.Wetness), 0, 100},
		{"temperature", int64(c.Temperature), 0, 100},
		{"steepness", int64(c.Steepness), 0, 100},
		{"rivers", int64(c.Rivers), 0, 100},
		{"riches", int64(c.Riches), 0, 1000},
		{"huts", int64(c.Huts), 0, 500},
		{"players", int64(c.Players), 1, 128},
		{"seed", c.Seed, 0, rng.MaxSeed},
	}
	if c.Autosize {
		limits = append(limits,
			limit{"size", int64(c.Size), 0, latitude.MaxSize},
			limit{"tiles_per_player", int64(c.TilesPerPlayer), 1, 1000},
		)
	} else {
		limits = append(limits,
			limit{"width", int64(c.Width), grid.MinLinearSize, grid.MaxLinearSize},
			limit{"height", int64(c.Height), grid.MinLinearSize, grid.MaxLinearSize},
		)
	}
	for _, l := range limits {
		if l.value < l.min || l.value > l.max {
			return fmt.Errorf("%w: %s = %d, want %d..%d", ErrInvalid, l.name, l.value, l.min, l.max)
		}
	}
	if _, err := ParseGenerator(c.Generator); err != nil {
		return err
	}
	return nil
}

// ParseGenerator resolves a generator given by number or by name.
func ParseGenerator(s string) (mapgen.Generator, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if g := mapgen.Generator(n); g.Valid() {
			return g, nil
		}
		return 0, fmt.Errorf("%w: generator = %d, want 1..%d", ErrInvalid, n, int(mapgen.GenFractal))
	}
	if g, ok := mapgen.GeneratorByName(s); ok {
		return g, nil
	}
	names := mapgen.GeneratorNames()
	return 0, fmt.Errorf("%w: unknown generator %q%s", ErrInvalid, s, suggest.Hint(s, names))
}

// Dimensions returns the map size, applying auto-sizing when enabled.
func (c *Config) Dimensions() (int, int) {
	if !c.Autosize {
		return c.Width, c.Height
	}
	size := c.Size
	if size == 0 {
		size = latitude.SizeForPlayers(c.Players, c.TilesPerPlayer, c.LandPercent)
	}
	return latitude.AutoSize(float64(size), c.WrapX, c.WrapY)
}

// Settings validates c and converts it to generator settings.
func (c *Config) Settings() (mapgen.Settings, error) {
	if err := c.Validate(); err != nil {
		return mapgen.Settings{}, err
	}
	gen, err := ParseGenerator(c.Generator)
	if err != nil {
		return mapgen.Settings{}, err
	}
	w, h := c.Dimensions()
	return mapgen.Settings{
		Topology:      grid.Topology{Width: w, Height: h, WrapX: c.WrapX, WrapY: c.WrapY},
		LandPercent:   c.LandPercent,
		Wetness:       c.Wetness,
		Temperature:   c.Temperature,
		Steepness:     c.Steepness,
		Rivers:        c.Rivers,
		Riches:        c.Riches,
		Huts:          c.Huts,
		SeparatePoles: c.SeparatePoles,
		AllTemperate:  c.AllTemperate,
		TinyIsles:     c.TinyIsles,
		Lakes:         c.Lakes,
		Generator:     gen,
		Players:       c.Players,
		Seed:          c.Seed,
	}, nil
}
