package ruleset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/OCharnyshevich/mapgen/internal/suggest"
)

//go:embed classic.json
var classicJSON []byte

// ErrInvalid is returned for ruleset files that fail validation.
var ErrInvalid = errors.New("invalid ruleset")

type file struct {
	Name          string                 `json:"name"`
	RiverTrade    int                    `json:"river_trade"`
	RiverFallback string                 `json:"river_fallback"`
	LakeMaxSize   int                    `json:"lake_max_size"`
	Terrains      map[string]TerrainInfo `json:"terrains"`
}

// Classic returns the built-in ruleset.
func Classic() *Ruleset {
	rs, err := Load(bytes.NewReader(classicJSON))
	if err != nil {
		panic(fmt.Sprintf("builtin ruleset: %v", err))
	}
	return rs
}

// LoadFile reads and validates a ruleset JSON file.
func LoadFile(path string) (*Ruleset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ruleset: %w", err)
	}
	defer f.Close()

	rs, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load ruleset %s: %w", path, err)
	}
	return rs, nil
}

// Load decodes and validates a ruleset.
func Load(r io.Reader) (*Ruleset, error) {
	var f file
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode ruleset: %w", err)
	}

	rs := &Ruleset{name: f.Name, riverTrade: f.RiverTrade, lakeMaxSize: f.LakeMaxSize}
	if rs.name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrInvalid)
	}
	if rs.lakeMaxSize < 0 {
		return nil, fmt.Errorf("%w: lake_max_size %d is negative", ErrInvalid, rs.lakeMaxSize)
	}

	roles := terrainNames[1:]
	seen := make(map[Terrain]bool, NumTerrains)
	for key, info := range f.Terrains {
		t, ok := ParseTerrain(key)
		if !ok || t == Unknown {
			return nil, fmt.Errorf("%w: unknown terrain %q%s", ErrInvalid, key, suggest.Hint(key, roles))
		}
		if err := validateTerrain(t, &info); err != nil {
			return nil, err
		}
		if info.Name == "" {
			info.Name = strings.ToUpper(key[:1]) + key[1:]
		}
		rs.terrains[t] = info
		seen[t] = true
	}
	for i := 1; i < NumTerrains; i++ {
		if !seen[Terrain(i)] {
			return nil, fmt.Errorf("%w: terrain %q not defined", ErrInvalid, terrainNames[i])
		}
	}
	rs.terrains[Unknown] = TerrainInfo{Name: "Unknown", Class: ClassLand}

	fb, err := rs.Lookup(f.RiverFallback)
	if err != nil {
		return nil, fmt.Errorf("%w: river_fallback: %v", ErrInvalid, err)
	}
	if rs.IsOceanic(fb) || !rs.CanCarryRiver(fb) {
		return nil, fmt.Errorf("%w: river_fallback %q cannot carry a river", ErrInvalid, f.RiverFallback)
	}
	rs.riverFallback = fb
	return rs, nil
}

func validateTerrain(t Terrain, info *TerrainInfo) error {
	switch info.Class {
	case ClassLand, ClassOcean:
	default:
		return fmt.Errorf("%w: %s: class %q must be land or ocean", ErrInvalid, t, info.Class)
	}
	if (t == Ocean || t == Lake) != (info.Class == ClassOcean) {
		return fmt.Errorf("%w: %s: wrong class %q", ErrInvalid, t, info.Class)
	}
	for _, flag := range info.Flags {
		if !slices.Contains(knownFlags, flag) {
			return fmt.Errorf("%w: %s: unknown flag %q%s", ErrInvalid, t, flag, suggest.Hint(flag, knownFlags))
		}
	}
	if len(info.Resources) > 2 {
		return fmt.Errorf("%w: %s: at most 2 resources, got %d", ErrInvalid, t, len(info.Resources))
	}
	return nil
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func (r *Ruleset) hint(name string) string {
	names := make([]string, 0, 2*NumTerrains)
	for i := 1; i < NumTerrains; i++ {
		names = append(names, r.terrains[i].Name, terrainNames[i])
	}
	return suggest.Hint(name, names)
}
