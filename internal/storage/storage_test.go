package storage

import (
	"errors"
	"log/slog"
	"os"
	"slices"
	"testing"

	"github.com/OCharnyshevich/mapgen/internal/config"
	"github.com/OCharnyshevich/mapgen/internal/grid"
	"github.com/OCharnyshevich/mapgen/internal/mapgen"
	"github.com/OCharnyshevich/mapgen/internal/ruleset"
	"github.com/OCharnyshevich/mapgen/internal/world"
)

func newStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(t.TempDir(), slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestConfigRoundTrip(t *testing.T) {
	s := newStorage(t)
	cfg := config.DefaultConfig()
	cfg.Seed = 1234
	cfg.Generator = "islands"
	cfg.WrapY = true
	if err := s.SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	if _, err := os.Stat(s.Path(configFile + ".tmp")); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}

	got := config.DefaultConfig()
	if err := s.LoadConfig(got); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if *got != *cfg {
		t.Errorf("loaded %+v, want %+v", got, cfg)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	s := newStorage(t)
	cfg := config.DefaultConfig()
	if err := s.LoadConfig(cfg); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if *cfg != *config.DefaultConfig() {
		t.Error("missing file must leave config unchanged")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	s := newStorage(t)
	if err := os.WriteFile(s.Path(configFile), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.LoadConfig(config.DefaultConfig()); err == nil {
		t.Fatal("expected parse error")
	}
}

func generate(t *testing.T) (*world.Map, *ruleset.Ruleset) {
	t.Helper()
	settings := mapgen.Settings{
		Topology:    grid.Topology{Width: 40, Height: 32, WrapX: true},
		LandPercent: 30,
		Wetness:     50,
		Temperature: 50,
		Steepness:   30,
		Rivers:      50,
		Riches:      250,
		Huts:        50,
		Lakes:       true,
		Generator:   mapgen.GenArchipelago,
		Players:     2,
		Seed:        5,
	}
	rs := ruleset.Classic()
	m, err := mapgen.Generate(settings, rs, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return m, rs
}

func TestSaveReport(t *testing.T) {
	s := newStorage(t)
	m, rs := generate(t)
	if err := s.SaveReport(m, rs); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
	r, err := s.LoadReport()
	if err != nil || r == nil {
		t.Fatalf("LoadReport = %v, %v", r, err)
	}
	if r.Fingerprint != m.Fingerprint() {
		t.Errorf("fingerprint = %s, want %s", r.Fingerprint, m.Fingerprint())
	}
	if r.Seed != 5 || r.Width != 40 || r.Height != 32 {
		t.Errorf("report header = seed %d %dx%d", r.Seed, r.Width, r.Height)
	}
	// 32 rows is too narrow for archipelago.
	if r.Generator == "archipelago" || len(r.Fallbacks) == 0 || r.Fallbacks[0] != "archipelago" {
		t.Errorf("generator = %s, fallbacks = %v", r.Generator, r.Fallbacks)
	}
	if len(r.Starts) != 2 {
		t.Errorf("starts = %d, want 2", len(r.Starts))
	}
	if r.RunID == "" {
		t.Error("run id missing")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := newStorage(t)
	m, _ := generate(t)
	if err := s.SaveSnapshot(m); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	got, err := s.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if got.Fingerprint() != m.Fingerprint() {
		t.Error("fingerprint changed across snapshot")
	}
	if got.Topo != m.Topo || got.Seed != m.Seed || got.Generator != m.Generator {
		t.Errorf("header = %+v seed %d gen %d", got.Topo, got.Seed, got.Generator)
	}
	if !slices.Equal(got.ContinentSizes, m.ContinentSizes) {
		t.Errorf("continent sizes = %v, want %v", got.ContinentSizes, m.ContinentSizes)
	}
	if !slices.Equal(got.IslandSurrounders, m.IslandSurrounders) {
		t.Errorf("island surrounders = %v, want %v", got.IslandSurrounders, m.IslandSurrounders)
	}
	if !slices.Equal(got.Fallbacks, m.Fallbacks) {
		t.Errorf("fallbacks = %v, want %v", got.Fallbacks, m.Fallbacks)
	}
	if got.RunID != m.RunID || got.StartDistance != m.StartDistance {
		t.Errorf("run id %q distance %d, want %q %d", got.RunID, got.StartDistance, m.RunID, m.StartDistance)
	}
}

func TestSnapshotCorrupt(t *testing.T) {
	s := newStorage(t)
	if err := os.WriteFile(s.Path(snapshotFile), []byte("not lz4 at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadSnapshot(); !errors.Is(err, ErrCorruptSnapshot) {
		t.Fatalf("LoadSnapshot = %v, want ErrCorruptSnapshot", err)
	}
}
