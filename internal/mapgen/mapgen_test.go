package mapgen

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/OCharnyshevich/mapgen/internal/continent"
	"github.com/OCharnyshevich/mapgen/internal/grid"
	"github.com/OCharnyshevich/mapgen/internal/latitude"
	"github.com/OCharnyshevich/mapgen/internal/rng"
	"github.com/OCharnyshevich/mapgen/internal/ruleset"
	"github.com/OCharnyshevich/mapgen/internal/world"
)

var discard = slog.New(slog.DiscardHandler)

func testSettings(gen Generator) Settings {
	return Settings{
		Topology:    grid.Topology{Width: 64, Height: 48, WrapX: true},
		LandPercent: 30,
		Wetness:     50,
		Temperature: 50,
		Steepness:   30,
		Rivers:      50,
		Riches:      250,
		Huts:        50,
		Lakes:       true,
		Generator:   gen,
		Players:     4,
		Seed:        42,
	}
}

func generate(t *testing.T, s Settings) *world.Map {
	t.Helper()
	m, err := Generate(s, ruleset.Classic(), discard)
	if err != nil {
		t.Fatalf("Generate(%v): %v", s.Generator, err)
	}
	return m
}

func allGenerators() []Generator {
	return []Generator{GenRandom, GenIslands, GenArchipelago, GenPaired, GenFractal}
}

func TestGenerateDeterministic(t *testing.T) {
	for _, gen := range allGenerators() {
		t.Run(gen.String(), func(t *testing.T) {
			a := generate(t, testSettings(gen))
			b := generate(t, testSettings(gen))
			if a.Fingerprint() != b.Fingerprint() {
				t.Fatal("same seed produced different maps")
			}
			s := testSettings(gen)
			s.Seed = 43
			if c := generate(t, s); c.Fingerprint() == a.Fingerprint() {
				t.Error("different seeds produced the same map")
			}
		})
	}
}

func TestGenerateComplete(t *testing.T) {
	for _, gen := range allGenerators() {
		t.Run(gen.String(), func(t *testing.T) {
			m := generate(t, testSettings(gen))
			for p := range m.Topo.All() {
				if m.Terrain.At(p) == ruleset.Unknown {
					t.Fatalf("tile %v left unknown", p)
				}
			}
			if m.Generator != int(gen) {
				t.Errorf("Generator = %d, want %d", m.Generator, gen)
			}
			if m.RunID == "" {
				t.Error("RunID is empty")
			}
		})
	}
}

func TestGenerateLandFraction(t *testing.T) {
	for _, gen := range []Generator{GenRandom, GenFractal} {
		t.Run(gen.String(), func(t *testing.T) {
			s := testSettings(gen)
			m := generate(t, s)
			pct := m.CountLand(ruleset.Classic()) * 100 / m.Topo.NumTiles()
			if pct < s.LandPercent-10 || pct > s.LandPercent+10 {
				t.Errorf("land = %d%%, want about %d%%", pct, s.LandPercent)
			}
		})
	}
}

func TestGenerateLabelsPartition(t *testing.T) {
	rs := ruleset.Classic()
	for _, gen := range allGenerators() {
		t.Run(gen.String(), func(t *testing.T) {
			m := generate(t, testSettings(gen))
			seenLand := make([]bool, m.NumContinents()+1)
			seenWater := make([]bool, m.NumOceans()+1)
			for p := range m.Topo.All() {
				id := m.Continents.At(p)
				switch {
				case id == 0:
					t.Fatalf("tile %v unlabeled", p)
				case id > 0:
					if rs.IsOceanic(m.Terrain.At(p)) {
						t.Fatalf("water tile %v has land label %d", p, id)
					}
					seenLand[id] = true
				default:
					if !rs.IsOceanic(m.Terrain.At(p)) {
						t.Fatalf("land tile %v has water label %d", p, id)
					}
					seenWater[-id] = true
				}
			}
			for id := 1; id < len(seenLand); id++ {
				if !seenLand[id] {
					t.Errorf("continent %d has no tiles", id)
				}
			}
			for id := 1; id < len(seenWater); id++ {
				if !seenWater[id] {
					t.Errorf("ocean %d has no tiles", id)
				}
			}
		})
	}
}

func TestGenerateStarts(t *testing.T) {
	rs := ruleset.Classic()
	for _, gen := range allGenerators() {
		t.Run(gen.String(), func(t *testing.T) {
			s := testSettings(gen)
			m := generate(t, s)
			if len(m.Starts) != s.Players {
				t.Fatalf("len(Starts) = %d, want %d", len(m.Starts), s.Players)
			}
			for i, a := range m.Starts {
				if !rs.IsStarterEligible(m.Terrain.At(a.Pos)) {
					t.Errorf("start %v on %v", a.Pos, m.Terrain.At(a.Pos))
				}
				if m.HasSpecial(a.Pos, ruleset.Hut) {
					t.Errorf("start %v on a hut", a.Pos)
				}
				for _, b := range m.Starts[i+1:] {
					if m.Continents.At(a.Pos) == m.Continents.At(b.Pos) &&
						m.Topo.RealDistance(a.Pos, b.Pos) < m.StartDistance {
						t.Errorf("starts %v and %v closer than %d", a.Pos, b.Pos, m.StartDistance)
					}
				}
			}
		})
	}
}

func TestGeneratePostProcessing(t *testing.T) {
	rs := ruleset.Classic()
	s := testSettings(GenFractal)
	s.Huts = 200
	m := generate(t, s)

	for p := range m.Topo.All() {
		t0 := m.Terrain.At(p)
		if !rs.IsOceanic(t0) && t0 != ruleset.Arctic {
			tiny := true
			for n := range m.Topo.Cardinal(p) {
				if !rs.IsOceanic(m.Terrain.At(n)) {
					tiny = false
				}
			}
			if tiny {
				t.Errorf("tiny island left at %v", p)
			}
		}
		id := m.Continents.At(p)
		if t0 == ruleset.Ocean && continent.IsLake(m, id) && m.ComponentSize(id) <= rs.LakeMaxSize() {
			t.Errorf("enclosed water at %v should be a lake", p)
		}
	}

	resource := func(p grid.Pos) bool {
		return m.HasSpecial(p, ruleset.Resource1) || m.HasSpecial(p, ruleset.Resource2)
	}
	huts := 0
	for p := range m.Topo.All() {
		if m.HasSpecial(p, ruleset.Hut) {
			huts++
			if rs.IsOceanic(m.Terrain.At(p)) {
				t.Errorf("hut on water at %v", p)
			}
			for q := range m.Topo.Square(p, 3) {
				if q != p && m.HasSpecial(q, ruleset.Hut) {
					t.Errorf("huts at %v and %v are too close", p, q)
				}
			}
		}
		if resource(p) {
			for q := range m.Topo.Square(p, 1) {
				if q != p && resource(q) {
					t.Errorf("resources at %v and %v are adjacent", p, q)
				}
			}
		}
	}
	if huts == 0 {
		t.Error("no huts placed")
	}
	if m.CountSpecial(ruleset.Resource1)+m.CountSpecial(ruleset.Resource2) == 0 {
		t.Error("no resources placed")
	}
}

func TestGenerateFallbacks(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Settings)
		first int
		below Generator
	}{
		{"archipelago on small map", func(s *Settings) {
			s.Generator = GenArchipelago
			s.Topology = grid.Topology{Width: 32, Height: 32, WrapX: true}
		}, int(GenArchipelago), GenArchipelago},
		{"paired with one player", func(s *Settings) {
			s.Generator = GenPaired
			s.Players = 1
		}, int(GenPaired), GenPaired},
		{"islands with high landmass", func(s *Settings) {
			s.Generator = GenIslands
			s.LandPercent = 90
		}, int(GenIslands), GenIslands},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSettings(0)
			tt.edit(&s)
			m := generate(t, s)
			if len(m.Fallbacks) == 0 || m.Fallbacks[0] != tt.first {
				t.Fatalf("Fallbacks = %v, want to start with %d", m.Fallbacks, tt.first)
			}
			if m.Generator >= int(tt.below) {
				t.Errorf("Generator = %d, want below %d", m.Generator, tt.below)
			}
		})
	}
}

func TestGenerateErrors(t *testing.T) {
	s := testSettings(GenFractal)
	s.Topology = grid.Topology{Width: 8, Height: 40}
	if _, err := Generate(s, ruleset.Classic(), nil); !errors.Is(err, ErrDegenerateGrid) {
		t.Errorf("err = %v, want ErrDegenerateGrid", err)
	}

	s = testSettings(Generator(9))
	if _, err := Generate(s, ruleset.Classic(), nil); err == nil {
		t.Error("unknown generator accepted")
	}
}

func TestGenerateRandomSeed(t *testing.T) {
	s := testSettings(GenRandom)
	s.Seed = 0
	m := generate(t, s)
	if m.Seed <= 0 || m.Seed > rng.MaxSeed {
		t.Errorf("Seed = %d, want in (0, %d]", m.Seed, rng.MaxSeed)
	}
	s.Seed = m.Seed
	if again := generate(t, s); again.Fingerprint() != m.Fingerprint() {
		t.Error("recorded seed does not reproduce the map")
	}
}

func TestFlatScenario(t *testing.T) {
	s := testSettings(GenFractal)
	s.Topology = grid.Topology{Width: 40, Height: 40}
	s.Seed = 1234
	a := generate(t, s)
	b := generate(t, s)
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatal("40x40 flat map is not deterministic")
	}

	lat := latitude.New(s.Topology, latitude.Settings{Temperature: s.Temperature})
	for x := 0; x < 40; x++ {
		if c := lat.Colatitude(grid.Pos{X: x, Y: 0}); c != 0 {
			t.Errorf("Colatitude(%d,0) = %d, want 0", x, c)
		}
		if c := lat.Colatitude(grid.Pos{X: x, Y: 39}); c != latitude.MaxColatitude {
			t.Errorf("Colatitude(%d,39) = %d, want %d", x, c, latitude.MaxColatitude)
		}
	}
}

func TestTerrainParams(t *testing.T) {
	s := testSettings(GenFractal)
	s.Topology = grid.Topology{Width: 80, Height: 50, WrapX: true}
	lat := latitude.New(s.Topology, latitude.Settings{Temperature: 50})
	p := newTerrainParams(s, lat)
	want := terrainParams{mountain: 19, forest: 25, jungle: 4, river: 6, swamp: 4, desert: 7}
	if p != want {
		t.Errorf("params = %+v, want %+v", p, want)
	}
}
