package heightmap

import (
	"slices"
	"testing"

	"github.com/OCharnyshevich/mapgen/internal/grid"
	"github.com/OCharnyshevich/mapgen/internal/latitude"
	"github.com/OCharnyshevich/mapgen/internal/rng"
)

func model(topo grid.Topology) *latitude.Model {
	return latitude.New(topo, latitude.Settings{Temperature: 50})
}

func TestEqualizeRange(t *testing.T) {
	values := []int{-50, 3, 3, 7, 100, 2000, 12}
	Equalize(values, 0, MaxLevel)
	if slices.Max(values) != MaxLevel {
		t.Errorf("max = %d, want %d", slices.Max(values), MaxLevel)
	}
	for i, v := range values {
		if v < 0 || v > MaxLevel {
			t.Fatalf("values[%d] = %d, out of range", i, v)
		}
	}
	if values[1] != values[2] {
		t.Errorf("equal inputs must map to equal outputs: %d != %d", values[1], values[2])
	}
}

func TestEqualizePreservesOrder(t *testing.T) {
	in := []int{5, 1, 9, 3, 7, 2, 8}
	out := slices.Clone(in)
	Equalize(out, 0, 1000)
	for i := range in {
		for j := range in {
			if in[i] < in[j] && out[i] > out[j] {
				t.Fatalf("order broken: in %d<%d but out %d>%d", in[i], in[j], out[i], out[j])
			}
		}
	}
}

func TestEqualizeUniform(t *testing.T) {
	values := make([]int, 1000)
	for i := range values {
		values[i] = i * i
	}
	Equalize(values, 0, 1000)
	below := 0
	for _, v := range values {
		if v < 300 {
			below++
		}
	}
	if below < 280 || below > 320 {
		t.Errorf("%d values below 300, want about 300", below)
	}
}

func TestSmoothNonNegative(t *testing.T) {
	topo := grid.Topology{Width: 20, Height: 20}
	h := grid.New[int](topo)
	h.Set(grid.Pos{X: 10, Y: 10}, 5000)
	Smooth(h, rng.New(3))
	for i, v := range h.Cells() {
		if v < 0 {
			t.Fatalf("cell %d = %d, want >= 0", i, v)
		}
	}
	if c := h.At(grid.Pos{X: 10, Y: 10}); c >= 5000 || c < 900 {
		t.Errorf("center after smoothing = %d, want spread out", c)
	}
}

func TestRandomDeterministic(t *testing.T) {
	topo := grid.Topology{Width: 32, Height: 24, WrapX: true}
	a := Random(model(topo), rng.New(11))
	b := Random(model(topo), rng.New(11))
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Fatal("Random is not deterministic")
	}
}

func TestFractalDeterministic(t *testing.T) {
	topo := grid.Topology{Width: 40, Height: 30, WrapX: true}
	a := Fractal(model(topo), 30, rng.New(99))
	b := Fractal(model(topo), 30, rng.New(99))
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Fatal("Fractal is not deterministic")
	}
	c := Fractal(model(topo), 30, rng.New(100))
	if slices.Equal(a.Cells(), c.Cells()) {
		t.Error("different seeds should produce different fields")
	}
}

func TestNormalizePolesZeroesSingularities(t *testing.T) {
	topo := grid.Topology{Width: 40, Height: 30, WrapX: true}
	lat := model(topo)
	h := grid.New[int](topo)
	h.Fill(500)
	NormalizePoles(h, lat)
	for p := range topo.All() {
		if lat.NearSingularity(p) && h.At(p) != 0 {
			t.Fatalf("h%v = %d, want 0 near singularity", p, h.At(p))
		}
		if lat.Colatitude(p) > lat.IceBaseLevel()*5/2 && h.At(p) != 500 {
			t.Fatalf("h%v = %d, temperate tiles must be untouched", p, h.At(p))
		}
	}
}

func TestRenormalizePolesRestores(t *testing.T) {
	topo := grid.Topology{Width: 40, Height: 30, WrapX: true}
	lat := model(topo)
	h := grid.New[int](topo)
	h.Fill(800)
	NormalizePoles(h, lat)
	RenormalizePoles(h, lat)
	for p := range topo.All() {
		if lat.NearSingularity(p) {
			continue
		}
		if v := h.At(p); v < 760 || v > 840 {
			t.Errorf("h%v = %d after round trip, want about 800", p, v)
		}
	}
}
