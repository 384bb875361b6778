// Package heightmap builds the scalar elevation field that land, relief and
// climate are derived from.
package heightmap

import (
	"github.com/OCharnyshevich/mapgen/internal/grid"
	"github.com/OCharnyshevich/mapgen/internal/latitude"
	"github.com/OCharnyshevich/mapgen/internal/rng"
)

// MaxLevel is the top of the normalized height range.
const MaxLevel = 1000

// Field is one elevation value per tile.
type Field = grid.Grid[int]

// Random builds an uncorrelated noise field and smooths it with one
// diffusion pass per unit of noise scale.
func Random(lat *latitude.Model, r *rng.Rand) *Field {
	topo := lat.Topology()
	passes := 1 + lat.SqSize()
	h := grid.New[int](topo)
	cells := h.Cells()
	for i := range cells {
		cells[i] = r.Intn(1000 * passes)
	}
	for i := 0; i < passes; i++ {
		Smooth(h, r)
	}
	return h
}

// Smooth levels out the field: every tile becomes the weighted average of
// itself (counted twice) and its neighbors, plus a small random jitter,
// clamped at zero.
func Smooth(h *Field, r *rng.Rand) {
	topo := h.Topology()
	next := make([]int, topo.NumTiles())
	for p := range topo.All() {
		sum := h.At(p) * 2
		weight := 2
		for n := range topo.Adjacent(p) {
			sum += h.At(n)
			weight++
		}
		sum += r.Intn(61) - 30
		if sum < 0 {
			sum = 0
		}
		next[topo.Index(p)] = sum / weight
	}
	copy(h.Cells(), next)
}

// Equalize replaces every value with its rank scaled to [lo, hi], so the
// lowest N% of values end up in the lowest N% of the range.
func Equalize(values []int, lo, hi int) {
	if len(values) == 0 {
		return
	}
	minv, maxv := values[0], values[0]
	for _, v := range values[1:] {
		minv = min(minv, v)
		maxv = max(maxv, v)
	}

	freq := make([]int, maxv-minv+1)
	for i := range values {
		values[i] -= minv
		freq[values[i]]++
	}

	total := len(values)
	delta := hi - lo
	count := 0
	for i := range freq {
		count += freq[i]
		freq[i] = lo + count*delta/total
	}
	for i := range values {
		values[i] = freq[values[i]]
	}
}
