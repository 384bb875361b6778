package latitude

import (
	"math"

	"github.com/OCharnyshevich/mapgen/internal/grid"
)

// Map size limits, in thousands of tiles.
const (
	MinSize = 1
	MaxSize = 29
)

// SizeForPlayers returns the map size (thousands of tiles) that gives each
// player roughly tilesPerPlayer land tiles.
func SizeForPlayers(players, tilesPerPlayer, landPercent int) int {
	size := players * tilesPerPlayer / max(1, landPercent) / 10
	return min(MaxSize, max(MinSize, size))
}

// AutoSize returns width and height for a map of size thousand tiles using
// the aspect ratio customary for the wrap flags.
func AutoSize(size float64, wrapX, wrapY bool) (int, int) {
	xr, yr := 1, 1
	switch {
	case wrapX && !wrapY:
		xr, yr = 3, 2
	case !wrapX && wrapY:
		xr, yr = 2, 3
	}
	const even = 2

	for {
		i := int(math.Sqrt(1000*size/float64(xr*yr*even*even)) + 0.49)
		w, h := xr*i*even, yr*i*even
		if (max(w, h) > grid.MaxLinearSize || w*h > MaxSize*1000) && size > 0.1 {
			size -= 0.1
			continue
		}
		w = min(grid.MaxLinearSize, max(grid.MinLinearSize, w))
		h = min(grid.MaxLinearSize, max(grid.MinLinearSize, h))
		return w, h
	}
}
