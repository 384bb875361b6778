package heightmap

import (
	"github.com/OCharnyshevich/mapgen/internal/grid"
	"github.com/OCharnyshevich/mapgen/internal/latitude"
	"github.com/OCharnyshevich/mapgen/internal/rng"
)

// Initial block grid for midpoint displacement.
const (
	fractalXDiv = 6
	fractalYDiv = 5
)

type fractal struct {
	lat  *latitude.Model
	r    *rng.Rand
	h    *Field
	topo grid.Topology
}

// Fractal builds an earthlike field by recursive midpoint displacement:
// the map is split into blocks whose corners are raised or lowered at
// random, then edge midpoints and block centers are interpolated with a
// shrinking random offset. Corners near singularities and poles are pushed
// down so continents avoid them.
func Fractal(lat *latitude.Model, landPercent int, r *rng.Rand) *Field {
	topo := lat.Topology()
	f := &fractal{lat: lat, r: r, h: grid.New[int](topo), topo: topo}

	xdiv2, ydiv2 := fractalXDiv, fractalYDiv
	xmax, ymax := topo.Width, topo.Height
	if !topo.WrapX {
		xdiv2++
		xmax--
	}
	if !topo.WrapY {
		ydiv2++
		ymax--
	}

	step := topo.Width + topo.Height
	avoidEdge := (50-landPercent)*step/100 + step/3

	for xn := 0; xn < xdiv2; xn++ {
		for yn := 0; yn < ydiv2; yn++ {
			p := grid.Pos{X: xn * xmax / fractalXDiv, Y: yn * ymax / fractalYDiv}
			v := r.Intn(2*step) - step
			if lat.NearSingularity(p) {
				v -= avoidEdge
			}
			if lat.Colatitude(p) <= lat.IceBaseLevel()/2 {
				v -= r.Intn(avoidEdge)
			}
			f.h.Set(p, v)
		}
	}

	for xn := 0; xn < fractalXDiv; xn++ {
		for yn := 0; yn < fractalYDiv; yn++ {
			f.subdivide(step,
				xn*xmax/fractalXDiv, yn*ymax/fractalYDiv,
				(xn+1)*xmax/fractalXDiv, (yn+1)*ymax/fractalYDiv)
		}
	}

	cells := f.h.Cells()
	for i := range cells {
		cells[i] = 8*cells[i] + r.Intn(4) - 2
	}
	return f.h
}

func (f *fractal) subdivide(step, x0, y0, x1, y1 int) {
	if y1-y0 <= 0 || x1-x0 <= 0 || (y1-y0 == 1 && x1-x0 == 1) {
		return
	}

	x1w, y1w := x1, y1
	if x1 == f.topo.Width {
		x1w = 0
	}
	if y1 == f.topo.Height {
		y1w = 0
	}

	v00 := f.h.At(grid.Pos{X: x0, Y: y0})
	v01 := f.h.At(grid.Pos{X: x0, Y: y1w})
	v10 := f.h.At(grid.Pos{X: x1w, Y: y0})
	v11 := f.h.At(grid.Pos{X: x1w, Y: y1w})

	xm, ym := (x0+x1)/2, (y0+y1)/2
	f.setMidpoint(xm, y0, (v00+v10)/2, step)
	f.setMidpoint(xm, y1w, (v01+v11)/2, step)
	f.setMidpoint(x0, ym, (v00+v01)/2, step)
	f.setMidpoint(x1w, ym, (v10+v11)/2, step)
	f.setMidpoint(xm, ym, (v00+v01+v10+v11)/4, step)

	next := 2 * step / 3
	f.subdivide(next, x0, y0, xm, ym)
	f.subdivide(next, x0, ym, xm, y1)
	f.subdivide(next, xm, y0, x1, ym)
	f.subdivide(next, xm, ym, x1, y1)
}

// setMidpoint only fills points that are still unset and lie away from
// singularities and the polar ice. The random offset is drawn only for
// points that get filled.
func (f *fractal) setMidpoint(x, y, avg, step int) {
	p := grid.Pos{X: x, Y: y}
	if !f.lat.NearSingularity(p) &&
		f.lat.Colatitude(p) > f.lat.IceBaseLevel()/2 &&
		f.h.At(p) == 0 {
		f.h.Set(p, avg+f.r.Intn(step)-step/2)
	}
}
