package heightmap

import "github.com/OCharnyshevich/mapgen/internal/latitude"

// NormalizePoles lowers land near the poles so the shore threshold leaves
// less of it above water. RenormalizePoles undoes the scaling afterwards.
func NormalizePoles(h *Field, lat *latitude.Model) {
	ice := float64(lat.IceBaseLevel())
	separate := lat.Settings().SeparatePoles
	for p := range h.Topology().All() {
		colat := float64(lat.Colatitude(p))
		v := h.Ptr(p)
		switch {
		case lat.NearSingularity(p):
			*v = 0
		case colat < 2*ice:
			*v = int(float64(*v) * colat / (2.5 * ice))
		case separate && colat <= 2.5*ice:
			*v = int(float64(*v) * 0.1)
		case colat <= 2.5*ice:
			*v = int(float64(*v) * colat / (2.5 * ice))
		}
	}
}

// RenormalizePoles restores polar elevations scaled down by NormalizePoles
// so climate texturing at the poles sees real heights.
func RenormalizePoles(h *Field, lat *latitude.Model) {
	ice := float64(lat.IceBaseLevel())
	separate := lat.Settings().SeparatePoles
	for p := range h.Topology().All() {
		colat := float64(lat.Colatitude(p))
		v := h.Ptr(p)
		switch {
		case *v == 0 || colat == 0:
		case colat < 2*ice:
			*v = int(float64(*v) * (2.5 * ice) / colat)
		case separate && colat <= 2.5*ice:
			*v *= 10
		case colat <= 2.5*ice:
			*v = int(float64(*v) * (2.5 * ice) / colat)
		}
	}
}
