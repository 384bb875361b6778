package mapgen

import "github.com/OCharnyshevich/mapgen/internal/latitude"

// terrainParams are the target percentages of land per terrain family.
type terrainParams struct {
	mountain int
	forest   int
	jungle   int
	river    int
	swamp    int
	desert   int
}

func newTerrainParams(s Settings, lat *latitude.Model) terrainParams {
	polar := 2 * lat.IceBaseLevel() * s.LandPercent / latitude.MaxColatitude
	factor := float32((100.0 - float64(polar) - float64(s.Steepness)*0.8) / 10000)

	var p terrainParams
	p.mountain = int(factor * float32(s.Steepness) * 90)
	p.forest = int(factor * float32(s.Wetness*60+1000))
	p.jungle = p.forest * (latitude.MaxColatitude - lat.TropicalLevel()) / (latitude.MaxColatitude * 2)
	p.forest -= p.jungle
	p.river = (100 - polar) * (3 + s.Wetness/12) / 100 * s.Rivers / 50
	p.swamp = int(factor * float32(s.Wetness*6+s.Temperature*6))
	p.desert = int(factor * float32(s.Temperature*10+(100-s.Wetness)*10))
	return p
}
