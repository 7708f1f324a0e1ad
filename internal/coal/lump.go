// Package coal synthesizes the coal mesh: noise-displaced icospheres
// ("lumps") placed around one another and merged into a single buffer.
package coal

import (
	"coal-reveal/internal/geom"
	"coal-reveal/internal/noise"
)

// DefaultSubdivisions is the icosphere level each lump starts from.
const DefaultSubdivisions = 4

// minDistance guards the radial normalization against degenerate vertices.
const minDistance = 1e-9

// LumpParams are the inputs of a single lump.
type LumpParams struct {
	Radius       float64
	Irregularity float64
	Seed         int64
	Subdivisions int
}

// Lump builds one closed, noise-displaced lump centred on the origin.
func Lump(p LumpParams) geom.Mesh {
	subdivisions := p.Subdivisions
	if subdivisions <= 0 {
		subdivisions = DefaultSubdivisions
	}
	return Displace(geom.Icosphere(p.Radius, subdivisions), p.Radius, p.Irregularity, p.Seed)
}

// Displace moves every vertex of base along its own radial direction by the
// layered coal noise and returns the result with recomputed smooth normals.
// base is left untouched.
func Displace(base geom.Mesh, radius, irregularity float64, seed int64) geom.Mesh {
	field := noise.NewLayered(seed, noise.CoalOctaves)
	amplitude := irregularity * radius

	out := base.Clone()
	for i, p := range base.Positions {
		dist := p.Norm()
		if dist < minDistance {
			continue
		}
		dir := p.Mul(1 / dist)
		out.Positions[i] = dir.Mul(dist + field.Sum(dir)*amplitude)
	}
	return out.WithSmoothNormals()
}
