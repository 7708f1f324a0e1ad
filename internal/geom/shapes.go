package geom

import (
	"math"

	"github.com/golang/geo/r3"
)

// icosahedron vertices before normalization and its twenty outward-wound faces.
var (
	icoGolden = (1 + math.Sqrt(5)) / 2

	icoVertices = []r3.Vector{
		{X: -1, Y: icoGolden, Z: 0}, {X: 1, Y: icoGolden, Z: 0}, {X: -1, Y: -icoGolden, Z: 0}, {X: 1, Y: -icoGolden, Z: 0},
		{X: 0, Y: -1, Z: icoGolden}, {X: 0, Y: 1, Z: icoGolden}, {X: 0, Y: -1, Z: -icoGolden}, {X: 0, Y: 1, Z: -icoGolden},
		{X: icoGolden, Y: 0, Z: -1}, {X: icoGolden, Y: 0, Z: 1}, {X: -icoGolden, Y: 0, Z: -1}, {X: -icoGolden, Y: 0, Z: 1},
	}

	icoFaces = [][3]uint32{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
)

// Icosphere returns a sphere of the given radius built by splitting each face
// of an icosahedron into four, subdivisions times, and pushing new vertices
// back onto the sphere. Vertices are shared between faces.
func Icosphere(radius float64, subdivisions int) Mesh {
	if subdivisions < 0 {
		subdivisions = 0
	}
	positions := make([]r3.Vector, len(icoVertices))
	for i, v := range icoVertices {
		positions[i] = v.Normalize()
	}
	faces := append([][3]uint32(nil), icoFaces...)

	for level := 0; level < subdivisions; level++ {
		midpoints := make(map[[2]uint32]uint32, len(faces)*3/2)
		midpoint := func(a, b uint32) uint32 {
			key := [2]uint32{a, b}
			if a > b {
				key = [2]uint32{b, a}
			}
			if idx, ok := midpoints[key]; ok {
				return idx
			}
			p := positions[a].Add(positions[b]).Normalize()
			idx := uint32(len(positions))
			positions = append(positions, p)
			midpoints[key] = idx
			return idx
		}
		next := make([][3]uint32, 0, len(faces)*4)
		for _, f := range faces {
			ab := midpoint(f[0], f[1])
			bc := midpoint(f[1], f[2])
			ca := midpoint(f[2], f[0])
			next = append(next,
				[3]uint32{f[0], ab, ca},
				[3]uint32{f[1], bc, ab},
				[3]uint32{f[2], ca, bc},
				[3]uint32{ab, bc, ca},
			)
		}
		faces = next
	}

	m := Mesh{
		Positions: make([]r3.Vector, len(positions)),
		Normals:   make([]r3.Vector, len(positions)),
		Indices:   make([]uint32, 0, len(faces)*3),
	}
	for i, p := range positions {
		m.Positions[i] = p.Mul(radius)
		m.Normals[i] = p
	}
	for _, f := range faces {
		m.Indices = append(m.Indices, f[0], f[1], f[2])
	}
	return m
}

// Torus returns a ring around the Z axis in the XY plane with the given ring
// radius and tube radius. The surface is closed: the seams wrap without
// duplicated vertices.
func Torus(radius, tube float64, radialSegments, tubularSegments int) Mesh {
	if radialSegments < 3 {
		radialSegments = 3
	}
	if tubularSegments < 3 {
		tubularSegments = 3
	}
	m := Mesh{
		Positions: make([]r3.Vector, 0, radialSegments*tubularSegments),
		Normals:   make([]r3.Vector, 0, radialSegments*tubularSegments),
		Indices:   make([]uint32, 0, radialSegments*tubularSegments*6),
	}
	for j := 0; j < radialSegments; j++ {
		v := float64(j) / float64(radialSegments) * 2 * math.Pi
		for i := 0; i < tubularSegments; i++ {
			u := float64(i) / float64(tubularSegments) * 2 * math.Pi
			center := r3.Vector{X: radius * math.Cos(u), Y: radius * math.Sin(u)}
			p := r3.Vector{
				X: (radius + tube*math.Cos(v)) * math.Cos(u),
				Y: (radius + tube*math.Cos(v)) * math.Sin(u),
				Z: tube * math.Sin(v),
			}
			m.Positions = append(m.Positions, p)
			m.Normals = append(m.Normals, p.Sub(center).Normalize())
		}
	}
	idx := func(j, i int) uint32 {
		return uint32((j%radialSegments)*tubularSegments + i%tubularSegments)
	}
	for j := 0; j < radialSegments; j++ {
		for i := 0; i < tubularSegments; i++ {
			a := idx(j, i)
			b := idx(j+1, i)
			c := idx(j+1, i+1)
			d := idx(j, i+1)
			m.Indices = append(m.Indices, a, d, b, b, d, c)
		}
	}
	return m
}

// Plane returns a width×height quad in the XY plane facing +Z.
func Plane(width, height float64) Mesh {
	hw, hh := width/2, height/2
	n := r3.Vector{Z: 1}
	return Mesh{
		Positions: []r3.Vector{
			{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh},
		},
		Normals: []r3.Vector{n, n, n, n},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}
