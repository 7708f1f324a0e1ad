// Package geom holds the indexed triangle meshes the scene is built from and
// the pure operations on them: construction, affine transforms, smooth
// normals and buffer-level merging.
//
// Every operation returns a new Mesh; inputs are never mutated.
package geom

import (
	"math"

	"github.com/golang/geo/r3"
)

// Mesh is an indexed triangle list with one normal per vertex. Triangles are
// wound counter-clockwise when seen from outside.
type Mesh struct {
	Positions []r3.Vector
	Normals   []r3.Vector
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (m Mesh) VertexCount() int { return len(m.Positions) }

// TriangleCount returns the number of triangles.
func (m Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// Triangle returns the vertex indices of triangle i.
func (m Mesh) Triangle(i int) (a, b, c int) {
	return int(m.Indices[3*i]), int(m.Indices[3*i+1]), int(m.Indices[3*i+2])
}

// Clone returns a deep copy.
func (m Mesh) Clone() Mesh {
	return Mesh{
		Positions: append([]r3.Vector(nil), m.Positions...),
		Normals:   append([]r3.Vector(nil), m.Normals...),
		Indices:   append([]uint32(nil), m.Indices...),
	}
}

// WithSmoothNormals returns a copy whose normals are recomputed from the
// triangles. Each face contributes its unnormalized cross product, so larger
// faces weigh more.
func (m Mesh) WithSmoothNormals() Mesh {
	out := Mesh{
		Positions: append([]r3.Vector(nil), m.Positions...),
		Normals:   make([]r3.Vector, len(m.Positions)),
		Indices:   append([]uint32(nil), m.Indices...),
	}
	for i := 0; i < out.TriangleCount(); i++ {
		a, b, c := out.Triangle(i)
		pa, pb, pc := out.Positions[a], out.Positions[b], out.Positions[c]
		fn := pb.Sub(pa).Cross(pc.Sub(pa))
		out.Normals[a] = out.Normals[a].Add(fn)
		out.Normals[b] = out.Normals[b].Add(fn)
		out.Normals[c] = out.Normals[c].Add(fn)
	}
	for i, n := range out.Normals {
		if n.Norm2() < 1e-24 {
			// Degenerate fan: fall back to the radial direction.
			n = out.Positions[i]
		}
		out.Normals[i] = n.Normalize()
	}
	return out
}

// Transform returns a copy with positions mapped through t and normals
// through its inverse transpose.
func (m Mesh) Transform(t Affine) Mesh {
	out := Mesh{
		Positions: make([]r3.Vector, len(m.Positions)),
		Normals:   make([]r3.Vector, len(m.Normals)),
		Indices:   append([]uint32(nil), m.Indices...),
	}
	for i, p := range m.Positions {
		out.Positions[i] = t.Apply(p)
	}
	nm := t.NormalMatrix()
	flip := t.Linear.Det() < 0
	for i, n := range m.Normals {
		out.Normals[i] = nm.MulVec(n).Normalize()
	}
	if flip {
		// A mirroring transform turns outward winding inward.
		for i := 0; i+2 < len(out.Indices); i += 3 {
			out.Indices[i+1], out.Indices[i+2] = out.Indices[i+2], out.Indices[i+1]
		}
	}
	return out
}

// Merge concatenates meshes into one buffer. Vertices are not welded across
// inputs, so each part keeps its own seams.
func Merge(parts ...Mesh) Mesh {
	var nv, ni int
	for _, p := range parts {
		nv += len(p.Positions)
		ni += len(p.Indices)
	}
	out := Mesh{
		Positions: make([]r3.Vector, 0, nv),
		Normals:   make([]r3.Vector, 0, nv),
		Indices:   make([]uint32, 0, ni),
	}
	for _, p := range parts {
		base := uint32(len(out.Positions))
		out.Positions = append(out.Positions, p.Positions...)
		out.Normals = append(out.Normals, p.Normals...)
		for _, idx := range p.Indices {
			out.Indices = append(out.Indices, base+idx)
		}
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the positions.
func (m Mesh) Bounds() (min, max r3.Vector) {
	if len(m.Positions) == 0 {
		return r3.Vector{}, r3.Vector{}
	}
	min, max = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		min = r3.Vector{X: math.Min(min.X, p.X), Y: math.Min(min.Y, p.Y), Z: math.Min(min.Z, p.Z)}
		max = r3.Vector{X: math.Max(max.X, p.X), Y: math.Max(max.Y, p.Y), Z: math.Max(max.Z, p.Z)}
	}
	return min, max
}

// Finite reports whether every position and normal is free of NaN and Inf.
func (m Mesh) Finite() bool {
	for _, p := range m.Positions {
		if !finite(p) {
			return false
		}
	}
	for _, n := range m.Normals {
		if !finite(n) {
			return false
		}
	}
	return true
}

// ClosedManifold reports whether every directed edge appears exactly once and
// its reverse appears too, i.e. the surface is closed and consistently
// oriented.
func (m Mesh) ClosedManifold() bool {
	if len(m.Indices) == 0 || len(m.Indices)%3 != 0 {
		return false
	}
	type edge struct{ a, b uint32 }
	seen := make(map[edge]int, len(m.Indices))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		tri := [3]uint32{m.Indices[i], m.Indices[i+1], m.Indices[i+2]}
		for k := 0; k < 3; k++ {
			e := edge{tri[k], tri[(k+1)%3]}
			if e.a == e.b {
				return false
			}
			seen[e]++
		}
	}
	for e, n := range seen {
		if n != 1 {
			return false
		}
		if seen[edge{e.b, e.a}] != 1 {
			return false
		}
	}
	return true
}

func finite(v r3.Vector) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
