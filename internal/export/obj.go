// Package export produces offline artifacts: the coal mesh as Wavefront OBJ
// and stills of the reveal rendered on a synthetic clock.
package export

import (
	"bufio"
	"fmt"
	"io"

	"coal-reveal/internal/geom"
)

// WriteOBJ writes m as a single OBJ object with positions, normals and
// triangle faces. Indices in the file are 1-based.
func WriteOBJ(w io.Writer, name string, m geom.Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %d vertices, %d triangles\n", m.VertexCount(), m.TriangleCount())
	fmt.Fprintf(bw, "o %s\n", name)
	for _, p := range m.Positions {
		fmt.Fprintf(bw, "v %.6f %.6f %.6f\n", p.X, p.Y, p.Z)
	}
	withNormals := len(m.Normals) == len(m.Positions)
	if withNormals {
		for _, n := range m.Normals {
			fmt.Fprintf(bw, "vn %.6f %.6f %.6f\n", n.X, n.Y, n.Z)
		}
	}
	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		if withNormals {
			fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a+1, a+1, b+1, b+1, c+1, c+1)
			continue
		}
		fmt.Fprintf(bw, "f %d %d %d\n", a+1, b+1, c+1)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write obj: %w", err)
	}
	return nil
}
