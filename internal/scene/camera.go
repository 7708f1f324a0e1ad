package scene

import (
	"math"

	"github.com/golang/geo/r3"
)

// Camera is a perspective camera looking at Target.
type Camera struct {
	Position r3.Vector
	Target   r3.Vector
	Up       r3.Vector
	// FovY is the vertical field of view in radians.
	FovY float64
	Near float64
	Far  float64
}

// DefaultCamera sits on +Z eight units from the origin with a 50° lens.
func DefaultCamera() Camera {
	return Camera{
		Position: r3.Vector{X: 0, Y: 0, Z: 8},
		Up:       r3.Vector{X: 0, Y: 1, Z: 0},
		FovY:     50 * math.Pi / 180,
		Near:     0.1,
		Far:      1000,
	}
}

// View is the camera's orthonormal frame. Forward points into the scene.
type View struct {
	Eye     r3.Vector
	Right   r3.Vector
	Up      r3.Vector
	Forward r3.Vector

	focal float64
	near  float64
	far   float64
}

// View builds the camera frame.
func (c Camera) View() View {
	up := c.Up
	if up == (r3.Vector{}) {
		up = r3.Vector{Y: 1}
	}
	fwd := c.Target.Sub(c.Position).Normalize()
	if fwd == (r3.Vector{}) {
		fwd = r3.Vector{Z: -1}
	}
	right := fwd.Cross(up).Normalize()
	if right == (r3.Vector{}) {
		right = r3.Vector{X: 1}
	}
	fov := c.FovY
	if fov <= 0 || fov >= math.Pi {
		fov = 50 * math.Pi / 180
	}
	near := c.Near
	if near <= 0 {
		near = 0.1
	}
	return View{
		Eye:     c.Position,
		Right:   right,
		Up:      right.Cross(fwd),
		Forward: fwd,
		focal:   1 / math.Tan(fov/2),
		near:    near,
		far:     c.Far,
	}
}

// Project maps a world point to normalized device coordinates (x, y in
// [-1, 1] when on screen, y up) and returns its view depth. ok is false for
// points in front of the near plane or beyond the far plane.
func (v View) Project(p r3.Vector, aspect float64) (x, y, depth float64, ok bool) {
	d := p.Sub(v.Eye)
	z := d.Dot(v.Forward)
	if z < v.near || (v.far > 0 && z > v.far) {
		return 0, 0, z, false
	}
	if aspect <= 0 {
		aspect = 1
	}
	x = d.Dot(v.Right) * v.focal / (aspect * z)
	y = d.Dot(v.Up) * v.focal / z
	return x, y, z, true
}
