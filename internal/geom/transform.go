package geom

import (
	"math"

	"github.com/golang/geo/r3"
)

// Mat3 is a row-major 3x3 matrix.
type Mat3 [3][3]float64

// Identity3 returns the identity matrix.
func Identity3() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Mul returns m·n.
func (m Mat3) Mul(n Mat3) Mat3 {
	var out Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r][c] = m[r][0]*n[0][c] + m[r][1]*n[1][c] + m[r][2]*n[2][c]
		}
	}
	return out
}

// MulVec returns m·v.
func (m Mat3) MulVec(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Transpose returns mᵀ.
func (m Mat3) Transpose() Mat3 {
	var out Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r][c] = m[c][r]
		}
	}
	return out
}

// Det returns the determinant.
func (m Mat3) Det() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Inverse returns m⁻¹. A singular matrix yields the identity.
func (m Mat3) Inverse() Mat3 {
	det := m.Det()
	if math.Abs(det) < 1e-12 {
		return Identity3()
	}
	inv := 1 / det
	return Mat3{
		{
			(m[1][1]*m[2][2] - m[1][2]*m[2][1]) * inv,
			(m[0][2]*m[2][1] - m[0][1]*m[2][2]) * inv,
			(m[0][1]*m[1][2] - m[0][2]*m[1][1]) * inv,
		},
		{
			(m[1][2]*m[2][0] - m[1][0]*m[2][2]) * inv,
			(m[0][0]*m[2][2] - m[0][2]*m[2][0]) * inv,
			(m[0][2]*m[1][0] - m[0][0]*m[1][2]) * inv,
		},
		{
			(m[1][0]*m[2][1] - m[1][1]*m[2][0]) * inv,
			(m[0][1]*m[2][0] - m[0][0]*m[2][1]) * inv,
			(m[0][0]*m[1][1] - m[0][1]*m[1][0]) * inv,
		},
	}
}

// Affine is a linear map followed by a translation.
type Affine struct {
	Linear      Mat3
	Translation r3.Vector
}

// IdentityAffine returns the identity transform.
func IdentityAffine() Affine { return Affine{Linear: Identity3()} }

// Scale returns a non-uniform scale.
func Scale(s r3.Vector) Affine {
	return Affine{Linear: Mat3{{s.X, 0, 0}, {0, s.Y, 0}, {0, 0, s.Z}}}
}

// RotateX returns a rotation of angle radians about the X axis.
func RotateX(angle float64) Affine {
	s, c := math.Sincos(angle)
	return Affine{Linear: Mat3{{1, 0, 0}, {0, c, -s}, {0, s, c}}}
}

// RotateY returns a rotation of angle radians about the Y axis.
func RotateY(angle float64) Affine {
	s, c := math.Sincos(angle)
	return Affine{Linear: Mat3{{c, 0, s}, {0, 1, 0}, {-s, 0, c}}}
}

// RotateZ returns a rotation of angle radians about the Z axis.
func RotateZ(angle float64) Affine {
	s, c := math.Sincos(angle)
	return Affine{Linear: Mat3{{c, -s, 0}, {s, c, 0}, {0, 0, 1}}}
}

// RotateXYZ returns the Euler rotation X, then Y, then Z (intrinsic order
// used by scene-graph nodes: R = Rx·Ry·Rz).
func RotateXYZ(x, y, z float64) Affine {
	return RotateX(x).Then(RotateY(y)).Then(RotateZ(z))
}

// Translate returns a pure translation.
func Translate(v r3.Vector) Affine {
	return Affine{Linear: Identity3(), Translation: v}
}

// Then returns the transform a·b, i.e. b applied first and a second when the
// result is applied to a point. Chains read outermost to innermost:
// Translate(t).Then(Rotate(r)).Then(Scale(s)) scales, rotates, translates.
func (a Affine) Then(b Affine) Affine {
	return Affine{
		Linear:      a.Linear.Mul(b.Linear),
		Translation: a.Linear.MulVec(b.Translation).Add(a.Translation),
	}
}

// Apply maps a point.
func (a Affine) Apply(p r3.Vector) r3.Vector {
	return a.Linear.MulVec(p).Add(a.Translation)
}

// ApplyDir maps a direction (no translation).
func (a Affine) ApplyDir(v r3.Vector) r3.Vector {
	return a.Linear.MulVec(v)
}

// NormalMatrix returns the inverse transpose of the linear part.
func (a Affine) NormalMatrix() Mat3 {
	return a.Linear.Inverse().Transpose()
}
