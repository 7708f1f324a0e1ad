// Package scene holds everything the renderer draws: the coal piece, the
// halo, the ground, the light rig and the orbiting camera. It is pure state
// advanced once per frame from the sequencer's scalars.
package scene

import (
	"math"
	"time"

	"coal-reveal/internal/coal"
	"coal-reveal/internal/geom"
	"coal-reveal/internal/sequence"

	"github.com/golang/geo/r3"
)

// Motion constants, in radians per second and scene units.
const (
	CoalSpinRate = 0.5
	HaloSpinRate = 0.3
	GroupHeight  = -1.2
	HaloHeight   = 3.5
	HaloBob      = 0.3
	HaloBobRate  = 0.8
	GroundHeight = -3
	GroundSize   = 20
)

var (
	coalScale  = r3.Vector{X: 1.2, Y: 1.3, Z: 1.1}
	haloScale  = r3.Vector{X: 0.8, Y: 0.8, Z: 0.325}
	haloTilt   = r3.Vector{X: math.Pi / 2, Y: 0.2, Z: 0.15}
	haloRadius = 1.2
	haloTube   = 0.5
)

// Object is one drawable: a mesh in model space, its world transform and its
// material for this frame.
type Object struct {
	Name      string
	Mesh      geom.Mesh
	Transform geom.Affine
	Material  Material
}

// Scene is the animated 3D state.
type Scene struct {
	Camera Camera
	Orbit  *Orbit

	piece  coal.Piece
	albedo RGB
	halo   geom.Mesh
	ground geom.Mesh

	clock    time.Duration
	groupY   float64
	coalSpin float64
	haloSpin float64
	scalars  sequence.Scalars
	lights   []Light
}

// New builds a scene around the given piece. fps is the frame rate Update is
// driven at.
func New(piece coal.Piece, fps int) *Scene {
	cam := DefaultCamera()
	orbit := NewOrbit(cam, fps)
	orbit.Apply(&cam)
	return &Scene{
		Camera: cam,
		Orbit:  orbit,
		piece:  piece,
		albedo: Grey(piece.Lightness),
		halo:   geom.Torus(haloRadius, haloTube, 12, 32),
		ground: geom.Plane(GroundSize, GroundSize),
		lights: Rig(sequence.Scalars{}),
	}
}

// Piece returns the coal piece being shown.
func (s *Scene) Piece() coal.Piece { return s.piece }

// Scalars returns the scalars of the last Update.
func (s *Scene) Scalars() sequence.Scalars { return s.scalars }

// Lights returns the light rig of the last Update.
func (s *Scene) Lights() []Light { return s.lights }

// Update advances the animation by dt and applies the frame's scalars.
func (s *Scene) Update(dt time.Duration, sc sequence.Scalars) {
	if dt < 0 {
		dt = 0
	}
	sec := dt.Seconds()
	s.clock += dt
	if sc.Started {
		s.coalSpin = math.Mod(s.coalSpin+sec*CoalSpinRate, 2*math.Pi)
		s.groupY = GroupHeight
	}
	s.haloSpin = math.Mod(s.haloSpin+sec*HaloSpinRate, 2*math.Pi)
	s.scalars = sc
	s.lights = Rig(sc)

	s.Orbit.Update()
	s.Orbit.Apply(&s.Camera)
}

// HaloY returns the halo's height inside the group for the current clock.
func (s *Scene) HaloY() float64 {
	return HaloHeight + HaloBob*math.Sin(s.clock.Seconds()*HaloBobRate)
}

// Spin returns the coal group and halo rotation angles.
func (s *Scene) Spin() (coalAngle, haloAngle float64) { return s.coalSpin, s.haloSpin }

func (s *Scene) groupTransform() geom.Affine {
	return geom.Translate(r3.Vector{Y: s.groupY}).Then(geom.RotateY(s.coalSpin))
}

// Objects returns the drawables for the current frame, opaque ones first.
func (s *Scene) Objects() []Object {
	group := s.groupTransform()
	objs := []Object{
		{
			Name:      "ground",
			Mesh:      s.ground,
			Transform: geom.Translate(r3.Vector{Y: GroundHeight}).Then(geom.RotateX(-math.Pi / 2)),
			Material:  Material{Albedo: Black, Opacity: 1},
		},
		{
			Name:      "coal",
			Mesh:      s.piece.Mesh,
			Transform: group.Then(geom.Scale(coalScale)),
			// The reference emissive colour is black, so the 0.05·I term
			// contributes nothing.
			Material: Material{Albedo: s.albedo, Opacity: 1},
		},
	}
	if h := s.scalars.Halo; h > 0 {
		objs = append(objs, Object{
			Name: "halo",
			Mesh: s.halo,
			Transform: group.
				Then(geom.Translate(r3.Vector{Y: s.HaloY()})).
				Then(geom.RotateXYZ(haloTilt.X, haloTilt.Y, haloTilt.Z+s.haloSpin)).
				Then(geom.Scale(haloScale)),
			Material: Material{
				Albedo:      Gold,
				Emissive:    Gold.Scale(3.5 * h),
				Opacity:     0.85 * h,
				DoubleSided: true,
			},
		})
	}
	return objs
}
