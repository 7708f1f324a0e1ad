package scene

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/golang/geo/r3"
)

// Polar limits keep the camera between a raised view and just above the
// horizon, so the ground is never seen from below.
const (
	MinPolar = math.Pi / 3
	MaxPolar = math.Pi / 2.2
)

const (
	orbitFrequency = 6.0
	orbitDamping   = 1.0
)

// Orbit rotates a camera around a fixed target at a fixed radius. There is
// no pan and no zoom. Rotation requests move a goal; the visible angles
// follow it through a critically damped spring.
type Orbit struct {
	Target   r3.Vector
	Radius   float64
	MinPolar float64
	MaxPolar float64

	yaw, polar         float64
	goalYaw, goalPolar float64
	yawVel, polarVel   float64

	spring harmonica.Spring
}

// NewOrbit derives the orbit from the camera's current position. The polar
// angle is clamped immediately. fps is the rate Update is called at.
func NewOrbit(cam Camera, fps int) *Orbit {
	if fps <= 0 {
		fps = 60
	}
	o := &Orbit{
		Target:   cam.Target,
		MinPolar: MinPolar,
		MaxPolar: MaxPolar,
		spring:   harmonica.NewSpring(harmonica.FPS(fps), orbitFrequency, orbitDamping),
	}
	off := cam.Position.Sub(cam.Target)
	o.Radius = off.Norm()
	if o.Radius > 0 {
		o.yaw = math.Atan2(off.X, off.Z)
		o.polar = math.Acos(math.Max(-1, math.Min(1, off.Y/o.Radius)))
	}
	o.polar = o.clampPolar(o.polar)
	o.goalYaw, o.goalPolar = o.yaw, o.polar
	return o
}

// Rotate moves the goal by the given angles in radians.
func (o *Orbit) Rotate(deltaYaw, deltaPolar float64) {
	o.goalYaw += deltaYaw
	o.goalPolar = o.clampPolar(o.goalPolar + deltaPolar)
}

// Update advances the spring by one frame.
func (o *Orbit) Update() {
	o.yaw, o.yawVel = o.spring.Update(o.yaw, o.yawVel, o.goalYaw)
	o.polar, o.polarVel = o.spring.Update(o.polar, o.polarVel, o.goalPolar)
	o.polar = o.clampPolar(o.polar)
}

// Angles returns the current yaw and polar angle.
func (o *Orbit) Angles() (yaw, polar float64) { return o.yaw, o.polar }

// Position returns the camera position for the current angles.
func (o *Orbit) Position() r3.Vector {
	s := math.Sin(o.polar)
	return o.Target.Add(r3.Vector{
		X: o.Radius * s * math.Sin(o.yaw),
		Y: o.Radius * math.Cos(o.polar),
		Z: o.Radius * s * math.Cos(o.yaw),
	})
}

// Apply moves cam onto the orbit.
func (o *Orbit) Apply(cam *Camera) {
	if cam == nil {
		return
	}
	cam.Position = o.Position()
	cam.Target = o.Target
	if cam.Up == (r3.Vector{}) {
		cam.Up = r3.Vector{Y: 1}
	}
}

func (o *Orbit) clampPolar(p float64) float64 {
	if p < o.MinPolar {
		return o.MinPolar
	}
	if p > o.MaxPolar {
		return o.MaxPolar
	}
	return p
}
