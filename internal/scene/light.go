package scene

import (
	"math"

	"coal-reveal/internal/sequence"

	"github.com/golang/geo/r3"
)

// LightKind selects how a light contributes.
type LightKind int

const (
	// AmbientLight lights every surface equally.
	AmbientLight LightKind = iota
	// DirectionalLight shines from Position towards Target with no falloff.
	DirectionalLight
	// PointLight emits in all directions from Position.
	PointLight
	// SpotLight emits a cone from Position towards Target.
	SpotLight
)

// Light is one light source. Range 0 means no distance cutoff.
type Light struct {
	Kind      LightKind
	Color     RGB
	Intensity float64
	Position  r3.Vector
	Target    r3.Vector
	Range     float64
	Decay     float64
	// Angle is the cone half-angle; Penumbra is the soft fraction of it.
	Angle    float64
	Penumbra float64
}

// Rig returns the reveal lighting for the given scalars. Every intensity is
// proportional to the light intensity, and the two spotlights additionally
// to the spotlight factor, so the rig is black before the reveal.
func Rig(sc sequence.Scalars) []Light {
	i := sc.Light
	if !sc.Started {
		i = 0
	}
	spot := 20 * sc.Spot
	if !sc.Started {
		spot = 0
	}
	return []Light{
		{Kind: AmbientLight, Color: White, Intensity: 0.3 * i},
		{Kind: DirectionalLight, Color: White, Intensity: 4 * i, Position: r3.Vector{X: 5, Y: 8, Z: 5}},
		{Kind: DirectionalLight, Color: White, Intensity: 1.5 * i, Position: r3.Vector{X: -3, Y: 4, Z: -3}},
		{Kind: PointLight, Color: WarmWhite, Intensity: 6 * i, Position: r3.Vector{Y: 3}, Range: 15, Decay: 2},
		{Kind: PointLight, Color: WarmWhite, Intensity: 3 * i, Position: r3.Vector{X: -2, Y: 2, Z: 2}, Range: 12, Decay: 2},
		{Kind: PointLight, Color: WarmWhite, Intensity: 3 * i, Position: r3.Vector{X: 2, Y: 2, Z: -2}, Range: 12, Decay: 2},
		{
			Kind: SpotLight, Color: White, Intensity: spot,
			Position: r3.Vector{X: 5, Y: 6, Z: 3}, Target: r3.Vector{X: -0.3, Y: 0.1, Z: 0.2},
			Angle: math.Pi / 4, Penumbra: 0.2, Decay: 1.5,
		},
		{
			Kind: SpotLight, Color: White, Intensity: spot,
			Position: r3.Vector{X: -5, Y: 6, Z: -3}, Target: r3.Vector{X: 0.3, Y: 0.1, Z: -0.2},
			Angle: math.Pi / 4, Penumbra: 0.2, Decay: 1.5,
		},
	}
}

// Irradiance returns the light arriving at point p with unit normal n.
func (l Light) Irradiance(p, n r3.Vector) RGB {
	if l.Intensity <= 0 {
		return Black
	}
	radiance := l.Color.Scale(l.Intensity)
	switch l.Kind {
	case AmbientLight:
		return radiance
	case DirectionalLight:
		dir := l.Position.Sub(l.Target).Normalize()
		return radiance.Scale(math.Max(0, n.Dot(dir)))
	}

	toLight := l.Position.Sub(p)
	dist := toLight.Norm()
	if dist == 0 {
		return Black
	}
	dir := toLight.Mul(1 / dist)
	ndl := n.Dot(dir)
	if ndl <= 0 {
		return Black
	}
	k := ndl * distanceAttenuation(dist, l.Range, l.Decay)
	if l.Kind == SpotLight {
		axis := l.Position.Sub(l.Target).Normalize()
		k *= coneAttenuation(dir.Dot(axis), l.Angle, l.Penumbra)
	}
	return radiance.Scale(k)
}

func distanceAttenuation(dist, cutoff, decay float64) float64 {
	f := 1 / math.Max(math.Pow(dist, decay), 0.01)
	if cutoff > 0 {
		r := dist / cutoff
		w := clamp01(1 - r*r*r*r)
		f *= w * w
	}
	return f
}

func coneAttenuation(cos, angle, penumbra float64) float64 {
	outer := math.Cos(angle)
	inner := math.Cos(angle * (1 - penumbra))
	return smoothstep(outer, inner, cos)
}

func smoothstep(lo, hi, x float64) float64 {
	if hi == lo {
		if x < lo {
			return 0
		}
		return 1
	}
	t := clamp01((x - lo) / (hi - lo))
	return t * t * (3 - 2*t)
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Material describes a surface. Colours are linear.
type Material struct {
	Albedo   RGB
	Emissive RGB
	// Opacity below 1 is alpha-blended over what is behind.
	Opacity     float64
	DoubleSided bool
}

// Shade returns the outgoing linear colour of a diffuse surface point seen
// from eye.
func Shade(lights []Light, m Material, p, n, eye r3.Vector) RGB {
	if m.DoubleSided && n.Dot(eye.Sub(p)) < 0 {
		n = n.Mul(-1)
	}
	var irr RGB
	for _, l := range lights {
		irr = irr.Add(l.Irradiance(p, n))
	}
	return m.Albedo.Mul(irr).Scale(1 / math.Pi).Add(m.Emissive)
}
