package coal

import (
	"strconv"

	"coal-reveal/internal/core"
	"coal-reveal/internal/geom"

	"github.com/golang/geo/r3"
)

// Placement positions a lump relative to the piece origin.
type Placement struct {
	Scale    r3.Vector
	Rotation r3.Vector // Euler angles in radians, applied X then Y then Z
	Offset   r3.Vector
}

// Affine returns scale, then rotation, then translation.
func (p Placement) Affine() geom.Affine {
	return geom.Translate(p.Offset).
		Then(geom.RotateXYZ(p.Rotation.X, p.Rotation.Y, p.Rotation.Z)).
		Then(geom.Scale(p.Scale))
}

// LumpSpec describes one lump of the piece.
type LumpSpec struct {
	Radius       float64
	Irregularity float64
	Placement    Placement
}

// DefaultLayout is the reference silhouette: one main body and four smaller
// lumps clustered around it.
var DefaultLayout = []LumpSpec{
	{
		Radius: 1.4, Irregularity: 0.4,
		Placement: Placement{Scale: r3.Vector{X: 1.1, Y: 1.3, Z: 0.9}},
	},
	{
		Radius: 0.8, Irregularity: 0.38,
		Placement: Placement{
			Scale:    r3.Vector{X: 0.9, Y: 1.0, Z: 0.8},
			Rotation: r3.Vector{X: 0.2, Y: 0.3},
			Offset:   r3.Vector{X: 0.7, Y: -0.3, Z: 0.5},
		},
	},
	{
		Radius: 0.7, Irregularity: 0.36,
		Placement: Placement{
			Scale:    r3.Vector{X: 0.85, Y: 0.95, Z: 0.75},
			Rotation: r3.Vector{X: -0.15, Y: 0.4},
			Offset:   r3.Vector{X: -0.6, Y: 0.25, Z: -0.4},
		},
	},
	{
		Radius: 0.5, Irregularity: 0.34,
		Placement: Placement{
			Scale:    r3.Vector{X: 0.8, Y: 0.9, Z: 0.7},
			Rotation: r3.Vector{X: 0.3, Y: -0.2},
			Offset:   r3.Vector{X: 0.3, Y: 0.7, Z: -0.3},
		},
	},
	{
		Radius: 0.4, Irregularity: 0.32,
		Placement: Placement{
			Scale:    r3.Vector{X: 0.75, Y: 0.85, Z: 0.65},
			Rotation: r3.Vector{X: -0.25, Z: 0.2},
			Offset:   r3.Vector{X: -0.4, Y: -0.5, Z: 0.3},
		},
	},
}

// Config controls piece synthesis.
type Config struct {
	Subdivisions      int
	IrregularityScale float64
	RadiusScale       float64
	Layout            []LumpSpec
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Subdivisions:      DefaultSubdivisions,
		IrregularityScale: 1,
		RadiusScale:       1,
		Layout:            DefaultLayout,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["subdivisions"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 1 && parsed <= 6 {
			c.Subdivisions = parsed
		}
	}
	if v, ok := cfg["irregularity_scale"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.IrregularityScale = parsed
		}
	}
	if v, ok := cfg["radius_scale"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.RadiusScale = parsed
		}
	}
	return c
}

// Lightness range of the coal's grey base colour.
const (
	MinLightness = 0.08
	MaxLightness = 0.12
)

// Piece is the merged coal mesh plus the seeds it was built from.
type Piece struct {
	Seed      int64
	LumpSeeds []int64
	Lightness float64
	Mesh      geom.Mesh
}

// NewPiece builds the default piece from seed. The same seed always yields the
// same mesh.
func NewPiece(seed int64) Piece {
	return NewPieceWithConfig(DefaultConfig(), seed)
}

// NewRandomPiece builds the default piece from a freshly drawn seed.
func NewRandomPiece() Piece {
	return NewPiece(core.RandomSeed())
}

// NewPieceWithConfig builds a piece. Each lump takes the next value of a seed
// sequence derived from seed, so lumps never share a noise pattern.
func NewPieceWithConfig(cfg Config, seed int64) Piece {
	layout := cfg.Layout
	if len(layout) == 0 {
		layout = DefaultLayout
	}
	radiusScale := cfg.RadiusScale
	if radiusScale <= 0 {
		radiusScale = 1
	}
	rng := core.NewRNG(seed)
	piece := Piece{Seed: seed, LumpSeeds: make([]int64, len(layout))}
	parts := make([]geom.Mesh, len(layout))
	for i, spec := range layout {
		lumpSeed := rng.NextSeed()
		piece.LumpSeeds[i] = lumpSeed
		lump := Lump(LumpParams{
			Radius:       spec.Radius * radiusScale,
			Irregularity: spec.Irregularity * cfg.IrregularityScale,
			Seed:         lumpSeed,
			Subdivisions: cfg.Subdivisions,
		})
		parts[i] = lump.Transform(spec.Placement.Affine())
	}
	piece.Lightness = rng.Range(MinLightness, MaxLightness)
	piece.Mesh = geom.Merge(parts...)
	return piece
}
