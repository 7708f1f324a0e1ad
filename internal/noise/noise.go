// Package noise wraps OpenSimplex noise into seeded fields sampled by 3D
// direction, and stacks several of them into weighted octaves.
package noise

import (
	"github.com/golang/geo/r3"
	"github.com/ojrac/opensimplex-go"
)

// Field is a deterministic scalar function of a 3D point, parameterized by a
// seed and a spatial frequency. Values lie roughly in [-1, 1].
type Field struct {
	seed  int64
	scale float64
	os    opensimplex.Noise
}

// NewField returns a Field for the given seed sampled at scale.
func NewField(seed int64, scale float64) Field {
	return Field{seed: seed, scale: scale, os: opensimplex.New(seed)}
}

// Seed returns the seed the field was built from.
func (f Field) Seed() int64 { return f.seed }

// Scale returns the spatial frequency multiplier.
func (f Field) Scale() float64 { return f.scale }

// At samples the field at p scaled by the field's frequency.
func (f Field) At(p r3.Vector) float64 {
	return f.os.Eval3(p.X*f.scale, p.Y*f.scale, p.Z*f.scale)
}

// Octave describes one layer of a Layered field.
type Octave struct {
	// SeedOffset is added to the base seed so that octaves are decorrelated.
	SeedOffset int64
	Frequency  float64
	Weight     float64
}

// CoalOctaves are the five layers used for coal lumps: low frequencies shape
// the silhouette, high frequencies roughen the surface.
var CoalOctaves = []Octave{
	{SeedOffset: 0, Frequency: 0.8, Weight: 0.35},
	{SeedOffset: 500, Frequency: 1.8, Weight: 0.30},
	{SeedOffset: 1000, Frequency: 4.0, Weight: 0.20},
	{SeedOffset: 2000, Frequency: 8.0, Weight: 0.10},
	{SeedOffset: 3000, Frequency: 16.0, Weight: 0.05},
}

// Layered is a weighted sum of independent fields.
type Layered struct {
	fields  []Field
	weights []float64
}

// NewLayered builds one field per octave from seed.
func NewLayered(seed int64, octaves []Octave) *Layered {
	l := &Layered{
		fields:  make([]Field, len(octaves)),
		weights: make([]float64, len(octaves)),
	}
	for i, o := range octaves {
		l.fields[i] = NewField(seed+o.SeedOffset, o.Frequency)
		l.weights[i] = o.Weight
	}
	return l
}

// Len returns the number of octaves.
func (l *Layered) Len() int { return len(l.fields) }

// Sum returns the weighted sum of every octave sampled at p.
func (l *Layered) Sum(p r3.Vector) float64 {
	var total float64
	for i, f := range l.fields {
		total += f.At(p) * l.weights[i]
	}
	return total
}

// TotalWeight returns the sum of octave weights, which bounds |Sum| up to the
// amplitude of a single field.
func (l *Layered) TotalWeight() float64 {
	var total float64
	for _, w := range l.weights {
		total += w
	}
	return total
}
