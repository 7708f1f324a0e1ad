package coal

import (
	"math"
	"slices"
	"testing"

	"coal-reveal/internal/geom"

	"github.com/golang/geo/r3"
)

func radialVariance(m geom.Mesh, radius float64) float64 {
	var sum float64
	for _, p := range m.Positions {
		d := p.Norm() - radius
		sum += d * d
	}
	return sum / float64(len(m.Positions))
}

func TestLumpIsClosedAndFinite(t *testing.T) {
	for _, seed := range []int64{0, 1, 42, -7, 1 << 40} {
		m := Lump(LumpParams{Radius: 1.4, Irregularity: 0.4, Seed: seed, Subdivisions: 3})
		if !m.ClosedManifold() {
			t.Fatalf("seed %d: lump is not a closed manifold", seed)
		}
		if len(m.Normals) != m.VertexCount() {
			t.Fatalf("seed %d: %d normals for %d vertices", seed, len(m.Normals), m.VertexCount())
		}
		if !m.Finite() {
			t.Fatalf("seed %d: lump has non-finite data", seed)
		}
	}
}

func TestLumpDefaultResolution(t *testing.T) {
	m := Lump(LumpParams{Radius: 1, Irregularity: 0.3, Seed: 5})
	if m.VertexCount() != 2562 || m.TriangleCount() != 5120 {
		t.Fatalf("default lump has %d vertices / %d triangles", m.VertexCount(), m.TriangleCount())
	}
}

func TestLumpDeterministic(t *testing.T) {
	p := LumpParams{Radius: 0.8, Irregularity: 0.38, Seed: 1234, Subdivisions: 2}
	a, b := Lump(p), Lump(p)
	if !slices.Equal(a.Positions, b.Positions) || !slices.Equal(a.Normals, b.Normals) {
		t.Fatal("same params produced different lumps")
	}
	p.Seed++
	c := Lump(p)
	if slices.Equal(a.Positions, c.Positions) {
		t.Fatal("different seeds produced identical lumps")
	}
}

func TestIrregularityIncreasesDisplacement(t *testing.T) {
	const radius = 1.0
	prev := -1.0
	for _, irr := range []float64{0, 0.1, 0.2, 0.4, 0.8} {
		v := radialVariance(Lump(LumpParams{Radius: radius, Irregularity: irr, Seed: 99, Subdivisions: 3}), radius)
		if irr == 0 && v > 1e-20 {
			t.Fatalf("zero irregularity still displaced vertices (variance %v)", v)
		}
		if v <= prev && irr > 0 {
			t.Fatalf("irregularity %v variance %v did not exceed %v", irr, v, prev)
		}
		prev = v
	}
}

func TestDisplaceAlongRadialDirection(t *testing.T) {
	base := geom.Icosphere(1, 2)
	out := Displace(base, 1, 0.5, 3)
	for i, p := range out.Positions {
		if p.Normalize().Dot(base.Positions[i].Normalize()) < 1-1e-9 {
			t.Fatalf("vertex %d left its radial line", i)
		}
	}
	if base.Positions[0].Norm()-1 > 1e-12 {
		t.Fatal("Displace mutated its input")
	}
}

func TestDisplaceSkipsDegenerateVertex(t *testing.T) {
	base := geom.Icosphere(1, 1)
	base.Positions[0] = r3.Vector{}
	out := Displace(base, 1, 0.4, 8)
	if out.Positions[0] != (r3.Vector{}) {
		t.Fatalf("degenerate vertex moved to %v", out.Positions[0])
	}
	for _, p := range out.Positions {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) {
			t.Fatal("NaN produced for degenerate vertex")
		}
	}
}

func TestPieceDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Subdivisions = 2
	a := NewPieceWithConfig(cfg, 2024)
	b := NewPieceWithConfig(cfg, 2024)
	if !slices.Equal(a.LumpSeeds, b.LumpSeeds) {
		t.Fatal("lump seeds differ for the same piece seed")
	}
	if !slices.Equal(a.Mesh.Positions, b.Mesh.Positions) {
		t.Fatal("piece mesh differs for the same seed")
	}
	if a.Lightness != b.Lightness || a.Lightness < MinLightness || a.Lightness >= MaxLightness {
		t.Fatalf("lightness %v unstable or out of range", a.Lightness)
	}
	c := NewPieceWithConfig(cfg, 2025)
	if slices.Equal(a.Mesh.Positions, c.Mesh.Positions) {
		t.Fatal("different piece seeds produced the same mesh")
	}
}

func TestPieceComposition(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Subdivisions = 2
	p := NewPieceWithConfig(cfg, 1)
	perLump := geom.Icosphere(1, 2)
	if got, want := p.Mesh.VertexCount(), len(DefaultLayout)*perLump.VertexCount(); got != want {
		t.Fatalf("vertices = %d, want %d", got, want)
	}
	if len(p.LumpSeeds) != 5 {
		t.Fatalf("lump seeds = %d, want 5", len(p.LumpSeeds))
	}
	seen := map[int64]bool{}
	for _, s := range p.LumpSeeds {
		if seen[s] {
			t.Fatalf("lump seed %d repeated", s)
		}
		seen[s] = true
	}
	if !p.Mesh.ClosedManifold() || !p.Mesh.Finite() {
		t.Fatal("merged piece must stay closed and finite")
	}
	min, max := p.Mesh.Bounds()
	if max.Y-min.Y < 2.5 || max.Y-min.Y > 7 {
		t.Fatalf("unexpected piece height %v", max.Y-min.Y)
	}
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{"subdivisions": "3", "irregularity_scale": "0.5", "radius_scale": "-1"})
	if c.Subdivisions != 3 || c.IrregularityScale != 0.5 || c.RadiusScale != 1 {
		t.Fatalf("FromMap = %+v", c)
	}
	if d := FromMap(nil); d.Subdivisions != DefaultSubdivisions {
		t.Fatalf("nil map subdivisions = %d", d.Subdivisions)
	}
}

func TestRandomPieceUsesFreshSeeds(t *testing.T) {
	a := NewRandomPiece()
	b := NewRandomPiece()
	if a.Seed == b.Seed {
		t.Skip("random seeds collided")
	}
	if a.LumpSeeds[0] == b.LumpSeeds[0] {
		t.Fatal("random pieces share lump seeds")
	}
}
