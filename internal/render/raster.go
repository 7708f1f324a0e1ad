// Package render rasterizes a scene on the CPU into an RGBA frame. The frame
// is plain memory so it can be uploaded to a window, encoded as PNG or
// inspected by tests without a display.
package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"coal-reveal/internal/core"
	"coal-reveal/internal/scene"

	"github.com/golang/geo/r3"
)

// Frame is a rendered image: linear colour, depth and encoded sRGB pixels.
type Frame struct {
	W, H  int
	Pix   []byte
	color []scene.RGB
	depth []float64
}

// NewFrame allocates a w×h frame.
func NewFrame(w, h int) *Frame {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Frame{
		W:     w,
		H:     h,
		Pix:   make([]byte, 4*w*h),
		color: make([]scene.RGB, w*h),
		depth: make([]float64, w*h),
	}
}

// Clone copies the frame.
func (f *Frame) Clone() *Frame {
	return &Frame{
		W:     f.W,
		H:     f.H,
		Pix:   append([]byte(nil), f.Pix...),
		color: append([]scene.RGB(nil), f.color...),
		depth: append([]float64(nil), f.depth...),
	}
}

// Size returns the frame dimensions.
func (f *Frame) Size() core.Size { return core.Size{W: f.W, H: f.H} }

func (f *Frame) clear(bg scene.RGB) {
	for i := range f.color {
		f.color[i] = bg
		f.depth[i] = math.Inf(1)
	}
}

// Image wraps the encoded pixels without copying.
func (f *Frame) Image() *image.RGBA {
	return &image.RGBA{Pix: f.Pix, Stride: 4 * f.W, Rect: image.Rect(0, 0, f.W, f.H)}
}

// WritePNG encodes the frame as PNG.
func (f *Frame) WritePNG(w io.Writer) error {
	if err := png.Encode(w, f.Image()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Luminance returns the mean encoded brightness in [0, 1].
func (f *Frame) Luminance() float64 {
	var sum float64
	for i := 0; i+3 < len(f.Pix); i += 4 {
		sum += 0.2126*float64(f.Pix[i]) + 0.7152*float64(f.Pix[i+1]) + 0.0722*float64(f.Pix[i+2])
	}
	return sum / (255 * float64(f.W*f.H))
}

// Stats counts the work of the last Render.
type Stats struct {
	Objects   int
	Triangles int
	Culled    int
}

// Renderer draws scenes into a reusable frame.
type Renderer struct {
	Background scene.RGB

	frame *Frame
	stats Stats

	verts []vertex
}

type vertex struct {
	x, y  float64 // screen space
	invZ  float64
	color scene.RGB
	ok    bool
}

// NewRenderer creates a renderer for a w×h frame.
func NewRenderer(w, h int) *Renderer {
	return &Renderer{frame: NewFrame(w, h)}
}

// Resize reallocates the frame when the size changes.
func (r *Renderer) Resize(w, h int) {
	if r.frame.W == w && r.frame.H == h {
		return
	}
	r.frame = NewFrame(w, h)
}

// Frame returns the most recent frame.
func (r *Renderer) Frame() *Frame { return r.frame }

// Stats returns counters for the last Render.
func (r *Renderer) Stats() Stats { return r.stats }

// Render draws every object of s. Opaque objects write depth; translucent
// ones are depth-tested and blended over them.
func (r *Renderer) Render(s *scene.Scene) *Frame {
	f := r.frame
	f.clear(r.Background)
	r.stats = Stats{}

	view := s.Camera.View()
	aspect := f.Size().Aspect()
	lights := s.Lights()

	for _, obj := range s.Objects() {
		r.drawObject(f, view, aspect, lights, obj)
	}
	encodeLinear(f.Pix, f.color)
	return f
}

func (r *Renderer) drawObject(f *Frame, view scene.View, aspect float64, lights []scene.Light, obj scene.Object) {
	opacity := obj.Material.Opacity
	if opacity <= 0 {
		return
	}
	world := obj.Mesh.Transform(obj.Transform)
	if world.VertexCount() == 0 {
		return
	}
	r.stats.Objects++

	if cap(r.verts) < world.VertexCount() {
		r.verts = make([]vertex, world.VertexCount())
	}
	verts := r.verts[:world.VertexCount()]
	w, h := float64(f.W), float64(f.H)
	for i, p := range world.Positions {
		nx, ny, z, ok := view.Project(p, aspect)
		v := vertex{ok: ok}
		if ok {
			v.x = (nx*0.5 + 0.5) * w
			v.y = (0.5 - ny*0.5) * h
			v.invZ = 1 / z
			n := r3.Vector{Y: 1}
			if i < len(world.Normals) {
				n = world.Normals[i]
			}
			v.color = scene.Shade(lights, obj.Material, p, n, view.Eye)
		}
		verts[i] = v
	}

	for t := 0; t < world.TriangleCount(); t++ {
		a, b, c := world.Triangle(t)
		va, vb, vc := verts[a], verts[b], verts[c]
		if !va.ok || !vb.ok || !vc.ok {
			r.stats.Culled++
			continue
		}
		area := edge(va, vb, vc.x, vc.y)
		// Outward counter-clockwise faces come out negative with y down.
		if area == 0 || (!obj.Material.DoubleSided && area > 0) {
			r.stats.Culled++
			continue
		}
		r.stats.Triangles++
		r.fill(f, va, vb, vc, area, opacity)
	}
}

func edge(a, b vertex, x, y float64) float64 {
	return (b.x-a.x)*(y-a.y) - (b.y-a.y)*(x-a.x)
}

func (r *Renderer) fill(f *Frame, a, b, c vertex, area, opacity float64) {
	minX := int(math.Max(0, math.Floor(min3(a.x, b.x, c.x))))
	maxX := int(math.Min(float64(f.W-1), math.Ceil(max3(a.x, b.x, c.x))))
	minY := int(math.Max(0, math.Floor(min3(a.y, b.y, c.y))))
	maxY := int(math.Min(float64(f.H-1), math.Ceil(max3(a.y, b.y, c.y))))
	if minX > maxX || minY > maxY {
		return
	}
	inv := 1 / area
	blend := opacity < 1
	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			w0 := edge(b, c, px, py) * inv
			w1 := edge(c, a, px, py) * inv
			w2 := edge(a, b, px, py) * inv
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			invZ := w0*a.invZ + w1*b.invZ + w2*c.invZ
			if invZ <= 0 {
				continue
			}
			z := 1 / invZ
			idx := y*f.W + x
			if z >= f.depth[idx] {
				continue
			}
			// Perspective-correct weights.
			pa, pb, pc := w0*a.invZ*z, w1*b.invZ*z, w2*c.invZ*z
			col := a.color.Scale(pa).Add(b.color.Scale(pb)).Add(c.color.Scale(pc))
			if blend {
				f.color[idx] = f.color[idx].Lerp(col, opacity)
				continue
			}
			f.color[idx] = col
			f.depth[idx] = z
		}
	}
}

// Project maps a world point to pixel coordinates in a w×h frame using the
// scene camera. ok is false when the point is not in front of the camera.
func Project(s *scene.Scene, p r3.Vector, w, h int) (x, y float64, ok bool) {
	nx, ny, _, ok := s.Camera.View().Project(p, core.Size{W: w, H: h}.Aspect())
	if !ok {
		return 0, 0, false
	}
	return (nx*0.5 + 0.5) * float64(w), (0.5 - ny*0.5) * float64(h), true
}

func min3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
func max3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }
