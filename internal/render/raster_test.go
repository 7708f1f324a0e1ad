package render

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"coal-reveal/internal/coal"
	"coal-reveal/internal/scene"
	"coal-reveal/internal/sequence"

	"github.com/golang/geo/r3"
)

const (
	testW = 96
	testH = 64
)

func testScene(t *testing.T, sc sequence.Scalars) *scene.Scene {
	t.Helper()
	cfg := coal.DefaultConfig()
	cfg.Subdivisions = 2
	s := scene.New(coal.NewPieceWithConfig(cfg, 11), 60)
	s.Update(16*time.Millisecond, sc)
	return s
}

func goldPixels(f *Frame) int {
	n := 0
	for i := 0; i+3 < len(f.Pix); i += 4 {
		if int(f.Pix[i]) > int(f.Pix[i+2])+40 {
			n++
		}
	}
	return n
}

func TestRenderDarkBeforeStart(t *testing.T) {
	r := NewRenderer(testW, testH)
	f := r.Render(testScene(t, sequence.Scalars{}))
	if l := f.Luminance(); l != 0 {
		t.Fatalf("unlit frame luminance %v", l)
	}
	if r.Stats().Triangles == 0 {
		t.Fatal("nothing rasterized")
	}
}

func TestRenderLitAfterReveal(t *testing.T) {
	r := NewRenderer(testW, testH)
	f := r.Render(testScene(t, sequence.ScalarsFor(1, true)))
	if l := f.Luminance(); l <= 0 {
		t.Fatalf("lit frame luminance %v", l)
	}
	if goldPixels(f) == 0 {
		t.Fatal("halo not visible at full light")
	}
	dim := NewRenderer(testW, testH).Render(testScene(t, sequence.ScalarsFor(0.25, true)))
	if goldPixels(dim) != 0 {
		t.Fatal("halo visible before its onset")
	}
	if dim.Luminance() >= f.Luminance() {
		t.Fatalf("dim frame %v not darker than full %v", dim.Luminance(), f.Luminance())
	}
}

func TestRenderCullsBackFaces(t *testing.T) {
	r := NewRenderer(testW, testH)
	r.Render(testScene(t, sequence.ScalarsFor(0.25, true)))
	st := r.Stats()
	if st.Culled == 0 || st.Triangles == 0 {
		t.Fatalf("stats %+v", st)
	}
	if st.Objects != 2 {
		t.Fatalf("objects drawn = %d, want ground and coal", st.Objects)
	}
}

func TestCoalCoversCentre(t *testing.T) {
	s := testScene(t, sequence.ScalarsFor(1, true))
	r := NewRenderer(testW, testH)
	f := r.Render(s)
	x, y, ok := Project(s, r3.Vector{Y: scene.GroupHeight}, testW, testH)
	if !ok {
		t.Fatal("coal centre not in front of the camera")
	}
	idx := int(y)*testW + int(x)
	if d := f.depth[idx]; d > 8 || d < 4 {
		t.Fatalf("depth at coal centre = %v", d)
	}
}

func TestResizeAndPNG(t *testing.T) {
	r := NewRenderer(testW, testH)
	first := r.Frame()
	r.Resize(testW, testH)
	if r.Frame() != first {
		t.Fatal("same size reallocated the frame")
	}
	r.Resize(40, 30)
	f := r.Render(testScene(t, sequence.ScalarsFor(1, true)))
	var buf bytes.Buffer
	if err := f.WritePNG(&buf); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Fatalf("png size %v", b)
	}
}

func TestEncodeLinear(t *testing.T) {
	buf := make([]byte, 12)
	encodeLinear(buf, []scene.RGB{{}, {R: 1, G: 1, B: 1}, {R: 5, G: -1, B: 0.5}})
	want := []byte{0, 0, 0, 255, 255, 255, 255, 255, 255, 0, 188, 255}
	if !bytes.Equal(buf, want) {
		t.Fatalf("encoded %v, want %v", buf, want)
	}
}
