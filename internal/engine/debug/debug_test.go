package debug

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/image/bmp"

	"github.com/Faultbox/midgard-skel/internal/engine/camera"
	"github.com/Faultbox/midgard-skel/pkg/anim"
	"github.com/Faultbox/midgard-skel/pkg/math"
)

type line struct {
	start, end math.Vec3
	color      anim.Color
}

type recorder struct {
	lines []line
}

func (r *recorder) DrawLine(start, end math.Vec3, c anim.Color) {
	r.lines = append(r.lines, line{start, end, c})
}

func frontCamera() *camera.OrbitCamera {
	c := camera.NewOrbitCamera()
	c.Center = math.Vec3{}
	c.RotationX, c.RotationY, c.Distance = 0, 0, 3
	return c
}

func TestDrawBox(t *testing.T) {
	r := &recorder{}
	lo := math.Vec3{X: -1, Y: 0, Z: -1}
	hi := math.Vec3{X: 1, Y: 2, Z: 1}
	DrawBox(r, hi, lo, 0.5, anim.White)

	if len(r.lines) != BoxEdgeCount {
		t.Fatalf("got %d lines, want %d", len(r.lines), BoxEdgeCount)
	}
	wantLo := math.Vec3{X: -1.5, Y: -0.5, Z: -1.5}
	wantHi := math.Vec3{X: 1.5, Y: 2.5, Z: 1.5}
	for _, l := range r.lines {
		for _, p := range []math.Vec3{l.start, l.end} {
			if !p.Min(wantLo).ApproxEqual(wantLo, 1e-6) || !p.Max(wantHi).ApproxEqual(wantHi, 1e-6) {
				t.Errorf("corner %v outside padded box", p)
			}
		}
		// every edge is axis aligned
		d := l.end.Sub(l.start)
		axes := 0
		for _, c := range d.Array() {
			if c != 0 {
				axes++
			}
		}
		if axes != 1 {
			t.Errorf("edge %v -> %v is not axis aligned", l.start, l.end)
		}
	}
}

func TestDrawPoseBounds(t *testing.T) {
	r := &recorder{}
	DrawPoseBounds(r, nil, math.Vec3{}, anim.White)
	if len(r.lines) != 0 {
		t.Errorf("empty pose drew %d lines", len(r.lines))
	}

	pose := []anim.Transform{anim.Identity(), {Position: math.Vec3{Y: 1}, Rotation: math.QuatIdentity()}}
	DrawPoseBounds(r, pose, math.Vec3{X: 10}, anim.Green)
	if len(r.lines) != BoxEdgeCount {
		t.Fatalf("got %d lines, want %d", len(r.lines), BoxEdgeCount)
	}
	for _, l := range r.lines {
		if l.start.X < 10-DefaultBoxPadding-1e-5 || l.start.X > 10+DefaultBoxPadding+1e-5 {
			t.Errorf("offset not applied: %v", l.start)
		}
	}
}

func TestFloorGrid(t *testing.T) {
	g := NewFloorGrid(1, 0.5)
	if got := g.LineCount(); got != 10 {
		t.Errorf("LineCount() = %d, want 10", got)
	}

	r := &recorder{}
	g.Draw(r)
	if len(r.lines) != g.LineCount() {
		t.Fatalf("drew %d lines, want %d", len(r.lines), g.LineCount())
	}
	for _, l := range r.lines {
		if l.start.Y != 0 || l.end.Y != 0 {
			t.Errorf("line %v -> %v leaves the floor plane", l.start, l.end)
		}
		if l.color != GridColor {
			t.Errorf("color = %v, want %v", l.color, GridColor)
		}
	}

	empty := &FloorGrid{HalfExtent: 1}
	r = &recorder{}
	empty.Draw(r)
	if len(r.lines) != 0 {
		t.Errorf("zero step drew %d lines", len(r.lines))
	}
}

func TestCanvasDrawLine(t *testing.T) {
	cam := frontCamera()
	bg := anim.Color{R: 0, G: 0, B: 0}
	c := NewCanvas(64, 64, cam.Projector(64, 64), CanvasOptions{Background: bg, LineWidth: 3})

	c.DrawLine(math.Vec3{X: -0.5}, math.Vec3{X: 0.5}, anim.Magenta)
	if c.Lines() != 1 {
		t.Fatalf("Lines() = %d, want 1", c.Lines())
	}

	img := c.Image()
	got := img.RGBAAt(32, 32)
	if got.R < 200 || got.G > 50 || got.B < 200 {
		t.Errorf("center pixel = %v, want magenta", got)
	}
	if corner := img.RGBAAt(0, 0); corner != (color.RGBA{A: 255}) {
		t.Errorf("corner pixel = %v, want background", corner)
	}

	c.Clear()
	if c.Lines() != 0 || c.Image().RGBAAt(32, 32) != (color.RGBA{A: 255}) {
		t.Error("Clear() should reset lines and pixels")
	}
}

func TestCanvasSkipsBehindCamera(t *testing.T) {
	cam := frontCamera()
	c := NewCanvas(32, 32, cam.Projector(32, 32), CanvasOptions{})

	c.DrawLine(math.Vec3{}, math.Vec3{Z: 10}, anim.White)
	if c.Lines() != 0 {
		t.Errorf("Lines() = %d, want 0", c.Lines())
	}
}

func TestCanvasSupersample(t *testing.T) {
	cam := frontCamera()
	c := NewCanvas(40, 30, cam.Projector(40, 30), CanvasOptions{Supersample: 2, LineWidth: 2})
	c.DrawLine(math.Vec3{Y: -0.5}, math.Vec3{Y: 0.5}, anim.White)

	img := c.Image()
	if img.Bounds() != image.Rect(0, 0, 40, 30) {
		t.Fatalf("bounds = %v, want 40x30", img.Bounds())
	}
	if px := img.RGBAAt(20, 15); px.R < 128 {
		t.Errorf("center pixel = %v, want bright", px)
	}
}

func TestSaveImageFormats(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.SetRGBA(1, 2, color.RGBA{R: 255, A: 255})

	pngPath := filepath.Join(dir, "out", "a.png")
	if err := SaveImage(pngPath, img); err != nil {
		t.Fatalf("SaveImage(png) error: %v", err)
	}
	f, err := os.Open(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(f)
	f.Close()
	if err != nil {
		t.Fatalf("png.Decode error: %v", err)
	}
	if r, _, _, _ := decoded.At(1, 2).RGBA(); r != 0xffff {
		t.Errorf("png pixel red = %#x, want 0xffff", r)
	}

	bmpPath := filepath.Join(dir, "a.BMP")
	if err := SaveImage(bmpPath, img); err != nil {
		t.Fatalf("SaveImage(bmp) error: %v", err)
	}
	data, _ := os.ReadFile(bmpPath)
	if _, err := bmp.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("bmp.Decode error: %v", err)
	}

	webpPath := filepath.Join(dir, "a.webp")
	if err := SaveImage(webpPath, img); err != nil {
		t.Fatalf("SaveImage(webp) error: %v", err)
	}
	data, _ = os.ReadFile(webpPath)
	if len(data) < 12 || string(data[:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		t.Errorf("webp output has no RIFF/WEBP header")
	}

	if err := SaveImage(filepath.Join(dir, "a.gif"), img); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("SaveImage(gif) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestScreenshotCapture(t *testing.T) {
	dir := t.TempDir()
	sc := NewScreenshotCapture(dir, "skel", "")
	sc.now = func() time.Time { return time.Date(2024, 3, 5, 7, 8, 9, 0, time.UTC) }

	want := filepath.Join(dir, "skel_2024-03-05_07-08-09.png")
	if got := sc.GenerateFilename(); got != want {
		t.Errorf("GenerateFilename() = %q, want %q", got, want)
	}

	if _, err := sc.CaptureFromPixels(make([]byte, 3), 1, 1, false); err == nil {
		t.Error("expected size mismatch error")
	}

	// 1x2: red on row 0, blue on row 1
	pixels := []byte{255, 0, 0, 255, 0, 0, 255, 255}
	name, err := sc.CaptureFromPixels(pixels, 1, 2, true)
	if err != nil {
		t.Fatalf("CaptureFromPixels error: %v", err)
	}
	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, b, _ := img.At(0, 0).RGBA(); b != 0xffff {
		t.Error("bottom-up capture should flip rows")
	}

	sc = NewScreenshotCapture("", "x", "WEBP")
	sc.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	if got := sc.GenerateFilename(); got != "x_2024-01-01_00-00-00.webp" {
		t.Errorf("GenerateFilename() = %q", got)
	}
}
