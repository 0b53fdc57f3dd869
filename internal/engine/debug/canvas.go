package debug

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/Faultbox/midgard-skel/internal/engine/camera"
	"github.com/Faultbox/midgard-skel/pkg/anim"
	"github.com/Faultbox/midgard-skel/pkg/math"
)

// CanvasOptions configures an offscreen canvas.
type CanvasOptions struct {
	Background anim.Color
	LineWidth  float32 // pixels at output resolution
	// Supersample renders at N times the output size and downsamples.
	Supersample int
}

// Canvas rasterizes debug lines into an image. It implements
// anim.LineDrawer.
type Canvas struct {
	proj   camera.Projector
	opts   CanvasOptions
	width  int
	height int
	scale  float32

	img   *image.RGBA
	ras   *vector.Rasterizer
	lines int
}

// NewCanvas creates a canvas of width x height output pixels. proj must be
// built for the same size.
func NewCanvas(width, height int, proj camera.Projector, opts CanvasOptions) *Canvas {
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = 1
	}
	ss := opts.Supersample
	c := &Canvas{
		proj:   proj,
		opts:   opts,
		width:  width,
		height: height,
		scale:  float32(ss),
		img:    image.NewRGBA(image.Rect(0, 0, width*ss, height*ss)),
		ras:    vector.NewRasterizer(width*ss, height*ss),
	}
	c.Clear()
	return c
}

// Clear fills the canvas with the background color.
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(toRGBA(c.opts.Background)), image.Point{}, draw.Src)
	c.lines = 0
}

// DrawLine projects a world-space segment and rasterizes it as a quad.
// Segments with an endpoint behind the camera are skipped.
func (c *Canvas) DrawLine(start, end math.Vec3, col anim.Color) {
	x0, y0, ok0 := c.proj.Project(start)
	x1, y1, ok1 := c.proj.Project(end)
	if !ok0 || !ok1 {
		return
	}

	a := math.Vec2{X: x0 * c.scale, Y: y0 * c.scale}
	b := math.Vec2{X: x1 * c.scale, Y: y1 * c.scale}
	half := c.opts.LineWidth * c.scale / 2

	dir := b.Sub(a)
	if dir.Length() < 1e-3 {
		dir = math.Vec2{X: 1}
	}
	n := dir.Normalize().Perp().Scale(half)
	// extend the ends so joints overlap
	ext := dir.Normalize().Scale(half)
	a = a.Sub(ext)
	b = b.Add(ext)

	bounds := c.img.Bounds()
	c.ras.Reset(bounds.Dx(), bounds.Dy())
	p := a.Add(n)
	c.ras.MoveTo(p.X, p.Y)
	p = b.Add(n)
	c.ras.LineTo(p.X, p.Y)
	p = b.Sub(n)
	c.ras.LineTo(p.X, p.Y)
	p = a.Sub(n)
	c.ras.LineTo(p.X, p.Y)
	c.ras.ClosePath()
	c.ras.Draw(c.img, bounds, image.NewUniform(toRGBA(col)), image.Point{})
	c.lines++
}

// Lines returns the number of lines rasterized since the last Clear.
func (c *Canvas) Lines() int {
	return c.lines
}

// Image returns the canvas at output resolution.
func (c *Canvas) Image() *image.RGBA {
	if c.opts.Supersample == 1 {
		return c.img
	}
	dst := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), c.img, c.img.Bounds(), draw.Src, nil)
	return dst
}

// Save encodes the canvas to path; the format follows the extension.
func (c *Canvas) Save(path string) error {
	return SaveImage(path, c.Image())
}

func toRGBA(col anim.Color) color.RGBA {
	r, g, b, a := col.RGBA8()
	return color.RGBA{R: r, G: g, B: b, A: a}
}
