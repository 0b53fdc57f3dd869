package debug

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-skel/pkg/anim"
	"github.com/Faultbox/midgard-skel/pkg/math"
)

// GridColor is the default floor grid color.
var GridColor = anim.Color{R: 0.35, G: 0.35, B: 0.35}

// FloorGrid draws a square grid of lines on the XZ plane.
type FloorGrid struct {
	Center     math.Vec3
	HalfExtent float32
	Step       float32
	Color      anim.Color
}

// NewFloorGrid creates a grid of the given half extent and cell size
// centered on the origin.
func NewFloorGrid(halfExtent, step float32) *FloorGrid {
	return &FloorGrid{
		HalfExtent: halfExtent,
		Step:       step,
		Color:      GridColor,
	}
}

// LineCount returns the number of lines Draw emits.
func (g *FloorGrid) LineCount() int {
	if g.Step <= 0 || g.HalfExtent <= 0 {
		return 0
	}
	cells := int(math32.Floor(2 * g.HalfExtent / g.Step))
	return 2 * (cells + 1)
}

// Draw emits the grid lines.
func (g *FloorGrid) Draw(d anim.LineDrawer) {
	n := g.LineCount()
	if n == 0 {
		return
	}
	c := g.Center
	h := g.HalfExtent
	for i := 0; i < n/2; i++ {
		off := -h + float32(i)*g.Step
		d.DrawLine(
			math.Vec3{X: c.X + off, Y: c.Y, Z: c.Z - h},
			math.Vec3{X: c.X + off, Y: c.Y, Z: c.Z + h},
			g.Color,
		)
		d.DrawLine(
			math.Vec3{X: c.X - h, Y: c.Y, Z: c.Z + off},
			math.Vec3{X: c.X + h, Y: c.Y, Z: c.Z + off},
			g.Color,
		)
	}
}
