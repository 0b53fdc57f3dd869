// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/Faultbox/midgard-skel/pkg/anim"
	"github.com/Faultbox/midgard-skel/pkg/math"
)

// BoxEdgeCount is the number of lines DrawBox emits.
const BoxEdgeCount = 12

// DefaultBoxPadding is the default padding around pose bounds.
const DefaultBoxPadding = 0.05

// DrawBox draws the wireframe of an axis-aligned box expanded by padding.
// Inverted corners are swapped.
func DrawBox(d anim.LineDrawer, lo, hi math.Vec3, padding float32, color anim.Color) {
	lo, hi = lo.Min(hi), lo.Max(hi)
	pad := math.Vec3{X: padding, Y: padding, Z: padding}
	lo = lo.Sub(pad)
	hi = hi.Add(pad)

	corner := func(x, y, z bool) math.Vec3 {
		c := lo
		if x {
			c.X = hi.X
		}
		if y {
			c.Y = hi.Y
		}
		if z {
			c.Z = hi.Z
		}
		return c
	}

	for _, y := range []bool{false, true} {
		// bottom and top faces
		d.DrawLine(corner(false, y, false), corner(true, y, false), color)
		d.DrawLine(corner(true, y, false), corner(true, y, true), color)
		d.DrawLine(corner(true, y, true), corner(false, y, true), color)
		d.DrawLine(corner(false, y, true), corner(false, y, false), color)
	}
	for _, x := range []bool{false, true} {
		for _, z := range []bool{false, true} {
			d.DrawLine(corner(x, false, z), corner(x, true, z), color)
		}
	}
}

// DrawPoseBounds draws the bounding box of a model-space pose.
func DrawPoseBounds(d anim.LineDrawer, pose []anim.Transform, offset math.Vec3, color anim.Color) {
	if len(pose) == 0 {
		return
	}
	lo, hi := anim.PoseBounds(pose)
	DrawBox(d, lo.Add(offset), hi.Add(offset), DefaultBoxPadding, color)
}
