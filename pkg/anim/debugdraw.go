package anim

import "github.com/Faultbox/midgard-skel/pkg/math"

// DrawSkeleton draws one line per bone-parent edge of a model-space pose,
// shifted by offset.
func DrawSkeleton(d LineDrawer, skel *Skeleton, pose []Transform, color Color, offset math.Vec3) {
	for i, bone := range skel.Bones {
		if bone.Parent == NoParent {
			continue
		}
		d.DrawLine(
			pose[bone.Parent].Position.Add(offset),
			pose[i].Position.Add(offset),
			color,
		)
	}
}

// DrawWorldMarker draws the X, Y and Z axes from the origin in red, green
// and blue.
func DrawWorldMarker(d LineDrawer, length float32) {
	var origin math.Vec3
	d.DrawLine(origin, math.Vec3{X: length}, Red)
	d.DrawLine(origin, math.Vec3{Y: length}, Green)
	d.DrawLine(origin, math.Vec3{Z: length}, Blue)
}

// PoseBounds returns the axis-aligned bounds of a pose's bone positions.
func PoseBounds(pose []Transform) (lo, hi math.Vec3) {
	for i, t := range pose {
		if i == 0 {
			lo, hi = t.Position, t.Position
			continue
		}
		lo = lo.Min(t.Position)
		hi = hi.Max(t.Position)
	}
	return lo, hi
}
