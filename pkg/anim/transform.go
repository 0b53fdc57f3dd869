// Package anim provides skeletal animation sampling, pose evaluation and
// skinning matrix generation.
//
// Bones and poses are flat slices indexed by bone id. A bone's parent always
// has a smaller index than the bone itself, so every hierarchical pass is a
// single forward loop.
package anim

import (
	"github.com/Faultbox/midgard-skel/pkg/math"
)

// Transform is a rigid transform: a rotation followed by a translation,
// expressed in the parent's frame.
//
// Rotation does not have to be a unit quaternion. Every operation that
// consumes it normalizes first; a zero quaternion acts as identity.
type Transform struct {
	Position math.Vec3
	Rotation math.Quat
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{Rotation: math.QuatIdentity()}
}

// NewTransform builds a transform from a position and rotation.
func NewTransform(pos math.Vec3, rot math.Quat) Transform {
	return Transform{Position: pos, Rotation: rot}
}

// Mul composes t (the child, local to parent) with parent and returns the
// child expressed in parent's parent frame:
//
//	pos = rotate(parent.rot, t.pos) + parent.pos
//	rot = parent.rot * t.rot
func (t Transform) Mul(parent Transform) Transform {
	pr := parent.Rotation.Normalize()
	return Transform{
		Position: pr.RotateVec3(t.Position).Add(parent.Position),
		Rotation: pr.Mul(t.Rotation.Normalize()),
	}
}

// Compose is the function form of child.Mul(parent).
func Compose(child, parent Transform) Transform {
	return child.Mul(parent)
}

// Inverse returns the transform that undoes t, so that t.Mul(t.Inverse())
// and t.Inverse().Mul(t) are both identity.
func (t Transform) Inverse() Transform {
	conj := t.Rotation.Normalize().Conjugate()
	return Transform{
		Position: conj.RotateVec3(t.Position).Negate(),
		Rotation: conj,
	}
}

// Interpolate blends a toward b: positions are lerped, rotations slerped.
// ratio is not clamped; values outside [0, 1] extrapolate.
func Interpolate(a, b Transform, ratio float32) Transform {
	return Transform{
		Position: a.Position.Lerp(b.Position, ratio),
		Rotation: a.Rotation.Normalize().Slerp(b.Rotation.Normalize(), ratio),
	}
}

// ToMat4 returns Translate(pos) * Rotate(rot): the point is rotated in the
// local frame, then placed at pos.
func (t Transform) ToMat4() math.Mat4 {
	return math.TranslateVec3(t.Position).Mul(t.Rotation.ToMat4())
}

// TransformPoint applies t to a point.
func (t Transform) TransformPoint(p math.Vec3) math.Vec3 {
	return t.Rotation.RotateVec3(p).Add(t.Position)
}

// ApproxEqual reports whether t and o match within eps. q and -q count as
// the same rotation.
func (t Transform) ApproxEqual(o Transform, eps float32) bool {
	return t.Position.ApproxEqual(o.Position, eps) && t.Rotation.SameRotation(o.Rotation, eps)
}
