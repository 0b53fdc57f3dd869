package anim

import "github.com/Faultbox/midgard-skel/pkg/math"

// NoParent is the parent index of a root bone.
const NoParent = -1

// SkeletonSource provides the raw skeleton of the host rig. Indices are raw
// source indices, before any bone is excluded.
type SkeletonSource interface {
	SkeletonBoneCount() int
	SkeletonBoneName(index int) string
	// SkeletonBoneParentIndex returns NoParent for roots.
	SkeletonBoneParentIndex(index int) int
	// SkeletonBoneIndex returns -1 for unknown names.
	SkeletonBoneIndex(name string) int
	SkeletonBoneLocalBindTransform(index int) (math.Vec3, math.Quat)
}

// AnimationSource provides sampled keyframes for named clips, in the raw
// bone index space of the matching SkeletonSource.
type AnimationSource interface {
	AnimKeyCount(clip string) int
	// AnimLocalBoneTransform reports ok == false when the clip has no data
	// for the bone or keyframe.
	AnimLocalBoneTransform(clip string, bone, keyframe int) (pos math.Vec3, rot math.Quat, ok bool)
}

// Color is a linear RGB color with components in [0, 1].
type Color struct {
	R, G, B float32
}

// Common debug colors.
var (
	Red     = Color{1, 0, 0}
	Green   = Color{0, 1, 0}
	Blue    = Color{0, 0, 1}
	Magenta = Color{1, 0, 1}
	White   = Color{1, 1, 1}
)

// RGBA8 converts the color to 8-bit channels, clamping out-of-range values.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return to8(c.R), to8(c.G), to8(c.B), 255
}

func to8(v float32) uint8 {
	switch {
	case v <= 0 || v != v:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}

// LineDrawer draws debug lines in model space.
type LineDrawer interface {
	DrawLine(start, end math.Vec3, color Color)
}

// SkinningSink receives the per-frame skinning palette: 16 column-major
// floats per bone. The slice is owned by the caller and is rewritten on the
// next frame.
type SkinningSink interface {
	SetSkinningPose(matrices []float32, boneCount int)
}
