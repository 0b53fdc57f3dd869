package anim

import (
	"github.com/Faultbox/midgard-skel/pkg/math"
)

const eps = 1e-4

type testBone struct {
	name   string
	parent int
	pos    math.Vec3
	rot    math.Quat
}

// testRig is an in-memory SkeletonSource and AnimationSource. Clip samples
// are keyed by raw bone index.
type testRig struct {
	bones []testBone
	keys  map[string]int
	clips map[string]map[int][]Transform
}

func newTestRig(bones ...testBone) *testRig {
	for i := range bones {
		if bones[i].rot == (math.Quat{}) {
			bones[i].rot = math.QuatIdentity()
		}
	}
	return &testRig{
		bones: bones,
		keys:  map[string]int{},
		clips: map[string]map[int][]Transform{},
	}
}

func (r *testRig) addClip(name string, keys int, samples map[int][]Transform) {
	r.keys[name] = keys
	r.clips[name] = samples
}

func (r *testRig) SkeletonBoneCount() int              { return len(r.bones) }
func (r *testRig) SkeletonBoneName(i int) string       { return r.bones[i].name }
func (r *testRig) SkeletonBoneParentIndex(i int) int   { return r.bones[i].parent }
func (r *testRig) SkeletonBoneLocalBindTransform(i int) (math.Vec3, math.Quat) {
	return r.bones[i].pos, r.bones[i].rot
}

func (r *testRig) SkeletonBoneIndex(name string) int {
	for i, b := range r.bones {
		if b.name == name {
			return i
		}
	}
	return -1
}

func (r *testRig) AnimKeyCount(clip string) int { return r.keys[clip] }

func (r *testRig) AnimLocalBoneTransform(clip string, bone, keyframe int) (math.Vec3, math.Quat, bool) {
	samples, ok := r.clips[clip][bone]
	if !ok || keyframe >= len(samples) {
		return math.Vec3{}, math.Quat{}, false
	}
	t := samples[keyframe]
	return t.Position, t.Rotation, true
}

func mustSkeleton(src SkeletonSource) *Skeleton {
	skel, err := NewSkeleton(src, NewBoneMap(src, DefaultExcludePrefix))
	if err != nil {
		panic(err)
	}
	return skel
}

// chain returns root -> spine -> head, each one unit above its parent.
func chain() *testRig {
	return newTestRig(
		testBone{name: "root", parent: NoParent},
		testBone{name: "spine", parent: 0, pos: math.Vec3{Y: 1}},
		testBone{name: "head", parent: 1, pos: math.Vec3{Y: 1}},
	)
}

func at(x, y, z float32) Transform {
	return Transform{Position: math.Vec3{X: x, Y: y, Z: z}, Rotation: math.QuatIdentity()}
}

type recordedLine struct {
	start, end math.Vec3
	color      Color
}

type lineRecorder struct {
	lines []recordedLine
}

func (r *lineRecorder) DrawLine(start, end math.Vec3, color Color) {
	r.lines = append(r.lines, recordedLine{start, end, color})
}
