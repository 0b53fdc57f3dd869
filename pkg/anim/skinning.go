package anim

import (
	"fmt"

	"github.com/Faultbox/midgard-skel/pkg/math"
)

// BuildSkinning computes out[i] = pose[i].ToMat4() * inverseBind[i].
// pose and inverseBind must have the same length; a mismatch panics.
// out is reused when its length matches.
func BuildSkinning(pose []Transform, inverseBind []math.Mat4, out []math.Mat4) []math.Mat4 {
	if len(pose) != len(inverseBind) {
		panic(fmt.Sprintf("anim: pose has %d bones, inverse bind pose has %d", len(pose), len(inverseBind)))
	}
	if len(out) != len(pose) {
		out = make([]math.Mat4, len(pose))
	}
	for i := range pose {
		out[i] = pose[i].ToMat4().Mul(inverseBind[i])
	}
	return out
}

// Flatten writes the matrices as 16 column-major floats each.
// out is reused when its length matches.
func Flatten(mats []math.Mat4, out []float32) []float32 {
	if len(out) != len(mats)*16 {
		out = make([]float32, len(mats)*16)
	}
	for i := range mats {
		copy(out[i*16:(i+1)*16], mats[i][:])
	}
	return out
}
