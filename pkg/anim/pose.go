package anim

import (
	"fmt"
	"strings"
)

// Mode selects what the pose evaluator produces.
type Mode int

const (
	// ModeBindPose ignores animation and returns model-space bind transforms.
	ModeBindPose Mode = iota
	// ModeInverseBindPose returns the inverse of every bind-pose transform.
	ModeInverseBindPose
	// ModePalette samples the nearest keyframe.
	ModePalette
	// ModeInterpolated blends the current and next keyframes.
	ModeInterpolated
	// ModeCrossFade blends two clips, each interpolated.
	ModeCrossFade
)

var modeNames = [...]string{
	ModeBindPose:        "bind",
	ModeInverseBindPose: "inverse-bind",
	ModePalette:         "palette",
	ModeInterpolated:    "interpolated",
	ModeCrossFade:       "crossfade",
}

// String returns the config/CLI name of the mode.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode parses a mode name as produced by String.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range modeNames {
		if s == name {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown pose mode %q", s)
}

// Animated reports whether the mode reads animation samples.
func (m Mode) Animated() bool {
	return m == ModePalette || m == ModeInterpolated || m == ModeCrossFade
}

// Evaluate computes the model-space transform of every bone.
//
// For each bone in index order the local bind transform is, unless the mode
// is a bind mode, first preceded by the sampler's local sample
// (sample * bind), then composed with the parent's already evaluated
// model-space result. ModeInverseBindPose inverts every result.
//
// out is reused when its length matches the bone count.
func Evaluate(skel *Skeleton, mode Mode, s Sampler, out []Transform) []Transform {
	n := skel.BoneCount()
	if len(out) != n {
		out = make([]Transform, n)
	}

	animated := mode.Animated() && s != nil
	for i, bone := range skel.Bones {
		local := bone.LocalBind
		if animated {
			if sample, ok := s.Sample(i); ok {
				local = sample.Mul(local)
			}
		}
		if bone.Parent != NoParent {
			local = local.Mul(out[bone.Parent])
		}
		out[i] = local
	}

	if mode == ModeInverseBindPose {
		for i := range out {
			out[i] = out[i].Inverse()
		}
	}

	return out
}
