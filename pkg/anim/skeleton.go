package anim

import (
	"fmt"

	"github.com/Faultbox/midgard-skel/pkg/math"
)

// Bone is one joint of the skeleton.
type Bone struct {
	Name      string
	Parent    int // filtered index, NoParent for roots
	LocalBind Transform
}

// Skeleton is an immutable bone hierarchy with its derived bind data.
type Skeleton struct {
	Bones []Bone

	// BindModel holds the model-space bind transform of each bone.
	BindModel []Transform
	// InverseBind holds the inverse of BindModel.
	InverseBind []Transform
	// InverseBindMatrices holds InverseBind as matrices for skinning.
	InverseBindMatrices []math.Mat4

	boneMap *BoneMap
	byName  map[string]int
}

// NewSkeleton builds a skeleton from the kept bones of bm.
//
// Source parents must precede their children; a parent that comes later,
// is out of range or was excluded is a precondition violation.
func NewSkeleton(src SkeletonSource, bm *BoneMap) (*Skeleton, error) {
	n := bm.Len()
	if n == 0 {
		return nil, ErrEmptySkeleton
	}

	s := &Skeleton{
		Bones:   make([]Bone, n),
		boneMap: bm,
		byName:  make(map[string]int, n),
	}

	for i := 0; i < n; i++ {
		raw := bm.Raw(i)
		name := src.SkeletonBoneName(raw)

		parent, err := remapParent(bm, raw, src.SkeletonBoneParentIndex(raw))
		if err != nil {
			return nil, fmt.Errorf("bone %d (%s): %w", raw, name, err)
		}

		pos, rot := src.SkeletonBoneLocalBindTransform(raw)
		s.Bones[i] = Bone{
			Name:      name,
			Parent:    parent,
			LocalBind: Transform{Position: pos, Rotation: rot.Normalize()},
		}
		s.byName[name] = i
	}

	s.computeBindPose()
	return s, nil
}

func remapParent(bm *BoneMap, raw, rawParent int) (int, error) {
	switch {
	case rawParent < 0:
		return NoParent, nil
	case rawParent >= bm.RawLen():
		return 0, fmt.Errorf("%w: parent %d of %d bones", ErrParentOutOfRange, rawParent, bm.RawLen())
	case rawParent >= raw:
		return 0, fmt.Errorf("%w: parent %d", ErrParentOrder, rawParent)
	}

	parent, ok := bm.Filtered(rawParent)
	if !ok {
		return 0, fmt.Errorf("%w: parent %d", ErrExcludedParent, rawParent)
	}
	return parent, nil
}

// computeBindPose derives model-space and inverse bind transforms in one
// forward pass.
func (s *Skeleton) computeBindPose() {
	n := len(s.Bones)
	s.BindModel = make([]Transform, n)
	s.InverseBind = make([]Transform, n)
	s.InverseBindMatrices = make([]math.Mat4, n)

	for i, bone := range s.Bones {
		model := bone.LocalBind
		if bone.Parent != NoParent {
			model = model.Mul(s.BindModel[bone.Parent])
		}
		s.BindModel[i] = model
		s.InverseBind[i] = model.Inverse()
		s.InverseBindMatrices[i] = s.InverseBind[i].ToMat4()
	}
}

// BoneCount returns the number of bones.
func (s *Skeleton) BoneCount() int {
	return len(s.Bones)
}

// BoneIndex returns the index of the named bone, or -1.
func (s *Skeleton) BoneIndex(name string) int {
	if idx, ok := s.byName[name]; ok {
		return idx
	}
	return -1
}

// BoneMap returns the map used to build the skeleton.
func (s *Skeleton) BoneMap() *BoneMap {
	return s.boneMap
}

// Depth returns the number of ancestors of a bone.
func (s *Skeleton) Depth(bone int) int {
	depth := 0
	for p := s.Bones[bone].Parent; p != NoParent; p = s.Bones[p].Parent {
		depth++
	}
	return depth
}
