package anim

import "strings"

// DefaultExcludePrefix marks IK helper bones that are not part of the
// usable skeleton.
const DefaultExcludePrefix = "ik_"

// BoneMap translates between the raw source bone index space and the
// filtered index space used by Skeleton and Clip. It is built once and
// shared by every consumer, so both sides agree on which bones were dropped.
type BoneMap struct {
	toRaw      []int
	toFiltered []int
	excluded   []string
}

// NewBoneMap walks the source skeleton and drops every bone whose name
// starts with excludePrefix. An empty prefix keeps every bone.
func NewBoneMap(src SkeletonSource, excludePrefix string) *BoneMap {
	count := src.SkeletonBoneCount()
	bm := &BoneMap{
		toRaw:      make([]int, 0, count),
		toFiltered: make([]int, count),
	}

	for raw := 0; raw < count; raw++ {
		name := src.SkeletonBoneName(raw)
		if excludePrefix != "" && strings.HasPrefix(name, excludePrefix) {
			bm.toFiltered[raw] = -1
			bm.excluded = append(bm.excluded, name)
			continue
		}
		bm.toFiltered[raw] = len(bm.toRaw)
		bm.toRaw = append(bm.toRaw, raw)
	}

	return bm
}

// Len returns the number of kept bones.
func (bm *BoneMap) Len() int {
	return len(bm.toRaw)
}

// RawLen returns the number of bones in the source skeleton.
func (bm *BoneMap) RawLen() int {
	return len(bm.toFiltered)
}

// Raw returns the source index of a filtered bone.
func (bm *BoneMap) Raw(filtered int) int {
	return bm.toRaw[filtered]
}

// Filtered returns the filtered index of a source bone, or false if the
// bone was excluded or is out of range.
func (bm *BoneMap) Filtered(raw int) (int, bool) {
	if raw < 0 || raw >= len(bm.toFiltered) {
		return -1, false
	}
	idx := bm.toFiltered[raw]
	return idx, idx >= 0
}

// Excluded returns the names of dropped bones in source order.
func (bm *BoneMap) Excluded() []string {
	return bm.excluded
}
