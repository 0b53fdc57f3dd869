package anim

import "errors"

// Errors returned while building skeletons and clips.
var (
	ErrEmptySkeleton    = errors.New("skeleton has no bones")
	ErrParentOrder      = errors.New("bone parent does not precede bone")
	ErrParentOutOfRange = errors.New("bone parent index out of range")
	ErrExcludedParent   = errors.New("bone parent was excluded")
	ErrEmptyClip        = errors.New("clip has no keyframes")
)
