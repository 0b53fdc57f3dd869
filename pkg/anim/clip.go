package anim

import "fmt"

// Clip is a named table of per-bone local transforms, one row per keyframe.
// Samples are relative to each bone's bind transform.
type Clip struct {
	Name          string
	KeyframeCount int
	// Frames[keyframe][bone], bone in the skeleton's filtered index space.
	Frames [][]Transform
	// Missing[bone] is true when the source had no data for the bone; such
	// bones keep their bind pose.
	Missing []bool
}

// NewClip materializes every (keyframe, bone) sample of the named clip.
// Bones are queried with their raw source index taken from the skeleton's
// bone map.
func NewClip(name string, src AnimationSource, skel *Skeleton) (*Clip, error) {
	keys := src.AnimKeyCount(name)
	if keys <= 0 {
		return nil, fmt.Errorf("clip %q: %w", name, ErrEmptyClip)
	}

	bones := skel.BoneCount()
	bm := skel.BoneMap()
	c := &Clip{
		Name:          name,
		KeyframeCount: keys,
		Frames:        make([][]Transform, keys),
		Missing:       make([]bool, bones),
	}

	for k := 0; k < keys; k++ {
		row := make([]Transform, bones)
		for b := 0; b < bones; b++ {
			pos, rot, ok := src.AnimLocalBoneTransform(name, bm.Raw(b), k)
			if !ok {
				c.Missing[b] = true
				row[b] = Identity()
				continue
			}
			row[b] = Transform{Position: pos, Rotation: rot}
		}
		c.Frames[k] = row
	}

	return c, nil
}

// NewClipFromFrames builds a clip from an in-memory table. Every row must
// have the same length.
func NewClipFromFrames(name string, frames [][]Transform) (*Clip, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("clip %q: %w", name, ErrEmptyClip)
	}
	bones := len(frames[0])
	for k, row := range frames {
		if len(row) != bones {
			return nil, fmt.Errorf("clip %q: keyframe %d has %d bones, want %d", name, k, len(row), bones)
		}
	}
	return &Clip{
		Name:          name,
		KeyframeCount: len(frames),
		Frames:        frames,
		Missing:       make([]bool, bones),
	}, nil
}

// BoneCount returns the number of bone slots per keyframe.
func (c *Clip) BoneCount() int {
	if len(c.Frames) == 0 {
		return 0
	}
	return len(c.Frames[0])
}

// Sample returns the local sample of a bone at a keyframe. The keyframe is
// wrapped into range. ok is false for missing or out-of-range bones.
func (c *Clip) Sample(keyframe, bone int) (Transform, bool) {
	if bone < 0 || bone >= c.BoneCount() || c.Missing[bone] {
		return Transform{}, false
	}
	return c.Frames[wrapIndex(keyframe, c.KeyframeCount)][bone], true
}

// MissingCount returns the number of bones without animation data.
func (c *Clip) MissingCount() int {
	n := 0
	for _, m := range c.Missing {
		if m {
			n++
		}
	}
	return n
}

func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
