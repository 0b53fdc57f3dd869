package formats

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-skel/pkg/math"
)

// Rig format errors.
var (
	ErrInvalidRig     = errors.New("invalid rig")
	ErrDuplicateBone  = errors.New("duplicate bone name")
	ErrUnknownParent  = errors.New("unknown parent bone")
	ErrDuplicateClip  = errors.New("duplicate clip name")
	ErrBadArity       = errors.New("wrong number of components")
	ErrTooManySamples = errors.New("keyframe has more samples than bones")
)

// RigBone is one bone entry of a rig document.
type RigBone struct {
	Name string `yaml:"name"`
	// Parent is the raw index of the parent bone. Omitted or -1 means root.
	Parent *int `yaml:"parent,omitempty"`
	// ParentName resolves the parent by name and overrides Parent.
	ParentName string    `yaml:"parent_name,omitempty"`
	Position   []float32 `yaml:"position,flow"`
	Rotation   []float32 `yaml:"rotation,flow"` // x, y, z, w
}

// RigSample is the local transform of one bone at one keyframe.
type RigSample struct {
	Position []float32 `yaml:"position,flow"`
	Rotation []float32 `yaml:"rotation,flow"`
}

// RigClip is a named animation. Keyframes[k][b] is the sample of raw bone b
// at keyframe k; a null entry or a short row leaves the bone without data.
type RigClip struct {
	Name      string         `yaml:"name"`
	Keyframes [][]*RigSample `yaml:"keyframes"`
}

// Rig is a parsed rig document: a raw skeleton plus its clips.
// It implements anim.SkeletonSource and anim.AnimationSource.
type Rig struct {
	Name  string    `yaml:"name"`
	Bones []RigBone `yaml:"bones"`
	Clips []RigClip `yaml:"clips,omitempty"`

	parents   []int
	positions []math.Vec3
	rotations []math.Quat
	boneIndex map[string]int
	clips     map[string]*rigTrack
}

type rigKey struct {
	pos math.Vec3
	rot math.Quat
	ok  bool
}

type rigTrack struct {
	keys [][]rigKey
}

// ParseRig parses a YAML rig document.
func ParseRig(data []byte) (*Rig, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	rig := &Rig{}
	if err := dec.Decode(rig); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRig, err)
	}
	if err := rig.resolve(); err != nil {
		return nil, err
	}
	return rig, nil
}

// ParseRigFile parses a rig document from disk.
func ParseRigFile(path string) (*Rig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rig file: %w", err)
	}
	return ParseRig(data)
}

// Marshal encodes the rig back to YAML.
func (r *Rig) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// resolve validates the document and builds the lookup tables.
func (r *Rig) resolve() error {
	if len(r.Bones) == 0 {
		return fmt.Errorf("%w: no bones", ErrInvalidRig)
	}

	n := len(r.Bones)
	r.boneIndex = make(map[string]int, n)
	for i, b := range r.Bones {
		if b.Name == "" {
			return fmt.Errorf("%w: bone %d has no name", ErrInvalidRig, i)
		}
		if _, dup := r.boneIndex[b.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateBone, b.Name)
		}
		r.boneIndex[b.Name] = i
	}

	r.parents = make([]int, n)
	r.positions = make([]math.Vec3, n)
	r.rotations = make([]math.Quat, n)
	for i, b := range r.Bones {
		parent, err := r.parentOf(b)
		if err != nil {
			return fmt.Errorf("bone %q: %w", b.Name, err)
		}
		pos, rot, err := decodeTransform(b.Position, b.Rotation)
		if err != nil {
			return fmt.Errorf("bone %q: %w", b.Name, err)
		}
		r.parents[i] = parent
		r.positions[i] = pos
		r.rotations[i] = rot
	}

	r.clips = make(map[string]*rigTrack, len(r.Clips))
	for _, c := range r.Clips {
		if _, dup := r.clips[c.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateClip, c.Name)
		}
		track, err := decodeClip(c, n)
		if err != nil {
			return fmt.Errorf("clip %q: %w", c.Name, err)
		}
		r.clips[c.Name] = track
	}

	return nil
}

func (r *Rig) parentOf(b RigBone) (int, error) {
	if b.ParentName != "" {
		idx, ok := r.boneIndex[b.ParentName]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownParent, b.ParentName)
		}
		return idx, nil
	}
	if b.Parent == nil || *b.Parent < 0 {
		return -1, nil
	}
	if *b.Parent >= len(r.Bones) {
		return 0, fmt.Errorf("%w: index %d of %d bones", ErrUnknownParent, *b.Parent, len(r.Bones))
	}
	return *b.Parent, nil
}

func decodeClip(c RigClip, bones int) (*rigTrack, error) {
	track := &rigTrack{keys: make([][]rigKey, len(c.Keyframes))}
	for k, row := range c.Keyframes {
		if len(row) > bones {
			return nil, fmt.Errorf("keyframe %d: %w (%d > %d)", k, ErrTooManySamples, len(row), bones)
		}
		keys := make([]rigKey, bones)
		for b, s := range row {
			if s == nil {
				continue
			}
			pos, rot, err := decodeTransform(s.Position, s.Rotation)
			if err != nil {
				return nil, fmt.Errorf("keyframe %d bone %d: %w", k, b, err)
			}
			keys[b] = rigKey{pos: pos, rot: rot, ok: true}
		}
		track.keys[k] = keys
	}
	return track, nil
}

// decodeTransform converts position/rotation lists. An empty position is the
// origin and an empty rotation is identity.
func decodeTransform(pos, rot []float32) (math.Vec3, math.Quat, error) {
	var v math.Vec3
	switch len(pos) {
	case 0:
	case 3:
		v = math.Vec3{X: pos[0], Y: pos[1], Z: pos[2]}
	default:
		return v, math.Quat{}, fmt.Errorf("position: %w: got %d, want 3", ErrBadArity, len(pos))
	}

	q := math.QuatIdentity()
	switch len(rot) {
	case 0:
	case 4:
		q = math.Quat{X: rot[0], Y: rot[1], Z: rot[2], W: rot[3]}
	default:
		return v, q, fmt.Errorf("rotation: %w: got %d, want 4", ErrBadArity, len(rot))
	}
	return v, q, nil
}

// ClipNames returns the clip names in document order.
func (r *Rig) ClipNames() []string {
	names := make([]string, len(r.Clips))
	for i, c := range r.Clips {
		names[i] = c.Name
	}
	return names
}

// HasClip reports whether the rig defines the named clip.
func (r *Rig) HasClip(name string) bool {
	_, ok := r.clips[name]
	return ok
}

// SkeletonBoneCount returns the number of raw bones.
func (r *Rig) SkeletonBoneCount() int {
	return len(r.Bones)
}

// SkeletonBoneName returns the name of a raw bone.
func (r *Rig) SkeletonBoneName(index int) string {
	return r.Bones[index].Name
}

// SkeletonBoneParentIndex returns the raw parent index, -1 for roots.
func (r *Rig) SkeletonBoneParentIndex(index int) int {
	return r.parents[index]
}

// SkeletonBoneIndex returns the raw index of the named bone, or -1.
func (r *Rig) SkeletonBoneIndex(name string) int {
	if idx, ok := r.boneIndex[name]; ok {
		return idx
	}
	return -1
}

// SkeletonBoneLocalBindTransform returns the bind transform of a raw bone
// relative to its parent.
func (r *Rig) SkeletonBoneLocalBindTransform(index int) (math.Vec3, math.Quat) {
	return r.positions[index], r.rotations[index]
}

// AnimKeyCount returns the number of keyframes of a clip, 0 if unknown.
func (r *Rig) AnimKeyCount(clip string) int {
	track, ok := r.clips[clip]
	if !ok {
		return 0
	}
	return len(track.keys)
}

// AnimLocalBoneTransform returns the sample of a raw bone at a keyframe.
func (r *Rig) AnimLocalBoneTransform(clip string, bone, keyframe int) (math.Vec3, math.Quat, bool) {
	track, ok := r.clips[clip]
	if !ok || keyframe < 0 || keyframe >= len(track.keys) {
		return math.Vec3{}, math.Quat{}, false
	}
	keys := track.keys[keyframe]
	if bone < 0 || bone >= len(keys) || !keys[bone].ok {
		return math.Vec3{}, math.Quat{}, false
	}
	return keys[bone].pos, keys[bone].rot, true
}
