package anim

// Sampler yields the animated local sample of a bone for the current
// evaluation. ok == false leaves the bone at its bind transform.
type Sampler interface {
	Sample(bone int) (Transform, bool)
}

// KeyframeSampler samples a single keyframe of a clip.
type KeyframeSampler struct {
	Clip     *Clip
	Keyframe int
}

// Sample implements Sampler.
func (s KeyframeSampler) Sample(bone int) (Transform, bool) {
	return s.Clip.Sample(s.Keyframe, bone)
}

// InterpolatedSampler blends two keyframes of a clip.
type InterpolatedSampler struct {
	Clip     *Clip
	From, To int
	Ratio    float32
}

// NewInterpolatedSampler samples clip between the playback state's current
// and next keyframes.
func NewInterpolatedSampler(clip *Clip, p PlaybackState) InterpolatedSampler {
	k := clip.KeyframeCount
	return InterpolatedSampler{
		Clip:  clip,
		From:  p.Keyframe,
		To:    p.Next(k),
		Ratio: p.Ratio(k),
	}
}

// Sample implements Sampler.
func (s InterpolatedSampler) Sample(bone int) (Transform, bool) {
	a, ok := s.Clip.Sample(s.From, bone)
	if !ok {
		return Transform{}, false
	}
	b, _ := s.Clip.Sample(s.To, bone)
	return Interpolate(a, b, s.Ratio), true
}

// CrossFadeSampler blends the samples of two samplers by Weight
// (0 = From, 1 = To). A bone missing on one side uses identity there.
type CrossFadeSampler struct {
	From, To Sampler
	Weight   float32
}

// Sample implements Sampler.
func (s CrossFadeSampler) Sample(bone int) (Transform, bool) {
	a, okA := s.From.Sample(bone)
	b, okB := s.To.Sample(bone)
	switch {
	case !okA && !okB:
		return Transform{}, false
	case !okA:
		a = Identity()
	case !okB:
		b = Identity()
	}
	return Interpolate(a, b, s.Weight), true
}
