package anim

import "github.com/chewxy/math32"

// Default delta-time clamp: a tick longer than SpikeThreshold seconds (a
// pause or hitch) is replaced by MaxStep.
const (
	DefaultSpikeThreshold float32 = 0.1
	DefaultMaxStep        float32 = 1.0 / 60.0
)

// PlaybackState tracks the position of one playing clip.
//
// Time is clip-relative: a whole clip spans one unit regardless of its
// keyframe count, so each keyframe slot lasts 1/K.
type PlaybackState struct {
	Keyframe    int
	Accumulator float32
}

// FrameDuration returns the length of one keyframe slot for a clip with
// keyCount keyframes.
func FrameDuration(keyCount int) float32 {
	return 1 / float32(keyCount)
}

// Advance moves playback forward by dt. If dt does not fill the current
// slot it only accumulates; otherwise the state steps to the next keyframe
// (wrapping at the end) and the accumulator resets. It never steps more than
// one keyframe per call.
func (p *PlaybackState) Advance(dt float32, keyCount int) {
	if keyCount <= 0 {
		return
	}
	if dt < 0 || math32.IsNaN(dt) {
		dt = 0
	}

	if p.Accumulator+dt < FrameDuration(keyCount) {
		p.Accumulator += dt
		return
	}

	p.Accumulator = 0
	p.Keyframe = (p.Keyframe + 1) % keyCount
}

// Ratio returns the interpolation ratio between Keyframe and Next.
func (p PlaybackState) Ratio(keyCount int) float32 {
	return p.Accumulator * float32(keyCount)
}

// Next returns the keyframe after the current one, wrapping to 0.
func (p PlaybackState) Next(keyCount int) int {
	return (p.Keyframe + 1) % keyCount
}

// Time returns the normalized clip time in [0, 1).
func (p PlaybackState) Time(keyCount int) float32 {
	return (float32(p.Keyframe) + p.Ratio(keyCount)) / float32(keyCount)
}

// Seek positions playback at normalized clip time t, wrapped into [0, 1).
func (p *PlaybackState) Seek(t float32, keyCount int) {
	if keyCount <= 0 {
		return
	}
	t -= math32.Floor(t)
	if math32.IsNaN(t) {
		t = 0
	}

	slot := t * float32(keyCount)
	key := int(math32.Floor(slot))
	if key >= keyCount {
		key = keyCount - 1
	}
	p.Keyframe = key
	p.Accumulator = (slot - float32(key)) / float32(keyCount)
	if p.Accumulator >= FrameDuration(keyCount) {
		p.Accumulator = 0
	}
}

// ClampDelta sanitizes a host delta time. Negative and NaN deltas become 0;
// deltas above threshold are replaced by step.
func ClampDelta(dt, threshold, step float32) float32 {
	if dt < 0 || math32.IsNaN(dt) {
		return 0
	}
	if dt > threshold {
		return step
	}
	return dt
}
