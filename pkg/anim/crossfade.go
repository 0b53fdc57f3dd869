package anim

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
)

// CrossFade tracks the progress of a blend window of fixed Span.
type CrossFade struct {
	Elapsed float32
	Span    float32
	Active  bool
}

// Begin starts a new blend.
func (c *CrossFade) Begin() {
	c.Elapsed = 0
	c.Active = true
}

// Advance grows Elapsed by dt. It returns true exactly once, on the tick the
// blend reaches Span.
func (c *CrossFade) Advance(dt float32) bool {
	if !c.Active {
		return false
	}
	if dt > 0 {
		c.Elapsed += dt
	}
	if c.Elapsed >= c.Span {
		c.Elapsed = c.Span
		c.Active = false
		return true
	}
	return false
}

// Weight returns Elapsed/Span clamped to [0, 1]. A zero span is complete.
func (c CrossFade) Weight() float32 {
	if c.Span <= 0 {
		return 1
	}
	w := c.Elapsed / c.Span
	switch {
	case w < 0:
		return 0
	case w > 1:
		return 1
	}
	return w
}

// SeedPhase positions an incoming clip so its phase matches the outgoing
// clip proportionally:
//
//	keyframe = floor(toKeys * (from.Keyframe + dt) / fromKeys)
//
// wrapped into [0, toKeys), with the accumulator reset.
func SeedPhase(from PlaybackState, fromKeys, toKeys int, dt float32) PlaybackState {
	if fromKeys <= 0 || toKeys <= 0 {
		return PlaybackState{}
	}
	key := int(math32.Floor(float32(toKeys) * (float32(from.Keyframe) + dt) / float32(fromKeys)))
	return PlaybackState{Keyframe: wrapIndex(key, toKeys)}
}

// DirectorConfig configures automatic cross-fading between clips.
type DirectorConfig struct {
	// Span is the cross-fade duration.
	Span float32
	// MinHold and MaxHold bound the random time a clip plays alone before
	// the next cross-fade begins.
	MinHold, MaxHold float32
	// Auto enables timed cross-fades. Trigger works either way.
	Auto bool
}

// Director owns the playback state of every clip and decides which clip is
// primary and when to blend to the next one.
type Director struct {
	clips    []*Clip
	playback []PlaybackState
	cfg      DirectorConfig
	rng      *rand.Rand

	primary, target int
	hold            float32
	fade            CrossFade
}

// NewDirector creates a director playing clips[0] as primary.
func NewDirector(clips []*Clip, cfg DirectorConfig, rng *rand.Rand) *Director {
	if cfg.MaxHold < cfg.MinHold {
		cfg.MaxHold = cfg.MinHold
	}
	d := &Director{
		clips:    clips,
		playback: make([]PlaybackState, len(clips)),
		cfg:      cfg,
		rng:      rng,
		target:   -1,
		fade:     CrossFade{Span: cfg.Span},
	}
	d.hold = d.nextHold()
	return d
}

func (d *Director) nextHold() float32 {
	span := d.cfg.MaxHold - d.cfg.MinHold
	if span <= 0 || d.rng == nil {
		return d.cfg.MinHold
	}
	return d.cfg.MinHold + d.rng.Float32()*span
}

// Tick advances the primary clip and, while blending, the target clip.
// It returns true on the tick a cross-fade completes.
func (d *Director) Tick(dt float32) bool {
	if len(d.clips) == 0 {
		return false
	}

	d.advance(d.primary, dt)
	if !d.fade.Active {
		if d.cfg.Auto && len(d.clips) > 1 {
			d.hold -= dt
			if d.hold <= 0 {
				d.begin((d.primary+1)%len(d.clips), dt)
			}
		}
		return false
	}

	d.advance(d.target, dt)
	if !d.fade.Advance(dt) {
		return false
	}

	d.primary = d.target
	d.target = -1
	d.hold = d.nextHold()
	return true
}

// Trigger starts a cross-fade to clip target. It is ignored while a fade is
// running or when target is the primary clip.
func (d *Director) Trigger(target int) bool {
	if d.fade.Active || target == d.primary || target < 0 || target >= len(d.clips) {
		return false
	}
	d.begin(target, 0)
	return true
}

func (d *Director) begin(target int, dt float32) {
	from := d.clips[d.primary]
	to := d.clips[target]
	d.playback[target] = SeedPhase(d.playback[d.primary], from.KeyframeCount, to.KeyframeCount, dt)
	d.target = target
	d.fade.Begin()
}

func (d *Director) advance(clip int, dt float32) {
	d.playback[clip].Advance(dt, d.clips[clip].KeyframeCount)
}

// Primary returns the index of the primary clip.
func (d *Director) Primary() int {
	return d.primary
}

// Target returns the clip being blended in, or -1.
func (d *Director) Target() int {
	return d.target
}

// Blending reports whether a cross-fade is running.
func (d *Director) Blending() bool {
	return d.fade.Active
}

// Fade returns the current cross-fade state.
func (d *Director) Fade() CrossFade {
	return d.fade
}

// Hold returns the time left before the next automatic cross-fade.
func (d *Director) Hold() float32 {
	return d.hold
}

// Playback returns the playback state of a clip.
func (d *Director) Playback(clip int) PlaybackState {
	return d.playback[clip]
}

// SetPlayback overrides the playback state of a clip.
func (d *Director) SetPlayback(clip int, p PlaybackState) {
	d.playback[clip] = p
}

// SetPrimary makes clip the primary clip and cancels any running fade.
func (d *Director) SetPrimary(clip int) {
	d.primary = clip
	d.target = -1
	d.fade.Active = false
	d.fade.Elapsed = 0
	d.hold = d.nextHold()
}

// Sampler returns the sampler for mode at the current playback state.
// Bind modes return nil. ModeCrossFade without a running fade samples the
// primary clip alone.
func (d *Director) Sampler(mode Mode) Sampler {
	if len(d.clips) == 0 {
		return nil
	}
	primary := d.clips[d.primary]
	p := d.playback[d.primary]

	switch mode {
	case ModePalette:
		return KeyframeSampler{Clip: primary, Keyframe: p.Keyframe}
	case ModeInterpolated:
		return NewInterpolatedSampler(primary, p)
	case ModeCrossFade:
		from := NewInterpolatedSampler(primary, p)
		if !d.fade.Active {
			return from
		}
		return CrossFadeSampler{
			From:   from,
			To:     NewInterpolatedSampler(d.clips[d.target], d.playback[d.target]),
			Weight: d.fade.Weight(),
		}
	}
	return nil
}
