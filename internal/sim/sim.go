// Package sim runs the per-tick animation pipeline: delta clamping, clip
// playback and cross-fading, pose evaluation, debug lines and skinning.
package sim

import (
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-skel/internal/logger"
	"github.com/Faultbox/midgard-skel/pkg/anim"
	"github.com/Faultbox/midgard-skel/pkg/math"
)

// ClipLister is implemented by animation sources that can enumerate their
// clips. New uses it when Options.Clips is empty.
type ClipLister interface {
	ClipNames() []string
}

// Simulation owns all mutable animation state for one skeleton.
type Simulation struct {
	opts Options
	log  *zap.Logger

	skel     *anim.Skeleton
	clips    []*anim.Clip
	director *anim.Director

	drawer anim.LineDrawer
	sink   anim.SkinningSink

	mode    anim.Mode
	debug   bool
	paused  bool
	elapsed float32

	// scratch buffers reused every tick
	pose []anim.Transform
	skin []math.Mat4
	flat []float32
}

// New builds the skeleton and clips from the sources and creates the clip
// director. drawer and sink may be nil.
func New(opts Options, skelSrc anim.SkeletonSource, animSrc anim.AnimationSource,
	drawer anim.LineDrawer, sink anim.SkinningSink, log *zap.Logger) (*Simulation, error) {
	if log == nil {
		log = logger.Named("sim")
	}
	if opts.Speed < 0 {
		opts.Speed = 0
	}
	if opts.SpikeThreshold <= 0 {
		opts.SpikeThreshold = anim.DefaultSpikeThreshold
	}
	if opts.MaxStep <= 0 {
		opts.MaxStep = anim.DefaultMaxStep
	}

	bm := anim.NewBoneMap(skelSrc, opts.ExcludePrefix)
	skel, err := anim.NewSkeleton(skelSrc, bm)
	if err != nil {
		return nil, fmt.Errorf("building skeleton: %w", err)
	}
	if excluded := bm.Excluded(); len(excluded) > 0 {
		log.Debug("excluded bones", zap.Strings("bones", excluded))
	}

	clips, err := loadClips(opts.Clips, animSrc, skel)
	if err != nil {
		return nil, err
	}
	if len(clips) == 0 {
		log.Warn("no clips loaded, animated modes show the bind pose")
	}

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	s := &Simulation{
		opts:     opts,
		log:      log,
		skel:     skel,
		clips:    clips,
		director: anim.NewDirector(clips, opts.CrossFade, rng),
		drawer:   drawer,
		sink:     sink,
		mode:     opts.Mode,
		debug:    opts.DrawSkeleton,
		paused:   opts.Paused,
	}
	s.pose = anim.Evaluate(skel, anim.ModeBindPose, nil, nil)
	s.skin = anim.BuildSkinning(s.pose, skel.InverseBindMatrices, nil)

	log.Info("simulation ready",
		zap.Int("bones", skel.BoneCount()),
		zap.Int("clips", len(clips)),
		zap.Stringer("mode", s.mode),
	)
	return s, nil
}

func loadClips(names []string, src anim.AnimationSource, skel *anim.Skeleton) ([]*anim.Clip, error) {
	if src == nil {
		return nil, nil
	}
	if len(names) == 0 {
		if l, ok := src.(ClipLister); ok {
			names = l.ClipNames()
		}
	}

	clips := make([]*anim.Clip, 0, len(names))
	for _, name := range names {
		clip, err := anim.NewClip(name, src, skel)
		if err != nil {
			return nil, fmt.Errorf("loading clip: %w", err)
		}
		if n := clip.MissingCount(); n > 0 {
			missing := make([]string, 0, n)
			for i, m := range clip.Missing {
				if m {
					missing = append(missing, skel.Bones[i].Name)
				}
			}
			logger.WarnOnce("sim.missing."+name, "clip has no data for some bones, they stay at bind pose",
				zap.String("clip", name),
				zap.Strings("bones", missing),
			)
		}
		clips = append(clips, clip)
	}
	return clips, nil
}

// Update advances the simulation by dt seconds and publishes the new pose.
func (s *Simulation) Update(dt float32) {
	dt = anim.ClampDelta(dt, s.opts.SpikeThreshold, s.opts.MaxStep)
	if s.paused {
		dt = 0
	}
	dt *= s.opts.Speed

	if dt > 0 {
		if s.director.Tick(dt) {
			s.log.Debug("cross-fade complete", zap.String("clip", s.clips[s.director.Primary()].Name))
		}
		s.elapsed += dt
	}

	s.pose = anim.Evaluate(s.skel, s.mode, s.director.Sampler(s.mode), s.pose)

	if s.debug && s.drawer != nil {
		if s.opts.DrawWorldMarker {
			anim.DrawWorldMarker(s.drawer, s.opts.MarkerLength)
		}
		anim.DrawSkeleton(s.drawer, s.skel, s.pose, s.opts.BoneColor, s.opts.SkeletonOffset)
	}

	s.skin = anim.BuildSkinning(s.pose, s.skel.InverseBindMatrices, s.skin)
	s.flat = anim.Flatten(s.skin, s.flat)
	if s.sink != nil {
		s.sink.SetSkinningPose(s.flat, len(s.skin))
	}
}

// Pose returns the model-space pose of the last Update.
func (s *Simulation) Pose() []anim.Transform {
	return s.pose
}

// Skinning returns the skinning matrices of the last Update.
func (s *Simulation) Skinning() []math.Mat4 {
	return s.skin
}

func (s *Simulation) Skeleton() *anim.Skeleton {
	return s.skel
}

func (s *Simulation) Clips() []*anim.Clip {
	return s.clips
}

func (s *Simulation) Director() *anim.Director {
	return s.director
}

// Elapsed returns the simulated time, after clamping and speed scaling.
func (s *Simulation) Elapsed() float32 {
	return s.elapsed
}

func (s *Simulation) Mode() anim.Mode {
	return s.mode
}

// SetMode switches the pose mode for the next Update.
func (s *Simulation) SetMode(m anim.Mode) {
	if m == s.mode {
		return
	}
	s.log.Debug("pose mode", zap.Stringer("from", s.mode), zap.Stringer("to", m))
	s.mode = m
}

// ToggleDebug flips debug line drawing and returns the new state.
func (s *Simulation) ToggleDebug() bool {
	s.debug = !s.debug
	return s.debug
}

// Debug reports whether debug lines are drawn.
func (s *Simulation) Debug() bool {
	return s.debug
}

func (s *Simulation) Paused() bool {
	return s.paused
}

func (s *Simulation) SetPaused(p bool) {
	s.paused = p
}

// TriggerCrossFade starts a blend from the primary clip to the next one.
// It returns false while a blend is running or with fewer than two clips.
func (s *Simulation) TriggerCrossFade() bool {
	if len(s.clips) < 2 {
		return false
	}
	next := (s.director.Primary() + 1) % len(s.clips)
	if !s.director.Trigger(next) {
		return false
	}
	s.log.Debug("cross-fade",
		zap.String("from", s.clips[s.director.Primary()].Name),
		zap.String("to", s.clips[next].Name),
	)
	return true
}

// PlayClip makes the named clip primary without blending.
func (s *Simulation) PlayClip(name string) error {
	for i, c := range s.clips {
		if c.Name == name {
			s.director.SetPrimary(i)
			return nil
		}
	}
	return fmt.Errorf("clip %q not loaded", name)
}
