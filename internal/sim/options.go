package sim

import (
	"fmt"

	"github.com/Faultbox/midgard-skel/internal/config"
	"github.com/Faultbox/midgard-skel/pkg/anim"
	"github.com/Faultbox/midgard-skel/pkg/math"
)

// Options configures a Simulation.
type Options struct {
	// Clips to load in order. Empty loads every clip the source lists.
	Clips         []string
	ExcludePrefix string

	Mode   anim.Mode
	Speed  float32
	Paused bool

	// Deltas above SpikeThreshold are replaced by MaxStep.
	SpikeThreshold float32
	MaxStep        float32

	CrossFade anim.DirectorConfig
	Seed      uint64 // 0 = time based

	DrawSkeleton    bool
	DrawWorldMarker bool
	MarkerLength    float32
	SkeletonOffset  math.Vec3
	BoneColor       anim.Color
}

// DefaultOptions mirrors config.Default.
func DefaultOptions() Options {
	o, err := OptionsFromConfig(config.Default())
	if err != nil {
		panic(err)
	}
	return o
}

// OptionsFromConfig converts loaded settings to simulation options.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	mode, err := anim.ParseMode(cfg.Playback.Mode)
	if err != nil {
		return Options{}, fmt.Errorf("playback.mode: %w", err)
	}

	o := Options{
		Clips:          cfg.Rig.Clips,
		ExcludePrefix:  cfg.Rig.ExcludePrefix,
		Mode:           mode,
		Speed:          cfg.Playback.Speed,
		Paused:         cfg.Playback.Paused,
		SpikeThreshold: cfg.Playback.SpikeThreshold,
		MaxStep:        cfg.Playback.MaxStep,
		CrossFade: anim.DirectorConfig{
			Span:    cfg.CrossFade.Span,
			MinHold: cfg.CrossFade.MinHold,
			MaxHold: cfg.CrossFade.MaxHold,
			Auto:    cfg.CrossFade.Enabled,
		},
		Seed:            cfg.CrossFade.Seed,
		DrawSkeleton:    cfg.View.DrawSkeleton,
		DrawWorldMarker: cfg.View.DrawWorldMarker,
		MarkerLength:    cfg.View.MarkerLength,
	}
	if v := cfg.View.SkeletonOffset; len(v) == 3 {
		o.SkeletonOffset = math.Vec3{X: v[0], Y: v[1], Z: v[2]}
	}
	o.BoneColor = anim.Magenta
	if c := cfg.View.BoneColor; len(c) == 3 {
		o.BoneColor = anim.Color{R: c[0], G: c[1], B: c[2]}
	}
	return o, nil
}
