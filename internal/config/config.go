// Package config handles viewer and tool configuration loading and management.
package config

// Config holds all settings.
type Config struct {
	Rig       RigConfig       `yaml:"rig" toml:"rig"`
	Playback  PlaybackConfig  `yaml:"playback" toml:"playback"`
	CrossFade CrossFadeConfig `yaml:"crossfade" toml:"crossfade"`
	View      ViewConfig      `yaml:"view" toml:"view"`
	Snapshot  SnapshotConfig  `yaml:"snapshot" toml:"snapshot"`
	Logging   LoggingConfig   `yaml:"logging" toml:"logging"`
}

// RigConfig selects the rig file and the clips to play.
type RigConfig struct {
	Path          string   `yaml:"path" toml:"path"`                     // empty = embedded mannequin
	Clips         []string `yaml:"clips" toml:"clips"`                   // empty = every clip in the rig
	ExcludePrefix string   `yaml:"exclude_prefix" toml:"exclude_prefix"` // bones dropped from the skeleton
}

// PlaybackConfig holds animation playback settings.
type PlaybackConfig struct {
	Mode           string  `yaml:"mode" toml:"mode"`
	Speed          float32 `yaml:"speed" toml:"speed"`
	SpikeThreshold float32 `yaml:"spike_threshold" toml:"spike_threshold"` // seconds
	MaxStep        float32 `yaml:"max_step" toml:"max_step"`               // seconds
	Paused         bool    `yaml:"paused" toml:"paused"`
}

// CrossFadeConfig holds automatic clip blending settings.
type CrossFadeConfig struct {
	Enabled bool    `yaml:"enabled" toml:"enabled"`
	Span    float32 `yaml:"span" toml:"span"`
	MinHold float32 `yaml:"min_hold" toml:"min_hold"`
	MaxHold float32 `yaml:"max_hold" toml:"max_hold"`
	Seed    uint64  `yaml:"seed" toml:"seed"` // 0 = time based
}

// ViewConfig holds viewer window and debug drawing settings.
type ViewConfig struct {
	Width           int       `yaml:"width" toml:"width"`
	Height          int       `yaml:"height" toml:"height"`
	Fullscreen      bool      `yaml:"fullscreen" toml:"fullscreen"`
	VSync           bool      `yaml:"vsync" toml:"vsync"`
	FPSLimit        int       `yaml:"fps_limit" toml:"fps_limit"`
	DrawSkeleton    bool      `yaml:"draw_skeleton" toml:"draw_skeleton"`
	DrawWorldMarker bool      `yaml:"draw_world_marker" toml:"draw_world_marker"`
	MarkerLength    float32   `yaml:"marker_length" toml:"marker_length"`
	SkeletonOffset  []float32 `yaml:"skeleton_offset,flow" toml:"skeleton_offset"`
	BoneColor       []float32 `yaml:"bone_color,flow" toml:"bone_color"`
}

// SnapshotConfig holds offscreen snapshot settings.
type SnapshotConfig struct {
	Width      int       `yaml:"width" toml:"width"`
	Height     int       `yaml:"height" toml:"height"`
	Background []float32 `yaml:"background,flow" toml:"background"`
	LineWidth  float32   `yaml:"line_width" toml:"line_width"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Rig: RigConfig{
			ExcludePrefix: "ik_",
		},
		Playback: PlaybackConfig{
			Mode:           "crossfade",
			Speed:          1,
			SpikeThreshold: 0.1,
			MaxStep:        1.0 / 60.0,
		},
		CrossFade: CrossFadeConfig{
			Enabled: true,
			Span:    0.5,
			MinHold: 2,
			MaxHold: 5,
		},
		View: ViewConfig{
			Width:           1280,
			Height:          720,
			VSync:           true,
			DrawSkeleton:    true,
			DrawWorldMarker: true,
			MarkerLength:    0.5,
			SkeletonOffset:  []float32{0, 0, 0},
			BoneColor:       []float32{1, 0, 1},
		},
		Snapshot: SnapshotConfig{
			Width:      512,
			Height:     512,
			Background: []float32{0.1, 0.1, 0.12},
			LineWidth:  2,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
