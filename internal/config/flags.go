package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file (.yaml, .yml or .toml)")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagRig        = flag.String("rig", "", "Path to rig file")
	flagClip       = flag.String("clip", "", "Comma separated clips to play")
	flagMode       = flag.String("mode", "", "Pose mode: bind, inverse-bind, palette, interpolated, crossfade")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagOpen       = flag.Bool("open", false, "Choose the rig file with a file dialog")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// OpenDialog reports whether --open was given.
func OpenDialog() bool {
	return *flagOpen
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagRig != "" {
		cfg.Rig.Path = *flagRig
	}
	if *flagClip != "" {
		cfg.Rig.Clips = splitList(*flagClip)
	}
	if *flagMode != "" {
		cfg.Playback.Mode = *flagMode
	}
	if *flagWindowed {
		cfg.View.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.View.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.View.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.View.Height = *flagHeight
	}
}
