package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-skel/pkg/anim"
)

// ErrInvalid is wrapped by every Validate error.
var ErrInvalid = errors.New("invalid config")

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads defaults overlaid with a single file, without flags.
// An empty path returns the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	var candidates []string
	for _, dir := range []string{".", ConfigDir()} {
		for _, name := range []string{"config.yaml", "config.yml", "config.toml"} {
			candidates = append(candidates, filepath.Join(dir, name))
		}
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "MidgardSkel")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "MidgardSkel")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "midgard-skel")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "midgard-skel")
	}
}

// loadFromFile merges a YAML or TOML file, picked by extension, into cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal(data, cfg)
	case ".yaml", ".yml", "":
		return yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
}

// Validate checks value ranges and the pose mode.
func (c *Config) Validate() error {
	if _, err := anim.ParseMode(c.Playback.Mode); err != nil {
		return fmt.Errorf("%w: playback.mode: %w", ErrInvalid, err)
	}

	switch {
	case c.Playback.Speed < 0:
		return fmt.Errorf("%w: playback.speed must not be negative", ErrInvalid)
	case c.Playback.SpikeThreshold <= 0:
		return fmt.Errorf("%w: playback.spike_threshold must be positive", ErrInvalid)
	case c.Playback.MaxStep <= 0:
		return fmt.Errorf("%w: playback.max_step must be positive", ErrInvalid)
	case c.CrossFade.Span < 0:
		return fmt.Errorf("%w: crossfade.span must not be negative", ErrInvalid)
	case c.CrossFade.MinHold < 0:
		return fmt.Errorf("%w: crossfade.min_hold must not be negative", ErrInvalid)
	case c.CrossFade.MaxHold < c.CrossFade.MinHold:
		return fmt.Errorf("%w: crossfade.max_hold %.2f is below min_hold %.2f", ErrInvalid, c.CrossFade.MaxHold, c.CrossFade.MinHold)
	case c.View.Width <= 0 || c.View.Height <= 0:
		return fmt.Errorf("%w: view size %dx%d", ErrInvalid, c.View.Width, c.View.Height)
	case c.Snapshot.Width <= 0 || c.Snapshot.Height <= 0:
		return fmt.Errorf("%w: snapshot size %dx%d", ErrInvalid, c.Snapshot.Width, c.Snapshot.Height)
	}

	for name, v := range map[string][]float32{
		"view.skeleton_offset": c.View.SkeletonOffset,
		"view.bone_color":      c.View.BoneColor,
		"snapshot.background":  c.Snapshot.Background,
	} {
		if len(v) != 3 {
			return fmt.Errorf("%w: %s needs 3 components, got %d", ErrInvalid, name, len(v))
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
