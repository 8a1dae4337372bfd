package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig mirrors the optional YAML configuration file. Every field is a
// pointer or slice so absent keys leave the built-in default untouched.
type FileConfig struct {
	Theme        *string             `yaml:"theme,omitempty"`
	HighContrast *bool               `yaml:"high_contrast,omitempty"`
	BlameFlags   []string            `yaml:"blame_flags,omitempty"`
	Side         *string             `yaml:"side,omitempty"`
	WidthPercent *int                `yaml:"width_percent,omitempty"`
	SyncEnabled  *bool               `yaml:"sync_enabled,omitempty"`
	JobTimeout   *string             `yaml:"job_timeout,omitempty"`
	LogFile      *string             `yaml:"log_file,omitempty"`
	Keybindings  map[string][]string `yaml:"keybindings,omitempty"`
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gblame", "config.yaml")
}

// Load reads the YAML file at path and applies it field by field onto the
// defaults. A missing file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := apply(cfg, &fc); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func apply(cfg *Config, fc *FileConfig) error {
	if fc.Theme != nil {
		preset := ThemePreset(*fc.Theme)
		switch preset {
		case PresetDefault, PresetSolarize, PresetDracula:
			cfg.ThemePreset = preset
		default:
			return fmt.Errorf("unknown theme %q", *fc.Theme)
		}
	}
	if fc.HighContrast != nil {
		cfg.HighContrast = *fc.HighContrast
	}
	cfg.Theme = ThemeForPreset(cfg.ThemePreset, cfg.HighContrast)

	if fc.BlameFlags != nil {
		cfg.BlameFlags = fc.BlameFlags
	}
	if fc.Side != nil {
		switch Side(*fc.Side) {
		case SideLeft, SideRight:
			cfg.Side = Side(*fc.Side)
		default:
			return fmt.Errorf("unknown side %q", *fc.Side)
		}
	}
	if fc.WidthPercent != nil {
		if *fc.WidthPercent < 10 || *fc.WidthPercent > 90 {
			return fmt.Errorf("width_percent %d out of range 10-90", *fc.WidthPercent)
		}
		cfg.WidthPercent = *fc.WidthPercent
	}
	if fc.SyncEnabled != nil {
		cfg.SyncEnabled = *fc.SyncEnabled
	}
	if fc.JobTimeout != nil {
		d, err := time.ParseDuration(*fc.JobTimeout)
		if err != nil {
			return fmt.Errorf("invalid job_timeout: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("job_timeout must not be negative")
		}
		cfg.JobTimeout = d
	}
	if fc.LogFile != nil {
		cfg.LogFile = *fc.LogFile
	}
	if fc.Keybindings != nil {
		cfg.Keybindings = MergeKeybindings(fc.Keybindings)
	}
	return nil
}
