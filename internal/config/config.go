package config

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Config holds the application configuration. It is built once at startup
// and never mutated afterwards.
type Config struct {
	Theme        Theme
	ThemePreset  ThemePreset
	HighContrast bool
	// BlameFlags are passed to every git blame invocation.
	BlameFlags []string
	// Side controls which edge the annotation pane occupies.
	Side Side
	// WidthPercent is the annotation pane's share of the terminal width.
	WidthPercent int
	// SyncEnabled is the initial cursor-sync state; toggled at runtime.
	SyncEnabled bool
	// JobTimeout bounds each git invocation. Zero disables the deadline.
	JobTimeout time.Duration
	// LogFile receives diagnostics when set; logging is discarded otherwise.
	LogFile     string
	Keybindings Keybindings
}

// Side names the edge a pane is attached to.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// ThemePreset describes a named theme configuration.
type ThemePreset string

const (
	PresetDefault  ThemePreset = "default"
	PresetSolarize ThemePreset = "solarized"
	PresetDracula  ThemePreset = "dracula"
)

// Keybindings maps semantic actions to one or more key sequences.
type Keybindings map[string][]string

// Theme defines the color scheme for the application
type Theme struct {
	RevisionFg     lipgloss.Color
	MetaFg         lipgloss.Color
	TextFg         lipgloss.Color
	CursorLineBg   lipgloss.Color
	LineNumberFg   lipgloss.Color
	BorderFg       lipgloss.Color
	TitleFg        lipgloss.Color
	TitleBg        lipgloss.Color
	HelpFg         lipgloss.Color
	ErrorFg        lipgloss.Color
	DeltaAddedFg   lipgloss.Color
	DeltaRemovedFg lipgloss.Color
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		ThemePreset:  PresetDefault,
		Theme:        ThemeForPreset(PresetDefault, false),
		HighContrast: false,
		BlameFlags:   []string{"--date=short"},
		Side:         SideRight,
		WidthPercent: 45,
		SyncEnabled:  true,
		JobTimeout:   30 * time.Second,
		Keybindings:  DefaultKeybindings(),
	}
}

// DefaultTheme returns the default color theme
func DefaultTheme() Theme {
	return Theme{
		RevisionFg:     lipgloss.Color("#E5C07B"),
		MetaFg:         lipgloss.Color("#7F8C98"),
		TextFg:         lipgloss.Color("#B0B0B0"),
		CursorLineBg:   lipgloss.Color("#2C323C"),
		LineNumberFg:   lipgloss.Color("#666666"),
		BorderFg:       lipgloss.Color("#3A3A3A"),
		TitleFg:        lipgloss.Color("#FFFFFF"),
		TitleBg:        lipgloss.Color("#5F5FAF"),
		HelpFg:         lipgloss.Color("#888888"),
		ErrorFg:        lipgloss.Color("#E6A3A3"),
		DeltaAddedFg:   lipgloss.Color("#A8E6A3"),
		DeltaRemovedFg: lipgloss.Color("#E6A3A3"),
	}
}

// ThemeForPreset resolves a preset name to a concrete Theme, optionally
// applying a high-contrast variation.
func ThemeForPreset(preset ThemePreset, highContrast bool) Theme {
	switch preset {
	case PresetSolarize:
		return applyContrast(Theme{
			RevisionFg:     lipgloss.Color("#B58900"),
			MetaFg:         lipgloss.Color("#586E75"),
			TextFg:         lipgloss.Color("#93A1A1"),
			CursorLineBg:   lipgloss.Color("#073642"),
			LineNumberFg:   lipgloss.Color("#586E75"),
			BorderFg:       lipgloss.Color("#657B83"),
			TitleFg:        lipgloss.Color("#EEE8D5"),
			TitleBg:        lipgloss.Color("#586E75"),
			HelpFg:         lipgloss.Color("#93A1A1"),
			ErrorFg:        lipgloss.Color("#DC322F"),
			DeltaAddedFg:   lipgloss.Color("#859900"),
			DeltaRemovedFg: lipgloss.Color("#DC322F"),
		}, highContrast)
	case PresetDracula:
		return applyContrast(Theme{
			RevisionFg:     lipgloss.Color("#F1FA8C"),
			MetaFg:         lipgloss.Color("#6272A4"),
			TextFg:         lipgloss.Color("#F8F8F2"),
			CursorLineBg:   lipgloss.Color("#44475A"),
			LineNumberFg:   lipgloss.Color("#6272A4"),
			BorderFg:       lipgloss.Color("#44475A"),
			TitleFg:        lipgloss.Color("#F8F8F2"),
			TitleBg:        lipgloss.Color("#6272A4"),
			HelpFg:         lipgloss.Color("#BD93F9"),
			ErrorFg:        lipgloss.Color("#FF79C6"),
			DeltaAddedFg:   lipgloss.Color("#50FA7B"),
			DeltaRemovedFg: lipgloss.Color("#FF79C6"),
		}, highContrast)
	default:
		return applyContrast(DefaultTheme(), highContrast)
	}
}

// DefaultKeybindings returns the built-in keybinding map.
func DefaultKeybindings() Keybindings {
	return Keybindings{
		"quit":         {"ctrl+c", "Q"},
		"close":        {"q", "esc"},
		"open_blame":   {"b"},
		"time_travel":  {"enter"},
		"show_detail":  {"o"},
		"toggle_sync":  {"s"},
		"switch_focus": {"tab"},
		"copy_rev":     {"y"},
		"toggle_help":  {"?", "h"},
		"cursor_down":  {"j", "down"},
		"cursor_up":    {"k", "up"},
		"page_down":    {"d"},
		"page_up":      {"u"},
		"go_top":       {"g"},
		"go_bottom":    {"G"},
	}
}

// MergeKeybindings overlays user overrides onto defaults.
func MergeKeybindings(overrides Keybindings) Keybindings {
	defaults := DefaultKeybindings()
	for action, keys := range overrides {
		if len(keys) == 0 {
			continue
		}
		defaults[action] = keys
	}
	return defaults
}

// Matches reports whether key is bound to action.
func (k Keybindings) Matches(key, action string) bool {
	for _, bound := range k[action] {
		if bound == key {
			return true
		}
	}
	return false
}

func applyContrast(theme Theme, highContrast bool) Theme {
	if !highContrast {
		return theme
	}

	return Theme{
		RevisionFg:     lipgloss.Color(adjustBrightness(string(theme.RevisionFg), 0.25)),
		MetaFg:         lipgloss.Color(adjustBrightness(string(theme.MetaFg), 0.2)),
		TextFg:         lipgloss.Color(adjustBrightness(string(theme.TextFg), 0.2)),
		CursorLineBg:   lipgloss.Color(adjustBrightness(string(theme.CursorLineBg), 0.15)),
		LineNumberFg:   lipgloss.Color(adjustBrightness(string(theme.LineNumberFg), 0.2)),
		BorderFg:       lipgloss.Color(adjustBrightness(string(theme.BorderFg), 0.2)),
		TitleFg:        lipgloss.Color(adjustBrightness(string(theme.TitleFg), 0.2)),
		TitleBg:        lipgloss.Color(adjustBrightness(string(theme.TitleBg), 0.2)),
		HelpFg:         lipgloss.Color(adjustBrightness(string(theme.HelpFg), 0.2)),
		ErrorFg:        lipgloss.Color(adjustBrightness(string(theme.ErrorFg), 0.25)),
		DeltaAddedFg:   lipgloss.Color(adjustBrightness(string(theme.DeltaAddedFg), 0.25)),
		DeltaRemovedFg: lipgloss.Color(adjustBrightness(string(theme.DeltaRemovedFg), 0.25)),
	}
}

func adjustBrightness(hex string, factor float64) string {
	if len(hex) != 7 || hex[0] != '#' {
		return hex
	}

	var r, g, b int
	_, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b)
	if err != nil {
		return hex
	}

	boost := func(value int) int {
		adjusted := float64(value) * (1 + factor)
		if adjusted > 255 {
			adjusted = 255
		}
		return int(adjusted)
	}

	return fmt.Sprintf("#%02x%02x%02x", boost(r), boost(g), boost(b))
}
