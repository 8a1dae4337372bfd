package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, PresetDefault, cfg.ThemePreset)
	require.Equal(t, SideRight, cfg.Side)
	require.Equal(t, 45, cfg.WidthPercent)
	require.True(t, cfg.SyncEnabled)
	require.Equal(t, 30*time.Second, cfg.JobTimeout)
	require.NotEmpty(t, cfg.Keybindings["time_travel"])
}

func TestThemeForPresetFallsBackToDefault(t *testing.T) {
	require.Equal(t, DefaultTheme(), ThemeForPreset("nope", false))
}

func TestHighContrastBrightensColors(t *testing.T) {
	normal := ThemeForPreset(PresetDefault, false)
	bright := ThemeForPreset(PresetDefault, true)
	require.NotEqual(t, normal.TextFg, bright.TextFg)
}

func TestMergeKeybindings(t *testing.T) {
	merged := MergeKeybindings(Keybindings{
		"time_travel": {"T"},
		"quit":        nil,
	})

	require.Equal(t, []string{"T"}, merged["time_travel"])
	require.Equal(t, DefaultKeybindings()["quit"], merged["quit"])
}

func TestKeybindingsMatches(t *testing.T) {
	kb := DefaultKeybindings()
	require.True(t, kb.Matches("enter", "time_travel"))
	require.False(t, kb.Matches("x", "time_travel"))
	require.False(t, kb.Matches("enter", "no_such_action"))
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoadAppliesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
theme: dracula
high_contrast: true
blame_flags: ["-w"]
side: left
width_percent: 60
sync_enabled: false
job_timeout: 5s
log_file: /tmp/gblame.log
keybindings:
  time_travel: ["T"]
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, PresetDracula, cfg.ThemePreset)
	require.True(t, cfg.HighContrast)
	require.Equal(t, ThemeForPreset(PresetDracula, true), cfg.Theme)
	require.Equal(t, []string{"-w"}, cfg.BlameFlags)
	require.Equal(t, SideLeft, cfg.Side)
	require.Equal(t, 60, cfg.WidthPercent)
	require.False(t, cfg.SyncEnabled)
	require.Equal(t, 5*time.Second, cfg.JobTimeout)
	require.Equal(t, "/tmp/gblame.log", cfg.LogFile)
	require.Equal(t, []string{"T"}, cfg.Keybindings["time_travel"])
	require.Equal(t, DefaultKeybindings()["quit"], cfg.Keybindings["quit"])
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"bad theme":   "theme: neon",
		"bad side":    "side: top",
		"bad width":   "width_percent: 5",
		"bad timeout": "job_timeout: soon",
		"bad yaml":    "theme: [unclosed",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := Load(path)
			require.Error(t, err)
		})
	}
}
