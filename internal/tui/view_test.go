package tui

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestViewShowsSourceAndBlame(t *testing.T) {
	m, _ := renderedModel(t)
	out := m.View()

	require.Contains(t, out, "gblame: file.go")
	require.Contains(t, out, "package x")
	require.Contains(t, out, "a1b2c3d")
	require.Contains(t, out, "Sync: on")
}

func TestViewShowsPinnedRevisionInTitle(t *testing.T) {
	m, fr := renderedModel(t)

	cmd := pressKey(m, "enter")
	cmd = deliver(t, m, fr, cmd, okResult("deadbeef123456789\n"))
	cmd = deliver(t, m, fr, cmd, okResult("old line 1\n"))
	deliver(t, m, fr, cmd, okResult("9f8e7d6 (Carol 2023-12-24 1) old line 1\n"))

	out := m.View()
	require.Contains(t, out, "(before a1b2c3d)")
	require.Contains(t, out, "file.go@deadbee")
}

func TestViewWithoutSessionShowsPlainPane(t *testing.T) {
	m, _ := renderedModel(t)
	pressKey(m, "q")

	out := m.View()
	require.Contains(t, out, "package x")
	require.Contains(t, out, "b:blame")
	require.NotContains(t, out, "Sync:")
}

func TestViewStatusMessagePrefix(t *testing.T) {
	m, _ := renderedModel(t)
	m.setCursor(99) // clamps to last line
	pressKey(m, "s")

	require.Contains(t, m.View(), "cursor sync off")
}

func TestOverlayReplacesView(t *testing.T) {
	m, fr := renderedModel(t)

	cmd := pressKey(m, "o")
	deliver(t, m, fr, cmd, okResult(detailOutput()))

	out := m.View()
	require.Contains(t, out, "commit a1b2c3d")
	require.NotContains(t, out, "Sync: on")
}

func TestHelpPanelToggle(t *testing.T) {
	m, _ := renderedModel(t)

	pressKey(m, "?")
	require.Contains(t, m.View(), "Keyboard Shortcuts")

	pressKey(m, "?")
	require.NotContains(t, m.View(), "Keyboard Shortcuts")
}

func TestViewBeforeFirstWindowSize(t *testing.T) {
	m := &Model{}
	require.Equal(t, "", m.View())
}

func TestTruncateAndTabs(t *testing.T) {
	require.Equal(t, "abc", truncate("abc", 10))
	require.Equal(t, "abcd...", truncate("abcdefghij", 7))
	require.Equal(t, "    x", expandTabs("\tx"))
}
