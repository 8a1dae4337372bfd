package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/cj3636/gblame/internal/config"
)

// Styles holds all the lipgloss styles
type Styles struct {
	revision     lipgloss.Style
	meta         lipgloss.Style
	text         lipgloss.Style
	cursorLine   lipgloss.Style
	lineNumber   lipgloss.Style
	border       lipgloss.Style
	title        lipgloss.Style
	help         lipgloss.Style
	statusBar    lipgloss.Style
	errorText    lipgloss.Style
	deltaAdded   lipgloss.Style
	deltaRemoved lipgloss.Style
	modal        lipgloss.Style
}

// newStyles initializes all lipgloss styles based on theme
func newStyles(theme config.Theme) *Styles {
	return &Styles{
		revision: lipgloss.NewStyle().
			Foreground(theme.RevisionFg),
		meta: lipgloss.NewStyle().
			Foreground(theme.MetaFg),
		text: lipgloss.NewStyle().
			Foreground(theme.TextFg),
		cursorLine: lipgloss.NewStyle().
			Background(theme.CursorLineBg),
		lineNumber: lipgloss.NewStyle().
			Foreground(theme.LineNumberFg).
			Width(5).
			Align(lipgloss.Right),
		border: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(theme.BorderFg),
		title: lipgloss.NewStyle().
			Foreground(theme.TitleFg).
			Background(theme.TitleBg).
			Bold(true).
			Padding(0, 1),
		help: lipgloss.NewStyle().
			Foreground(theme.HelpFg).
			Italic(true),
		statusBar: lipgloss.NewStyle().
			Foreground(theme.TitleFg).
			Background(theme.TitleBg).
			Padding(0, 1),
		errorText: lipgloss.NewStyle().
			Foreground(theme.ErrorFg),
		deltaAdded: lipgloss.NewStyle().
			Foreground(theme.DeltaAddedFg),
		deltaRemoved: lipgloss.NewStyle().
			Foreground(theme.DeltaRemovedFg),
		modal: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.BorderFg).
			Padding(0, 1),
	}
}
