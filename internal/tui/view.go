package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cj3636/gblame/internal/config"
	"github.com/cj3636/gblame/internal/gitx"
)

const helpPanelHeight = 11

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}

	var sections []string
	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderContent())
	if m.showHelp {
		sections = append(sections, m.renderHelpPanel())
	}
	sections = append(sections, m.renderStatusBar())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if s := m.session; s != nil && s.Detail != nil {
		return m.renderOverlay(s.Detail)
	}

	return content
}

func (m *Model) renderTitle() string {
	var title string
	s := m.session
	switch {
	case s == nil:
		title = fmt.Sprintf("gblame: %s", m.plain.Buf.Name)
	case s.PinnedRev != "":
		title = fmt.Sprintf("gblame: %s (before %s)", s.Source.Buf.Name, gitx.ShortRev(s.PinnedRev))
	default:
		title = fmt.Sprintf("gblame: %s", s.Source.Buf.Name)
	}
	return m.styles.title.Render(truncate(title, m.width-2))
}

func (m *Model) renderContent() string {
	s := m.session
	if s == nil {
		return m.renderPane(m.plain, m.width, true, m.focus == focusSource)
	}

	blameW := m.blameWidth()
	sourceW := m.width - blameW - 3
	if sourceW < 10 {
		sourceW = 10
	}

	source := m.renderPane(s.Source, sourceW, true, m.focus == focusSource)
	blame := m.renderPane(s.Blame, blameW, false, m.focus == focusBlame)

	sep := m.renderSeparator()
	if m.cfg.Side == config.SideLeft {
		return lipgloss.JoinHorizontal(lipgloss.Top, blame, sep, source)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, source, sep, blame)
}

func (m *Model) renderSeparator() string {
	col := make([]string, m.contentHeight())
	for i := range col {
		col[i] = " │ "
	}
	return m.styles.border.Render(strings.Join(col, "\n"))
}

// renderPane renders the visible window of a pane, highlighting the cursor
// line. Blame lines get their leading revision id emphasized.
func (m *Model) renderPane(p *Pane, width int, lineNumbers, focused bool) string {
	var rows []string
	end := p.Offset + p.Height
	if end > p.Buf.LineCount() {
		end = p.Buf.LineCount()
	}

	numberWidth := 0
	if lineNumbers {
		numberWidth = 6
	}
	contentWidth := width - numberWidth
	if contentWidth < 4 {
		contentWidth = 4
	}

	for i := p.Offset; i < end; i++ {
		var parts []string
		if lineNumbers {
			parts = append(parts, m.styles.lineNumber.Render(fmt.Sprintf("%4d", i+1))+" ")
		}

		text := truncate(expandTabs(p.Buf.Line(i)), contentWidth)
		padded := fmt.Sprintf("%-*s", contentWidth, text)

		switch {
		case i == p.Cursor && focused:
			parts = append(parts, m.styles.cursorLine.Render(padded))
		case i == p.Cursor:
			parts = append(parts, m.styles.cursorLine.Faint(true).Render(padded))
		default:
			parts = append(parts, m.renderLineText(p, padded))
		}
		rows = append(rows, strings.Join(parts, ""))
	}

	// Pad to the pane height so horizontal joins stay aligned.
	for len(rows) < p.Height {
		rows = append(rows, strings.Repeat(" ", width))
	}

	return strings.Join(rows, "\n")
}

func (m *Model) renderLineText(p *Pane, line string) string {
	if s := m.session; s != nil && p == s.Blame {
		if s.RenderFailed {
			return m.styles.errorText.Render(line)
		}
		if rev := gitx.RevisionID(line); rev != "" {
			return m.styles.revision.Render(line[:len(rev)]) + m.styles.meta.Render(line[len(rev):])
		}
		return m.styles.text.Render(line)
	}
	return m.styles.text.Render(line)
}

func (m *Model) renderStatusBar() string {
	s := m.session
	var left string
	if s != nil {
		sync := "off"
		if s.SyncEnabled {
			sync = "on"
		}
		p := m.focusedPane()
		left = fmt.Sprintf("Line %d/%d | Sync: %s | enter:travel o:detail s:sync tab:focus ?:help q:close",
			p.Cursor+1, p.Buf.LineCount(), sync)
	} else {
		left = "b:blame ?:help q:quit"
	}

	if m.status != "" {
		left = m.status + " | " + left
	}

	return m.styles.statusBar.Width(m.width).Render(truncate(left, m.width-2))
}

func (m *Model) renderOverlay(o *Overlay) string {
	header := m.styles.title.Render(o.Buf.Name)
	body := m.renderOverlayBody(o)
	box := m.styles.modal.Width(m.overlayWidth() - 2).Render(header + "\n" + body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderOverlayBody styles the overlay's visible lines: delta lines by
// their +/- prefix, everything else as plain text.
func (m *Model) renderOverlayBody(o *Overlay) string {
	lines := strings.Split(o.vp.View(), "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+"):
			lines[i] = m.styles.deltaAdded.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = m.styles.deltaRemoved.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// renderHelpPanel renders the help panel below the main view
func (m *Model) renderHelpPanel() string {
	helpText := []string{
		"",
		"Keyboard Shortcuts:",
		"  j, ↓      Cursor down     │  g      Go to top      │  enter  Time-travel to parent",
		"  k, ↑      Cursor up       │  G      Go to bottom   │  o      Show commit detail",
		"  d         Half page down  │  tab    Switch pane    │  s      Toggle cursor sync",
		"  u         Half page up    │  y      Copy revision  │  b      Re-open blame",
		"  q, esc    Close pane      │  ?, h   Toggle help    │  Q      Quit",
		"",
	}

	helpStyle := m.styles.help.
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(m.cfg.Theme.BorderFg).
		Padding(0, 1).
		Width(m.width - 2)

	return helpStyle.Render(strings.Join(helpText, "\n"))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 {
		maxLen = 4
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
