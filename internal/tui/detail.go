package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cj3636/gblame/internal/diff"
	"github.com/cj3636/gblame/internal/gitx"
	"github.com/cj3636/gblame/internal/runner"
)

const detailLoadingPlaceholder = "Loading commit detail…"

// Overlay is the transient floating panel showing full commit detail. At
// most one is open per session.
type Overlay struct {
	Rev     string
	Buf     *Buffer
	vp      viewport.Model
	loading bool
}

func (o *Overlay) setLines(lines []string) {
	o.Buf.SetLines(lines)
	o.vp.SetContent(strings.Join(lines, "\n"))
	o.vp.GotoTop()
}

func (o *Overlay) appendLines(lines []string) {
	o.Buf.SetLines(append(o.Buf.Lines, lines...))
	o.vp.SetContent(strings.Join(o.Buf.Lines, "\n"))
}

// Resize adjusts the overlay to the current window. The frame costs two
// columns and three rows (border plus title).
func (o *Overlay) Resize(width, height int) {
	o.vp.Width = width - 2
	o.vp.Height = height - 3
}

// showDetail opens the overlay for the revision under the blame cursor and
// fetches its full detail.
func (m *Model) showDetail() tea.Cmd {
	s := m.session
	if s == nil {
		return nil
	}
	rev := m.blameLineRevision()
	if rev == "" {
		m.status = "no revision under cursor"
		m.log.Debug("detail aborted: no revision on line")
		return nil
	}

	if s.Detail != nil {
		m.closeDetail()
	}

	o := &Overlay{
		Rev:     rev,
		Buf:     m.newBuffer("commit "+gitx.ShortRev(rev), nil, true),
		vp:      viewport.New(m.overlayWidth()-2, m.overlayHeight()-3),
		loading: true,
	}
	o.setLines([]string{detailLoadingPlaceholder})
	s.Detail = o

	return m.startJob(gitx.DetailArgs(rev), func(j Job, r runner.Result) tea.Msg {
		return detailMsg{job: j, rev: rev, res: r}
	})
}

// closeDetail dismisses the overlay and releases its buffer. A load still
// in flight is stopped; its late result would be dropped anyway.
func (m *Model) closeDetail() {
	s := m.session
	if s == nil || s.Detail == nil {
		return
	}
	if s.Detail.loading && s.ActiveJob != nil {
		s.ActiveJob.Stop()
		s.ActiveJob = nil
	}
	s.Detail = nil
}

func (m *Model) handleDetailKey(key string) tea.Cmd {
	kb := m.cfg.Keybindings
	o := m.session.Detail
	switch {
	case kb.Matches(key, "close") || kb.Matches(key, "show_detail"):
		m.closeDetail()
	case kb.Matches(key, "cursor_down"):
		o.vp.LineDown(1)
	case kb.Matches(key, "cursor_up"):
		o.vp.LineUp(1)
	case kb.Matches(key, "page_down"):
		o.vp.HalfViewDown()
	case kb.Matches(key, "page_up"):
		o.vp.HalfViewUp()
	case kb.Matches(key, "go_top"):
		o.vp.GotoTop()
	case kb.Matches(key, "go_bottom"):
		o.vp.GotoBottom()
	}
	return nil
}

// handleDetail fills the overlay with the commit text, then goes on to
// fetch the file's content at the revision for the delta section.
func (m *Model) handleDetail(msg detailMsg) tea.Cmd {
	if !m.claimJob(msg.job) {
		return nil
	}
	s := m.session
	o := s.Detail
	if o == nil || o.Rev != msg.rev {
		return nil
	}
	o.loading = false

	if !msg.res.Ok() {
		lines := []string{fmt.Sprintf("git show failed with exit code %d", msg.res.ExitCode)}
		lines = append(lines, gitx.SplitOutput(msg.res.Stderr)...)
		o.setLines(lines)
		m.status = fmt.Sprintf("git show failed (exit %d)", msg.res.ExitCode)
		return nil
	}

	lines := gitx.SplitOutput(msg.res.Stdout)
	if lines == nil {
		lines = []string{noOutputPlaceholder}
	}
	o.setLines(lines)

	return m.startJob(gitx.ShowFileArgs(msg.rev, m.relPath), func(j Job, r runner.Result) tea.Msg {
		return deltaNewMsg{job: j, rev: msg.rev, res: r}
	})
}

// handleDeltaNew holds the revision-side content and fetches the parent
// side. A failure just leaves the overlay without a delta section, e.g.
// when the file did not exist at the revision.
func (m *Model) handleDeltaNew(msg deltaNewMsg) tea.Cmd {
	if !m.claimJob(msg.job) {
		return nil
	}
	o := m.session.Detail
	if o == nil || o.Rev != msg.rev {
		return nil
	}
	if !msg.res.Ok() {
		return nil
	}
	newLines := gitx.SplitOutput(msg.res.Stdout)
	return m.startJob(gitx.ShowFileArgs(msg.rev+"^", m.relPath), func(j Job, r runner.Result) tea.Msg {
		return deltaOldMsg{job: j, rev: msg.rev, newLines: newLines, res: r}
	})
}

// handleDeltaOld appends what the commit changed in this file. Root
// commits diff against nothing.
func (m *Model) handleDeltaOld(msg deltaOldMsg) tea.Cmd {
	if !m.claimJob(msg.job) {
		return nil
	}
	o := m.session.Detail
	if o == nil || o.Rev != msg.rev {
		return nil
	}

	var oldLines []string
	if msg.res.Ok() {
		oldLines = gitx.SplitOutput(msg.res.Stdout)
	}

	changed := diff.Changed(diff.Delta(oldLines, msg.newLines))
	if len(changed) == 0 {
		return nil
	}

	section := []string{"", fmt.Sprintf("Changes to %s:", m.relPath)}
	for _, l := range changed {
		switch l.Kind {
		case diff.Added:
			section = append(section, "+ "+l.Text)
		case diff.Removed:
			section = append(section, "- "+l.Text)
		}
	}
	o.appendLines(section)
	return nil
}
