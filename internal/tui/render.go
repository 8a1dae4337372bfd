package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/cj3636/gblame/internal/gitx"
	"github.com/cj3636/gblame/internal/runner"
)

const (
	runningPlaceholder  = "Running git blame…"
	noOutputPlaceholder = "(no output)"
)

// renderBlame issues a blame for the session's file. When rev is non-empty
// the annotations describe the file as it stood immediately before that
// revision (the command pins to `<rev>^`). Any in-flight job is stopped
// first, and the sync subscriptions are dropped while the pane's content is
// in flux.
func (m *Model) renderBlame(rev string) tea.Cmd {
	s := m.session
	s.PinnedRev = rev
	s.RenderFailed = false

	m.unsubscribeSync()
	s.Blame.Buf.SetLines([]string{runningPlaceholder})
	s.Blame.SetCursor(0)

	args := gitx.BlameArgs(m.cfg.BlameFlags, rev, m.relPath)
	return m.startJob(args, func(j Job, r runner.Result) tea.Msg {
		return blameMsg{job: j, rev: rev, res: r}
	})
}

// handleBlame applies a finished blame to the annotation pane.
func (m *Model) handleBlame(msg blameMsg) tea.Cmd {
	if !m.claimJob(msg.job) {
		return nil
	}
	s := m.session

	if !msg.res.Ok() {
		lines := gitx.SplitOutput(msg.res.Stderr)
		if lines == nil {
			lines = []string{"git blame failed"}
		}
		s.RenderFailed = true
		s.Blame.Buf.SetLines(lines)
		s.Blame.SetCursor(0)
		m.status = fmt.Sprintf("git blame failed (exit %d)", msg.res.ExitCode)
		m.log.WithField("exit", msg.res.ExitCode).Warn("blame failed")
		return nil
	}

	lines := gitx.SplitOutput(msg.res.Stdout)
	if lines == nil {
		lines = []string{noOutputPlaceholder}
	}
	s.Blame.Buf.SetLines(lines)

	// Restore the cursor before re-subscribing so the restore itself is
	// not mirrored.
	s.Blame.SetCursor(s.LastKnownLine)
	m.subscribeSync()

	m.log.WithFields(logrus.Fields{"lines": len(lines), "rev": msg.rev}).Debug("blame rendered")
	return nil
}
