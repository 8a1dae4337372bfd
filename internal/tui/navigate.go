package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/cj3636/gblame/internal/gitx"
	"github.com/cj3636/gblame/internal/runner"
)

// timeTravel starts the navigation chain for the blame line under the
// cursor: resolve the revision's parent, fetch the file as of that parent,
// swap the snapshot into the source pane, and re-render the blame pinned to
// the revision. Repeating the action keeps walking to earlier parents until
// the root commit ends the chain.
func (m *Model) timeTravel() tea.Cmd {
	if m.session == nil {
		return nil
	}
	rev := m.blameLineRevision()
	if rev == "" {
		m.status = "no revision under cursor"
		m.log.Debug("time travel aborted: no revision on line")
		return nil
	}
	return m.startJob(gitx.ParentArgs(rev), func(j Job, r runner.Result) tea.Msg {
		return parentMsg{job: j, rev: rev, res: r}
	})
}

// handleParent continues the chain once the parent revision is known.
func (m *Model) handleParent(msg parentMsg) tea.Cmd {
	if !m.claimJob(msg.job) {
		return nil
	}
	if !msg.res.Ok() {
		// The revision has no parent: the chain has reached the root.
		m.status = fmt.Sprintf("%s has no parent; end of history", gitx.ShortRev(msg.rev))
		m.log.WithField("rev", msg.rev).Info("time travel reached root commit")
		return nil
	}
	parent := strings.TrimSpace(msg.res.Stdout)
	if parent == "" {
		m.status = fmt.Sprintf("could not resolve parent of %s", gitx.ShortRev(msg.rev))
		return nil
	}
	return m.startJob(gitx.ShowFileArgs(parent, m.relPath), func(j Job, r runner.Result) tea.Msg {
		return snapshotMsg{job: j, rev: msg.rev, parent: parent, res: r}
	})
}

// handleSnapshot swaps the historical content into the source pane and
// re-renders the blame. On failure the existing views are left untouched.
func (m *Model) handleSnapshot(msg snapshotMsg) tea.Cmd {
	if !m.claimJob(msg.job) {
		return nil
	}
	s := m.session

	if !msg.res.Ok() {
		m.status = fmt.Sprintf("cannot load %s at %s (exit %d)",
			m.relPath, gitx.ShortRev(msg.parent), msg.res.ExitCode)
		m.log.WithFields(logrus.Fields{"parent": msg.parent, "exit": msg.res.ExitCode}).
			Warn("snapshot fetch failed")
		return nil
	}

	name := fmt.Sprintf("%s@%s", filepath.Base(m.filePath), gitx.ShortRev(msg.parent))
	snapshot := m.newBuffer(name, gitx.SplitOutput(msg.res.Stdout), true)

	m.unsubscribeSync()
	s.Source.Buf = snapshot
	s.Source.SetCursor(s.LastKnownLine)

	m.log.WithFields(logrus.Fields{"rev": msg.rev, "parent": msg.parent}).Info("time traveled")

	// Pinning the blame to the clicked revision annotates the state just
	// before it, which is exactly the snapshot now on display.
	return m.renderBlame(msg.rev)
}
