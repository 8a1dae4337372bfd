package tui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cj3636/gblame/internal/event"
)

// Session is the complete mutable state of one open blame interaction.
// It is created when the blame pane opens and cleared field by field when
// the pane closes; nothing about it survives across sessions.
type Session struct {
	Source *Pane
	Blame  *Pane
	Detail *Overlay

	// ActiveJob is the at-most-one in-flight git invocation. Starting a
	// new job always stops this one first.
	ActiveJob Job

	SyncEnabled bool
	// syncing guards the cursor-mirroring routine against feeding on its
	// own events. It is not a mutex: only the update loop ever touches
	// it, and it is true only for the duration of one mirroring step.
	syncing bool

	// LastKnownLine tracks the cursor line so a re-render can restore it.
	LastKnownLine int

	// RenderFailed marks the blame pane as showing captured error text
	// rather than annotations.
	RenderFailed bool

	// PinnedRev is the revision the blame pane is pinned to ("" for the
	// working tree). The annotations describe the file as it stood
	// immediately before this revision.
	PinnedRev string

	syncSubs []event.Subscription
	closeSub event.Subscription
}

// openSession builds a fresh session for the model's file and issues the
// first blame render, pinned to rev when non-empty.
func (m *Model) openSession(rev string) tea.Cmd {
	base := filepath.Base(m.filePath)
	srcBuf := m.newBuffer(base, m.fileLines, false)
	blameBuf := m.newBuffer(base+" (blame)", nil, true)

	s := &Session{
		Source:      &Pane{Buf: srcBuf},
		Blame:       &Pane{Buf: blameBuf},
		SyncEnabled: m.cfg.SyncEnabled,
	}
	m.session = s
	m.focus = focusBlame
	m.layout()

	s.Source.SetCursor(m.plain.Cursor)
	s.LastKnownLine = s.Source.Cursor

	// Teardown is scoped to the blame buffer's lifetime.
	s.closeSub = m.bus.SubscribeOnce(event.BufferClosed, blameBuf.ID, func(event.Event) {
		m.teardown()
	})

	m.log.WithField("file", m.relPath).Info("blame session opened")
	return m.renderBlame(rev)
}

// closeSession closes the blame pane; teardown runs via the one-shot
// BufferClosed hook registered at open.
func (m *Model) closeSession() {
	if m.session == nil {
		return
	}
	m.bus.Publish(event.Event{Kind: event.BufferClosed, Buffer: m.session.Blame.Buf.ID})
}

// teardown stops the active job, removes every subscription, closes the
// detail overlay, and clears the session. Re-opening afterwards behaves
// exactly like a first-time open.
func (m *Model) teardown() {
	s := m.session
	if s == nil {
		return
	}
	if s.ActiveJob != nil {
		s.ActiveJob.Stop()
		s.ActiveJob = nil
	}
	m.unsubscribeSync()
	m.bus.Unsubscribe(s.closeSub)

	// Remember where the user was so the plain view stays put.
	m.plain.Height = m.contentHeight()
	m.plain.SetCursor(s.LastKnownLine)

	*s = Session{}
	m.session = nil
	m.focus = focusSource
	m.log.Info("blame session closed")
}
