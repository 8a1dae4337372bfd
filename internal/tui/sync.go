package tui

import "github.com/cj3636/gblame/internal/event"

// subscribeSync registers the two cursor-mirroring subscriptions, one per
// buffer and direction. They are scoped to the current buffers, so every
// content replacement (re-render, snapshot swap) re-registers them.
func (m *Model) subscribeSync() {
	s := m.session
	if s == nil {
		return
	}
	m.unsubscribeSync()
	s.syncSubs = []event.Subscription{
		m.bus.Subscribe(event.CursorMoved, s.Source.Buf.ID, func(ev event.Event) {
			m.mirrorCursor(s.Source, s.Blame, ev.Line)
		}),
		m.bus.Subscribe(event.CursorMoved, s.Blame.Buf.ID, func(ev event.Event) {
			m.mirrorCursor(s.Blame, s.Source, ev.Line)
		}),
	}
}

func (m *Model) unsubscribeSync() {
	s := m.session
	if s == nil {
		return
	}
	for _, sub := range s.syncSubs {
		m.bus.Unsubscribe(sub)
	}
	s.syncSubs = nil
}

// mirrorCursor moves the target pane's cursor to the source pane's line,
// clamped to the target's line count. The syncing flag makes the routine a
// non-reentrant critical section: the mirrored move publishes its own
// cursor event, which would otherwise bounce back forever. Actual locking
// is unnecessary since only the update loop runs handlers. Input focus is
// left where it was.
func (m *Model) mirrorCursor(from, to *Pane, line int) {
	s := m.session
	if s == nil || !s.SyncEnabled || s.syncing {
		return
	}
	s.syncing = true
	changed := to.SetCursor(line)
	if changed {
		m.bus.Publish(event.Event{Kind: event.CursorMoved, Buffer: to.Buf.ID, Line: to.Cursor})
	}
	s.syncing = false
}
