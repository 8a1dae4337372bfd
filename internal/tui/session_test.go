package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/cj3636/gblame/internal/event"
)

func TestCloseTearsDownSession(t *testing.T) {
	m, _ := renderedModel(t)
	m.setCursor(2)

	cmd := pressKey(m, "q")
	require.Nil(t, cmd)

	require.Nil(t, m.session)
	require.Equal(t, focusSource, m.focus)
	// The plain view keeps the line the user was on.
	require.Equal(t, 2, m.plain.Cursor)
}

func TestCloseStopsInFlightJob(t *testing.T) {
	m, fr, _ := newTestModel(t)
	job := fr.last().job

	pressKey(m, "q")
	require.True(t, job.stopped)
	require.Nil(t, m.session)
}

func TestLateResultAfterCloseIsDropped(t *testing.T) {
	m, fr, cmd := newTestModel(t)

	pressKey(m, "q")
	fr.last().job.res = okResult(blameOutput())
	_, next := m.Update(cmd())
	require.Nil(t, next)
	require.Nil(t, m.session)
}

func TestEventsOnOldBuffersDoNothingAfterClose(t *testing.T) {
	m, _ := renderedModel(t)
	srcID := m.session.Source.Buf.ID
	blameID := m.session.Blame.Buf.ID

	pressKey(m, "q")
	require.Equal(t, 0, m.plain.Cursor)

	m.bus.Publish(event.Event{Kind: event.CursorMoved, Buffer: srcID, Line: 2})
	m.bus.Publish(event.Event{Kind: event.CursorMoved, Buffer: blameID, Line: 2})
	m.bus.Publish(event.Event{Kind: event.BufferClosed, Buffer: blameID})
	require.Equal(t, 0, m.plain.Cursor)
	require.Nil(t, m.session)
}

func TestReopenBehavesLikeFirstOpen(t *testing.T) {
	m, fr := renderedModel(t)
	pressKey(m, "q")

	cmd := pressKey(m, "b")
	require.NotNil(t, cmd)

	s := m.session
	require.NotNil(t, s)
	require.Equal(t, focusBlame, m.focus)
	require.True(t, s.SyncEnabled)
	require.Equal(t, "", s.PinnedRev)
	require.Equal(t, []string{runningPlaceholder}, s.Blame.Buf.Lines)
	require.Equal(t, []string{"blame", "--date=short", "--", "file.go"}, fr.last().args)

	deliver(t, m, fr, cmd, okResult(blameOutput()))
	require.Equal(t, 3, s.Blame.Buf.LineCount())
}

func TestReopenedSessionSyncStartsFresh(t *testing.T) {
	m, fr := renderedModel(t)
	pressKey(m, "s") // sync off
	require.False(t, m.session.SyncEnabled)

	pressKey(m, "q")
	cmd := pressKey(m, "b")
	deliver(t, m, fr, cmd, okResult(blameOutput()))

	// Nothing carries over from the closed session.
	require.True(t, m.session.SyncEnabled)
}

func TestQuitKeyTearsDownAndQuits(t *testing.T) {
	m, _ := renderedModel(t)

	cmd := pressKey(m, "ctrl+c")
	require.NotNil(t, cmd)
	require.Equal(t, tea.QuitMsg{}, cmd())
	require.Nil(t, m.session)
}

func TestCloseWithoutSessionQuits(t *testing.T) {
	m, _ := renderedModel(t)

	pressKey(m, "q")
	cmd := pressKey(m, "q")
	require.NotNil(t, cmd)
	require.Equal(t, tea.QuitMsg{}, cmd())
}

func TestSwitchFocus(t *testing.T) {
	m, _ := renderedModel(t)
	require.Equal(t, focusBlame, m.focus)

	pressKey(m, "tab")
	require.Equal(t, focusSource, m.focus)
	pressKey(m, "tab")
	require.Equal(t, focusBlame, m.focus)
}

func TestCursorKeysWorkWithoutSession(t *testing.T) {
	m, _ := renderedModel(t)
	pressKey(m, "q")

	pressKey(m, "j")
	require.Equal(t, 1, m.plain.Cursor)
	pressKey(m, "G")
	require.Equal(t, len(sourceLines())-1, m.plain.Cursor)
	pressKey(m, "g")
	require.Equal(t, 0, m.plain.Cursor)
}
