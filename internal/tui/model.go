package tui

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/cj3636/gblame/internal/config"
	"github.com/cj3636/gblame/internal/event"
	"github.com/cj3636/gblame/internal/export"
	"github.com/cj3636/gblame/internal/gitx"
)

type focusArea int

const (
	focusSource focusArea = iota
	focusBlame
)

// Model is the application state. It owns at most one blame Session; when
// the session is closed the file is still shown in a plain pane and the
// session can be re-opened fresh.
type Model struct {
	cfg    *config.Config
	styles *Styles
	run    Runner
	bus    *event.Bus
	log    *logrus.Logger

	repoRoot  string
	filePath  string
	relPath   string
	fileLines []string
	// initialRev pins the first render when the viewer was opened with an
	// explicit revision; re-opens use it again.
	initialRev string

	session *Session
	// plain shows the working-tree file when no session is open.
	plain *Pane

	focus    focusArea
	width    int
	height   int
	status   string
	showHelp bool

	nextBuf event.BufferID
}

// NewModel creates the TUI model for one file.
func NewModel(cfg *config.Config, log *logrus.Logger, run Runner, repoRoot, filePath, relPath string, fileLines []string, initialRev string) *Model {
	m := &Model{
		cfg:        cfg,
		styles:     newStyles(cfg.Theme),
		run:        run,
		bus:        event.NewBus(),
		log:        log,
		repoRoot:   repoRoot,
		filePath:   filePath,
		relPath:    relPath,
		fileLines:  fileLines,
		initialRev: initialRev,
	}
	m.plain = &Pane{Buf: m.newBuffer(filepath.Base(filePath), fileLines, false)}
	return m
}

func (m *Model) newBuffer(name string, lines []string, readOnly bool) *Buffer {
	m.nextBuf++
	return &Buffer{ID: m.nextBuf, Name: name, Lines: lines, ReadOnly: readOnly}
}

// Init opens the blame session immediately: the command that launched the
// viewer is the open-blame action.
func (m *Model) Init() tea.Cmd {
	return m.openSession(m.initialRev)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil
	case blameMsg:
		return m, m.handleBlame(msg)
	case parentMsg:
		return m, m.handleParent(msg)
	case snapshotMsg:
		return m, m.handleSnapshot(msg)
	case detailMsg:
		return m, m.handleDetail(msg)
	case deltaNewMsg:
		return m, m.handleDeltaNew(msg)
	case deltaOldMsg:
		return m, m.handleDeltaOld(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	kb := m.cfg.Keybindings
	key := msg.String()
	m.status = ""

	if kb.Matches(key, "quit") {
		m.teardown()
		return tea.Quit
	}

	if m.showHelp {
		if kb.Matches(key, "toggle_help") || kb.Matches(key, "close") {
			m.showHelp = false
			m.layout()
		}
		return nil
	}

	if s := m.session; s != nil && s.Detail != nil {
		return m.handleDetailKey(key)
	}

	switch {
	case kb.Matches(key, "toggle_help"):
		m.showHelp = true
		m.layout()
	case kb.Matches(key, "close"):
		if m.session != nil {
			m.closeSession()
		} else {
			return tea.Quit
		}
	case kb.Matches(key, "open_blame"):
		if m.session == nil {
			return m.openSession(m.initialRev)
		}
	case kb.Matches(key, "toggle_sync"):
		if s := m.session; s != nil {
			s.SyncEnabled = !s.SyncEnabled
			if s.SyncEnabled {
				m.status = "cursor sync on"
			} else {
				m.status = "cursor sync off"
			}
		}
	case kb.Matches(key, "switch_focus"):
		if m.session != nil {
			if m.focus == focusSource {
				m.focus = focusBlame
			} else {
				m.focus = focusSource
			}
		}
	case kb.Matches(key, "time_travel"):
		return m.timeTravel()
	case kb.Matches(key, "show_detail"):
		return m.showDetail()
	case kb.Matches(key, "copy_rev"):
		m.copyRevision()
	case kb.Matches(key, "cursor_down"):
		m.moveCursor(1)
	case kb.Matches(key, "cursor_up"):
		m.moveCursor(-1)
	case kb.Matches(key, "page_down"):
		m.moveCursor(m.focusedPane().HalfPage())
	case kb.Matches(key, "page_up"):
		m.moveCursor(-m.focusedPane().HalfPage())
	case kb.Matches(key, "go_top"):
		m.setCursor(0)
	case kb.Matches(key, "go_bottom"):
		m.setCursor(m.focusedPane().Buf.LineCount() - 1)
	}
	return nil
}

// focusedPane returns the pane cursor keys act on.
func (m *Model) focusedPane() *Pane {
	s := m.session
	if s == nil {
		return m.plain
	}
	if m.focus == focusBlame {
		return s.Blame
	}
	return s.Source
}

func (m *Model) moveCursor(delta int) {
	p := m.focusedPane()
	m.setCursor(p.Cursor + delta)
}

// setCursor moves the focused pane's cursor and publishes the move so the
// synchronizer can mirror it.
func (m *Model) setCursor(line int) {
	p := m.focusedPane()
	changed := p.SetCursor(line)
	if s := m.session; s != nil {
		s.LastKnownLine = p.Cursor
	}
	if changed {
		m.bus.Publish(event.Event{Kind: event.CursorMoved, Buffer: p.Buf.ID, Line: p.Cursor})
	}
}

// blameLineRevision extracts the revision id under the blame cursor. The
// empty string means the cursor is not on a blame line (placeholder or
// error text); callers treat that as a no-op.
func (m *Model) blameLineRevision() string {
	s := m.session
	if s == nil {
		return ""
	}
	return gitx.RevisionID(s.Blame.Buf.Line(s.Blame.Cursor))
}

func (m *Model) copyRevision() {
	rev := m.blameLineRevision()
	if rev == "" {
		m.status = "no revision under cursor"
		return
	}
	if err := export.CopyToClipboard(rev, nil); err != nil {
		m.status = fmt.Sprintf("clipboard copy failed: %v", err)
		return
	}
	m.status = fmt.Sprintf("copied %s", gitx.ShortRev(rev))
}

// layout recomputes pane geometry from the window size and config.
func (m *Model) layout() {
	h := m.contentHeight()
	m.plain.Height = h
	m.plain.scrollIntoView()

	s := m.session
	if s == nil {
		return
	}
	s.Source.Height = h
	s.Blame.Height = h
	s.Source.scrollIntoView()
	s.Blame.scrollIntoView()
	if s.Detail != nil {
		s.Detail.Resize(m.overlayWidth(), m.overlayHeight())
	}
}

func (m *Model) contentHeight() int {
	// Title bar and status bar each take a line.
	h := m.height - 2
	if m.showHelp {
		h -= helpPanelHeight
	}
	if h < 3 {
		h = 3
	}
	return h
}

// blameWidth is the annotation pane's width in columns.
func (m *Model) blameWidth() int {
	w := m.width * m.cfg.WidthPercent / 100
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) overlayWidth() int {
	w := m.width - 8
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) overlayHeight() int {
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}
