package tui

import "github.com/cj3636/gblame/internal/event"

// Buffer is an in-memory content handle with an identity the event bus can
// scope subscriptions to.
type Buffer struct {
	ID       event.BufferID
	Name     string
	Lines    []string
	ReadOnly bool
}

// SetLines replaces the buffer's entire content, ignoring the read-only
// flag: the flag protects content from the user, not from the renderer.
func (b *Buffer) SetLines(lines []string) {
	b.Lines = lines
}

// LineCount returns the number of lines in the buffer.
func (b *Buffer) LineCount() int {
	return len(b.Lines)
}

// Line returns the text of line i, or the empty string when out of range.
func (b *Buffer) Line(i int) string {
	if i < 0 || i >= len(b.Lines) {
		return ""
	}
	return b.Lines[i]
}

// Pane shows a buffer with a cursor line and a scroll window.
type Pane struct {
	Buf    *Buffer
	Cursor int
	Offset int // first visible line
	Height int // visible line count
}

// SetCursor moves the cursor to line, clamped to the buffer, and scrolls
// the window so it stays visible. It reports whether the cursor changed.
func (p *Pane) SetCursor(line int) bool {
	if max := p.Buf.LineCount() - 1; line > max {
		line = max
	}
	if line < 0 {
		line = 0
	}
	changed := line != p.Cursor
	p.Cursor = line
	p.scrollIntoView()
	return changed
}

// MoveCursor shifts the cursor by delta lines.
func (p *Pane) MoveCursor(delta int) bool {
	return p.SetCursor(p.Cursor + delta)
}

// HalfPage returns the pane's half-page scroll distance.
func (p *Pane) HalfPage() int {
	half := p.Height / 2
	if half < 1 {
		half = 1
	}
	return half
}

func (p *Pane) scrollIntoView() {
	if p.Height <= 0 {
		p.Offset = 0
		return
	}
	if p.Cursor < p.Offset {
		p.Offset = p.Cursor
	}
	if p.Cursor >= p.Offset+p.Height {
		p.Offset = p.Cursor - p.Height + 1
	}
	if maxOffset := p.Buf.LineCount() - p.Height; p.Offset > maxOffset {
		p.Offset = maxOffset
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}
