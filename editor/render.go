package editor

import (
	"strings"

	"peek/schedule"
	"peek/screen"

	"github.com/mattn/go-runewidth"
)

const placeholder = "~"

// Frame step names. Steps are registered in no particular order; the
// constraints alone decide the run order.
const (
	stepHideCursor     = "hide_cursor"
	stepClearScreen    = "clear_screen"
	stepDrawRows       = "draw_rows"
	stepComposeStatus  = "compose_status"
	stepDrawStatusLine = "draw_status_line"
	stepShowCursor     = "show_cursor"
	stepEmitPending    = "emit_pending"
	stepFlush          = "flush"
)

func newFrameSchedule() *schedule.Schedule[*Editor] {
	s := schedule.New[*Editor]()
	steps := []schedule.Step[*Editor]{
		{Name: stepFlush, After: []string{stepShowCursor, stepEmitPending}, Run: (*Editor).flush},
		{Name: stepDrawStatusLine, After: []string{stepDrawRows, stepComposeStatus}, Before: []string{stepShowCursor}, Run: (*Editor).drawStatusLine},
		{Name: stepClearScreen, After: []string{stepHideCursor}, Before: []string{stepDrawRows}, Run: (*Editor).clearScreen},
		{Name: stepEmitPending, After: []string{stepShowCursor}, Run: (*Editor).emitPending},
		{Name: stepDrawRows, Run: (*Editor).drawRows},
		{Name: stepComposeStatus, After: []string{stepDrawRows}, Before: []string{stepDrawStatusLine}, Run: (*Editor).composeStatus},
		{Name: stepShowCursor, Run: (*Editor).showCursor},
		{Name: stepHideCursor, Run: (*Editor).hideCursor},
	}
	for _, st := range steps {
		if err := s.Add(st); err != nil {
			panic(err)
		}
	}
	if err := s.Build(); err != nil {
		panic(err)
	}
	return s
}

func (e *Editor) hideCursor() error {
	e.screen.WriteString(screen.HideCursor)
	e.screen.WriteString(screen.CursorHome)
	return nil
}

func (e *Editor) clearScreen() error {
	e.screen.WriteString(screen.ClearScreen)
	return nil
}

// drawRows writes exactly Rows lines. The last one has no line break so
// the terminal never scrolls; the status line supplies its own.
func (e *Editor) drawRows() error {
	vp, off := e.view.Viewport, e.view.Offset
	rows := e.buf.RowCount()
	for r := 0; r < vp.Rows; r++ {
		fileRow := r + off.Row
		if fileRow >= rows {
			if rows == 0 && r == vp.Rows/3 {
				e.screen.WriteString(welcomeRow(e.cfg.Welcome, vp.Columns))
			} else {
				e.screen.WriteString(placeholder)
			}
		} else {
			// Render columns count runes; wide runes take two cells.
			slice := e.buf.RenderSlice(fileRow, off.Column, vp.Columns)
			e.screen.WriteString(runewidth.Truncate(slice, vp.Columns, ""))
		}
		e.screen.WriteString(screen.ClearLine)
		if r < vp.Rows-1 {
			e.screen.WriteString(screen.Newline)
		}
	}
	return nil
}

// welcomeRow centers label in width cells, keeping the placeholder in the
// first column.
func welcomeRow(label string, width int) string {
	label = runewidth.Truncate(label, width, "")
	padding := (width - runewidth.StringWidth(label)) / 2
	var sb strings.Builder
	if padding > 0 {
		sb.WriteString(placeholder)
		padding--
	}
	sb.WriteString(strings.Repeat(" ", padding))
	sb.WriteString(label)
	return sb.String()
}

func (e *Editor) composeStatus() error {
	st := e.status
	st.Mode = e.mode.Glyph()
	st.Filename = e.buf.Name
	st.Chars = e.buf.CharCount()
	st.Encoding = e.buf.Encoding
	st.LineEnding = e.buf.LineEnding
	st.Language = ""
	if e.cfg.ShowLanguage {
		st.Language = e.buf.Language
	}
	st.Theme = e.theme
	e.statusLine = st.Render(e.view.Viewport.Columns)
	return nil
}

func (e *Editor) drawStatusLine() error {
	if e.view.Viewport.Rows > 0 {
		e.screen.WriteString(screen.Newline)
	}
	e.screen.WriteString(e.statusLine)
	e.screen.WriteString(screen.ClearLine)
	return nil
}

func (e *Editor) showCursor() error {
	col, row := e.view.ScreenCursor(e.buf)
	e.screen.WriteString(screen.MoveTo(col, row))
	e.screen.WriteString(screen.ShowCursor)
	return nil
}

// emitPending appends one-shot sequences such as an OSC 52 clipboard
// request. They are consumed so the next frame does not repeat them.
func (e *Editor) emitPending() error {
	if len(e.pending) == 0 {
		return nil
	}
	e.screen.Write(e.pending)
	e.pending = e.pending[:0]
	return nil
}

func (e *Editor) flush() error {
	return e.screen.Flush()
}
