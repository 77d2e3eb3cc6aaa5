package editor

import (
	"bytes"
	"fmt"
	"io"

	"peek/clipboardx"
	"peek/config"
	"peek/input"
	"peek/view"

	"github.com/gdamore/tcell/v2"
)

type event interface{ isEvent() }

type keyEvent struct{ key input.Key }
type resizeEvent struct{}
type configEvent struct{ cfg *config.Config }
type readErrorEvent struct{ err error }

func (keyEvent) isEvent()       {}
func (resizeEvent) isEvent()    {}
func (configEvent) isEvent()    {}
func (readErrorEvent) isEvent() {}

// readKeys blocks on the terminal and forwards decoded keys until done is
// closed or a read fails.
func readKeys(r io.Reader, events chan<- event, done <-chan struct{}) {
	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		for _, k := range input.Decode(buf[:n]) {
			select {
			case events <- keyEvent{key: k}:
			case <-done:
				return
			}
		}
		if err != nil {
			select {
			case events <- readErrorEvent{err: err}:
			case <-done:
			}
			return
		}
	}
}

var moves = map[rune]view.Direction{
	'h': view.Left,
	'j': view.Down,
	'k': view.Up,
	'l': view.Right,
}

var arrows = map[tcell.Key]view.Direction{
	tcell.KeyLeft:  view.Left,
	tcell.KeyDown:  view.Down,
	tcell.KeyUp:    view.Up,
	tcell.KeyRight: view.Right,
}

// HandleKey applies one key press. Keys without a binding are ignored.
func (e *Editor) HandleKey(k input.Key) {
	e.status.Message = ""

	switch k.Code {
	case tcell.KeyCtrlQ:
		e.quit = true
		return
	case tcell.KeyRune:
		if d, ok := moves[k.Rune]; ok {
			e.view.Move(d, e.buf)
			return
		}
		if k.Rune == 'y' {
			e.yankLine()
		}
		return
	}
	if d, ok := arrows[k.Code]; ok {
		e.view.Move(d, e.buf)
	}
}

// Quit reports whether the user asked to leave.
func (e *Editor) Quit() bool { return e.quit }

// yankLine copies the cursor's line. An OSC 52 fallback is queued and goes
// out with the next frame.
func (e *Editor) yankLine() {
	y := e.view.Cursor.Y
	if y >= e.buf.RowCount() {
		e.status.Message = "Nothing to yank"
		return
	}
	var osc bytes.Buffer
	backend := e.clipboard(e.buf.Contents(y), &osc)
	e.pending = append(e.pending, osc.Bytes()...)

	switch backend {
	case clipboardx.BackendNone:
		e.status.Message = "Clipboard unavailable"
		e.log.Warn("yank failed", "line", y+1)
	default:
		e.status.Message = fmt.Sprintf("Yanked line %d", y+1)
		e.log.Info("line yanked", "line", y+1, "backend", string(backend))
	}
}
