// Package terminal is the viewer's only contact with the real terminal: it
// toggles raw mode, reports the window size, reads key bytes and accepts
// frame writes.
package terminal

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"
)

var ErrNotTerminal = errors.New("not a terminal")

// CheckTerminal fails unless both stdin and stdout are terminals.
func CheckTerminal() error {
	for _, f := range []*os.File{os.Stdin, os.Stdout} {
		if !term.IsTerminal(int(f.Fd())) {
			return fmt.Errorf("%s: %w", f.Name(), ErrNotTerminal)
		}
	}
	return nil
}

// Terminal wraps a tcell.Tty. Start puts it in raw mode and Stop restores
// the previous mode; Stop is safe to call more than once.
type Terminal struct {
	tty tcell.Tty

	mu      sync.Mutex
	started bool
}

// Open uses the controlling terminal (/dev/tty).
func Open() (*Terminal, error) {
	tty, err := tcell.NewDevTty()
	if err != nil {
		return nil, fmt.Errorf("open tty: %w", err)
	}
	return New(tty), nil
}

// OpenDevice uses the terminal device at path.
func OpenDevice(path string) (*Terminal, error) {
	tty, err := tcell.NewDevTtyFromDev(path)
	if err != nil {
		return nil, fmt.Errorf("open tty %s: %w", path, err)
	}
	return New(tty), nil
}

func New(tty tcell.Tty) *Terminal {
	return &Terminal{tty: tty}
}

// Start enables raw mode.
func (t *Terminal) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started {
		return nil
	}
	if err := t.tty.Start(); err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	t.started = true
	return nil
}

// Stop unblocks pending reads and restores the terminal mode.
func (t *Terminal) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.started {
		return nil
	}
	t.started = false
	_ = t.tty.Drain()
	if err := t.tty.Stop(); err != nil {
		return fmt.Errorf("restore terminal: %w", err)
	}
	return nil
}

// Size returns the window size in cells.
func (t *Terminal) Size() (cols, rows int, err error) {
	ws, err := t.tty.WindowSize()
	if err != nil {
		return 0, 0, fmt.Errorf("terminal size: %w", err)
	}
	if ws.Width <= 0 || ws.Height <= 0 {
		return 0, 0, fmt.Errorf("terminal size: invalid %dx%d", ws.Width, ws.Height)
	}
	return ws.Width, ws.Height, nil
}

// NotifyResize registers cb to run, on an unspecified goroutine, whenever
// the window size changes.
func (t *Terminal) NotifyResize(cb func()) {
	t.tty.NotifyResize(cb)
}

func (t *Terminal) Read(p []byte) (int, error) {
	return t.tty.Read(p)
}

func (t *Terminal) Write(p []byte) (int, error) {
	return t.tty.Write(p)
}

func (t *Terminal) Close() error {
	if err := t.Stop(); err != nil {
		return err
	}
	return t.tty.Close()
}
