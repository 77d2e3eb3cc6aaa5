package editor

import (
	"context"
	"errors"
	"fmt"
	"io"

	"peek/buffer"
	"peek/clipboardx"
	"peek/config"
	"peek/schedule"
	"peek/screen"
	"peek/ui"
	"peek/view"

	"pkt.systems/pslog"
)

// Terminal is what the editor needs from the real terminal.
type Terminal interface {
	io.ReadWriter
	Start() error
	Stop() error
	Size() (cols, rows int, err error)
	NotifyResize(cb func())
}

// Mode is the input mode shown on the status line. The viewer is read-only,
// so Normal is the only mode.
type Mode int

const ModeNormal Mode = iota

func (m Mode) Glyph() string {
	switch m {
	case ModeNormal:
		return "N"
	default:
		return "?"
	}
}

// Editor owns all per-session state. Every tick runs on one goroutine:
// handle one event, then run the frame schedule to completion.
type Editor struct {
	cfg    *config.Config
	theme  *config.ColorScheme
	buf    *buffer.Buffer
	view   *view.Engine
	screen *screen.Buffer
	status *ui.StatusBar
	mode   Mode

	frame      *schedule.Schedule[*Editor]
	statusLine string
	pending    []byte // control sequences emitted with the next frame
	quit       bool

	log       pslog.Logger
	clipboard func(text string, term io.Writer) clipboardx.Backend
}

// New builds an editor over buf. Output goes to sink; the viewport is set
// from the terminal size by Run or explicitly with SetTerminalSize.
func New(cfg *config.Config, buf *buffer.Buffer, sink io.Writer) *Editor {
	if cfg == nil {
		cfg = config.Default()
	}
	e := &Editor{
		cfg:       cfg,
		theme:     cfg.GetTheme(),
		buf:       buf,
		view:      view.NewEngine(view.Viewport{}),
		screen:    screen.NewBuffer(sink),
		status:    ui.NewStatusBar(),
		mode:      ModeNormal,
		log:       pslog.NewWithOptions(io.Discard, pslog.Options{Mode: pslog.ModeStructured, NoColor: true}),
		clipboard: clipboardx.Write,
	}
	e.frame = newFrameSchedule()
	return e
}

// SetTerminalSize derives the viewport from the terminal's cell grid. The
// last terminal row holds the status line.
func (e *Editor) SetTerminalSize(cols, rows int) {
	e.view.Resize(view.NewViewport(cols, rows-1), e.buf)
}

func (e *Editor) Viewport() view.Viewport { return e.view.Viewport }
func (e *Editor) Cursor() buffer.Position { return e.view.Cursor }
func (e *Editor) Offset() view.Offset     { return e.view.Offset }

// Run takes over the terminal until the user quits, ctx is cancelled, or a
// write fails. The terminal mode is restored on every exit path, including
// panics.
func (e *Editor) Run(ctx context.Context, term Terminal) (err error) {
	e.log = pslog.Ctx(ctx).With("file", e.buf.Name)
	e.screen = screen.NewBuffer(term)

	if err := term.Start(); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			_ = term.Stop()
			panic(r)
		}
		if err != nil {
			e.log.Error("viewer stopped", "err", err)
		}
		if perr := e.SavePosition(); perr != nil {
			e.log.Warn("save position failed", "err", perr)
		}
		e.restoreScreen()
		if stopErr := term.Stop(); stopErr != nil && err == nil {
			err = stopErr
		}
	}()

	cols, rows, err := term.Size()
	if err != nil {
		return err
	}
	e.SetTerminalSize(cols, rows)
	if e.RestorePosition() {
		e.log.Debug("position restored", "line", e.view.Cursor.Y+1)
	}
	e.log.Info("viewer started", "cols", cols, "rows", rows, "lines", e.buf.RowCount())

	done := make(chan struct{})
	defer close(done)
	events := make(chan event, 16)

	go readKeys(term, events, done)
	term.NotifyResize(func() {
		select {
		case events <- resizeEvent{}:
		default:
		}
	})
	if e.cfg.Path != "" {
		stop, werr := watchConfig(e.cfg.Path, events, done, e.log)
		if werr != nil {
			e.log.Warn("config watch disabled", "path", e.cfg.Path, "err", werr)
		} else {
			defer stop()
		}
	}

	if err := e.Render(); err != nil {
		return err
	}
	for !e.quit {
		select {
		case <-ctx.Done():
			e.log.Info("viewer cancelled", "cause", context.Cause(ctx))
			return nil
		case ev := <-events:
			if err := e.handle(ev, term); err != nil {
				return err
			}
			if err := e.Render(); err != nil {
				return err
			}
		}
	}
	e.log.Info("viewer quit")
	return nil
}

func (e *Editor) handle(ev event, term Terminal) error {
	switch ev := ev.(type) {
	case keyEvent:
		e.HandleKey(ev.key)
	case resizeEvent:
		cols, rows, err := term.Size()
		if err != nil {
			return err
		}
		e.SetTerminalSize(cols, rows)
		e.log.Debug("terminal resized", "cols", cols, "rows", rows)
	case configEvent:
		e.ApplyConfig(ev.cfg)
	case readErrorEvent:
		if errors.Is(ev.err, io.EOF) {
			e.quit = true
			return nil
		}
		return fmt.Errorf("read input: %w", ev.err)
	}
	return nil
}

// ApplyConfig swaps in a reloaded configuration. The document keeps the
// tab stop it was rendered with.
func (e *Editor) ApplyConfig(cfg *config.Config) {
	cfg.Path = e.cfg.Path
	e.cfg = cfg
	e.theme = cfg.GetTheme()
	e.log.Info("config reloaded", "theme", cfg.Theme)
}

// Render assembles one frame and flushes it.
func (e *Editor) Render() error {
	return e.frame.Run(e)
}

func (e *Editor) restoreScreen() {
	e.screen.Reset()
	e.screen.WriteString(screen.ClearScreen)
	e.screen.WriteString(screen.CursorHome)
	e.screen.WriteString(screen.ShowCursor)
	_ = e.screen.Flush()
}
