// Package screen stages a frame of terminal output and writes it to the
// terminal in a single call.
package screen

import (
	"bytes"
	"fmt"
	"io"
)

// Escape sequences understood by VT100 compatible terminals.
const (
	HideCursor  = "\x1b[?25l"
	ShowCursor  = "\x1b[?25h"
	CursorHome  = "\x1b[H"
	ClearScreen = "\x1b[2J"
	ClearLine   = "\x1b[K"
	Reverse     = "\x1b[7m"
	Reset       = "\x1b[0m"
	Newline     = "\r\n"
)

// MoveTo positions the cursor at the zero-based column and row.
func MoveTo(col, row int) string {
	return fmt.Sprintf("\x1b[%d;%dH", row+1, col+1)
}

type flusher interface {
	Flush() error
}

// Buffer accumulates the pending frame. Flush is the only method that
// touches the sink.
type Buffer struct {
	sink io.Writer
	buf  bytes.Buffer
}

func NewBuffer(sink io.Writer) *Buffer {
	return &Buffer{sink: sink}
}

func (b *Buffer) Write(p []byte) (int, error) {
	return b.buf.Write(p)
}

func (b *Buffer) WriteString(s string) (int, error) {
	return b.buf.WriteString(s)
}

func (b *Buffer) WriteByte(c byte) error {
	return b.buf.WriteByte(c)
}

// Bytes returns the pending frame without draining it.
func (b *Buffer) Bytes() []byte {
	return b.buf.Bytes()
}

func (b *Buffer) Len() int {
	return b.buf.Len()
}

// Reset discards the pending frame.
func (b *Buffer) Reset() {
	b.buf.Reset()
}

// Flush writes the pending frame to the sink in one write and drains the
// buffer. Flushing an empty buffer does nothing.
func (b *Buffer) Flush() error {
	if b.buf.Len() == 0 {
		return nil
	}
	defer b.buf.Reset()

	n, err := b.sink.Write(b.buf.Bytes())
	if err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	if n != b.buf.Len() {
		return fmt.Errorf("write frame: %w", io.ErrShortWrite)
	}
	if f, ok := b.sink.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flush frame: %w", err)
		}
	}
	return nil
}
