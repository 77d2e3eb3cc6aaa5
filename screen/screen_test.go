package screen

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"testing"
)

type countingWriter struct {
	writes [][]byte
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes = append(w.writes, append([]byte(nil), p...))
	return len(p), nil
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("tty gone") }

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) { return len(p) / 2, nil }

func TestFlushWritesOnce(t *testing.T) {
	sink := &countingWriter{}
	b := NewBuffer(sink)
	b.WriteString(HideCursor)
	b.WriteString("hello")
	b.WriteByte('!')
	b.Write([]byte(ShowCursor))

	if err := b.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}
	if len(sink.writes) != 1 {
		t.Fatalf("expected one write, got %d", len(sink.writes))
	}
	if got := string(sink.writes[0]); got != HideCursor+"hello!"+ShowCursor {
		t.Fatalf("unexpected frame %q", got)
	}
	if b.Len() != 0 {
		t.Fatalf("expected drained buffer, got %d bytes", b.Len())
	}
}

func TestFlushEmptyIsNoop(t *testing.T) {
	sink := &countingWriter{}
	b := NewBuffer(sink)
	for i := 0; i < 3; i++ {
		if err := b.Flush(); err != nil {
			t.Fatalf("flush failed: %v", err)
		}
	}
	if len(sink.writes) != 0 {
		t.Fatalf("expected no writes, got %d", len(sink.writes))
	}
}

func TestFlushPropagatesWriteErrors(t *testing.T) {
	b := NewBuffer(failingWriter{})
	b.WriteString("x")
	if err := b.Flush(); err == nil {
		t.Fatalf("expected write error")
	}

	b = NewBuffer(shortWriter{})
	b.WriteString("abcd")
	if err := b.Flush(); !errors.Is(err, io.ErrShortWrite) {
		t.Fatalf("expected short write error, got %v", err)
	}
}

func TestFlushCallsSinkFlush(t *testing.T) {
	var out bytes.Buffer
	w := bufio.NewWriterSize(&out, 4096)
	b := NewBuffer(w)
	b.WriteString("frame")
	if err := b.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}
	if out.String() != "frame" {
		t.Fatalf("expected buffered sink to be flushed, got %q", out.String())
	}
}

func TestMoveToIsOneBased(t *testing.T) {
	if got := MoveTo(0, 0); got != "\x1b[1;1H" {
		t.Fatalf("unexpected sequence %q", got)
	}
	if got := MoveTo(4, 2); got != "\x1b[3;5H" {
		t.Fatalf("unexpected sequence %q", got)
	}
}
