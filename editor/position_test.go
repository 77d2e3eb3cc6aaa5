package editor

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"peek/buffer"
	"peek/input"
)

func newFileEditor(t *testing.T, path string) *Editor {
	t.Helper()
	buf, err := buffer.NewFromFile(path, 4)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	cfg := testConfig()
	cfg.RememberPosition = true
	e := New(cfg, buf, io.Discard)
	e.SetTerminalSize(40, 10)
	return e
}

func TestPositionRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	doc := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(doc, []byte("one\ntwo\nthree\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	e := newFileEditor(t, doc)
	for _, r := range "jjll" {
		e.HandleKey(input.RuneKey(r))
	}
	if err := e.SavePosition(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	e = newFileEditor(t, doc)
	if !e.RestorePosition() {
		t.Fatalf("expected position restored")
	}
	if got := e.Cursor(); got != (buffer.Position{X: 2, Y: 2}) {
		t.Fatalf("unexpected cursor %+v", got)
	}
}

func TestRestorePositionClampsToShorterFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	doc := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(doc, []byte("one\ntwo\nthree\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	e := newFileEditor(t, doc)
	for _, r := range "jjllll" {
		e.HandleKey(input.RuneKey(r))
	}
	if err := e.SavePosition(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := os.WriteFile(doc, []byte("ab\n"), 0o644); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}
	e = newFileEditor(t, doc)
	if !e.RestorePosition() {
		t.Fatalf("expected position restored")
	}
	if got := e.Cursor(); got != (buffer.Position{X: 2, Y: 0}) {
		t.Fatalf("unexpected cursor %+v", got)
	}
}

func TestRestorePositionIgnoresCorruptFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	doc := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(doc, []byte("one\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	abs, _ := filepath.Abs(doc)
	path := positionPath(abs)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	e := newFileEditor(t, doc)
	if e.RestorePosition() {
		t.Fatalf("corrupt position file should be ignored")
	}
	if got := e.Cursor(); got != (buffer.Position{}) {
		t.Fatalf("cursor moved: %+v", got)
	}
}

func TestPositionDisabled(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	doc := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(doc, []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	e := newFileEditor(t, doc)
	e.cfg.RememberPosition = false
	e.HandleKey(input.RuneKey('j'))
	if err := e.SavePosition(); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".local", "share", "peek", "positions")); !os.IsNotExist(err) {
		t.Fatalf("expected no position directory, stat err=%v", err)
	}
}

func TestRestorePositionKeepsCursorBounds(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	doc := filepath.Join(t.TempDir(), "doc.txt")
	line := strings.Repeat("x", 60) + "\n"
	if err := os.WriteFile(doc, []byte(strings.Repeat(line, 100)), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	abs, _ := filepath.Abs(doc)
	data, _ := json.Marshal(PositionData{Path: abs, Line: 50, Col: 30})
	path := positionPath(abs)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	e := newFileEditor(t, doc)
	if !e.RestorePosition() {
		t.Fatalf("expected position restored")
	}
	vp := e.Viewport()
	// Right stops at the viewport rows, Down at the viewport columns.
	if got := e.Cursor(); got != (buffer.Position{X: vp.Rows, Y: vp.Columns}) {
		t.Fatalf("expected cursor clamped to (%d,%d), got %+v", vp.Rows, vp.Columns, got)
	}
	off := e.Offset()
	if off.Row > e.Cursor().Y || e.Cursor().Y >= off.Row+vp.Rows {
		t.Fatalf("row offset %d does not contain cursor %+v", off.Row, e.Cursor())
	}

	before := e.Cursor().Y
	e.HandleKey(input.RuneKey('j'))
	if e.Cursor().Y < before {
		t.Fatalf("moving down went from row %d to %d", before, e.Cursor().Y)
	}
}
