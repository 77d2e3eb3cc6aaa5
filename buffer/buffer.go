package buffer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// DefaultTabStop is the render width of a tab stop.
const DefaultTabStop = 4

const maxFileSize = 100 * 1024 * 1024

// Buffer is a read-only document. Lines are rendered eagerly at load time
// and never change for the lifetime of the buffer.
type Buffer struct {
	Name       string
	Path       string
	Encoding   string // "UTF-8", "UTF-8 BOM", "Latin-1", ...
	LineEnding string // "LF" or "CRLF"
	Language   string
	TabStop    int

	lines []Line
}

// New builds a buffer from raw text. An empty text yields a buffer with no
// rows, and a trailing newline does not produce an extra empty row. A
// leading byte order mark is reported in Encoding and dropped from the text.
func New(name, text string, tabStop int) *Buffer {
	if tabStop <= 0 {
		tabStop = DefaultTabStop
	}
	lineEnding := "LF"
	if strings.Contains(text, "\r\n") {
		lineEnding = "CRLF"
	}
	b := &Buffer{
		Name:       name,
		Encoding:   detectEncoding([]byte(text)),
		LineEnding: lineEnding,
		TabStop:    tabStop,
	}
	text = strings.TrimPrefix(text, "\uFEFF")
	for _, raw := range splitLines(text) {
		b.lines = append(b.lines, newLine(raw, tabStop))
	}
	return b
}

// NewFromFile reads the document at path once.
func NewFromFile(path string, tabStop int) (*Buffer, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("file too large (%d MB), max supported is 100 MB", info.Size()/(1024*1024))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	b := New(filepath.Base(path), string(data), tabStop)
	b.Path = path
	b.Encoding = detectEncoding(data)
	return b, nil
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// RowCount returns the number of lines.
func (b *Buffer) RowCount() int {
	return len(b.lines)
}

// Line returns the line at row i. Callers must keep i inside [0, RowCount).
func (b *Buffer) Line(i int) Line {
	return b.lines[i]
}

func (b *Buffer) Contents(i int) string {
	return string(b.lines[i].contents)
}

func (b *Buffer) Render(i int) string {
	return string(b.lines[i].render)
}

// CharCount returns the total number of characters across all lines,
// counted on the raw contents.
func (b *Buffer) CharCount() int {
	n := 0
	for _, l := range b.lines {
		n += len(l.contents)
	}
	return n
}

// RenderColumn maps a logical offset on row i to its render column. Rows
// outside the buffer map to 0.
func (b *Buffer) RenderColumn(i, offset int) int {
	if i < 0 || i >= len(b.lines) {
		return 0
	}
	return b.lines[i].RenderColumn(offset)
}

// RenderSlice returns up to width characters of row i's render form
// starting at start.
func (b *Buffer) RenderSlice(i, start, width int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return b.lines[i].Slice(start, width)
}

// detectEncoding names the encoding from a byte order mark, falling back to
// UTF-8 validation.
func detectEncoding(data []byte) string {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return "UTF-8 BOM"
	}
	if len(data) >= 2 {
		if data[0] == 0xFF && data[1] == 0xFE {
			return "UTF-16 LE"
		}
		if data[0] == 0xFE && data[1] == 0xFF {
			return "UTF-16 BE"
		}
	}
	if utf8.Valid(data) {
		return "UTF-8"
	}
	return "Latin-1"
}
