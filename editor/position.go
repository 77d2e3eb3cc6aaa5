package editor

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"peek/buffer"
)

// PositionData is the last view position of one file.
type PositionData struct {
	Path string `json:"path"`
	Line int    `json:"cursor_line"`
	Col  int    `json:"cursor_col"`
}

func positionDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "peek", "positions")
}

func positionPath(filePath string) string {
	hash := sha256.Sum256([]byte(filePath))
	return filepath.Join(positionDir(), fmt.Sprintf("%x.json", hash[:8]))
}

func (e *Editor) rememberPosition() bool {
	return e.cfg.RememberPosition && e.buf.Path != "" && positionDir() != ""
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// SavePosition records the cursor for the current file.
func (e *Editor) SavePosition() error {
	if !e.rememberPosition() {
		return nil
	}
	path := absPath(e.buf.Path)
	pos := PositionData{
		Path: path,
		Line: e.view.Cursor.Y,
		Col:  e.view.Cursor.X,
	}
	if err := os.MkdirAll(positionDir(), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(pos, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(positionPath(path), data, 0644)
}

// RestorePosition moves the cursor to where the file was last left. It
// reports whether a saved position was applied.
func (e *Editor) RestorePosition() bool {
	if !e.rememberPosition() {
		return false
	}
	path := absPath(e.buf.Path)
	data, err := os.ReadFile(positionPath(path))
	if err != nil {
		return false
	}
	var pos PositionData
	if err := json.Unmarshal(data, &pos); err != nil {
		return false
	}
	if pos.Path != path || pos.Line < 0 || pos.Col < 0 {
		return false
	}

	rows := e.buf.RowCount()
	if rows == 0 {
		return false
	}
	y := min(pos.Line, rows-1)
	e.view.Place(buffer.Position{X: min(pos.Col, e.buf.Line(y).Len()), Y: y}, e.buf)
	return true
}
