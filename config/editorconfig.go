package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// EditorConfigSettings is the subset of .editorconfig properties that
// affect how a file is displayed.
type EditorConfigSettings struct {
	IndentStyle string // "tab" or "space"
	IndentSize  int    // 0 means unset
	TabWidth    int    // 0 means unset
}

// TabStop returns tab_width, falling back to indent_size for tab-indented
// files, or 0 when neither applies.
func (s *EditorConfigSettings) TabStop() int {
	if s.TabWidth > 0 {
		return s.TabWidth
	}
	if s.IndentStyle == "tab" && s.IndentSize > 0 {
		return s.IndentSize
	}
	return 0
}

// FindEditorConfig walks from the file's directory upward until a root
// .editorconfig, merging matching sections with closer files winning.
// Returns nil when nothing applies.
func FindEditorConfig(filePath string) *EditorConfigSettings {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil
	}
	fileName := filepath.Base(absPath)

	merged := make(map[string]string)
	for dir := filepath.Dir(absPath); ; {
		props, isRoot := parseEditorConfig(filepath.Join(dir, ".editorconfig"), fileName)
		for k, v := range props {
			if _, seen := merged[k]; !seen {
				merged[k] = v
			}
		}
		parent := filepath.Dir(dir)
		if isRoot || parent == dir {
			break
		}
		dir = parent
	}
	return settingsFromMap(merged)
}

// parseEditorConfig returns the properties of sections matching fileName
// and whether the file declares root = true.
func parseEditorConfig(path, fileName string) (map[string]string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	props := make(map[string]string)
	isRoot := false
	matching := false
	preamble := true

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}
		if line[0] == '[' && line[len(line)-1] == ']' {
			preamble = false
			matching = matchPattern(line[1:len(line)-1], fileName)
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.ToLower(strings.TrimSpace(value))
		switch {
		case preamble && key == "root":
			isRoot = value == "true"
		case matching:
			props[key] = value
		}
	}
	return props, isRoot
}

// matchPattern matches fileName against a glob with one level of
// {a,b,c} alternation.
func matchPattern(pattern, fileName string) bool {
	for _, p := range expandBraces(pattern) {
		if ok, _ := filepath.Match(p, fileName); ok {
			return true
		}
	}
	return false
}

func expandBraces(pattern string) []string {
	open := strings.IndexByte(pattern, '{')
	if open < 0 {
		return []string{pattern}
	}
	closing := strings.IndexByte(pattern[open:], '}')
	if closing < 0 {
		return []string{pattern}
	}
	closing += open

	var out []string
	for _, alt := range strings.Split(pattern[open+1:closing], ",") {
		out = append(out, expandBraces(pattern[:open]+alt+pattern[closing+1:])...)
	}
	return out
}

func settingsFromMap(m map[string]string) *EditorConfigSettings {
	s := &EditorConfigSettings{IndentStyle: m["indent_style"]}
	if n, err := strconv.Atoi(m["indent_size"]); err == nil && n > 0 {
		s.IndentSize = n
	}
	if n, err := strconv.Atoi(m["tab_width"]); err == nil && n > 0 {
		s.TabWidth = n
	}
	if s.IndentStyle == "" && s.IndentSize == 0 && s.TabWidth == 0 {
		return nil
	}
	return s
}
