package buffer

// Line holds a row's raw contents and its render form, where every tab is
// expanded with spaces up to the next tab stop and every other control
// character is shown as ControlGlyph.
type Line struct {
	contents []rune
	render   []rune
	tabStop  int
}

func newLine(raw string, tabStop int) Line {
	contents := []rune(raw)
	return Line{
		contents: contents,
		render:   expandTabs(contents, tabStop),
		tabStop:  tabStop,
	}
}

// NewLine renders raw with the given tab stop.
func NewLine(raw string, tabStop int) Line {
	if tabStop <= 0 {
		tabStop = DefaultTabStop
	}
	return newLine(raw, tabStop)
}

// ControlGlyph stands in for control characters so the document can never
// move the terminal cursor or start an escape sequence.
const ControlGlyph = '?'

func isControl(r rune) bool {
	return r < 0x20 || (r >= 0x7f && r < 0xa0)
}

func expandTabs(contents []rune, tabStop int) []rune {
	render := make([]rune, 0, len(contents))
	for _, r := range contents {
		if r != '\t' {
			if isControl(r) {
				r = ControlGlyph
			}
			render = append(render, r)
			continue
		}
		render = append(render, ' ')
		for len(render)%tabStop != 0 {
			render = append(render, ' ')
		}
	}
	return render
}

func (l Line) Contents() string { return string(l.contents) }
func (l Line) Render() string   { return string(l.render) }

// Len is the logical length in characters.
func (l Line) Len() int { return len(l.contents) }

// RenderLen is the length of the render form in characters.
func (l Line) RenderLen() int { return len(l.render) }

// RenderColumn returns the render column reached after the first offset
// characters. Offsets at or past the end saturate to RenderLen.
func (l Line) RenderColumn(offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset >= len(l.contents) {
		return len(l.render)
	}
	rx := 0
	for _, r := range l.contents[:offset] {
		if r == '\t' {
			rx += (l.tabStop - 1) - (rx % l.tabStop)
		}
		rx++
	}
	return rx
}

// Slice returns at most width characters of the render form starting at
// start. Out of range starts yield an empty string.
func (l Line) Slice(start, width int) string {
	if start < 0 {
		start = 0
	}
	if width <= 0 || start >= len(l.render) {
		return ""
	}
	n := min(len(l.render)-start, width)
	return string(l.render[start : start+n])
}
