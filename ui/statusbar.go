package ui

import (
	"fmt"
	"strconv"
	"strings"

	"peek/config"
	"peek/screen"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Style is the attribute set of a span. Only attributes that are set get
// emitted, and leaving a span restores exactly those, so an enclosing
// reverse-video run stays intact.
type Style struct {
	Fg   tcell.Color
	Bold bool
}

func (s Style) enter() string {
	var codes []string
	if s.Bold {
		codes = append(codes, "1")
	}
	if s.Fg.Valid() {
		r, g, b := s.Fg.RGB()
		codes = append(codes, fmt.Sprintf("38;2;%d;%d;%d", r, g, b))
	}
	if len(codes) == 0 {
		return ""
	}
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

func (s Style) exit() string {
	var codes []string
	if s.Bold {
		codes = append(codes, "22")
	}
	if s.Fg.Valid() {
		codes = append(codes, "39")
	}
	if len(codes) == 0 {
		return ""
	}
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

// Span is a run of text sharing one style.
type Span struct {
	Text  string
	Style Style
}

// Width is the number of terminal cells the span occupies; style bytes do
// not count.
func (s Span) Width() int {
	return runewidth.StringWidth(s.Text)
}

func (s Span) encode() string {
	if s.Text == "" {
		return ""
	}
	return s.Style.enter() + s.Text + s.Style.exit()
}

// SegmentWidth sums the visible width of spans.
func SegmentWidth(spans []Span) int {
	w := 0
	for _, s := range spans {
		w += s.Width()
	}
	return w
}

// Compose lays out left and right segments on one reverse-video line of
// exactly width visible cells. Padding never goes negative: when both
// segments do not fit, the right one is dropped and the left one truncated.
func Compose(width int, left, right []Span) string {
	if width <= 0 {
		return ""
	}
	lw, rw := SegmentWidth(left), SegmentWidth(right)
	if lw+rw > width {
		right, rw = nil, 0
		left = truncate(left, width)
		lw = SegmentWidth(left)
	}
	padding := max(width-lw-rw, 0)

	var sb strings.Builder
	sb.WriteString(screen.Reverse)
	for _, s := range left {
		sb.WriteString(s.encode())
	}
	sb.WriteString(strings.Repeat(" ", padding))
	for _, s := range right {
		sb.WriteString(s.encode())
	}
	sb.WriteString(screen.Reset)
	return sb.String()
}

func truncate(spans []Span, width int) []Span {
	out := make([]Span, 0, len(spans))
	remaining := width
	for _, s := range spans {
		if remaining <= 0 {
			break
		}
		if w := s.Width(); w > remaining {
			s.Text = runewidth.Truncate(s.Text, remaining, "")
		}
		remaining -= s.Width()
		out = append(out, s)
	}
	return out
}

// StatusBar holds the summary fields shown on the status line.
type StatusBar struct {
	Mode       string // single-letter mode glyph
	Filename   string
	Chars      int
	Language   string
	Encoding   string
	LineEnding string
	Message    string // transient message, replaces the right segment
	Theme      *config.ColorScheme
}

func NewStatusBar() *StatusBar {
	return &StatusBar{
		Mode:       "N",
		Encoding:   "UTF-8",
		LineEnding: "LF",
	}
}

// Left returns the mode, character count and file name spans.
func (s *StatusBar) Left() []Span {
	theme := s.theme()
	fname := s.Filename
	if fname == "" {
		fname = "[No Name]"
	}
	return []Span{
		{Text: " " + s.Mode + " ", Style: Style{Fg: theme.StatusBarModeFg, Bold: true}},
		{Text: strconv.Itoa(s.Chars) + " chars ", Style: Style{Fg: theme.StatusBarFg}},
		{Text: fname + " ", Style: Style{Fg: theme.StatusBarNameFg}},
	}
}

// Right returns the informational tags, or the transient message.
func (s *StatusBar) Right() []Span {
	theme := s.theme()
	if s.Message != "" {
		return []Span{{Text: " " + s.Message + " ", Style: Style{Fg: theme.StatusBarMessageFg}}}
	}
	var tags []string
	if s.Language != "" {
		tags = append(tags, s.Language)
	}
	if s.Encoding != "" {
		tags = append(tags, s.Encoding)
	}
	if s.LineEnding != "" {
		tags = append(tags, s.LineEnding)
	}
	if len(tags) == 0 {
		return nil
	}
	return []Span{{Text: " " + strings.Join(tags, " | ") + " ", Style: Style{Fg: theme.StatusBarTagFg}}}
}

// Render composes the full status line for the given width.
func (s *StatusBar) Render(width int) string {
	return Compose(width, s.Left(), s.Right())
}

func (s *StatusBar) theme() *config.ColorScheme {
	if s.Theme == nil {
		return config.Themes["plain"]
	}
	return s.Theme
}
