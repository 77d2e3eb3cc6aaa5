// Package input turns raw bytes read from a terminal in raw mode into key
// events.
package input

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Key is one decoded key press. Rune is set when Code is tcell.KeyRune.
type Key struct {
	Code tcell.Key
	Rune rune
}

func RuneKey(r rune) Key { return Key{Code: tcell.KeyRune, Rune: r} }

func (k Key) String() string {
	if k.Code == tcell.KeyRune {
		return string(k.Rune)
	}
	if name, ok := tcell.KeyNames[k.Code]; ok {
		return name
	}
	return "unknown"
}

const esc = 0x1b

var csiFinal = map[byte]tcell.Key{
	'A': tcell.KeyUp,
	'B': tcell.KeyDown,
	'C': tcell.KeyRight,
	'D': tcell.KeyLeft,
	'H': tcell.KeyHome,
	'F': tcell.KeyEnd,
}

var csiTilde = map[string]tcell.Key{
	"1": tcell.KeyHome,
	"3": tcell.KeyDelete,
	"4": tcell.KeyEnd,
	"5": tcell.KeyPgUp,
	"6": tcell.KeyPgDn,
	"7": tcell.KeyHome,
	"8": tcell.KeyEnd,
}

// Decode splits one read from the terminal into keys. Terminals deliver an
// escape sequence in a single write, so a sequence is never split across
// reads; a lone ESC at the end of p is reported as tcell.KeyEscape.
func Decode(p []byte) []Key {
	var keys []Key
	for len(p) > 0 {
		k, n := decodeOne(p)
		keys = append(keys, k)
		p = p[n:]
	}
	return keys
}

func decodeOne(p []byte) (Key, int) {
	b := p[0]
	switch {
	case b == esc:
		return decodeEscape(p)
	case b == '\r' || b == '\n':
		return Key{Code: tcell.KeyEnter}, 1
	case b == '\t':
		return Key{Code: tcell.KeyTab}, 1
	case b == 0x7f:
		return Key{Code: tcell.KeyBackspace2}, 1
	case b < 0x20:
		return Key{Code: tcell.KeyCtrlSpace + tcell.Key(b)}, 1
	}
	r, n := utf8.DecodeRune(p)
	return RuneKey(r), n
}

func decodeEscape(p []byte) (Key, int) {
	if len(p) < 3 || (p[1] != '[' && p[1] != 'O') {
		return Key{Code: tcell.KeyEscape}, 1
	}
	if k, ok := csiFinal[p[2]]; ok {
		return Key{Code: k}, 3
	}
	if p[1] != '[' {
		return Key{Code: tcell.KeyEscape}, 1
	}
	// ESC [ <digits> ~
	for i := 2; i < len(p); i++ {
		c := p[i]
		if c >= '0' && c <= '9' {
			continue
		}
		if c == '~' {
			if k, ok := csiTilde[string(p[2:i])]; ok {
				return Key{Code: k}, i + 1
			}
		}
		break
	}
	return Key{Code: tcell.KeyEscape}, 1
}
