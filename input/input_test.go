package input

import (
	"reflect"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Key
	}{
		{"hjkl", "hjkl", []Key{RuneKey('h'), RuneKey('j'), RuneKey('k'), RuneKey('l')}},
		{"arrows", "\x1b[A\x1b[B\x1b[C\x1b[D", []Key{{Code: tcell.KeyUp}, {Code: tcell.KeyDown}, {Code: tcell.KeyRight}, {Code: tcell.KeyLeft}}},
		{"application arrows", "\x1bOA\x1bOD", []Key{{Code: tcell.KeyUp}, {Code: tcell.KeyLeft}}},
		{"ctrl-q", "\x11", []Key{{Code: tcell.KeyCtrlQ}}},
		{"lone escape", "\x1b", []Key{{Code: tcell.KeyEscape}}},
		{"escape then rune", "\x1bx", []Key{{Code: tcell.KeyEscape}, RuneKey('x')}},
		{"page keys", "\x1b[5~\x1b[6~\x1b[3~", []Key{{Code: tcell.KeyPgUp}, {Code: tcell.KeyPgDn}, {Code: tcell.KeyDelete}}},
		{"utf8", "é", []Key{RuneKey('é')}},
		{"enter", "\r", []Key{{Code: tcell.KeyEnter}}},
		{"mixed", "j\x1b[Bq", []Key{RuneKey('j'), {Code: tcell.KeyDown}, RuneKey('q')}},
	}
	for _, tt := range tests {
		got := Decode([]byte(tt.in))
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestDecodeUnknownCSIFallsBackToEscape(t *testing.T) {
	got := Decode([]byte("\x1b[99~"))
	if len(got) == 0 || got[0].Code != tcell.KeyEscape {
		t.Fatalf("expected leading escape, got %v", got)
	}
}

func TestKeyString(t *testing.T) {
	if got := RuneKey('j').String(); got != "j" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := (Key{Code: tcell.KeyUp}).String(); got != "Up" {
		t.Fatalf("unexpected name %q", got)
	}
}
