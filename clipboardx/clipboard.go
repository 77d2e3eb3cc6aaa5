package clipboardx

import (
	"encoding/base64"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
)

// Backend reports how a yank reached the clipboard.
type Backend string

const (
	BackendSystem  Backend = "system"
	BackendCommand Backend = "command"
	BackendOSC52   Backend = "osc52"
	BackendNone    Backend = ""
)

// Write copies text to the system clipboard. When neither the clipboard
// library nor a helper command succeeds, an OSC 52 sequence is written to
// term so the terminal emulator can take it.
func Write(text string, term io.Writer) Backend {
	if err := clipboard.WriteAll(text); err == nil {
		return BackendSystem
	}
	if writeWithCommands(text) {
		return BackendCommand
	}
	if term != nil && writeOSC52(text, term) {
		return BackendOSC52
	}
	return BackendNone
}

func writeWithCommands(text string) bool {
	commands := []struct {
		name string
		args []string
	}{
		{name: "wl-copy", args: []string{}},
		{name: "xclip", args: []string{"-selection", "clipboard"}},
		{name: "xsel", args: []string{"--clipboard", "--input"}},
		{name: "pbcopy", args: []string{}},
		{name: "clip.exe", args: []string{}},
	}

	for _, cmdCfg := range commands {
		if _, err := exec.LookPath(cmdCfg.name); err != nil {
			continue
		}
		cmd := exec.Command(cmdCfg.name, cmdCfg.args...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			return true
		}
	}
	return false
}

// OSC52 returns the escape sequence that asks the terminal to set its
// clipboard.
func OSC52(text string) string {
	return fmt.Sprintf("\x1b]52;c;%s\x07", base64.StdEncoding.EncodeToString([]byte(text)))
}

func writeOSC52(text string, w io.Writer) bool {
	if text == "" {
		return false
	}
	_, err := io.WriteString(w, OSC52(text))
	return err == nil
}
