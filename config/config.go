package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/viper"
)

type Config struct {
	TabStop          int    `json:"tab_stop"`
	Theme            string `json:"theme"`
	Welcome          string `json:"welcome"`
	ShowLanguage     bool   `json:"show_language"`
	RememberPosition bool   `json:"remember_position"`
	Path             string `json:"-"`
}

// ColorScheme colors the status line spans. tcell.ColorDefault leaves the
// terminal's own color in place.
type ColorScheme struct {
	Name               string
	StatusBarFg        tcell.Color
	StatusBarModeFg    tcell.Color
	StatusBarNameFg    tcell.Color
	StatusBarTagFg     tcell.Color
	StatusBarMessageFg tcell.Color
}

var Themes = map[string]*ColorScheme{
	"plain": {
		Name:               "Plain",
		StatusBarFg:        tcell.ColorDefault,
		StatusBarModeFg:    tcell.ColorDefault,
		StatusBarNameFg:    tcell.ColorDefault,
		StatusBarTagFg:     tcell.ColorDefault,
		StatusBarMessageFg: tcell.ColorDefault,
	},
	"dark": {
		Name:               "Dark",
		StatusBarFg:        tcell.ColorWhite,
		StatusBarModeFg:    tcell.ColorBlue,
		StatusBarNameFg:    tcell.ColorYellow,
		StatusBarTagFg:     tcell.ColorGray,
		StatusBarMessageFg: tcell.ColorGreen,
	},
	"monokai": {
		Name:               "Monokai",
		StatusBarFg:        tcell.NewRGBColor(73, 72, 62),
		StatusBarModeFg:    tcell.NewRGBColor(102, 217, 239),
		StatusBarNameFg:    tcell.NewRGBColor(249, 38, 114),
		StatusBarTagFg:     tcell.NewRGBColor(144, 144, 128),
		StatusBarMessageFg: tcell.NewRGBColor(166, 226, 46),
	},
	"nord": {
		Name:               "Nord",
		StatusBarFg:        tcell.NewRGBColor(67, 76, 94),
		StatusBarModeFg:    tcell.NewRGBColor(136, 192, 208),
		StatusBarNameFg:    tcell.NewRGBColor(94, 129, 172),
		StatusBarTagFg:     tcell.NewRGBColor(76, 86, 106),
		StatusBarMessageFg: tcell.NewRGBColor(163, 190, 140),
	},
	"gruvbox": {
		Name:               "Gruvbox Dark",
		StatusBarFg:        tcell.NewRGBColor(60, 56, 54),
		StatusBarModeFg:    tcell.NewRGBColor(184, 187, 38),
		StatusBarNameFg:    tcell.NewRGBColor(254, 128, 25),
		StatusBarTagFg:     tcell.NewRGBColor(146, 131, 116),
		StatusBarMessageFg: tcell.NewRGBColor(131, 165, 152),
	},
	"dracula": {
		Name:               "Dracula",
		StatusBarFg:        tcell.NewRGBColor(68, 71, 90),
		StatusBarModeFg:    tcell.NewRGBColor(189, 147, 249),
		StatusBarNameFg:    tcell.NewRGBColor(255, 121, 198),
		StatusBarTagFg:     tcell.NewRGBColor(98, 114, 164),
		StatusBarMessageFg: tcell.NewRGBColor(80, 250, 123),
	},
}

func Default() *Config {
	return &Config{
		TabStop:          4,
		Theme:            "plain",
		Welcome:          "peek -- read-only viewer",
		ShowLanguage:     true,
		RememberPosition: true,
		Path:             ConfigPath(),
	}
}

func (c *Config) GetTheme() *ColorScheme {
	theme, ok := Themes[c.Theme]
	if !ok {
		return Themes["plain"]
	}
	return theme
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "peek", "settings.json")
}

// Load reads the settings file at path, or ConfigPath when path is empty.
// A missing file yields the defaults. PEEK_* environment variables
// override both (PEEK_TAB_STOP, PEEK_THEME, ...).
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}
	cfg := Default()
	cfg.Path = path

	v := viper.New()
	v.SetConfigType("json")
	v.SetDefault("tab_stop", cfg.TabStop)
	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("welcome", cfg.Welcome)
	v.SetDefault("show_language", cfg.ShowLanguage)
	v.SetDefault("remember_position", cfg.RememberPosition)
	v.SetEnvPrefix("PEEK")
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	cfg.TabStop = v.GetInt("tab_stop")
	cfg.Theme = v.GetString("theme")
	cfg.Welcome = v.GetString("welcome")
	cfg.ShowLanguage = v.GetBool("show_language")
	cfg.RememberPosition = v.GetBool("remember_position")
	if cfg.TabStop <= 0 {
		return nil, fmt.Errorf("tab_stop must be positive, got %d", cfg.TabStop)
	}
	return cfg, nil
}

func (c *Config) Save() error {
	path := c.Path
	if path == "" {
		path = ConfigPath()
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// TabStopFor returns the tab stop for a file, letting a matching
// .editorconfig section override the configured value.
func (c *Config) TabStopFor(filePath string) int {
	if ec := FindEditorConfig(filePath); ec != nil {
		if n := ec.TabStop(); n > 0 {
			return n
		}
	}
	return c.TabStop
}
