// Package filetype names the language of a file for the status line.
package filetype

import (
	"github.com/alecthomas/chroma/v2/lexers"
)

// Detect returns the language name chroma associates with the file name,
// or "" when nothing matches.
func Detect(filename string) string {
	lexer := lexers.Match(filename)
	if lexer == nil {
		return ""
	}
	config := lexer.Config()
	if config == nil {
		return ""
	}
	return config.Name
}

// Analyse guesses the language from content when the name is not enough,
// e.g. scripts without an extension that start with a shebang.
func Analyse(text string) string {
	lexer := lexers.Analyse(text)
	if lexer == nil {
		return ""
	}
	if config := lexer.Config(); config != nil {
		return config.Name
	}
	return ""
}

// For prefers the file name and falls back to content analysis.
func For(filename, text string) string {
	if lang := Detect(filename); lang != "" {
		return lang
	}
	return Analyse(text)
}
