// Package util collects small helpers shared by the CLI and the adapters.
package util

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/exp/constraints"
	"golang.org/x/term"
)

var (
	unsafeFilenameChars = regexp.MustCompile(`[\\/<>:;"'|?!*{}#%&^+,~\s]+`)
	filenameEdges       = regexp.MustCompile(`^[_\-.]+|[_\-.]+$`)
)

// SanitizeFilename turns a provider name into something every filesystem accepts.
func SanitizeFilename(name string) string {
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Join(strings.FieldsFunc(name, func(r rune) bool { return r == '_' }), "_")
	return filenameEdges.ReplaceAllString(name, "")
}

// Quantify prefixes the count to the matching noun form.
func Quantify(n int, singular, plural string) string {
	noun := plural
	if n == 1 {
		noun = singular
	}
	return strconv.Itoa(n) + " " + noun
}

func Capitalize(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}

// TerminalWidth reports the width of stdout, or fallback when it is not a terminal.
func TerminalWidth(fallback int) int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return fallback
}

// FileStem is the base name of path without its extension.
func FileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Ignore calls f and drops its error. Meant for deferred Close calls.
func Ignore(f func() error) {
	_ = f()
}

func Max[T constraints.Ordered](items ...T) (m T) {
	for i, item := range items {
		if i == 0 || item > m {
			m = item
		}
	}
	return
}

func Min[T constraints.Ordered](items ...T) (m T) {
	for i, item := range items {
		if i == 0 || item < m {
			m = item
		}
	}
	return
}
