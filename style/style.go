// Package style holds the render helpers used by the text output of the CLI.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/resolver-cli/resolver/color"
)

// New returns a blank style.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg colors the foreground.
func Fg(c lipgloss.Color) func(string) string {
	s := New().Foreground(c)
	return func(text string) string { return s.Render(text) }
}

// Tag renders text as a padded label, as used for quality and kind badges.
func Tag(fg, bg lipgloss.Color) func(string) string {
	s := New().Foreground(fg).Background(bg).Padding(0, 1)
	return func(text string) string { return s.Render(text) }
}

// Truncate cuts text to width cells. Escape sequences do not count.
func Truncate(width int) func(string) string {
	return func(text string) string { return truncate.StringWithTail(text, uint(width), "…") }
}

var (
	Faint  = New().Faint(true).Render
	Bold   = New().Bold(true).Render
	Italic = New().Italic(true).Render

	// Title is the banner of a home page section.
	Title = Tag(color.New("230"), color.New("62"))
)
