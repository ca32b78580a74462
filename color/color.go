// Package color is the palette of the CLI.
package color

import "github.com/charmbracelet/lipgloss"

func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")

	HiPurple = New("13")
	HiCyan   = New("14")

	Gray = New("#808080")
)

// Provider kinds.
var (
	Remote = HiPurple
	Local  = HiCyan
)
