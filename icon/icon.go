// Package icon renders CLI status symbols in the configured variant.
package icon

import (
	"github.com/resolver-cli/resolver/key"
	"github.com/spf13/viper"
)

const (
	emoji = "emoji"
	plain = "plain"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, plain}
}

// Icon identifies a symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Movie
	Show
	Local
	Remote
)

type iconDef struct {
	emoji string
	plain string
}

func (d iconDef) get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case plain:
		return d.plain
	default:
		return ""
	}
}

var icons = map[Icon]iconDef{
	Success: {emoji: "🎉", plain: "✓"},
	Fail:    {emoji: "💀", plain: "✖"},
	Movie:   {emoji: "🎬", plain: "M"},
	Show:    {emoji: "📺", plain: "S"},
	Local:   {emoji: "🏠", plain: "local"},
	Remote:  {emoji: "🛰️", plain: "remote"},
}

// Get returns the rendered string for i.
func Get(i Icon) string {
	return icons[i].get()
}
