// Package icon renders UI symbols in the variant chosen by the user:
// emoji, nerd-font glyphs, plain ASCII, kaomoji or Unicode squares.
package icon

import (
	"github.com/spf13/viper"
	"github.com/srtdeck/srtdeck/key"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns every supported variant name.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// iconDef holds one symbol in every variant.
type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

// render returns the symbol for the configured variant. Unknown variants render as plain.
func (d *iconDef) render() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return d.plain
	}
}

// Get returns the rendered symbol, or an empty string for an unregistered icon.
func Get(i Icon) string {
	def, ok := icons[i]
	if !ok {
		return ""
	}
	return def.render()
}
