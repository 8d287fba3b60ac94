package render

import (
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// RGB is a color triple in the 0-255 range.
type RGB [3]int

// Style is the resolved palette and typography a renderer draws with.
type Style struct {
	Primary    RGB
	Accent     RGB
	Muted      RGB
	Danger     RGB
	HeaderFill RGB
	RuleLine   RGB
	FontFamily string
}

// DefaultStyle returns the built-in report palette.
func DefaultStyle() Style {
	return Style{
		Primary:    RGB{178, 34, 34},
		Accent:     RGB{52, 73, 94},
		Muted:      RGB{127, 140, 141},
		Danger:     RGB{192, 57, 43},
		HeaderFill: RGB{236, 240, 241},
		RuleLine:   RGB{189, 195, 199},
		FontFamily: "Helvetica",
	}
}

// Theme token names recognized by StyleFromSelection.
const (
	tokenPrimary    = "color.primary"
	tokenAccent     = "color.accent"
	tokenMuted      = "color.muted"
	tokenDanger     = "color.danger"
	tokenHeaderFill = "color.headerFill"
	tokenRuleLine   = "color.ruleLine"
	tokenFontFamily = "font.family"
)

// StyleFromSelection derives a Style from a go-theme selection, layering the
// selected variant's tokens over the manifest's and falling back to the
// default palette for anything unset or unparsable.
func StyleFromSelection(selection *theme.Selection) Style {
	style := DefaultStyle()
	if selection == nil || selection.Manifest == nil {
		return style
	}

	tokens := make(map[string]string, len(selection.Manifest.Tokens))
	for name, value := range selection.Manifest.Tokens {
		tokens[name] = value
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for name, value := range variant.Tokens {
			tokens[name] = value
		}
	}

	applyColor(tokens, tokenPrimary, &style.Primary)
	applyColor(tokens, tokenAccent, &style.Accent)
	applyColor(tokens, tokenMuted, &style.Muted)
	applyColor(tokens, tokenDanger, &style.Danger)
	applyColor(tokens, tokenHeaderFill, &style.HeaderFill)
	applyColor(tokens, tokenRuleLine, &style.RuleLine)
	if family := strings.TrimSpace(tokens[tokenFontFamily]); family != "" {
		style.FontFamily = family
	}
	return style
}

func applyColor(tokens map[string]string, name string, dst *RGB) {
	if color, ok := parseHexColor(tokens[name]); ok {
		*dst = color
	}
}

// parseHexColor accepts #rgb and #rrggbb notations.
func parseHexColor(raw string) (RGB, bool) {
	hex := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return RGB{}, false
	}
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return RGB{int(value >> 16 & 0xff), int(value >> 8 & 0xff), int(value & 0xff)}, true
}
