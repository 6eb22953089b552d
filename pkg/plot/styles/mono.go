package styles

import (
	"bytes"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// cssNames covers the named colors the stock figures use; anything else must
// come in as a hex string to be converted.
var cssNames = map[string]string{
	"black":     "#000000",
	"white":     "#ffffff",
	"grey":      "#808080",
	"gray":      "#808080",
	"lightgrey": "#d3d3d3",
	"lightgray": "#d3d3d3",
	"orange":    "#ffa500",
	"red":       "#ff0000",
	"green":     "#008000",
	"blue":      "#0000ff",
	"purple":    "#800080",
	"yellow":    "#ffff00",
}

// Mono renders the figure in greyscale: every color is replaced by the grey
// of equal perceived lightness, so classes stay distinguishable in print.
type Mono struct{}

// Name returns "mono".
func (Mono) Name() string { return "mono" }

// RenderDefs writes nothing.
func (Mono) RenderDefs(buf *bytes.Buffer) {}

// RenderShape delegates to Classic with the color collapsed to grey.
func (Mono) RenderShape(buf *bytes.Buffer, s Shape) {
	s.Color = ToGrey(s.Color)
	Classic{}.RenderShape(buf, s)
}

// RenderLabel delegates to Classic; text is already black.
func (Mono) RenderLabel(buf *bytes.Buffer, l Label) {
	Classic{}.RenderLabel(buf, l)
}

// ToGrey maps a hex or named color to the grey with the same CIE lightness.
// Unparseable colors pass through unchanged.
func ToGrey(color string) string {
	hex := color
	if name, ok := cssNames[strings.ToLower(color)]; ok {
		hex = name
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color
	}
	l, _, _ := c.Lab()
	return colorful.Lab(l, 0, 0).Clamped().Hex()
}
