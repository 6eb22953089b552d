// Package sink renders a composed figure into output formats: SVG directly,
// PNG and PDF via rsvg-convert, and JSON for data interchange.
package sink

import (
	"bytes"
	"fmt"

	"github.com/karyoviz/karyoplot/pkg/plot/compose"
	"github.com/karyoviz/karyoplot/pkg/plot/styles"
)

// Default figure framing. Margin is in figure units (Mb), PixelsPerUnit sets
// the rendered size of the root element.
const (
	DefaultMargin        = 5.0
	DefaultPixelsPerUnit = 6.0
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style  styles.Style
	margin float64
	ppu    float64
}

// WithStyle selects the visual style (default [styles.Classic]).
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithMargin sets the whitespace around the figure, in figure units.
func WithMargin(m float64) SVGOption { return func(r *svgRenderer) { r.margin = m } }

// WithPixelsPerUnit sets the rendered element size per figure unit.
func WithPixelsPerUnit(p float64) SVGOption { return func(r *svgRenderer) { r.ppu = p } }

// RenderSVG renders the figure as a standalone SVG document.
//
// Figure space has Y pointing up; SVG has Y pointing down, so every
// coordinate is flipped against the top of the padded bounds. Polygons paint
// before text, each list in insertion order.
func RenderSVG(fig *compose.Figure, opts ...SVGOption) []byte {
	r := svgRenderer{style: styles.Classic{}, margin: DefaultMargin, ppu: DefaultPixelsPerUnit}
	for _, opt := range opts {
		opt(&r)
	}

	b := fig.Bounds()
	width := b.Width() + 2*r.margin
	height := b.Height() + 2*r.margin
	flip := func(y float64) float64 { return b.MaxY + r.margin - y }
	shift := func(x float64) float64 { return x - b.MinX + r.margin }

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		width, height, width*r.ppu, height*r.ppu)

	r.style.RenderDefs(&buf)

	for _, p := range fig.Polygons {
		shape := styles.Shape{
			Points: make([][2]float64, len(p.Points)),
			Color:  p.Color,
			Fill:   p.Fill,
		}
		for i, pt := range p.Points {
			shape.Points[i] = [2]float64{shift(pt.X), flip(pt.Y)}
		}
		r.style.RenderShape(&buf, shape)
	}

	for _, t := range fig.Texts {
		r.style.RenderLabel(&buf, styles.Label{
			X:      shift(t.Position.X),
			Y:      flip(t.Position.Y),
			Size:   t.Size,
			Text:   t.Value,
			Middle: t.Anchor == compose.AnchorMiddle,
		})
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
