// Package styles defines the visual styles for figure rendering.
//
// A style turns device-space shapes and labels into SVG fragments. The SVG
// sink converts figure primitives (flipping the Y axis) and hands them to the
// configured style, so styles never see figure coordinates.
//
//   - [Classic]: colors as authored, black ink for bars and text
//   - [Mono]: the same figure with every color collapsed to its grey
package styles

import (
	"bytes"
	"encoding/xml"
)

// Style renders device-space primitives as SVG fragments.
type Style interface {
	// Name identifies the style in CLI flags and JSON exports.
	Name() string
	// RenderDefs writes SVG <defs> content (filters, patterns, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderShape writes the SVG for one polygon.
	RenderShape(buf *bytes.Buffer, s Shape)
	// RenderLabel writes the SVG for one text label.
	RenderLabel(buf *bytes.Buffer, l Label)
}

// Shape is a closed polygon in device coordinates (Y down).
// When Fill is false only the outline is stroked, in Color.
type Shape struct {
	Points [][2]float64
	Color  string
	Fill   bool
}

// Label is a text baseline position in device coordinates.
type Label struct {
	X, Y   float64
	Size   float64
	Text   string
	Middle bool // center horizontally on X instead of starting there
}

// EscapeXML escapes s for use in SVG attribute or text content.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
