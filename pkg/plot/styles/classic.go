package styles

import (
	"bytes"
	"fmt"
	"strings"
)

// strokeWidth is in figure units (Mb), thin relative to a ~3 unit marker.
const strokeWidth = 0.15

// Classic renders colors exactly as authored, with black text.
type Classic struct{}

// Name returns "classic".
func (Classic) Name() string { return "classic" }

// RenderDefs writes nothing; the classic style needs no defs.
func (Classic) RenderDefs(buf *bytes.Buffer) {}

// RenderShape writes a polygon, filled or outlined in its color.
func (Classic) RenderShape(buf *bytes.Buffer, s Shape) {
	if s.Fill {
		fmt.Fprintf(buf, "  <polygon points=\"%s\" fill=\"%s\"/>\n",
			formatPoints(s.Points), EscapeXML(s.Color))
		return
	}
	fmt.Fprintf(buf, "  <polygon points=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"%.2f\"/>\n",
		formatPoints(s.Points), EscapeXML(s.Color), strokeWidth)
}

// RenderLabel writes a black sans-serif text element.
func (Classic) RenderLabel(buf *bytes.Buffer, l Label) {
	anchor := ""
	if l.Middle {
		anchor = ` text-anchor="middle"`
	}
	fmt.Fprintf(buf, "  <text x=\"%.2f\" y=\"%.2f\" font-size=\"%.2f\" font-family=\"sans-serif\" fill=\"black\"%s>%s</text>\n",
		l.X, l.Y, l.Size, anchor, EscapeXML(l.Text))
}

func formatPoints(points [][2]float64) string {
	var sb strings.Builder
	for i, p := range points {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%.2f,%.2f", p[0], p[1])
	}
	return sb.String()
}
