// Package conflict visualizes which markers pushed which others upward during
// placement, as a directed graph. Each node is a placed marker; an edge from A
// to B means A forced B to a higher lane. Useful for debugging dense regions
// where a marker lands higher than expected.
package conflict

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/karyoviz/karyoplot/pkg/errors"
	"github.com/karyoviz/karyoplot/pkg/plot/layout"
	"github.com/karyoviz/karyoplot/pkg/plot/render"
)

// Options configures conflict graph rendering.
type Options struct {
	// Detailed includes final lane offsets and raise amounts in labels.
	// When false, only marker positions are shown.
	Detailed bool
}

// ToDOT converts a track's recorded conflicts to Graphviz DOT format.
// Markers that never conflicted are omitted. The resulting DOT string can be
// rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(t *layout.Track, log *layout.ConflictLog, opts Options) string {
	involved := make(map[int]bool)
	for _, c := range log.Conflicts {
		involved[c.Placing] = true
		involved[c.Reference] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph conflicts {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for i := range t.Markers {
		if !involved[i] {
			continue
		}
		m := &t.Markers[i]
		label := fmt.Sprintf("%.3f Mb %s", m.Position, m.Direction)
		if opts.Detailed {
			label += fmt.Sprintf("\noffset %.2f", m.HeightOffset)
		}
		fmt.Fprintf(&buf, "  %d [label=%q];\n", i, label)
	}

	buf.WriteString("\n")
	for _, c := range log.Conflicts {
		if opts.Detailed {
			fmt.Fprintf(&buf, "  %d -> %d [label=\"+%.2f\"];\n", c.Reference, c.Placing, c.Raise)
			continue
		}
		fmt.Fprintf(&buf, "  %d -> %d;\n", c.Reference, c.Placing)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
