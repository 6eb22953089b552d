package pipeline

import (
	"github.com/karyoviz/karyoplot/pkg/plot/compose"
	"github.com/karyoviz/karyoplot/pkg/plot/layout"
	"github.com/karyoviz/karyoplot/pkg/plot/sink"
	"github.com/karyoviz/karyoplot/pkg/plot/styles"
)

// styleFor maps a validated style name to its implementation.
func styleFor(name string) styles.Style {
	if name == StyleMono {
		return styles.Mono{}
	}
	return styles.Classic{}
}

// renderArtifacts renders the figure into every requested format.
func renderArtifacts(fig *compose.Figure, tracks []*layout.Track, opts Options) (map[string][]byte, error) {
	style := styleFor(opts.Style)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[format] = sink.RenderSVG(fig, sink.WithStyle(style))
		case FormatPNG:
			data, err := sink.RenderPNG(fig,
				sink.WithPNGSVGOptions(sink.WithStyle(style)),
				sink.WithScale(opts.PNGScale))
			if err != nil {
				return nil, err
			}
			artifacts[format] = data
		case FormatPDF:
			data, err := sink.RenderPDF(fig, sink.WithStyle(style))
			if err != nil {
				return nil, err
			}
			artifacts[format] = data
		case FormatJSON:
			data, err := sink.RenderJSON(tracks,
				sink.WithJSONStyle(opts.Style),
				sink.WithJSONGeometry(opts.Geometry))
			if err != nil {
				return nil, err
			}
			artifacts[format] = data
		}
	}
	return artifacts, nil
}
