// Package pkg provides the core libraries for Karyoplot ideogram rendering.
//
// # Overview
//
// Karyoplot plots genomic features as triangular markers along chromosome
// ideograms, stacking overlapping markers upward so that dense gene clusters
// stay readable. The pkg directory is organized into four main areas:
//
//  1. [feature], [genome], [io] - Ingestion (GFF parsing, classification, assemblies)
//  2. [plot] - Layout and rendering (marker placement, figure composition, sinks)
//  3. [cache], [observability], [errors] - Infrastructure
//  4. [pipeline] - Orchestration (parse → layout → render)
//
// # Architecture
//
// The typical data flow through Karyoplot:
//
//	GFF annotation table / features JSON
//	         ↓
//	    [feature] package (parse + classify)
//	         ↓
//	    [plot/layout] package (collision-free marker placement)
//	         ↓
//	    [plot/compose] package (ideograms, labels, scale bar, key)
//	         ↓
//	    SVG/PDF/PNG/JSON output
//
// # Quick Start
//
// Place markers on a track and render the figure:
//
//	import (
//	    "github.com/karyoviz/karyoplot/pkg/plot/compose"
//	    "github.com/karyoviz/karyoplot/pkg/plot/layout"
//	    "github.com/karyoviz/karyoplot/pkg/plot/sink"
//	)
//
//	// 1. Build a track
//	track := &layout.Track{
//	    Length:     23.5,
//	    SplitPoint: 10.0,
//	    Label:      "Chr. 2L",
//	    Markers: []layout.Marker{
//	        {Position: 7.5, Direction: layout.Right, Filled: true, Color: "#b326ff"},
//	        {Position: 7.6, Direction: layout.Left, Color: "orange"},
//	    },
//	}
//
//	// 2. Compose the figure (places markers internally)
//	c := compose.New(layout.NewEngine(layout.DefaultGeometry()))
//	_ = c.AddTrack(track)
//	_ = c.Finalize(nil)
//
//	// 3. Render to SVG
//	svg := sink.RenderSVG(c.Figure())
//
// # Main Packages
//
// ## Ingestion
//
// [feature] - GFF3 parsing and name-prefix classification of genes and
// pseudogenes into receptor families, with TOML-configurable rules.
//
// [genome] - Chromosome assemblies loaded from TOML (lengths, centromeres,
// display labels).
//
// [io] - Features JSON import/export, the interchange format between the
// parse and render commands.
//
// ## Layout and Rendering
//
// [plot/layout] - The placement engine. Markers are scanned in ascending
// position order and raised until every pair satisfies its required
// clearance; a zone index keeps the conflict search local.
//
// [plot/compose] - Figure composition: marker triangles, octagonal
// chromosome bars split at the centromere, track labels, scale bar, and the
// color key.
//
// [plot/styles] - Visual styles (classic, mono) that turn figure primitives
// into SVG fragments.
//
// [plot/sink] - Output formats (SVG, PDF, PNG, JSON).
//
// [plot/conflict] - Placement conflict graphs rendered with Graphviz, used
// by the conflicts debug command.
//
// [plot/render] - Format conversion helpers (SVG to PDF/PNG via rsvg-convert).
//
// ## Infrastructure
//
// [cache] - Content-addressed file cache for parsed feature sets and
// rendered artifacts, with TTL expiry and cache key derivation.
//
// [observability] - Pipeline and cache hooks with no-op defaults.
//
// [errors] - Structured errors with stable codes for programmatic handling.
//
// ## Orchestration
//
// [pipeline] - Complete parse → layout → render pipeline used by the CLI.
// Ensures consistent behavior and caching across all entry points.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/plot/layout/...  # Specific package
//	go test -run Example           # Examples only
//
// [feature]: https://pkg.go.dev/github.com/karyoviz/karyoplot/pkg/feature
// [genome]: https://pkg.go.dev/github.com/karyoviz/karyoplot/pkg/genome
// [io]: https://pkg.go.dev/github.com/karyoviz/karyoplot/pkg/io
// [plot]: https://pkg.go.dev/github.com/karyoviz/karyoplot/pkg/plot
// [plot/layout]: https://pkg.go.dev/github.com/karyoviz/karyoplot/pkg/plot/layout
// [plot/compose]: https://pkg.go.dev/github.com/karyoviz/karyoplot/pkg/plot/compose
// [plot/styles]: https://pkg.go.dev/github.com/karyoviz/karyoplot/pkg/plot/styles
// [plot/sink]: https://pkg.go.dev/github.com/karyoviz/karyoplot/pkg/plot/sink
// [plot/conflict]: https://pkg.go.dev/github.com/karyoviz/karyoplot/pkg/plot/conflict
// [plot/render]: https://pkg.go.dev/github.com/karyoviz/karyoplot/pkg/plot/render
// [cache]: https://pkg.go.dev/github.com/karyoviz/karyoplot/pkg/cache
// [observability]: https://pkg.go.dev/github.com/karyoviz/karyoplot/pkg/observability
// [errors]: https://pkg.go.dev/github.com/karyoviz/karyoplot/pkg/errors
// [pipeline]: https://pkg.go.dev/github.com/karyoviz/karyoplot/pkg/pipeline
package pkg
