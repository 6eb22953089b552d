package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/karyoviz/karyoplot/pkg/pipeline"
	"github.com/karyoviz/karyoplot/pkg/plot/layout"
)

// geometryFlags exposes the five marker geometry constants as flags, shared
// by the render and conflicts commands so both place with the same geometry.
type geometryFlags struct {
	markerHeight float64
	slope        float64
	smallGap     float64
	largeGap     float64
	tinyGap      float64
}

func newGeometryFlags() geometryFlags {
	g := layout.DefaultGeometry()
	return geometryFlags{
		markerHeight: g.MarkerHeight,
		slope:        g.Slope,
		smallGap:     g.SmallGap,
		largeGap:     g.LargeGap,
		tinyGap:      g.TinyGap,
	}
}

func (f *geometryFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.markerHeight, "marker-height", f.markerHeight, "triangle height in figure units")
	cmd.Flags().Float64Var(&f.slope, "slope", f.slope, "triangle side slope")
	cmd.Flags().Float64Var(&f.smallGap, "small-gap", f.smallGap, "clearance between stacked markers")
	cmd.Flags().Float64Var(&f.largeGap, "large-gap", f.largeGap, "clearance used to escape below a marker")
	cmd.Flags().Float64Var(&f.tinyGap, "tiny-gap", f.tinyGap, "extra clearance for head-on marker pairs")
}

func (f *geometryFlags) geometry() layout.Geometry {
	return layout.Geometry{
		MarkerHeight: f.markerHeight,
		Slope:        f.slope,
		SmallGap:     f.smallGap,
		LargeGap:     f.largeGap,
		TinyGap:      f.tinyGap,
	}
}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string  // output file path or base path for multiple formats
	assembly string  // assembly TOML describing the chromosomes
	rules    string  // classification rules TOML
	style    string  // visual style: classic or mono
	scale    float64 // PNG supersampling factor
	noKey    bool    // omit the color key
	refresh  bool    // bypass caches

	geom  geometryFlags
	cache cacheFlags
}

// newRenderCmd creates the render command for generating ideograms.
// It accepts either a GFF annotation table or a features JSON file produced
// by parse, and writes one output file per requested format.
func newRenderCmd() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		style: pipeline.DefaultStyle,
		scale: pipeline.DefaultPNGScale,
		geom:  newGeometryFlags(),
	}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a chromosome ideogram from a feature table",
		Long: `Render genomic features along chromosome ideograms.

The input is either a GFF3 annotation table or a features JSON file from
"karyoplot parse". Markers that would overlap are stacked upward so dense
clusters stay readable.

Examples:
  karyoplot render genes.gff3 --assembly dmel.toml
  karyoplot render features.json --assembly dmel.toml -f svg,png -o figure
  karyoplot render genes.gff3 --assembly dmel.toml --style mono --no-key`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], parseFormats(formatsStr), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&opts.assembly, "assembly", "", "assembly TOML describing the chromosomes (required)")
	cmd.Flags().StringVar(&opts.rules, "rules", "", "classification rules TOML (built-in rules if empty)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", opts.style, "visual style: classic (default), mono")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG supersampling factor")
	cmd.Flags().BoolVar(&opts.noKey, "no-key", false, "omit the color key")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass caches")

	opts.geom.register(cmd)
	opts.cache.register(cmd)

	_ = cmd.MarkFlagRequired("assembly")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output carries a
// known format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func runRender(cmd *cobra.Command, input string, formats []string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	runner, err := opts.cache.newRunner()
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Placing markers...")
	spinner.Start()
	result, err := runner.Execute(ctx, pipeline.Options{
		Input:    input,
		Rules:    opts.rules,
		Refresh:  opts.refresh,
		Assembly: opts.assembly,
		Geometry: opts.geom.geometry(),
		Formats:  formats,
		Style:    opts.style,
		PNGScale: opts.scale,
		NoKey:    opts.noKey,
		Logger:   logger,
	})
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Rendered %s", input))
	printStats(result.Stats.FeatureCount, result.Stats.TrackCount, result.Stats.MarkerCount,
		result.CacheInfo.ParseHit && result.CacheInfo.RenderHit)

	base := basePath(opts.output, input)
	for _, format := range formats {
		path := base + "." + format
		if opts.output != "" && len(formats) == 1 && filepath.Ext(opts.output) != "" {
			path = opts.output
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}
