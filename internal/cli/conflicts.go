package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/karyoviz/karyoplot/pkg/errors"
	"github.com/karyoviz/karyoplot/pkg/feature"
	"github.com/karyoviz/karyoplot/pkg/genome"
	"github.com/karyoviz/karyoplot/pkg/pipeline"
	"github.com/karyoviz/karyoplot/pkg/plot/conflict"
	"github.com/karyoviz/karyoplot/pkg/plot/layout"
)

// conflictsOpts holds the command-line flags for the conflicts command.
type conflictsOpts struct {
	assembly   string // assembly TOML describing the chromosomes
	rules      string // classification rules TOML
	chromosome string // chromosome to inspect
	format     string // output format: dot, svg, png
	output     string // output file path (stdout for dot if empty)
	detailed   bool   // include offsets and raise amounts
	geom       geometryFlags
	cache      cacheFlags
}

// newConflictsCmd creates the conflicts debug command. It places a single
// chromosome's markers while recording every raise the layout engine applies,
// then renders the conflict graph with Graphviz.
func newConflictsCmd() *cobra.Command {
	opts := conflictsOpts{format: "svg", geom: newGeometryFlags()}

	cmd := &cobra.Command{
		Use:   "conflicts <file>",
		Short: "Visualize marker placement conflicts as a graph",
		Long: `Visualize which markers forced which others upward during placement.

Each node is a marker on the chosen chromosome; an edge points from the
already-placed marker to the one it displaced. Useful for understanding why
a dense cluster stacks the way it does.

Examples:
  karyoplot conflicts genes.gff3 --assembly dmel.toml --chromosome chr2L
  karyoplot conflicts genes.gff3 --assembly dmel.toml --chromosome chr3R --detailed -f png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConflicts(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.assembly, "assembly", "", "assembly TOML describing the chromosomes (required)")
	cmd.Flags().StringVar(&opts.rules, "rules", "", "classification rules TOML (built-in rules if empty)")
	cmd.Flags().StringVar(&opts.chromosome, "chromosome", "", "chromosome to inspect (required)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), png, dot")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include offsets and raise amounts")
	opts.geom.register(cmd)
	opts.cache.register(cmd)

	_ = cmd.MarkFlagRequired("assembly")
	_ = cmd.MarkFlagRequired("chromosome")

	return cmd
}

func runConflicts(cmd *cobra.Command, input string, opts *conflictsOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner, err := opts.cache.newRunner()
	if err != nil {
		return err
	}
	defer runner.Close()

	features, _, err := runner.Parse(ctx, pipeline.Options{
		Input:  input,
		Rules:  opts.rules,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	asm, err := genome.LoadAssembly(opts.assembly)
	if err != nil {
		return err
	}
	track, err := findTrack(features, asm, opts.chromosome, logger)
	if err != nil {
		return err
	}

	var clog layout.ConflictLog
	engine := layout.NewEngine(opts.geom.geometry(), layout.WithConflictLog(&clog))
	track.SortByPosition()
	if err := engine.Place(track); err != nil {
		return err
	}
	logger.Infof("Placed %d markers with %d conflicts", len(track.Markers), len(clog.Conflicts))

	dot := conflict.ToDOT(track, &clog, conflict.Options{Detailed: opts.detailed})

	var data []byte
	switch opts.format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = conflict.RenderSVG(dot)
	case "png":
		data, err = conflict.RenderPNG(dot, 2.0)
	default:
		return fmt.Errorf("invalid format: %s (must be 'svg', 'png', or 'dot')", opts.format)
	}
	if err != nil {
		return err
	}

	if opts.output == "" && opts.format == "dot" {
		fmt.Println(strings.TrimRight(dot, "\n"))
		return nil
	}
	path := opts.output
	if path == "" {
		path = "conflicts_" + opts.chromosome + "." + opts.format
	}
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return err
	}

	printSuccess("Conflict graph for %s", opts.chromosome)
	printFile(path)
	return nil
}

// findTrack builds the track for one chromosome from the classified features.
func findTrack(features []feature.Classified, asm *genome.Assembly, name string, logger *log.Logger) (*layout.Track, error) {
	tracks := pipeline.BuildTracks(features, asm, logger)
	for _, t := range tracks {
		if t.Label == name {
			return t, nil
		}
	}
	for i, c := range asm.Chromosomes {
		if c.Name == name {
			return tracks[i], nil
		}
	}
	return nil, errors.New(errors.ErrCodeChromosomeNotFound, "chromosome %q not in assembly", name)
}
