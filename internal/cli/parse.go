package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	pkgio "github.com/karyoviz/karyoplot/pkg/io"
	"github.com/karyoviz/karyoplot/pkg/pipeline"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	rules   string // classification rules TOML (built-in rules if empty)
	refresh bool   // bypass the feature cache
	output  string // output file path (stdout if empty)
	cache   cacheFlags
}

// newParseCmd creates the parse command. It reads a GFF annotation table,
// classifies the features into receptor families, and writes them as a
// features JSON document that render accepts in place of the raw table.
func newParseCmd() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse and classify features from a GFF annotation table",
		Long: `Parse a GFF3 annotation table into a classified feature set.

Features whose names match no classification rule are dropped. The result is
written as features JSON, which can be fed back into render or conflicts.

Examples:
  karyoplot parse genes.gff3                     # Classified features to stdout
  karyoplot parse genes.gff3 -o features.json    # Write to a file
  karyoplot parse genes.gff3 --rules my.toml     # Custom classification rules`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.rules, "rules", "", "classification rules TOML (built-in rules if empty)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	opts.cache.register(cmd)

	return cmd
}

func runParse(cmd *cobra.Command, input string, opts *parseOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner, err := opts.cache.newRunner()
	if err != nil {
		return err
	}
	defer runner.Close()

	features, _, err := runner.Parse(ctx, pipeline.Options{
		Input:   input,
		Rules:   opts.rules,
		Refresh: opts.refresh,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Classified %d features", len(features)))

	if opts.output == "" {
		return pkgio.WriteJSON(features, os.Stdout)
	}
	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := pkgio.WriteJSON(features, out); err != nil {
		return err
	}

	printSuccess("Parsed %s", input)
	printFile(opts.output)
	return nil
}

// openOutput opens path for writing, creating or truncating it.
func openOutput(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}
