package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arcstrata/pkg/graph"
	"github.com/matzehuels/arcstrata/pkg/pipeline"
)

// layoutFlags are shared by every command that lays out a document.
type layoutFlags struct {
	format       string
	alternatives bool
	noCache      bool
	refresh      bool
	concurrency  int
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "format", "", "input format: json, yaml, toml, conllu (default: from extension)")
	cmd.Flags().BoolVarP(&f.alternatives, "alternatives", "a", false, "include alternative (enhanced) edges")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute layouts even when cached")
	cmd.Flags().IntVarP(&f.concurrency, "concurrency", "j", 0, "sentences laid out in parallel (default: batch.concurrency)")
}

// layoutCommand creates the layout command for computing arc layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Compute arc layouts for every sentence of a treebank",
		Long: `Compute arc layouts for every sentence of a treebank.

The input may be CoNLL-U, or a JSON, YAML or TOML document of sentences.
The output is a layout.json file holding one layout per sentence, with the
stratum and anchor offsets of every edge. Use "-o -" to write to stdout.

Results are cached, so unchanged sentences are not laid out again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd, args[0], output, flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	flags.register(cmd)

	return cmd
}

// runLayout loads the document, lays out every sentence and writes output.
func (c *CLI) runLayout(cmd *cobra.Command, input, output string, flags layoutFlags) error {
	res, err := c.layoutDocument(cmd, input, flags)
	if err != nil {
		return err
	}

	if output == "-" {
		return graph.WriteLayouts(cmd.OutOrStdout(), res.Layouts)
	}
	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}
	if err := graph.WriteLayoutFile(outputPath, res.Layouts); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(res.Stats.Sentences, res.Stats.Edges, res.CacheInfo.Hits)
	if res.Stats.Dangling > 0 {
		printWarning("%s excluded, see: arcstrata check %s", plural(res.Stats.Dangling, "dangling edge"), input)
	}
	printNewline()
	printNextStep("View", "arcstrata view "+input)

	return nil
}

// layoutDocument reads input and lays it out through a cached runner,
// showing a spinner while it works.
func (c *CLI) layoutDocument(cmd *cobra.Command, input string, flags layoutFlags) (*pipeline.DocumentResult, error) {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	doc, err := pipeline.ReadFile(ctx, input, flags.format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", input, err)
	}
	logger.Debug("read document", "file", input, "sentences", len(doc.Sentences))

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Laying out %s...", plural(len(doc.Sentences), "sentence")))
	spinner.Start()

	res, err := runner.LayoutDocument(ctx, doc, c.pipelineOptions(c.alternatives(cmd, flags.alternatives), flags.refresh, flags.concurrency))
	if err != nil {
		spinner.StopWithError("Layout failed")
		return nil, fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	prog.done("Laid out "+plural(res.Stats.Sentences, "sentence"), "edges", res.Stats.Edges, "max_strata", res.Stats.MaxStrata)
	return res, nil
}
