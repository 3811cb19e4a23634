package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arcstrata/pkg/graph"
	"github.com/matzehuels/arcstrata/pkg/pipeline"
)

// exportCommand creates the export command for Graphviz node-link output.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		format   string
		output   string
		sentence string
		detailed bool
		flags    layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export sentences as DOT or SVG node-link diagrams",
		Long: `Export sentences as DOT or SVG node-link diagrams.

Tokens are pinned left to right in sentence order and every edge is drawn
as a labeled arrow. Edges in negative strata leave their tokens from below.
One file is written per sentence, named <input>-<sentence id>.<format>.
With --sentence, "-o -" writes the single diagram to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != pipeline.FormatDOT && format != pipeline.FormatSVG {
				return fmt.Errorf("invalid export format %q (must be dot or svg)", format)
			}
			res, err := c.layoutDocument(cmd, args[0], flags)
			if err != nil {
				return err
			}
			layouts := res.Layouts
			if sentence != "" {
				if layouts, err = selectSentence(layouts, sentence); err != nil {
					return err
				}
			}

			ropts := pipeline.RenderOptions{Detailed: detailed}
			if output == "-" {
				if len(layouts) != 1 {
					return fmt.Errorf("writing to stdout needs exactly one sentence, use --sentence")
				}
				data, err := pipeline.Render(cmd.Context(), layouts[0], format, ropts)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			dir := output
			if dir == "" {
				dir = filepath.Dir(args[0])
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))

			var written []string
			for _, l := range layouts {
				data, err := pipeline.Render(cmd.Context(), l, format, ropts)
				if err != nil {
					return fmt.Errorf("sentence %s: %w", l.SentenceID, err)
				}
				path := filepath.Join(dir, exportFileName(base, l, format))
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				written = append(written, path)
			}

			printSuccess("Exported %s", plural(len(written), strings.ToUpper(format)+" file"))
			for _, p := range written {
				printFile(p)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "output-format", "f", pipeline.FormatSVG, "output format: dot, svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default: next to the input)")
	cmd.Flags().StringVarP(&sentence, "sentence", "s", "", "export only the sentence with this ID")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "annotate edges with stratum and anchor offsets")
	flags.register(cmd)

	return cmd
}

// exportFileName builds <base>-<sentence id>.<ext> with the ID reduced to
// filename-safe characters.
func exportFileName(base string, l graph.Layout, ext string) string {
	id := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, l.SentenceID)
	return base + "-" + id + "." + ext
}
