package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arcstrata/pkg/pipeline"
)

// checkCommand creates the check command for reporting layout problems.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		format       string
		alternatives bool
		asJSON       bool
		strict       bool
	)

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Report crossings and dangling edges per sentence",
		Long: `Report crossings and dangling edges per sentence.

For every sentence, check counts the pairs of crossing edges, the edges
placed below the token line to avoid them, and any edge whose endpoint
names a token that does not exist. Sentences that cannot be built at all
(duplicate or reserved IDs) are reported as invalid.

With --strict, the command fails if any sentence has a dangling edge or is
invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, err := pipeline.ReadFile(ctx, args[0], format)
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}
			alternatives = c.alternatives(cmd, alternatives)

			reports := make([]pipeline.Report, len(doc.Sentences))
			problems := 0
			for i, s := range doc.Sentences {
				reports[i] = pipeline.Check(s, alternatives)
				if reports[i].Invalid != "" || len(reports[i].Dangling) > 0 {
					problems++
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(reports); err != nil {
					return err
				}
			} else {
				writeCheckTable(out, reports)
				if problems == 0 {
					printSuccess("No dangling edges in %s", plural(len(reports), "sentence"))
				} else {
					printWarning("%s with problems", plural(problems, "sentence"))
				}
			}

			if strict {
				return pipeline.StrictError(reports)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "input format: json, yaml, toml, conllu (default: from extension)")
	cmd.Flags().BoolVarP(&alternatives, "alternatives", "a", false, "include alternative (enhanced) edges")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print reports as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any sentence has problems")

	return cmd
}

func writeCheckTable(w io.Writer, reports []pipeline.Report) {
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		status := "ok"
		switch {
		case r.Invalid != "":
			status = "invalid: " + r.Invalid
		case len(r.Dangling) > 0:
			status = "dangling: " + strings.Join(r.Dangling, ", ")
		}
		rows = append(rows, []string{
			r.SentenceID,
			strconv.Itoa(r.Tokens),
			strconv.Itoa(r.Edges),
			strconv.Itoa(r.Crossings),
			strconv.Itoa(r.Below),
			strconv.Itoa(r.MaxStrata),
			status,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Sentence", "Tokens", "Edges", "Crossings", "Below", "Max", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row < 0 || row >= len(reports) {
				return lipgloss.NewStyle()
			}
			r := reports[row]
			switch {
			case col == 6 && (r.Invalid != "" || len(r.Dangling) > 0):
				return StyleWarning
			case col == 3 && r.Crossings > 0:
				return StyleNumber
			}
			return lipgloss.NewStyle()
		})
	fmt.Fprintln(w, t.Render())
}
