package cli

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/matzehuels/arcstrata/pkg/errors"
	"github.com/matzehuels/arcstrata/pkg/graph"
	"github.com/matzehuels/arcstrata/pkg/pipeline"
	"github.com/matzehuels/arcstrata/pkg/render/textarc"
)

// viewCommand creates the view command for drawing arc diagrams in the terminal.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		plain    bool
		noLabels bool
		sentence string
		flags    layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Draw arc diagrams in the terminal",
		Long: `Draw arc diagrams in the terminal.

On a terminal, view opens an interactive browser with one sentence per
page. With --plain, or when output is redirected, every sentence is
printed one after another.

Arcs above the token line are drawn in teal, arcs pushed below the line
(because they would cross another arc) in amber. Arrowheads mark the
dependent end of each edge.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			labels := !noLabels && c.config().Render.Labels
			out := cmd.OutOrStdout()
			if plain || !isTerminal(out) {
				return writePlain(cmd, out, layouts, labels, isTerminal(out))
			}
			p := tea.NewProgram(NewBrowserModel(layouts, labels), tea.WithContext(cmd.Context()), tea.WithOutput(out))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print all sentences instead of opening the browser")
	cmd.Flags().BoolVar(&noLabels, "no-labels", false, "omit edge labels")
	cmd.Flags().StringVarP(&sentence, "sentence", "s", "", "show only the sentence with this ID")
	flags.register(cmd)

	return cmd
}

func writePlain(cmd *cobra.Command, w io.Writer, layouts []graph.Layout, labels, color bool) error {
	ropts := pipeline.RenderOptions{Labels: labels}
	if color {
		ropts.Styles = textarc.DefaultStyles()
	}
	for i, l := range layouts {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "# sent_id = %s\n", l.SentenceID)
		if l.Text != "" {
			fmt.Fprintf(w, "# text = %s\n", l.Text)
		}
		data, err := pipeline.Render(cmd.Context(), l, pipeline.FormatText, ropts)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, string(data)); err != nil {
			return err
		}
	}
	return nil
}

func selectSentence(layouts []graph.Layout, id string) ([]graph.Layout, error) {
	for _, l := range layouts {
		if l.SentenceID == id {
			return []graph.Layout{l}, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "sentence %q not found", id)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
