package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/relgraph/pkg/errors"
	"github.com/matzehuels/relgraph/pkg/graph"
	"github.com/matzehuels/relgraph/pkg/interaction"
)

// searchCommand creates the search command.
func (c *CLI) searchCommand() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "search [graph.json]",
		Short: "Search node labels",
		Long: `Search node labels.

Without --query an interactive search opens: type to filter, move through
results with the arrow keys to focus a node and press enter to select it.
The camera instruction the viewer would follow is shown as you go.

Matching is a case-insensitive substring match on labels, falling back to
ids. At most 10 nodes are listed; the rest are counted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graph.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}
			if cmd.Flags().Changed("query") {
				return printSearch(g, query)
			}
			return c.runSearchTUI(g)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "search once and print the results")
	return cmd
}

// printSearch prints the results for one query.
func printSearch(g *graph.Graph, query string) error {
	if err := errors.ValidateQuery(query); err != nil {
		return err
	}
	results := interaction.NewCoordinator(nil).PostSearchResult(g.Search(query))

	matches := 0
	for _, r := range results {
		if r.Selectable() {
			matches++
		}
		matches += r.Omitted
	}
	if matches == 0 {
		printInfo("No matches for %q", query)
		return nil
	}
	printInfo("%d match(es) for %q", matches, query)
	for _, r := range results {
		if !r.Selectable() {
			printDetail("%s", r.Message)
			continue
		}
		fmt.Fprintln(out, "  "+candidateLine(r))
	}
	return nil
}

// candidateLine formats a node result as "id  label".
func candidateLine(r interaction.Candidate) string {
	line := StyleHighlight.Render(r.ID)
	if r.Label != "" && r.Label != r.ID {
		line += "  " + StyleDim.Render(r.Label)
	}
	return line
}

func (c *CLI) runSearchTUI(g *graph.Graph) error {
	final, err := tea.NewProgram(newSearchModel(g)).Run()
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	m, ok := final.(searchModel)
	if !ok || m.coord.Value() == nil {
		return nil
	}
	n, _ := g.Node(m.coord.Value().ID)
	printSuccess("Selected %s", StyleHighlight.Render(n.ID))
	if n.DisplayLabel() != n.ID {
		printDetail("%s", n.DisplayLabel())
	}
	return nil
}
