package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/relgraph/pkg/graph"
	"github.com/matzehuels/relgraph/pkg/pipeline"
)

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		theme   string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute node positions and colors for a graph",
		Long: `Compute node positions and colors for a graph.

The layout command takes a graph file without positions, runs a Graphviz
force layout over it and assigns theme colors to uncolored nodes. The
output is graph JSON with x/y set, ready for 'render' and 'serve' without
another layout pass.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			merged, err := c.mergeFlags(cmd, opts, theme)
			if err != nil {
				return err
			}
			input := args[0]

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			p, err := c.load(ctx, runner, input, merged)
			if err != nil {
				return err
			}

			path := outputPath(input, output, ".layout.json")
			if err := graph.WriteFile(p.Graph, path); err != nil {
				return fmt.Errorf("write output %s: %w", path, err)
			}

			printSuccess("Layout complete")
			printFile(path)
			printStats(p.Stats.NodeCount, p.Stats.EdgeCount, p.LayoutHit)
			printNewline()
			printNextStep("Render", appName+" render "+path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&theme, "theme", "", "color theme for generated colors: light, dark")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.Engine, "engine", "", "layout engine: neato (default), fdp, sfdp, circo")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "seed for generated node colors")

	return cmd
}
