package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/relgraph/pkg/colors"
	"github.com/matzehuels/relgraph/pkg/interaction"
	"github.com/matzehuels/relgraph/pkg/pipeline"
	"github.com/matzehuels/relgraph/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file (single format) or base path
	formats  string // comma-separated: svg, png, pdf
	theme    string // light or dark; empty keeps the config
	selected string // node selected by click
	focused  string // node focused in search
	hovered  string // node under the pointer
	noCache  bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var ro renderOpts
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render a graph to SVG, PNG or PDF",
		Long: `Render a graph to SVG, PNG or PDF.

Graphs without node positions are laid out first. The interaction state
decides which node is highlighted and where the camera points: a search
focus (--focus) wins over a selection (--select). --hover draws the hover
label of one more node.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], ro, opts)
		},
	}

	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file (single format) or base path (default: <input>.<format>)")
	cmd.Flags().StringVarP(&ro.formats, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().StringVar(&ro.theme, "theme", "", "color theme: light, dark (default from config)")
	cmd.Flags().StringVar(&ro.selected, "select", "", "selected node id")
	cmd.Flags().StringVar(&ro.focused, "focus", "", "search-focused node id")
	cmd.Flags().StringVar(&ro.hovered, "hover", "", "hovered node id")
	cmd.Flags().BoolVar(&ro.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.Engine, "engine", "", "layout engine for graphs without positions: neato (default), fdp, sfdp, circo")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "seed for generated node colors")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "frame width (default from config)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "frame height (default from config)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG pixel ratio")

	return cmd
}

// mergeFlags overlays explicitly set flag values on the config options.
func (c *CLI) mergeFlags(cmd *cobra.Command, flags pipeline.Options, theme string) (pipeline.Options, error) {
	opts := c.pipelineOptions()
	if cmd.Flags().Changed("engine") {
		opts.Engine = flags.Engine
	}
	if cmd.Flags().Changed("seed") {
		opts.Seed = flags.Seed
	}
	if cmd.Flags().Changed("width") {
		opts.Width = flags.Width
	}
	if cmd.Flags().Changed("height") {
		opts.Height = flags.Height
	}
	if cmd.Flags().Lookup("scale") != nil {
		opts.Scale = flags.Scale
	}
	if theme != "" {
		mode, err := colors.ParseMode(theme)
		if err != nil {
			return opts, err
		}
		opts.Theme = mode
	}
	return opts, opts.ValidateAndSetDefaults()
}

func (c *CLI) runRender(cmd *cobra.Command, input string, ro renderOpts, flags pipeline.Options) error {
	ctx := cmd.Context()
	formats, err := parseFormats(ro.formats)
	if err != nil {
		return err
	}
	opts, err := c.mergeFlags(cmd, flags, ro.theme)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	p, err := c.load(ctx, runner, input, opts)
	if err != nil {
		return err
	}
	for _, id := range []string{ro.selected, ro.focused, ro.hovered} {
		if err := requireNode(p, id); err != nil {
			return err
		}
	}

	state := interaction.State{Selected: ro.selected, Focused: ro.focused}
	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinner(ctx, "Rendering...")
	spinner.Start()
	allCached := true
	var written []string
	for _, format := range formats {
		spinner.Update("Rendering " + string(format) + "...")
		data, hit, err := runner.Frame(ctx, p, pipeline.FrameRequest{
			State:   state,
			Hovered: ro.hovered,
			Format:  format,
		}, opts)
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("render %s: %w", format, err)
		}
		allCached = allCached && hit

		path := formatPath(input, ro.output, format, len(formats))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			spinner.StopWithError("Write failed")
			return fmt.Errorf("write output %s: %w", path, err)
		}
		written = append(written, path)
	}
	spinner.StopWithSuccess("Render complete")
	prog.done(fmt.Sprintf("Rendered %d frame(s)", len(written)))

	for _, path := range written {
		printFile(path)
	}
	printStats(p.Stats.NodeCount, p.Stats.EdgeCount, allCached)
	if inst := state.Instruction(); inst.Target != "" {
		printDetail("%s", instructionLine(inst.Target, inst.Animate))
	}
	return nil
}

// load prepares input behind a spinner.
func (c *CLI) load(ctx context.Context, runner *pipeline.Runner, input string, opts pipeline.Options) (*pipeline.Prepared, error) {
	loggerFromContext(ctx).Debug("loading", "path", input, "engine", opts.Engine, "theme", opts.Theme)
	spinner := newSpinner(ctx, "Loading "+input+"...")
	spinner.Start()
	p, err := runner.Load(ctx, input, opts)
	if err != nil {
		spinner.StopWithError("Load failed")
		return nil, fmt.Errorf("load %s: %w", input, err)
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return p, nil
}

// formatPath picks the output file for one format. With several formats an
// explicit output is treated as a base path.
func formatPath(input, output string, format render.Format, n int) string {
	ext := "." + string(format)
	if output == "" {
		return outputPath(input, "", ext)
	}
	if n == 1 {
		return output
	}
	return outputPath(output, "", ext)
}
