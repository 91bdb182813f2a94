package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/relgraph/pkg/colors"
	"github.com/matzehuels/relgraph/pkg/draw"
	"github.com/matzehuels/relgraph/pkg/errors"
	"github.com/matzehuels/relgraph/pkg/fonts"
	"github.com/matzehuels/relgraph/pkg/graph"
	"github.com/matzehuels/relgraph/pkg/interaction"
)

// traceCommand creates the trace command, which replays interaction events
// and prints the camera instruction after each one.
func (c *CLI) traceCommand() *cobra.Command {
	var (
		graphPath string
		drawHover bool
	)

	cmd := &cobra.Command{
		Use:   "trace [event...]",
		Short: "Replay interaction events and show camera instructions",
		Long: `Replay interaction events and show camera instructions.

Each event is kind:value where kind is select, hover, focus or change.
An empty value clears (focus: ends a search focus). A value starting with
'?' stands for an informational search entry such as "And 3 others",
which focus and change ignore.

  relgraph trace select:ada focus:babbage focus: change:babbage

With --graph every node id is checked against the graph first. Adding --draw
prints the drawing commands of the hover capsule for each camera target.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := parseEvents(args)
			if err != nil {
				return err
			}
			if drawHover && graphPath == "" {
				return errors.New(errors.ErrCodeInvalidInput, "--draw needs --graph")
			}
			var hover func(target string)
			if graphPath != "" {
				g, err := graph.ReadFile(graphPath)
				if err != nil {
					return fmt.Errorf("load %s: %w", graphPath, err)
				}
				for _, ev := range events {
					if ev.id == "" || ev.message {
						continue
					}
					if _, ok := g.Node(ev.id); !ok {
						return errors.New(errors.ErrCodeNodeNotFound, "node %q not found", ev.id)
					}
				}
				if drawHover {
					hover = c.hoverPrinter(g)
				}
			}
			runTrace(events, hover)
			return nil
		},
	}

	cmd.Flags().StringVarP(&graphPath, "graph", "g", "", "graph file to check node ids against")
	cmd.Flags().BoolVar(&drawHover, "draw", false, "print hover drawing commands for each camera target")
	return cmd
}

// traceEvent is one parsed kind:value argument.
type traceEvent struct {
	kind    string
	id      string
	message bool
}

func (e traceEvent) String() string {
	v := e.id
	if e.message {
		v = "?" + v
	}
	return e.kind + ":" + v
}

// candidate returns the search entry for focus and change events.
func (e traceEvent) candidate() *interaction.Candidate {
	switch {
	case e.message:
		return &interaction.Candidate{Kind: interaction.KindMessage, Message: e.id}
	case e.id == "":
		return nil
	default:
		return interaction.NodeCandidate(e.id)
	}
}

func parseEvents(args []string) ([]traceEvent, error) {
	events := make([]traceEvent, 0, len(args))
	for _, arg := range args {
		kind, value, ok := strings.Cut(arg, ":")
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "event %q: want kind:value", arg)
		}
		switch kind {
		case "select", "hover", "focus", "change":
		default:
			return nil, errors.New(errors.ErrCodeInvalidInput, "event %q: unknown kind %q", arg, kind)
		}
		ev := traceEvent{kind: kind, id: value}
		if strings.HasPrefix(value, "?") {
			if kind == "select" || kind == "hover" {
				return nil, errors.New(errors.ErrCodeInvalidInput, "event %q: %s takes a node id", arg, kind)
			}
			ev.id, ev.message = value[1:], true
		} else if value != "" {
			if err := errors.ValidateNodeID(value); err != nil {
				return nil, err
			}
		}
		events = append(events, ev)
	}
	return events, nil
}

// runTrace feeds events through a coordinator. Every call the camera
// receives is printed as it happens, followed by hover for non-empty
// targets when set.
func runTrace(events []traceEvent, hover func(target string)) {
	coord := interaction.NewCoordinator(interaction.FollowerFunc(func(target string, animate bool) {
		printDetail("%s", instructionLine(target, animate))
		if hover != nil && target != "" {
			hover(target)
		}
	}))

	for i, ev := range events {
		fmt.Fprintf(out, "%s %s\n", StyleDim.Render(fmt.Sprintf("%2d", i+1)), StyleValue.Render(ev.String()))
		switch ev.kind {
		case "select":
			coord.Select(ev.id)
		case "hover":
			coord.Hover(ev.id)
		case "focus":
			coord.OnFocus(ev.candidate())
		case "change":
			coord.OnChange(ev.candidate())
		}
		st := coord.State()
		printDetail("selected=%s focused=%s", orNone(st.Selected), orNone(st.Focused))
	}
}

func orNone(id string) string {
	if id == "" {
		return "-"
	}
	return id
}

// hoverPrinter returns a func that draws the hover of a node onto a
// recorder and prints the commands.
func (c *CLI) hoverPrinter(g *graph.Graph) func(string) {
	settings := c.Config.Settings()
	if settings.LabelColor.Color == "" {
		settings.LabelColor.Color = colors.LabelColor(c.Config.ThemeMode())
	}
	rec := draw.NewRecorder()
	rec.Measure = measureText

	return func(target string) {
		n, ok := g.Node(target)
		if !ok {
			return
		}
		rec.Reset()
		draw.DrawHover(rec, n.Display(), settings)
		for _, cmd := range rec.Commands {
			printDetail("    %s", cmd)
		}
	}
}

// measureText measures with the bundled Go fonts.
func measureText(font, text string) float64 {
	spec, err := fonts.ParseSpec(font)
	if err != nil {
		return 0
	}
	w, err := fonts.Measure(spec, text)
	if err != nil {
		return 0
	}
	return w
}
