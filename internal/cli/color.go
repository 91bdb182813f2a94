package cli

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/relgraph/pkg/colors"
	"github.com/matzehuels/relgraph/pkg/errors"
)

// colorCommand creates the color command, which previews generated node
// colors for a theme.
func (c *CLI) colorCommand() *cobra.Command {
	var (
		theme string
		count int
		seed  uint64
	)

	cmd := &cobra.Command{
		Use:   "color",
		Short: "Preview generated node colors",
		Long: `Preview generated node colors.

Nodes without a color get a random one suited to the theme: light themes
draw from a dark range so labels stay readable, dark themes from a light
range. The same seed always yields the same colors.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := c.Config.ThemeMode()
			if theme != "" {
				m, err := colors.ParseMode(theme)
				if err != nil {
					return err
				}
				mode = m
			}
			if count < 1 || count > 256 {
				return errors.New(errors.ErrCodeInvalidInput, "count must be between 1 and 256")
			}
			if !cmd.Flags().Changed("seed") {
				seed = uint64(time.Now().UnixNano())
			}
			printColors(mode, count, seed)
			return nil
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "", "color theme: light, dark (default from config)")
	cmd.Flags().IntVarP(&count, "count", "n", 8, "number of colors")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (default: random)")

	return cmd
}

func printColors(mode colors.Mode, count int, seed uint64) {
	rng := rand.New(rand.NewPCG(seed, seed))

	printInfo("%s theme, seed %d", mode, seed)
	printKeyValue("Background", swatch(colors.Background(mode)))
	printKeyValue("Labels", swatch(colors.LabelColor(mode)))
	printKeyValue("Edges", swatch(colors.EdgeColor(mode)))
	printNewline()
	for i := range count {
		fmt.Fprintf(out, "  %2d  %s\n", i+1, swatch(colors.RandomColor(mode, rng)))
	}
}
