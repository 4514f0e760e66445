package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/core/grid"
)

// showCommand creates the show command.
func (c *CLI) showCommand() *cobra.Command {
	var (
		highlight string
		flags     boardFlags
	)

	cmd := &cobra.Command{
		Use:   "show [board]",
		Short: "Preview a layout in the terminal",
		Long: `Preview a layout in the terminal.

Each grid column is drawn two characters wide and each tile is labeled with
its id on its first row. Static tiles are dimmed. Use --breakpoint or --width
to pick a breakpoint layout instead of the base layout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := flags.loadBoard(cmd, args[0])
			if err != nil {
				return err
			}
			name, l, err := flags.selectLayout(b)
			if err != nil {
				return err
			}
			opts := b.Options()
			opts.SetDefaults()

			fmt.Println(StyleTitle.Render(args[0]) + " " + StyleDim.Render(layoutLabel(name)))
			fmt.Println(renderPreview(l, opts.Cols, grid.ID(highlight)))
			printDetail("%d tiles · %d rows · %d columns", len(l), l.Height(), opts.Cols)
			if overlaps := grid.Overlaps(l); len(overlaps) > 0 {
				printWarning("%d overlapping pair(s), run %s to fix", len(overlaps), styleCommand.Render(appName+" compact"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&highlight, "highlight", "", "highlight the tile with this id")
	flags.register(cmd)

	return cmd
}
