package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/board"
	"github.com/matzehuels/tilegrid/pkg/core/grid"
	"github.com/matzehuels/tilegrid/pkg/engine"
	"github.com/matzehuels/tilegrid/pkg/errors"
)

// moveCommand creates the move command.
func (c *CLI) moveCommand() *cobra.Command {
	var (
		output  string
		x, y    int
		compact bool
		dryRun  bool
		flags   boardFlags
	)

	cmd := &cobra.Command{
		Use:   "move [board] [item]",
		Short: "Move a tile as if the user dragged it",
		Long: `Move a tile as if the user dragged it to a new cell.

Tiles in the way are pushed aside: a pushed tile first tries to jump above
the moved one, otherwise it moves down and pushes further. Static tiles never
move. With --prevent-collision the move is rejected if the target cell is
occupied.

The board file is rewritten unless --output or --dry-run is given.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("x") && !cmd.Flags().Changed("y") {
				return fmt.Errorf("at least one of --x and --y is required")
			}
			b, err := flags.loadBoard(cmd, args[0])
			if err != nil {
				return err
			}
			var target moveTarget
			if cmd.Flags().Changed("x") {
				target.x = &x
			}
			if cmd.Flags().Changed("y") {
				target.y = &y
			}
			return c.runMove(cmd, args[0], b, grid.ID(args[1]), target, &flags, compact, output, dryRun)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite the board)")
	cmd.Flags().IntVar(&x, "x", 0, "target column (default: keep)")
	cmd.Flags().IntVar(&y, "y", 0, "target row (default: keep)")
	cmd.Flags().BoolVar(&compact, "compact", false, "compact afterwards even when vertical compaction is off")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "preview the result without writing it")
	flags.register(cmd)

	return cmd
}

// moveTarget holds the coordinates given on the command line; nil keeps the
// tile's current value.
type moveTarget struct {
	x, y *int
}

// runMove applies the move to the selected layout and writes the board.
func (c *CLI) runMove(cmd *cobra.Command, input string, b *board.Board, id grid.ID, target moveTarget, flags *boardFlags, compactAfter bool, output string, dryRun bool) error {
	name, l, err := flags.selectLayout(b)
	if err != nil {
		return err
	}
	it := l.Find(id)
	if it == nil {
		return errors.New(errors.ErrCodeItemNotFound, "no tile %q in the %s", id, layoutLabel(name))
	}

	req := engine.MoveRequest{ID: id, X: target.x, Y: it.Y}
	if target.y != nil {
		req.Y = *target.y
	}

	runner := engine.NewRunner(nil, nil, c.Logger)
	opts := b.Options()
	opts.CompactAfterMove = compactAfter

	res, err := runner.Move(cmd.Context(), l, req, opts)
	if err != nil {
		return err
	}

	if !res.Changed {
		printWarning("%s did not move", id)
	} else {
		printSuccess("Moved %s to (%d, %d) in the %s", id, res.Item.X, res.Item.Y, layoutLabel(name))
		if res.Displaced > 0 {
			printDetail("%d other tile(s) moved", res.Displaced)
		}
	}
	fmt.Println(renderPreview(l, opts.Cols, id))

	return saveEdit(input, output, b, dryRun)
}

// saveEdit writes an edited board unless this is a dry run.
func saveEdit(input, output string, b *board.Board, dryRun bool) error {
	if dryRun {
		printInfo("Dry run, nothing written")
		return nil
	}
	if output == "" {
		output = input
	}
	if err := board.WriteFile(output, b); err != nil {
		return err
	}
	printFile(output)
	return nil
}
