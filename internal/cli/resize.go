package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/core/grid"
	"github.com/matzehuels/tilegrid/pkg/engine"
	"github.com/matzehuels/tilegrid/pkg/errors"
)

// resizeCommand creates the resize command.
func (c *CLI) resizeCommand() *cobra.Command {
	var (
		output string
		size   string
		dryRun bool
		flags  boardFlags
	)

	cmd := &cobra.Command{
		Use:   "resize [board] [item]",
		Short: "Resize a tile as if the user dragged its handle",
		Long: `Resize a tile as if the user dragged its resize handle.

The new size is given as WxH in grid cells, e.g. --size 4x2. It is clamped to
the tile's minW/maxW/minH/maxH bounds and to the grid width. Tiles the
resized one now overlaps are pushed down by compaction. With
--prevent-collision an overlapping resize is rejected.

The board file is rewritten unless --output or --dry-run is given.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, h, err := parseSize(size)
			if err != nil {
				return err
			}
			b, err := flags.loadBoard(cmd, args[0])
			if err != nil {
				return err
			}
			name, l, err := flags.selectLayout(b)
			if err != nil {
				return err
			}

			id := grid.ID(args[1])
			it := l.Find(id)
			if it == nil {
				return errors.New(errors.ErrCodeItemNotFound, "no tile %q in the %s", id, layoutLabel(name))
			}
			ev := engine.Event{Type: engine.EventResizeEnd, ID: id, X: it.X, Y: it.Y, W: w, H: h}

			opts := b.Options()
			res, err := engine.NewRunner(nil, nil, c.Logger).Apply(cmd.Context(), l, ev, opts)
			if err != nil {
				return err
			}
			if !res.Changed {
				printWarning("%s was not resized", id)
			} else {
				printSuccess("Resized %s to %dx%d in the %s", id, res.Item.W, res.Item.H, layoutLabel(name))
				if res.Displaced > 0 {
					printDetail("%d other tile(s) moved", res.Displaced)
				}
			}
			fmt.Println(renderPreview(l, opts.Cols, id))

			return saveEdit(args[0], output, b, dryRun)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite the board)")
	cmd.Flags().StringVarP(&size, "size", "s", "", "new size as WxH grid cells (required)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "preview the result without writing it")
	_ = cmd.MarkFlagRequired("size")
	flags.register(cmd)

	return cmd
}

// parseSize parses "WxH" into positive cell counts.
func parseSize(s string) (int, int, error) {
	var w, h int
	var rest string
	n, _ := fmt.Sscanf(s+" end", "%dx%d %s", &w, &h, &rest)
	if n != 3 || rest != "end" || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q (want WxH, e.g. 4x2)", s)
	}
	return w, h, nil
}
