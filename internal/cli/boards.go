package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/board"
	"github.com/matzehuels/tilegrid/pkg/core/grid"
)

// boardFlags override board file settings from the command line. Only flags
// the user actually set are applied.
type boardFlags struct {
	cols             int
	verticalCompact  bool
	preventCollision bool
	breakpoint       string
	width            int
}

// register adds the override flags to cmd.
func (f *boardFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.cols, "cols", 0, "number of grid columns (default: board value or 12)")
	cmd.Flags().BoolVar(&f.verticalCompact, "vertical-compact", true, "pull tiles up as far as they fit")
	cmd.Flags().BoolVar(&f.preventCollision, "prevent-collision", false, "reject edits that would overlap another tile")
	cmd.Flags().StringVarP(&f.breakpoint, "breakpoint", "b", "", "edit the layout of this breakpoint")
	cmd.Flags().IntVar(&f.width, "width", 0, "pick the breakpoint layout for this viewport width")
}

// apply copies the flags the user set onto b.
func (f *boardFlags) apply(cmd *cobra.Command, b *board.Board) {
	if cmd.Flags().Changed("cols") {
		b.Cols = f.cols
	}
	if cmd.Flags().Changed("vertical-compact") {
		v := f.verticalCompact
		b.VerticalCompact = &v
	}
	if cmd.Flags().Changed("prevent-collision") {
		b.PreventCollision = f.preventCollision
	}
}

// loadBoard reads a board file, applies the flag overrides and validates it.
func (f *boardFlags) loadBoard(cmd *cobra.Command, path string) (*board.Board, error) {
	b, err := board.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f.apply(cmd, b)
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// selectLayout picks the layout a command works on: the named breakpoint,
// the breakpoint active at --width, or the base layout. The returned name
// is empty for the base layout.
func (f *boardFlags) selectLayout(b *board.Board) (string, grid.Layout, error) {
	if f.breakpoint != "" {
		l, err := b.Select(f.breakpoint)
		return f.breakpoint, l, err
	}
	if f.width > 0 && len(b.Breakpoints) > 0 {
		matches, err := b.Matches(f.width)
		if err != nil {
			return "", nil, err
		}
		res, err := b.LayoutFor(matches)
		if err != nil {
			return "", nil, err
		}
		return res.Active, res.Layout, nil
	}
	return "", b.Layout, nil
}

// layoutLabel names a selected layout for output.
func layoutLabel(name string) string {
	if name == "" {
		return "base layout"
	}
	return "layout " + name
}

// derivedPath returns input with suffix inserted before the extension,
// e.g. board.json -> board.compact.json.
func derivedPath(input, suffix string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "." + suffix + ext
}
