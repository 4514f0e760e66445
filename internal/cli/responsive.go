package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/board"
	"github.com/matzehuels/tilegrid/pkg/core/responsive"
	"github.com/matzehuels/tilegrid/pkg/engine"
	"github.com/matzehuels/tilegrid/pkg/errors"
)

// responsiveCommand creates the responsive command.
func (c *CLI) responsiveCommand() *cobra.Command {
	var (
		width   int
		preview bool
	)

	cmd := &cobra.Command{
		Use:   "responsive [board]",
		Short: "Show which breakpoint layout applies at a viewport width",
		Long: `Show which breakpoint layout applies at a viewport width.

Breakpoints are evaluated mobile first: every breakpoint whose minimum width
is at most --width matches, and the largest matching breakpoint with its own
layout wins. Breakpoints without a layout inherit the nearest smaller one.
When nothing applies, the base layout is used.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := board.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := b.Validate(); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if len(b.Breakpoints) == 0 {
				return errors.New(errors.ErrCodeInvalidBreakpointConfig, "%s defines no breakpoints", args[0])
			}

			bps, err := responsive.New(b.Breakpoints)
			if err != nil {
				return err
			}
			matches := bps.Matches(width)
			res, err := engine.NewRunner(nil, nil, c.Logger).Resolve(cmd.Context(), b.Breakpoints, b.Layouts, matches)
			if err != nil {
				return err
			}

			fmt.Println(renderBreakpoints(bps, b, matches, res.Active))
			if res.Active == "" {
				printInfo("No breakpoint layout applies at %dpx, using the base layout", width)
				res.Layout = b.Layout
			} else {
				printSuccess("Layout %s applies at %dpx", StyleHighlight.Render(res.Active), width)
			}
			if preview {
				fmt.Println(renderPreview(res.Layout, b.Options().Cols, ""))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 0, "viewport width in pixels")
	cmd.Flags().BoolVarP(&preview, "preview", "p", false, "draw the selected layout")

	return cmd
}

// inheritance describes where each breakpoint's layout comes from: its own
// entry, the nearest smaller breakpoint with one, or the base layout.
func inheritance(bps *responsive.Breakpoints, b *board.Board) map[string]string {
	out := make(map[string]string)
	source := ""
	for _, name := range bps.Names() {
		if _, ok := b.Layouts[name]; ok {
			source = name
			out[name] = "explicit"
			continue
		}
		if source == "" {
			out[name] = "base"
		} else {
			out[name] = "from " + source
		}
	}
	return out
}

// renderBreakpoints tabulates the breakpoints in ascending order.
func renderBreakpoints(bps *responsive.Breakpoints, b *board.Board, matches map[string]bool, active string) string {
	sources := inheritance(bps, b)
	all := bps.All()

	rows := make([][]string, 0, len(all))
	for _, bp := range all {
		marker := "  "
		if bp.Name == active {
			marker = "▸ "
		}
		match := "no"
		if matches[bp.Name] {
			match = "yes"
		}
		rows = append(rows, []string{marker, bp.Name, strconv.Itoa(bp.MinWidth), match, sources[bp.Name]})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Breakpoint", "Min width", "Match", "Layout").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < 0 || row >= len(all) {
				return lipgloss.NewStyle()
			}
			switch {
			case all[row].Name == active:
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			case matches[all[row].Name]:
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
			return lipgloss.NewStyle().Foreground(colorDim)
		})
	return t.Render()
}
