package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/core/grid"
	"github.com/matzehuels/tilegrid/pkg/engine"
	"github.com/matzehuels/tilegrid/pkg/errors"
)

var (
	playStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	playErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	playHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PlayModel - Interactive layout editing
// =============================================================================

// PlayModel is the bubbletea model for interactive layout editing. Every key
// press becomes a drag or resize event applied through the engine, so the
// result matches what a browser grid would do.
type PlayModel struct {
	ctx    context.Context
	runner *engine.Runner
	opts   engine.Options
	title  string

	Layout grid.Layout
	Cursor int
	Status string
	Err    error
	Saved  bool
}

// NewPlayModel creates a play model editing l in place.
func NewPlayModel(ctx context.Context, runner *engine.Runner, l grid.Layout, opts engine.Options, title string) PlayModel {
	opts.SetDefaults()
	return PlayModel{
		ctx:    ctx,
		runner: runner,
		opts:   opts,
		title:  title,
		Layout: l,
	}
}

// Selected returns the item under the cursor, or nil for an empty layout.
func (m PlayModel) Selected() *grid.Item {
	if len(m.Layout) == 0 {
		return nil
	}
	return m.Layout[m.Cursor]
}

func (m PlayModel) Init() tea.Cmd {
	return nil
}

func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "s":
		m.Saved = true
		return m, tea.Quit
	case "tab":
		if n := len(m.Layout); n > 0 {
			m.Cursor = (m.Cursor + 1) % n
		}
		return m, nil
	case "shift+tab":
		if n := len(m.Layout); n > 0 {
			m.Cursor = (m.Cursor + n - 1) % n
		}
		return m, nil
	case "c":
		_, _, err := m.runner.Compact(m.ctx, m.Layout, m.opts)
		m.setResult("compacted", err)
		return m, nil
	}

	it := m.Selected()
	if it == nil {
		return m, nil
	}

	ev := engine.Event{ID: it.ID, X: it.X, Y: it.Y, W: it.W, H: it.H}
	switch key.String() {
	case "left", "h":
		ev.Type, ev.X = engine.EventDragEnd, it.X-1
	case "right", "l":
		ev.Type, ev.X = engine.EventDragEnd, it.X+1
	case "up", "k":
		ev.Type, ev.Y = engine.EventDragEnd, it.Y-1
	case "down", "j":
		ev.Type, ev.Y = engine.EventDragEnd, it.Y+1
	case "H":
		ev.Type, ev.W = engine.EventResizeEnd, it.W-1
	case "L":
		ev.Type, ev.W = engine.EventResizeEnd, it.W+1
	case "K":
		ev.Type, ev.H = engine.EventResizeEnd, it.H-1
	case "J":
		ev.Type, ev.H = engine.EventResizeEnd, it.H+1
	default:
		return m, nil
	}

	res, err := m.runner.Apply(m.ctx, m.Layout, ev, m.opts)
	if err != nil {
		m.setResult("", err)
		return m, nil
	}
	switch {
	case !res.Changed:
		m.setResult(fmt.Sprintf("%s unchanged", it), nil)
	case res.Displaced > 0:
		m.setResult(fmt.Sprintf("%s, %d other tile(s) moved", it, res.Displaced), nil)
	default:
		m.setResult(it.String(), nil)
	}
	return m, nil
}

func (m *PlayModel) setResult(status string, err error) {
	m.Status, m.Err = status, err
}

func (m PlayModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(playHelpStyle.Render("tab select  ←↓↑→/hjkl move  HJKL resize  c compact  s save  q quit"))
	b.WriteString("\n\n")

	var selected grid.ID
	if it := m.Selected(); it != nil {
		selected = it.ID
	}
	b.WriteString(renderPreview(m.Layout, m.opts.Cols, selected))
	b.WriteString("\n")

	switch {
	case m.Err != nil:
		b.WriteString(playErrorStyle.Render(errors.UserMessage(m.Err)))
	case m.Status != "":
		b.WriteString(playStatusStyle.Render(m.Status))
	case len(m.Layout) == 0:
		b.WriteString(playStatusStyle.Render("layout is empty"))
	}
	b.WriteString("\n")

	return b.String()
}

// playCommand creates the play command.
func (c *CLI) playCommand() *cobra.Command {
	var (
		output string
		flags  boardFlags
	)

	cmd := &cobra.Command{
		Use:   "play [board]",
		Short: "Edit a layout interactively",
		Long: `Edit a layout interactively in the terminal.

Select a tile with tab, move it with the arrow keys or hjkl and resize it
with HJKL. Tiles in the way are pushed aside exactly as they would be when
dragging in a browser. Press s to save the board and q to quit without
saving.`,
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

			title := args[0] + " · " + layoutLabel(name)
			m := NewPlayModel(cmd.Context(), engine.NewRunner(nil, nil, c.Logger), l, b.Options(), title)
			finalModel, err := tea.NewProgram(m).Run()
			if err != nil {
				return err
			}

			fm, ok := finalModel.(PlayModel)
			if !ok || !fm.Saved {
				printDetail("Nothing saved")
				return nil
			}
			return saveEdit(args[0], output, b, false)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite the board)")
	flags.register(cmd)

	return cmd
}
