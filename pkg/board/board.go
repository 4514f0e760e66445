package board

import (
	"fmt"

	"github.com/matzehuels/tilegrid/pkg/core/grid"
	"github.com/matzehuels/tilegrid/pkg/core/responsive"
	"github.com/matzehuels/tilegrid/pkg/engine"
	"github.com/matzehuels/tilegrid/pkg/errors"
)

// Board is a grid configuration with its layouts.
type Board struct {
	Cols int `json:"cols,omitempty" toml:"cols,omitempty"`

	// VerticalCompact defaults to true when unset.
	VerticalCompact  *bool `json:"vertical_compact,omitempty" toml:"vertical_compact,omitempty"`
	PreventCollision bool  `json:"prevent_collision,omitempty" toml:"prevent_collision,omitempty"`

	// Breakpoints maps breakpoint names to minimum widths.
	Breakpoints map[string]int `json:"breakpoints,omitempty" toml:"breakpoints,omitempty"`

	// Layouts holds the explicit layout of each breakpoint.
	Layouts map[string]grid.Layout `json:"layouts,omitempty" toml:"layouts,omitempty"`

	// Layout is the base layout.
	Layout grid.Layout `json:"layout,omitempty" toml:"layout,omitempty"`
}

// Vertical reports whether the board compacts vertically.
func (b *Board) Vertical() bool {
	return b.VerticalCompact == nil || *b.VerticalCompact
}

// Options returns engine options for the board.
func (b *Board) Options() engine.Options {
	return engine.Options{
		Cols:             b.Cols,
		VerticalCompact:  b.Vertical(),
		PreventCollision: b.PreventCollision,
	}
}

// Validate checks every layout and the breakpoint configuration. When Cols
// is set, items must also fit the grid width.
func (b *Board) Validate() error {
	if b.Cols < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cols must not be negative, got %d", b.Cols)
	}
	if err := b.validateLayout("base", b.Layout); err != nil {
		return err
	}

	if len(b.Breakpoints) == 0 {
		if len(b.Layouts) > 0 {
			return errors.New(errors.ErrCodeInvalidBreakpointConfig, "breakpoint layouts need a [breakpoints] table")
		}
		return nil
	}
	bps, err := responsive.New(b.Breakpoints)
	if err != nil {
		return err
	}
	if err := bps.ValidateLayouts(b.Layouts); err != nil {
		return err
	}
	for name, l := range b.Layouts {
		if err := b.validateLayout(name, l); err != nil {
			return err
		}
	}
	return nil
}

func (b *Board) validateLayout(name string, l grid.Layout) error {
	if err := grid.Validate(l); err != nil {
		return fmt.Errorf("%s layout: %w", name, err)
	}
	if b.Cols > 0 {
		if err := grid.ValidateColumns(l, b.Cols); err != nil {
			return fmt.Errorf("%s layout: %w", name, err)
		}
	}
	return nil
}

// Matches evaluates the board's breakpoints for a viewport width.
func (b *Board) Matches(width int) (map[string]bool, error) {
	bps, err := responsive.New(b.Breakpoints)
	if err != nil {
		return nil, err
	}
	return bps.Matches(width), nil
}

// LayoutFor resolves the layout for the given match signals. When no
// breakpoint layout applies, the result's Layout is the base layout and its
// Active name is empty.
func (b *Board) LayoutFor(matches map[string]bool) (responsive.Result, error) {
	if len(b.Breakpoints) == 0 {
		return responsive.Result{Layout: b.Layout}, nil
	}
	bps, err := responsive.New(b.Breakpoints)
	if err != nil {
		return responsive.Result{}, err
	}
	res := bps.Resolve(b.Layouts, matches)
	if res.Layout == nil && res.Active == "" {
		res.Layout = b.Layout
	}
	return res, nil
}

// Select returns the layout of breakpoint name, or the base layout when name
// is empty. Items are shared with the board.
func (b *Board) Select(name string) (grid.Layout, error) {
	if name == "" {
		return b.Layout, nil
	}
	l, ok := b.Layouts[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "board has no layout for breakpoint %q", name)
	}
	return l, nil
}
