// Package responsive selects which stored layout applies at the current
// viewport.
//
// Breakpoints map names to minimum widths. The caller supplies a live
// "matches" signal per breakpoint (typically a min-width media query); this
// package never observes the viewport itself and recomputes only when asked.
//
// Resolution is mobile first: among the matching breakpoints, the one with
// the largest threshold that has an explicit layout wins. A larger
// breakpoint without its own layout inherits the nearest smaller configured
// one. When no matching breakpoint has a layout the result carries none and
// the caller falls back to its base layout.
//
//	bps, err := responsive.New(map[string]int{"sm": 0, "md": 768, "lg": 1200})
//	res := bps.Resolve(layouts, map[string]bool{"sm": true, "md": true})
//	if res.Layout == nil {
//	    // use the base layout
//	}
package responsive

import (
	"slices"

	"github.com/matzehuels/tilegrid/pkg/core/grid"
	"github.com/matzehuels/tilegrid/pkg/errors"
)

// Breakpoint is a named minimum viewport width.
type Breakpoint struct {
	Name     string `json:"name"`
	MinWidth int    `json:"min_width"`
}

// Breakpoints is an immutable set of breakpoints ordered by ascending
// threshold.
type Breakpoints struct {
	ordered []Breakpoint
}

// New validates thresholds and orders them. Names must be non-empty,
// thresholds non-negative and pairwise distinct.
func New(thresholds map[string]int) (*Breakpoints, error) {
	if len(thresholds) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidBreakpointConfig, "at least one breakpoint is required")
	}

	ordered := make([]Breakpoint, 0, len(thresholds))
	byWidth := make(map[int]string, len(thresholds))
	for name, w := range thresholds {
		if name == "" {
			return nil, errors.New(errors.ErrCodeInvalidBreakpointConfig, "breakpoint name cannot be empty")
		}
		if w < 0 {
			return nil, errors.New(errors.ErrCodeInvalidBreakpointConfig, "breakpoint %q: threshold %d must not be negative", name, w)
		}
		if other, dup := byWidth[w]; dup {
			a, b := min(name, other), max(name, other)
			return nil, errors.New(errors.ErrCodeInvalidBreakpointConfig, "breakpoints %q and %q share threshold %d", a, b, w)
		}
		byWidth[w] = name
		ordered = append(ordered, Breakpoint{Name: name, MinWidth: w})
	}

	slices.SortFunc(ordered, func(a, b Breakpoint) int { return a.MinWidth - b.MinWidth })
	return &Breakpoints{ordered: ordered}, nil
}

// All returns the breakpoints in ascending threshold order.
func (b *Breakpoints) All() []Breakpoint {
	return slices.Clone(b.ordered)
}

// Names returns the breakpoint names in ascending threshold order.
func (b *Breakpoints) Names() []string {
	names := make([]string, len(b.ordered))
	for i, bp := range b.ordered {
		names[i] = bp.Name
	}
	return names
}

// Threshold returns the minimum width of name.
func (b *Breakpoints) Threshold(name string) (int, bool) {
	for _, bp := range b.ordered {
		if bp.Name == name {
			return bp.MinWidth, true
		}
	}
	return 0, false
}

// Matches evaluates min-width queries for a viewport width, the way a
// browser evaluates (min-width: Npx).
func (b *Breakpoints) Matches(width int) map[string]bool {
	m := make(map[string]bool, len(b.ordered))
	for _, bp := range b.ordered {
		m[bp.Name] = width >= bp.MinWidth
	}
	return m
}

// ValidateLayouts rejects layouts keyed by unknown breakpoints and layouts
// that fail [grid.Validate].
func (b *Breakpoints) ValidateLayouts(layouts map[string]grid.Layout) error {
	for _, name := range sortedKeys(layouts) {
		if _, ok := b.Threshold(name); !ok {
			return errors.New(errors.ErrCodeInvalidBreakpointConfig, "layout for unknown breakpoint %q", name)
		}
		if err := grid.Validate(layouts[name]); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidBreakpointConfig, err, "layout %q", name)
		}
	}
	return nil
}

// Result is the outcome of [Breakpoints.Resolve].
type Result struct {
	// Current lists the matching breakpoints, ascending by threshold.
	Current []string
	// Active names the breakpoint whose layout was selected, or "".
	Active string
	// Layout is the selected layout, or nil when none applies.
	Layout grid.Layout
}

// Resolve picks the active layout. A breakpoint counts as configured when
// layouts has an entry for it, even an empty one.
func (b *Breakpoints) Resolve(layouts map[string]grid.Layout, matches map[string]bool) Result {
	var res Result
	for _, bp := range b.ordered {
		if matches[bp.Name] {
			res.Current = append(res.Current, bp.Name)
		}
	}
	for i := len(res.Current) - 1; i >= 0; i-- {
		name := res.Current[i]
		if l, ok := layouts[name]; ok {
			res.Active = name
			res.Layout = l
			break
		}
	}
	return res
}

// Resolve builds the breakpoint set and resolves it in one call.
func Resolve(thresholds map[string]int, layouts map[string]grid.Layout, matches map[string]bool) (Result, error) {
	b, err := New(thresholds)
	if err != nil {
		return Result{}, err
	}
	return b.Resolve(layouts, matches), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
