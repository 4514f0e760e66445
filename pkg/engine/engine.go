// Package engine runs layout operations for the CLI and the HTTP server.
//
// The core packages (grid, compact, move, responsive) are pure functions over
// a layout. This package adds what both entry points need around them:
// validation, option defaults, result caching, drag and resize events, and
// observability hooks. Keeping it here gives the CLI and the server the same
// behavior for the same request.
//
// # Usage
//
//	runner := engine.NewRunner(cache, nil, logger)
//	opts := engine.Options{Cols: 12, VerticalCompact: true}
//
//	// Compact a layout
//	layout, hit, err := runner.Compact(ctx, layout, opts)
//
//	// Move an item as the user would
//	res, err := runner.Move(ctx, layout, engine.MoveRequest{ID: "a", Y: 3}, opts)
//
//	// Apply a drag event from a front end
//	res, err := runner.Apply(ctx, layout, engine.Event{Type: engine.EventDragMove, ID: "a", X: 2, Y: 0}, opts)
//
// All operations mutate the caller's items in place and preserve the order
// of the layout slice.
package engine

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tilegrid/pkg/cache"
	"github.com/matzehuels/tilegrid/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultCols is the grid width used when a board does not set one.
	DefaultCols = 12

	// MaxCols bounds the grid width accepted from requests.
	MaxCols = 1024

	// MaxRows bounds how far down an item may extend. Items in request
	// layouts must end at or above it; drag and resize targets are clamped
	// to it.
	MaxRows = 100_000
)

// =============================================================================
// Options - Engine Configuration
// =============================================================================

// Options configures layout operations.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Cols is the number of grid columns. Drag and resize events are clamped
	// to it.
	Cols int `json:"cols,omitempty"`

	// VerticalCompact pulls items up as far as they fit.
	VerticalCompact bool `json:"vertical_compact"`

	// PreventCollision rejects moves and resizes that would overlap another
	// item instead of pushing it away.
	PreventCollision bool `json:"prevent_collision,omitempty"`

	// CompactAfterMove compacts after Move even when VerticalCompact is off,
	// so that pushed items still settle without overlap.
	CompactAfterMove bool `json:"compact_after_move,omitempty"`

	// DisableDrag and DisableResize are the layout-wide defaults for items
	// without an explicit isDraggable or isResizable.
	DisableDrag   bool `json:"disable_drag,omitempty"`
	DisableResize bool `json:"disable_resize,omitempty"`

	// Refresh skips the cache lookup for Compact. The result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// SetDefaults fills in zero values.
func (o *Options) SetDefaults() {
	if o.Cols == 0 {
		o.Cols = DefaultCols
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate applies defaults and checks the options.
func (o *Options) Validate() error {
	o.SetDefaults()
	if o.Cols < 0 || o.Cols > MaxCols {
		return errors.New(errors.ErrCodeInvalidInput, "cols must be between 1 and %d, got %d", MaxCols, o.Cols)
	}
	return nil
}

// CompactKeyOpts returns cache key options for compaction.
func (o *Options) CompactKeyOpts() cache.CompactKeyOpts {
	return cache.CompactKeyOpts{
		VerticalCompact: o.VerticalCompact,
		Cols:            o.Cols,
	}
}
