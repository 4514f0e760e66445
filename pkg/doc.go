// Package pkg provides the core libraries for Tilegrid grid layouts.
//
// # Overview
//
// Tilegrid arranges rectangular tiles on a fixed-width grid the way
// dashboard builders do: tiles are packed upward, dragged tiles push the
// ones in their way aside, and each viewport breakpoint may carry its own
// layout. The pkg directory is organized into these areas:
//
//  1. [core] - Domain logic (grid items, collisions, compaction, moves, breakpoints)
//  2. [engine] - Orchestration (options, events, caching, observability)
//  3. [board] - Board files (JSON and TOML)
//  4. [cache] - Result caching (file, Redis, null)
//  5. [errors] - Error codes shared by the CLI and the HTTP API
//
// # Architecture
//
// The typical data flow:
//
//	Board file / HTTP request
//	         ↓
//	    [board] package (decode and validate)
//	         ↓
//	    [engine] package (options, cache lookup, hooks)
//	         ↓
//	    [core/compact], [core/move], [core/responsive]
//	         ↓
//	    Updated layout (written back or returned as JSON)
//
// # Quick Start
//
// Compact a layout and move a tile:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/tilegrid/pkg/core/grid"
//	    "github.com/matzehuels/tilegrid/pkg/engine"
//	)
//
//	l := grid.Layout{
//	    {ID: "a", X: 0, Y: 3, W: 2, H: 1},
//	    {ID: "b", X: 0, Y: 5, W: 1, H: 2},
//	}
//	runner := engine.NewRunner(nil, nil, nil)
//	opts := engine.Options{Cols: 12, VerticalCompact: true}
//
//	// a moves to row 0, b to row 1
//	runner.Compact(context.Background(), l, opts)
//
//	// dragging a below b swaps them
//	runner.Move(context.Background(), l, engine.MoveRequest{ID: "a", Y: 3}, opts)
//
// # Core Packages
//
// [core/grid] - Items, layouts, collision tests and validation. A layout is
// an ordered slice of item pointers; operations mutate items in place and
// never reorder the slice.
//
// [core/compact] - Packs a layout upward (or leaves it free-form when
// vertical compaction is off) and resolves overlaps. Static tiles are
// obstacles that never move.
//
// [core/move] - Moves one item and cascades the collisions it causes. User
// moves let a pushed tile jump above the one that hit it when there is room.
//
// [core/responsive] - Orders breakpoints and picks the layout for the
// current viewport, mobile first.
//
// # Infrastructure
//
// [engine] wraps the core packages with option defaults, validation, result
// caching through [cache], and the hooks in [observability].
//
// [board] reads and writes board files: a grid configuration, a base layout
// and optional per-breakpoint layouts.
//
// [core]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/core
// [core/grid]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/core/grid
// [core/compact]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/core/compact
// [core/move]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/core/move
// [core/responsive]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/core/responsive
// [engine]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/engine
// [board]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/board
// [cache]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/observability
package pkg
