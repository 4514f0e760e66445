// Package board reads and writes board files.
//
// A board is everything needed to lay out one dashboard: the grid width, the
// compaction and collision settings, an optional set of responsive
// breakpoints with a layout per breakpoint, and a base layout used when no
// breakpoint layout applies.
//
// # Formats
//
// Boards are stored as JSON or TOML; the file extension selects the format.
// A JSON file may also hold a bare array of items, which is read as a board
// with only a base layout:
//
//	[{"i": "a", "x": 0, "y": 0, "w": 2, "h": 2}]
//
// The same board in TOML:
//
//	cols = 12
//	vertical_compact = true
//
//	[breakpoints]
//	sm = 0
//	lg = 1200
//
//	[[layout]]
//	i = "a"
//	x = 0
//	y = 0
//	w = 2
//	h = 2
//
//	[[layouts.lg]]
//	i = "a"
//	x = 4
//	y = 0
//	w = 4
//	h = 2
//
// # Import
//
// Use [ReadFile] to read a board from a path, or [Read] to read from any
// io.Reader. Neither validates the board; call [Board.Validate] before use.
//
// # Export
//
// Use [WriteFile] to write a board to a path, or [Write] to write to any
// io.Writer. JSON output is indented; unknown item keys read from JSON are
// written back unchanged.
package board
