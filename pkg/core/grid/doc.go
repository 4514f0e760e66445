// Package grid defines the tile geometry shared by every layout operation.
//
// # Overview
//
// A [Layout] is an ordered slice of [*Item] pointers. Each [Item] is an
// axis-aligned rectangle on an integer grid: (X, Y) is the top-left cell
// (column, row) and W×H its size in cells. The element order of a Layout is
// the caller's insertion order and carries no geometric meaning; operations
// that need row-major order sort a copy with [SortRowMajor].
//
// Operations mutate items in place. Item identity is pointer identity: an
// item never collides with itself, while two distinct items with identical
// geometry do.
//
// # Collision Queries
//
//   - [Collides]: half-open rectangle overlap test, [x, x+w) × [y, y+h)
//   - [FirstCollision]: first overlapping item in slice order
//   - [AllCollisions]: every overlapping item, in slice order
//
// Callers control which collision is "first" by sorting the slice they pass.
//
// # Identifiers
//
// Item identifiers are strings. The JSON form also accepts numbers, stored in
// their decimal text form, so {"i": 1} and {"i": "1"} name the same item.
// [GetItem] never fails: a missing id yields a zero-area placeholder that
// callers detect with [Item.IsPlaceholder].
//
// # Validation
//
// Geometry functions are total and never return errors. Input coming from
// outside the process should pass through [Validate] first, which reports
// negative coordinates, non-positive sizes and duplicate ids as
// INVALID_LAYOUT_ITEM / INVALID_LAYOUT errors.
//
// # Concurrency
//
// Nothing in this package locks. A Layout must not be used by more than one
// goroutine while an operation runs on it.
package grid
