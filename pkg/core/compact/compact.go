// Package compact closes vertical gaps in a grid layout.
//
// [Compact] visits items in row-major order and packs each non-static item
// against everything placed before it (statics first). Earlier items win
// ties, which gives a greedy top-left packing. With vertical compaction
// enabled, items also float upward into free rows; without it, items only
// move down far enough to stop overlapping.
//
// Static items are never moved. Compaction is a settling operation, so
// [grid.Item.Moved] is false on every item when it returns.
package compact

import (
	"github.com/matzehuels/tilegrid/pkg/core/grid"
)

// Compact packs l in place and returns it. The element order of the result
// is the input order, not the processing order.
func Compact(l grid.Layout, vertical bool) grid.Layout {
	obstacles := grid.Statics(l)
	for _, it := range grid.SortRowMajor(l) {
		if !it.Static {
			CompactItem(obstacles, it, vertical)
			// Later items collide with this one; statics are already in.
			obstacles = append(obstacles, it)
		}
		it.Moved = false
	}
	return l
}

// CompactItem settles a single item against obstacles and returns it.
//
// With vertical set and the item free where it stands, it rises to the
// lowest bottom edge of the obstacles above it in its columns, or to row 0
// when there are none. It then jumps directly below each obstacle it still
// overlaps until it overlaps none. Every jump strictly increases Y, so the
// loop terminates.
func CompactItem(obstacles grid.Layout, it *grid.Item, vertical bool) *grid.Item {
	if vertical && it.Y > 0 && grid.FirstCollision(obstacles, it) == nil {
		it.Y = ceiling(obstacles, it)
	}
	for {
		c := grid.FirstCollision(obstacles, it)
		if c == nil {
			break
		}
		it.Y = c.Bottom()
	}
	return it
}

// ceiling returns the highest row it can rise to without passing an
// obstacle that shares one of its columns.
func ceiling(obstacles grid.Layout, it *grid.Item) int {
	top := 0
	for _, o := range obstacles {
		if o == it || o.X >= it.Right() || it.X >= o.Right() {
			continue
		}
		if b := o.Bottom(); b <= it.Y && b > top {
			top = b
		}
	}
	return top
}
