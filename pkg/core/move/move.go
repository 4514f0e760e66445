// Package move relocates a single grid item and resolves the collisions the
// move causes.
//
// # Cascades
//
// [Element] puts an item at its target cell, then pushes every item it now
// overlaps out of the way. Pushed items are moved with the same routine, so
// one drag can ripple through the layout. Each call tracks the items it has
// already moved; an item is pushed at most once per top-level call, which
// bounds the cascade by the number of items.
//
// Collisions are resolved nearest first: candidates are taken in row-major
// order, reversed when the item moves up.
//
// # User Actions
//
// When the top-level move is a user action, a pushed item first tries to
// leapfrog above the item that hit it. The leapfrog only applies when the
// spot above is free in the whole layout. Otherwise, and always inside a
// cascade, the pushed item moves down one row and cascades further.
//
// # Static Items
//
// Static items never move. A moving item that hits one yields instead and is
// pushed away from it.
//
// # Preventing Collisions
//
// With preventCollision set the move is all or nothing: if the target cell
// overlaps anything, the item is restored to its previous position and the
// layout is left untouched.
//
// Moves settle within the call, so [grid.Item.Moved] is false on every item
// of the layout when Element or AwayFromCollision returns.
//
// Element does not compact. Callers typically run compact.Compact afterwards
// to settle the items that were pushed.
package move

import (
	"slices"

	"github.com/matzehuels/tilegrid/pkg/core/grid"
)

// Element moves it to column x (nil keeps the current column) and row y,
// cascading collisions to other items. It returns l, mutated in place.
func Element(l grid.Layout, it *grid.Item, x *int, y int, userAction, preventCollision bool) grid.Layout {
	c := newCascade(l)
	c.element(it, x, y, userAction, preventCollision)
	return settle(l)
}

// AwayFromCollision moves itemToMove out of collidesWith, either above it
// (user actions only, when there is room) or one row down.
func AwayFromCollision(l grid.Layout, collidesWith, itemToMove *grid.Item, userAction bool) grid.Layout {
	c := newCascade(l)
	c.away(collidesWith, itemToMove, userAction)
	return settle(l)
}

func settle(l grid.Layout) grid.Layout {
	for _, it := range l {
		it.Moved = false
	}
	return l
}

// cascade holds the state of one top-level move.
type cascade struct {
	layout  grid.Layout
	visited map[*grid.Item]struct{}
}

func newCascade(l grid.Layout) *cascade {
	return &cascade{layout: l, visited: make(map[*grid.Item]struct{}, len(l))}
}

// element reports whether the item ended up at the requested target.
func (c *cascade) element(it *grid.Item, x *int, y int, userAction, preventCollision bool) bool {
	if it.Static {
		return false
	}

	movingUp := y < it.Y
	oldX, oldY := it.X, it.Y
	_, wasVisited := c.visited[it]

	if x != nil {
		it.X = *x
	}
	it.Y = y
	c.visited[it] = struct{}{}

	sorted := grid.SortRowMajor(c.layout)
	if movingUp {
		slices.Reverse(sorted)
	}
	collisions := grid.AllCollisions(sorted, it)

	if preventCollision && len(collisions) > 0 {
		it.X, it.Y = oldX, oldY
		if !wasVisited {
			delete(c.visited, it)
		}
		return false
	}

	for _, other := range collisions {
		if _, done := c.visited[other]; done {
			continue
		}
		// Only swap with something the item substantially overlaps from
		// below: more than a quarter of its height.
		if it.Y > other.Y && 4*(it.Y-other.Y) > other.H {
			continue
		}
		if other.Static {
			c.away(other, it, userAction)
		} else {
			c.away(it, other, userAction)
		}
	}
	return true
}

func (c *cascade) away(collidesWith, itemToMove *grid.Item, userAction bool) {
	// Only the top-level collision may leapfrog; nested moves are never
	// user actions.
	if userAction {
		above := &grid.Item{
			ID: "-1",
			X:  itemToMove.X,
			Y:  max(collidesWith.Y-itemToMove.H, 0),
			W:  itemToMove.W,
			H:  itemToMove.H,
		}
		if grid.FirstCollision(c.layout, above) == nil {
			c.element(itemToMove, nil, above.Y, false, false)
			return
		}
	}
	c.element(itemToMove, nil, itemToMove.Y+1, false, false)
}
