package grid

// Collides reports whether a and b overlap. Rectangles are half-open, so
// items that merely share an edge do not collide. An item never collides
// with itself.
func Collides(a, b *Item) bool {
	if a == b {
		return false
	}
	if a.X+a.W <= b.X {
		return false // a is left of b
	}
	if a.X >= b.X+b.W {
		return false // a is right of b
	}
	if a.Y+a.H <= b.Y {
		return false // a is above b
	}
	if a.Y >= b.Y+b.H {
		return false // a is below b
	}
	return true
}

// FirstCollision returns the first item of l, in slice order, that overlaps
// it, or nil.
func FirstCollision(l Layout, it *Item) *Item {
	for _, other := range l {
		if Collides(other, it) {
			return other
		}
	}
	return nil
}

// AllCollisions returns every item of l that overlaps it, preserving slice
// order. The result is nil when nothing overlaps.
func AllCollisions(l Layout, it *Item) Layout {
	var out Layout
	for _, other := range l {
		if Collides(other, it) {
			out = append(out, other)
		}
	}
	return out
}

// Overlaps returns every pair of non-static items that overlap each other.
// A settled layout has none.
func Overlaps(l Layout) [][2]*Item {
	var out [][2]*Item
	for i, a := range l {
		if a.Static {
			continue
		}
		for _, b := range l[i+1:] {
			if !b.Static && Collides(a, b) {
				out = append(out, [2]*Item{a, b})
			}
		}
	}
	return out
}
