package grid

import "slices"

// SortRowMajor returns a copy of l ordered by (Y, X) ascending. Items at the
// same position keep their relative input order. l itself is not reordered.
func SortRowMajor(l Layout) Layout {
	out := slices.Clone(l)
	slices.SortStableFunc(out, func(a, b *Item) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return out
}

// Statics returns the static items of l in their original relative order.
func Statics(l Layout) Layout {
	var out Layout
	for _, it := range l {
		if it.Static {
			out = append(out, it)
		}
	}
	return out
}
