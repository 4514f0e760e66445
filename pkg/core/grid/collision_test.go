package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollides(t *testing.T) {
	tests := []struct {
		name string
		a, b *Item
		want bool
	}{
		{"overlap", &Item{ID: "a", X: 0, Y: 0, W: 2, H: 2}, &Item{ID: "b", X: 1, Y: 1, W: 2, H: 2}, true},
		{"contained", &Item{ID: "a", X: 0, Y: 0, W: 4, H: 4}, &Item{ID: "b", X: 1, Y: 1, W: 1, H: 1}, true},
		{"same geometry", &Item{ID: "a", X: 3, Y: 3, W: 1, H: 1}, &Item{ID: "b", X: 3, Y: 3, W: 1, H: 1}, true},
		{"touching right edge", &Item{ID: "a", X: 0, Y: 0, W: 2, H: 2}, &Item{ID: "b", X: 2, Y: 0, W: 2, H: 2}, false},
		{"touching bottom edge", &Item{ID: "a", X: 0, Y: 0, W: 2, H: 2}, &Item{ID: "b", X: 0, Y: 2, W: 2, H: 2}, false},
		{"diagonal corner", &Item{ID: "a", X: 0, Y: 0, W: 1, H: 1}, &Item{ID: "b", X: 1, Y: 1, W: 1, H: 1}, false},
		{"far apart", &Item{ID: "a", X: 0, Y: 0, W: 1, H: 1}, &Item{ID: "b", X: 5, Y: 9, W: 1, H: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Collides(tt.a, tt.b), "Collides(a, b)")
			assert.Equal(t, tt.want, Collides(tt.b, tt.a), "Collides(b, a)")
		})
	}
}

func TestCollidesIrreflexive(t *testing.T) {
	it := &Item{ID: "a", X: 2, Y: 2, W: 3, H: 3}
	assert.False(t, Collides(it, it))
}

func TestCollidesSymmetricGrid(t *testing.T) {
	// Exhaustive over a small space of rectangles.
	var items []*Item
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			for w := 1; w < 3; w++ {
				for h := 1; h < 3; h++ {
					items = append(items, &Item{ID: "r", X: x, Y: y, W: w, H: h})
				}
			}
		}
	}
	for _, a := range items {
		for _, b := range items {
			require.Equal(t, Collides(a, b), Collides(b, a), "%v vs %v", a, b)
		}
	}
}

func TestFirstCollision(t *testing.T) {
	a := &Item{ID: "a", X: 0, Y: 0, W: 2, H: 2}
	b := &Item{ID: "b", X: 1, Y: 0, W: 2, H: 2}
	c := &Item{ID: "c", X: 5, Y: 5, W: 1, H: 1}
	target := &Item{ID: "p", X: 1, Y: 1, W: 1, H: 1}

	assert.Same(t, a, FirstCollision(Layout{a, b, c}, target))
	assert.Same(t, b, FirstCollision(Layout{b, a, c}, target))
	assert.Nil(t, FirstCollision(Layout{c}, target))
	assert.Nil(t, FirstCollision(nil, target))
	assert.Nil(t, FirstCollision(Layout{a}, a), "an item never collides with itself")
}

func TestAllCollisions(t *testing.T) {
	a := &Item{ID: "a", X: 0, Y: 0, W: 2, H: 2}
	b := &Item{ID: "b", X: 1, Y: 0, W: 2, H: 2}
	c := &Item{ID: "c", X: 5, Y: 5, W: 1, H: 1}
	target := &Item{ID: "p", X: 1, Y: 1, W: 1, H: 1}

	got := AllCollisions(Layout{b, c, a}, target)
	require.Len(t, got, 2)
	assert.Same(t, b, got[0])
	assert.Same(t, a, got[1])

	assert.Empty(t, AllCollisions(Layout{c}, target))
	assert.Equal(t, Layout{b}, AllCollisions(Layout{a, b}, a), "an item never collides with itself")
	assert.Len(t, AllCollisions(Layout{a, b}, a.Clone()), 2, "a clone is a different item and overlaps the original")
}

func TestOverlaps(t *testing.T) {
	a := &Item{ID: "a", X: 0, Y: 0, W: 2, H: 2}
	b := &Item{ID: "b", X: 1, Y: 1, W: 2, H: 2}
	s := &Item{ID: "s", X: 0, Y: 0, W: 3, H: 3, Static: true}

	pairs := Overlaps(Layout{a, b, s})
	require.Len(t, pairs, 1)
	assert.Same(t, a, pairs[0][0])
	assert.Same(t, b, pairs[0][1])

	b.Y = 2
	assert.Empty(t, Overlaps(Layout{a, b, s}))
}
