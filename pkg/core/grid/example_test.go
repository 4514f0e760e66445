package grid_test

import (
	"fmt"

	"github.com/matzehuels/tilegrid/pkg/core/grid"
)

func ExampleCollides() {
	a := &grid.Item{ID: "a", X: 0, Y: 0, W: 2, H: 2}
	b := &grid.Item{ID: "b", X: 1, Y: 1, W: 2, H: 2}
	c := &grid.Item{ID: "c", X: 2, Y: 0, W: 1, H: 1}

	fmt.Println(grid.Collides(a, b))
	fmt.Println(grid.Collides(a, c)) // shares an edge only
	fmt.Println(grid.Collides(a, a))
	// Output:
	// true
	// false
	// false
}

func ExampleGetItem() {
	l := grid.Layout{{ID: "chart", X: 0, Y: 0, W: 4, H: 2}}

	fmt.Println(grid.GetItem(l, "chart"))
	fmt.Println(grid.GetItem(l, "missing").IsPlaceholder())
	// Output:
	// chart(0,0 4x2)
	// true
}
