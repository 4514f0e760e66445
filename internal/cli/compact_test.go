package cli

import (
	"context"
	"testing"

	"github.com/matzehuels/tilegrid/pkg/board"
	"github.com/matzehuels/tilegrid/pkg/cache"
	"github.com/matzehuels/tilegrid/pkg/core/grid"
	"github.com/matzehuels/tilegrid/pkg/engine"
)

func newTestBoard() *board.Board {
	return &board.Board{
		Cols:        4,
		Breakpoints: map[string]int{"sm": 0, "md": 768, "lg": 1200},
		Layouts: map[string]grid.Layout{
			"md": {{ID: "m", X: 1, Y: 5, W: 2, H: 2}},
			"lg": {},
		},
		Layout: grid.Layout{
			{ID: "a", X: 0, Y: 2, W: 1, H: 1},
			{ID: "b", X: 0, Y: 4, W: 2, H: 1},
		},
	}
}

func TestCompactBoard(t *testing.T) {
	b := newTestBoard()
	res, err := compactBoard(context.Background(), engine.NewRunner(nil, nil, nil), b)
	if err != nil {
		t.Fatalf("compactBoard() error: %v", err)
	}

	if res.layouts != 2 {
		t.Errorf("layouts = %d, want 2 (empty layouts are skipped)", res.layouts)
	}
	if res.items != 3 {
		t.Errorf("items = %d, want 3", res.items)
	}
	if res.height != 2 {
		t.Errorf("height = %d, want 2", res.height)
	}
	if res.cached {
		t.Error("cached = true without a cache")
	}

	if a := b.Layout.Find("a"); a.Y != 0 {
		t.Errorf("a.Y = %d, want 0", a.Y)
	}
	if bb := b.Layout.Find("b"); bb.Y != 1 {
		t.Errorf("b.Y = %d, want 1", bb.Y)
	}
	if m := b.Layouts["md"].Find("m"); m.X != 1 || m.Y != 0 {
		t.Errorf("m = %v, want (1,0)", m)
	}
}

func TestCompactBoardCached(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := engine.NewRunner(fc, nil, nil)
	ctx := context.Background()

	first, err := compactBoard(ctx, runner, newTestBoard())
	if err != nil {
		t.Fatalf("first compactBoard() error: %v", err)
	}
	if first.cached {
		t.Error("first run reported cached")
	}

	b := newTestBoard()
	second, err := compactBoard(ctx, runner, b)
	if err != nil {
		t.Fatalf("second compactBoard() error: %v", err)
	}
	if !second.cached {
		t.Error("second run of the same board should be served from the cache")
	}
	if bb := b.Layout.Find("b"); bb.Y != 1 {
		t.Errorf("cached b.Y = %d, want 1", bb.Y)
	}
}

func TestCompactBoardEmpty(t *testing.T) {
	res, err := compactBoard(context.Background(), engine.NewRunner(nil, nil, nil), &board.Board{})
	if err != nil {
		t.Fatalf("compactBoard() error: %v", err)
	}
	if res.layouts != 0 || res.cached {
		t.Errorf("empty board result = %+v", res)
	}
}
