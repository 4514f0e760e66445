package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/tilegrid/pkg/core/grid"
)

func TestPreviewCells(t *testing.T) {
	a := &grid.Item{ID: "a", X: 0, Y: 0, W: 2, H: 1}
	b := &grid.Item{ID: "b", X: 2, Y: 0, W: 1, H: 2}
	wide := &grid.Item{ID: "wide", X: 3, Y: 2, W: 4, H: 1}
	cells := previewCells(grid.Layout{a, b, wide}, 4)

	if len(cells) != 3 {
		t.Fatalf("rows = %d, want 3", len(cells))
	}
	want := [][]*grid.Item{
		{a, a, b, nil},
		{nil, nil, b, nil},
		{nil, nil, nil, wide},
	}
	for y := range want {
		for x := range want[y] {
			if cells[y][x] != want[y][x] {
				t.Errorf("cell (%d,%d) = %v, want %v", x, y, cells[y][x], want[y][x])
			}
		}
	}
}

func TestPreviewCellsOverlapKeepsFirst(t *testing.T) {
	a := &grid.Item{ID: "a", X: 0, Y: 0, W: 2, H: 1}
	b := &grid.Item{ID: "b", X: 1, Y: 0, W: 2, H: 1}
	cells := previewCells(grid.Layout{a, b}, 3)

	if cells[0][1] != a {
		t.Errorf("overlapping cell owned by %v, want a", cells[0][1])
	}
	if cells[0][2] != b {
		t.Errorf("cell (2,0) owned by %v, want b", cells[0][2])
	}
}

func TestRenderPreview(t *testing.T) {
	l := grid.Layout{
		{ID: "a", X: 0, Y: 0, W: 2, H: 1},
		{ID: "b", X: 2, Y: 0, W: 1, H: 2},
	}
	out := renderPreview(l, 4, "")

	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 2 rows plus border:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "a   b · ") {
		t.Errorf("first row = %q, want labels for a and b", lines[1])
	}
	if !strings.Contains(lines[2], "· ·   · ") {
		t.Errorf("second row = %q, want b's body between empty cells", lines[2])
	}
}

func TestRenderPreviewEmpty(t *testing.T) {
	out := renderPreview(nil, 3, "")
	if !strings.Contains(out, "· · · ") {
		t.Errorf("empty preview = %q, want one row of empty cells", out)
	}
}

func TestRenderPreviewDefaultCols(t *testing.T) {
	out := renderPreview(grid.Layout{{ID: "x", W: 1, H: 1}}, 0, "x")
	if !strings.Contains(out, strings.Repeat("· ", 11)) {
		t.Errorf("preview with zero cols should use 12 columns:\n%s", out)
	}
}

func TestTileLabel(t *testing.T) {
	tests := []struct {
		id    string
		width int
		want  string
	}{
		{"a", 4, "a   "},
		{"chart", 4, "char"},
		{"ab", 2, "ab"},
	}
	for _, tt := range tests {
		if got := tileLabel(tt.id, tt.width); got != tt.want {
			t.Errorf("tileLabel(%q, %d) = %q, want %q", tt.id, tt.width, got, tt.want)
		}
	}
}
