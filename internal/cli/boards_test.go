package cli

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/board"
	"github.com/matzehuels/tilegrid/pkg/core/grid"
	"github.com/matzehuels/tilegrid/pkg/errors"
)

func TestDerivedPath(t *testing.T) {
	tests := []struct {
		input, suffix, want string
	}{
		{"board.json", "compact", "board.compact.json"},
		{"dir/board.toml", "compact", "dir/board.compact.toml"},
		{"board", "compact", "board.compact"},
	}
	for _, tt := range tests {
		if got := derivedPath(tt.input, tt.suffix); got != tt.want {
			t.Errorf("derivedPath(%q, %q) = %q, want %q", tt.input, tt.suffix, got, tt.want)
		}
	}
}

func TestBoardFlagsApplyOnlyChanged(t *testing.T) {
	var f boardFlags
	cmd := &cobra.Command{}
	f.register(cmd)

	b := &board.Board{Cols: 8, PreventCollision: true}
	f.apply(cmd, b)
	if b.Cols != 8 || !b.PreventCollision || b.VerticalCompact != nil {
		t.Fatalf("unset flags changed the board: %+v", b)
	}

	_ = cmd.Flags().Set("cols", "6")
	_ = cmd.Flags().Set("vertical-compact", "false")
	f.apply(cmd, b)
	if b.Cols != 6 {
		t.Errorf("Cols = %d, want 6", b.Cols)
	}
	if b.Vertical() {
		t.Error("Vertical() = true, want false after --vertical-compact=false")
	}
	if !b.PreventCollision {
		t.Error("PreventCollision was reset although the flag was not set")
	}
}

func TestSelectLayout(t *testing.T) {
	base := grid.Layout{{ID: "base", W: 1, H: 1}}
	sm := grid.Layout{{ID: "sm", W: 1, H: 1}}
	b := &board.Board{
		Breakpoints: map[string]int{"sm": 0, "lg": 1000},
		Layouts:     map[string]grid.Layout{"sm": sm},
		Layout:      base,
	}

	tests := []struct {
		name     string
		flags    boardFlags
		wantName string
		wantID   grid.ID
	}{
		{"base by default", boardFlags{}, "", "base"},
		{"named breakpoint", boardFlags{breakpoint: "sm"}, "sm", "sm"},
		{"width inherits smaller layout", boardFlags{width: 1200}, "sm", "sm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, l, err := tt.flags.selectLayout(b)
			if err != nil {
				t.Fatalf("selectLayout() error: %v", err)
			}
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if len(l) != 1 || l[0].ID != tt.wantID {
				t.Errorf("layout = %v, want item %s", l, tt.wantID)
			}
		})
	}

	f := boardFlags{breakpoint: "xl"}
	if _, _, err := f.selectLayout(b); !errors.IsNotFound(err) {
		t.Errorf("unknown breakpoint error = %v, want NOT_FOUND", err)
	}
}

func TestLayoutLabel(t *testing.T) {
	if got := layoutLabel(""); got != "base layout" {
		t.Errorf("layoutLabel(\"\") = %q", got)
	}
	if got := layoutLabel("md"); got != "layout md" {
		t.Errorf("layoutLabel(\"md\") = %q", got)
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		w, h    int
		wantErr bool
	}{
		{"4x2", 4, 2, false},
		{"1x1", 1, 1, false},
		{"0x2", 0, 0, true},
		{"4", 0, 0, true},
		{"4x2x1", 0, 0, true},
		{"axb", 0, 0, true},
	}
	for _, tt := range tests {
		w, h, err := parseSize(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseSize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if w != tt.w || h != tt.h {
			t.Errorf("parseSize(%q) = %d, %d; want %d, %d", tt.in, w, h, tt.w, tt.h)
		}
	}
}
