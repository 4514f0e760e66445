package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/tilegrid/pkg/core/grid"
	"github.com/matzehuels/tilegrid/pkg/engine"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestPlay(l grid.Layout) PlayModel {
	return NewPlayModel(context.Background(), engine.NewRunner(nil, nil, nil), l,
		engine.Options{Cols: 4, VerticalCompact: true}, "test")
}

func press(m PlayModel, msgs ...tea.Msg) (PlayModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(PlayModel)
	}
	return m, cmd
}

func TestPlayModelSelection(t *testing.T) {
	m := newTestPlay(grid.Layout{
		{ID: "a", X: 0, Y: 0, W: 1, H: 1},
		{ID: "b", X: 1, Y: 0, W: 1, H: 1},
	})

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Selected().ID != "b" {
		t.Errorf("after tab selected %s, want b", m.Selected().ID)
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Selected().ID != "a" {
		t.Errorf("tab should wrap around, selected %s", m.Selected().ID)
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.Selected().ID != "b" {
		t.Errorf("shift+tab should wrap backwards, selected %s", m.Selected().ID)
	}
}

func TestPlayModelDragPushes(t *testing.T) {
	l := grid.Layout{
		{ID: "a", X: 0, Y: 0, W: 1, H: 1},
		{ID: "b", X: 1, Y: 0, W: 1, H: 1},
	}
	m := newTestPlay(l)

	m, _ = press(m, runes("l"))
	a, b := l.Find("a"), l.Find("b")
	if a.X != 1 || a.Y != 0 {
		t.Errorf("a = %v, want (1,0)", a)
	}
	if b.X != 1 || b.Y != 1 {
		t.Errorf("b = %v, want (1,1)", b)
	}
	if !strings.Contains(m.Status, "1 other tile(s) moved") {
		t.Errorf("status = %q", m.Status)
	}

	// Moving a down onto b swaps them.
	_, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	if a.Y != 1 || b.Y != 0 {
		t.Errorf("after down a = %v, b = %v; want swapped rows", a, b)
	}
}

func TestPlayModelResize(t *testing.T) {
	l := grid.Layout{
		{ID: "a", X: 0, Y: 0, W: 1, H: 1},
		{ID: "b", X: 1, Y: 0, W: 1, H: 1},
	}
	m := newTestPlay(l)

	m, _ = press(m, runes("L"))
	a, b := l.Find("a"), l.Find("b")
	if a.W != 2 {
		t.Errorf("a.W = %d, want 2", a.W)
	}
	if b.Y != 1 {
		t.Errorf("b.Y = %d, want 1 after a grew into it", b.Y)
	}

	// Width never drops below one.
	_, _ = press(m, runes("H"), runes("H"), runes("H"))
	if a.W != 1 {
		t.Errorf("a.W = %d, want 1", a.W)
	}
}

func TestPlayModelStaticUnchanged(t *testing.T) {
	l := grid.Layout{{ID: "s", X: 0, Y: 0, W: 1, H: 1, Static: true}}
	m := newTestPlay(l)

	m, _ = press(m, runes("l"))
	if l[0].X != 0 {
		t.Errorf("static tile moved to %v", l[0])
	}
	if !strings.Contains(m.Status, "unchanged") {
		t.Errorf("status = %q, want unchanged", m.Status)
	}
}

func TestPlayModelQuitAndSave(t *testing.T) {
	l := grid.Layout{{ID: "a", W: 1, H: 1}}

	m, cmd := press(newTestPlay(l), runes("q"))
	if cmd == nil || m.Saved {
		t.Errorf("q: cmd = %v, saved = %v; want quit without saving", cmd, m.Saved)
	}

	m, cmd = press(newTestPlay(l), runes("s"))
	if cmd == nil || !m.Saved {
		t.Errorf("s: cmd = %v, saved = %v; want quit with saving", cmd, m.Saved)
	}
}

func TestPlayModelEmptyLayout(t *testing.T) {
	m := newTestPlay(nil)
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyTab}, runes("l"))
	if cmd != nil {
		t.Error("keys on an empty layout should be ignored")
	}
	if m.Selected() != nil {
		t.Error("Selected() should be nil for an empty layout")
	}
	if !strings.Contains(m.View(), "layout is empty") {
		t.Error("View() should mention the empty layout")
	}
}
