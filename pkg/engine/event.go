package engine

import (
	"github.com/matzehuels/tilegrid/pkg/core/grid"
	"github.com/matzehuels/tilegrid/pkg/errors"
)

// EventType names a drag or resize step sent by a front end.
type EventType string

// Drag and resize event types. A gesture is a start event, any number of
// move events and an end event; each one carries the item's full target
// geometry, so every step is applied the same way.
const (
	EventDragStart   EventType = "dragstart"
	EventDragMove    EventType = "dragmove"
	EventDragEnd     EventType = "dragend"
	EventResizeStart EventType = "resizestart"
	EventResizeMove  EventType = "resizemove"
	EventResizeEnd   EventType = "resizeend"
)

// IsDrag reports whether t is one of the drag events.
func (t EventType) IsDrag() bool {
	return t == EventDragStart || t == EventDragMove || t == EventDragEnd
}

// IsResize reports whether t is one of the resize events.
func (t EventType) IsResize() bool {
	return t == EventResizeStart || t == EventResizeMove || t == EventResizeEnd
}

// ParseEventType validates an event type name.
func ParseEventType(s string) (EventType, error) {
	t := EventType(s)
	if !t.IsDrag() && !t.IsResize() {
		return "", errors.New(errors.ErrCodeInvalidEvent, "unknown event type %q", s)
	}
	return t, nil
}

// Event is one drag or resize step for a single item.
// Drag events read X and Y; resize events read W and H.
type Event struct {
	Type EventType `json:"eventType"`
	ID   grid.ID   `json:"i"`
	X    int       `json:"x"`
	Y    int       `json:"y"`
	W    int       `json:"w"`
	H    int       `json:"h"`
}

// Validate checks the event type and id.
func (e Event) Validate() error {
	if _, err := ParseEventType(string(e.Type)); err != nil {
		return err
	}
	if e.ID == "" {
		return errors.New(errors.ErrCodeInvalidEvent, "event has no item id")
	}
	return nil
}

// MoveRequest asks for one item to be moved to a target cell.
type MoveRequest struct {
	ID grid.ID `json:"i"`
	// X is the target column; nil keeps the current column.
	X *int `json:"x,omitempty"`
	Y int  `json:"y"`
	// PreventCollision makes this move all or nothing, in addition to the
	// layout-wide option.
	PreventCollision bool `json:"prevent_collision,omitempty"`
}

// Result describes the outcome of a move or an event.
type Result struct {
	// Item is the item the request targeted.
	Item *grid.Item
	// Changed reports whether Item's position or size changed.
	Changed bool
	// Displaced counts the other items whose position changed.
	Displaced int
	// Layout is the caller's layout after the operation.
	Layout grid.Layout
}

// snapshot records every item's geometry before an operation.
type snapshot map[*grid.Item][4]int

func takeSnapshot(l grid.Layout) snapshot {
	s := make(snapshot, len(l))
	for _, it := range l {
		s[it] = [4]int{it.X, it.Y, it.W, it.H}
	}
	return s
}

func (s snapshot) changed(it *grid.Item) bool {
	return s[it] != [4]int{it.X, it.Y, it.W, it.H}
}

// displaced counts changed items other than target.
func (s snapshot) displaced(l grid.Layout, target *grid.Item) int {
	n := 0
	for _, it := range l {
		if it != target && s.changed(it) {
			n++
		}
	}
	return n
}

// clampDrag keeps a dragged item inside the grid horizontally and between
// the top edge and MaxRows.
func clampDrag(it *grid.Item, x, y, cols int) (int, int) {
	x = min(x, cols-it.W)
	y = min(y, MaxRows-it.H)
	return max(x, 0), max(y, 0)
}

// clampResize applies the item's size bounds and keeps it inside the grid.
// Sizes never drop below one cell.
func clampResize(it *grid.Item, w, h, cols int) (int, int) {
	if it.MinW > 0 {
		w = max(w, it.MinW)
	}
	if it.MaxW > 0 {
		w = min(w, it.MaxW)
	}
	if it.MinH > 0 {
		h = max(h, it.MinH)
	}
	if it.MaxH > 0 {
		h = min(h, it.MaxH)
	}
	w = min(w, cols-it.X)
	h = min(h, MaxRows-it.Y)
	return max(w, 1), max(h, 1)
}
