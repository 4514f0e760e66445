package grid

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID identifies an item within its layout.
type ID string

// String returns the id text.
func (id ID) String() string { return string(id) }

// UnmarshalJSON accepts both JSON strings and JSON numbers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("item id must be a string or a number: %s", data)
	}
	*id = ID(n.String())
	return nil
}

// UnmarshalTOML accepts TOML strings and integers.
func (id *ID) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case string:
		*id = ID(x)
	case int64:
		*id = ID(strconv.FormatInt(x, 10))
	default:
		return fmt.Errorf("item id must be a string or an integer, got %T", v)
	}
	return nil
}

// Item is one rectangular tile of a [Layout].
//
// MinW, MaxW, MinH and MaxH bound interactive resizing; zero means
// unbounded. The geometry algorithms ignore them, as they ignore the drag
// and resize capability flags.
type Item struct {
	ID ID  `json:"i" toml:"i"`
	X  int `json:"x" toml:"x"`
	Y  int `json:"y" toml:"y"`
	W  int `json:"w" toml:"w"`
	H  int `json:"h" toml:"h"`

	Static bool `json:"static,omitempty" toml:"static,omitempty"`

	// Moved is kept for interchange only. Operations track visited items
	// per call and always leave Moved false.
	Moved bool `json:"moved,omitempty" toml:"moved,omitempty"`

	IsDraggable *bool `json:"isDraggable,omitempty" toml:"is_draggable,omitempty"`
	IsResizable *bool `json:"isResizable,omitempty" toml:"is_resizable,omitempty"`

	MinW int `json:"minW,omitempty" toml:"min_w,omitempty"`
	MaxW int `json:"maxW,omitempty" toml:"max_w,omitempty"`
	MinH int `json:"minH,omitempty" toml:"min_h,omitempty"`
	MaxH int `json:"maxH,omitempty" toml:"max_h,omitempty"`

	DragIgnoreFrom string `json:"dragIgnoreFrom,omitempty" toml:"drag_ignore_from,omitempty"`
	DragAllowFrom  string `json:"dragAllowFrom,omitempty" toml:"drag_allow_from,omitempty"`

	// Extra holds unknown JSON keys so they survive a decode/encode cycle.
	Extra map[string]json.RawMessage `json:"-" toml:"-"`
}

// knownKeys lists the JSON keys decoded into named fields.
var knownKeys = []string{
	"i", "x", "y", "w", "h", "static", "moved", "isDraggable", "isResizable",
	"minW", "maxW", "minH", "maxH", "dragIgnoreFrom", "dragAllowFrom",
}

// itemFields breaks the MarshalJSON/UnmarshalJSON recursion.
type itemFields Item

// UnmarshalJSON decodes the known fields and keeps everything else in Extra.
func (it *Item) UnmarshalJSON(data []byte) error {
	var f itemFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range knownKeys {
		delete(raw, k)
	}
	if len(raw) > 0 {
		f.Extra = raw
	}
	*it = Item(f)
	return nil
}

// MarshalJSON encodes the known fields followed by Extra.
func (it Item) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(itemFields(it))
	if err != nil || len(it.Extra) == 0 {
		return data, err
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for k, v := range it.Extra {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// Right returns the first column to the right of the item.
func (it *Item) Right() int { return it.X + it.W }

// Bottom returns the first row below the item.
func (it *Item) Bottom() int { return it.Y + it.H }

// IsPlaceholder reports whether it is the zero-area stand-in returned by
// [GetItem] for an unknown id.
func (it *Item) IsPlaceholder() bool { return it.W == 0 && it.H == 0 }

// Draggable resolves the per-item override against the layout default.
func (it *Item) Draggable(def bool) bool {
	if it.IsDraggable != nil {
		return *it.IsDraggable
	}
	return def
}

// Resizable resolves the per-item override against the layout default.
func (it *Item) Resizable(def bool) bool {
	if it.IsResizable != nil {
		return *it.IsResizable
	}
	return def
}

// Clone returns a deep copy of the item.
func (it *Item) Clone() *Item {
	c := *it
	if it.IsDraggable != nil {
		v := *it.IsDraggable
		c.IsDraggable = &v
	}
	if it.IsResizable != nil {
		v := *it.IsResizable
		c.IsResizable = &v
	}
	if it.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(it.Extra))
		for k, v := range it.Extra {
			c.Extra[k] = v
		}
	}
	return &c
}

// String renders the item as id(x,y wxh), mostly for logs and test output.
func (it *Item) String() string {
	s := fmt.Sprintf("%s(%d,%d %dx%d)", it.ID, it.X, it.Y, it.W, it.H)
	if it.Static {
		s += "!"
	}
	return s
}

// Layout is an ordered collection of items. Order is insertion order.
type Layout []*Item

// Clone returns a deep copy of l. The copy shares no items with l.
func (l Layout) Clone() Layout {
	if l == nil {
		return nil
	}
	out := make(Layout, len(l))
	for i, it := range l {
		out[i] = it.Clone()
	}
	return out
}

// Find returns the item with the given id, or nil.
func (l Layout) Find(id ID) *Item {
	for _, it := range l {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// Height returns the number of rows the layout occupies.
func (l Layout) Height() int {
	h := 0
	for _, it := range l {
		if b := it.Bottom(); b > h {
			h = b
		}
	}
	return h
}

// Width returns the number of columns the layout occupies.
func (l Layout) Width() int {
	w := 0
	for _, it := range l {
		if r := it.Right(); r > w {
			w = r
		}
	}
	return w
}

// GetItem looks up id by linear scan. An unknown id yields a fresh
// placeholder {i: id, x: 0, y: 0, w: 0, h: 0}; see [Item.IsPlaceholder].
func GetItem(l Layout, id ID) *Item {
	if it := l.Find(id); it != nil {
		return it
	}
	return &Item{ID: id}
}
