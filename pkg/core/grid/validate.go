package grid

import (
	"github.com/matzehuels/tilegrid/pkg/errors"
)

// ValidateItem checks a single item's geometry.
func ValidateItem(it *Item) error {
	if it == nil {
		return errors.New(errors.ErrCodeInvalidLayoutItem, "item is nil")
	}
	if it.ID == "" {
		return errors.New(errors.ErrCodeInvalidLayoutItem, "item id cannot be empty")
	}
	if it.X < 0 || it.Y < 0 {
		return errors.New(errors.ErrCodeInvalidLayoutItem, "item %q: position (%d,%d) must not be negative", it.ID, it.X, it.Y)
	}
	if it.W <= 0 || it.H <= 0 {
		return errors.New(errors.ErrCodeInvalidLayoutItem, "item %q: size %dx%d must be positive", it.ID, it.W, it.H)
	}
	if it.MinW < 0 || it.MaxW < 0 || it.MinH < 0 || it.MaxH < 0 {
		return errors.New(errors.ErrCodeInvalidLayoutItem, "item %q: size bounds must not be negative", it.ID)
	}
	if it.MaxW > 0 && it.MinW > it.MaxW {
		return errors.New(errors.ErrCodeInvalidLayoutItem, "item %q: minW %d exceeds maxW %d", it.ID, it.MinW, it.MaxW)
	}
	if it.MaxH > 0 && it.MinH > it.MaxH {
		return errors.New(errors.ErrCodeInvalidLayoutItem, "item %q: minH %d exceeds maxH %d", it.ID, it.MinH, it.MaxH)
	}
	return nil
}

// Validate checks every item of l and rejects duplicate ids.
func Validate(l Layout) error {
	seen := make(map[ID]struct{}, len(l))
	for _, it := range l {
		if err := ValidateItem(it); err != nil {
			return err
		}
		if _, dup := seen[it.ID]; dup {
			return errors.New(errors.ErrCodeInvalidLayout, "duplicate item id %q", it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return nil
}

// ValidateColumns checks that every item fits within cols columns.
func ValidateColumns(l Layout, cols int) error {
	if cols <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "column count %d must be positive", cols)
	}
	for _, it := range l {
		if it.Right() > cols {
			return errors.New(errors.ErrCodeInvalidLayoutItem, "item %q: spans columns %d..%d beyond grid width %d", it.ID, it.X, it.Right()-1, cols)
		}
	}
	return nil
}
