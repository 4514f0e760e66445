package engine

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tilegrid/pkg/cache"
	"github.com/matzehuels/tilegrid/pkg/core/compact"
	"github.com/matzehuels/tilegrid/pkg/core/grid"
	"github.com/matzehuels/tilegrid/pkg/core/move"
	"github.com/matzehuels/tilegrid/pkg/core/responsive"
	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/observability"
)

// Runner executes layout operations with caching.
// Both CLI and API use it so that a request behaves the same everywhere.
//
// The Runner is stateless except for the cache and logger. Layouts are owned
// by the caller; concurrent calls are safe as long as they work on different
// layouts.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Compact validates l, packs it and returns it along with whether the
// positions came from the cache. Items are updated in place either way.
func (r *Runner) Compact(ctx context.Context, l grid.Layout, opts Options) (grid.Layout, bool, error) {
	start := time.Now()
	out, hit, err := r.compact(ctx, l, opts)
	observability.Engine().OnCompact(ctx, len(l), hit, time.Since(start), err)
	return out, hit, err
}

func (r *Runner) compact(ctx context.Context, l grid.Layout, opts Options) (grid.Layout, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}
	if err := validateLayout(l); err != nil {
		return nil, false, err
	}

	data, err := json.Marshal(l)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	cacheKey := r.Keyer.CompactKey(cache.Hash(data), opts.CompactKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if restorePositions(l, cached) {
				observability.Cache().OnCacheHit(ctx, "compact")
				opts.Logger.Debug("compaction cache hit", "items", len(l))
				return l, true, nil
			}
			// If the entry does not fit this layout, fall through to recompute
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, "compact")
	}

	compact.Compact(l, opts.VerticalCompact)

	// Cache the result
	if data, err := marshalPositions(l); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLCompact); err != nil {
			opts.Logger.Warn("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "compact", len(data))
		}
	}

	return l, false, nil
}

// Move moves the item req.ID as a user action, then compacts when
// opts.VerticalCompact or opts.CompactAfterMove is set.
func (r *Runner) Move(ctx context.Context, l grid.Layout, req MoveRequest, opts Options) (*Result, error) {
	start := time.Now()
	res, err := r.move(ctx, l, req, opts)
	displaced := 0
	if res != nil {
		displaced = res.Displaced
	}
	observability.Engine().OnMove(ctx, string(req.ID), displaced, time.Since(start), err)
	return res, err
}

func (r *Runner) move(ctx context.Context, l grid.Layout, req MoveRequest, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := validateLayout(l); err != nil {
		return nil, err
	}

	it := l.Find(req.ID)
	if it == nil {
		return nil, errors.New(errors.ErrCodeItemNotFound, "no item with id %q", req.ID)
	}
	if req.Y < 0 || req.Y > MaxRows-it.H {
		return nil, errors.New(errors.ErrCodeInvalidInput, "target row %d is outside rows 0..%d for %s", req.Y, MaxRows-it.H, it)
	}
	if req.X != nil && (*req.X < 0 || *req.X+it.W > opts.Cols) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "target column %d does not fit %s in %d columns", *req.X, it, opts.Cols)
	}

	snap := takeSnapshot(l)
	move.Element(l, it, req.X, req.Y, true, req.PreventCollision || opts.PreventCollision)
	if opts.VerticalCompact || opts.CompactAfterMove {
		compact.Compact(l, opts.VerticalCompact)
	}

	res := &Result{
		Item:      it,
		Changed:   snap.changed(it),
		Displaced: snap.displaced(l, it),
		Layout:    l,
	}
	opts.Logger.Debug("moved item", "item", it, "displaced", res.Displaced)
	return res, nil
}

// Apply applies one drag or resize event and compacts the layout.
//
// Drag targets are clamped into the grid. Resize targets are clamped to the
// item's size bounds and the grid width. Static items, and items whose drag
// or resize capability is off, ignore the event; the result then reports no
// change. With PreventCollision a colliding drag or resize is rejected and
// the item keeps its geometry.
func (r *Runner) Apply(ctx context.Context, l grid.Layout, ev Event, opts Options) (*Result, error) {
	start := time.Now()
	res, err := r.apply(ctx, l, ev, opts)
	changed := res != nil && res.Changed
	observability.Engine().OnEvent(ctx, string(ev.Type), string(ev.ID), changed, time.Since(start), err)
	return res, err
}

func (r *Runner) apply(ctx context.Context, l grid.Layout, ev Event, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	if err := validateLayout(l); err != nil {
		return nil, err
	}

	it := l.Find(ev.ID)
	if it == nil {
		return nil, errors.New(errors.ErrCodeItemNotFound, "no item with id %q", ev.ID)
	}
	res := &Result{Item: it, Layout: l}
	snap := takeSnapshot(l)

	switch {
	case ev.Type.IsDrag():
		if it.Static || !it.Draggable(!opts.DisableDrag) {
			opts.Logger.Debug("drag ignored", "item", it)
			return res, nil
		}
		x, y := clampDrag(it, ev.X, ev.Y, opts.Cols)
		move.Element(l, it, &x, y, true, opts.PreventCollision)

	case ev.Type.IsResize():
		if it.Static || !it.Resizable(!opts.DisableResize) {
			opts.Logger.Debug("resize ignored", "item", it)
			return res, nil
		}
		w, h := clampResize(it, ev.W, ev.H, opts.Cols)
		oldW, oldH := it.W, it.H
		it.W, it.H = w, h
		if opts.PreventCollision && grid.FirstCollision(l, it) != nil {
			it.W, it.H = oldW, oldH
			opts.Logger.Debug("resize rejected", "item", it)
			return res, nil
		}
	}

	compact.Compact(l, opts.VerticalCompact)

	res.Changed = snap.changed(it)
	res.Displaced = snap.displaced(l, it)
	return res, nil
}

// Resolve validates the breakpoint configuration and picks the active
// layout for the given match signals.
func (r *Runner) Resolve(ctx context.Context, thresholds map[string]int, layouts map[string]grid.Layout, matches map[string]bool) (responsive.Result, error) {
	start := time.Now()
	res, err := r.resolve(thresholds, layouts, matches)
	observability.Engine().OnResolve(ctx, res.Active, time.Since(start), err)
	return res, err
}

func (r *Runner) resolve(thresholds map[string]int, layouts map[string]grid.Layout, matches map[string]bool) (responsive.Result, error) {
	bps, err := responsive.New(thresholds)
	if err != nil {
		return responsive.Result{}, err
	}
	if err := bps.ValidateLayouts(layouts); err != nil {
		return responsive.Result{}, err
	}
	res := bps.Resolve(layouts, matches)
	r.Logger.Debug("resolved breakpoint", "current", res.Current, "active", res.Active)
	return res, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// validateLayout checks l with [grid.Validate] and keeps every item inside
// MaxCols columns and MaxRows rows.
func validateLayout(l grid.Layout) error {
	if err := grid.Validate(l); err != nil {
		return err
	}
	for _, it := range l {
		if it.X > MaxCols || it.W > MaxCols || it.X+it.W > MaxCols {
			return errors.New(errors.ErrCodeInvalidLayoutItem, "item %q: columns %d..%d exceed the limit of %d", it.ID, it.X, it.X+it.W-1, MaxCols)
		}
		if it.Y > MaxRows || it.H > MaxRows || it.Y+it.H > MaxRows {
			return errors.New(errors.ErrCodeInvalidLayoutItem, "item %q: rows %d..%d exceed the limit of %d", it.ID, it.Y, it.Y+it.H-1, MaxRows)
		}
	}
	return nil
}

// cachedPosition is the cache entry for one compacted item.
type cachedPosition struct {
	ID grid.ID `json:"i"`
	X  int     `json:"x"`
	Y  int     `json:"y"`
}

func marshalPositions(l grid.Layout) ([]byte, error) {
	out := make([]cachedPosition, len(l))
	for i, it := range l {
		out[i] = cachedPosition{ID: it.ID, X: it.X, Y: it.Y}
	}
	return json.Marshal(out)
}

// restorePositions copies cached positions onto l. It reports false, and
// leaves l untouched, when the entry does not describe l item by item.
func restorePositions(l grid.Layout, data []byte) bool {
	var cached []cachedPosition
	if err := json.Unmarshal(data, &cached); err != nil || len(cached) != len(l) {
		return false
	}
	for i, p := range cached {
		if l[i].ID != p.ID {
			return false
		}
	}
	for i, p := range cached {
		l[i].X, l[i].Y = p.X, p.Y
		l[i].Moved = false
	}
	return true
}
