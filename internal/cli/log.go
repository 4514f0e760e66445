// Package cli implements the tilegrid command-line interface.
//
// This package provides commands for compacting board files, moving and
// resizing tiles, resolving responsive breakpoints, previewing layouts in the
// terminal, editing them interactively, and serving the engine over HTTP.
// The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - compact: Pack one or more board files
//   - move, resize: Apply a single edit to a board file
//   - responsive: Show which breakpoint layout applies at a width
//   - show: Preview a layout in the terminal
//   - play: Edit a layout interactively
//   - serve: Run the HTTP API
//   - cache: Manage the local result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs every engine and cache event.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tilegrid/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Compacted 3 boards (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// logHooks routes engine and cache events to a logger at debug level.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l}
}

func (h *logHooks) OnCompact(_ context.Context, items int, cacheHit bool, d time.Duration, err error) {
	h.logger.Debug("compact", "items", items, "cached", cacheHit, "duration", d, "error", err)
}

func (h *logHooks) OnMove(_ context.Context, id string, displaced int, d time.Duration, err error) {
	h.logger.Debug("move", "item", id, "displaced", displaced, "duration", d, "error", err)
}

func (h *logHooks) OnEvent(_ context.Context, eventType, id string, changed bool, d time.Duration, err error) {
	h.logger.Debug("event", "type", eventType, "item", id, "changed", changed, "duration", d, "error", err)
}

func (h *logHooks) OnResolve(_ context.Context, active string, d time.Duration, err error) {
	h.logger.Debug("resolve", "active", active, "duration", d, "error", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

var (
	_ observability.EngineHooks = (*logHooks)(nil)
	_ observability.CacheHooks  = (*logHooks)(nil)
)
