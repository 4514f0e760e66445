package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/tilegrid/pkg/buildinfo"
	"github.com/matzehuels/tilegrid/pkg/core/grid"
	"github.com/matzehuels/tilegrid/pkg/engine"
	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/observability"
)

// =============================================================================
// Request and Response Bodies
// =============================================================================

type compactRequest struct {
	Layout  grid.Layout    `json:"layout"`
	Options engine.Options `json:"options"`
}

type compactResponse struct {
	Layout   grid.Layout `json:"layout"`
	CacheHit bool        `json:"cache_hit"`
}

type moveRequest struct {
	Layout  grid.Layout        `json:"layout"`
	Move    engine.MoveRequest `json:"move"`
	Options engine.Options     `json:"options"`
}

type eventRequest struct {
	Layout  grid.Layout    `json:"layout"`
	Event   engine.Event   `json:"event"`
	Options engine.Options `json:"options"`
}

type changeResponse struct {
	Layout    grid.Layout `json:"layout"`
	Item      *grid.Item  `json:"item"`
	Changed   bool        `json:"changed"`
	Displaced int         `json:"displaced"`
}

type responsiveRequest struct {
	Breakpoints map[string]int         `json:"breakpoints"`
	Layouts     map[string]grid.Layout `json:"layouts"`
	// Matches carries the client's media query results. When absent, Width
	// is evaluated against the breakpoints instead.
	Matches map[string]bool `json:"matches,omitempty"`
	Width   *int            `json:"width,omitempty"`
}

type responsiveResponse struct {
	Current []string    `json:"current"`
	Active  string      `json:"active"`
	Layout  grid.Layout `json:"layout"`
}

type errorBody struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleCompact(w http.ResponseWriter, r *http.Request) {
	req := compactRequest{Options: s.options(r)}
	if !s.decode(w, r, &req) {
		return
	}
	layout, hit, err := s.runner(r).Compact(r.Context(), req.Layout, req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, compactResponse{Layout: nonNil(layout), CacheHit: hit})
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	req := moveRequest{Options: s.options(r)}
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.runner(r).Move(r.Context(), req.Layout, req.Move, req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, changeResponse{
		Layout:    nonNil(res.Layout),
		Item:      res.Item,
		Changed:   res.Changed,
		Displaced: res.Displaced,
	})
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	req := eventRequest{Options: s.options(r)}
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.runner(r).Apply(r.Context(), req.Layout, req.Event, req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, changeResponse{
		Layout:    nonNil(res.Layout),
		Item:      res.Item,
		Changed:   res.Changed,
		Displaced: res.Displaced,
	})
}

func (s *Server) handleResponsive(w http.ResponseWriter, r *http.Request) {
	var req responsiveRequest
	if !s.decode(w, r, &req) {
		return
	}
	matches := req.Matches
	if matches == nil && req.Width != nil {
		matches = make(map[string]bool, len(req.Breakpoints))
		for name, threshold := range req.Breakpoints {
			matches[name] = *req.Width >= threshold
		}
	}
	res, err := s.runner(r).Resolve(r.Context(), req.Breakpoints, req.Layouts, matches)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	current := res.Current
	if current == nil {
		current = []string{}
	}
	writeJSON(w, http.StatusOK, responsiveResponse{Current: current, Active: res.Active, Layout: res.Layout})
}

// =============================================================================
// Helpers
// =============================================================================

// decode reads a JSON body into v. It writes the error response itself and
// reports whether the handler should continue.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", s.maxBody))
			return false
		}
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return false
	}
	return true
}

// statusFor maps an error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.IsNotFound(err):
		return http.StatusNotFound
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case stderrors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		loggerFrom(r.Context(), s.logger).Error("request failed", "error", err)
		msg = "internal error"
	}
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	writeJSON(w, status, map[string]errorBody{
		"error": {Code: code, Message: msg, RequestID: requestIDFrom(r.Context())},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// nonNil keeps empty layouts encoded as [] rather than null.
func nonNil(l grid.Layout) grid.Layout {
	if l == nil {
		return grid.Layout{}
	}
	return l
}
