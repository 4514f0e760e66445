package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/tilegrid/pkg/cache"
	"github.com/matzehuels/tilegrid/pkg/engine"
	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/observability"
)

func newTestServer(t *testing.T) (*httptest.Server, *cache.FileCache) {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)

	s := New(Config{
		Cache:    c,
		Logger:   log.New(io.Discard),
		Defaults: engine.Options{VerticalCompact: true},
	})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, c
}

func post(t *testing.T, ts *httptest.Server, path, body string, headers ...string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, ts.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(headerRequestID))

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestRequestIDEchoed(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, _ := post(t, ts, "/v1/compact", `{"layout": []}`, headerRequestID, "req-123")
	assert.Equal(t, "req-123", resp.Header.Get(headerRequestID))
}

func TestCompact(t *testing.T) {
	ts, _ := newTestServer(t)
	body := `{"layout": [
		{"i": "a", "x": 0, "y": 0, "w": 2, "h": 2},
		{"i": "b", "x": 1, "y": 0, "w": 2, "h": 2, "color": "red"}
	]}`

	resp, data := post(t, ts, "/v1/compact", body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var out compactResponse
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out.Layout, 2)
	assert.False(t, out.CacheHit)
	assert.Equal(t, "b", string(out.Layout[1].ID))
	assert.Equal(t, 1, out.Layout[1].X)
	assert.Equal(t, 2, out.Layout[1].Y)
	assert.Contains(t, out.Layout[1].Extra, "color")

	_, data = post(t, ts, "/v1/compact", body)
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, out.CacheHit)

	// Another tenant does not see the first tenant's entry.
	_, data = post(t, ts, "/v1/compact", body, headerTenant, "acme")
	require.NoError(t, json.Unmarshal(data, &out))
	assert.False(t, out.CacheHit)
}

func TestCompactEmptyLayout(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, data := post(t, ts, "/v1/compact", `{}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"layout": [], "cache_hit": false}`, string(data))
}

func TestMove(t *testing.T) {
	ts, _ := newTestServer(t)
	body := `{
		"layout": [{"i": "a", "x": 0, "y": 0, "w": 1, "h": 1}, {"i": "b", "x": 0, "y": 1, "w": 1, "h": 1}],
		"move": {"i": "a", "y": 1}
	}`

	resp, data := post(t, ts, "/v1/move", body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var out changeResponse
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, out.Changed)
	assert.Equal(t, 1, out.Displaced)
	assert.Equal(t, 1, out.Item.Y)
	assert.Equal(t, 0, out.Layout[1].Y)
}

func TestEvents(t *testing.T) {
	ts, _ := newTestServer(t)
	body := `{
		"layout": [{"i": 1, "x": 0, "y": 0, "w": 2, "h": 2}, {"i": 2, "x": 2, "y": 0, "w": 2, "h": 2}],
		"event": {"eventType": "dragmove", "i": 1, "x": 10, "y": 0},
		"options": {"cols": 4}
	}`

	resp, data := post(t, ts, "/v1/events", body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var out changeResponse
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, out.Changed)
	assert.Equal(t, 2, out.Item.X)
	assert.Equal(t, 2, out.Layout[1].Y)
}

func TestResponsive(t *testing.T) {
	ts, _ := newTestServer(t)
	body := `{
		"breakpoints": {"sm": 0, "md": 768, "lg": 1200},
		"layouts": {"sm": [{"i": "a", "x": 0, "y": 0, "w": 1, "h": 1}]},
		"width": 1000
	}`

	resp, data := post(t, ts, "/v1/responsive", body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var out responsiveResponse
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, []string{"sm", "md"}, out.Current)
	assert.Equal(t, "sm", out.Active)
	require.Len(t, out.Layout, 1)
}

func TestErrors(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   errors.Code
	}{
		{"malformed json", "/v1/compact", `{"layout": [`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"invalid item", "/v1/compact", `{"layout": [{"i": "a", "w": 0, "h": 1}]}`, http.StatusBadRequest, errors.ErrCodeInvalidLayoutItem},
		{"row out of range", "/v1/compact", `{"layout": [{"i": "a", "x": 0, "y": 9000000000000, "w": 1, "h": 1}], "options": {"vertical_compact": true}}`, http.StatusBadRequest, errors.ErrCodeInvalidLayoutItem},
		{"column out of range", "/v1/compact", `{"layout": [{"i": "a", "x": 9000000000000, "y": 0, "w": 1, "h": 1}]}`, http.StatusBadRequest, errors.ErrCodeInvalidLayoutItem},
		{"duplicate id", "/v1/compact", `{"layout": [{"i": "a", "w": 1, "h": 1}, {"i": "a", "w": 1, "h": 1}]}`, http.StatusBadRequest, errors.ErrCodeInvalidLayout},
		{"unknown item", "/v1/move", `{"layout": [], "move": {"i": "x", "y": 0}}`, http.StatusNotFound, errors.ErrCodeItemNotFound},
		{"bad event", "/v1/events", `{"layout": [], "event": {"eventType": "spin", "i": "a"}}`, http.StatusBadRequest, errors.ErrCodeInvalidEvent},
		{"no breakpoints", "/v1/responsive", `{}`, http.StatusBadRequest, errors.ErrCodeInvalidBreakpointConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := post(t, ts, tt.path, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode, string(data))

			var out map[string]errorBody
			require.NoError(t, json.Unmarshal(data, &out))
			assert.Equal(t, tt.code, out["error"].Code)
			assert.NotEmpty(t, out["error"].RequestID)
		})
	}
}

func TestBodyTooLarge(t *testing.T) {
	s := New(Config{Logger: log.New(io.Discard), MaxBodyBytes: 16})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, data := post(t, ts, "/v1/compact", `{"layout": [{"i": "a", "w": 1, "h": 1}]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(data))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusGatewayTimeout, statusFor(context.DeadlineExceeded))
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(context.Canceled))
	assert.Equal(t, http.StatusInternalServerError, statusFor(io.ErrUnexpectedEOF))
	assert.Equal(t, http.StatusNotFound, statusFor(errors.New(errors.ErrCodeFileNotFound, "x")))
}

type countingHTTPHooks struct {
	observability.NoopHTTPHooks
	requests, errors int
}

func (h *countingHTTPHooks) OnRequest(context.Context, string, string) { h.requests++ }
func (h *countingHTTPHooks) OnError(context.Context, string, string, error) {
	h.errors++
}

func TestHTTPHooks(t *testing.T) {
	hooks := &countingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	// Serve in-process so the hook counters are not shared across goroutines.
	s := New(Config{Logger: log.New(io.Discard)})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/move", bytes.NewBufferString(`{"move": {"i": "a"}}`)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1, hooks.requests)
	assert.Equal(t, 1, hooks.errors)
}

func TestListenAndServeShutdown(t *testing.T) {
	s := New(Config{Logger: log.New(io.Discard)})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
