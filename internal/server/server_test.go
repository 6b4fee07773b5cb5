package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/buttonhalo/pkg/cache"
	"github.com/matzehuels/buttonhalo/pkg/observability"
	"github.com/matzehuels/buttonhalo/pkg/pipeline"
)

const centreScenario = `{
  "name": "centre",
  "display": {"x": 0, "y": 0, "width": 1920, "height": 1080},
  "selection": {"x": 500, "y": 500, "width": 100, "height": 100},
  "controls": {"count": 8, "size": 24}
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(c, nil, logger)
	ts := httptest.NewServer(New(DefaultConfig(), runner, logger).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path, contentType, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+path, contentType, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
	if body["version"] == "" {
		t.Error("version field missing")
	}
	if _, err := uuid.Parse(resp.Header.Get(RequestIDHeader)); err != nil {
		t.Errorf("%s = %q, want a uuid", RequestIDHeader, resp.Header.Get(RequestIDHeader))
	}
}

func TestRequestIDEcho(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.NewString()

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Errorf("%s = %q, want %q", RequestIDHeader, got, id)
	}
}

type layoutBody struct {
	Controls []struct {
		Label string `json:"label"`
		X     int    `json:"x"`
		Y     int    `json:"y"`
	} `json:"controls"`
	Inside bool `json:"inside"`
}

func TestLayout(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts, "/v1/layout", "application/json", centreScenario)
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, want 200: %s", resp.StatusCode, data)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if got := resp.Header.Get("X-Cache"); got != "miss" {
		t.Errorf("X-Cache = %q, want miss", got)
	}

	var body layoutBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Controls) != 8 {
		t.Fatalf("got %d controls, want 8", len(body.Controls))
	}
	if c := body.Controls[0]; c.X != 507 || c.Y != 605 {
		t.Errorf("control 0 at (%d,%d), want (507,605)", c.X, c.Y)
	}

	again := post(t, ts, "/v1/layout", "application/json", centreScenario)
	if got := again.Header.Get("X-Cache"); got != "hit" {
		t.Errorf("second X-Cache = %q, want hit", got)
	}
}

func TestLayoutYAML(t *testing.T) {
	ts := newTestServer(t)
	body := `name: corner
display: {x: 0, y: 0, width: 1920, height: 1080}
selection: {x: 0, y: 0, width: 50, height: 50}
controls: {count: 6, size: 24}
`
	resp := post(t, ts, "/v1/layout", "application/yaml", body)
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, want 200: %s", resp.StatusCode, data)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		contentType string
		body        string
		status      int
		code        string
	}{
		{"bad json", "/v1/layout", "application/json", `{`, http.StatusBadRequest, "INVALID_SCENARIO"},
		{"unknown field", "/v1/layout", "application/json", `{"colour": "red"}`, http.StatusBadRequest, "INVALID_SCENARIO"},
		{"no controls", "/v1/layout", "application/json",
			`{"display": {"width": 100, "height": 100}, "controls": {"size": 24}}`,
			http.StatusBadRequest, "EMPTY_CONTROL_SET"},
		{"selection overflow", "/v1/layout", "application/json",
			`{"display": {"width": 1920, "height": 1080}, "selection": {"x": 9223372036854775800, "y": 10, "width": 100, "height": 100}, "controls": {"count": 4, "size": 24}}`,
			http.StatusBadRequest, "INVALID_SCENARIO"},
		{"bad content type", "/v1/layout", "text/csv", centreScenario, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad format", "/v1/render/gif", "application/json", centreScenario, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad scale", "/v1/render/svg?scale=abc", "application/json", centreScenario, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad bool", "/v1/layout?legacy_wrap=maybe", "application/json", centreScenario, http.StatusBadRequest, "INVALID_INPUT"},
	}

	ts := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts, tt.path, tt.contentType, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var body errorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Code != tt.code {
				t.Errorf("code = %q, want %q (%s)", body.Code, tt.code, body.Message)
			}
		})
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		format      string
		contentType string
		prefix      string
	}{
		{"svg", "image/svg+xml", "<svg"},
		{"json", "application/json", "{"},
		{"dot", "text/vnd.graphviz", "graph placement {"},
	}

	ts := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			resp := post(t, ts, "/v1/render/"+tt.format+"?rings=true", "application/json", centreScenario)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200", resp.StatusCode)
			}
			if ct := resp.Header.Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			if resp.Header.Get("X-Scenario-Hash") == "" {
				t.Error("X-Scenario-Hash missing")
			}
			data, _ := io.ReadAll(resp.Body)
			if !strings.HasPrefix(string(data), tt.prefix) {
				t.Errorf("body starts %.30q, want prefix %q", data, tt.prefix)
			}
		})
	}
}

type recordingHooks struct {
	observability.NoopHTTPHooks
	mu     sync.Mutex
	routes []string
	status []int
}

func (h *recordingHooks) OnResponse(_ context.Context, method, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, method+" "+route)
	h.status = append(h.status, status)
}

func TestHooks(t *testing.T) {
	hooks := &recordingHooks{}
	defer observability.Register(hooks)()

	ts := newTestServer(t)
	post(t, ts, "/v1/render/gif", "application/json", centreScenario)

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.routes) != 1 {
		t.Fatalf("got %d responses, want 1", len(hooks.routes))
	}
	if got, want := hooks.routes[0], "POST /v1/render/{format}"; got != want {
		t.Errorf("route = %q, want %q", got, want)
	}
	if hooks.status[0] != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", hooks.status[0])
	}
}

func TestServeShutdown(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	cfg := DefaultConfig()
	cfg.Addr = "127.0.0.1:0"
	s := New(cfg, pipeline.NewRunner(nil, nil, logger), logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
