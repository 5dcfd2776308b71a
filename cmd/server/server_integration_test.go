package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"solitaire/internal/config"
	"solitaire/internal/serverapp"
)

func TestServer_HealthAndReadinessExposeRequestID(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		res := app.request(http.MethodGet, path, nil)
		if res.Code != http.StatusOK {
			t.Fatalf("%s expected 200, got %d body=%s", path, res.Code, res.Body.String())
		}
		if rid := strings.TrimSpace(res.Header().Get("X-Request-Id")); rid == "" {
			t.Fatalf("%s missing X-Request-Id header", path)
		}
	}
	if n := app.logs.FilterMessage("http request").Len(); n != 2 {
		t.Fatalf("expected 2 access log entries, got %d", n)
	}
}

func TestServer_TableRoundTrip(t *testing.T) {
	app := newTestApp(t)

	res := app.json(http.MethodPost, "/api/table/new", map[string]any{"difficulty": "easy"})
	if res.Code != http.StatusCreated {
		t.Fatalf("new table expected 201, got %d body=%s", res.Code, res.Body.String())
	}
	created := decodeBodyMap(t, res)
	id := asString(t, created["id"])
	if asString(t, created["phase"]) != "play" {
		t.Fatalf("expected new table in play, got %v", created["phase"])
	}

	stockID := -1.0
	for _, raw := range created["cards"].([]any) {
		c := asMap(t, raw)
		if c["zone"] == "stock" {
			stockID = c["id"].(float64)
			break
		}
	}
	if stockID < 0 {
		t.Fatalf("no stock card in %v", created["cards"])
	}

	res = app.json(http.MethodPost, "/api/table/cmd?table="+id, map[string]any{
		"cmd":  "card.click",
		"args": map[string]any{"card": stockID},
	})
	if res.Code != http.StatusOK {
		t.Fatalf("card.click expected 200, got %d body=%s", res.Code, res.Body.String())
	}
	body := decodeBodyMap(t, res)
	if body["result"] != true {
		t.Fatalf("card.click expected result true, got %v", body["result"])
	}
	state := asMap(t, body["state"])
	if state["moves"].(float64) != 1 {
		t.Fatalf("expected 1 move, got %v", state["moves"])
	}

	res = app.request(http.MethodGet, "/api/telemetry/stats", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("stats expected 200, got %d", res.Code)
	}
	stats := decodeBodyMap(t, res)
	if stats["moves"].(float64) != 1 || stats["games_started"].(float64) != 1 {
		t.Fatalf("unexpected stats %v", stats)
	}

	res = app.request(http.MethodGet, "/?table="+id, nil)
	if res.Code != http.StatusOK || !strings.Contains(res.Body.String(), id) {
		t.Fatalf("page expected 200 naming the table, got %d", res.Code)
	}

	res = app.request(http.MethodDelete, "/api/table?table="+id, nil)
	if res.Code != http.StatusOK {
		t.Fatalf("delete expected 200, got %d", res.Code)
	}
	res = app.request(http.MethodGet, "/api/table/state?table="+id, nil)
	if res.Code != http.StatusNotFound {
		t.Fatalf("deleted table expected 404, got %d", res.Code)
	}
}

func TestServer_ConfigEndpointServesLoadedFile(t *testing.T) {
	app := newTestApp(t)

	res := app.request(http.MethodGet, "/api/config", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("config expected 200, got %d", res.Code)
	}
	cfg := decodeBodyMap(t, res)
	layout := asMap(t, cfg["layout"])
	if layout["max_wastes"].(float64) != 3 {
		t.Fatalf("expected max_wastes 3, got %v", layout["max_wastes"])
	}
}

type testApp struct {
	handler http.Handler
	logs    *observer.ObservedLogs
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	core, logs := observer.New(zap.InfoLevel)
	app, err := serverapp.New(serverapp.Options{
		Config: loadTestConfig(t),
		Logger: zap.New(core),
		Seed:   7,
	})
	if err != nil {
		t.Fatalf("serverapp.New: %v", err)
	}

	return &testApp{handler: app.Handler, logs: logs}
}

func (a *testApp) json(method, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	return a.request(method, path, bytes.NewReader(b))
}

func (a *testApp) request(method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfgPath := filepath.Join(projectRoot(t), "solitaire_config.yml")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("load config %s: %v", cfgPath, err)
	}
	return cfg
}

func projectRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime.Caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}

func decodeBodyMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode json body failed: %v body=%s", err, rec.Body.String())
	}
	return out
}

func asMap(t *testing.T, v any) map[string]any {
	t.Helper()
	out, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T (%v)", v, v)
	}
	return out
}

func asString(t *testing.T, v any) string {
	t.Helper()
	s, ok := v.(string)
	if !ok {
		t.Fatalf("expected string, got %T (%v)", v, v)
	}
	return s
}
