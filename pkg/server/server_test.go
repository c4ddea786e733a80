package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gmlexport/pkg/buildinfo"
	"github.com/matzehuels/gmlexport/pkg/config"
	errs "github.com/matzehuels/gmlexport/pkg/errors"
	"github.com/matzehuels/gmlexport/pkg/gml"
	gmlio "github.com/matzehuels/gmlexport/pkg/io"
	"github.com/matzehuels/gmlexport/pkg/observability"
)

const pairJSON = `{
  "weighted": true,
  "nodes": [{"id": "v1"}, {"id": "v2", "attrs": {"color": "red"}}],
  "edges": [{"from": "v1", "to": "v2", "weight": 2.0}]
}`

func newTestServer(t *testing.T, cfg *config.Config) (*Server, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	s, err := New(cfg, log.New(&logs))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, &logs
}

func do(s *Server, method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(s, http.MethodGet, "/healthz", "", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
	if rec.Header().Get("Server") == "" {
		t.Error("Server header not set")
	}
}

func TestParameters(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(s, http.MethodGet, "/v1/parameters", "", "")

	var got struct{ Parameters []string }
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if len(got.Parameters) != 7 || got.Parameters[0] != "vertex-labels" {
		t.Errorf("parameters = %v", got.Parameters)
	}
}

func TestExport(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		contentType string
		body        string
		want        []string
		notWant     []string
	}{
		{
			name:   "defaults",
			target: "/v1/export",
			body:   pairJSON,
			want: []string{
				"Creator \"JGraphT GML Exporter\"\n",
				"\tdirected 0\n",
				"\t\tsource 1\n\t\ttarget 2\n\t]\n",
			},
			notWant: []string{"weight", "label \"v1\"", "color"},
		},
		{
			name:   "query parameters",
			target: "/v1/export?param=vertex-labels&param=edge-weights,vertex-attributes&creator=api",
			body:   pairJSON,
			want: []string{
				"Creator \"api\"\n",
				"\t\tlabel \"v1\"\n",
				"\t\tweight 2.0\n",
				"\t\tcolor \"red\"\n",
			},
		},
		{
			name:        "yaml body",
			target:      "/v1/export?param=vertex-labels",
			contentType: "application/yaml",
			body:        "directed: true\nnodes: [{id: a}, {id: b}]\nedges: [{from: b, to: a}]\n",
			want: []string{
				"\tdirected 1\n",
				"\t\tlabel \"a\"\n",
				"\t\tsource 2\n\t\ttarget 1\n",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t, nil)
			rec := do(s, http.MethodPost, tt.target, tt.contentType, tt.body)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
				t.Errorf("Content-Type = %q", ct)
			}
			body := rec.Body.String()
			for _, w := range tt.want {
				if !strings.Contains(body, w) {
					t.Errorf("body missing %q:\n%s", w, body)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(body, w) {
					t.Errorf("body unexpectedly contains %q:\n%s", w, body)
				}
			}
		})
	}
}

func TestExportUsesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Export.Creator = "configured"
	cfg.Export.EdgeLabels = true

	s, _ := newTestServer(t, cfg)
	rec := do(s, http.MethodPost, "/v1/export", "application/json", pairJSON)

	body := rec.Body.String()
	if !strings.Contains(body, "Creator \"configured\"") || !strings.Contains(body, "label \"(v1 : v2)\"") {
		t.Errorf("config not applied:\n%s", body)
	}

	rec = do(s, http.MethodPost, "/v1/export?param=", "application/json", pairJSON)
	if strings.Contains(rec.Body.String(), "(v1 : v2)") {
		t.Errorf("empty param list did not clear configured switches:\n%s", rec.Body.String())
	}
}

func TestExportErrors(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		contentType string
		body        string
		status      int
		code        errs.Code
	}{
		{"malformed json", "/v1/export", "", `{"nodes": [`, http.StatusBadRequest, errs.ErrCodeInvalidInput},
		{"unknown parameter", "/v1/export?param=colors", "", pairJSON, http.StatusBadRequest, errs.ErrCodeInvalidParameter},
		{"bad creator", "/v1/export?creator=%0A", "", pairJSON, http.StatusBadRequest, errs.ErrCodeInvalidInput},
		{"unsupported content type", "/v1/export", "text/csv", pairJSON, http.StatusBadRequest, errs.ErrCodeInvalidFormat},
		{
			"reserved vertex key", "/v1/export?param=vertex-attributes", "",
			`{"nodes": [{"id": "a", "attrs": {"label": "x"}}]}`,
			http.StatusUnprocessableEntity, errs.ErrCodeAttributeConflict,
		},
		{
			"reserved edge key", "/v1/export?param=edge-attributes", "",
			`{"nodes": [{"id": "a"}, {"id": "b"}], "edges": [{"from": "a", "to": "b", "attrs": {"source": 9}}]}`,
			http.StatusUnprocessableEntity, errs.ErrCodeAttributeConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t, nil)
			rec := do(s, http.MethodPost, tt.target, tt.contentType, tt.body)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			var resp errorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if resp.Code != tt.code {
				t.Errorf("code = %v, want %v", resp.Code, tt.code)
			}
			if resp.Error == "" {
				t.Error("error message is empty")
			}
		})
	}
}

func TestExportBodyLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Server.MaxBodyBytes = 16

	s, _ := newTestServer(t, cfg)
	rec := do(s, http.MethodPost, "/v1/export", "", pairJSON)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
	if rec.Header().Get("X-Cache") != "" {
		t.Error("X-Cache set for rejected body")
	}
}

func TestRequestID(t *testing.T) {
	s, logs := newTestServer(t, nil)

	rec := do(s, http.MethodGet, "/healthz", "", "")
	generated := rec.Header().Get(RequestIDHeader)
	if len(generated) != 36 {
		t.Errorf("generated request id = %q, want a UUID", generated)
	}
	if !strings.Contains(logs.String(), generated) {
		t.Errorf("request log missing id %s:\n%s", generated, logs.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "client-id-1")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "client-id-1" {
		t.Errorf("request id = %q, want client-id-1", got)
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	statuses []int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	s, _ := newTestServer(t, nil)
	do(s, http.MethodGet, "/healthz", "", "")
	do(s, http.MethodPost, "/v1/export?param=nope", "", pairJSON)

	if len(hooks.statuses) != 2 || hooks.statuses[0] != 200 || hooks.statuses[1] != 400 {
		t.Errorf("statuses = %v, want [200 400]", hooks.statuses)
	}
}

func TestExportCache(t *testing.T) {
	memory := config.Default()
	memory.Server.Cache.Enabled = true
	memory.Server.Cache.MaxEntries = 4

	file := config.Default()
	file.Server.Cache.Enabled = true
	file.Server.Cache.Dir = t.TempDir()

	for name, cfg := range map[string]*config.Config{"memory": memory, "file": file} {
		t.Run(name, func(t *testing.T) {
			s, _ := newTestServer(t, cfg)

			first := do(s, http.MethodPost, "/v1/export?param=vertex-labels", "", pairJSON)
			second := do(s, http.MethodPost, "/v1/export?param=vertex-labels", "", pairJSON)
			other := do(s, http.MethodPost, "/v1/export?param=edge-weights", "", pairJSON)

			if first.Code != http.StatusOK || second.Code != http.StatusOK || other.Code != http.StatusOK {
				t.Fatalf("status = %d, %d, %d", first.Code, second.Code, other.Code)
			}
			if got := first.Header().Get("X-Cache"); got != "miss" {
				t.Errorf("first X-Cache = %q, want miss", got)
			}
			if got := second.Header().Get("X-Cache"); got != "hit" {
				t.Errorf("second X-Cache = %q, want hit", got)
			}
			if got := other.Header().Get("X-Cache"); got != "miss" {
				t.Errorf("X-Cache with other parameters = %q, want miss", got)
			}
			if first.Body.String() != second.Body.String() {
				t.Errorf("cached body differs:\n%s\n%s", first.Body.String(), second.Body.String())
			}
		})
	}
}

func TestDocumentKeyIncludesVersion(t *testing.T) {
	saved := buildinfo.Version
	t.Cleanup(func() { buildinfo.Version = saved })

	opts := gmlio.Options{Creator: gml.DefaultCreator, Parameters: []gml.Parameter{gml.ExportVertexLabels}}
	body := []byte(pairJSON)

	buildinfo.Version = "v1.0.0"
	old := documentKey(errs.FormatJSON, opts, body)
	if again := documentKey(errs.FormatJSON, opts, body); again != old {
		t.Errorf("documentKey() not deterministic: %q != %q", again, old)
	}

	buildinfo.Version = "v1.1.0"
	if documentKey(errs.FormatJSON, opts, body) == old {
		t.Error("documentKey() unchanged across versions")
	}
}

func TestExportCacheIgnoresOtherVersions(t *testing.T) {
	saved := buildinfo.Version
	t.Cleanup(func() { buildinfo.Version = saved })

	cfg := config.Default()
	cfg.Server.Cache.Enabled = true
	cfg.Server.Cache.Dir = t.TempDir()

	buildinfo.Version = "v1.0.0"
	s, _ := newTestServer(t, cfg)
	if rec := do(s, http.MethodPost, "/v1/export", "", pairJSON); rec.Header().Get("X-Cache") != "miss" {
		t.Fatalf("first X-Cache = %q, want miss", rec.Header().Get("X-Cache"))
	}

	buildinfo.Version = "v1.1.0"
	upgraded, _ := newTestServer(t, cfg)
	if rec := do(upgraded, http.MethodPost, "/v1/export", "", pairJSON); rec.Header().Get("X-Cache") != "miss" {
		t.Errorf("X-Cache after upgrade = %q, want miss", rec.Header().Get("X-Cache"))
	}
}

func TestExportCacheSkipsFailures(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Cache.Enabled = true
	s, _ := newTestServer(t, cfg)

	body := `{"nodes": [{"id": "a", "attrs": {"label": "x"}}]}`
	for i := 0; i < 2; i++ {
		rec := do(s, http.MethodPost, "/v1/export?param=vertex-attributes", "", body)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("attempt %d status = %d, want 422", i, rec.Code)
		}
		if rec.Header().Get("X-Cache") != "" {
			t.Errorf("attempt %d X-Cache set on error", i)
		}
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Addr = "127.0.0.1:0"
	s, _ := newTestServer(t, cfg)

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
		t.Fatal("ListenAndServe() did not return after cancel")
	}
}
