package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnImportStart(ctx, "graph.json")
	p.OnImportComplete(ctx, "graph.json", 3, 2, time.Second, nil)
	p.OnExportStart(ctx, 3, 2)
	p.OnExportComplete(ctx, 512, time.Second, nil)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/export")
	h.OnResponse(ctx, "POST", "/v1/export", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() should restore NoopHTTPHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)

	// Setting nil should be ignored
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(logger)
	ctx := context.Background()

	h.OnImportStart(ctx, "graph.yaml")
	h.OnImportComplete(ctx, "graph.yaml", 3, 2, time.Millisecond, nil)
	h.OnExportStart(ctx, 3, 2)
	h.OnExportComplete(ctx, 0, time.Millisecond, errors.New("disk full"))
	h.OnResponse(ctx, "POST", "/v1/export", 422, time.Millisecond)

	out := buf.String()
	for _, want := range []string{
		"import started", "source=graph.yaml",
		"import complete", "nodes=3", "edges=2",
		"export failed", "disk full",
		"status=422",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksRespectLevel(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel}))

	h.OnExportStart(context.Background(), 1, 0)
	if buf.Len() != 0 {
		t.Errorf("debug event logged at info level: %q", buf.String())
	}
}

// Test implementations
type testPipelineHooks struct{ NoopPipelineHooks }
type testHTTPHooks struct{ NoopHTTPHooks }

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
