package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/gmlexport/pkg/cache"
	errs "github.com/matzehuels/gmlexport/pkg/errors"
	"github.com/matzehuels/gmlexport/pkg/gml"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Export.Creator != gml.DefaultCreator {
		t.Errorf("Creator = %q, want %q", cfg.Export.Creator, gml.DefaultCreator)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Server.ShutdownTimeout.Duration != DefaultShutdownTimeout {
		t.Errorf("ShutdownTimeout = %v, want %v", cfg.Server.ShutdownTimeout, DefaultShutdownTimeout)
	}
	params, err := cfg.Parameters()
	if err != nil || len(params) != 0 {
		t.Errorf("Parameters() = %v, %v, want none", params, err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestParse(t *testing.T) {
	data := `
[export]
creator = "gmlexport test"
parameters = ["edge-weights", "vertex_labels"]
vertex_graphics = true
edge_labels = true

[server]
addr = ":9090"
max_body_bytes = 1024
shutdown_timeout = "3s"
`
	cfg, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Export.Creator != "gmlexport test" {
		t.Errorf("Creator = %q", cfg.Export.Creator)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.MaxBodyBytes != 1024 {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Server.ShutdownTimeout.Duration != 3*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 3s", cfg.Server.ShutdownTimeout)
	}

	params, err := cfg.Parameters()
	if err != nil {
		t.Fatalf("Parameters() error = %v", err)
	}
	want := []gml.Parameter{
		gml.ExportVertexLabels,
		gml.ExportEdgeLabels,
		gml.ExportEdgeWeights,
		gml.ExportCustomVertexGraphicsAttributes,
	}
	if !slices.Equal(params, want) {
		t.Errorf("Parameters() = %v, want %v", params, want)
	}

	opts, err := cfg.ExportOptions()
	if err != nil {
		t.Fatalf("ExportOptions() error = %v", err)
	}
	if opts.Creator != "gmlexport test" || !slices.Equal(opts.Parameters, want) {
		t.Errorf("ExportOptions() = %+v", opts)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", `[export`},
		{"unknown key", "[export]\ncolour = true\n"},
		{"unknown parameter", "[export]\nparameters = [\"colors\"]\n"},
		{"bad creator", "[export]\ncreator = \"a\\nb\"\n"},
		{"bad duration", "[server]\nshutdown_timeout = \"soon\"\n"},
		{"negative body", "[server]\nmax_body_bytes = -1\n"},
		{"negative cache ttl", "[server.cache]\nttl = \"-1s\"\n"},
		{"negative cache size", "[server.cache]\nmax_entries = -3\n"},
		{"unknown cache key", "[server.cache]\nsize = 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Parse() error = nil")
			}
			if !errs.Is(err, errs.ErrCodeInvalidConfig) {
				t.Errorf("Parse() code = %v, want %v", errs.GetCode(err), errs.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gmlexport.toml")
	if err := os.WriteFile(path, []byte("[export]\nedge_weights = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Export.EdgeWeights {
		t.Error("EdgeWeights = false, want true")
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) code = %v, want %v", errs.GetCode(err), errs.ErrCodeFileNotFound)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GMLEXPORT_CREATOR", "from env")
	t.Setenv("GMLEXPORT_SERVER_ADDR", ":7070")

	cfg, err := Parse([]byte("[export]\ncreator = \"from file\"\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Export.Creator != "from env" {
		t.Errorf("Creator = %q, want env override", cfg.Export.Creator)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("Addr = %q, want env override", cfg.Server.Addr)
	}
}

func TestEnable(t *testing.T) {
	cfg := Default()
	cfg.Enable(gml.ExportCustomEdgeAttributes)
	cfg.Enable(gml.ExportCustomEdgeAttributes)

	params, err := cfg.Parameters()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(params, []gml.Parameter{gml.ExportCustomEdgeAttributes}) {
		t.Errorf("Parameters() = %v", params)
	}
}

func TestNewCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs")

	tests := []struct {
		name string
		data string
		want any
	}{
		{"disabled", "", cache.NullCache{}},
		{"memory", "[server.cache]\nenabled = true\nttl = \"1m\"\nmax_entries = 4\n", &cache.MemoryCache{}},
		{"file", "[server.cache]\nenabled = true\ndir = '" + dir + "'\n", &cache.FileCache{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.data))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			c, err := cfg.NewCache()
			if err != nil {
				t.Fatalf("NewCache() error = %v", err)
			}
			defer c.Close()

			if got, want := fmt.Sprintf("%T", c), fmt.Sprintf("%T", tt.want); got != want {
				t.Errorf("NewCache() type = %s, want %s", got, want)
			}
		})
	}

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache dir not created: %v", err)
	}
}
