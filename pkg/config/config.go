// Package config loads gmlexport settings from TOML files.
//
// A config file has an [export] table describing the GML document and a
// [server] table for the HTTP endpoint:
//
//	[export]
//	creator = "my tool"
//	parameters = ["vertex-labels", "edge-weights"]
//	vertex_graphics = true
//
//	[server]
//	addr = ":8080"
//	max_body_bytes = 10485760
//	shutdown_timeout = "10s"
//
//	[server.cache]
//	enabled = true
//	ttl = "1h"
//	max_entries = 256
//	dir = "/var/cache/gmlexport"
//
// Parameters may be listed by name, switched on individually, or both; the
// union is used. Environment variables GMLEXPORT_CREATOR and
// GMLEXPORT_SERVER_ADDR override the file.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gmlexport/pkg/cache"
	errs "github.com/matzehuels/gmlexport/pkg/errors"
	"github.com/matzehuels/gmlexport/pkg/gml"
	gmlio "github.com/matzehuels/gmlexport/pkg/io"
)

const (
	DefaultAddr            = "127.0.0.1:8080"
	DefaultMaxBodyBytes    = 10 << 20
	DefaultShutdownTimeout = 10 * time.Second
)

// Config is the complete gmlexport configuration.
type Config struct {
	Export Export `toml:"export"`
	Server Server `toml:"server"`
}

// Export configures the generated GML documents.
type Export struct {
	Creator    string   `toml:"creator"`
	Parameters []string `toml:"parameters"`

	VertexLabels   bool `toml:"vertex_labels"`
	EdgeLabels     bool `toml:"edge_labels"`
	EdgeWeights    bool `toml:"edge_weights"`
	VertexAttrs    bool `toml:"vertex_attributes"`
	EdgeAttrs      bool `toml:"edge_attributes"`
	VertexGraphics bool `toml:"vertex_graphics"`
	EdgeGraphics   bool `toml:"edge_graphics"`
}

// Server configures the HTTP export endpoint.
type Server struct {
	Addr            string   `toml:"addr"`
	MaxBodyBytes    int64    `toml:"max_body_bytes"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
	Cache           Cache    `toml:"cache"`
}

// Cache configures reuse of rendered documents by the HTTP endpoint. With a
// dir entries are kept on disk, otherwise in memory.
type Cache struct {
	Enabled    bool     `toml:"enabled"`
	TTL        Duration `toml:"ttl"`
	MaxEntries int      `toml:"max_entries"`
	Dir        string   `toml:"dir"`
}

// Duration is a time.Duration written as a Go duration string ("10s").
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero fields with their defaults.
func ApplyDefaults(cfg *Config) {
	if cfg.Export.Creator == "" {
		cfg.Export.Creator = gml.DefaultCreator
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultAddr
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.Server.ShutdownTimeout.Duration == 0 {
		cfg.Server.ShutdownTimeout.Duration = DefaultShutdownTimeout
	}
}

// Load reads a TOML file, applies defaults and environment overrides, and
// validates the result. Unknown keys are rejected so typos do not silently
// switch nothing on.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML config data. See [Load].
func Parse(data []byte) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errs.New(errs.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GMLEXPORT_CREATOR"); v != "" {
		cfg.Export.Creator = v
	}
	if v := os.Getenv("GMLEXPORT_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
}

// Validate checks the creator, parameter names and server limits.
func (c *Config) Validate() error {
	if err := errs.ValidateCreator(c.Export.Creator); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "export.creator")
	}
	if _, err := c.Parameters(); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "export.parameters")
	}
	if c.Server.Addr == "" {
		return errs.New(errs.ErrCodeInvalidConfig, "server.addr cannot be empty")
	}
	if c.Server.MaxBodyBytes < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "server.max_body_bytes must not be negative")
	}
	if c.Server.ShutdownTimeout.Duration < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "server.shutdown_timeout must not be negative")
	}
	if c.Server.Cache.TTL.Duration < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "server.cache.ttl must not be negative")
	}
	if c.Server.Cache.MaxEntries < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "server.cache.max_entries must not be negative")
	}
	return nil
}

// Parameters returns the switched-on export parameters in declaration order,
// merging the parameters list with the individual switches.
func (c *Config) Parameters() ([]gml.Parameter, error) {
	on := map[gml.Parameter]bool{
		gml.ExportVertexLabels:                   c.Export.VertexLabels,
		gml.ExportEdgeLabels:                     c.Export.EdgeLabels,
		gml.ExportEdgeWeights:                    c.Export.EdgeWeights,
		gml.ExportCustomVertexAttributes:         c.Export.VertexAttrs,
		gml.ExportCustomEdgeAttributes:           c.Export.EdgeAttrs,
		gml.ExportCustomVertexGraphicsAttributes: c.Export.VertexGraphics,
		gml.ExportCustomEdgeGraphicsAttributes:   c.Export.EdgeGraphics,
	}
	for _, name := range c.Export.Parameters {
		p, err := gml.ParseParameter(name)
		if err != nil {
			return nil, err
		}
		on[p] = true
	}

	var params []gml.Parameter
	for _, p := range gml.Parameters() {
		if on[p] {
			params = append(params, p)
		}
	}
	return params, nil
}

// ExportOptions converts the export table into options for package io.
func (c *Config) ExportOptions() (gmlio.Options, error) {
	params, err := c.Parameters()
	if err != nil {
		return gmlio.Options{}, err
	}
	return gmlio.Options{Creator: c.Export.Creator, Parameters: params}, nil
}

// NewCache builds the document cache described by the server table.
func (c *Config) NewCache() (cache.Cache, error) {
	cc := c.Server.Cache
	switch {
	case !cc.Enabled:
		return cache.NewNullCache(), nil
	case cc.Dir != "":
		fc, err := cache.NewFileCache(cc.Dir)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "server.cache.dir")
		}
		return fc, nil
	default:
		return cache.NewMemoryCache(cc.MaxEntries), nil
	}
}

// Enable switches p on in the export table.
func (c *Config) Enable(p gml.Parameter) {
	c.Export.Parameters = append(c.Export.Parameters, p.String())
}
