package io

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/gmlexport/pkg/errors"
	"github.com/matzehuels/gmlexport/pkg/gml"
	"github.com/matzehuels/gmlexport/pkg/graph"
	"github.com/matzehuels/gmlexport/pkg/observability"
)

type document struct {
	Directed bool   `json:"directed" yaml:"directed"`
	Weighted bool   `json:"weighted" yaml:"weighted"`
	Nodes    []node `json:"nodes" yaml:"nodes"`
	Edges    []edge `json:"edges" yaml:"edges"`
}

type node struct {
	ID       string         `json:"id" yaml:"id"`
	Label    string         `json:"label,omitempty" yaml:"label,omitempty"`
	Attrs    graph.Metadata `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Graphics graph.Metadata `json:"graphics,omitempty" yaml:"graphics,omitempty"`
}

type edge struct {
	From     string         `json:"from" yaml:"from"`
	To       string         `json:"to" yaml:"to"`
	Weight   *float64       `json:"weight,omitempty" yaml:"weight,omitempty"`
	Label    string         `json:"label,omitempty" yaml:"label,omitempty"`
	Attrs    graph.Metadata `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Graphics graph.Metadata `json:"graphics,omitempty" yaml:"graphics,omitempty"`
}

// ReadJSON decodes a JSON graph from r.
//
// The input must be a JSON object with "nodes" and "edges" arrays:
//
//	{
//	  "directed": true,
//	  "nodes": [{"id": "a"}, {"id": "b"}],
//	  "edges": [{"from": "a", "to": "b"}]
//	}
//
// Numbers inside attrs and graphics keep their literal form: integers become
// GML integers and everything else becomes a real.
//
// ReadJSON returns an INVALID_INPUT error if the JSON is malformed, a node
// has an empty or duplicate ID, an edge references an unknown node, or an
// attribute value has no GML representation. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var data document
	if err := dec.Decode(&data); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode json")
	}
	return build(data)
}

// ReadYAML decodes a YAML graph from r. The field names are the same as for
// [ReadJSON]. ReadYAML does not close r.
func ReadYAML(r io.Reader) (*graph.Graph, error) {
	var data document
	if err := yaml.NewDecoder(r).Decode(&data); err != nil {
		if err == io.EOF {
			return graph.New(graph.Options{}), nil
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode yaml")
	}
	return build(data)
}

// Read decodes a graph in the given format.
func Read(r io.Reader, format errs.GraphFormat) (*graph.Graph, error) {
	switch format {
	case errs.FormatYAML:
		return ReadYAML(r)
	case errs.FormatJSON:
		return ReadJSON(r)
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported graph format %q", format)
	}
}

// ReadBytes decodes a graph from an in-memory buffer.
func ReadBytes(data []byte, format errs.GraphFormat) (*graph.Graph, error) {
	return Read(bytes.NewReader(data), format)
}

// ImportGraph reads a graph file at path. The format is chosen from the
// extension (.json, .yaml or .yml); see [errs.DetectGraphFormat].
//
// ImportGraph returns a FILE_NOT_FOUND error if the file does not exist,
// and the same validation errors as [ReadJSON] otherwise. The registered
// pipeline hooks observe the import.
func ImportGraph(ctx context.Context, path string) (g *graph.Graph, err error) {
	hooks := observability.Pipeline()
	hooks.OnImportStart(ctx, path)
	start := time.Now()
	defer func() {
		var nodes, edges int
		if g != nil {
			nodes, edges = g.NodeCount(), g.EdgeCount()
		}
		hooks.OnImportComplete(ctx, path, nodes, edges, time.Since(start), err)
	}()

	format, err := errs.DetectGraphFormat(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	g, err = Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func build(data document) (*graph.Graph, error) {
	g := graph.New(graph.Options{
		Directed:        data.Directed,
		Weighted:        data.Weighted,
		AllowLoops:      true,
		AllowMultiEdges: true,
	})

	for _, n := range data.Nodes {
		if err := checkMetadata(n.Attrs); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "node %s attrs", n.ID)
		}
		if err := checkMetadata(n.Graphics); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "node %s graphics", n.ID)
		}
		nd := graph.Node{ID: n.ID, Label: n.Label, Meta: n.Attrs, Graphics: n.Graphics}
		if err := g.AddNode(nd); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "node %q", n.ID)
		}
	}
	for _, e := range data.Edges {
		if err := checkMetadata(e.Attrs); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "edge %s->%s attrs", e.From, e.To)
		}
		if err := checkMetadata(e.Graphics); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "edge %s->%s graphics", e.From, e.To)
		}
		ed := graph.Edge{From: e.From, To: e.To, Weight: graph.DefaultWeight, Label: e.Label, Meta: e.Attrs, Graphics: e.Graphics}
		if e.Weight != nil {
			ed.Weight = *e.Weight
		}
		if _, err := g.AddEdge(ed); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "edge %s->%s", e.From, e.To)
		}
	}

	return g, nil
}

// checkMetadata rejects values that have no GML representation.
func checkMetadata(m graph.Metadata) error {
	_, err := attributes(m)
	return err
}

// attributes converts m into GML attributes in sorted key order. Every key
// is kept: a value that cannot be converted becomes an invalid gml.Value
// that fails when written, and the first such failure is also returned.
func attributes(m graph.Metadata) (gml.Attributes, error) {
	if len(m) == 0 {
		return nil, nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var first error
	attrs := make(gml.Attributes, 0, len(keys))
	for _, k := range keys {
		v, err := gml.ValueOf(m[k])
		if err != nil && first == nil {
			if ue, ok := err.(*gml.UnsupportedAttributeTypeError); ok {
				ue.Key = k
			}
			first = err
		}
		attrs = append(attrs, gml.Attr(k, v))
	}
	return attrs, first
}
