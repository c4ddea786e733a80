package io

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	errs "github.com/matzehuels/gmlexport/pkg/errors"
	"github.com/matzehuels/gmlexport/pkg/gml"
	"github.com/matzehuels/gmlexport/pkg/graph"
	"github.com/matzehuels/gmlexport/pkg/observability"
)

// Options selects what a GML export of a [graph.Graph] contains.
type Options struct {
	// Creator overrides the Creator header. Empty keeps gml.DefaultCreator.
	Creator string
	// Parameters lists the export switches to turn on.
	Parameters []gml.Parameter
}

// NewExporter returns a GML exporter for [graph.Graph] configured by opts.
//
// Vertex labels come from [graph.Node.DisplayLabel] and edge labels from
// [graph.Edge.DisplayLabel]. Custom attributes and graphics blocks are read
// from the Meta and Graphics maps in sorted key order. A value that cannot be
// converted fails the export with [gml.UnsupportedAttributeTypeError].
func NewExporter(g *graph.Graph, opts Options) *gml.Exporter[string, *graph.Edge] {
	x := gml.New[string, *graph.Edge]()
	if opts.Creator != "" {
		x.SetCreator(opts.Creator)
	}
	for _, p := range opts.Parameters {
		x.SetParameter(p, true)
	}

	nodeMeta := func(pick func(*graph.Node) graph.Metadata) func(string) gml.Attributes {
		return func(id string) gml.Attributes {
			n, ok := g.Node(id)
			if !ok {
				return nil
			}
			attrs, _ := attributes(pick(n)) // failures travel in the invalid values
			return attrs
		}
	}
	edgeMeta := func(pick func(*graph.Edge) graph.Metadata) func(*graph.Edge) gml.Attributes {
		return func(e *graph.Edge) gml.Attributes {
			attrs, _ := attributes(pick(e)) // failures travel in the invalid values
			return attrs
		}
	}

	x.SetVertexLabelProvider(func(id string) string {
		if n, ok := g.Node(id); ok {
			return n.DisplayLabel()
		}
		return id
	})
	x.SetEdgeLabelProvider((*graph.Edge).DisplayLabel)
	x.SetVertexAttributeProvider(nodeMeta(func(n *graph.Node) graph.Metadata { return n.Meta }))
	x.SetVertexGraphicsProvider(nodeMeta(func(n *graph.Node) graph.Metadata { return n.Graphics }))
	x.SetEdgeAttributeProvider(edgeMeta(func(e *graph.Edge) graph.Metadata { return e.Meta }))
	x.SetEdgeGraphicsProvider(edgeMeta(func(e *graph.Edge) graph.Metadata { return e.Graphics }))
	return x
}

// WriteGML encodes g as a GML document and writes it to w.
//
// Nothing is written when the export fails. Errors carry the codes of
// package errors: ATTRIBUTE_CONFLICT and UNSUPPORTED_ATTRIBUTE for bad
// attribute maps, SINK_WRITE when w fails. The registered pipeline hooks
// observe the export.
func WriteGML(ctx context.Context, g *graph.Graph, w io.Writer, opts Options) (err error) {
	hooks := observability.Pipeline()
	hooks.OnExportStart(ctx, g.NodeCount(), g.EdgeCount())
	start := time.Now()
	cw := &countingWriter{w: w}
	defer func() {
		hooks.OnExportComplete(ctx, cw.n, time.Since(start), err)
	}()

	return NewExporter(g, opts).Export(g, cw)
}

// ExportGML writes g as a GML document to a file at path. The file is only
// created once the document has been built successfully.
func ExportGML(ctx context.Context, g *graph.Graph, path string, opts Options) error {
	if err := errs.ValidateOutputPath(path); err != nil {
		return err
	}

	var doc bytes.Buffer
	if err := WriteGML(ctx, g, &doc, opts); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.ErrCodeSinkWrite, err, "create %s", path)
	}
	if _, err := f.Write(doc.Bytes()); err != nil {
		f.Close()
		return errs.Wrap(errs.ErrCodeSinkWrite, err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return errs.Wrap(errs.ErrCodeSinkWrite, err, "close %s", path)
	}
	return nil
}

// WriteJSON encodes g in the format read by [ReadJSON].
// Exporting the result of ReadJSON and reading it back yields the same graph.
func WriteJSON(g *graph.Graph, w io.Writer) error {
	out := document{
		Directed: g.Directed(),
		Weighted: g.Weighted(),
		Nodes:    make([]node, 0, g.NodeCount()),
		Edges:    make([]edge, 0, g.EdgeCount()),
	}
	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, node{ID: n.ID, Label: n.Label, Attrs: n.Meta, Graphics: n.Graphics})
	}
	for _, e := range g.Edges() {
		ed := edge{From: e.From, To: e.To, Label: e.Label, Attrs: e.Meta, Graphics: e.Graphics}
		if g.Weighted() {
			w := e.Weight
			ed.Weight = &w
		}
		out.Edges = append(out.Edges, ed)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
