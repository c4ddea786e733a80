package gml

import (
	"fmt"
	"io"
	"strings"

	errs "github.com/matzehuels/gmlexport/pkg/errors"
)

// DefaultCreator is written to the Creator header unless overridden with
// [Exporter.SetCreator].
const DefaultCreator = "JGraphT GML Exporter"

// Graph is the read-only view of a graph the exporter consumes.
//
// Vertices and Edges must return elements in a stable order; that order
// decides id assignment and block order. EdgeSource and EdgeTarget must
// return vertices that Vertices yields.
type Graph[V, E comparable] interface {
	Vertices() []V
	Edges() []E
	EdgeSource(e E) V
	EdgeTarget(e E) V
	Directed() bool
}

// WeightedGraph is implemented by graphs that carry edge weights.
// Weights are only exported when Weighted reports true.
type WeightedGraph[E comparable] interface {
	Weighted() bool
	EdgeWeight(e E) float64
}

// Parameter is an independent export switch. All parameters default to off.
type Parameter int

const (
	// ExportVertexLabels writes a label line in every node block.
	ExportVertexLabels Parameter = iota
	// ExportEdgeLabels writes a label line in every edge block.
	ExportEdgeLabels
	// ExportEdgeWeights writes a weight line in every edge block of a
	// weighted graph. It has no effect on unweighted graphs.
	ExportEdgeWeights
	// ExportCustomVertexAttributes writes the vertex attribute provider's map.
	ExportCustomVertexAttributes
	// ExportCustomEdgeAttributes writes the edge attribute provider's map.
	ExportCustomEdgeAttributes
	// ExportCustomVertexGraphicsAttributes writes a graphics block per node.
	ExportCustomVertexGraphicsAttributes
	// ExportCustomEdgeGraphicsAttributes writes a graphics block per edge.
	ExportCustomEdgeGraphicsAttributes

	numParameters
)

var parameterNames = [numParameters]string{
	ExportVertexLabels:                   "vertex-labels",
	ExportEdgeLabels:                     "edge-labels",
	ExportEdgeWeights:                    "edge-weights",
	ExportCustomVertexAttributes:         "vertex-attributes",
	ExportCustomEdgeAttributes:           "edge-attributes",
	ExportCustomVertexGraphicsAttributes: "vertex-graphics",
	ExportCustomEdgeGraphicsAttributes:   "edge-graphics",
}

// String returns the kebab-case name used by the CLI, config and HTTP API.
func (p Parameter) String() string {
	if p >= 0 && p < numParameters {
		return parameterNames[p]
	}
	return fmt.Sprintf("Parameter(%d)", int(p))
}

// Parameters returns every parameter in declaration order.
func Parameters() []Parameter {
	ps := make([]Parameter, numParameters)
	for i := range ps {
		ps[i] = Parameter(i)
	}
	return ps
}

// ParseParameter maps a parameter name back to its Parameter. Names are
// matched case-insensitively and underscores are accepted for dashes.
func ParseParameter(name string) (Parameter, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for i, n := range parameterNames {
		if n == norm {
			return Parameter(i), nil
		}
	}
	return 0, errs.New(errs.ErrCodeInvalidParameter, "unknown export parameter %q", name)
}

// Exporter writes graphs as GML documents.
//
// An Exporter holds only configuration and provider functions; all
// per-document state (id counters, buffers) lives inside one [Exporter.Export]
// call. It may be reused for any number of sequential exports and shared by
// concurrent exports as long as nobody reconfigures it meanwhile.
type Exporter[V, E comparable] struct {
	creator string
	params  [numParameters]bool

	vertexIDs func(V) int
	edgeIDs   func(E) int

	vertexLabels      func(V) string
	edgeLabels        func(E) string
	defaultEdgeLabels bool

	vertexAttrs func(V) Attributes
	edgeAttrs   func(E) Attributes

	vertexGraphics func(V) Attributes
	edgeGraphics   func(E) Attributes
}

// New returns an Exporter with every parameter off, sequential ids, and
// default label providers: vertices render with fmt.Sprint and edges as
// "(<source> : <target>)". Labels are only written once the matching
// parameter is switched on.
func New[V, E comparable]() *Exporter[V, E] {
	return &Exporter[V, E]{
		creator:           DefaultCreator,
		vertexLabels:      func(v V) string { return fmt.Sprint(v) },
		defaultEdgeLabels: true,
	}
}

// SetCreator sets the tool name written to the Creator header.
func (x *Exporter[V, E]) SetCreator(name string) { x.creator = name }

// Creator returns the tool name written to the Creator header.
func (x *Exporter[V, E]) Creator() string { return x.creator }

// SetParameter switches p on or off.
func (x *Exporter[V, E]) SetParameter(p Parameter, on bool) {
	if p >= 0 && p < numParameters {
		x.params[p] = on
	}
}

// IsParameter reports whether p is switched on.
func (x *Exporter[V, E]) IsParameter(p Parameter) bool {
	return p >= 0 && p < numParameters && x.params[p]
}

// SetVertexIDProvider replaces sequential vertex ids with fn. Ids must be
// positive and unique per vertex. A nil fn restores sequential ids.
func (x *Exporter[V, E]) SetVertexIDProvider(fn func(V) int) { x.vertexIDs = fn }

// SetEdgeIDProvider replaces sequential edge ids with fn. Ids must be
// positive and unique per edge. A nil fn restores sequential ids.
func (x *Exporter[V, E]) SetEdgeIDProvider(fn func(E) int) { x.edgeIDs = fn }

// SetVertexLabelProvider sets the vertex label function. Nil removes labels.
func (x *Exporter[V, E]) SetVertexLabelProvider(fn func(V) string) { x.vertexLabels = fn }

// SetEdgeLabelProvider sets the edge label function, replacing the
// "(<source> : <target>)" default. Nil removes labels.
func (x *Exporter[V, E]) SetEdgeLabelProvider(fn func(E) string) {
	x.edgeLabels = fn
	x.defaultEdgeLabels = false
}

// SetVertexAttributeProvider sets the custom vertex attribute function.
func (x *Exporter[V, E]) SetVertexAttributeProvider(fn func(V) Attributes) { x.vertexAttrs = fn }

// SetEdgeAttributeProvider sets the custom edge attribute function.
func (x *Exporter[V, E]) SetEdgeAttributeProvider(fn func(E) Attributes) { x.edgeAttrs = fn }

// SetVertexGraphicsProvider sets the function filling node graphics blocks.
func (x *Exporter[V, E]) SetVertexGraphicsProvider(fn func(V) Attributes) { x.vertexGraphics = fn }

// SetEdgeGraphicsProvider sets the function filling edge graphics blocks.
func (x *Exporter[V, E]) SetEdgeGraphicsProvider(fn func(E) Attributes) { x.edgeGraphics = fn }

// export carries the state of a single Export call.
type export[V, E comparable] struct {
	cfg      Exporter[V, E]
	g        Graph[V, E]
	out      emitter
	vertices *idAssigner[V]
	edges    *idAssigner[E]
}

// Export writes g as a GML document to w.
//
// The document is built in memory first and handed to w in a single Write,
// so a failing export leaves w untouched. Errors are one of
// [*AttributeConflictError], [*UnsupportedAttributeTypeError],
// [*DuplicateIDError], or an [*errs.Error] with code INVALID_ID,
// UNKNOWN_VERTEX or SINK_WRITE (the latter wraps the writer's error).
func (x *Exporter[V, E]) Export(g Graph[V, E], w io.Writer) error {
	ex := &export[V, E]{
		cfg:      *x,
		g:        g,
		vertices: newIDAssigner(KindVertex, x.vertexIDs),
		edges:    newIDAssigner(KindEdge, x.edgeIDs),
	}
	if err := ex.document(); err != nil {
		return err
	}

	data := ex.out.Bytes()
	n, err := w.Write(data)
	if err != nil {
		return errs.Wrap(errs.ErrCodeSinkWrite, err, "write gml document")
	}
	if n != len(data) {
		return errs.Wrap(errs.ErrCodeSinkWrite, io.ErrShortWrite, "write gml document: %d of %d bytes", n, len(data))
	}
	return nil
}

func (ex *export[V, E]) document() error {
	ex.out.str("Creator", ex.cfg.creator)
	ex.out.int("Version", 1)

	ex.out.open("graph")
	ex.out.str("label", "")
	directed := 0
	if ex.g.Directed() {
		directed = 1
	}
	ex.out.int("directed", directed)

	for _, v := range ex.g.Vertices() {
		if err := ex.node(v); err != nil {
			return err
		}
	}

	var weights WeightedGraph[E]
	if wg, ok := ex.g.(WeightedGraph[E]); ok && wg.Weighted() && ex.cfg.params[ExportEdgeWeights] {
		weights = wg
	}
	for _, e := range ex.g.Edges() {
		if err := ex.edge(e, weights); err != nil {
			return err
		}
	}

	ex.out.close()
	return nil
}

func (ex *export[V, E]) node(v V) error {
	id, err := ex.vertices.assign(v)
	if err != nil {
		return err
	}

	ex.out.open("node")
	ex.out.int("id", id)

	if ex.cfg.params[ExportVertexLabels] && ex.cfg.vertexLabels != nil {
		ex.out.str("label", ex.cfg.vertexLabels(v))
	}

	if ex.cfg.params[ExportCustomVertexGraphicsAttributes] && ex.cfg.vertexGraphics != nil {
		if gfx := ex.cfg.vertexGraphics(v); len(gfx) > 0 {
			if err := ex.out.block("graphics", gfx); err != nil {
				return fmt.Errorf("vertex %v graphics: %w", v, err)
			}
		}
	}

	if ex.cfg.params[ExportCustomVertexAttributes] && ex.cfg.vertexAttrs != nil {
		attrs := ex.cfg.vertexAttrs(v)
		if err := Validate(KindVertex, fmt.Sprint(v), attrs); err != nil {
			return err
		}
		if err := ex.out.attributes(attrs); err != nil {
			return fmt.Errorf("vertex %v: %w", v, err)
		}
	}

	ex.out.close()
	return nil
}

func (ex *export[V, E]) edge(e E, weights WeightedGraph[E]) error {
	id, err := ex.edges.assign(e)
	if err != nil {
		return err
	}
	src, tgt := ex.g.EdgeSource(e), ex.g.EdgeTarget(e)
	srcID, ok := ex.vertices.lookup(src)
	if !ok {
		return errs.New(errs.ErrCodeUnknownVertex, "edge %v: source %v is not a vertex of the graph", e, src)
	}
	tgtID, ok := ex.vertices.lookup(tgt)
	if !ok {
		return errs.New(errs.ErrCodeUnknownVertex, "edge %v: target %v is not a vertex of the graph", e, tgt)
	}

	ex.out.open("edge")
	ex.out.int("id", id)
	ex.out.int("source", srcID)
	ex.out.int("target", tgtID)

	if ex.cfg.params[ExportEdgeLabels] {
		switch {
		case ex.cfg.edgeLabels != nil:
			ex.out.str("label", ex.cfg.edgeLabels(e))
		case ex.cfg.defaultEdgeLabels:
			ex.out.str("label", fmt.Sprintf("(%v : %v)", src, tgt))
		}
	}

	if weights != nil {
		if err := ex.out.value("weight", Real(weights.EdgeWeight(e))); err != nil {
			return fmt.Errorf("edge %v: %w", e, err)
		}
	}

	if ex.cfg.params[ExportCustomEdgeGraphicsAttributes] && ex.cfg.edgeGraphics != nil {
		if gfx := ex.cfg.edgeGraphics(e); len(gfx) > 0 {
			if err := ex.out.block("graphics", gfx); err != nil {
				return fmt.Errorf("edge %v graphics: %w", e, err)
			}
		}
	}

	if ex.cfg.params[ExportCustomEdgeAttributes] && ex.cfg.edgeAttrs != nil {
		attrs := ex.cfg.edgeAttrs(e)
		if err := Validate(KindEdge, fmt.Sprint(e), attrs); err != nil {
			return err
		}
		if err := ex.out.attributes(attrs); err != nil {
			return fmt.Errorf("edge %v: %w", e, err)
		}
	}

	ex.out.close()
	return nil
}
