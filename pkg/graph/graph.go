package graph

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrLoopNotAllowed is returned by [Graph.AddEdge] for a self-loop when
	// [Options.AllowLoops] is off.
	ErrLoopNotAllowed = errors.New("self-loops are not allowed")

	// ErrMultiEdgeNotAllowed is returned by [Graph.AddEdge] for a parallel
	// edge when [Options.AllowMultiEdges] is off.
	ErrMultiEdgeNotAllowed = errors.New("parallel edges are not allowed")

	// ErrUnknownEdge is returned by [Graph.SetEdgeWeight] and
	// [Graph.RemoveEdge] for an edge that does not belong to the graph.
	ErrUnknownEdge = errors.New("unknown edge")
)

// DefaultWeight is the weight readers assign to edges of a weighted graph
// that do not specify one.
const DefaultWeight = 1.0

// Metadata stores arbitrary key-value pairs attached to nodes or edges.
// Values are converted to GML values on export; see gml.ValueOf for the
// supported types.
type Metadata map[string]any

// Node is a vertex of the graph.
type Node struct {
	ID       string   // Unique identifier
	Label    string   // Display label; the ID is used when empty
	Meta     Metadata // Custom attributes (never nil after AddNode)
	Graphics Metadata // Graphics block attributes (never nil after AddNode)
}

// DisplayLabel returns Label, or ID when Label is empty.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge connects two nodes. For undirected graphs From and To are simply the
// endpoints in the order they were given.
type Edge struct {
	From     string   // Source node ID
	To       string   // Target node ID
	Weight   float64  // Only meaningful in weighted graphs
	Label    string   // Display label; "(From : To)" is used when empty
	Meta     Metadata // Custom attributes (never nil after AddEdge)
	Graphics Metadata // Graphics block attributes (never nil after AddEdge)
}

// String renders the edge as "(From : To)".
func (e *Edge) String() string { return "(" + e.From + " : " + e.To + ")" }

// DisplayLabel returns Label, or the String form when Label is empty.
func (e *Edge) DisplayLabel() string {
	if e.Label != "" {
		return e.Label
	}
	return e.String()
}

// Options selects the kind of graph built by [New].
type Options struct {
	Directed        bool
	Weighted        bool
	AllowLoops      bool
	AllowMultiEdges bool
}

// Graph is an insertion-ordered graph.
//
// The zero value is not usable - use New to create a valid Graph instance.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	opts     Options
	nodes    map[string]*Node
	order    []*Node
	edges    []*Edge
	outgoing map[string][]*Edge // nodeID -> edges leaving it (both endpoints when undirected)
	incoming map[string][]*Edge // nodeID -> edges entering it (directed only)
}

// New creates an empty graph of the given kind.
func New(opts Options) *Graph {
	return &Graph{
		opts:     opts,
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]*Edge),
		incoming: make(map[string][]*Edge),
	}
}

// Options returns the options the graph was created with.
func (g *Graph) Options() Options { return g.opts }

// AddNode appends a node. Returns ErrInvalidNodeID if the node ID is empty,
// or ErrDuplicateNodeID if a node with the same ID already exists. Nil
// metadata maps are replaced with empty ones.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	if n.Graphics == nil {
		n.Graphics = Metadata{}
	}
	node := &n
	g.nodes[node.ID] = node
	g.order = append(g.order, node)
	return nil
}

// AddEdge appends an edge between two existing nodes and returns its handle.
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode for missing
// endpoints, ErrLoopNotAllowed for a forbidden self-loop, and
// ErrMultiEdgeNotAllowed for a forbidden parallel edge.
func (g *Graph) AddEdge(e Edge) (*Edge, error) {
	if _, ok := g.nodes[e.From]; !ok {
		return nil, ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return nil, ErrUnknownTargetNode
	}
	if e.From == e.To && !g.opts.AllowLoops {
		return nil, ErrLoopNotAllowed
	}
	if !g.opts.AllowMultiEdges && g.HasEdge(e.From, e.To) {
		return nil, ErrMultiEdgeNotAllowed
	}
	if e.Meta == nil {
		e.Meta = Metadata{}
	}
	if e.Graphics == nil {
		e.Graphics = Metadata{}
	}
	edge := &e
	g.edges = append(g.edges, edge)
	g.outgoing[e.From] = append(g.outgoing[e.From], edge)
	if g.opts.Directed {
		g.incoming[e.To] = append(g.incoming[e.To], edge)
	} else if e.From != e.To {
		g.outgoing[e.To] = append(g.outgoing[e.To], edge)
	}
	return edge, nil
}

// HasEdge reports whether an edge from -> to exists. In undirected graphs
// the direction is ignored.
func (g *Graph) HasEdge(from, to string) bool {
	for _, e := range g.outgoing[from] {
		if e.From == from && e.To == to {
			return true
		}
		if !g.opts.Directed && e.From == to && e.To == from {
			return true
		}
	}
	return false
}

// SetEdgeWeight sets the weight of e. Returns ErrUnknownEdge if e does not
// belong to the graph.
func (g *Graph) SetEdgeWeight(e *Edge, w float64) error {
	if !slices.Contains(g.edges, e) {
		return ErrUnknownEdge
	}
	e.Weight = w
	return nil
}

// RemoveEdge removes e from the graph. Returns ErrUnknownEdge if e does not
// belong to the graph.
func (g *Graph) RemoveEdge(e *Edge) error {
	if !slices.Contains(g.edges, e) {
		return ErrUnknownEdge
	}
	same := func(x *Edge) bool { return x == e }
	g.edges = slices.DeleteFunc(g.edges, same)
	g.outgoing[e.From] = slices.DeleteFunc(g.outgoing[e.From], same)
	g.outgoing[e.To] = slices.DeleteFunc(g.outgoing[e.To], same)
	g.incoming[e.To] = slices.DeleteFunc(g.incoming[e.To], same)
	return nil
}

// RemoveNode removes the node with the given ID and every edge touching it.
// It is a no-op for unknown IDs.
func (g *Graph) RemoveNode(id string) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	for _, e := range slices.Clone(g.edges) {
		if e.From == id || e.To == id {
			_ = g.RemoveEdge(e)
		}
	}
	delete(g.nodes, id)
	delete(g.outgoing, id)
	delete(g.incoming, id)
	g.order = slices.DeleteFunc(g.order, func(n *Node) bool { return n.ID == id })
}

// Nodes returns all nodes in insertion order. The slice is a copy, but the
// pointers refer to the graph's nodes.
func (g *Graph) Nodes() []*Node { return slices.Clone(g.order) }

// Node returns the node with the given ID and true, or nil and false if not found.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// EdgesOf returns the edges incident to the node: outgoing edges for
// directed graphs, all incident edges for undirected graphs.
func (g *Graph) EdgesOf(id string) []*Edge { return slices.Clone(g.outgoing[id]) }

// OutDegree returns the number of edges returned by EdgesOf.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of incoming edges for directed graphs and the
// degree for undirected graphs.
func (g *Graph) InDegree(id string) int {
	if g.opts.Directed {
		return len(g.incoming[id])
	}
	return len(g.outgoing[id])
}

// The methods below let *Graph serve as gml.Graph[string, *Edge] and
// gml.WeightedGraph[*Edge].

// Vertices returns node IDs in insertion order.
func (g *Graph) Vertices() []string {
	ids := make([]string, len(g.order))
	for i, n := range g.order {
		ids[i] = n.ID
	}
	return ids
}

// Edges returns all edges in insertion order. The slice is a copy, but the
// pointers are the edges' handles.
func (g *Graph) Edges() []*Edge { return slices.Clone(g.edges) }

// EdgeSource returns the ID of the edge's source node.
func (g *Graph) EdgeSource(e *Edge) string { return e.From }

// EdgeTarget returns the ID of the edge's target node.
func (g *Graph) EdgeTarget(e *Edge) string { return e.To }

// Directed reports whether edges are directed.
func (g *Graph) Directed() bool { return g.opts.Directed }

// Weighted reports whether edge weights are meaningful.
func (g *Graph) Weighted() bool { return g.opts.Weighted }

// EdgeWeight returns the weight of e.
func (g *Graph) EdgeWeight(e *Edge) float64 { return e.Weight }
