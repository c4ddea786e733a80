// Package graph provides the in-memory graph model that gmlexport reads
// from JSON or YAML and hands to the GML exporter.
//
// # Overview
//
// A [Graph] is directed or undirected, weighted or unweighted, and keeps
// nodes and edges in insertion order. That order is what the exporter uses
// for id assignment, so building the same graph twice yields byte-identical
// GML.
//
//	g := graph.New(graph.Options{Weighted: true})
//	_ = g.AddNode(graph.Node{ID: "v1"})
//	_ = g.AddNode(graph.Node{ID: "v2"})
//	e, _ := g.AddEdge(graph.Edge{From: "v1", To: "v2", Weight: 2})
//
// Edges are handled by pointer: the *Edge returned from [Graph.AddEdge] is the
// edge's identity, which keeps parallel edges in multigraphs distinct.
//
// # Simple Graphs
//
// By default a graph rejects self-loops and parallel edges, the way a simple
// graph does. Set [Options.AllowLoops] and [Options.AllowMultiEdges] to lift
// either restriction. In an undirected graph the edge a-b is parallel to b-a.
//
// # Metadata
//
// Nodes and edges carry two [Metadata] maps: Meta for custom attributes and
// Graphics for the GML graphics block. Metadata maps are never nil after
// AddNode/AddEdge.
//
// # Concurrency
//
// Graph instances are not safe for concurrent use. Exporting a graph only
// reads it, so several exports of the same unmodified graph may run in
// parallel.
package graph
