// Package io reads graph files and writes them as GML documents.
//
// # Overview
//
// Graphs are described in a small JSON or YAML format and loaded into a
// [graph.Graph]. From there [WriteGML] and [ExportGML] produce GML through
// package gml, wiring node and edge data into the exporter's providers.
//
// # Graph Format
//
//	{
//	  "directed": false,
//	  "weighted": true,
//	  "nodes": [
//	    {"id": "v1", "label": "Start", "attrs": {"color": "red"}, "graphics": {"fill": "#FF0000"}},
//	    {"id": "v2"}
//	  ],
//	  "edges": [
//	    {"from": "v1", "to": "v2", "weight": 2.0, "attrs": {"name": "first edge"}}
//	  ]
//	}
//
// YAML files use the same field names. Node fields:
//   - id: Unique string identifier (required)
//   - label: Display label (defaults to the id)
//   - attrs: Custom attributes, written when vertex-attributes is on
//   - graphics: Graphics block attributes, written when vertex-graphics is on
//
// Edge fields are from, to, weight (defaults to 1.0), label (defaults to
// "(from : to)"), attrs and graphics. Attribute values must be integers,
// reals, strings or booleans. Maps carry no order, so attributes are
// written in sorted key order.
//
// # Import
//
// Use [ImportGraph] to read a file (the format follows the extension), or
// [ReadJSON] and [ReadYAML] to read from any io.Reader:
//
//	g, err := io.ImportGraph(ctx, "graph.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Export
//
//	opts := io.Options{Parameters: []gml.Parameter{gml.ExportVertexLabels}}
//	if err := io.WriteGML(ctx, g, os.Stdout, opts); err != nil {
//	    log.Fatal(err)
//	}
//
// [WriteJSON] writes the graph back in the input format.
//
// # Concurrency
//
// All functions in this package are safe to call concurrently with other
// readers of the same graph, but not with concurrent modifications to it.
package io
