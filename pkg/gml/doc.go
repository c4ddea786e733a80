// Package gml writes graphs in the Graph Modelling Language.
//
// # Overview
//
// GML is a plain-text, bracket-nested format: a document is a Creator line,
// a Version line, and one graph block holding node and edge blocks. Every
// nesting level is indented by one tab and every line ends with "\n":
//
//	Creator "JGraphT GML Exporter"
//	Version 1
//	graph
//	[
//		label ""
//		directed 1
//		node
//		[
//			id 1
//		]
//		edge
//		[
//			id 1
//			source 1
//			target 2
//		]
//	]
//
// # Exporting
//
// An [Exporter] is generic over the vertex and edge handle types. Any type
// implementing [Graph] can be exported; graphs that also implement
// [WeightedGraph] can have their weights written:
//
//	x := gml.New[string, *graph.Edge]()
//	x.SetParameter(gml.ExportVertexLabels, true)
//	x.SetParameter(gml.ExportEdgeWeights, true)
//	if err := x.Export(g, os.Stdout); err != nil {
//	    return err
//	}
//
// Optional content is controlled by [Parameter] switches, all off by
// default, plus provider functions for labels, ids, custom attributes and
// graphics blocks. A switch without a provider writes nothing.
//
// # Attributes
//
// Custom attributes are ordered [Attributes] of [Value]s. A Value is an
// integer, a real, a string or a boolean. Custom keys must not collide with
// the structural keys of their element kind (see [ReservedKeys]); a
// collision aborts the export with an [*AttributeConflictError] before any
// byte reaches the writer.
package gml
