// Package pkg provides the libraries behind gmlexport, a GML (Graph Modelling
// Language) writer for directed and undirected graphs.
//
// # Overview
//
// The pkg directory is organized by concern:
//
//  1. [gml] - The exporter: id assignment, attribute validation and the
//     GML emitter, generic over any graph type
//  2. [graph] - A concrete in-memory graph used by the CLI and server
//  3. [io] - JSON/YAML import and GML file export for [graph] values
//  4. [config] - TOML configuration for export switches and the server
//  5. [server] - HTTP export endpoint
//  6. [cache] - Document caches used by the server
//  7. [observability] - Hooks for import, export and HTTP events
//  8. [errors] - Coded errors shared by all packages
//
// # Architecture
//
// The typical data flow:
//
//	graph.json / graph.yaml / request body
//	         ↓
//	    [io] package (decode into a [graph] value)
//	         ↓
//	    [gml] package (assign ids, validate attributes, emit)
//	         ↓
//	    GML document (file, stdout or HTTP response)
//
// # Quick Start
//
// Export any graph type by describing it through [gml.Graph]:
//
//	x := gml.New[string, *graph.Edge]()
//	x.SetParameter(gml.ExportVertexLabels, true)
//	if err := x.Export(g, os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
//
// Or convert a file with package io:
//
//	g, _ := gmlio.ImportGraph(ctx, "graph.json")
//	err := gmlio.ExportGML(ctx, g, "graph.gml", gmlio.Options{
//	    Parameters: []gml.Parameter{gml.ExportEdgeWeights},
//	})
//
// # Testing
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/gml/...       # Specific package
//	go test -run Example ./...  # Examples only
//
// [gml]: https://pkg.go.dev/github.com/matzehuels/gmlexport/pkg/gml
// [graph]: https://pkg.go.dev/github.com/matzehuels/gmlexport/pkg/graph
// [io]: https://pkg.go.dev/github.com/matzehuels/gmlexport/pkg/io
// [config]: https://pkg.go.dev/github.com/matzehuels/gmlexport/pkg/config
// [server]: https://pkg.go.dev/github.com/matzehuels/gmlexport/pkg/server
// [cache]: https://pkg.go.dev/github.com/matzehuels/gmlexport/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/gmlexport/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/gmlexport/pkg/errors
package pkg
