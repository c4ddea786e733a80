package gml_test

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/gmlexport/pkg/gml"
)

type road struct{ from, to string }

type roadMap struct {
	towns []string
	roads []road
	km    map[road]float64
}

func (m roadMap) Vertices() []string        { return m.towns }
func (m roadMap) Edges() []road             { return m.roads }
func (m roadMap) EdgeSource(r road) string  { return r.from }
func (m roadMap) EdgeTarget(r road) string  { return r.to }
func (m roadMap) Directed() bool            { return false }
func (m roadMap) Weighted() bool            { return true }
func (m roadMap) EdgeWeight(r road) float64 { return m.km[r] }

func ExampleExporter_Export() {
	ab := road{"Aachen", "Bonn"}
	m := roadMap{
		towns: []string{"Aachen", "Bonn"},
		roads: []road{ab},
		km:    map[road]float64{ab: 91.5},
	}

	x := gml.New[string, road]()
	x.SetParameter(gml.ExportVertexLabels, true)
	x.SetParameter(gml.ExportEdgeWeights, true)

	var buf bytes.Buffer
	if err := x.Export(m, &buf); err != nil {
		fmt.Println("error:", err)
		return
	}
	// Show indentation as two spaces to keep the output readable here.
	fmt.Print(strings.ReplaceAll(buf.String(), "\t", "  "))
	// Output:
	// Creator "JGraphT GML Exporter"
	// Version 1
	// graph
	// [
	//   label ""
	//   directed 0
	//   node
	//   [
	//     id 1
	//     label "Aachen"
	//   ]
	//   node
	//   [
	//     id 2
	//     label "Bonn"
	//   ]
	//   edge
	//   [
	//     id 1
	//     source 1
	//     target 2
	//     weight 91.5
	//   ]
	// ]
}

func ExampleExporter_SetVertexAttributeProvider() {
	m := roadMap{towns: []string{"Aachen"}}

	x := gml.New[string, road]()
	x.SetParameter(gml.ExportCustomVertexAttributes, true)
	x.SetVertexAttributeProvider(func(town string) gml.Attributes {
		return gml.Attributes{
			gml.Attr("population", gml.Int(249070)),
			gml.Attr("capital", gml.Bool(false)),
		}
	})

	var buf bytes.Buffer
	if err := x.Export(m, &buf); err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "population") || strings.Contains(line, "capital") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// population 249070
	// capital "false"
}

func ExampleValidate() {
	attrs := gml.Attributes{gml.Attr("source", gml.Int(3))}

	fmt.Println(gml.Validate(gml.KindVertex, "v1", attrs))
	fmt.Println(gml.Validate(gml.KindEdge, "(v1 : v2)", attrs))
	// Output:
	// <nil>
	// edge (v1 : v2): custom attribute "source" is reserved
}
