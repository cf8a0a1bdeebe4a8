package graph

import (
	"bytes"
	"io"
	"strings"
)

// Sentinel node names
const (
	Start = "Start"
	End   = "End"
)

// Edge labels
const (
	LabelSuccess = "onSuccess"
	LabelFailure = "onFailure"
	LabelDefault = "Default"
)

// FailureColor is the color attribute of failure styled edges
const FailureColor = "red"

type (
	// Edge represents a directed, labeled transition
	Edge struct {
		From    string `json:"from" yaml:"from"`
		To      string `json:"to" yaml:"to"`
		Label   string `json:"label,omitempty" yaml:"label,omitempty"`
		Failure bool   `json:"failure,omitempty" yaml:"failure,omitempty"`
	}

	// Graph represents a compiled control-flow graph
	Graph struct {
		Header string   `json:"header,omitempty" yaml:"header,omitempty"`
		Nodes  []string `json:"nodes" yaml:"nodes"`
		Edges  []*Edge  `json:"edges" yaml:"edges"`
		index  map[string]bool
	}
)

// New creates a graph holding the Start and End nodes
func New(header string) *Graph {
	ret := &Graph{Header: header}
	ret.AddNode(Start)
	ret.AddNode(End)
	return ret
}

// AddNode adds a node once, keeping insertion order
func (g *Graph) AddNode(name string) {
	if g.index == nil {
		g.index = make(map[string]bool)
		for _, node := range g.Nodes {
			g.index[node] = true
		}
	}
	if g.index[name] {
		return
	}
	g.index[name] = true
	g.Nodes = append(g.Nodes, name)
}

// HasNode returns true if the node was declared
func (g *Graph) HasNode(name string) bool {
	for _, node := range g.Nodes {
		if node == name {
			return true
		}
	}
	return false
}

// AddEdge appends edges
func (g *Graph) AddEdge(edges ...*Edge) {
	g.Edges = append(g.Edges, edges...)
}

// EdgesFrom returns edges originating at the node
func (g *Graph) EdgesFrom(name string) []*Edge {
	var ret []*Edge
	for _, edge := range g.Edges {
		if edge.From == name {
			ret = append(ret, edge)
		}
	}
	return ret
}

// Render returns the DOT representation of the graph
func (g *Graph) Render() string {
	buf := &bytes.Buffer{}
	_, _ = g.WriteTo(buf)
	return buf.String()
}

// WriteTo writes the DOT representation of the graph
func (g *Graph) WriteTo(w io.Writer) (int64, error) {
	lines := make([]string, 0, len(g.Edges)+5)
	lines = append(lines, "// "+g.Header)
	lines = append(lines, "digraph {")
	lines = append(lines, "    "+Start+" [label="+Start+"]")
	lines = append(lines, "    "+End+" [label="+End+"]")
	for _, edge := range g.Edges {
		lines = append(lines, "    "+edge.String())
	}
	lines = append(lines, "}")
	n, err := io.WriteString(w, strings.Join(lines, "\n"))
	return int64(n), err
}

// String returns the DOT edge statement
func (e *Edge) String() string {
	statement := e.From + " -> " + e.To
	if e.Label == "" && !e.Failure {
		return statement
	}
	statement += " [label=" + e.Label
	if e.Failure {
		statement += ` color="` + FailureColor + `"`
	}
	return statement + "]"
}
