package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/viant/ssmdoc/model/graph"
)

// writeSummary prints node and edge counts and the step nodes no edge leads to
func writeSummary(w io.Writer, g *graph.Graph) error {
	incoming := map[string]int{}
	failures := 0
	for _, edge := range g.Edges {
		incoming[edge.To]++
		if edge.Failure {
			failures++
		}
	}
	var unreachable []string
	for _, node := range g.Nodes {
		if node == graph.Start || node == graph.End {
			continue
		}
		if incoming[node] == 0 {
			unreachable = append(unreachable, node)
		}
	}
	lines := []string{
		"header: " + g.Header,
		fmt.Sprintf("nodes: %d", len(g.Nodes)),
		fmt.Sprintf("edges: %d (failure: %d)", len(g.Edges), failures),
	}
	if len(unreachable) > 0 {
		lines = append(lines, "unreachable: "+strings.Join(unreachable, ", "))
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}
