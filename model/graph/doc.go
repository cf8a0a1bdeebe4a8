// Package graph defines the compiled control-flow graph of an automation
// document and its DOT text form. Render writes the graph; Parse reads a
// rendered graph back so it can be inspected or compared.
package graph
