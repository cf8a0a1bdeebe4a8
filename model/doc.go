// Package model contains the in-memory representation of automation
// documents consumed by the graph compiler.
//
// A document is typically loaded from a JSON or YAML file into the structures
// defined here; the `graph` sub-package holds the compiled control-flow graph.
package model
