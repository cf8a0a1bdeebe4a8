// Package ssmdoc builds automation documents and renders their control flow as DOT graphs.
//
// A document is an ordered list of steps; each step moves to the next one on
// success or failure, explicitly by name or implicitly by falling through.
// The compiler turns those transitions into a graph with Start and End nodes:
//
//	srv, _ := ssmdoc.New(ssmdoc.WithMetaBaseURL("Documents"))
//	dot, _ := srv.Graph(ctx, "restart.json")
//
// The build tool around it splices scripts and CloudFormation templates into
// documents, registers the results with a document registry, applies account
// sharing and publishes the artifacts:
//
//	report, err := srv.Run(ctx)
package ssmdoc
