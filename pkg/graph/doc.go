// Package graph provides the undirected simple graph used by every layer of a
// multilayer graph and by the merged global graph.
//
// # Overview
//
// Nodes are dense integer IDs: a graph with n nodes uses exactly 0..n-1.
// This makes relabeling a layer into a global ID space a matter of adding an
// offset, and lets positions be stored in plain slices indexed by ID.
//
//	g, _ := graph.New(3)
//	g.AddEdge(0, 1)
//	g.AddEdge(1, 2)
//	g.Isolated() // []
//
// # Edges
//
// [Graph.AddEdge] keeps the edge set free of duplicates: inserting u–v when
// v–u already exists is a no-op and reports false. Edges are returned in
// insertion order, which callers rely on for deterministic output.
//
// # Concurrency
//
// Graph instances are not safe for concurrent use. Read-only access from
// several goroutines is fine once construction is complete.
package graph
