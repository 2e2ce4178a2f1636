package graph

import (
	"errors"
	"slices"
)

var (
	// ErrUnknownNode is returned by [Graph.AddEdge] when an endpoint is not a
	// node of the graph.
	ErrUnknownNode = errors.New("unknown node")

	// ErrSelfLoop is returned by [Graph.AddEdge] when both endpoints are the
	// same node. Graphs are simple: loops are never stored.
	ErrSelfLoop = errors.New("self-loops are not allowed")

	// ErrNegativeCount is returned by [New] and [Graph.AddNodes] for a
	// negative node count.
	ErrNegativeCount = errors.New("node count must not be negative")
)

// NodeID identifies a node. IDs are dense: a graph with n nodes uses exactly
// the IDs 0..n-1.
type NodeID int

// Edge is an undirected connection between two nodes. The endpoint order is
// the order in which the edge was inserted and carries no meaning for
// adjacency, but it is preserved for rendering.
type Edge struct {
	U NodeID
	V NodeID
}

// Key returns the edge with its endpoints sorted, the identity used for
// duplicate detection.
func (e Edge) Key() Edge {
	if e.V < e.U {
		return Edge{U: e.V, V: e.U}
	}
	return e
}

// Has reports whether id is one of the edge's endpoints.
func (e Edge) Has(id NodeID) bool { return e.U == id || e.V == id }

// Graph is an undirected simple graph over dense integer node IDs.
//
// Edges are kept in insertion order. Inserting an edge that already exists
// (in either direction) is a no-op, so the edge set never contains
// duplicates.
//
// The zero value is an empty graph ready to use. Graph is not safe for
// concurrent use without external synchronization.
type Graph struct {
	adj   []map[NodeID]struct{}
	edges []Edge
}

// New creates a graph with n isolated nodes numbered 0..n-1.
func New(n int) (*Graph, error) {
	g := &Graph{}
	if _, err := g.AddNodes(n); err != nil {
		return nil, err
	}
	return g, nil
}

// AddNode appends a node and returns its ID.
func (g *Graph) AddNode() NodeID {
	g.adj = append(g.adj, make(map[NodeID]struct{}))
	return NodeID(len(g.adj) - 1)
}

// AddNodes appends n nodes and returns the ID of the first one. When n is
// zero the returned ID is the one the next node would receive.
func (g *Graph) AddNodes(n int) (NodeID, error) {
	if n < 0 {
		return 0, ErrNegativeCount
	}
	first := NodeID(len(g.adj))
	for range n {
		g.AddNode()
	}
	return first, nil
}

// AddEdge inserts the undirected edge u–v. It reports whether the edge was
// new; adding an existing edge returns false and leaves the graph unchanged.
func (g *Graph) AddEdge(u, v NodeID) (bool, error) {
	if !g.HasNode(u) || !g.HasNode(v) {
		return false, ErrUnknownNode
	}
	if u == v {
		return false, ErrSelfLoop
	}
	if _, ok := g.adj[u][v]; ok {
		return false, nil
	}
	g.adj[u][v] = struct{}{}
	g.adj[v][u] = struct{}{}
	g.edges = append(g.edges, Edge{U: u, V: v})
	return true, nil
}

// HasNode reports whether id is a node of the graph.
func (g *Graph) HasNode(id NodeID) bool { return id >= 0 && int(id) < len(g.adj) }

// HasEdge reports whether u and v are adjacent.
func (g *Graph) HasEdge(u, v NodeID) bool {
	if !g.HasNode(u) || !g.HasNode(v) {
		return false
	}
	_, ok := g.adj[u][v]
	return ok
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.adj) }

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Nodes returns all node IDs in ascending order.
func (g *Graph) Nodes() []NodeID {
	ids := make([]NodeID, len(g.adj))
	for i := range ids {
		ids[i] = NodeID(i)
	}
	return ids
}

// Edges returns a copy of the edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Degree returns the number of neighbors of id, or 0 if id is unknown.
func (g *Graph) Degree(id NodeID) int {
	if !g.HasNode(id) {
		return 0
	}
	return len(g.adj[id])
}

// Neighbors returns the neighbors of id in ascending order.
func (g *Graph) Neighbors(id NodeID) []NodeID {
	if !g.HasNode(id) {
		return nil
	}
	out := make([]NodeID, 0, len(g.adj[id]))
	for n := range g.adj[id] {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Isolated returns the nodes of degree zero in ascending order.
func (g *Graph) Isolated() []NodeID {
	var out []NodeID
	for i, nbrs := range g.adj {
		if len(nbrs) == 0 {
			out = append(out, NodeID(i))
		}
	}
	return out
}

// MinDegree returns the smallest node degree, or 0 for an empty graph.
func (g *Graph) MinDegree() int {
	if len(g.adj) == 0 {
		return 0
	}
	lo := len(g.adj[0])
	for _, nbrs := range g.adj[1:] {
		lo = min(lo, len(nbrs))
	}
	return lo
}

// MaxEdges returns C(n, 2), the number of edges of the complete simple graph
// on n nodes.
func MaxEdges(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}
