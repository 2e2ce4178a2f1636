// Package animation derives the frames of the edge-reveal animation.
//
// Frame k shows every node and the first k entries of the reveal order, so
// replaying frames 0..len(edges) adds exactly one edge per step.
package animation

import "github.com/matzehuels/multilayer/pkg/multilayer"

// Subgraph is the visible state of one frame. Nodes are always all shown;
// only the edge prefix grows.
type Subgraph struct {
	Index int
	Edges []multilayer.Edge
}

// Frame returns the state after k edges have been revealed. k is clamped to
// [0, len(edges)]. The returned slice aliases edges and must not be modified.
func Frame(edges []multilayer.Edge, k int) Subgraph {
	k = max(0, min(k, len(edges)))
	return Subgraph{Index: k, Edges: edges[:k:k]}
}

// Frames returns the len(edges)+1 frames of the animation, from the empty
// frame to the frame showing every edge.
func Frames(edges []multilayer.Edge) []Subgraph {
	out := make([]Subgraph, len(edges)+1)
	for k := range out {
		out[k] = Frame(edges, k)
	}
	return out
}

// Added returns the edge revealed by frame k, if any.
func Added(edges []multilayer.Edge, k int) (multilayer.Edge, bool) {
	if k < 1 || k > len(edges) {
		return multilayer.Edge{}, false
	}
	return edges[k-1], true
}
