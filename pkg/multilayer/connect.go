package multilayer

import (
	"fmt"
	"math/rand/v2"

	"github.com/matzehuels/multilayer/pkg/graph"
)

// Connect draws count interlayer edges between spans a and b. Each draw picks
// u uniformly from a and v uniformly from b, independently and with
// replacement, inserts u–v into g and appends it to the returned list.
//
// Repeated draws of the same pair collapse to one edge in g but still appear
// once per draw in the returned list, so the result always has exactly count
// entries. The spans must be disjoint and already present in g.
func Connect(g *graph.Graph, a, b Span, count int, rng *rand.Rand) ([]Edge, error) {
	switch {
	case count < 0:
		return nil, fmt.Errorf("connect layers %d-%d: negative count %d", a.Layer, b.Layer, count)
	case count == 0:
		return nil, nil
	case a.Count == 0 || b.Count == 0:
		return nil, fmt.Errorf("connect layers %d-%d: empty layer", a.Layer, b.Layer)
	case a.Overlaps(b):
		return nil, fmt.Errorf("connect layers %d-%d: spans overlap", a.Layer, b.Layer)
	case b.End() > g.NodeCount() || a.End() > g.NodeCount():
		return nil, fmt.Errorf("connect layers %d-%d: %w", a.Layer, b.Layer, graph.ErrUnknownNode)
	}

	lower := min(a.Layer, b.Layer)
	edges := make([]Edge, 0, count)
	for range count {
		u := graph.NodeID(a.Start + rng.IntN(a.Count))
		v := graph.NodeID(b.Start + rng.IntN(b.Count))
		if _, err := g.AddEdge(u, v); err != nil {
			return nil, fmt.Errorf("connect layers %d-%d: %w", a.Layer, b.Layer, err)
		}
		edges = append(edges, Edge{From: u, To: v, Kind: Inter, Layer: lower})
	}
	return edges, nil
}
