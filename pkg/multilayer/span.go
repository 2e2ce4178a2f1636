package multilayer

import "github.com/matzehuels/multilayer/pkg/graph"

// Span is the contiguous range of global node IDs owned by one layer:
// [Start, Start+Count). Layer i starts where layer i-1 ends, so the spans of
// a result partition the global ID space.
type Span struct {
	Layer int `json:"layer"`
	Start int `json:"start"`
	Count int `json:"count"`
}

// End returns the first ID past the span.
func (s Span) End() int { return s.Start + s.Count }

// Contains reports whether id belongs to the span.
func (s Span) Contains(id graph.NodeID) bool {
	return int(id) >= s.Start && int(id) < s.End()
}

// Global maps a layer-local node ID to its global ID.
func (s Span) Global(local graph.NodeID) graph.NodeID {
	return graph.NodeID(s.Start) + local
}

// Local maps a global ID back to the layer-local ID.
func (s Span) Local(id graph.NodeID) graph.NodeID {
	return id - graph.NodeID(s.Start)
}

// Overlaps reports whether the two spans share an ID.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End() && o.Start < s.End()
}

// Nodes returns the span's global IDs in ascending order.
func (s Span) Nodes() []graph.NodeID {
	ids := make([]graph.NodeID, s.Count)
	for i := range ids {
		ids[i] = graph.NodeID(s.Start + i)
	}
	return ids
}
