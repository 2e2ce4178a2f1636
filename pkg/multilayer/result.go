package multilayer

import (
	"errors"
	"fmt"
	"sort"

	"github.com/matzehuels/multilayer/pkg/graph"
)

// Position is a node's location in the 3D scene. X and Y come from the
// layer's own 2D layout; Z is the layer index.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Result is an assembled multilayer graph. It is not modified after
// [Assembler.Assemble] returns and may be shared between renderers.
type Result struct {
	// Graph holds every node and the deduplicated union of all edges.
	Graph *graph.Graph

	// Positions is indexed by global node ID.
	Positions []Position

	// Edges is the reveal order: interlayer draws first, in placement
	// order, then each layer's own edges layer by layer. Repeated
	// interlayer draws appear once per draw.
	Edges []Edge

	// Layers holds one span per layer, in layer order.
	Layers []Span

	// InterlayerEdges is the number of draws made per adjacent layer pair.
	InterlayerEdges int

	// Seed reproduces this result when passed back in [Params].
	Seed uint64
}

// NodeCount returns the number of nodes across all layers.
func (r *Result) NodeCount() int { return r.Graph.NodeCount() }

// LayerOf returns the layer owning id.
func (r *Result) LayerOf(id graph.NodeID) (int, bool) {
	i := sort.Search(len(r.Layers), func(i int) bool { return r.Layers[i].End() > int(id) })
	if i == len(r.Layers) || !r.Layers[i].Contains(id) {
		return 0, false
	}
	return i, true
}

// EdgeCounts returns the number of intra-layer and interlayer entries in the
// reveal order.
func (r *Result) EdgeCounts() (intra, inter int) {
	for _, e := range r.Edges {
		if e.Kind == Inter {
			inter++
		} else {
			intra++
		}
	}
	return intra, inter
}

// Validate checks the structural invariants of an assembled result: the
// spans partition the node IDs in layer order, every node sits at the depth
// of its layer, interlayer edges only join consecutive layers, each adjacent
// pair received exactly InterlayerEdges draws, and the reveal order lists
// every distinct intra-layer edge once after all interlayer draws.
func (r *Result) Validate() error {
	if r.Graph == nil {
		return errors.New("result has no graph")
	}
	next := 0
	for i, s := range r.Layers {
		if s.Layer != i {
			return fmt.Errorf("span %d labeled layer %d", i, s.Layer)
		}
		if s.Start != next {
			return fmt.Errorf("layer %d starts at %d, want %d", i, s.Start, next)
		}
		if s.Count < 1 {
			return fmt.Errorf("layer %d is empty", i)
		}
		next = s.End()
	}
	if next != r.Graph.NodeCount() {
		return fmt.Errorf("spans cover %d nodes, graph has %d", next, r.Graph.NodeCount())
	}
	if len(r.Positions) != next {
		return fmt.Errorf("%d positions for %d nodes", len(r.Positions), next)
	}
	for _, s := range r.Layers {
		for _, id := range s.Nodes() {
			if z := r.Positions[id].Z; z != float64(s.Layer) {
				return fmt.Errorf("node %d of layer %d at z=%v", id, s.Layer, z)
			}
		}
	}

	draws := make([]int, max(len(r.Layers)-1, 0))
	intra := make(map[graph.Edge]struct{})
	seenIntra := false
	for i, e := range r.Edges {
		lu, okU := r.LayerOf(e.From)
		lv, okV := r.LayerOf(e.To)
		if !okU || !okV {
			return fmt.Errorf("edge %d (%d-%d) has an unknown endpoint", i, e.From, e.To)
		}
		if !r.Graph.HasEdge(e.From, e.To) {
			return fmt.Errorf("edge %d (%d-%d) missing from graph", i, e.From, e.To)
		}
		switch e.Kind {
		case Inter:
			if seenIntra {
				return fmt.Errorf("interlayer edge %d after intra-layer edges", i)
			}
			if lv-lu != 1 && lu-lv != 1 {
				return fmt.Errorf("interlayer edge %d joins layers %d and %d", i, lu, lv)
			}
			if e.Layer != min(lu, lv) {
				return fmt.Errorf("interlayer edge %d labeled layer %d", i, e.Layer)
			}
			draws[e.Layer]++
		case Intra:
			seenIntra = true
			if lu != lv || lu != e.Layer {
				return fmt.Errorf("intra-layer edge %d joins layers %d and %d, labeled %d", i, lu, lv, e.Layer)
			}
			key := graph.Edge{U: e.From, V: e.To}.Key()
			if _, dup := intra[key]; dup {
				return fmt.Errorf("intra-layer edge %d (%d-%d) repeated", i, e.From, e.To)
			}
			intra[key] = struct{}{}
		default:
			return fmt.Errorf("edge %d has %v", i, e.Kind)
		}
	}
	for pair, n := range draws {
		if n != r.InterlayerEdges {
			return fmt.Errorf("layers %d-%d received %d draws, want %d", pair, pair+1, n, r.InterlayerEdges)
		}
	}

	// Every distinct same-layer edge of the graph must be in the reveal order.
	for _, e := range r.Graph.Edges() {
		lu, _ := r.LayerOf(e.U)
		lv, _ := r.LayerOf(e.V)
		if lu != lv {
			continue
		}
		if _, ok := intra[e.Key()]; !ok {
			return fmt.Errorf("graph edge %d-%d missing from reveal order", e.U, e.V)
		}
	}
	return nil
}
