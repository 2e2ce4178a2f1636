package layer

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/multilayer/pkg/graph"
)

var (
	// ErrTooManyEdges is returned by a [RandomGraphSource] when m exceeds
	// C(n, 2), the edge count of the complete graph on n nodes.
	ErrTooManyEdges = errors.New("edge count exceeds complete graph")

	// ErrNegativeSize is returned by a [RandomGraphSource] for negative n or m.
	ErrNegativeSize = errors.New("node and edge counts must not be negative")

	// ErrNeedRand is returned by [NewGNM] when no random source is supplied.
	ErrNeedRand = errors.New("random source is required")
)

// RandomGraphSource produces a random simple graph with exactly n nodes and
// m edges.
type RandomGraphSource interface {
	Generate(n, m int) (*graph.Graph, error)
}

// GNM samples uniformly from G(n, m): every labeled simple graph with n nodes
// and m edges is equally likely.
//
// Sparse requests are served by rejection-sampling node pairs; dense ones by
// a partial Fisher–Yates shuffle over all pairs. Both pick a uniform m-subset
// of the C(n, 2) candidate edges. Edges are inserted in ascending (u, v)
// order with u < v so the layer's edge order depends only on the edge set.
type GNM struct {
	rng *rand.Rand
}

// NewGNM returns a G(n, m) source drawing from rng.
func NewGNM(rng *rand.Rand) (*GNM, error) {
	if rng == nil {
		return nil, ErrNeedRand
	}
	return &GNM{rng: rng}, nil
}

// Generate implements [RandomGraphSource].
func (s *GNM) Generate(n, m int) (*graph.Graph, error) {
	if n < 0 || m < 0 {
		return nil, fmt.Errorf("G(%d, %d): %w", n, m, ErrNegativeSize)
	}
	total := graph.MaxEdges(n)
	if m > total {
		return nil, fmt.Errorf("G(%d, %d): max %d: %w", n, m, total, ErrTooManyEdges)
	}

	var picked []graph.Edge
	if 2*m <= total {
		picked = s.sparse(n, m)
	} else {
		picked = s.dense(n, m)
	}
	slices.SortFunc(picked, func(a, b graph.Edge) int {
		if a.U != b.U {
			return int(a.U - b.U)
		}
		return int(a.V - b.V)
	})

	g, err := graph.New(n)
	if err != nil {
		return nil, err
	}
	for _, e := range picked {
		if _, err := g.AddEdge(e.U, e.V); err != nil {
			return nil, fmt.Errorf("G(%d, %d): add %d-%d: %w", n, m, e.U, e.V, err)
		}
	}
	return g, nil
}

func (s *GNM) sparse(n, m int) []graph.Edge {
	seen := make(map[graph.Edge]struct{}, m)
	out := make([]graph.Edge, 0, m)
	for len(out) < m {
		u, v := graph.NodeID(s.rng.IntN(n)), graph.NodeID(s.rng.IntN(n))
		if u == v {
			continue
		}
		e := graph.Edge{U: u, V: v}.Key()
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

func (s *GNM) dense(n, m int) []graph.Edge {
	pairs := make([]graph.Edge, 0, graph.MaxEdges(n))
	for u := range n {
		for v := u + 1; v < n; v++ {
			pairs = append(pairs, graph.Edge{U: graph.NodeID(u), V: graph.NodeID(v)})
		}
	}
	for i := range m {
		j := i + s.rng.IntN(len(pairs)-i)
		pairs[i], pairs[j] = pairs[j], pairs[i]
	}
	return pairs[:m]
}

var _ RandomGraphSource = (*GNM)(nil)
