package layer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	mlerrors "github.com/matzehuels/multilayer/pkg/errors"
	"github.com/matzehuels/multilayer/pkg/graph"
)

// DefaultMaxAttempts bounds the rejection-sampling loop of [Generator.Generate].
const DefaultMaxAttempts = 10000

// ErrInfeasible is wrapped by every INFEASIBLE_LAYER error returned by
// [Generator.Generate].
var ErrInfeasible = errors.New("infeasible layer parameters")

// Params bounds the size of a generated layer.
type Params struct {
	MinNodes int
	MaxNodes int
	MinEdges int
	MaxEdges int

	// AllowDisconnected accepts layers containing nodes of degree zero.
	AllowDisconnected bool

	// MaxAttempts caps the number of draws; 0 means DefaultMaxAttempts.
	MaxAttempts int
}

// Validate checks that the ranges are well formed.
func (p Params) Validate() error {
	switch {
	case p.MinNodes < 1:
		return mlerrors.New(mlerrors.ErrCodeInvalidConfig, "min nodes must be at least 1, got %d", p.MinNodes)
	case p.MaxNodes < p.MinNodes:
		return mlerrors.New(mlerrors.ErrCodeInvalidConfig, "max nodes %d is below min nodes %d", p.MaxNodes, p.MinNodes)
	case p.MinEdges < 0:
		return mlerrors.New(mlerrors.ErrCodeInvalidConfig, "min edges must not be negative, got %d", p.MinEdges)
	case p.MaxEdges < p.MinEdges:
		return mlerrors.New(mlerrors.ErrCodeInvalidConfig, "max edges %d is below min edges %d", p.MaxEdges, p.MinEdges)
	case p.MaxAttempts < 0:
		return mlerrors.New(mlerrors.ErrCodeInvalidConfig, "max attempts must not be negative, got %d", p.MaxAttempts)
	}
	return nil
}

// Feasible reports whether at least one (n, m) pair in the ranges admits a
// graph that satisfies the degree constraint.
//
// Without isolated nodes, n nodes need at least ceil(n/2) edges (a matching,
// plus one path of three for odd n), and a single node can never qualify.
func (p Params) Feasible() bool {
	for n := p.MinNodes; n <= p.MaxNodes; n++ {
		lo, hi := p.MinEdges, min(p.MaxEdges, graph.MaxEdges(n))
		if !p.AllowDisconnected {
			if n < 2 {
				continue
			}
			lo = max(lo, (n+1)/2)
		}
		if lo <= hi {
			return true
		}
	}
	return false
}

func (p Params) attempts() int {
	if p.MaxAttempts == 0 {
		return DefaultMaxAttempts
	}
	return p.MaxAttempts
}

// Stats describes how a layer was obtained.
type Stats struct {
	Attempts int // draws made, including the accepted one
	Nodes    int
	Edges    int
}

// Generator produces layer graphs by bounded rejection sampling.
type Generator struct {
	source RandomGraphSource
	rng    *rand.Rand
	logger *log.Logger
}

// NewGenerator creates a generator that draws sizes from rng and graphs from
// source. A nil logger discards output.
func NewGenerator(source RandomGraphSource, rng *rand.Rand, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Generator{source: source, rng: rng, logger: logger}
}

// Generate draws a node count and an edge count uniformly from the ranges,
// asks the source for a matching graph, and accepts it if isolated nodes are
// allowed or none occur. Draws the source cannot satisfy (m > C(n, 2)) count
// as rejected attempts.
//
// Parameters for which no acceptable graph exists fail immediately; otherwise
// the loop gives up after MaxAttempts draws. Both cases return an
// INFEASIBLE_LAYER error wrapping [ErrInfeasible].
func (g *Generator) Generate(ctx context.Context, p Params) (*graph.Graph, Stats, error) {
	if err := p.Validate(); err != nil {
		return nil, Stats{}, err
	}
	if !p.Feasible() {
		return nil, Stats{}, mlerrors.Wrap(mlerrors.ErrCodeInfeasibleLayer, ErrInfeasible,
			"no graph with %d-%d nodes and %d-%d edges satisfies allow_disconnected=%t",
			p.MinNodes, p.MaxNodes, p.MinEdges, p.MaxEdges, p.AllowDisconnected)
	}

	limit := p.attempts()
	for attempt := 1; attempt <= limit; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, Stats{Attempts: attempt - 1}, err
		}

		n := p.MinNodes + g.rng.IntN(p.MaxNodes-p.MinNodes+1)
		m := p.MinEdges + g.rng.IntN(p.MaxEdges-p.MinEdges+1)

		lg, err := g.source.Generate(n, m)
		if errors.Is(err, ErrTooManyEdges) {
			continue
		}
		if err != nil {
			return nil, Stats{Attempts: attempt}, fmt.Errorf("random graph G(%d, %d): %w", n, m, err)
		}
		if !p.AllowDisconnected && len(lg.Isolated()) > 0 {
			continue
		}

		g.logger.Debug("layer accepted", "nodes", n, "edges", m, "attempts", attempt)
		return lg, Stats{Attempts: attempt, Nodes: lg.NodeCount(), Edges: lg.EdgeCount()}, nil
	}

	return nil, Stats{Attempts: limit}, mlerrors.Wrap(mlerrors.ErrCodeInfeasibleLayer, ErrInfeasible,
		"no acceptable layer after %d attempts", limit)
}
