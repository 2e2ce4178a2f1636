package multilayer

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	mlerrors "github.com/matzehuels/multilayer/pkg/errors"
	"github.com/matzehuels/multilayer/pkg/graph"
	"github.com/matzehuels/multilayer/pkg/layer"
	"github.com/matzehuels/multilayer/pkg/layout"
	"github.com/matzehuels/multilayer/pkg/observability"
)

// Params configures one assembly.
type Params struct {
	NumLayers       int
	Layer           layer.Params
	InterlayerEdges int

	// Seed drives every random choice of the run. Zero draws a fresh seed,
	// which is reported in [Result.Seed].
	Seed uint64
}

// Validate checks the multilayer-level parameters and the layer ranges.
func (p Params) Validate() error {
	if p.NumLayers < 1 {
		return mlerrors.New(mlerrors.ErrCodeInvalidConfig, "num_layers must be at least 1, got %d", p.NumLayers)
	}
	if p.InterlayerEdges < 0 {
		return mlerrors.New(mlerrors.ErrCodeInvalidConfig, "interlayer_edges must not be negative, got %d", p.InterlayerEdges)
	}
	return p.Layer.Validate()
}

// SourceFunc builds the random graph source for a run from the run's
// random stream.
type SourceFunc func(rng *rand.Rand) (layer.RandomGraphSource, error)

// Assembler builds multilayer graphs.
type Assembler struct {
	engine    layout.Engine
	logger    *log.Logger
	newSource SourceFunc
}

// Option configures an [Assembler].
type Option func(*Assembler)

// WithLogger sets the logger used for per-layer debug output.
func WithLogger(l *log.Logger) Option {
	return func(a *Assembler) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithSource replaces the uniform G(n, m) source.
func WithSource(f SourceFunc) Option {
	return func(a *Assembler) {
		if f != nil {
			a.newSource = f
		}
	}
}

// NewAssembler returns an assembler that lays out layers with engine.
func NewAssembler(engine layout.Engine, opts ...Option) *Assembler {
	a := &Assembler{
		engine: engine,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
		newSource: func(rng *rand.Rand) (layer.RandomGraphSource, error) {
			return layer.NewGNM(rng)
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewRand returns the PCG stream used for a run with the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Assemble generates NumLayers layers, lays each out in the plane at depth
// equal to its index, joins consecutive layers with InterlayerEdges random
// draws, and merges the layers' own edges into the global graph.
//
// All randomness comes from a single stream seeded by p.Seed, so equal
// parameters and seed give an identical result.
func (a *Assembler) Assemble(ctx context.Context, p Params) (res *Result, err error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, p.NumLayers)
	start := time.Now()
	defer func() {
		nodes, edges := 0, 0
		if res != nil {
			nodes, edges = res.NodeCount(), len(res.Edges)
		}
		hooks.OnGenerateComplete(ctx, nodes, edges, time.Since(start), err)
	}()

	seed := p.Seed
	for seed == 0 {
		seed = rand.Uint64()
	}
	rng := NewRand(seed)

	src, err := a.newSource(rng)
	if err != nil {
		return nil, mlerrors.Wrap(mlerrors.ErrCodeInternal, err, "create graph source")
	}
	gen := layer.NewGenerator(src, rng, a.logger)

	layers := make([]*graph.Graph, p.NumLayers)
	for i := range layers {
		lg, stats, err := gen.Generate(ctx, p.Layer)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		hooks.OnLayerGenerated(ctx, i, stats.Nodes, stats.Edges, stats.Attempts)
		a.logger.Debug("generated layer", "layer", i, "nodes", stats.Nodes, "edges", stats.Edges, "attempts", stats.Attempts)
		layers[i] = lg
	}

	res = &Result{
		Graph:           &graph.Graph{},
		Layers:          make([]Span, 0, p.NumLayers),
		InterlayerEdges: p.InterlayerEdges,
		Seed:            seed,
	}

	for i, lg := range layers {
		pos, err := a.engine.Layout2D(lg, rng)
		if err != nil {
			if mlerrors.GetCode(err) != "" {
				return nil, fmt.Errorf("layer %d: %w", i, err)
			}
			return nil, mlerrors.Wrap(mlerrors.ErrCodeLayoutFailed, err, "layout layer %d", i)
		}
		if len(pos) != lg.NodeCount() {
			return nil, mlerrors.New(mlerrors.ErrCodeLayoutFailed, "layout layer %d: %d positions for %d nodes", i, len(pos), lg.NodeCount())
		}

		first, err := res.Graph.AddNodes(lg.NodeCount())
		if err != nil {
			return nil, mlerrors.Wrap(mlerrors.ErrCodeInternal, err, "place layer %d", i)
		}
		span := Span{Layer: i, Start: int(first), Count: lg.NodeCount()}
		for _, pt := range pos {
			res.Positions = append(res.Positions, Position{X: pt.X, Y: pt.Y, Z: float64(i)})
		}
		res.Layers = append(res.Layers, span)

		if i == 0 {
			continue
		}
		inter, err := Connect(res.Graph, res.Layers[i-1], span, p.InterlayerEdges, rng)
		if err != nil {
			return nil, mlerrors.Wrap(mlerrors.ErrCodeInternal, err, "connect layers")
		}
		res.Edges = append(res.Edges, inter...)
	}

	for i, lg := range layers {
		span := res.Layers[i]
		for _, e := range lg.Edges() {
			u, v := span.Global(e.U), span.Global(e.V)
			if _, err := res.Graph.AddEdge(u, v); err != nil {
				return nil, mlerrors.Wrap(mlerrors.ErrCodeInternal, err, "merge layer %d", i)
			}
			res.Edges = append(res.Edges, Edge{From: u, To: v, Kind: Intra, Layer: i})
		}
	}

	return res, nil
}
