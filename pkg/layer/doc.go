// Package layer generates the random graph of a single layer.
//
// A [Generator] repeatedly draws a node count and an edge count from the
// configured ranges, obtains a graph of exactly that size from a
// [RandomGraphSource], and accepts it unless it contains isolated nodes that
// the parameters forbid. [GNM] is the default source; it samples uniformly
// from all labeled simple graphs of the requested size.
//
// The sampling loop is bounded. Parameters that cannot be satisfied by any
// graph are rejected before sampling starts, and parameters that are merely
// unlikely fail after [Params.MaxAttempts] draws. Both surface as an
// INFEASIBLE_LAYER error instead of hanging.
//
//	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
//	src, _ := layer.NewGNM(rng)
//	gen := layer.NewGenerator(src, rng, logger)
//	g, stats, err := gen.Generate(ctx, layer.Params{
//	    MinNodes: 4, MaxNodes: 10,
//	    MinEdges: 5, MaxEdges: 14,
//	})
package layer
