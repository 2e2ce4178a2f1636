// Package multilayer stacks random layer graphs into one 3D multilayer graph.
//
// Each layer is generated independently by [layer.Generator], laid out in the
// plane by a [layout.Engine], and placed at depth z equal to its index. Node
// IDs are allocated from a single arena: layer i owns the contiguous [Span]
// that follows layer i-1, so relabeling a layer-local edge is an addition.
//
// Consecutive layers are joined by [Connect], which makes a fixed number of
// independent uniform draws per pair. The resulting edge list has a fixed
// reveal order: every interlayer draw in placement order, then each layer's
// own edges, layer by layer. Renderers animate the graph in that order.
//
//	asm := multilayer.NewAssembler(layout.Spring{Iterations: 50})
//	res, err := asm.Assemble(ctx, multilayer.Params{
//	    NumLayers:       5,
//	    Layer:           layer.Params{MinNodes: 4, MaxNodes: 10, MinEdges: 5, MaxEdges: 14},
//	    InterlayerEdges: 3,
//	})
package multilayer
