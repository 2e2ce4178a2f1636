// Package render holds the presentation layers of a multilayer graph.
//
// Subpackages:
//   - [animation]: frame k of the edge-reveal animation
//   - [plotly]: the animated 3D figure and its HTML document
//   - [nodelink]: a static Graphviz overview, one cluster per layer
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(res, nodelink.Options{}))
//	png, err := render.ToPNG(ctx, svg, 2.0)
package render
