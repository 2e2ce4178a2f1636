// Package nodelink renders a multilayer graph as a static node-link diagram.
//
// The animated 3D figure is the primary output; this package produces a flat
// overview in which each layer is a Graphviz cluster and interlayer edges
// are dashed.
//
// # Usage
//
//	dot := nodelink.ToDOT(res, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0) // 2x scale
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
