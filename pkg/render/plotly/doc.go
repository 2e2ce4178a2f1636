// Package plotly renders a multilayer graph as an animated Plotly 3D figure.
//
// Nodes are drawn as one scatter3d marker trace and edges as one line trace
// with null separators between segments. The figure carries one frame per
// prefix of the reveal order, and a button bar with Play, Hide Axes and Show
// Axes. [RenderHTML] wraps the figure in a single HTML document.
//
//	fig := plotly.NewFigure(res, plotly.Options{Title: "Multilayer Graph", AnimationSpeed: 100})
//	page, err := plotly.RenderHTML(fig, plotly.HTMLOptions{})
package plotly
