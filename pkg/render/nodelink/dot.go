package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/multilayer/pkg/graph"
	"github.com/matzehuels/multilayer/pkg/multilayer"
	"github.com/matzehuels/multilayer/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds each node's layout coordinates to its label.
	// When false, only the node ID is shown.
	Detailed bool
}

// layerColors cycles through per-layer cluster colors.
var layerColors = []string{"#dbeafe", "#dcfce7", "#fef9c3", "#fee2e2", "#f3e8ff", "#e0f2fe"}

// ToDOT converts a multilayer graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Each layer becomes a cluster subgraph, stacked top to bottom in layer
// order. Interlayer edges are drawn dashed; repeated interlayer draws are
// emitted once.
func ToDOT(res *multilayer.Result, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10, width=0.3, fixedsize=false];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.3;\n")

	for _, span := range res.Layers {
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", span.Layer)
		fmt.Fprintf(&buf, "    label=%q;\n", fmt.Sprintf("layer %d", span.Layer))
		fmt.Fprintf(&buf, "    style=\"rounded,filled\";\n    fillcolor=%q;\n", layerColors[span.Layer%len(layerColors)])
		for _, id := range span.Nodes() {
			fmt.Fprintf(&buf, "    %s [label=%q];\n", nodeName(id), fmtLabel(id, res.Positions[id], opts.Detailed))
		}
		for _, e := range res.Edges {
			if e.Kind == multilayer.Intra && e.Layer == span.Layer {
				fmt.Fprintf(&buf, "    %s -- %s;\n", nodeName(e.From), nodeName(e.To))
			}
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	seen := make(map[graph.Edge]struct{})
	for _, e := range res.Edges {
		if e.Kind != multilayer.Inter {
			continue
		}
		key := graph.Edge{U: e.From, V: e.To}.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		fmt.Fprintf(&buf, "  %s -- %s [style=dashed, color=\"#6b7280\"];\n", nodeName(e.From), nodeName(e.To))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeName(id graph.NodeID) string { return "n" + strconv.Itoa(int(id)) }

func fmtLabel(id graph.NodeID, p multilayer.Position, detailed bool) string {
	if !detailed {
		return strconv.Itoa(int(id))
	}
	return fmt.Sprintf("%d\n(%.2f, %.2f)", id, p.X, p.Y)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root element with one whose viewBox
// starts at the origin and whose size matches the drawing.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
