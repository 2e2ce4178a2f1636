// Package pkg holds the libraries behind the multilayer command.
//
// # Overview
//
// A multilayer graph is a stack of random simple graphs. Each layer gets
// 2D positions from a layout engine and sits at z equal to its index;
// adjacent layers are joined by random interlayer edges. The result is
// rendered as a 3D animation that reveals one edge per frame.
//
// # Architecture
//
//	[layer]        random layer graphs by bounded rejection sampling
//	     ↓
//	[layout]       2D positions per layer (spring, circular)
//	     ↓
//	[multilayer]   relabeling, interlayer edges, reveal order
//	     ↓
//	[render/plotly], [render/nodelink], [io]
//	     ↓
//	HTML / SVG / PDF / PNG / JSON
//
// [pipeline] orchestrates the stages, [config] loads settings from TOML or
// YAML files, and [observability] carries optional metrics hooks.
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil)
//	res, err := runner.Execute(ctx, pipeline.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("multilayer_graph.html", res.Artifacts["html"], 0o644)
package pkg
