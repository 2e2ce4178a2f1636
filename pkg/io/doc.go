// Package io exports generated multilayer graphs as JSON.
//
// # JSON Format
//
//	{
//	  "seed": 42,
//	  "interlayer_edges": 1,
//	  "layers": [
//	    {"layer": 0, "start": 0, "count": 3},
//	    {"layer": 1, "start": 3, "count": 2}
//	  ],
//	  "nodes": [
//	    {"id": 0, "layer": 0, "x": -0.81, "y": 0.4, "z": 0},
//	    ...
//	  ],
//	  "edges": [
//	    {"from": 2, "to": 3, "kind": "inter", "layer": 0},
//	    {"from": 0, "to": 1, "kind": "intra", "layer": 0},
//	    ...
//	  ]
//	}
//
// Nodes are listed by global ID. Edges keep the reveal order of the
// animation, so repeated interlayer draws appear once per draw. Passing the
// seed back to the generator with the same configuration reproduces the
// document.
//
// Use [ExportJSON] to write to a file, or [WriteJSON] to write to any
// io.Writer.
package io
