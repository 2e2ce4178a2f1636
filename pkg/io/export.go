package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/multilayer/pkg/graph"
	"github.com/matzehuels/multilayer/pkg/multilayer"
)

type document struct {
	Seed            uint64            `json:"seed"`
	InterlayerEdges int               `json:"interlayer_edges"`
	Layers          []multilayer.Span `json:"layers"`
	Nodes           []node            `json:"nodes"`
	Edges           []multilayer.Edge `json:"edges"`
}

type node struct {
	ID    graph.NodeID `json:"id"`
	Layer int          `json:"layer"`
	X     float64      `json:"x"`
	Y     float64      `json:"y"`
	Z     float64      `json:"z"`
}

// WriteJSON encodes a multilayer graph as JSON and writes it to w.
// The output includes every node with its layer and coordinates, the spans,
// the seed, and the edges in reveal order.
func WriteJSON(res *multilayer.Result, w io.Writer) error {
	out := document{
		Seed:            res.Seed,
		InterlayerEdges: res.InterlayerEdges,
		Layers:          res.Layers,
		Nodes:           make([]node, 0, len(res.Positions)),
		Edges:           res.Edges,
	}
	if out.Layers == nil {
		out.Layers = []multilayer.Span{}
	}
	if out.Edges == nil {
		out.Edges = []multilayer.Edge{}
	}

	for _, span := range res.Layers {
		for _, id := range span.Nodes() {
			p := res.Positions[id]
			out.Nodes = append(out.Nodes, node{ID: id, Layer: span.Layer, X: p.X, Y: p.Y, Z: p.Z})
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a multilayer graph to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(res *multilayer.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(res, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
