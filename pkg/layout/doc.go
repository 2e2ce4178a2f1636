// Package layout computes 2D node positions for a single layer.
//
// Two engines implement [Engine]: [Spring], a Fruchterman–Reingold
// force-directed layout, and [Circular]. Both return coordinates in [-1, 1]
// indexed by node ID; a layer with one node is placed at the origin.
package layout
