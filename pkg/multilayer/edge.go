package multilayer

import (
	"fmt"

	"github.com/matzehuels/multilayer/pkg/graph"
)

// Kind distinguishes edges inside a layer from edges between layers.
type Kind uint8

const (
	Intra Kind = iota // both endpoints in the same layer
	Inter             // endpoints in consecutive layers
)

func (k Kind) String() string {
	switch k {
	case Intra:
		return "intra"
	case Inter:
		return "inter"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "intra":
		*k = Intra
	case "inter":
		*k = Inter
	default:
		return fmt.Errorf("unknown edge kind %q", b)
	}
	return nil
}

// Edge is one entry of the reveal-order edge list. Layer is the layer of an
// intra-layer edge, or the lower of the two layers of an interlayer edge.
type Edge struct {
	From  graph.NodeID `json:"from"`
	To    graph.NodeID `json:"to"`
	Kind  Kind         `json:"kind"`
	Layer int          `json:"layer"`
}
