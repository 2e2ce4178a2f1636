package animation

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/multilayer/pkg/layer"
	"github.com/matzehuels/multilayer/pkg/layout"
	"github.com/matzehuels/multilayer/pkg/multilayer"
)

func sampleEdges() []multilayer.Edge {
	return []multilayer.Edge{
		{From: 1, To: 4, Kind: multilayer.Inter, Layer: 0},
		{From: 0, To: 1, Kind: multilayer.Intra, Layer: 0},
		{From: 1, To: 2, Kind: multilayer.Intra, Layer: 0},
		{From: 3, To: 4, Kind: multilayer.Intra, Layer: 1},
	}
}

func TestFrame(t *testing.T) {
	edges := sampleEdges()

	tests := []struct {
		name string
		k    int
		want int
	}{
		{"empty", 0, 0},
		{"first", 1, 1},
		{"middle", 2, 2},
		{"all", 4, 4},
		{"clamped high", 10, 4},
		{"clamped low", -3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Frame(edges, tt.k)
			if f.Index != tt.want {
				t.Errorf("Index = %d, want %d", f.Index, tt.want)
			}
			if diff := cmp.Diff(edges[:tt.want], f.Edges); diff != "" {
				t.Errorf("edges mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFrameNoEdges(t *testing.T) {
	f := Frame(nil, 3)
	if f.Index != 0 || len(f.Edges) != 0 {
		t.Errorf("Frame(nil, 3) = %+v, want empty", f)
	}
	if got := len(Frames(nil)); got != 1 {
		t.Errorf("len(Frames(nil)) = %d, want 1", got)
	}
}

func TestFrameAppendDoesNotClobber(t *testing.T) {
	edges := sampleEdges()
	f := Frame(edges, 1)
	_ = append(f.Edges, multilayer.Edge{From: 9, To: 9})
	if edges[1].From != 0 {
		t.Error("appending to a frame modified the reveal order")
	}
}

// Replaying the frames of a generated graph must reveal every edge of the
// reveal order exactly once, in order.
func TestReplayRevealsInOrder(t *testing.T) {
	res, err := multilayer.NewAssembler(layout.Circular{}).Assemble(context.Background(), multilayer.Params{
		NumLayers:       4,
		Layer:           layer.Params{MinNodes: 4, MaxNodes: 8, MinEdges: 4, MaxEdges: 10},
		InterlayerEdges: 3,
		Seed:            5,
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	frames := Frames(res.Edges)
	if len(frames) != len(res.Edges)+1 {
		t.Fatalf("got %d frames, want %d", len(frames), len(res.Edges)+1)
	}

	var revealed []multilayer.Edge
	for k := 1; k < len(frames); k++ {
		if got := len(frames[k].Edges) - len(frames[k-1].Edges); got != 1 {
			t.Fatalf("frame %d adds %d edges, want 1", k, got)
		}
		e, ok := Added(res.Edges, k)
		if !ok {
			t.Fatalf("Added(%d) reported no edge", k)
		}
		revealed = append(revealed, e)
	}
	if diff := cmp.Diff(res.Edges, revealed); diff != "" {
		t.Errorf("replay mismatch (-want +got):\n%s", diff)
	}
}

func TestAddedOutOfRange(t *testing.T) {
	edges := sampleEdges()
	for _, k := range []int{0, -1, 5} {
		if _, ok := Added(edges, k); ok {
			t.Errorf("Added(%d) = ok, want none", k)
		}
	}
}

func ExampleFrame() {
	edges := []multilayer.Edge{
		{From: 0, To: 3, Kind: multilayer.Inter},
		{From: 0, To: 1, Kind: multilayer.Intra},
		{From: 1, To: 2, Kind: multilayer.Intra},
	}
	f := Frame(edges, 2)
	for _, e := range f.Edges {
		fmt.Println(e.From, e.To, e.Kind)
	}
	// Output:
	// 0 3 inter
	// 0 1 intra
}
