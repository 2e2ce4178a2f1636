package layout

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mlerrors "github.com/matzehuels/multilayer/pkg/errors"
	"github.com/matzehuels/multilayer/pkg/graph"
)

func cycle(t *testing.T, n int) *graph.Graph {
	t.Helper()
	g, err := graph.New(n)
	require.NoError(t, err)
	for i := range n {
		_, err := g.AddEdge(graph.NodeID(i), graph.NodeID((i+1)%n))
		require.NoError(t, err)
	}
	return g
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		iterations int
		want       Engine
		wantErr    bool
	}{
		{name: "spring", iterations: 10, want: Spring{Iterations: 10}},
		{name: "spring", iterations: 0, want: Spring{Iterations: DefaultIterations}},
		{name: "", iterations: 0, want: Spring{Iterations: DefaultIterations}},
		{name: "circular", want: Circular{}},
		{name: "kamada", wantErr: true},
		{name: "spring", iterations: -1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.name, tt.iterations)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, mlerrors.Is(err, mlerrors.ErrCodeInvalidLayout))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("spring"))
	assert.True(t, Valid("circular"))
	assert.False(t, Valid("random"))
}

func TestEnginesBounded(t *testing.T) {
	engines := map[string]Engine{
		"spring":   Spring{Iterations: DefaultIterations},
		"circular": Circular{},
	}
	for name, eng := range engines {
		t.Run(name, func(t *testing.T) {
			for _, n := range []int{2, 3, 7, 10} {
				pos, err := eng.Layout2D(cycle(t, n), rand.New(rand.NewPCG(1, 2)))
				require.NoError(t, err)
				require.Len(t, pos, n)
				for i, p := range pos {
					assert.LessOrEqual(t, math.Abs(p.X), 1+1e-9, "node %d x", i)
					assert.LessOrEqual(t, math.Abs(p.Y), 1+1e-9, "node %d y", i)
				}
			}
		})
	}
}

func TestSingleNodeAtOrigin(t *testing.T) {
	g, err := graph.New(1)
	require.NoError(t, err)

	for _, eng := range []Engine{Spring{Iterations: 50}, Circular{}} {
		pos, err := eng.Layout2D(g, rand.New(rand.NewPCG(1, 2)))
		require.NoError(t, err)
		assert.Equal(t, []Point{{}}, pos)
	}
}

func TestEmptyGraph(t *testing.T) {
	pos, err := Spring{Iterations: 50}.Layout2D(&graph.Graph{}, nil)
	require.NoError(t, err)
	assert.Empty(t, pos)
}

func TestSpringDeterministic(t *testing.T) {
	g := cycle(t, 8)
	a, err := Spring{Iterations: 50}.Layout2D(g, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)
	b, err := Spring{Iterations: 50}.Layout2D(g, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSpringSeparatesNodes(t *testing.T) {
	g := cycle(t, 6)
	pos, err := Spring{Iterations: 100}.Layout2D(g, rand.New(rand.NewPCG(3, 4)))
	require.NoError(t, err)

	for i := range pos {
		for j := i + 1; j < len(pos); j++ {
			d := math.Hypot(pos[i].X-pos[j].X, pos[i].Y-pos[j].Y)
			assert.Greater(t, d, 0.01, "nodes %d and %d overlap", i, j)
		}
	}
}

func TestSpringNeedsRand(t *testing.T) {
	_, err := Spring{Iterations: 1}.Layout2D(cycle(t, 3), nil)
	require.Error(t, err)
	assert.True(t, mlerrors.Is(err, mlerrors.ErrCodeLayoutFailed))
}

func TestCircularUnitCircle(t *testing.T) {
	pos, err := Circular{}.Layout2D(cycle(t, 4), nil)
	require.NoError(t, err)

	want := []Point{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	for i, p := range pos {
		assert.InDelta(t, want[i].X, p.X, 1e-9)
		assert.InDelta(t, want[i].Y, p.Y, 1e-9)
	}
}
