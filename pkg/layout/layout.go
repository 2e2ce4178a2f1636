package layout

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	mlerrors "github.com/matzehuels/multilayer/pkg/errors"
	"github.com/matzehuels/multilayer/pkg/graph"
)

// Engine names accepted by [New].
const (
	EngineSpring   = "spring"
	EngineCircular = "circular"
)

// DefaultIterations is the number of force-directed steps taken by [Spring]
// when no explicit count is configured.
const DefaultIterations = 50

// Point is a position in the plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Engine assigns 2D coordinates to every node of a graph. The returned slice
// is indexed by node ID. Engines that need randomness draw from rng so that a
// seeded run is reproducible.
type Engine interface {
	Layout2D(g *graph.Graph, rng *rand.Rand) ([]Point, error)
}

// New returns the engine registered under name. Iterations only applies to
// the spring engine; zero selects [DefaultIterations].
func New(name string, iterations int) (Engine, error) {
	if iterations < 0 {
		return nil, mlerrors.New(mlerrors.ErrCodeInvalidLayout, "iterations must not be negative, got %d", iterations)
	}
	switch name {
	case EngineSpring, "":
		if iterations == 0 {
			iterations = DefaultIterations
		}
		return Spring{Iterations: iterations}, nil
	case EngineCircular:
		return Circular{}, nil
	default:
		return nil, mlerrors.New(mlerrors.ErrCodeInvalidLayout, "unknown layout %q (want one of %v)", name, Names())
	}
}

// Names lists the engine names accepted by [New].
func Names() []string {
	return []string{EngineSpring, EngineCircular}
}

// Valid reports whether name selects a known engine.
func Valid(name string) bool { return slices.Contains(Names(), name) }

// Circular places nodes evenly on the unit circle in ID order.
type Circular struct{}

// Layout2D implements [Engine].
func (Circular) Layout2D(g *graph.Graph, _ *rand.Rand) ([]Point, error) {
	n := g.NodeCount()
	pos := make([]Point, n)
	if n == 1 {
		return pos, nil
	}
	for i := range pos {
		theta := 2 * math.Pi * float64(i) / float64(n)
		pos[i] = Point{X: math.Cos(theta), Y: math.Sin(theta)}
	}
	return pos, nil
}

// Spring is a Fruchterman–Reingold force-directed layout.
//
// Nodes start at uniform random positions in the unit square. Every step
// applies a repulsive force k²/d between all pairs and an attractive force
// d²/k along edges, with optimal distance k = 1/√n, and moves each node by
// at most the current temperature. The temperature starts at a tenth of the
// initial spread and cools linearly to zero. The result is centered on the
// origin and scaled so the largest coordinate magnitude is 1.
type Spring struct {
	Iterations int

	// Threshold stops the simulation early once the mean displacement per
	// node falls below it. Zero selects 1e-4.
	Threshold float64
}

const (
	minDistance      = 0.01
	defaultThreshold = 1e-4
)

// Layout2D implements [Engine].
func (s Spring) Layout2D(g *graph.Graph, rng *rand.Rand) ([]Point, error) {
	n := g.NodeCount()
	switch n {
	case 0:
		return nil, nil
	case 1:
		return []Point{{}}, nil
	}
	if rng == nil {
		return nil, mlerrors.New(mlerrors.ErrCodeLayoutFailed, "spring layout needs a random source")
	}

	pos := make([]Point, n)
	for i := range pos {
		pos[i] = Point{X: rng.Float64(), Y: rng.Float64()}
	}

	threshold := s.Threshold
	if threshold == 0 {
		threshold = defaultThreshold
	}
	k := math.Sqrt(1 / float64(n))
	t := 0.1 * spread(pos)
	dt := t / float64(s.Iterations+1)

	disp := make([]Point, n)
	for range s.Iterations {
		for i := range disp {
			disp[i] = Point{}
		}
		for i := range n {
			for j := range n {
				if i == j {
					continue
				}
				dx, dy := pos[i].X-pos[j].X, pos[i].Y-pos[j].Y
				d := max(math.Hypot(dx, dy), minDistance)
				f := k * k / (d * d)
				if g.HasEdge(graph.NodeID(i), graph.NodeID(j)) {
					f -= d / k
				}
				disp[i].X += dx * f
				disp[i].Y += dy * f
			}
		}

		var moved float64
		for i := range pos {
			length := math.Hypot(disp[i].X, disp[i].Y)
			if length < minDistance {
				length = 0.1
			}
			step := Point{X: disp[i].X * t / length, Y: disp[i].Y * t / length}
			pos[i].X += step.X
			pos[i].Y += step.Y
			moved += step.X*step.X + step.Y*step.Y
		}
		t -= dt
		if math.Sqrt(moved)/float64(n) < threshold {
			break
		}
	}

	rescale(pos)
	for i, p := range pos {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return nil, mlerrors.Wrap(mlerrors.ErrCodeLayoutFailed, fmt.Errorf("node %d at (%v, %v)", i, p.X, p.Y), "spring layout diverged")
		}
	}
	return pos, nil
}

// spread returns the larger side of the bounding box.
func spread(pos []Point) float64 {
	minX, maxX := pos[0].X, pos[0].X
	minY, maxY := pos[0].Y, pos[0].Y
	for _, p := range pos[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	return max(maxX-minX, maxY-minY)
}

// rescale centers pos on the origin and scales it into [-1, 1].
func rescale(pos []Point) {
	var cx, cy float64
	for _, p := range pos {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(pos))
	cy /= float64(len(pos))

	var lim float64
	for i := range pos {
		pos[i].X -= cx
		pos[i].Y -= cy
		lim = max(lim, math.Abs(pos[i].X), math.Abs(pos[i].Y))
	}
	if lim == 0 {
		return
	}
	for i := range pos {
		pos[i].X /= lim
		pos[i].Y /= lim
	}
}

var (
	_ Engine = Spring{}
	_ Engine = Circular{}
)
