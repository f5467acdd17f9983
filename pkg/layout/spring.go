package layout

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/matzehuels/causeview/pkg/causal"
)

// Spring layout defaults.
const (
	DefaultSeed       uint64 = 42
	DefaultIterations        = 50
)

// ForceDirected is a Fruchterman-Reingold spring layout.
//
// Edges are treated as undirected springs; every node pair repels. Initial
// positions come from a PCG generator seeded with Seed, so the same graph
// and seed always produce the same positions.
type ForceDirected struct {
	Seed       uint64
	Iterations int
	// Spacing is the target distance in points between adjacent nodes
	// after rescaling. Zero means 60.
	Spacing float64
}

// NewForceDirected returns a spring layout with default iterations.
func NewForceDirected(seed uint64) ForceDirected {
	return ForceDirected{Seed: seed, Iterations: DefaultIterations}
}

// Name implements Strategy.
func (ForceDirected) Name() string { return EngineSpring }

// Layout implements Strategy.
func (f ForceDirected) Layout(ctx context.Context, g *causal.Graph) (Positions, error) {
	nodes := g.Nodes()
	n := len(nodes)
	if n == 0 {
		return Positions{}, nil
	}

	index := make(map[string]int, n)
	for i, nd := range nodes {
		index[nd.ID] = i
	}
	adj := make([]map[int]float64, n)
	for i := range adj {
		adj[i] = make(map[int]float64)
	}
	for _, e := range g.Edges() {
		i, j := index[e.From], index[e.To]
		if i == j {
			continue
		}
		adj[i][j]++
		adj[j][i]++
	}

	rng := rand.New(rand.NewPCG(f.Seed, f.Seed^0x9e3779b97f4a7c15))
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range xs {
		xs[i] = rng.Float64()
		ys[i] = rng.Float64()
	}

	iterations := f.Iterations
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	k := 1 / math.Sqrt(float64(n))
	temp := 0.1
	cool := temp / float64(iterations+1)

	dx := make([]float64, n)
	dy := make([]float64, n)
	for it := 0; it < iterations; it++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i := range dx {
			dx[i], dy[i] = 0, 0
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				ddx, ddy := xs[i]-xs[j], ys[i]-ys[j]
				dist := math.Max(math.Hypot(ddx, ddy), 0.01)
				// repulsion k²/d minus attraction w·d²/k, along the unit vector
				force := k*k/(dist*dist) - adj[i][j]*dist/k
				dx[i] += ddx * force
				dy[i] += ddy * force
			}
		}
		for i := 0; i < n; i++ {
			length := math.Max(math.Hypot(dx[i], dy[i]), 0.01)
			xs[i] += dx[i] * temp / length
			ys[i] += dy[i] * temp / length
		}
		temp -= cool
	}

	separate(xs, ys)
	return f.rescale(nodes, xs, ys), nil
}

// separate nudges exactly coincident nodes apart so that no two nodes share
// a position.
func separate(xs, ys []float64) {
	type key struct{ x, y float64 }
	seen := make(map[key]bool, len(xs))
	for i := range xs {
		for seen[key{xs[i], ys[i]}] {
			xs[i] += 1e-3
			ys[i] += 1e-3
		}
		seen[key{xs[i], ys[i]}] = true
	}
}

// rescale centres the layout and scales it so that the layout spans roughly
// Spacing*sqrt(n) points, keeping the top-left corner at the origin.
func (f ForceDirected) rescale(nodes []causal.Node, xs, ys []float64) Positions {
	spacing := f.Spacing
	if spacing <= 0 {
		spacing = 60
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := range xs {
		minX, maxX = math.Min(minX, xs[i]), math.Max(maxX, xs[i])
		minY, maxY = math.Min(minY, ys[i]), math.Max(maxY, ys[i])
	}
	extent := math.Max(maxX-minX, maxY-minY)
	scale := 1.0
	if extent > 0 {
		scale = spacing * math.Sqrt(float64(len(xs))) / extent
	}

	pos := make(Positions, len(nodes))
	for i, nd := range nodes {
		pos[nd.ID] = Position{
			X: (xs[i] - minX) * scale,
			Y: (ys[i] - minY) * scale,
		}
	}
	return pos
}
