package driver

import (
	"github.com/matzehuels/causeview/pkg/cache"
	"github.com/matzehuels/causeview/pkg/causal"
	"github.com/matzehuels/causeview/pkg/graph"
	"github.com/matzehuels/causeview/pkg/palette"
)

// AppState is the immutable context shared by every render.
type AppState struct {
	Graph   *causal.Graph
	Colors  palette.ColorMap
	MinStep int
	MaxStep int

	// Fingerprint identifies the graph contents in cache keys.
	Fingerprint string
}

// NewAppState assigns cluster colours from p and computes the step range.
// A nil palette selects [palette.Tab20].
func NewAppState(g *causal.Graph, p palette.Palette) AppState {
	if len(p) == 0 {
		p = palette.Tab20
	}
	lo, hi := g.StepRange()
	state := AppState{
		Graph:   g,
		Colors:  palette.AssignWith(p, g.Clusters()),
		MinStep: lo,
		MaxStep: hi,
	}
	if data, err := graph.Marshal(g); err == nil {
		state.Fingerprint = cache.Hash(data)
	}
	return state
}

// Clamp returns step limited to [MinStep, MaxStep].
func (s AppState) Clamp(step int) int {
	return min(max(step, s.MinStep), s.MaxStep)
}
