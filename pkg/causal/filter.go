package causal

// Filter returns the subgraph induced by the nodes whose Step is at most
// threshold. An edge survives iff both of its endpoints survive.
//
// Filter never mutates g. Node and edge order follow g. A threshold below
// the minimum step yields an empty graph; a threshold at or above the
// maximum step yields a graph with exactly g's nodes and edges.
func Filter(g *Graph, threshold int) *Graph {
	out := New()
	for _, id := range g.order {
		n := g.nodes[id]
		if n.Step <= threshold {
			// IDs are already unique in g.
			_ = out.AddNode(*n)
		}
	}
	for _, e := range g.edges {
		if out.Has(e.From) && out.Has(e.To) {
			_ = out.AddEdge(e)
		}
	}
	return out
}
