package causal

import (
	"errors"
	"fmt"
	"slices"

	cverrors "github.com/matzehuels/causeview/pkg/errors"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSource is returned by [Graph.AddEdge] when the From node
	// does not exist.
	ErrUnknownSource = errors.New("unknown source node")

	// ErrUnknownTarget is returned by [Graph.AddEdge] when the To node
	// does not exist.
	ErrUnknownTarget = errors.New("unknown target node")
)

// Node is a single cause in the graph.
//
// All fields are fully populated by the loader: Label defaults to ID, Step
// and Count default to 1 and Cluster defaults to "". Components read the
// fields directly and never apply defaults themselves.
type Node struct {
	ID      string // Unique identifier
	Label   string // Display name
	Step    int    // Pipeline step at which the node appears (>= 1)
	Count   int    // Observation count, drives marker size (>= 1)
	Cluster string // Categorical group, drives marker colour
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is a directed cause -> effect relation.
type Edge struct {
	From string // Source node ID
	To   string // Target node ID
}

// Graph is a directed graph of causes.
//
// The zero value is not usable - use [New] or [Build].
// Graph is not safe for concurrent mutation; once built it may be read
// from any number of goroutines.
type Graph struct {
	order    []string
	nodes    map[string]*Node
	edges    []Edge
	outgoing map[string][]string
	incoming map[string][]string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// Build constructs a graph from flat node and edge lists.
//
// Validation is eager: the first empty or duplicate id and the first edge
// with an unknown endpoint fails fast with a DATA_INTEGRITY error naming the
// offending id. The returned error wraps the package sentinel errors, so
// errors.Is(err, ErrUnknownTarget) works as well.
func Build(nodes []Node, edges []Edge) (*Graph, error) {
	g := New()
	for i, n := range nodes {
		if err := g.AddNode(n); err != nil {
			return nil, cverrors.Wrap(cverrors.ErrCodeDataIntegrity, err, "node %d (%q)", i, n.ID)
		}
	}
	for i, e := range edges {
		if err := g.AddEdge(e); err != nil {
			id := e.From
			if errors.Is(err, ErrUnknownTarget) {
				id = e.To
			}
			return nil, cverrors.Wrap(cverrors.ErrCodeDataIntegrity, err,
				"edge %d (%s -> %s) references missing node %q", i, e.From, e.To, id)
		}
	}
	return g, nil
}

// AddNode adds a node to the graph.
// Returns ErrInvalidNodeID if the node ID is empty, or ErrDuplicateNodeID
// if a node with the same ID already exists.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateNodeID, n.ID)
	}
	node := n
	g.nodes[n.ID] = &node
	g.order = append(g.order, n.ID)
	return nil
}

// AddEdge adds a directed edge between two existing nodes.
// Multiple edges between the same nodes and self loops are allowed.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSource, e.From)
	}
	if _, ok := g.nodes[e.To]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTarget, e.To)
	}
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
	g.incoming[e.To] = append(g.incoming[e.To], e.From)
	return nil
}

// Nodes returns copies of all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.order))
	for i, id := range g.order {
		out[i] = *g.nodes[id]
	}
	return out
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Node returns a copy of the node with the given ID and true, or the zero
// Node and false if not found.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Has reports whether a node with the given ID exists.
func (g *Graph) Has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Children returns the targets of the node's outgoing edges.
// The returned slice should not be modified.
func (g *Graph) Children(id string) []string { return g.outgoing[id] }

// Parents returns the sources of the node's incoming edges.
// The returned slice should not be modified.
func (g *Graph) Parents(id string) []string { return g.incoming[id] }

// Sources returns nodes with no incoming edges, in insertion order.
func (g *Graph) Sources() []Node {
	var out []Node
	for _, id := range g.order {
		if len(g.incoming[id]) == 0 {
			out = append(out, *g.nodes[id])
		}
	}
	return out
}

// Clusters returns the distinct cluster labels in lexicographic order.
// The empty cluster is included when any node has no cluster.
func (g *Graph) Clusters() []string {
	seen := make(map[string]struct{})
	for _, n := range g.nodes {
		seen[n.Cluster] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// StepRange returns the smallest and largest node step.
// Returns (0, 0) for an empty graph.
func (g *Graph) StepRange() (min, max int) {
	for i, id := range g.order {
		s := g.nodes[id].Step
		if i == 0 || s < min {
			min = s
		}
		if i == 0 || s > max {
			max = s
		}
	}
	return min, max
}
