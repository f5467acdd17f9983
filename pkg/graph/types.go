package graph

import (
	"github.com/matzehuels/causeview/pkg/causal"
	cverrors "github.com/matzehuels/causeview/pkg/errors"
)

// Default field values applied to optional node fields at load time.
const (
	DefaultStep  = 1
	DefaultCount = 1
)

// Document is the serialized form of a causality graph.
type Document struct {
	Nodes []NodeRecord `json:"nodes" yaml:"nodes"`
	Edges []EdgeRecord `json:"edges" yaml:"edges"`
}

// NodeRecord is a node as it appears in an input document.
// Pointer fields distinguish "absent" from an explicit zero.
type NodeRecord struct {
	ID      string  `json:"id" yaml:"id"`
	Label   string  `json:"label,omitempty" yaml:"label,omitempty"`
	Step    *int    `json:"step,omitempty" yaml:"step,omitempty"`
	Count   *int    `json:"count,omitempty" yaml:"count,omitempty"`
	Cluster *string `json:"cluster,omitempty" yaml:"cluster,omitempty"`
}

// EdgeRecord is a directed edge as it appears in an input document.
type EdgeRecord struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// ToNode validates the record and returns a node with every default applied.
func (r NodeRecord) ToNode() (causal.Node, error) {
	if err := cverrors.ValidateNodeID(r.ID); err != nil {
		return causal.Node{}, err
	}

	n := causal.Node{
		ID:    r.ID,
		Label: r.Label,
		Step:  DefaultStep,
		Count: DefaultCount,
	}
	if n.Label == "" {
		n.Label = r.ID
	}
	if r.Step != nil {
		if *r.Step < 1 {
			return causal.Node{}, cverrors.New(cverrors.ErrCodeDataIntegrity, "node %q: step must be >= 1, got %d", r.ID, *r.Step)
		}
		n.Step = *r.Step
	}
	if r.Count != nil {
		if *r.Count < 1 {
			return causal.Node{}, cverrors.New(cverrors.ErrCodeDataIntegrity, "node %q: count must be >= 1, got %d", r.ID, *r.Count)
		}
		n.Count = *r.Count
	}
	if r.Cluster != nil {
		n.Cluster = *r.Cluster
	}
	return n, nil
}

// ToGraph converts the document into a validated graph.
func (d Document) ToGraph() (*causal.Graph, error) {
	nodes := make([]causal.Node, len(d.Nodes))
	for i, r := range d.Nodes {
		n, err := r.ToNode()
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}

	edges := make([]causal.Edge, len(d.Edges))
	for i, e := range d.Edges {
		edges[i] = causal.Edge{From: e.Source, To: e.Target}
	}

	return causal.Build(nodes, edges)
}

// FromGraph converts a graph to its document form with every field explicit.
// Node and edge order follow the graph.
func FromGraph(g *causal.Graph) Document {
	nodes := g.Nodes()
	edges := g.Edges()

	doc := Document{
		Nodes: make([]NodeRecord, len(nodes)),
		Edges: make([]EdgeRecord, len(edges)),
	}
	for i, n := range nodes {
		step, count, cluster := n.Step, n.Count, n.Cluster
		doc.Nodes[i] = NodeRecord{
			ID:      n.ID,
			Label:   n.Label,
			Step:    &step,
			Count:   &count,
			Cluster: &cluster,
		}
	}
	for i, e := range edges {
		doc.Edges[i] = EdgeRecord{Source: e.From, Target: e.To}
	}
	return doc
}
