package causal

import (
	"errors"
	"slices"
	"strings"
	"testing"

	cverrors "github.com/matzehuels/causeview/pkg/errors"
)

func sample(t *testing.T) *Graph {
	t.Helper()
	g, err := Build(
		[]Node{
			{ID: "a", Label: "a", Step: 1, Count: 1, Cluster: "x"},
			{ID: "b", Label: "b", Step: 2, Count: 5, Cluster: "y"},
			{ID: "c", Label: "c", Step: 3, Count: 2, Cluster: "x"},
		},
		[]Edge{{From: "a", To: "b"}, {From: "b", To: "c"}, {From: "a", To: "c"}},
	)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return g
}

func TestBuild(t *testing.T) {
	g := sample(t)
	if g.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d, want 3", g.NodeCount())
	}
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3", g.EdgeCount())
	}
	if got := g.Children("a"); !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("Children(a) = %v, want [b c]", got)
	}
	if got := g.Parents("c"); !slices.Equal(got, []string{"b", "a"}) {
		t.Errorf("Parents(c) = %v, want [b a]", got)
	}
}

func TestBuildUnknownEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		edge     Edge
		sentinel error
	}{
		{"unknown source", Edge{From: "ghost", To: "a"}, ErrUnknownSource},
		{"unknown target", Edge{From: "a", To: "ghost"}, ErrUnknownTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build([]Node{{ID: "a", Step: 1, Count: 1}}, []Edge{tt.edge})
			if err == nil {
				t.Fatal("Build() should fail for unknown endpoint")
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("error %v does not wrap %v", err, tt.sentinel)
			}
			if !cverrors.Is(err, cverrors.ErrCodeDataIntegrity) {
				t.Errorf("code = %v, want %v", cverrors.GetCode(err), cverrors.ErrCodeDataIntegrity)
			}
			if !strings.Contains(cverrors.UserMessage(err), `"ghost"`) {
				t.Errorf("message %q should name the offending id", cverrors.UserMessage(err))
			}
		})
	}
}

func TestAddNodeErrors(t *testing.T) {
	g := New()
	if err := g.AddNode(Node{}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode(empty) = %v, want ErrInvalidNodeID", err)
	}
	if err := g.AddNode(Node{ID: "a"}); err != nil {
		t.Fatalf("AddNode(a) error: %v", err)
	}
	if err := g.AddNode(Node{ID: "a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode(a) twice = %v, want ErrDuplicateNodeID", err)
	}
}

func TestDuplicateEdgesAndSelfLoops(t *testing.T) {
	g, err := Build(
		[]Node{{ID: "a", Step: 1, Count: 1}},
		[]Edge{{From: "a", To: "a"}, {From: "a", To: "a"}},
	)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2 (no dedup)", g.EdgeCount())
	}
}

func TestNodesPreserveOrder(t *testing.T) {
	g := sample(t)
	var ids []string
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	if !slices.Equal(ids, []string{"a", "b", "c"}) {
		t.Errorf("Nodes() order = %v, want [a b c]", ids)
	}
}

func TestNodesReturnsCopies(t *testing.T) {
	g := sample(t)
	nodes := g.Nodes()
	nodes[0].Step = 99
	if n, _ := g.Node("a"); n.Step != 1 {
		t.Errorf("mutating Nodes() result changed graph: step = %d", n.Step)
	}
}

func TestStepRange(t *testing.T) {
	g := sample(t)
	lo, hi := g.StepRange()
	if lo != 1 || hi != 3 {
		t.Errorf("StepRange() = (%d, %d), want (1, 3)", lo, hi)
	}

	lo, hi = New().StepRange()
	if lo != 0 || hi != 0 {
		t.Errorf("empty StepRange() = (%d, %d), want (0, 0)", lo, hi)
	}
}

func TestClusters(t *testing.T) {
	g, _ := Build([]Node{
		{ID: "1", Cluster: "zeta"},
		{ID: "2", Cluster: "alpha"},
		{ID: "3"},
		{ID: "4", Cluster: "alpha"},
	}, nil)
	want := []string{"", "alpha", "zeta"}
	if got := g.Clusters(); !slices.Equal(got, want) {
		t.Errorf("Clusters() = %q, want %q", got, want)
	}
}

func TestSources(t *testing.T) {
	g := sample(t)
	src := g.Sources()
	if len(src) != 1 || src[0].ID != "a" {
		t.Errorf("Sources() = %v, want [a]", src)
	}
}

func TestDisplayLabel(t *testing.T) {
	if got := (Node{ID: "id"}).DisplayLabel(); got != "id" {
		t.Errorf("DisplayLabel() = %q, want %q", got, "id")
	}
	if got := (Node{ID: "id", Label: "Rain"}).DisplayLabel(); got != "Rain" {
		t.Errorf("DisplayLabel() = %q, want %q", got, "Rain")
	}
}
