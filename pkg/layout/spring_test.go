package layout

import (
	"context"
	"testing"

	"github.com/matzehuels/causeview/pkg/causal"
)

func TestForceDirectedEmpty(t *testing.T) {
	pos, err := NewForceDirected(DefaultSeed).Layout(context.Background(), causal.New())
	if err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	if len(pos) != 0 {
		t.Errorf("got %d positions, want 0", len(pos))
	}
}

func TestForceDirectedIsolatedNodes(t *testing.T) {
	g := isolated(t, 8)
	pos, err := NewForceDirected(DefaultSeed).Layout(context.Background(), g)
	if err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	assertCovers(t, g, pos)
	assertDistinct(t, pos)
}

func TestForceDirectedSingleNode(t *testing.T) {
	g := isolated(t, 1)
	pos, err := NewForceDirected(DefaultSeed).Layout(context.Background(), g)
	if err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	if p := pos["a"]; p != (Position{}) {
		t.Errorf("single node at %v, want origin", p)
	}
}

func TestForceDirectedDeterministic(t *testing.T) {
	g := chain(t, "a", "b", "c", "d", "e")
	first, err := NewForceDirected(DefaultSeed).Layout(context.Background(), g)
	if err != nil {
		t.Fatal(err)
	}
	for run := 0; run < 3; run++ {
		again, err := NewForceDirected(DefaultSeed).Layout(context.Background(), g)
		if err != nil {
			t.Fatal(err)
		}
		for id, p := range first {
			if again[id] != p {
				t.Fatalf("run %d: node %s at %v, want %v", run, id, again[id], p)
			}
		}
	}
}

func TestForceDirectedSeedMatters(t *testing.T) {
	g := chain(t, "a", "b", "c")
	p1, _ := NewForceDirected(1).Layout(context.Background(), g)
	p2, _ := NewForceDirected(2).Layout(context.Background(), g)
	same := true
	for id := range p1 {
		if p1[id] != p2[id] {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical layouts")
	}
}

func TestForceDirectedCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewForceDirected(DefaultSeed).Layout(ctx, chain(t, "a", "b")); err == nil {
		t.Error("Layout() should fail on cancelled context")
	}
}

func TestForceDirectedSelfLoopsAndDuplicates(t *testing.T) {
	g, err := causal.Build(
		[]causal.Node{{ID: "a", Step: 1, Count: 1}, {ID: "b", Step: 1, Count: 1}},
		[]causal.Edge{{From: "a", To: "a"}, {From: "a", To: "b"}, {From: "a", To: "b"}},
	)
	if err != nil {
		t.Fatal(err)
	}
	pos, err := NewForceDirected(DefaultSeed).Layout(context.Background(), g)
	if err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	assertCovers(t, g, pos)
	assertDistinct(t, pos)
}
