package causal_test

import (
	"fmt"

	"github.com/matzehuels/causeview/pkg/causal"
)

func ExampleBuild() {
	g, err := causal.Build(
		[]causal.Node{
			{ID: "rain", Label: "Rain", Step: 1, Count: 3, Cluster: "weather"},
			{ID: "wet", Label: "Wet road", Step: 2, Count: 1, Cluster: "road"},
		},
		[]causal.Edge{{From: "rain", To: "wet"}},
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	lo, hi := g.StepRange()
	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Steps:", lo, "to", hi)
	// Output:
	// Nodes: 2
	// Edges: 1
	// Steps: 1 to 2
}

func ExampleFilter() {
	g, _ := causal.Build(
		[]causal.Node{
			{ID: "1", Step: 1, Count: 1},
			{ID: "2", Step: 1, Count: 1},
			{ID: "3", Step: 2, Count: 1},
		},
		[]causal.Edge{{From: "1", To: "2"}, {From: "2", To: "3"}},
	)

	f := causal.Filter(g, 1)
	fmt.Println("Nodes:", f.NodeCount())
	fmt.Println("Edges:", f.Edges())
	// Output:
	// Nodes: 2
	// Edges: [{1 2}]
}
