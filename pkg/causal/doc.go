// Package causal provides the in-memory causality graph loaded from an
// input document.
//
// # Overview
//
// A causality graph is a flat list of [Node] records (id, label, step,
// count, cluster) plus a flat list of directed [Edge] records. Nodes carry a
// numeric Step: the pipeline step at which the cause was observed. Viewers
// reveal the graph step by step with [Filter].
//
// # Basic Usage
//
// Build a graph in one call with [Build], which validates eagerly and fails
// on the first edge that references an unknown node:
//
//	g, err := causal.Build(
//	    []causal.Node{{ID: "a", Step: 1, Count: 1}, {ID: "b", Step: 2, Count: 5}},
//	    []causal.Edge{{From: "a", To: "b"}},
//	)
//
// Or incrementally with [New], [Graph.AddNode] and [Graph.AddEdge].
//
// # Invariants
//
//   - Node ids are unique and non-empty.
//   - Every edge endpoint exists at construction time.
//   - Duplicate edges and self loops are kept as given. Cycles are not
//     detected.
//   - Nodes and edges keep insertion order, so every derived view
//     (filters, layouts, scenes) is deterministic.
//
// Graphs are never mutated after loading. [Filter] returns a new graph and
// leaves its input untouched, so a loaded graph can be shared read-only.
package causal
