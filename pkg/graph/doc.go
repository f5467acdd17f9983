// Package graph provides the input document format for causality graphs.
//
// This package sits at the serialization boundary between input files and
// the in-memory [causal.Graph]. It is the only place where optional fields
// get their defaults, so every downstream component can read node fields
// directly.
//
// # Document Format
//
// Graphs use a flat node/edge document, as JSON (default) or YAML:
//
//	{
//	  "nodes": [
//	    {"id": "rain", "label": "Rain", "step": 1, "count": 3, "cluster": "weather"},
//	    {"id": "wet"}
//	  ],
//	  "edges": [{"source": "rain", "target": "wet"}]
//	}
//
// Defaults applied at load time:
//
//	label    id
//	step     1
//	count    1
//	cluster  ""
//
// Explicit step or count values below 1 are rejected.
//
// # Common Operations
//
//	g, err := graph.ReadFile("causality_tree.json")  // File → Graph
//	g, err := graph.Read(r, graph.FormatYAML)        // Reader → Graph
//	err := graph.WriteFile(g, "normalized.json")     // Graph → File
//
// # Errors
//
// A missing file is a MISSING_INPUT error naming the file. Undecodable
// content is INVALID_FORMAT. Broken references and bad field values are
// DATA_INTEGRITY, naming the offending node or edge.
package graph
