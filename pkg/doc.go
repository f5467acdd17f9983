// Package pkg provides the core libraries for Causeview causality tree exploration.
//
// # Overview
//
// Causeview loads a causality tree (nodes tagged with the pipeline step at
// which they appear, edges pointing from cause to effect) and lets a user
// scrub a step threshold to watch the tree grow. The pkg directory is
// organized into three main areas:
//
//  1. Domain - [causal] graph, [graph] documents, [palette] colours
//  2. Rendering - [layout] engines, [scene] markers and SVG, [driver] frames
//  3. Infrastructure - [config], [cache], [server], [observability], [errors]
//
// # Architecture
//
// The data flow for one frame:
//
//	causality_tree.json / .yaml
//	         ↓
//	    [graph] package (decode, apply defaults, validate references)
//	         ↓
//	    [causal] package (filter by step threshold)
//	         ↓
//	    [layout] package (Graphviz dot, spring fallback)
//	         ↓
//	    [scene] package (segments, sized and coloured markers)
//	         ↓
//	    JSON for the browser viewer, or SVG
//
// [driver] ties these together, caching frames per step and reporting the
// layout strategy actually used.
//
// # Quick Start
//
//	g, _ := graph.ReadFile("causality_tree.json")
//	state := driver.NewAppState(g, palette.Tab20)
//
//	sel, _ := layout.New(layout.Options{Engine: layout.EngineDot})
//	d := driver.New(state, driver.Options{Layout: sel})
//
//	frame, _ := d.SetStep(ctx, 3)
//	_ = scene.RenderSVG(os.Stdout, frame.Scene, scene.SVGOptions{Title: frame.Title})
//
// # Error Handling
//
// A missing input file or a broken document returns a coded [errors.Error]
// before anything is rendered. A failing Graphviz layout is not an error: the
// frame carries a warning and the spring layout's positions instead.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test -run Example ./... # Examples only
//
// [causal]: https://pkg.go.dev/github.com/matzehuels/causeview/pkg/causal
// [graph]: https://pkg.go.dev/github.com/matzehuels/causeview/pkg/graph
// [palette]: https://pkg.go.dev/github.com/matzehuels/causeview/pkg/palette
// [layout]: https://pkg.go.dev/github.com/matzehuels/causeview/pkg/layout
// [scene]: https://pkg.go.dev/github.com/matzehuels/causeview/pkg/scene
// [driver]: https://pkg.go.dev/github.com/matzehuels/causeview/pkg/driver
// [config]: https://pkg.go.dev/github.com/matzehuels/causeview/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/causeview/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/causeview/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/causeview/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/causeview/pkg/errors
package pkg
