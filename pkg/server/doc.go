// Package server exposes the interactive driver over HTTP.
//
// Routes:
//
//	GET /               hello-world landing page
//	GET /healthz        liveness probe
//	GET /version        build information
//	GET /view           browser viewer with a step slider
//	GET /api/meta       step range, current step and cluster colours
//	GET /api/scene      frame JSON for ?step=N (default: current step)
//	GET /api/scene.svg  the same frame rendered as SVG
//	GET /metrics        Prometheus metrics, when a handler is configured
//
// Every slider change in the viewer requests /api/scene, which runs one
// synchronous filter, layout and scene pass on the shared driver.
package server
