// Package scene turns a positioned causal graph into drawable primitives.
//
// A [Scene] is a flat list of line segments (edges) and sized, coloured
// points (nodes). It carries no layout logic: positions come from
// [github.com/matzehuels/causeview/pkg/layout] and colours from
// [github.com/matzehuels/causeview/pkg/palette].
//
// # Sinks
//
// Scenes are consumed in two ways:
//
//   - As JSON, by the browser viewer served from pkg/server
//   - As SVG, via [RenderSVG], which draws edges beneath nodes and attaches
//     a native tooltip to every node
//
// # Marker Size
//
// Marker size grows linearly with the node's observation count:
//
//	size = BaseSize + SizeScale*count
//
// Size is a diameter in points.
package scene
