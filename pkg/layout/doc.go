// Package layout computes 2D node positions for causality graphs.
//
// # Strategies
//
// Every algorithm implements [Strategy]:
//
//   - [Hierarchical]: layered "dot" tree layout computed in-process by
//     Graphviz (github.com/goccy/go-graphviz). Ancestors are placed above
//     their descendants (rankdir=TB) or to their left (rankdir=LR); each
//     connected component gets its own layered placement with crossing
//     minimisation delegated to Graphviz.
//   - [ForceDirected]: Fruchterman-Reingold spring layout driven by a fixed
//     seed, so repeated runs produce identical positions.
//
// # Fallback
//
// [Fallback] tries its primary strategy once and, if that fails or is not
// available, runs the secondary strategy instead. The primary failure is
// not swallowed: it is returned as [Result.Warning] (a LAYOUT_UNAVAILABLE
// error) and [Result.Degraded] is set, so the caller can tell the user the
// layout is degraded while still rendering.
//
//	sel := layout.Fallback{Primary: layout.NewHierarchical(layout.RankTB), Secondary: layout.NewForceDirected(42)}
//	res, err := sel.Layout(ctx, g)
//	if res.Degraded {
//	    logger.Warn("layout degraded", "err", res.Warning)
//	}
//
// # Coordinates
//
// Positions are planar coordinates in points with y growing downward. Every
// strategy returns exactly one position per node of the graph it was given,
// an empty map for an empty graph, and distinct positions for isolated
// nodes.
package layout
