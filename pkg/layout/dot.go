package layout

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/causeview/pkg/causal"
)

// RankDir is the direction in which Graphviz stacks layers.
type RankDir string

// Supported rank directions.
const (
	RankTB RankDir = "TB" // ancestors above descendants
	RankLR RankDir = "LR" // ancestors left of descendants
)

// formatPlain is Graphviz's line-oriented "plain" output: one record per
// node with its centre in inches.
const formatPlain graphviz.Format = "plain"

// pointsPerInch converts Graphviz inches to layout points.
const pointsPerInch = 72.0

// Hierarchical lays graphs out with the Graphviz dot engine.
type Hierarchical struct {
	RankDir RankDir
}

// NewHierarchical returns a dot layout with the given rank direction.
// An empty direction means RankTB.
func NewHierarchical(dir RankDir) Hierarchical {
	if dir == "" {
		dir = RankTB
	}
	return Hierarchical{RankDir: dir}
}

// Name implements Strategy.
func (Hierarchical) Name() string { return EngineDot }

// Layout implements Strategy.
func (h Hierarchical) Layout(ctx context.Context, g *causal.Graph) (Positions, error) {
	if g.NodeCount() == 0 {
		return Positions{}, nil
	}

	dot, names := ToDOT(g, h.RankDir)
	plain, err := renderPlain(ctx, dot)
	if err != nil {
		return nil, err
	}

	centres, height, err := parsePlain(plain)
	if err != nil {
		return nil, fmt.Errorf("parse plain output: %w", err)
	}

	pos := make(Positions, len(names))
	for name, id := range names {
		c, ok := centres[name]
		if !ok {
			return nil, fmt.Errorf("graphviz returned no position for node %q", id)
		}
		pos[id] = Position{
			X: c.X * pointsPerInch,
			Y: (height - c.Y) * pointsPerInch,
		}
	}
	return pos, nil
}

// ToDOT writes g as a Graphviz digraph.
//
// Nodes are named n0, n1, ... in graph order and carry their id as label, so
// arbitrary ids survive the round trip through Graphviz. The returned map
// resolves DOT names back to node ids.
func ToDOT(g *causal.Graph, dir RankDir) (string, map[string]string) {
	if dir == "" {
		dir = RankTB
	}

	nodes := g.Nodes()
	names := make(map[string]string, len(nodes))
	byID := make(map[string]string, len(nodes))

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", dir)
	buf.WriteString("  node [shape=circle, width=0.3, fixedsize=true];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i, n := range nodes {
		name := "n" + strconv.Itoa(i)
		names[name] = n.ID
		byID[n.ID] = name
		fmt.Fprintf(&buf, "  %s [label=%s];\n", name, dotQuote(n.ID))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %s -> %s;\n", byID[e.From], byID[e.To])
	}

	buf.WriteString("}\n")
	return buf.String(), names
}

// dotQuote quotes s as a DOT string. DOT only recognises \" inside quotes;
// a trailing backslash would escape the closing quote, so backslashes are
// doubled.
func dotQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

func renderPlain(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, formatPlain, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
