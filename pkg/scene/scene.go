package scene

import (
	"fmt"
	"math"

	"github.com/matzehuels/causeview/pkg/causal"
	"github.com/matzehuels/causeview/pkg/layout"
	"github.com/matzehuels/causeview/pkg/palette"
)

// Default marker sizing.
const (
	DefaultBaseSize  = 10.0
	DefaultSizeScale = 2.0
)

// Segment is a straight edge between two node centres.
type Segment struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	X0   float64 `json:"x0"`
	Y0   float64 `json:"y0"`
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
}

// Point is a node marker.
type Point struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Size    float64 `json:"size"`
	Color   string  `json:"color"`
	Hover   string  `json:"hover"`
	Step    int     `json:"step"`
	Count   int     `json:"count"`
	Cluster string  `json:"cluster"`
}

// Scene is everything needed to draw one frame.
type Scene struct {
	Lines  []Segment `json:"lines"`
	Points []Point   `json:"points"`
}

// Options controls marker sizing. Zero values select the defaults.
type Options struct {
	BaseSize  float64
	SizeScale float64
}

func (o Options) withDefaults() Options {
	if o.BaseSize <= 0 {
		o.BaseSize = DefaultBaseSize
	}
	if o.SizeScale <= 0 {
		o.SizeScale = DefaultSizeScale
	}
	return o
}

// MarkerSize returns the marker diameter for a node with the given count.
func (o Options) MarkerSize(count int) float64 {
	o = o.withDefaults()
	return o.BaseSize + o.SizeScale*float64(count)
}

// Build converts g into a scene.
//
// Edges whose endpoints lack a position are skipped, as are nodes without a
// position. Points and lines follow graph order.
func Build(g *causal.Graph, pos layout.Positions, colors palette.ColorMap, opts Options) Scene {
	opts = opts.withDefaults()
	s := Scene{
		Lines:  []Segment{},
		Points: []Point{},
	}

	for _, e := range g.Edges() {
		from, ok := pos[e.From]
		if !ok {
			continue
		}
		to, ok := pos[e.To]
		if !ok {
			continue
		}
		s.Lines = append(s.Lines, Segment{
			From: e.From, To: e.To,
			X0: from.X, Y0: from.Y,
			X1: to.X, Y1: to.Y,
		})
	}

	for _, n := range g.Nodes() {
		p, ok := pos[n.ID]
		if !ok {
			continue
		}
		label := n.DisplayLabel()
		s.Points = append(s.Points, Point{
			ID:      n.ID,
			Label:   label,
			X:       p.X,
			Y:       p.Y,
			Size:    opts.MarkerSize(n.Count),
			Color:   colors.Lookup(n.Cluster),
			Hover:   HoverText(label, n.Step, n.Count, n.Cluster),
			Step:    n.Step,
			Count:   n.Count,
			Cluster: n.Cluster,
		})
	}
	return s
}

// HoverText formats the tooltip shown for a node.
func HoverText(label string, step, count int, cluster string) string {
	return fmt.Sprintf("%s<br>step: %d<br>count: %d<br>cluster: %s", label, step, count, cluster)
}

// Empty reports whether the scene has nothing to draw.
func (s Scene) Empty() bool { return len(s.Points) == 0 && len(s.Lines) == 0 }

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Bounds returns the smallest box containing every line and every marker,
// including marker radii. An empty scene has zero bounds.
func (s Scene) Bounds() Rect {
	if s.Empty() {
		return Rect{}
	}
	r := Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	extend := func(x, y, pad float64) {
		r.MinX = math.Min(r.MinX, x-pad)
		r.MinY = math.Min(r.MinY, y-pad)
		r.MaxX = math.Max(r.MaxX, x+pad)
		r.MaxY = math.Max(r.MaxY, y+pad)
	}
	for _, l := range s.Lines {
		extend(l.X0, l.Y0, 0)
		extend(l.X1, l.Y1, 0)
	}
	for _, p := range s.Points {
		extend(p.X, p.Y, p.Size/2)
	}
	return r
}
