package scene

import (
	"fmt"
	"html"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
)

const (
	svgMargin    = 20
	svgTitleBand = 36
	edgeStyle    = "stroke:#b0b0b0;stroke-width:1;stroke-opacity:0.8"
	titleStyle   = "fill:#333;font-size:16px;font-family:system-ui,sans-serif;font-weight:600;text-anchor:middle"
)

// SVGOptions controls the SVG sink.
type SVGOptions struct {
	Title  string
	Height int // Output height in pixels; 0 means 800
	Width  int // Output width in pixels; 0 keeps the scene aspect ratio
}

// RenderSVG writes s as a standalone SVG document.
//
// Edges are drawn first so nodes sit on top of them. Each node carries a
// <title> child, which browsers show as a hover tooltip. The viewBox is
// fitted to [Scene.Bounds] plus a band for the title; there are no axes.
func RenderSVG(w io.Writer, s Scene, opts SVGOptions) error {
	b := s.Bounds()
	minX := int(math.Floor(b.MinX)) - svgMargin
	minY := int(math.Floor(b.MinY)) - svgMargin - svgTitleBand
	vw := int(math.Ceil(b.Width())) + 2*svgMargin
	vh := int(math.Ceil(b.Height())) + 2*svgMargin + svgTitleBand

	height := opts.Height
	if height <= 0 {
		height = 800
	}
	width := opts.Width
	if width <= 0 {
		width = int(math.Round(float64(height) * float64(vw) / float64(vh)))
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Startview(width, height, minX, minY, vw, vh)
	if opts.Title != "" {
		canvas.Title(opts.Title)
	}
	canvas.Rect(minX, minY, vw, vh, "fill:#ffffff")

	if opts.Title != "" {
		canvas.Text(minX+vw/2, minY+svgMargin+svgTitleBand/2, opts.Title, titleStyle)
	}

	canvas.Gid("edges")
	for _, l := range s.Lines {
		canvas.Line(round(l.X0), round(l.Y0), round(l.X1), round(l.Y1), edgeStyle)
	}
	canvas.Gend()

	canvas.Gid("nodes")
	for _, p := range s.Points {
		canvas.Group(`class="node"`, `data-id="`+html.EscapeString(p.ID)+`"`)
		canvas.Title(strings.ReplaceAll(p.Hover, "<br>", "\n"))
		canvas.Circle(round(p.X), round(p.Y), max(1, round(p.Size/2)),
			fmt.Sprintf("fill:%s;stroke:#ffffff;stroke-width:1", p.Color))
		canvas.Gend()
	}
	canvas.Gend()

	canvas.End()
	return ew.err
}

func round(v float64) int { return int(math.Round(v)) }

// errWriter remembers the first write error; svgo itself ignores them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
