// Package palette assigns stable categorical colours to cluster labels.
//
// Colours are sampled from a fixed ordered [Palette] at evenly spaced
// normalized positions, so a given set of clusters always produces the same
// [ColorMap] no matter in which order the clusters were discovered:
//
//	cm := palette.Assign(g.Clusters())
//	fill := cm.Lookup(node.Cluster)
//
// The map is computed once from the unfiltered graph and never changes when
// the viewer's step threshold does.
package palette

import (
	"encoding/json"
	"math"
	"regexp"
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	cverrors "github.com/matzehuels/causeview/pkg/errors"
)

// Neutral is the fallback colour for clusters absent from a ColorMap.
const Neutral = "#808080"

// Palette is an ordered list of "#rrggbb" colours.
type Palette []string

// Tab20 is the default 20-hue categorical palette.
var Tab20 = Palette{
	"#1f77b4", "#aec7e8", "#ff7f0e", "#ffbb78", "#2ca02c",
	"#98df8a", "#d62728", "#ff9896", "#9467bd", "#c5b0d5",
	"#8c564b", "#c49c94", "#e377c2", "#f7b6d2", "#7f7f7f",
	"#c7c7c7", "#bcbd22", "#dbdb8d", "#17becf", "#9edae5",
}

// Len returns the number of colours in the palette.
func (p Palette) Len() int { return len(p) }

// At samples the palette at normalized position pos in [0, 1].
// Positions outside the range are clamped. An empty palette yields Neutral.
func (p Palette) At(pos float64) string {
	if len(p) == 0 {
		return Neutral
	}
	return p[p.index(pos)]
}

func (p Palette) index(pos float64) int {
	if math.IsNaN(pos) || pos < 0 {
		pos = 0
	}
	i := int(pos * float64(len(p)))
	return min(i, len(p)-1)
}

// Validate checks that every entry is a parseable hex colour.
func (p Palette) Validate() error {
	if len(p) == 0 {
		return cverrors.New(cverrors.ErrCodeInvalidConfig, "palette must not be empty")
	}
	for i, c := range p {
		if err := ValidateHex(c); err != nil {
			return cverrors.Wrap(cverrors.ErrCodeInvalidConfig, err, "palette entry %d", i)
		}
	}
	return nil
}

var hexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidateHex checks that hex is exactly "#rrggbb".
// colorful.Hex alone accepts truncated input such as "#12345".
func ValidateHex(hex string) error {
	if !hexPattern.MatchString(hex) {
		return cverrors.New(cverrors.ErrCodeInvalidConfig, "%q is not a #rrggbb colour", hex)
	}
	if _, err := colorful.Hex(hex); err != nil {
		return cverrors.Wrap(cverrors.ErrCodeInvalidConfig, err, "parse colour %q", hex)
	}
	return nil
}

// ColorMap maps cluster labels to colours.
// The zero value maps every cluster to the neutral colour.
type ColorMap struct {
	colors   map[string]string
	clusters []string
	neutral  string
}

// Assign builds a ColorMap from the default Tab20 palette.
func Assign(clusters []string) ColorMap {
	return AssignWith(Tab20, clusters)
}

// AssignWith builds a ColorMap by sorting the distinct clusters
// lexicographically and giving the i-th one the colour at position
// i / max(1, n-1). A single cluster maps to position 0.
//
// For up to p.Len() clusters every cluster gets its own palette slot.
// Larger sets reuse slots.
func AssignWith(p Palette, clusters []string) ColorMap {
	sorted := slices.Clone(clusters)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	cm := ColorMap{
		colors:   make(map[string]string, len(sorted)),
		clusters: sorted,
		neutral:  Neutral,
	}
	denom := float64(max(1, len(sorted)-1))
	for i, c := range sorted {
		cm.colors[c] = Normalize(p.At(float64(i) / denom))
	}
	return cm
}

// WithNeutral returns a copy of the map using neutral as its fallback colour.
func (m ColorMap) WithNeutral(neutral string) ColorMap {
	m.neutral = Normalize(neutral)
	return m
}

// Lookup returns the colour assigned to cluster, or the neutral fallback.
func (m ColorMap) Lookup(cluster string) string {
	if c, ok := m.colors[cluster]; ok {
		return c
	}
	return m.Neutral()
}

// Has reports whether cluster has an assigned colour.
func (m ColorMap) Has(cluster string) bool {
	_, ok := m.colors[cluster]
	return ok
}

// Neutral returns the fallback colour.
func (m ColorMap) Neutral() string {
	if m.neutral == "" {
		return Neutral
	}
	return m.neutral
}

// Clusters returns the assigned clusters in lexicographic order.
func (m ColorMap) Clusters() []string { return slices.Clone(m.clusters) }

// Len returns the number of assigned clusters.
func (m ColorMap) Len() int { return len(m.clusters) }

// Map returns a copy of the cluster -> colour mapping.
func (m ColorMap) Map() map[string]string {
	out := make(map[string]string, len(m.colors))
	for k, v := range m.colors {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes the map as a plain JSON object.
func (m ColorMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Map())
}

// Normalize returns hex in lowercase "#rrggbb" form.
// Malformed input is returned unchanged.
func Normalize(hex string) string {
	if ValidateHex(hex) != nil {
		return hex
	}
	c, _ := colorful.Hex(hex)
	return c.Hex()
}

// Contrast returns "#000000" or "#ffffff", whichever reads better on top of
// the given background colour.
func Contrast(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "#000000"
	}
	r, g, b := c.LinearRgb()
	if 0.2126*r+0.7152*g+0.0722*b > 0.179 {
		return "#000000"
	}
	return "#ffffff"
}
