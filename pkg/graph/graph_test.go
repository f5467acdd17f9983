package graph

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/causeview/pkg/causal"
	cverrors "github.com/matzehuels/causeview/pkg/errors"
)

const threeNodeJSON = `{
  "nodes": [
    {"id": "1", "step": 1},
    {"id": "2", "step": 1},
    {"id": "3", "step": 2}
  ],
  "edges": [
    {"source": "1", "target": "2"},
    {"source": "2", "target": "3"}
  ]
}`

const threeNodeYAML = `
nodes:
  - id: "1"
    step: 1
  - id: "2"
    step: 1
  - id: "3"
    step: 2
edges:
  - source: "1"
    target: "2"
  - source: "2"
    target: "3"
`

func TestReadDefaults(t *testing.T) {
	g, err := Read(strings.NewReader(`{"nodes":[{"id":"a"}],"edges":[]}`), FormatJSON)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	n, ok := g.Node("a")
	if !ok {
		t.Fatal("node a missing")
	}
	want := causal.Node{ID: "a", Label: "a", Step: 1, Count: 1, Cluster: ""}
	if n != want {
		t.Errorf("node = %+v, want %+v", n, want)
	}
}

func TestReadExplicitFields(t *testing.T) {
	data := `{"nodes":[{"id":"a","label":"Rain","step":3,"count":7,"cluster":"weather"}],"edges":[]}`
	g, err := Read(strings.NewReader(data), FormatJSON)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	n, _ := g.Node("a")
	want := causal.Node{ID: "a", Label: "Rain", Step: 3, Count: 7, Cluster: "weather"}
	if n != want {
		t.Errorf("node = %+v, want %+v", n, want)
	}
}

func TestReadJSONAndYAMLAgree(t *testing.T) {
	gj, err := Read(strings.NewReader(threeNodeJSON), FormatJSON)
	if err != nil {
		t.Fatalf("Read(json) error: %v", err)
	}
	gy, err := Read(strings.NewReader(threeNodeYAML), FormatYAML)
	if err != nil {
		t.Fatalf("Read(yaml) error: %v", err)
	}

	jn, yn := gj.Nodes(), gy.Nodes()
	if len(jn) != len(yn) {
		t.Fatalf("node counts differ: %d vs %d", len(jn), len(yn))
	}
	for i := range jn {
		if jn[i] != yn[i] {
			t.Errorf("node %d: json %+v, yaml %+v", i, jn[i], yn[i])
		}
	}
	if gj.EdgeCount() != gy.EdgeCount() {
		t.Errorf("edge counts differ: %d vs %d", gj.EdgeCount(), gy.EdgeCount())
	}
}

func TestRoundTripFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.json")
	if err := os.WriteFile(path, []byte(threeNodeJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}

	f := causal.Filter(g, 1)
	var ids []string
	for _, n := range f.Nodes() {
		ids = append(ids, n.ID)
	}
	if strings.Join(ids, ",") != "1,2" {
		t.Errorf("filtered nodes = %v, want [1 2]", ids)
	}
	edges := f.Edges()
	if len(edges) != 1 || edges[0] != (causal.Edge{From: "1", To: "2"}) {
		t.Errorf("filtered edges = %v, want [{1 2}]", edges)
	}
}

func TestReadFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.json")
	_, err := ReadFile(path)
	if err == nil {
		t.Fatal("ReadFile() should fail for missing file")
	}
	if !cverrors.Is(err, cverrors.ErrCodeMissingInput) {
		t.Errorf("code = %v, want %v", cverrors.GetCode(err), cverrors.ErrCodeMissingInput)
	}
	if !strings.Contains(err.Error(), "nope.json") {
		t.Errorf("error %q should name the missing file", err)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		code   cverrors.Code
	}{
		{"bad json", `{"nodes": [`, FormatJSON, cverrors.ErrCodeInvalidFormat},
		{"bad yaml", "nodes: [\n  - id: [", FormatYAML, cverrors.ErrCodeInvalidFormat},
		{"unknown format", `{}`, Format("toml"), cverrors.ErrCodeInvalidFormat},
		{"missing target", `{"nodes":[{"id":"a"}],"edges":[{"source":"a","target":"b"}]}`, FormatJSON, cverrors.ErrCodeDataIntegrity},
		{"empty id", `{"nodes":[{"id":""}]}`, FormatJSON, cverrors.ErrCodeDataIntegrity},
		{"duplicate id", `{"nodes":[{"id":"a"},{"id":"a"}]}`, FormatJSON, cverrors.ErrCodeDataIntegrity},
		{"zero step", `{"nodes":[{"id":"a","step":0}]}`, FormatJSON, cverrors.ErrCodeDataIntegrity},
		{"negative count", `{"nodes":[{"id":"a","count":-2}]}`, FormatJSON, cverrors.ErrCodeDataIntegrity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.data), tt.format)
			if err == nil {
				t.Fatal("Read() should fail")
			}
			if !cverrors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v (err: %v)", cverrors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestWriteMakesDefaultsExplicit(t *testing.T) {
	g, err := Read(strings.NewReader(`{"nodes":[{"id":"a"}]}`), FormatJSON)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	data, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	for _, want := range []string{`"label": "a"`, `"step": 1`, `"count": 1`, `"cluster": ""`} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("Marshal() output missing %s:\n%s", want, data)
		}
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	g, err := Read(strings.NewReader(threeNodeJSON), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"out.json", "out.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := WriteFile(g, path); err != nil {
				t.Fatalf("WriteFile() error: %v", err)
			}
			back, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile() error: %v", err)
			}
			if back.NodeCount() != 3 || back.EdgeCount() != 2 {
				t.Errorf("round trip = %d nodes, %d edges, want 3 and 2", back.NodeCount(), back.EdgeCount())
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"a.json":      FormatJSON,
		"a.yaml":      FormatYAML,
		"a.YML":       FormatYAML,
		"noextension": FormatJSON,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}
