package layout

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/causeview/pkg/causal"
)

func TestToDOT(t *testing.T) {
	g := chain(t, "a", `say "hi"`)
	dot, names := ToDOT(g, RankTB)

	for _, want := range []string{"digraph G", "rankdir=TB", `n0 [label="a"]`, `n1 [label="say \"hi\""]`, "n0 -> n1"} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q:\n%s", want, dot)
		}
	}
	if names["n0"] != "a" || names["n1"] != `say "hi"` {
		t.Errorf("names = %v", names)
	}
}

func TestToDOTRankDir(t *testing.T) {
	dot, _ := ToDOT(chain(t, "a"), RankLR)
	if !strings.Contains(dot, "rankdir=LR") {
		t.Errorf("ToDOT() missing rankdir=LR:\n%s", dot)
	}
	dot, _ = ToDOT(chain(t, "a"), "")
	if !strings.Contains(dot, "rankdir=TB") {
		t.Errorf("ToDOT() default rankdir should be TB:\n%s", dot)
	}
}

func TestHierarchicalEmpty(t *testing.T) {
	pos, err := NewHierarchical(RankTB).Layout(context.Background(), causal.New())
	if err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	if len(pos) != 0 {
		t.Errorf("got %d positions, want 0", len(pos))
	}
}

func TestHierarchicalChainTopDown(t *testing.T) {
	g := chain(t, "root", "mid", "leaf")
	pos, err := NewHierarchical(RankTB).Layout(context.Background(), g)
	if err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	assertCovers(t, g, pos)
	if !(pos["root"].Y < pos["mid"].Y && pos["mid"].Y < pos["leaf"].Y) {
		t.Errorf("ancestors should be above descendants: %v", pos)
	}
}

func TestHierarchicalIsolatedNodes(t *testing.T) {
	g := isolated(t, 4)
	pos, err := NewHierarchical(RankTB).Layout(context.Background(), g)
	if err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	assertCovers(t, g, pos)
	assertDistinct(t, pos)
}

func TestHierarchicalAwkwardIDs(t *testing.T) {
	g := chain(t, `back\slash`, `quo"te`, "spaced id", "ünïcode")
	pos, err := NewHierarchical(RankTB).Layout(context.Background(), g)
	if err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	assertCovers(t, g, pos)
}

func TestParsePlain(t *testing.T) {
	plain := `graph 1 1.5 2.5
node n0 0.75 2.25 0.3 0.3 "a b" solid circle black lightgrey
node n1 0.75 0.25 0.3 0.3 "say \"hi\"" solid circle black lightgrey
edge n0 n1 4 0.75 2.1 0.75 1.8 0.75 0.7 0.75 0.4 solid black
stop
`
	centres, height, err := parsePlain([]byte(plain))
	if err != nil {
		t.Fatalf("parsePlain() error: %v", err)
	}
	if height != 2.5 {
		t.Errorf("height = %v, want 2.5", height)
	}
	if centres["n0"] != (Position{X: 0.75, Y: 2.25}) {
		t.Errorf("n0 = %v", centres["n0"])
	}
	if centres["n1"] != (Position{X: 0.75, Y: 0.25}) {
		t.Errorf("n1 = %v", centres["n1"])
	}
}

func TestParsePlainErrors(t *testing.T) {
	tests := map[string]string{
		"empty":      "",
		"no graph":   "node n0 1 1 0.3 0.3 a solid circle black lightgrey\nstop\n",
		"bad height": "graph 1 1 x\nstop\n",
		"bad x":      "graph 1 1 1\nnode n0 x 1 0.3 0.3 a solid circle black lightgrey\n",
		"short node": "graph 1 1 1\nnode n0\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			if _, _, err := parsePlain([]byte(in)); err == nil {
				t.Errorf("parsePlain(%q) should fail", in)
			}
		})
	}
}

func TestSplitPlain(t *testing.T) {
	got := splitPlain(`node n0 1 2 "a \"b\" c"  end`)
	want := []string{"node", "n0", "1", "2", `a "b" c`, "end"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("splitPlain() = %q, want %q", got, want)
	}
}
