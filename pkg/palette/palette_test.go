package palette

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestAtEndpoints(t *testing.T) {
	if got := Tab20.At(0); got != "#1f77b4" {
		t.Errorf("At(0) = %s, want #1f77b4", got)
	}
	if got := Tab20.At(1); got != "#9edae5" {
		t.Errorf("At(1) = %s, want #9edae5", got)
	}
	if got := Tab20.At(-3); got != Tab20.At(0) {
		t.Errorf("At(-3) = %s, want clamp to At(0)", got)
	}
	if got := Tab20.At(7); got != Tab20.At(1) {
		t.Errorf("At(7) = %s, want clamp to At(1)", got)
	}
	if got := (Palette{}).At(0.5); got != Neutral {
		t.Errorf("empty At() = %s, want %s", got, Neutral)
	}
}

func TestAssignSingleCluster(t *testing.T) {
	cm := Assign([]string{"only"})
	if got := cm.Lookup("only"); got != Tab20.At(0) {
		t.Errorf("single cluster = %s, want %s", got, Tab20.At(0))
	}
}

func TestAssignOrderIndependent(t *testing.T) {
	a := Assign([]string{"c", "a", "b", "a"})
	b := Assign([]string{"b", "c", "a"})
	for _, k := range []string{"a", "b", "c"} {
		if a.Lookup(k) != b.Lookup(k) {
			t.Errorf("Lookup(%q) differs: %s vs %s", k, a.Lookup(k), b.Lookup(k))
		}
	}
	if a.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (duplicates collapsed)", a.Len())
	}
}

func TestAssignDistinctUpToPaletteSize(t *testing.T) {
	for n := 1; n <= Tab20.Len(); n++ {
		clusters := make([]string, n)
		for i := range clusters {
			clusters[i] = fmt.Sprintf("c%02d", i)
		}
		cm := Assign(clusters)
		seen := make(map[string]string)
		for _, c := range clusters {
			col := cm.Lookup(c)
			if prev, dup := seen[col]; dup {
				t.Fatalf("n=%d: clusters %s and %s share colour %s", n, prev, c, col)
			}
			seen[col] = c
		}
	}
}

func TestAssignLargeSetReuses(t *testing.T) {
	clusters := make([]string, 57)
	for i := range clusters {
		clusters[i] = fmt.Sprintf("k%d", i)
	}
	cm := Assign(clusters)
	if cm.Len() != 57 {
		t.Errorf("Len() = %d, want 57", cm.Len())
	}
	for _, c := range clusters {
		if !cm.Has(c) {
			t.Errorf("cluster %s missing from map", c)
		}
	}
}

func TestLookupFallback(t *testing.T) {
	cm := Assign([]string{"", "x"})
	if got := cm.Lookup(""); got != Tab20.At(0) {
		t.Errorf("Lookup(\"\") = %s, want assigned colour %s", got, Tab20.At(0))
	}
	if got := cm.Lookup("missing"); got != Neutral {
		t.Errorf("Lookup(missing) = %s, want %s", got, Neutral)
	}
	if got := cm.WithNeutral("#ABCDEF").Lookup("missing"); got != "#abcdef" {
		t.Errorf("custom neutral = %s, want #abcdef", got)
	}

	var zero ColorMap
	if got := zero.Lookup("x"); got != Neutral {
		t.Errorf("zero ColorMap Lookup() = %s, want %s", got, Neutral)
	}
}

func TestMarshalJSON(t *testing.T) {
	cm := Assign([]string{"a", "b"})
	data, err := json.Marshal(cm)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if got["a"] != cm.Lookup("a") || got["b"] != cm.Lookup("b") {
		t.Errorf("json = %v, want a=%s b=%s", got, cm.Lookup("a"), cm.Lookup("b"))
	}
}

func TestValidate(t *testing.T) {
	if err := Tab20.Validate(); err != nil {
		t.Errorf("Tab20.Validate() = %v", err)
	}
	if err := (Palette{}).Validate(); err == nil {
		t.Error("empty palette should be invalid")
	}
	if err := (Palette{"#12345"}).Validate(); err == nil {
		t.Error("malformed hex should be invalid")
	}
}

func TestValidateHex(t *testing.T) {
	tests := []struct {
		hex   string
		valid bool
	}{
		{"#1f77b4", true},
		{"#ABCDEF", true},
		{"#12345", false},
		{"#1234567", false},
		{"123456", false},
		{"#12345g", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			err := ValidateHex(tt.hex)
			if (err == nil) != tt.valid {
				t.Errorf("ValidateHex(%q) = %v, want valid=%v", tt.hex, err, tt.valid)
			}
		})
	}
}

func TestNormalizeLeavesMalformedInput(t *testing.T) {
	if got := Normalize("#12345"); got != "#12345" {
		t.Errorf("Normalize(#12345) = %q, want input unchanged", got)
	}
	if got := Normalize("#ABCDEF"); got != "#abcdef" {
		t.Errorf("Normalize(#ABCDEF) = %q, want #abcdef", got)
	}
}

func TestContrast(t *testing.T) {
	if got := Contrast("#ffffff"); got != "#000000" {
		t.Errorf("Contrast(white) = %s, want black", got)
	}
	if got := Contrast("#000000"); got != "#ffffff" {
		t.Errorf("Contrast(black) = %s, want white", got)
	}
}
