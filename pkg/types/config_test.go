package types

import "testing"

func TestBuildHashCodeStableAcrossInstances(t *testing.T) {
	a := NewConfig("n1", "filter", []string{"a", "b"}, true, false)
	b := NewConfig("n1", "filter", []string{"a", "b"}, true, false)
	if a.BuildHashCode() != b.BuildHashCode() {
		t.Fatalf("semantically identical configs hashed differently: %d vs %d", a.BuildHashCode(), b.BuildHashCode())
	}
}

func TestBuildHashCodeDiffersOnAnyField(t *testing.T) {
	base := NewConfig("n1", "filter", []string{"a"}, true, false)
	variants := []*Config{
		NewConfig("n2", "filter", []string{"a"}, true, false),
		NewConfig("n1", "groupby", []string{"a"}, true, false),
		NewConfig("n1", "filter", []string{"b"}, true, false),
		NewConfig("n1", "filter", []string{"a"}, false, false),
		NewConfig("n1", "filter", []string{"a"}, true, true),
	}
	for _, v := range variants {
		if v.BuildHashCode() == base.BuildHashCode() {
			t.Fatalf("expected distinct hash for %+v vs base %+v", v, base)
		}
	}
}

func TestConfigBuilderLeavesOriginalUnchanged(t *testing.T) {
	orig := NewConfig("n1", "filter", []string{"a"}, false, false)
	modified := orig.ToBuilder().SetPushDown(true).SetSources([]string{"x", "y"}).Build()

	if orig.PushDown() {
		t.Fatalf("original config mutated by builder")
	}
	if len(orig.Sources()) != 1 || orig.Sources()[0] != "a" {
		t.Fatalf("original config's sources mutated: %v", orig.Sources())
	}
	if !modified.PushDown() {
		t.Fatalf("expected modified copy to have pushDown = true")
	}
	if len(modified.Sources()) != 2 || modified.Sources()[0] != "x" {
		t.Fatalf("expected modified copy's sources = [x y], got %v", modified.Sources())
	}
}

func TestSourcesReturnsDefensiveCopy(t *testing.T) {
	cfg := NewConfig("n1", "", []string{"a", "b"}, false, false)
	got := cfg.Sources()
	got[0] = "mutated"
	if cfg.Sources()[0] != "a" {
		t.Fatalf("mutating the returned slice affected the config's internal state")
	}
}

func TestContextNodeHashStableAcrossInstances(t *testing.T) {
	a := NewContextNode()
	b := NewContextNode()
	if a.BuildHashCode() != b.BuildHashCode() {
		t.Fatalf("distinct ContextNode instances must hash identically, got %d vs %d", a.BuildHashCode(), b.BuildHashCode())
	}
	if IsContextNode(a) != true {
		t.Fatalf("expected IsContextNode(a) = true")
	}
	if IsContextNode(NewConfig("x", "", nil, false, false)) {
		t.Fatalf("expected IsContextNode(plain config) = false")
	}
}
