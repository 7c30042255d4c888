package graph

import (
	"testing"

	"github.com/tsdbquery/planner/pkg/types"
)

func TestConfigGraphAddEdgeRejectsCycle(t *testing.T) {
	cg := NewConfigGraph()
	a := types.NewConfig("a", "", nil, false, false)
	b := types.NewConfig("b", "", nil, false, false)
	c := types.NewConfig("c", "", nil, false, false)

	if _, err := cg.AddEdge(a, b); err != nil {
		t.Fatalf("a->b: %v", err)
	}
	if _, err := cg.AddEdge(b, c); err != nil {
		t.Fatalf("b->c: %v", err)
	}

	beforeNodes := len(cg.Nodes())

	_, err := cg.AddEdge(c, a)
	if err == nil {
		t.Fatalf("expected CycleError for c->a")
	}
	var cycleErr *CycleError
	if ce, ok := err.(*CycleError); !ok {
		t.Fatalf("expected *CycleError, got %T", err)
	} else {
		cycleErr = ce
	}
	if cycleErr.From != "c" || cycleErr.To != "a" {
		t.Fatalf("unexpected cycle error endpoints: %+v", cycleErr)
	}

	if got := len(cg.Nodes()); got != beforeNodes {
		t.Fatalf("graph should be unchanged after rejected edge: got %d nodes, want %d", got, beforeNodes)
	}
}

func TestConfigGraphAddEdgeRejectsSelfLoop(t *testing.T) {
	cg := NewConfigGraph()
	a := types.NewConfig("a", "", nil, false, false)
	if _, err := cg.AddEdge(a, a); err == nil {
		t.Fatalf("expected self-loop to be rejected")
	}
}

func TestConfigGraphSourceNodesTracksDataSources(t *testing.T) {
	cg := NewConfigGraph()
	op := types.NewConfig("op", "", nil, false, false)
	src := types.NewSource("src", "tsdb", nil, false, types.NoopFilter{})

	if _, err := cg.AddEdge(op, src); err != nil {
		t.Fatalf("op->src: %v", err)
	}

	sources := cg.SourceNodes()
	if len(sources) != 1 || sources[0].ID() != "src" {
		t.Fatalf("expected sourceNodes = {src}, got %+v", sources)
	}

	cg.RemoveEdge(op, src)
	if len(cg.SourceNodes()) != 0 {
		t.Fatalf("expected sourceNodes to be empty after orphaning src")
	}
}

func TestConfigGraphAddThenRemoveEdgeIsIdentity(t *testing.T) {
	cg := NewConfigGraph()
	a := types.NewConfig("a", "", nil, false, false)
	b := types.NewConfig("b", "", nil, false, false)
	c := types.NewConfig("c", "", nil, false, false)
	if _, err := cg.AddEdge(a, b); err != nil {
		t.Fatal(err)
	}
	if _, err := cg.AddEdge(b, c); err != nil {
		t.Fatal(err)
	}

	before := snapshotEdges(cg)

	if _, err := cg.AddEdge(a, c); err != nil {
		t.Fatal(err)
	}
	if !cg.RemoveEdge(a, c) {
		t.Fatalf("expected RemoveEdge(a,c) to report removal")
	}

	after := snapshotEdges(cg)
	if !edgeSetsEqual(before, after) {
		t.Fatalf("graph not bit-identical after add-then-remove: before=%v after=%v", before, after)
	}
}

func TestConfigGraphReplacePreservesNeighborSets(t *testing.T) {
	cg := NewConfigGraph()
	parent := types.NewConfig("parent", "", nil, false, false)
	old := types.NewConfig("old", "", nil, false, false)
	child := types.NewConfig("child", "", nil, false, false)

	if _, err := cg.AddEdge(parent, old); err != nil {
		t.Fatal(err)
	}
	if _, err := cg.AddEdge(old, child); err != nil {
		t.Fatal(err)
	}

	replacement := types.NewConfig("replacement", "", nil, false, false)
	if err := cg.Replace(old, replacement); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	preds := cg.Predecessors(replacement)
	if len(preds) != 1 || preds[0].ID() != "parent" {
		t.Fatalf("expected replacement's predecessors = {parent}, got %+v", preds)
	}
	succs := cg.Successors(replacement)
	if len(succs) != 1 || succs[0].ID() != "child" {
		t.Fatalf("expected replacement's successors = {child}, got %+v", succs)
	}
	if cg.HasNode("old") {
		t.Fatalf("old node should have been removed")
	}
}

type edgeKey struct{ from, to string }

func snapshotEdges(cg *ConfigGraph) map[edgeKey]bool {
	out := make(map[edgeKey]bool)
	for _, n := range cg.Nodes() {
		for _, s := range cg.Successors(n) {
			out[edgeKey{n.ID(), s.ID()}] = true
		}
	}
	return out
}

func edgeSetsEqual(a, b map[edgeKey]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}
