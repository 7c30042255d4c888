package graph

import (
	"testing"

	"github.com/tsdbquery/planner/internal/testfactory"
	"github.com/tsdbquery/planner/pkg/types"
)

func TestExecutorGraphAddEdgeRejectsCycle(t *testing.T) {
	eg := NewExecutorGraph()
	a := testfactory.NewExecutor(types.NewConfig("a", "", nil, false, false), nil)
	b := testfactory.NewExecutor(types.NewConfig("b", "", nil, false, false), nil)
	c := testfactory.NewExecutor(types.NewConfig("c", "", nil, false, false), nil)

	if _, err := eg.AddEdge(a, b); err != nil {
		t.Fatalf("a->b: %v", err)
	}
	if _, err := eg.AddEdge(b, c); err != nil {
		t.Fatalf("b->c: %v", err)
	}

	beforeNodes := len(eg.Nodes())

	_, err := eg.AddEdge(c, a)
	if err == nil {
		t.Fatalf("expected CycleError for c->a")
	}
	cycleErr, ok := err.(*CycleError)
	if !ok {
		t.Fatalf("expected *CycleError, got %T", err)
	}
	if cycleErr.From != "c" || cycleErr.To != "a" {
		t.Fatalf("unexpected cycle error endpoints: %+v", cycleErr)
	}
	if got := len(eg.Nodes()); got != beforeNodes {
		t.Fatalf("graph should be unchanged after rejected edge: got %d nodes, want %d", got, beforeNodes)
	}
}

func TestExecutorGraphAddEdgeRejectsSelfLoop(t *testing.T) {
	eg := NewExecutorGraph()
	a := testfactory.NewExecutor(types.NewConfig("a", "", nil, false, false), nil)
	if _, err := eg.AddEdge(a, a); err == nil {
		t.Fatalf("expected self-loop to be rejected")
	}
}

func TestExecutorGraphPredecessorsSuccessors(t *testing.T) {
	eg := NewExecutorGraph()
	parent := testfactory.NewExecutor(types.NewConfig("parent", "", nil, false, false), nil)
	child := testfactory.NewExecutor(types.NewConfig("child", "", nil, false, false), nil)

	if _, err := eg.AddEdge(parent, child); err != nil {
		t.Fatalf("parent->child: %v", err)
	}

	succs := eg.Successors(parent)
	if len(succs) != 1 || succs[0].Config().ID() != "child" {
		t.Fatalf("expected parent's successors = {child}, got %+v", succs)
	}
	preds := eg.Predecessors(child)
	if len(preds) != 1 || preds[0].Config().ID() != "parent" {
		t.Fatalf("expected child's predecessors = {parent}, got %+v", preds)
	}

	if !eg.RemoveEdge(parent, child) {
		t.Fatalf("expected RemoveEdge to report removal")
	}
	if len(eg.Successors(parent)) != 0 {
		t.Fatalf("expected parent to have no successors after RemoveEdge")
	}

	if !eg.RemoveNode(parent) {
		t.Fatalf("expected RemoveNode to report removal")
	}
	if eg.HasNode("parent") {
		t.Fatalf("parent should be gone after RemoveNode")
	}
}
