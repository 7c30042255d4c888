package graph

import "github.com/tsdbquery/planner/pkg/types"

// ExecutorGraph is the directed acyclic multigraph over Executor that the
// Executor Builder assembles in spec.md §4.5: it mirrors the shape of the
// ConfigGraph it was built from, but carries no sourceNodes bookkeeping —
// the builder tracks data sources itself as it walks (spec.md §4.5 step 7).
type ExecutorGraph struct {
	g *multigraph[types.Executor]
}

// NewExecutorGraph creates an empty ExecutorGraph.
func NewExecutorGraph() *ExecutorGraph {
	return &ExecutorGraph{
		g: newMultigraph[types.Executor](func(e types.Executor) string { return e.Config().ID() }),
	}
}

// AddNode inserts exec with no edges, if not already present.
func (eg *ExecutorGraph) AddNode(exec types.Executor) {
	eg.g.addNode(exec)
}

// HasNode reports whether id is present in the graph.
func (eg *ExecutorGraph) HasNode(id string) bool {
	return eg.g.hasNode(id)
}

// NodeByID returns the executor with the given id, if present.
func (eg *ExecutorGraph) NodeByID(id string) (types.Executor, bool) {
	return eg.g.nodeByID(id)
}

// Nodes returns every executor currently in the graph, in no particular
// order.
func (eg *ExecutorGraph) Nodes() []types.Executor {
	return eg.g.nodeList()
}

// Predecessors returns exec's upstream neighbors.
func (eg *ExecutorGraph) Predecessors(exec types.Executor) []types.Executor {
	return eg.g.predecessors(exec.Config().ID())
}

// Successors returns exec's downstream neighbors.
func (eg *ExecutorGraph) Successors(exec types.Executor) []types.Executor {
	return eg.g.successors(exec.Config().ID())
}

// AddEdge inserts an edge from -> to, failing with a *CycleError and
// leaving the graph unchanged if the edge would create a cycle or
// self-loop (spec.md §4.5 steps 3 and 8 build this graph edge by edge as
// each executor is constructed).
func (eg *ExecutorGraph) AddEdge(from, to types.Executor) (bool, error) {
	fromID, toID := from.Config().ID(), to.Config().ID()
	if fromID == toID {
		return false, NewCycleError(fromID, toID)
	}
	eg.g.addNode(from)
	eg.g.addNode(to)
	if eg.g.wouldCycle(fromID, toID) {
		return false, NewCycleError(fromID, toID)
	}
	return eg.g.addEdge(from, to), nil
}

// RemoveEdge removes the edge from -> to.
func (eg *ExecutorGraph) RemoveEdge(from, to types.Executor) bool {
	return eg.g.removeEdgeRaw(from.Config().ID(), to.Config().ID())
}

// RemoveNode drops exec and every incident edge.
func (eg *ExecutorGraph) RemoveNode(exec types.Executor) bool {
	return eg.g.removeNodeRaw(exec.Config().ID())
}
