package factory

import (
	"github.com/tsdbquery/planner/pkg/types"
)

// Context is the surrounding query pipeline context (spec.md §6's
// QueryPipelineContext) threaded through to factories unmodified. It is an
// external collaborator — the planner never inspects it, only forwards it —
// so it is left opaque here rather than given a concrete shape.
type Context interface{}

// GraphMutator is the subset of Planner's public mutator surface a factory
// may use from within SetupGraph to rewrite the config graph (spec.md §4.1,
// §4.3).
type GraphMutator interface {
	// AddEdge inserts an edge from parent to child. It reports whether the
	// edge was newly added and fails with a CycleError-shaped error if the
	// edge would create a cycle.
	AddEdge(from, to types.OperatorConfig) (bool, error)

	// RemoveEdge removes an edge, reporting whether it existed.
	RemoveEdge(from, to types.OperatorConfig) bool

	// RemoveNode drops a node and all incident edges, reporting whether it
	// existed.
	RemoveNode(cfg types.OperatorConfig) bool

	// Replace atomically swaps oldCfg for newCfg, preserving oldCfg's
	// predecessor and successor sets.
	Replace(oldCfg, newCfg types.OperatorConfig) error
}

// Factory is the external per-operator-type collaborator (spec.md §1: "out
// of scope ... factory behavior"). The planner only calls it through the
// three methods below; how a factory decides to rewrite the graph, whether
// it accepts push-down, and how it materializes an executor are outside
// this module's concern.
type Factory interface {
	// SetupGraph lets the factory rewrite the config graph rooted at node,
	// using mutator. Called once per (factory, node) pair per setup pass
	// (spec.md §4.3).
	SetupGraph(pctx Context, node types.OperatorConfig, mutator GraphMutator) error

	// SupportsPushdown reports whether operators of the given declared type
	// are eligible to be folded into this factory's data sources (spec.md
	// §4.4).
	SupportsPushdown(operatorType string) bool

	// NewNode materializes an executor instance for node (spec.md §4.5 step
	// 5). A nil, nil return is treated as NullExecutor by the caller.
	NewNode(pctx Context, node types.OperatorConfig) (types.Executor, error)
}
