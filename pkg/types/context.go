package types

import "github.com/cespare/xxhash/v2"

// ContextNodeID is the fixed id of the synthetic sentinel at the top of
// every config graph.
const ContextNodeID = "QueryContext"

// contextHash is computed once from the fixed sentinel id rather than from
// object identity, resolving spec.md §9's open question: plans built in the
// same process must hash the context node identically so that executor
// reuse (spec.md §9, §4.5 step 1) is stable across planner instances.
var contextHash = xxhash.Sum64String(ContextNodeID)

// ContextNode is the synthetic root of the config graph. It corresponds
// one-to-one with the externally supplied contextSink executor and carries
// no factory of its own; every place that would otherwise dispatch to a
// factory must branch-check for it first (spec.md §9).
type ContextNode struct{}

// NewContextNode returns a new sentinel instance. Each Planner owns exactly
// one; multiple instances across different planners are expected and still
// hash identically (see contextHash).
func NewContextNode() *ContextNode { return &ContextNode{} }

// ID implements OperatorConfig.
func (*ContextNode) ID() string { return ContextNodeID }

// Type implements OperatorConfig.
func (*ContextNode) Type() string { return "" }

// Sources implements OperatorConfig. The context node has no declared
// upstream sources of its own; its fan-in is discovered structurally by the
// sink filter resolver and the factory setup driver.
func (*ContextNode) Sources() []string { return nil }

// PushDown implements OperatorConfig.
func (*ContextNode) PushDown() bool { return false }

// Joins implements OperatorConfig.
func (*ContextNode) Joins() bool { return false }

// BuildHashCode implements OperatorConfig.
func (*ContextNode) BuildHashCode() uint64 { return contextHash }

// IsContextNode reports whether cfg is the synthetic context sentinel, the
// branch-check spec.md §9 calls for in place of an inheritance test.
func IsContextNode(cfg OperatorConfig) bool {
	_, ok := cfg.(*ContextNode)
	return ok
}
