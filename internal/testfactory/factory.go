package testfactory

import (
	"github.com/tsdbquery/planner/pkg/factory"
	"github.com/tsdbquery/planner/pkg/types"
)

// OperatorFactory is a deterministic Factory for plain (non-source)
// operators: SetupGraph optionally runs a caller-supplied rewrite hook
// exactly once per invocation, SupportsPushdown consults a static set of
// eligible types, and NewNode always produces an Executor.
type OperatorFactory struct {
	Setup         func(pctx factory.Context, node types.OperatorConfig, mutator factory.GraphMutator) error
	PushdownTypes map[string]bool
}

// NewOperatorFactory builds an OperatorFactory eligible for exactly the
// given pushdown-supported types.
func NewOperatorFactory(pushdownTypes ...string) *OperatorFactory {
	set := make(map[string]bool, len(pushdownTypes))
	for _, t := range pushdownTypes {
		set[t] = true
	}
	return &OperatorFactory{PushdownTypes: set}
}

// SetupGraph implements factory.Factory.
func (f *OperatorFactory) SetupGraph(pctx factory.Context, node types.OperatorConfig, mutator factory.GraphMutator) error {
	if f.Setup == nil {
		return nil
	}
	return f.Setup(pctx, node, mutator)
}

// SupportsPushdown implements factory.Factory.
func (f *OperatorFactory) SupportsPushdown(operatorType string) bool {
	return f.PushdownTypes[operatorType]
}

// NewNode implements factory.Factory.
func (f *OperatorFactory) NewNode(pctx factory.Context, node types.OperatorConfig) (types.Executor, error) {
	return NewExecutor(node, nil), nil
}

// SourceFactory is a deterministic Factory for data sources.
type SourceFactory struct {
	Setup         func(pctx factory.Context, node types.OperatorConfig, mutator factory.GraphMutator) error
	PushdownTypes map[string]bool
}

// NewSourceFactory builds a SourceFactory eligible for exactly the given
// pushdown-supported upstream operator types.
func NewSourceFactory(pushdownTypes ...string) *SourceFactory {
	set := make(map[string]bool, len(pushdownTypes))
	for _, t := range pushdownTypes {
		set[t] = true
	}
	return &SourceFactory{PushdownTypes: set}
}

// SetupGraph implements factory.Factory.
func (f *SourceFactory) SetupGraph(pctx factory.Context, node types.OperatorConfig, mutator factory.GraphMutator) error {
	if f.Setup == nil {
		return nil
	}
	return f.Setup(pctx, node, mutator)
}

// SupportsPushdown implements factory.Factory.
func (f *SourceFactory) SupportsPushdown(operatorType string) bool {
	return f.PushdownTypes[operatorType]
}

// NewNode implements factory.Factory.
func (f *SourceFactory) NewNode(pctx factory.Context, node types.OperatorConfig) (types.Executor, error) {
	ds, ok := types.IsDataSource(node)
	if !ok {
		return NewExecutor(node, nil), nil
	}
	return NewSourceExecutor(node, ds.SourceID(), nil), nil
}
