package testfactory

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/tsdbquery/planner/pkg/factory"
	"github.com/tsdbquery/planner/pkg/types"
)

// ExprSourceFactory is a SourceFactory whose pushdown eligibility is driven
// by a compiled expr-lang expression over the candidate operator's type,
// e.g. `type in ["filter", "groupby"]`; "type" is the only name bound. This
// mirrors how a real factory might let operators configure eligibility
// rules without a recompile.
type ExprSourceFactory struct {
	Setup   func(pctx factory.Context, node types.OperatorConfig, mutator factory.GraphMutator) error
	program *vm.Program
}

// NewExprSourceFactory compiles expression and returns a SourceFactory that
// evaluates it (with "type" bound to the candidate's declared type) to
// decide push-down eligibility.
func NewExprSourceFactory(expression string) (*ExprSourceFactory, error) {
	program, err := expr.Compile(expression, expr.Env(map[string]any{"type": ""}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("testfactory: compile eligibility expression: %w", err)
	}
	return &ExprSourceFactory{program: program}, nil
}

// SetupGraph implements factory.Factory.
func (f *ExprSourceFactory) SetupGraph(pctx factory.Context, node types.OperatorConfig, mutator factory.GraphMutator) error {
	if f.Setup == nil {
		return nil
	}
	return f.Setup(pctx, node, mutator)
}

// SupportsPushdown implements factory.Factory by evaluating the compiled
// expression against operatorType.
func (f *ExprSourceFactory) SupportsPushdown(operatorType string) bool {
	out, err := expr.Run(f.program, map[string]any{"type": operatorType})
	if err != nil {
		return false
	}
	eligible, _ := out.(bool)
	return eligible
}

// NewNode implements factory.Factory.
func (f *ExprSourceFactory) NewNode(pctx factory.Context, node types.OperatorConfig) (types.Executor, error) {
	ds, ok := types.IsDataSource(node)
	if !ok {
		return NewExecutor(node, nil), nil
	}
	return NewSourceExecutor(node, ds.SourceID(), nil), nil
}
