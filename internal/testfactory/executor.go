package testfactory

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/tsdbquery/planner/pkg/async"
	"github.com/tsdbquery/planner/pkg/types"
)

// Executor is a minimal types.Executor backed by an optional init hook.
type Executor struct {
	cfg      types.OperatorConfig
	onInit   func(ctx context.Context) error
}

// NewExecutor builds an Executor for cfg. onInit may be nil.
func NewExecutor(cfg types.OperatorConfig, onInit func(ctx context.Context) error) *Executor {
	return &Executor{cfg: cfg, onInit: onInit}
}

// Config implements types.Executor.
func (e *Executor) Config() types.OperatorConfig { return e.cfg }

// Initialize implements types.Executor.
func (e *Executor) Initialize(ctx context.Context, span trace.Span) *async.Future {
	return async.Run(func() error {
		if e.onInit == nil {
			return nil
		}
		return e.onInit(ctx)
	})
}

// SourceExecutor additionally implements types.DataSource.
type SourceExecutor struct {
	Executor
	sourceKey string
}

// NewSourceExecutor builds a SourceExecutor for cfg.
func NewSourceExecutor(cfg types.OperatorConfig, sourceKey string, onInit func(ctx context.Context) error) *SourceExecutor {
	return &SourceExecutor{Executor: Executor{cfg: cfg, onInit: onInit}, sourceKey: sourceKey}
}

// SourceKey implements types.DataSource.
func (e *SourceExecutor) SourceKey() string { return e.sourceKey }
