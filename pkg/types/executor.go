package types

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/tsdbquery/planner/pkg/async"
)

// Executor (spec.md's "QueryNode") is a runtime instance produced by a
// factory from an OperatorConfig. It knows its own originating config and
// can be asynchronously initialized.
type Executor interface {
	// Config returns the OperatorConfig this executor was built from.
	Config() OperatorConfig

	// Initialize performs the executor's async setup. The returned future
	// resolves once the executor is ready to run. span is the tracing span
	// for this plan's initialization walk (spec.md §4.5, §5).
	Initialize(ctx context.Context, span trace.Span) *async.Future
}

// DataSource is implemented by executors materialized from a
// DataSourceConfig. The executor builder records every DataSource it
// creates, in order of appearance, as Planner.Sources() (spec.md §4.5 step
// 7).
type DataSource interface {
	Executor

	// SourceKey returns the factory key (DataSourceConfig.SourceID) this
	// executor was built for.
	SourceKey() string
}
